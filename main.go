// @title SiCal 后端 API
// @version 1.0
// @description SiCal学习平台的后端服务器：知识点、学习路径、测评与评论。
// @termsOfService http://swagger.io/terms/

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"sical_backend/internal/app"
	"sical_backend/internal/config"
	"sical_backend/pkg/configwatcher"
	"sical_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 配置文件变化时热更新
	go configwatcher.WatchConfig("configs", application.ReloadConfig)

	application.Run()
}
