package app

import (
	"sical_backend/docs"
	"sical_backend/internal/config"
	"sical_backend/internal/middleware"
	"sical_backend/internal/model"
	"sical_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api/v1")
	api.Use(middleware.ActivityMiddleware(repos.user))

	a.registerPublicRoutes(api, c, cfg)
	a.registerAuthorizedRoutes(api, c, cfg)
	a.registerManagerRoutes(api, c, cfg)
}

// registerPublicRoutes 无需登录；读取接口带可选认证，便于创建者查看未发布内容
func (a *App) registerPublicRoutes(api *gin.RouterGroup, c *controllers, cfg *config.Config) {
	api.GET("/health", c.health.HealthCheck)

	auth := api.Group("/auth")
	{
		auth.POST("/register", c.auth.Register)
		auth.POST("/login", c.auth.Login)
		auth.POST("/forgot-password", c.auth.ForgotPassword)
		auth.PUT("/reset-password/:token", c.auth.ResetPassword)
	}

	optional := api.Group("/")
	optional.Use(middleware.TryAuthMiddleware(cfg))
	{
		optional.GET("/knowledge", c.knowledge.List)
		optional.GET("/knowledge/search", c.knowledge.Search)
		optional.GET("/knowledge/category/:category", c.knowledge.ListByCategory)
		optional.GET("/knowledge/:id", c.knowledge.Get)
		optional.GET("/knowledge/:id/comments", c.comment.ListByKnowledge)

		optional.GET("/paths", c.learningPath.List)
		optional.GET("/paths/:id", c.learningPath.Get)
		optional.GET("/paths/:id/comments", c.comment.ListByPath)

		optional.GET("/assessments", c.assessment.List)
		optional.GET("/assessments/:id", c.assessment.Get)

		optional.GET("/comments/:id", c.comment.Get)
	}
}

func (a *App) registerAuthorizedRoutes(api *gin.RouterGroup, c *controllers, cfg *config.Config) {
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.PUT("/auth/password", c.auth.UpdatePassword)

		authorized.GET("/users/me", c.user.GetProfile)
		authorized.PUT("/users/me", c.user.UpdateProfile)
		authorized.POST("/users/me/avatar", c.user.UploadAvatar)
		authorized.GET("/users/me/progress", c.user.GetLearningProgress)
		authorized.PUT("/users/me/progress/:knowledgeId", c.user.UpdateLearningProgress)

		authorized.POST("/knowledge/:id/rate", c.knowledge.Rate)

		authorized.GET("/paths/enrolled", c.learningPath.ListEnrolled)
		authorized.POST("/paths/:id/enroll", c.learningPath.Enroll)
		authorized.POST("/paths/:id/complete", c.learningPath.Complete)
		authorized.POST("/paths/:id/rate", c.learningPath.Rate)

		authorized.GET("/assessments/records", c.assessment.ListMyRecords)
		authorized.POST("/assessments/:id/submit", c.assessment.Submit)

		authorized.POST("/comments", c.comment.Create)
		authorized.PUT("/comments/:id", c.comment.Update)
		authorized.DELETE("/comments/:id", c.comment.Delete)
		authorized.POST("/comments/:id/like", c.comment.Like)
		authorized.DELETE("/comments/:id/like", c.comment.Unlike)
	}
}

// registerManagerRoutes 内容管理接口，教师和管理员可用
func (a *App) registerManagerRoutes(api *gin.RouterGroup, c *controllers, cfg *config.Config) {
	manager := api.Group("/")
	manager.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
	{
		manager.POST("/knowledge", c.knowledge.Create)
		manager.PUT("/knowledge/:id", c.knowledge.Update)
		manager.DELETE("/knowledge/:id", c.knowledge.Delete)
		manager.POST("/knowledge/:id/visualizations", c.knowledge.UploadVisualization)

		manager.POST("/paths", c.learningPath.Create)
		manager.PUT("/paths/:id", c.learningPath.Update)
		manager.DELETE("/paths/:id", c.learningPath.Delete)

		manager.POST("/assessments", c.assessment.Create)
		manager.PUT("/assessments/:id", c.assessment.Update)
		manager.DELETE("/assessments/:id", c.assessment.Delete)
	}
}
