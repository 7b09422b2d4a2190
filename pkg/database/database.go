package database

import (
	"fmt"
	"log"

	"sical_backend/internal/config"
	"sical_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true, // 把驱动错误翻译为 gorm.ErrDuplicatedKey 等
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.LearningProgress{},
		&model.Knowledge{},
		&model.LearningPath{},
		&model.PathStep{},
		&model.PathEnrollment{},
		&model.Assessment{},
		&model.AssessmentQuestion{},
		&model.AssessmentRecord{},
		&model.Comment{},
		&model.CommentLike{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}
