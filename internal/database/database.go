package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eureka/internal/config"
	"eureka/internal/model"
)

// Models lists every persisted type, parents before children.
var Models = []interface{}{
	&model.User{},
	&model.UserProfile{},
	&model.UserVerification{},
	&model.TaskPriority{},
	&model.TaskStatus{},
	&model.Task{},
	&model.SubTask{},
	&model.TaskAttachment{},
	&model.FavoriteTask{},
}

func DSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)
}

// Open connects gorm to postgres
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")
	return db, nil
}
