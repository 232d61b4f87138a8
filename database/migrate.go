package database

import (
	"fmt"

	"rooya_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate runs AutoMigrate for every model, parents before children so the
// declared foreign keys resolve.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to enable uuid-ossp: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.Profile{},
		&models.UserPlan{},
		&models.Dream{},
		&models.Request{},
		&models.Message{},
		&models.ChatMessage{},
		&models.Comment{},
		&models.Payment{},
	)
}
