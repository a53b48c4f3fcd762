package database

import (
	"resolvenow_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every model. The uuid
// extension backs the default primary key generation.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.Suggestion{},
		&models.Message{},
		&models.Notification{},
	)
}
