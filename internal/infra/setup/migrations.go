package setup

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
)

// MigrateDB creates or updates the schema for every domain model. Ordering
// matters: referenced tables first so the foreign key constraints resolve.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	err := db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.Category{},
		&domain.Topic{},
		&domain.Post{},
		&domain.Tag{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}
	return nil
}
