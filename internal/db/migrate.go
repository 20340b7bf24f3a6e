package db

import (
	"sportsbook/internal/models"
)

// AutoMigrate creates the three tables in dependency order so the RESTRICT
// foreign keys can be declared.
func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Sport{},
		&models.Event{},
		&models.Selection{},
	)
}
