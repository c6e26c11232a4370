package model

import "gorm.io/gorm"

// AutoMigrate creates the pastes table and the partial index used by the janitor.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Paste{}); err != nil {
		return err
	}

	return db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_pastes_expiring " +
			"ON pastes (expires_at) WHERE expires_at IS NOT NULL",
	).Error
}
