package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/uniclubs/universe-backend/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&model.User{},
		&model.Club{},
		&model.ClubMembership{},
		&model.Payment{},
		&model.Event{},
		&model.Announcement{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates indexes GORM tags don't express.
func createCustomIndexes(db *gorm.DB) error {
	// Partial index for reconciliation lookups on unsettled payments.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_payments_unsettled ON payments (updated_at) WHERE status IN ('PENDING', 'PROCESSING')`).Error; err != nil {
		return err
	}

	// Case-insensitive club search.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_clubs_name_lower ON clubs (lower(name))`).Error; err != nil {
		return err
	}

	return nil
}
