package database

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/careoch/careoch-backend/internal/models"
)

// Connect opens the Postgres connection and runs migrations. An empty DSN is
// not an error: the API runs in degraded mode without persistence, and the
// services treat a nil DB as "no data". TranslateError lets the services
// detect unique-constraint races via gorm.ErrDuplicatedKey.
func Connect(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		logger.Warn("DATABASE_URL is not configured, running without persistence")
		return nil, nil
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	logger.Info("database connection established")

	if err := db.AutoMigrate(
		&models.User{},
		&models.IndustryInsight{},
		&models.Resume{},
		&models.CoverLetter{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
