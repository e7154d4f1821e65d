package database

import (
	"fmt"

	"art-progression/config"
	"art-progression/internal/domain/artworks"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is nil when no database is configured or reachable; readers then fall
// back to the static document and writes report a configuration error.
var DB *gorm.DB

func InitDB() {
	dsn := config.DB_URL
	if dsn == "" {
		zap.L().Warn("DB_URL not set, serving the fallback document read-only")
		return
	}

	db, err := Open(postgres.Open(dsn))
	if err != nil {
		zap.L().Error("database unavailable, serving the fallback document read-only", zap.Error(err))
		return
	}

	DB = db
	zap.L().Info("connected and migrated")
}

// Open connects through dialector and migrates the schema.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := db.AutoMigrate(&artworks.Artwork{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return db, nil
}
