package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"streamvault/catalog-api/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(&entities.MediaItem{}); err != nil {
		return err
	}
	log.Info().Msg("applied media item migrations")
	return nil
}
