//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"streamvault/catalog-api/internal/config"
	"streamvault/catalog-api/internal/domain/assets"
	"streamvault/catalog-api/internal/domain/catalog"
	"streamvault/catalog-api/internal/domain/upload"
	"streamvault/catalog-api/internal/infrastructure/database"
	"streamvault/catalog-api/internal/infrastructure/logger"
	repo "streamvault/catalog-api/internal/infrastructure/repository/catalog"
	"streamvault/catalog-api/internal/interfaces/httpserver"
)

var catalogSet = wire.NewSet(
	repo.NewRepository,
	wire.Bind(new(catalog.Repository), new(*repo.Repository)),
	wire.Bind(new(upload.Catalog), new(*repo.Repository)),
	newStorageBackend,
	wire.Bind(new(assets.Storage), new(storageBackend)),
	wire.Bind(new(upload.Storage), new(storageBackend)),
	catalog.NewService,
	newResolver,
	newUploader,
)

// BuildApplication assembles the catalog API with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newAuthValidator,
		newDatabaseConfig,
		newGormDB,
		catalogSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DBPostgresqlWriteDSN,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newResolver(s assets.Storage, cfg *config.Config, log zerolog.Logger) *assets.Resolver {
	return assets.NewResolver(s, cfg.PresignTTL, log)
}

func newUploader(cat upload.Catalog, s upload.Storage, cfg *config.Config, log zerolog.Logger) *upload.Service {
	return upload.NewService(cat, s, cfg.UploadWorkers, log)
}
