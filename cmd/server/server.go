package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"

	"streamvault/catalog-api/internal/config"
	"streamvault/catalog-api/internal/domain/assets"
	"streamvault/catalog-api/internal/domain/catalog"
	"streamvault/catalog-api/internal/domain/upload"
	"streamvault/catalog-api/internal/infrastructure/auth"
	"streamvault/catalog-api/internal/infrastructure/database"
	"streamvault/catalog-api/internal/infrastructure/logger"
	"streamvault/catalog-api/internal/infrastructure/observability"
	"streamvault/catalog-api/internal/infrastructure/storage"
	repo "streamvault/catalog-api/internal/infrastructure/repository/catalog"
	"streamvault/catalog-api/internal/interfaces/httpserver"
)

// storageBackend is the full surface both backends expose; the domain
// services each consume their own subset of it.
type storageBackend interface {
	upload.Storage
	assets.Storage
	Health(ctx context.Context) error
}

type Application struct {
	httpServer *httpserver.HttpServer
	uploader   *upload.Service
	storage    storageBackend
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, uploader *upload.Service, storage storageBackend, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		uploader:   uploader,
		storage:    storage,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return a.httpServer.Run(groupCtx)
	})
	group.Go(func() error {
		a.watchStorageHealth(groupCtx)
		return nil
	})
	err := group.Wait()

	// Accepted submissions keep transferring after the listener stops;
	// drain them so staged files are always released.
	a.log.Info().Msg("waiting for in-flight asset transfers")
	a.uploader.Wait()

	return err
}

// watchStorageHealth periodically pings the object store so a broken
// backend surfaces in logs before the next upload fails.
func (a *Application) watchStorageHealth(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.storage.Health(ctx); err != nil {
				a.log.Warn().Err(err).Msg("storage health check failed")
			}
		}
	}
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DBPostgresqlWriteDSN,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	storageClient, err := newStorageBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize storage")
	}

	authValidator, err := newAuthValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth")
	}

	catalogRepository := repo.NewRepository(db)
	catalogService := catalog.NewService(catalogRepository, log)
	resolver := assets.NewResolver(storageClient, cfg.PresignTTL, log)
	uploader := upload.NewService(catalogRepository, storageClient, cfg.UploadWorkers, log)

	httpServer := httpserver.New(cfg, log, catalogService, resolver, uploader, authValidator)
	app := NewApplication(httpServer, uploader, storageClient, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

// newStorageBackend creates the configured storage backend, defaulting to S3.
func newStorageBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storageBackend, error) {
	if cfg.IsLocalStorage() {
		return storage.NewLocalStorage(cfg, log)
	}
	return storage.NewS3Storage(ctx, cfg, log)
}

// newAuthValidator builds the JWT validator, or nil when auth is disabled.
func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	if !cfg.AuthEnabled {
		return nil, nil
	}
	return auth.NewValidator(ctx, cfg.AuthJWKSURL, cfg.AuthIssuer, time.Hour, 30*time.Second, log)
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
