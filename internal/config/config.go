package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the catalog service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"catalog-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"CATALOG_API_PORT" envDefault:"8286"`
	LogLevel        string        `env:"CATALOG_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"CATALOG_LOG_FORMAT" envDefault:"json"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Database (required, no default)
	DBPostgresqlWriteDSN string `env:"DB_POSTGRESQL_WRITE_DSN,notEmpty"`

	// Database Connection Pool
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	// Storage Backend Selection
	StorageBackend string `env:"CATALOG_STORAGE_BACKEND" envDefault:"s3"` // Options: "s3" or "local"

	// Local Storage Configuration
	LocalStoragePath    string `env:"CATALOG_LOCAL_STORAGE_PATH"`
	LocalStorageBaseURL string `env:"CATALOG_LOCAL_STORAGE_BASE_URL"`

	// S3 Storage Configuration
	S3Endpoint     string `env:"CATALOG_S3_ENDPOINT"`
	S3Region       string `env:"CATALOG_S3_REGION" envDefault:"us-west-2"`
	S3Bucket       string `env:"CATALOG_S3_BUCKET"`
	S3AccessKeyID  string `env:"CATALOG_S3_ACCESS_KEY_ID"`
	S3SecretKey    string `env:"CATALOG_S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle bool   `env:"CATALOG_S3_USE_PATH_STYLE" envDefault:"true"`

	// Playback and asset URLs expire after this TTL. Minted per request,
	// never persisted.
	PresignTTL time.Duration `env:"CATALOG_PRESIGN_TTL" envDefault:"60m"`

	// Upload Pipeline
	UploadWorkers int    `env:"CATALOG_UPLOAD_WORKERS" envDefault:"4"`
	UploadTempDir string `env:"CATALOG_UPLOAD_TEMP_DIR"` // defaults to os.TempDir
	MaxAssetBytes int64  `env:"CATALOG_MAX_ASSET_BYTES" envDefault:"4294967296"`

	// Authentication
	AuthEnabled bool   `env:"AUTH_ENABLED" envDefault:"false"`
	AuthIssuer  string `env:"AUTH_ISSUER"`
	AuthJWKSURL string `env:"AUTH_JWKS_URL"`
	AdminRole   string `env:"AUTH_ADMIN_ROLE" envDefault:"admin"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.S3Bucket = strings.TrimSpace(cfg.S3Bucket)
	cfg.S3AccessKeyID = strings.TrimSpace(cfg.S3AccessKeyID)
	cfg.S3SecretKey = strings.TrimSpace(cfg.S3SecretKey)
	cfg.S3Endpoint = strings.TrimSpace(cfg.S3Endpoint)
	if cfg.UploadWorkers < 1 {
		cfg.UploadWorkers = 1
	}
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = 60 * time.Minute
	}
	if cfg.AuthEnabled {
		if strings.TrimSpace(cfg.AuthIssuer) == "" {
			return nil, fmt.Errorf("AUTH_ISSUER is required when AUTH_ENABLED is true")
		}
		if strings.TrimSpace(cfg.AuthJWKSURL) == "" {
			return nil, fmt.Errorf("AUTH_JWKS_URL is required when AUTH_ENABLED is true")
		}
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsLocalStorage returns true if local storage backend is configured.
func (c *Config) IsLocalStorage() bool {
	return strings.ToLower(strings.TrimSpace(c.StorageBackend)) == "local"
}

// IsS3Storage returns true if S3 storage backend is configured.
func (c *Config) IsS3Storage() bool {
	backend := strings.ToLower(strings.TrimSpace(c.StorageBackend))
	return backend == "" || backend == "s3"
}
