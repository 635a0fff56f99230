package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
)

const defaultJWTSecret = "default_secret_CHANGE_ME"

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	// DB Config
	DBUrl             string        `env:"DB_DSN"`
	DBMaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns        int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"15m"`
	RunMigrations     bool          `env:"DB_RUN_MIGRATIONS" envDefault:"true"`

	JWTSecret         string        `env:"JWT_SECRET" envDefault:"default_secret_CHANGE_ME"`
	AccessTokenExpiry time.Duration `env:"ACCESS_TOKEN_EXPIRY" envDefault:"24h"`
	AllowedOrigin     string        `env:"ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`

	// Bootstrap admin, created on startup when the email is unknown.
	AdminName     string `env:"ADMIN_NAME" envDefault:"Admin"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// R2 Storage. Uploads are disabled while R2AccountID is empty.
	R2AccountID       string        `env:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string        `env:"R2_ACCESS_KEY_ID"`
	R2AccessKeySecret string        `env:"R2_ACCESS_KEY_SECRET"`
	R2BucketName      string        `env:"R2_BUCKET_NAME"`
	R2PublicURL       string        `env:"R2_PUBLIC_URL"`
	R2UploadTimeout   time.Duration `env:"R2_UPLOAD_TIMEOUT" envDefault:"30s"`
	MaxUploadSizeMB   int64         `env:"MAX_UPLOAD_SIZE_MB" envDefault:"10"`

	CacheEnumsTTL time.Duration `env:"CACHE_ENUMS_TTL" envDefault:"1h"`

	// IANA zone for submitted dates that carry no offset.
	TimeZone string `env:"TIME_ZONE" envDefault:"UTC"`

	// Rate limiting. A non-empty RedisURL shares the limit across instances.
	RedisURL       string  `env:"REDIS_URL"`
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100"`
}

// LoadConfig reads .env (or CONFIG_FILE) into the process environment, then
// parses Config from it.
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DBUrl == "" {
			return errors.New("DB_DSN is required for the postgres store driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid TIME_ZONE: %w", err)
	}
	if c.JWTSecret == defaultJWTSecret {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Location is the loaded TimeZone, UTC when it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UploadsEnabled reports whether R2 credentials were provided.
func (c *Config) UploadsEnabled() bool { return c.R2AccountID != "" }
