package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field maps 1:1 to an env var of the same name.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`
	RateLimitRPM   int    `mapstructure:"RATE_LIMIT_RPM"`
	CORSOrigins    string `mapstructure:"CORS_ALLOWED_ORIGINS"` // comma separated

	// Database: a file path / file: URI for SQLite, or a postgres:// URL
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis is optional; empty runs locks and jobs in-process
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth: one operator account
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	AdminUsername      string `mapstructure:"ADMIN_USERNAME"`
	AdminPasswordHash  string `mapstructure:"ADMIN_PASSWORD_HASH"` // bcrypt

	// SMTP; empty host disables mail
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
	OwnerEmail   string `mapstructure:"OWNER_EMAIL"`

	// Business
	ShopName       string        `mapstructure:"SHOP_NAME"`
	PDFStoragePath string        `mapstructure:"PDF_STORAGE_PATH"`
	BackupDir      string        `mapstructure:"BACKUP_DIR"`
	BackupMax      int           `mapstructure:"BACKUP_MAX"`
	BackupInterval time.Duration `mapstructure:"BACKUP_INTERVAL"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	// Optional .env file for local development; a missing file is fine
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("WORKER_POOL_SIZE", 3)
	v.SetDefault("RATE_LIMIT_RPM", 300)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("DATABASE_URL", "kiosco.db")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION_HOURS", 12)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("OWNER_EMAIL", "")
	v.SetDefault("SHOP_NAME", "Kiosco")
	v.SetDefault("PDF_STORAGE_PATH", "data/pdfs")
	v.SetDefault("BACKUP_DIR", "data/backups")
	v.SetDefault("BACKUP_MAX", 10)
	v.SetDefault("BACKUP_INTERVAL", "24h")
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.AdminPasswordHash == "" {
		return errors.New("config: ADMIN_PASSWORD_HASH is required (see cmd/genhash)")
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool { return c.Env == "production" }
