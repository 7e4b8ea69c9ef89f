package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "kiosco.db", cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, 10, cfg.BackupMax)
	assert.Equal(t, 24*time.Hour, cfg.BackupInterval)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/kiosco")
	t.Setenv("BACKUP_INTERVAL", "6h")
	t.Setenv("SHOP_NAME", "Kiosco Don Pepe")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres://u:p@db:5432/kiosco", cfg.DatabaseURL)
	assert.Equal(t, 6*time.Hour, cfg.BackupInterval)
	assert.Equal(t, "Kiosco Don Pepe", cfg.ShopName)
}

func TestLoad_FaltaSecreto(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}
