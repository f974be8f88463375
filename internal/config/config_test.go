package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.Reservation.TxTimeout)
	assert.Equal(t, 3, cfg.Reservation.MaxRetries)
	assert.Equal(t, "0 0 2 * * *", cfg.Jobs.CompletionSchedule)
	assert.Empty(t, cfg.Pricing.TablePath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_PATH", "/tmp/rent.db")
	t.Setenv("RESERVATION_MAX_RETRY", "5")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "/tmp/rent.db", cfg.Database.Path)
	assert.Equal(t, 5, cfg.Reservation.MaxRetries)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snowrent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET: from-file\nLOG_LEVEL: debug\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	// environment wins over the file
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL", "a week")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_TTL")
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()

	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{
		Database:    DatabaseConfig{Driver: "postgres"},
		Auth:        AuthConfig{JWTSecret: "x"},
		Reservation: ReservationConfig{MaxRetries: 1},
	}

	assert.Error(t, cfg.Validate())
}
