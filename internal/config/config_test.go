package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// viper treats empty variables as unset, so every key falls back to its default.
	for _, k := range keys {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3333", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.EnforceMealOwnership)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/diet")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("DB_MAX_IDLE_CONNS", "2")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("ENFORCE_MEAL_OWNERSHIP", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "postgres://u:p@db:5432/diet", cfg.DatabaseURL)
	assert.Equal(t, 20, cfg.DBMaxOpenConns)
	assert.Equal(t, 2, cfg.DBMaxIdleConns)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.EnforceMealOwnership)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown log format", key: "LOG_FORMAT", value: "xml"},
		{name: "unknown environment", key: "ENVIRONMENT", value: "staging"},
		{name: "non numeric port", key: "PORT", value: "http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", "3333")
			t.Setenv("ENVIRONMENT", "test")
			t.Setenv("LOG_FORMAT", "console")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
