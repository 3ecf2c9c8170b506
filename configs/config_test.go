package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("RATE_LIMIT_MAX", "")
	t.Setenv("LOG_DIR", "")

	cfg := LoadConfig()

	assert.Equal(t, 3004, cfg.AppPort)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REDIS_HOST", "cache.internal")

	cfg := LoadConfig()

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 15432, cfg.DBPort)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.True(t, cfg.RedisEnabled())
}

func TestValidate(t *testing.T) {
	cfg := Config{AppPort: 3004, DBHost: "localhost", DBUser: "postgres", DBName: "tasks", JWTSecret: "secret"}
	require.NoError(t, cfg.Validate())

	cfg.JWTSecret = ""
	cfg.DBName = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_NAME")
}
