package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// setRequired sets the database variables Load enforces with must().
func setRequired(t *testing.T) {
	t.Setenv("DB_USER", "ledger")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "ledger")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.True(t, cfg.InsecureSecret, "default secret must be flagged")
	assert.Equal(t, 60, cfg.TokenTTLMin)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"http://127.0.0.1:3000", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.StrictValidation)
	assert.False(t, cfg.QueueEnabled)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("SECRET_KEY", "real-secret")
	t.Setenv("TOKEN_TTL_MIN", "15")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("STRICT_VALIDATION", "true")
	t.Setenv("QUEUE_ENABLED", "1")

	cfg := Load()
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "real-secret", cfg.JWTSecret)
	assert.False(t, cfg.InsecureSecret)
	assert.Equal(t, 15, cfg.TokenTTLMin)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.StrictValidation)
	assert.True(t, cfg.QueueEnabled)
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "txcache", cfg.Prefix)
	assert.Equal(t, "30s", cfg.TTL.String())
}

func TestLoadCacheConfigBadTTLFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	cfg := LoadCacheConfig()
	assert.Equal(t, "30s", cfg.TTL.String())
}
