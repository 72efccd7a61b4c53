// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.AccessTokenTTL)
	assert.False(t, cfg.Mongo.UseTransactions)
	assert.Equal(t, "usd", cfg.Payment.Currency)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MONGO_URL", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "marketplace")
	t.Setenv("MONGO_USE_TRANSACTIONS", "true")
	t.Setenv("JWT_ACCESS_TTL", "48")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "marketplace", cfg.Mongo.Database)
	assert.True(t, cfg.Mongo.UseTransactions)
	assert.Equal(t, 48, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestMongoURIPrecedence(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://fallback:27017")
	t.Setenv("MONGO_PUBLIC_URL", "mongodb://public:27017")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://public:27017", cfg.Mongo.URI)
}

func TestValidateProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	_, err = Load()
	assert.Error(t, err) // stripe key still missing

	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	_, err = Load()
	assert.NoError(t, err)
}
