package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidiary/internal/diary/config"
	"aidiary/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
	assert.Equal(t, "gpt-4o-mini", cfg.Enhancer.Model)
	assert.Equal(t, 10, cfg.Shutdown.Timeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DIARY_HTTP_PORT", "9090")
	t.Setenv("DIARY_POSTGRES_HOST", "db.internal")
	t.Setenv("DIARY_POSTGRES_DB", "diaries")
	t.Setenv("DIARY_LOGGER_MODE", "production")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
	assert.True(t, cfg.Postgres.IsConfigured())
	assert.Contains(t, cfg.Postgres.GetDSN(), "host=db.internal")
	assert.Contains(t, cfg.Postgres.GetConnectionURL(), "db.internal:5432/diaries")
}

func TestPostgresIsConfigured(t *testing.T) {
	cfg := config.PostgresConfig{}
	assert.False(t, cfg.IsConfigured())

	cfg.Host = "localhost"
	assert.True(t, cfg.IsConfigured())
}

func TestEnhancerIsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		expected bool
	}{
		{name: "empty key", apiKey: "", expected: false},
		{name: "template placeholder", apiKey: "your_openai_api_key", expected: false},
		{name: "real key", apiKey: "sk-abc123", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.EnhancerConfig{APIKey: tt.apiKey}
			assert.Equal(t, tt.expected, cfg.IsConfigured())
		})
	}
}

func TestBillingIsConfigured(t *testing.T) {
	cfg := config.BillingConfig{}
	assert.False(t, cfg.IsConfigured())

	cfg.SecretKey = "sk_test"
	assert.True(t, cfg.IsConfigured())
}
