package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "OUTPUT_DIR", "DATA_FILE", "DEEPSEEK_BASE_URL", "DEEPSEEK_MODEL", "DEEPSEEK_TIMEOUT", "PAYPAL_MODE"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "data/user_data.json", cfg.DataFile)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.AIBaseURL)
	assert.Equal(t, "deepseek-chat", cfg.AIModel)
	assert.Equal(t, 90*time.Second, cfg.AITimeout)
	assert.Equal(t, "sandbox", cfg.PayPal.Mode)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://localhost/resume_maker")
	t.Setenv("DEEPSEEK_API_KEY", "test-key")
	t.Setenv("DEEPSEEK_TIMEOUT", "30s")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_abc")
	t.Setenv("APP_URL", "https://resumes.example.com")

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://localhost/resume_maker", cfg.DatabaseURL)
	assert.Equal(t, "test-key", cfg.AIAPIKey)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, "sk_test_abc", cfg.Stripe.SecretKey)
	assert.Equal(t, "https://resumes.example.com", cfg.BaseURL())
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("DEEPSEEK_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.AITimeout)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: 5000}
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")

	cfg.DatabaseURL = "postgres://localhost/resume_maker"
	require.NoError(t, cfg.Validate())

	cfg.Port = 0
	assert.ErrorContains(t, cfg.Validate(), "PORT")
}

func TestBaseURLFallback(t *testing.T) {
	cfg := &Config{Port: 5000}
	assert.Equal(t, "http://localhost:5000", cfg.BaseURL())
}
