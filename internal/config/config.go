// Package config loads the service configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/jonathan/resume-maker/internal/payment"
)

// Config holds everything the service needs. Secrets only ever arrive
// through the environment; there are no baked-in defaults for credentials.
type Config struct {
	// Server
	Port      int
	AppURL    string // public base URL used in payment redirects
	OutputDir string // where rendered PDFs land
	DataFile  string // saved profile snapshot path

	// Database
	DatabaseURL string

	// AI provider (OpenAI-compatible chat completions)
	AIAPIKey  string
	AIBaseURL string
	AIModel   string
	AITimeout time.Duration

	// Analytics
	AdminAPIKey string

	// Payments
	Stripe   payment.StripeConfig
	PayPal   payment.PayPalConfig
	CoinGate payment.CoinGateConfig
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded configuration from .env")
	}

	return &Config{
		Port:      getEnvInt("PORT", 5000),
		AppURL:    getEnvString("APP_URL", ""),
		OutputDir: getEnvString("OUTPUT_DIR", "output"),
		DataFile:  getEnvString("DATA_FILE", "data/user_data.json"),

		DatabaseURL: getEnvString("DATABASE_URL", ""),

		AIAPIKey:  getEnvString("DEEPSEEK_API_KEY", ""),
		AIBaseURL: getEnvString("DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1"),
		AIModel:   getEnvString("DEEPSEEK_MODEL", "deepseek-chat"),
		AITimeout: getEnvDuration("DEEPSEEK_TIMEOUT", 90*time.Second),

		AdminAPIKey: getEnvString("ANALYTICS_ADMIN_KEY", ""),

		Stripe: payment.StripeConfig{
			SecretKey:     getEnvString("STRIPE_SECRET_KEY", ""),
			PublicKey:     getEnvString("STRIPE_PUBLIC_KEY", ""),
			WebhookSecret: getEnvString("STRIPE_WEBHOOK_SECRET", ""),
		},
		PayPal: payment.PayPalConfig{
			ClientID:     getEnvString("PAYPAL_CLIENT_ID", ""),
			ClientSecret: getEnvString("PAYPAL_CLIENT_SECRET", ""),
			Mode:         getEnvString("PAYPAL_MODE", "sandbox"),
		},
		CoinGate: payment.CoinGateConfig{
			APIKey: getEnvString("COINGATE_API_KEY", ""),
			Mode:   getEnvString("COINGATE_MODE", "sandbox"),
		},
	}
}

// Validate checks the fields the server cannot run without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.AIAPIKey == "" {
		log.Println("[WARN] DEEPSEEK_API_KEY not set, resume content falls back to heuristic generation")
	}
	if c.AdminAPIKey == "" {
		log.Println("[WARN] ANALYTICS_ADMIN_KEY not set, analytics dashboard is disabled")
	}
	return nil
}

// BaseURL returns the public URL for redirects, falling back to localhost.
func (c *Config) BaseURL() string {
	if c.AppURL != "" {
		return c.AppURL
	}
	return fmt.Sprintf("http://localhost:%d", c.Port)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARN] invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("[WARN] invalid value for %s: %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
