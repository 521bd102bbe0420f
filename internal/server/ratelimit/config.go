package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// EndpointConfig is the limit for one endpoint. Paths ending in "/" are
// matched by prefix.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per window, <= 0 means unlimited
	Window time.Duration
	Burst  int // defaults to Limit when 0
}

// Config holds limiter settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns the built-in limits.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig reads limiter settings from the environment.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns per-endpoint limits. Generation hits the
// AI provider and Chrome, so it gets the strictest budget.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/generate-resume", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
		{Path: "/api/analyze-job", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		{Path: "/api/payment/", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/api/user/", Method: "POST", Limit: 60, Window: time.Minute, Burst: 20},
		{Path: "/api/save-data", Method: "POST", Limit: 60, Window: time.Minute, Burst: 20},

		// Frontend fires these on every page, keep them loose.
		{Path: "/api/analytics/track", Method: "POST", Limit: 600, Window: time.Minute},
		{Path: "/api/analytics/event", Method: "POST", Limit: 600, Window: time.Minute},
	}
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
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
		return defaultValue
	}
	return d
}
