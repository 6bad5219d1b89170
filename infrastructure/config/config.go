package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Logging
	LogLevel string

	// Webhook ingestion
	WebhookSecret        string
	EventLogCapacity     int
	WebhookRateLimit     int // requests per source before throttling
	WebhookRateRefillMS  int // milliseconds per refilled token

	// Pagination
	DefaultPageLimit int // 0 means no limit
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		WebhookSecret:       getEnv("WEBHOOK_SECRET", ""),
		EventLogCapacity:    getEnvInt("EVENT_LOG_CAPACITY", 20),
		WebhookRateLimit:    getEnvInt("WEBHOOK_RATE_LIMIT", 60),
		WebhookRateRefillMS: getEnvInt("WEBHOOK_RATE_REFILL_MS", 1000),

		DefaultPageLimit: getEnvInt("DEFAULT_PAGE_LIMIT", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.EventLogCapacity <= 0 {
		return fmt.Errorf("EVENT_LOG_CAPACITY must be positive, got %d", c.EventLogCapacity)
	}
	if c.DefaultPageLimit < 0 {
		return fmt.Errorf("DEFAULT_PAGE_LIMIT must not be negative, got %d", c.DefaultPageLimit)
	}
	if c.IsProduction() && c.WebhookSecret == "" {
		return fmt.Errorf("WEBHOOK_SECRET is required in production")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
