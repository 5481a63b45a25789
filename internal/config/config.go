package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
// Validation tags are checked once at startup so a misconfigured bot
// fails fast instead of limping along without a token
type Config struct {
	// Telegram configuration
	BotToken string `validate:"required"`

	// Geolocation provider (ip-api.com compatible JSON endpoint)
	GeoAPIBaseURL string        `validate:"required,url"`
	GeoTimeout    time.Duration // per-request timeout for geo lookups

	// Self-IP provider (ipify compatible JSON endpoint)
	SelfIPURL     string        `validate:"required,url"`
	SelfIPTimeout time.Duration // per-request timeout for self-IP discovery

	// Map artifacts
	MapDir string `validate:"required"` // directory for transient map files

	// Ops HTTP server (health check + Prometheus metrics)
	OpsPort string `validate:"required"`

	// Logging
	LogLevel  string
	LogPretty bool
}

// Load reads configuration from environment variables with sensible
// defaults, then validates the result
//
// Returns:
//   - *Config: the loaded configuration
//   - error: validation error (e.g. missing BOT_TOKEN)
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	// In production/Docker, environment variables are set directly
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	cfg := &Config{
		BotToken: getEnv("BOT_TOKEN", ""),

		GeoAPIBaseURL: getEnv("GEO_API_BASE_URL", "http://ip-api.com"),
		GeoTimeout:    time.Duration(getEnvAsInt("GEO_TIMEOUT_SECONDS", 10)) * time.Second,

		SelfIPURL:     getEnv("SELF_IP_URL", "https://api.ipify.org?format=json"),
		SelfIPTimeout: time.Duration(getEnvAsInt("SELF_IP_TIMEOUT_SECONDS", 5)) * time.Second,

		MapDir: getEnv("MAP_DIR", "."),

		OpsPort: getEnv("OPS_PORT", "9090"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
	}

	// Struct-tag validation via go-playground/validator
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an environment variable as an integer
// Returns default if not set or invalid
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsBool reads an environment variable as a boolean
// Returns default if not set or invalid
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
