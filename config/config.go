// Package config provides configuration management for the feedback cache.
// It handles loading configuration from environment variables with sensible
// defaults and validates the configuration so the cache starts safely.
//
// Environment Variables:
//
// Application Settings:
//   - LOG_LEVEL: Logging level (default: info)
//
// Cache Configuration:
//   - CACHE_DEFAULT_TTL: Default entry retention window (default: 5m)
//   - CACHE_CLEANUP_INTERVAL: How often expired entries are swept (default: 10m)
//
// Redis Configuration:
//   - REDIS_ENABLED: Whether to back the cache with Redis (default: false)
//   - REDIS_ADDRESS: Redis server address (default: localhost:6379)
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis database number 0-15 (default: 0)
//   - REDIS_POOL_SIZE: Redis connection pool size (default: 10)
//   - REDIS_DIAL_TIMEOUT: Connection timeout (default: 5s)
//   - REDIS_MAX_RETRIES: Per-command retry limit, -1 disables (default: 3)
//
// Example usage:
//
//	// Load configuration from environment
//	cfg := config.Load()
//
//	// Validate configuration
//	if err := cfg.Validate(); err != nil {
//		log.Fatalf("Invalid configuration: %v", err)
//	}
//
//	// Route the configured level into the shared logger
//	logger := logging.InitGlobalLogger(cfg.LogLevel)
//	defer logging.MustSync()
//
//	// Use configuration
//	managerCfg := cache.DefaultConfig()
//	managerCfg.DefaultTTL = cfg.CacheDefaultTTL
//	managerCfg.Logger = logger
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the feedback cache. Each field
// corresponds to an environment variable that can be set to override the
// default value.
//
// The configuration is loaded using the Load() function and should be
// validated using the Validate() method before use.
type Config struct {
	// Application settings
	LogLevel string // Logging level (debug, info, warn, error)

	// Local cache configuration
	CacheDefaultTTL      time.Duration // Default entry retention window
	CacheCleanupInterval time.Duration // Janitor sweep interval

	// Redis configuration for the shared cache tier
	RedisEnabled     bool          // Whether the Redis tier is used at all
	RedisAddress     string        // Redis server address (host:port)
	RedisPassword    string        // Redis authentication password
	RedisDB          int           // Redis database number (0-15)
	RedisPoolSize    int           // Redis connection pool size
	RedisDialTimeout time.Duration // Redis connection timeout
	RedisMaxRetries  int           // Per-command retry limit (-1 disables)
}

// Load creates a new Config instance with values loaded from environment
// variables. A .env file in the working directory is applied first when
// present. If an environment variable is not set, the corresponding default
// value is used; values that fail to parse also fall back to the default.
//
// This function does not validate the configuration - call Validate() on the
// returned Config to ensure all values are within their valid ranges.
//
// Returns:
//   - *Config: A new configuration instance with values from environment variables
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CacheDefaultTTL:      getDurationEnv("CACHE_DEFAULT_TTL", 5*time.Minute),
		CacheCleanupInterval: getDurationEnv("CACHE_CLEANUP_INTERVAL", 10*time.Minute),

		RedisEnabled:     getBoolEnv("REDIS_ENABLED", false),
		RedisAddress:     getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getIntEnv("REDIS_DB", 0),
		RedisPoolSize:    getIntEnv("REDIS_POOL_SIZE", 10),
		RedisDialTimeout: getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisMaxRetries:  getIntEnv("REDIS_MAX_RETRIES", 3),
	}
}

// getEnv retrieves an environment variable value or returns a default value if not set.
//
// Parameters:
//   - key: The environment variable name to look up
//   - defaultValue: The value to return if the environment variable is not set or empty
//
// Returns:
//   - string: The environment variable value or the default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv retrieves a boolean environment variable value or returns a default value.
//
// This function accepts common boolean representations:
//   - "true", "1", "t", "TRUE", "True" -> true
//   - "false", "0", "f", "FALSE", "False" -> false
//   - Any other value or parsing error -> returns defaultValue
//
// Parameters:
//   - key: The environment variable name to look up
//   - defaultValue: The value to return if the environment variable is not set, empty, or invalid
//
// Returns:
//   - bool: The parsed boolean value or the default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getIntEnv retrieves an integer environment variable value or returns a default value.
//
// Parameters:
//   - key: The environment variable name to look up
//   - defaultValue: The value to return if the environment variable is not set, empty, or invalid
//
// Returns:
//   - int: The parsed integer value or the default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv retrieves a duration environment variable value or returns a default value.
//
// Durations use Go syntax, e.g. "30s", "5m", "1h30m".
//
// Parameters:
//   - key: The environment variable name to look up
//   - defaultValue: The value to return if the environment variable is not set, empty, or invalid
//
// Returns:
//   - time.Duration: The parsed duration value or the default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Validate performs validation on the configuration to ensure all values are
// within their valid ranges.
//
// This method checks:
//   - Cache retention and sweep windows are positive
//   - Redis settings are valid when the Redis tier is enabled
//
// The application should call this method after loading configuration and
// before starting to ensure safe operation.
//
// Returns:
//   - error: A descriptive error if validation fails, nil if configuration is valid
func (c *Config) Validate() error {
	if c.CacheDefaultTTL <= 0 {
		return fmt.Errorf("CACHE_DEFAULT_TTL must be a positive duration")
	}
	if c.CacheCleanupInterval <= 0 {
		return fmt.Errorf("CACHE_CLEANUP_INTERVAL must be a positive duration")
	}

	// Validate Redis config only when the tier is enabled
	if c.RedisEnabled {
		if c.RedisAddress == "" {
			return fmt.Errorf("REDIS_ADDRESS is required when REDIS_ENABLED is true")
		}
		if c.RedisDB < 0 || c.RedisDB > 15 {
			return fmt.Errorf("REDIS_DB must be a number between 0 and 15")
		}
		if c.RedisPoolSize < 1 {
			return fmt.Errorf("REDIS_POOL_SIZE must be a positive number")
		}
		if c.RedisDialTimeout <= 0 {
			return fmt.Errorf("REDIS_DIAL_TIMEOUT must be a positive duration")
		}
		if c.RedisMaxRetries < -1 {
			return fmt.Errorf("REDIS_MAX_RETRIES must be -1 (disabled) or a non-negative number")
		}
	}

	return nil
}
