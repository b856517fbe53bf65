package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"feedback-cache/logging"
)

func clearTestEnvVars() {
	testKeys := []string{
		"LOG_LEVEL",
		"CACHE_DEFAULT_TTL", "CACHE_CLEANUP_INTERVAL",
		"REDIS_ENABLED", "REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
		"REDIS_POOL_SIZE", "REDIS_DIAL_TIMEOUT", "REDIS_MAX_RETRIES",
		// Test environment variables
		"TEST_KEY_EXISTS", "TEST_KEY_EMPTY", "TEST_INT_VALID", "TEST_INT_INVALID",
		"TEST_DURATION_VALID", "TEST_DURATION_INVALID",
	}

	for _, key := range testKeys {
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	// Clear environment variables to test defaults
	clearTestEnvVars()

	config := Load()

	if config.LogLevel != "info" {
		t.Errorf("Load() LogLevel = %v, want %v", config.LogLevel, "info")
	}

	if config.CacheDefaultTTL != 5*time.Minute {
		t.Errorf("Load() CacheDefaultTTL = %v, want %v", config.CacheDefaultTTL, 5*time.Minute)
	}

	if config.CacheCleanupInterval != 10*time.Minute {
		t.Errorf("Load() CacheCleanupInterval = %v, want %v", config.CacheCleanupInterval, 10*time.Minute)
	}

	if config.RedisEnabled {
		t.Errorf("Load() RedisEnabled = %v, want %v", config.RedisEnabled, false)
	}

	if config.RedisAddress != "localhost:6379" {
		t.Errorf("Load() RedisAddress = %v, want %v", config.RedisAddress, "localhost:6379")
	}

	if config.RedisPassword != "" {
		t.Errorf("Load() RedisPassword = %v, want empty", config.RedisPassword)
	}

	if config.RedisDB != 0 {
		t.Errorf("Load() RedisDB = %v, want %v", config.RedisDB, 0)
	}

	if config.RedisPoolSize != 10 {
		t.Errorf("Load() RedisPoolSize = %v, want %v", config.RedisPoolSize, 10)
	}

	if config.RedisDialTimeout != 5*time.Second {
		t.Errorf("Load() RedisDialTimeout = %v, want %v", config.RedisDialTimeout, 5*time.Second)
	}

	if config.RedisMaxRetries != 3 {
		t.Errorf("Load() RedisMaxRetries = %v, want %v", config.RedisMaxRetries, 3)
	}
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("CACHE_DEFAULT_TTL", "90s")
	os.Setenv("CACHE_CLEANUP_INTERVAL", "30s")
	os.Setenv("REDIS_ENABLED", "true")
	os.Setenv("REDIS_ADDRESS", "redis.internal:6380")
	os.Setenv("REDIS_PASSWORD", "secret")
	os.Setenv("REDIS_DB", "3")
	os.Setenv("REDIS_POOL_SIZE", "25")
	os.Setenv("REDIS_DIAL_TIMEOUT", "2s")
	os.Setenv("REDIS_MAX_RETRIES", "-1")

	config := Load()

	if config.LogLevel != "debug" {
		t.Errorf("Load() LogLevel = %v, want %v", config.LogLevel, "debug")
	}

	if config.CacheDefaultTTL != 90*time.Second {
		t.Errorf("Load() CacheDefaultTTL = %v, want %v", config.CacheDefaultTTL, 90*time.Second)
	}

	if config.CacheCleanupInterval != 30*time.Second {
		t.Errorf("Load() CacheCleanupInterval = %v, want %v", config.CacheCleanupInterval, 30*time.Second)
	}

	if !config.RedisEnabled {
		t.Errorf("Load() RedisEnabled = %v, want %v", config.RedisEnabled, true)
	}

	if config.RedisAddress != "redis.internal:6380" {
		t.Errorf("Load() RedisAddress = %v, want %v", config.RedisAddress, "redis.internal:6380")
	}

	if config.RedisPassword != "secret" {
		t.Errorf("Load() RedisPassword = %v, want %v", config.RedisPassword, "secret")
	}

	if config.RedisDB != 3 {
		t.Errorf("Load() RedisDB = %v, want %v", config.RedisDB, 3)
	}

	if config.RedisPoolSize != 25 {
		t.Errorf("Load() RedisPoolSize = %v, want %v", config.RedisPoolSize, 25)
	}

	if config.RedisDialTimeout != 2*time.Second {
		t.Errorf("Load() RedisDialTimeout = %v, want %v", config.RedisDialTimeout, 2*time.Second)
	}

	if config.RedisMaxRetries != -1 {
		t.Errorf("Load() RedisMaxRetries = %v, want %v", config.RedisMaxRetries, -1)
	}
}

func TestLoadFallsBackOnUnparseableValues(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	os.Setenv("CACHE_DEFAULT_TTL", "not-a-duration")
	os.Setenv("REDIS_DB", "not-a-number")
	os.Setenv("REDIS_ENABLED", "not-a-bool")

	config := Load()

	if config.CacheDefaultTTL != 5*time.Minute {
		t.Errorf("Load() CacheDefaultTTL = %v, want fallback %v", config.CacheDefaultTTL, 5*time.Minute)
	}

	if config.RedisDB != 0 {
		t.Errorf("Load() RedisDB = %v, want fallback %v", config.RedisDB, 0)
	}

	if config.RedisEnabled {
		t.Errorf("Load() RedisEnabled = %v, want fallback %v", config.RedisEnabled, false)
	}
}

func TestLoadLogLevelDrivesGlobalLogger(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	os.Setenv("LOG_LEVEL", "debug")

	config := Load()
	if got := logging.ParseLevel(config.LogLevel); got != logging.DebugLevel {
		t.Errorf("ParseLevel(%q) = %v, want %v", config.LogLevel, got, logging.DebugLevel)
	}

	logger := logging.InitGlobalLogger(config.LogLevel)
	if logger == nil {
		t.Fatal("InitGlobalLogger returned nil")
	}
	if logging.GetGlobalLogger() != logger {
		t.Error("global logger should be the one built from the configured level")
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		setEnv       bool
		defaultValue string
		want         string
	}{
		{"existing variable", "TEST_KEY_EXISTS", "custom", true, "default", "custom"},
		{"missing variable", "TEST_KEY_MISSING", "", false, "default", "default"},
		{"empty variable", "TEST_KEY_EMPTY", "", true, "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			if got := getEnv(tt.key, tt.defaultValue); got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetIntEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		setEnv       bool
		defaultValue int
		want         int
	}{
		{"valid integer", "TEST_INT_VALID", "42", true, 7, 42},
		{"negative integer", "TEST_INT_VALID", "-1", true, 7, -1},
		{"invalid integer", "TEST_INT_INVALID", "forty-two", true, 7, 7},
		{"missing variable", "TEST_INT_MISSING", "", false, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			if got := getIntEnv(tt.key, tt.defaultValue); got != tt.want {
				t.Errorf("getIntEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetDurationEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		setEnv       bool
		defaultValue time.Duration
		want         time.Duration
	}{
		{"valid duration", "TEST_DURATION_VALID", "90s", true, time.Minute, 90 * time.Second},
		{"compound duration", "TEST_DURATION_VALID", "1h30m", true, time.Minute, 90 * time.Minute},
		{"invalid duration", "TEST_DURATION_INVALID", "soon", true, time.Minute, time.Minute},
		{"missing variable", "TEST_DURATION_MISSING", "", false, time.Minute, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			if got := getDurationEnv(tt.key, tt.defaultValue); got != tt.want {
				t.Errorf("getDurationEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LogLevel:             "info",
			CacheDefaultTTL:      5 * time.Minute,
			CacheCleanupInterval: 10 * time.Minute,
			RedisEnabled:         true,
			RedisAddress:         "localhost:6379",
			RedisDB:              0,
			RedisPoolSize:        10,
			RedisDialTimeout:     5 * time.Second,
			RedisMaxRetries:      3,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid configuration", func(c *Config) {}, ""},
		{"redis disabled skips redis checks", func(c *Config) {
			c.RedisEnabled = false
			c.RedisDB = 99
			c.RedisPoolSize = 0
		}, ""},
		{"zero default ttl", func(c *Config) { c.CacheDefaultTTL = 0 }, "CACHE_DEFAULT_TTL"},
		{"negative default ttl", func(c *Config) { c.CacheDefaultTTL = -time.Minute }, "CACHE_DEFAULT_TTL"},
		{"zero cleanup interval", func(c *Config) { c.CacheCleanupInterval = 0 }, "CACHE_CLEANUP_INTERVAL"},
		{"missing redis address", func(c *Config) { c.RedisAddress = "" }, "REDIS_ADDRESS"},
		{"redis db too large", func(c *Config) { c.RedisDB = 16 }, "REDIS_DB"},
		{"redis db negative", func(c *Config) { c.RedisDB = -1 }, "REDIS_DB"},
		{"pool size too small", func(c *Config) { c.RedisPoolSize = 0 }, "REDIS_POOL_SIZE"},
		{"zero dial timeout", func(c *Config) { c.RedisDialTimeout = 0 }, "REDIS_DIAL_TIMEOUT"},
		{"retries below -1", func(c *Config) { c.RedisMaxRetries = -2 }, "REDIS_MAX_RETRIES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
