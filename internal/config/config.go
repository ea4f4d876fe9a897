package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Gemini API settings. The API key is optional: without one the
	// keyword profiler runs on its fixed fallback list.
	GeminiAPIKey         string `json:"-"` // Don't expose in JSON
	GeminiModel          string `json:"gemini_model"`
	GeminiTimeoutSeconds int    `json:"gemini_timeout_seconds"`

	// Session store settings
	SessionStore    string `json:"session_store"` // "memory" or "redis"
	SessionTTLHours int    `json:"session_ttl_hours"`
	RedisAddress    string `json:"redis_address"`
	RedisPassword   string `json:"-"` // Don't expose in JSON
	RedisDB         int    `json:"redis_db"`

	// Catalog settings
	CatalogSource string `json:"catalog_source"` // "static", "file", or "gcs"
	CatalogFile   string `json:"catalog_file"`
	CatalogBucket string `json:"catalog_bucket"`
	CatalogObject string `json:"catalog_object"`

	// Keyword profile cache settings
	CacheBackend  string `json:"cache_backend"` // "memory", "gcs", or "off"
	CacheBucket   string `json:"cache_bucket"`
	CacheTTLHours int    `json:"cache_ttl_hours"`

	// Logging
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
}

// Load reads configuration from environment variables and .env file.
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:                 getEnvOrDefault("PORT", "8080"),
		Host:                 getEnvOrDefault("HOST", "0.0.0.0"),
		GeminiAPIKey:         getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiTimeoutSeconds: getEnvOrDefaultInt("GEMINI_TIMEOUT_SECONDS", 30),
		SessionStore:         getEnvOrDefault("SESSION_STORE", "memory"),
		SessionTTLHours:      getEnvOrDefaultInt("SESSION_TTL_HOURS", 24),
		RedisAddress:         getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:        getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:              getEnvOrDefaultInt("REDIS_DB", 0),
		CatalogSource:        getEnvOrDefault("CATALOG_SOURCE", "static"),
		CatalogFile:          getEnvOrDefault("CATALOG_FILE", ""),
		CatalogBucket:        getEnvOrDefault("CATALOG_BUCKET", ""),
		CatalogObject:        getEnvOrDefault("CATALOG_OBJECT", "catalog.csv"),
		CacheBackend:         getEnvOrDefault("CACHE_BACKEND", "memory"),
		CacheBucket:          getEnvOrDefault("CACHE_BUCKET", ""),
		CacheTTLHours:        getEnvOrDefaultInt("CACHE_TTL_HOURS", 24),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
	}

	return config, config.validate()
}

// validate checks configuration consistency. A missing Gemini key is not an
// error: the profiler degrades to its fallback list.
func (c *Config) validate() error {
	switch c.SessionStore {
	case "memory":
	case "redis":
		if c.RedisAddress == "" {
			return &ConfigError{Field: "REDIS_ADDRESS", Message: "required when SESSION_STORE=redis"}
		}
	default:
		return &ConfigError{Field: "SESSION_STORE", Message: "must be memory or redis"}
	}

	switch c.CatalogSource {
	case "static":
	case "file":
		if c.CatalogFile == "" {
			return &ConfigError{Field: "CATALOG_FILE", Message: "required when CATALOG_SOURCE=file"}
		}
	case "gcs":
		if c.CatalogBucket == "" {
			return &ConfigError{Field: "CATALOG_BUCKET", Message: "required when CATALOG_SOURCE=gcs"}
		}
	default:
		return &ConfigError{Field: "CATALOG_SOURCE", Message: "must be static, file, or gcs"}
	}

	switch c.CacheBackend {
	case "memory", "off":
	case "gcs":
		if c.CacheBucket == "" {
			return &ConfigError{Field: "CACHE_BUCKET", Message: "required when CACHE_BACKEND=gcs"}
		}
	default:
		return &ConfigError{Field: "CACHE_BACKEND", Message: "must be memory, gcs, or off"}
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
