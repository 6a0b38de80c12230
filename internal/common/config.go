package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// PlaceholderAPIKey is the template value shipped in example env files; a
// key equal to it means the collaborator is not actually configured.
const PlaceholderAPIKey = "your-api-key-here"

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	LLM      LLMConfig
}

// DatabaseConfig holds storage-related configuration. DSN selects the
// postgres store; Path selects the local sqlite store.
type DatabaseConfig struct {
	DSN             string
	Path            string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// LLMConfig holds text-generation collaborator configuration.
type LLMConfig struct {
	Provider    string // "gemini" or "openai"
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Enabled reports whether the collaborator is actually usable: a real,
// non-placeholder credential is present.
func (c LLMConfig) Enabled() bool {
	key := strings.TrimSpace(c.APIKey)
	return key != "" && key != PlaceholderAPIKey
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	provider := getEnv("LLM_PROVIDER", "gemini")
	apiKey := getEnv("LLM_API_KEY", "")
	if apiKey == "" {
		switch provider {
		case "openai":
			apiKey = getEnv("OPENAI_API_KEY", "")
		default:
			apiKey = getEnv("GEMINI_API_KEY", "")
		}
	}
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			Path:            getEnv("DB_PATH", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		LLM: LLMConfig{
			Provider:    provider,
			APIKey:      apiKey,
			Model:       getEnv("LLM_MODEL", ""),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
		},
	}
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini", "openai":
	default:
		return NewAppError("CONFIG_ERROR", "LLM_PROVIDER must be gemini or openai", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
