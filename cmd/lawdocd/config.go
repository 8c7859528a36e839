package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all server configuration, loaded from the environment.
type Config struct {
	Port string

	// Path to the legislative XML document, read once at startup.
	DocumentPath string

	// Model provider: "anthropic" or "gemini".
	Provider string

	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string

	// Conversation bounds.
	MaxRounds    int
	ModelTimeout time.Duration

	// Answer cache. An empty path disables caching.
	CachePath string
	CacheTTL  time.Duration

	// Per-client request rate limit. Zero disables limiting.
	QueriesPerSecond float64
}

// Load reads configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Port:         envOr("PORT", "8080"),
		DocumentPath: os.Getenv("LAWDOC_DOCUMENT"),

		Provider: envOr("LAWDOC_PROVIDER", "anthropic"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  os.Getenv("ANTHROPIC_MODEL"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     os.Getenv("GEMINI_MODEL"),

		MaxRounds:    envInt("LAWDOC_MAX_ROUNDS", 5),
		ModelTimeout: envDuration("LAWDOC_MODEL_TIMEOUT", 60*time.Second),

		CachePath: envOr("LAWDOC_CACHE", "lawdoc.db"),
		CacheTTL:  envDuration("LAWDOC_CACHE_TTL", time.Hour),

		QueriesPerSecond: envFloat("LAWDOC_RATE_LIMIT", 5),
	}
}

// Validate returns an error if required configuration is missing.
func (c Config) Validate() error {
	if c.DocumentPath == "" {
		return fmt.Errorf("LAWDOC_DOCUMENT is required")
	}
	switch c.Provider {
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	default:
		return fmt.Errorf("LAWDOC_PROVIDER must be anthropic or gemini, got %q", c.Provider)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
