package config

import (
	"errors"
	"os"
)

type Config struct {
	Port            string
	Environment     string
	SupabaseURL     string
	SupabaseKey     string
	SupabaseDBURL   string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	CORSOrigins     string
	TablePrefix     string
	LogDir          string // Empty = stdout only
	// Inference API configuration
	OpenAIAPIKey   string
	ChatModel      string
	AudioModel     string
	// Seed tooling
	TestUserEmail    string
	TestUserPassword string
}

// ErrMissingAPIKey aborts startup when the inference API key is absent.
// The AI handlers must never come up in a state where every request fails.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is required")

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := getEnv("SUPABASE_URL", "")

	// Construct JWKS URL from Supabase URL
	jwksURL := supabaseURL + "/auth/v1/.well-known/jwks.json"

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		SupabaseURL:     supabaseURL,
		SupabaseKey:     getEnv("SUPABASE_KEY", ""),
		SupabaseDBURL:   getEnv("SUPABASE_DB_URL", ""),
		SupabaseJWKSURL: jwksURL,
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:     getTablePrefix(env),
		LogDir:          getEnv("LOG_DIR", ""),
		// Inference API configuration
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		ChatModel:    getEnv("CHAT_MODEL", "gpt-4o-mini"),
		AudioModel:   getEnv("AUDIO_MODEL", "whisper-1"),
		// Seed tooling
		TestUserEmail:    getEnv("TEST_USER_EMAIL", "test-clinician@soapify.dev"),
		TestUserPassword: getEnv("TEST_USER_PASSWORD", "soapify-test-password"),
	}
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return ErrMissingAPIKey
	}
	if c.SupabaseDBURL == "" {
		return errors.New("SUPABASE_DB_URL is required")
	}
	if c.SupabaseURL == "" {
		return errors.New("SUPABASE_URL is required")
	}
	return nil
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
