// Package config loads server configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the demo server configuration.
type Config struct {
	// Addr is the listen address of the demo server.
	Addr string
	// BaseURL is the root URL of the serving endpoint.
	BaseURL string
	// Engine is the default engine name, e.g. "175b".
	Engine string
	// APIKey is an optional bearer token for the serving endpoint.
	APIKey string
	// CacheTTL bounds how long identical completions are reused.
	// Zero disables the response cache.
	CacheTTL time.Duration
}

// Load reads configuration from the environment, loading a .env file
// first if one exists.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Addr:     getEnvOrDefault("TEXTGEN_ADDR", ":8080"),
		BaseURL:  getEnvOrDefault("TEXTGEN_BASE_URL", "https://opt.alpa.ai"),
		Engine:   getEnvOrDefault("TEXTGEN_ENGINE", "175b"),
		APIKey:   os.Getenv("TEXTGEN_API_KEY"),
		CacheTTL: getEnvAsDurationOrDefault("TEXTGEN_CACHE_TTL", 10*time.Minute),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
