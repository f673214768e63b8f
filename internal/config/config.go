// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server binary needs from the environment.
type Config struct {
	Port string

	// UseMemoryStore selects the in-memory store instead of Firestore.
	UseMemoryStore bool
	// SkipAuth replaces Firebase token checks with a local dev identity.
	SkipAuth bool

	GoogleCloudProject string

	// RateAPIBaseURL is the exchange-rate endpoint; empty disables live rates.
	RateAPIBaseURL string

	OpenAIAPIKey string
	OpenAIModel  string

	// SchedulerToken authorizes the all-owners recurring processing endpoint.
	SchedulerToken string

	DefaultBaseCurrency string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[Config] loaded .env file")
	}

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		UseMemoryStore:      getEnvBool("USE_MEMORY_STORE", false),
		SkipAuth:            getEnvBool("SKIP_AUTH", false),
		GoogleCloudProject:  os.Getenv("GOOGLE_CLOUD_PROJECT"),
		RateAPIBaseURL:      getEnv("RATE_API_BASE_URL", "https://open.er-api.com/v6/latest"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         os.Getenv("OPENAI_MODEL"),
		SchedulerToken:      os.Getenv("SCHEDULER_TOKEN"),
		DefaultBaseCurrency: getEnv("DEFAULT_BASE_CURRENCY", "USD"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[Config] invalid boolean for %s: %q, using %v", key, v, fallback)
		return fallback
	}
	return b
}
