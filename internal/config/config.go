package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	RedisHost       string
	RedisPort       string
	RedisEnabled    bool
	LegitimatePath  string
	PhishingPath    string
	HistoryLimit    int
	AllowedDomain   string
	TrustProxy      bool
	SkipOriginCheck bool
}

func LoadConfig() (*Config, error) {
	// Optional .env for local development; ignored when absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "5000"),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisEnabled:    getEnvBool("REDIS_ENABLED", true),
		LegitimatePath:  getEnv("LEGIT_URLS_PATH", "static/assets/legitimateurls.csv"),
		PhishingPath:    getEnv("PHISH_URLS_PATH", "static/assets/phishurls.csv"),
		HistoryLimit:    getEnvInt("HISTORY_LIMIT", 100),
		AllowedDomain:   os.Getenv("ALLOWED_DOMAIN"),
		TrustProxy:      getEnvBool("TRUST_PROXY", true),
		SkipOriginCheck: getEnvBool("SKIP_ORIGIN_CHECK", false),
	}

	if cfg.HistoryLimit <= 0 {
		return nil, fmt.Errorf("HISTORY_LIMIT must be positive, got %d", cfg.HistoryLimit)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
