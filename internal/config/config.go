package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the API process reads from the environment.
type Config struct {
	AppPort       string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionSecret string
	SessionTTL    time.Duration
	DataDir       string
	MigrationsURL string
}

// Load reads the configuration from the environment and applies defaults.
// Only DATABASE_URL and SESSION_SECRET are mandatory.
func Load() (*Config, error) {
	const (
		defaultPort          = "8080"
		defaultRedisAddr     = "localhost:6379"
		defaultSessionTTL    = 24 * time.Hour
		defaultDataDir       = "datos"
		defaultMigrationsURL = "file://db/migrations"
	)

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	redisDB, err := parseIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	return &Config{
		AppPort:       getEnvOrDefault("APP_PORT", defaultPort),
		DatabaseURL:   databaseURL,
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", defaultRedisAddr),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		SessionSecret: secret,
		SessionTTL:    sessionTTL,
		DataDir:       getEnvOrDefault("DATA_DIR", defaultDataDir),
		MigrationsURL: getEnvOrDefault("MIGRATIONS_URL", defaultMigrationsURL),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}
	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(v)
}
