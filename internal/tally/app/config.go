package app

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 3001)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired refresh token purge interval (default: 1h)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite database file (default: ./tally.db)
	DatabaseURL    string // Postgres connection string, required for postgres
	PepperFile     string // File holding the password pepper, created if missing (default: ./pepper)

	AccessSecret  string // HS256 secret for access tokens, at least 32 bytes
	RefreshSecret string // HS256 secret for refresh tokens, at least 32 bytes and different from AccessSecret
	Issuer        string // iss claim (default: tally)

	APIPrefix   string // Where the API is mounted (default: /api)
	FrontendURL string // Origin allowed by CORS (default: http://localhost:5173)
	RedisURL    string // Optional: shares rate limit counters between replicas
}

// LoadDotEnv loads variables from the given files (default ".env") without
// overriding anything already set. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func LoadConfig() Config {
	return Config{
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 3001),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		DatabaseDriver: getEnvOrDefault("TALLY_DATABASE_DRIVER", "sqlite"),
		DatabaseFile:   getEnvOrDefault("TALLY_DATABASE_FILE", "tally.db"),
		DatabaseURL:    os.Getenv("TALLY_DATABASE_URL"),
		PepperFile:     getEnvOrDefault("TALLY_PEPPER_FILE", "pepper"),

		AccessSecret:  os.Getenv("TALLY_ACCESS_SECRET"),
		RefreshSecret: os.Getenv("TALLY_REFRESH_SECRET"),
		Issuer:        getEnvOrDefault("TALLY_ISSUER", "tally"),

		APIPrefix:   getEnvOrDefault("TALLY_API_PREFIX", "/api"),
		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		RedisURL:    os.Getenv("REDIS_URL"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
