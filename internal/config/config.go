package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	ContentPath     string
	MigrationsPath  string
	SessionSecret   string
	SessionDuration time.Duration
	PassPercent     int
}

// Load reads configuration from environment variables with sensible defaults.
// A local .env file is loaded first if one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./clozedrill.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		ContentPath:     getEnv("CONTENT_PATH", "./content"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		SessionSecret:   getEnv("SESSION_SECRET", "dev-only-secret-change-me"),
		SessionDuration: 30 * 24 * time.Hour,
		PassPercent:     getEnvInt("PASS_PERCENT", 70),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
