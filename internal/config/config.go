package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string // sqlite (default), postgres, mysql
	DatabasePath    string // sqlite only
	DatabaseURL     string // postgres/mysql only
	SessionDuration time.Duration
	TokenSecret     string
	SeedDemoUsers   bool

	// Progress report emails (disabled when SESFromEmail is empty)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is applied first when
// present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./learnquest.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		SessionDuration: getDurationEnv("SESSION_DURATION", 24*time.Hour),
		TokenSecret:     getEnv("TOKEN_SECRET", "learnquest-dev-secret"),
		SeedDemoUsers:   getBoolEnv("SEED_DEMO_USERS", true),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:    getEnv("SES_FROM_EMAIL", ""),
		SESFromName:     getEnv("SES_FROM_NAME", "LearnQuest"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv reads a boolean environment variable or returns a default value
func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default", key, value)
		return defaultValue
	}
	return parsed
}

// getDurationEnv reads a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default", key, value)
		return defaultValue
	}
	return parsed
}
