package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	TokenLifetime time.Duration
	GinMode       string
}

func Load() *Config {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "4000"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "traduflow"),
		DBPassword:    getEnv("DB_PASSWORD", "traduflow"),
		DBName:        getEnv("DB_NAME", "traduflow"),
		JWTSecret:     getEnv("JWT_SECRET", "default-secret-key-change-me"),
		TokenLifetime: time.Duration(getEnvInt("TOKEN_LIFETIME_HOURS", 24)) * time.Hour,
		GinMode:       getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
