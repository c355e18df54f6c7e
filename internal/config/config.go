package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	JWTSecret       string
	ServerPort      string
	OwnerUsername   string
	OutboxInterval  string
	OutboxBatchSize string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "murajiah"),
		JWTSecret:       getEnv("JWT_SECRET", "super-secret-key-change-me"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		OwnerUsername:   getEnv("OWNER_USERNAME", ""),
		OutboxInterval:  getEnv("OUTBOX_INTERVAL", "2"),
		OutboxBatchSize: getEnv("OUTBOX_BATCH_SIZE", "50"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
