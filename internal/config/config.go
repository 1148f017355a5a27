package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port       string
	DBConn     string
	LogLevel   string
	JWTSecret  string
	NotifyCron string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		DBConn:     getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=reminder sslmode=disable"),
		LogLevel:   getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:  getEnv("JWT_SECRET", ""),
		NotifyCron: getEnv("NOTIFY_CRON", "0 8 * * *"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
