package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort         int
	DatabasePath       string
	SessionLifetime    time.Duration
	AuditRetentionDays int    // 0 keeps audit entries forever
	AuditSweepSchedule string // standard cron expression
}

// Load loads configuration from environment variables or sets defaults.
// The listen port honors WEB_PORT first, then PORT.
func Load() (*Config, error) {
	portStr := os.Getenv("WEB_PORT")
	if portStr == "" {
		portStr = os.Getenv("PORT")
	}
	if portStr == "" {
		portStr = "3000"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	lifetimeHours, err := strconv.Atoi(getEnv("SESSION_LIFETIME_HOURS", "24"))
	if err != nil {
		return nil, err
	}

	retentionDays, err := strconv.Atoi(getEnv("AUDIT_RETENTION_DAYS", "0"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:         port,
		DatabasePath:       getEnv("DATABASE_PATH", "./database.db"),
		SessionLifetime:    time.Duration(lifetimeHours) * time.Hour,
		AuditRetentionDays: retentionDays,
		AuditSweepSchedule: getEnv("AUDIT_SWEEP_SCHEDULE", "0 3 * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
