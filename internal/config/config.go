// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for all user files (defaults to "./data", always absolute)
	LogLevel string
	Port     int
	DevMode  bool
	Backup   BackupConfig
}

// BackupConfig holds the S3-compatible backup target.
// Backups are disabled when Bucket is empty.
type BackupConfig struct {
	Bucket          string
	Prefix          string
	Endpoint        string // Custom endpoint for R2, MinIO and other S3-compatible stores
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Schedule        string // Cron spec, e.g. "@daily" or "0 3 * * *"
	RetentionDays   int    // 0 keeps every backup
}

// Enabled reports whether a backup target is configured
func (b BackupConfig) Enabled() bool {
	return b.Bucket != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv builds the configuration from the current environment only
func FromEnv() (*Config, error) {
	dataDir, err := ResolveDataDir(getEnv("INVESTA_DATA_DIR", "./data"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:  dataDir,
		Port:     getEnvAsInt("INVESTA_PORT", 8001),
		DevMode:  getEnvAsBool("DEV_MODE", false),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Backup: BackupConfig{
			Bucket:          getEnv("BACKUP_S3_BUCKET", ""),
			Prefix:          strings.Trim(getEnv("BACKUP_S3_PREFIX", "investa"), "/"),
			Endpoint:        getEnv("BACKUP_S3_ENDPOINT", ""),
			Region:          getEnv("BACKUP_S3_REGION", "auto"),
			AccessKeyID:     getEnv("BACKUP_S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("BACKUP_S3_SECRET_ACCESS_KEY", ""),
			Schedule:        getEnv("BACKUP_SCHEDULE", "@daily"),
			RetentionDays:   getEnvAsInt("BACKUP_RETENTION_DAYS", 30),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveDataDir makes dir absolute and ensures it exists
func ResolveDataDir(dir string) (string, error) {
	absDataDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return absDataDir, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.Backup.RetentionDays < 0 {
		return fmt.Errorf("invalid BACKUP_RETENTION_DAYS %d", c.Backup.RetentionDays)
	}
	if !c.Backup.Enabled() {
		return nil
	}
	if (c.Backup.AccessKeyID == "") != (c.Backup.SecretAccessKey == "") {
		return fmt.Errorf("backup credentials require both BACKUP_S3_ACCESS_KEY_ID and BACKUP_S3_SECRET_ACCESS_KEY")
	}
	if _, err := cron.ParseStandard(c.Backup.Schedule); err != nil {
		return fmt.Errorf("invalid BACKUP_SCHEDULE %q: %w", c.Backup.Schedule, err)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
