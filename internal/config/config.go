// Package config loads application settings from environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings for the rewards service.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`

	// RewardsDBFile is the JSON document holding the user-reward table.
	// Ignored when DatabaseURL is set.
	RewardsDBFile string `envconfig:"REWARDS_DB_FILE" default:"rewards_db.json"`
	// DatabaseURL switches persistence to Postgres when non-empty.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// BackupSchedule is a cron expression for periodic store backups.
	BackupSchedule string `envconfig:"BACKUP_SCHEDULE" default:"0 3 * * *"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// Validate checks settings that envconfig cannot express.
func (c *Config) Validate() error {
	if c.RewardsDBFile == "" && c.DatabaseURL == "" {
		return fmt.Errorf("REWARDS_DB_FILE or DATABASE_URL must be set")
	}
	return nil
}

// Load reads the environment and fills the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
