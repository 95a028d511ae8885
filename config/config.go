package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration. It is loaded once at process
// start and passed by reference into constructors; core logic never reads
// the environment on its own.
type Config struct {
	// Discord configuration
	DiscordToken   string `env:"DISCORD_TOKEN"`
	DiscordGuildID string `env:"DISCORD_GUILD_ID"`

	// Database configuration
	DatabaseURL string `env:"DATABASE_URL"`
	// Bound on how long a writer waits for the store lock before the whole
	// operation fails. Callers treat the failure as retryable.
	LockTimeout time.Duration `env:"DB_LOCK_TIMEOUT, default=5s"`

	// Economy settings
	DailyReward   int64         `env:"DAILY_REWARD, default=100"`
	DailyCooldown time.Duration `env:"DAILY_COOLDOWN, default=24h"`

	// Admin panel configuration
	PanelAPIKey string `env:"PANEL_API_KEY"`
	PanelAddr   string `env:"PANEL_ADDR, default=:8080"`

	// Environment: "development", "production" or "test"
	Environment string `env:"ENVIRONMENT, default=development"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// ValidateBot checks the settings the Discord frontend requires.
func (c *Config) ValidateBot() error {
	if c.Environment == "test" {
		return nil
	}
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// ValidatePanel checks the settings the admin panel requires.
func (c *Config) ValidatePanel() error {
	if c.Environment == "test" {
		return nil
	}
	if c.PanelAPIKey == "" {
		return fmt.Errorf("PANEL_API_KEY is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}
