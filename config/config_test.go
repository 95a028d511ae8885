package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(100), cfg.DailyReward)
	assert.Equal(t, 24*time.Hour, cfg.DailyCooldown)
	assert.Equal(t, 5*time.Second, cfg.LockTimeout)
	assert.Equal(t, ":8080", cfg.PanelAddr)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DAILY_REWARD", "250")
	t.Setenv("DAILY_COOLDOWN", "12h")
	t.Setenv("DB_LOCK_TIMEOUT", "250ms")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(250), cfg.DailyReward)
	assert.Equal(t, 12*time.Hour, cfg.DailyCooldown)
	assert.Equal(t, 250*time.Millisecond, cfg.LockTimeout)
}

func TestValidateBot(t *testing.T) {
	cfg := &Config{Environment: "production", DatabaseURL: "postgres://localhost/coinbot"}
	assert.Error(t, cfg.ValidateBot())

	cfg.DiscordToken = "token"
	assert.NoError(t, cfg.ValidateBot())

	cfg = &Config{Environment: "test"}
	assert.NoError(t, cfg.ValidateBot())
}

func TestValidatePanel(t *testing.T) {
	cfg := &Config{Environment: "production", DatabaseURL: "postgres://localhost/coinbot"}
	assert.Error(t, cfg.ValidatePanel())

	cfg.PanelAPIKey = "key"
	assert.NoError(t, cfg.ValidatePanel())
}
