package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"lifeforge/internal/engine"
	"lifeforge/internal/snapshot"
	"lifeforge/internal/storage"
)

type Config struct {
	DBPath       string
	SnapshotPath string

	UserID    string
	UserName  string
	UserEmail string

	WebhookURL    string
	WebhookAPIKey string

	// MultiLevelUp switches overflow XP handling from the classic
	// one-level-per-completion rule to looping level-ups.
	MultiLevelUp bool
}

// Load reads config.yaml from the working directory or ~/.lifeforge,
// falling back to defaults. Missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".lifeforge"))
	}
	v.SetEnvPrefix("lifeforge")
	v.AutomaticEnv()

	dbPath, err := storage.DefaultDBPath()
	if err != nil {
		return nil, err
	}
	snapPath, err := snapshot.DefaultPath()
	if err != nil {
		return nil, err
	}

	v.SetDefault("database.path", dbPath)
	v.SetDefault("snapshot.path", snapPath)
	v.SetDefault("user.id", "hero")
	v.SetDefault("user.name", "Hero")
	v.SetDefault("user.email", "")
	v.SetDefault("reminder.webhook_url", "")
	v.SetDefault("reminder.api_key", "")
	v.SetDefault("progression.multi_level_up", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		DBPath:        v.GetString("database.path"),
		SnapshotPath:  v.GetString("snapshot.path"),
		UserID:        v.GetString("user.id"),
		UserName:      v.GetString("user.name"),
		UserEmail:     v.GetString("user.email"),
		WebhookURL:    v.GetString("reminder.webhook_url"),
		WebhookAPIKey: v.GetString("reminder.api_key"),
		MultiLevelUp:  v.GetBool("progression.multi_level_up"),
	}, nil
}

// LevelPolicy maps the config flag to the engine policy.
func (c *Config) LevelPolicy() engine.LevelPolicy {
	if c.MultiLevelUp {
		return engine.LevelLoop
	}
	return engine.LevelSingle
}
