// Package config loads shellhook settings from the config hierarchy and
// assembles the read-only per-invocation RunConfig shared by the pipeline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the shellhook CLI tool configuration.
type Configuration struct {
	WebhookURL    string  `koanf:"webhook_url" validate:"omitempty,url"`
	Title         string  `koanf:"title"`
	Format        string  `koanf:"format" validate:"oneof=googlechat slack"`
	BufferSize    int     `koanf:"buffer_size" validate:"min=1"`
	BufferTimeout float64 `koanf:"buffer_timeout" validate:"gt=0"` // seconds
	DryRun        bool    `koanf:"dry_run"`
}

// Load loads configuration from global, local, and environment sources.
// Priority: Environment variables > Local config > Global config > Defaults.
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	// Load global config if it exists
	homeDir, err := os.UserHomeDir()
	if err == nil {
		globalPath := filepath.Join(homeDir, ".shellhook", "config.json")
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	// Load local config if it exists
	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	// Override with environment variables (highest priority)
	k.Load(env.Provider("SHELLHOOK_", ".", envTransform), nil)

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The bare WEBHOOK_URL variable is honored too, matching what wrapper
	// scripts already export for other webhook tooling.
	if url := os.Getenv("WEBHOOK_URL"); url != "" && os.Getenv("SHELLHOOK_WEBHOOK_URL") == "" {
		cfg.WebhookURL = url
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: SHELLHOOK_BUFFER_SIZE -> buffer_size
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "SHELLHOOK_"))
}
