package config

import (
	"fmt"
	"time"

	"github.com/ariel-frischer/shellhook/internal/webhook"
)

// RunConfig carries the per-invocation settings shared read-only by every
// pipeline component. It is assembled once, before the subprocess spawns,
// and never mutated afterwards.
type RunConfig struct {
	Argv          []string
	WebhookURL    string
	Title         string
	Format        webhook.Format
	BufferSize    int
	BufferTimeout time.Duration
	Quiet         bool
	DryRun        bool
	OnSuccess     string // overrides the default success message when set
	OnFailure     string // overrides the default failure messages when set
}

// NewRunConfig builds the invocation config for one command from the
// loaded tool configuration.
func (c *Configuration) NewRunConfig(argv []string) (*RunConfig, error) {
	format, err := webhook.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("no command given")
	}
	return &RunConfig{
		Argv:          argv,
		WebhookURL:    c.WebhookURL,
		Title:         c.Title,
		Format:        format,
		BufferSize:    c.BufferSize,
		BufferTimeout: time.Duration(c.BufferTimeout * float64(time.Second)),
		DryRun:        c.DryRun,
	}, nil
}

// TitlePrefix returns the "[title] " prefix applied to every outbound
// message, or the empty string when no title is configured.
func (rc *RunConfig) TitlePrefix() string {
	if rc.Title == "" {
		return ""
	}
	return "[" + rc.Title + "] "
}
