// Package cli provides the Cobra-based command tree for shellhook: running
// a single command (run), an interactive session (shell), and version info.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/shellhook/internal/app"
	"github.com/ariel-frischer/shellhook/internal/config"
)

// exitCode is set by subcommands that complete without a CLI error but
// still need to surface a specific process exit code.
var exitCode = app.ExitSuccess

var rootCmd = &cobra.Command{
	Use:   "shellhook",
	Short: "Stream command output to chat webhooks",
	Long: `shellhook runs a command, mirrors its output locally, and relays the
output to a chat webhook in batched messages, with start and final status
notifications.

The webhook URL can be set with --webhook-url or the WEBHOOK_URL
environment variable.`,
	Example: `  # Stream a build to Google Chat
  shellhook run --webhook-url https://chat.googleapis.com/... -- make release

  # Custom title and final messages
  shellhook run -t "CI" --on-success "build green" -- go test ./...

  # See the payloads without sending anything
  shellhook --dry-run run -- ./deploy.sh

  # Interactive session, one invocation per entered line
  shellhook shell`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return app.ExitError
	}
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a local config file (JSON)")
	rootCmd.PersistentFlags().String("webhook-url", "", "Webhook URL to send messages to (env: WEBHOOK_URL)")
	rootCmd.PersistentFlags().StringP("title", "t", "", "Title prepended to all messages")
	rootCmd.PersistentFlags().String("format", "", "Webhook payload format: googlechat or slack")
	rootCmd.PersistentFlags().Int("buffer-size", 0, "Max lines to buffer before sending a message")
	rootCmd.PersistentFlags().Float64("buffer-timeout", 0, "Max seconds to wait before flushing the buffer")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Print would-be payloads instead of sending them")
}

// loadConfiguration loads the config hierarchy and layers the global flags
// on top (flags beat environment, file, and defaults).
func loadConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("webhook-url") {
		cfg.WebhookURL, _ = flags.GetString("webhook-url")
	}
	if flags.Changed("title") {
		cfg.Title, _ = flags.GetString("title")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("buffer-size") {
		cfg.BufferSize, _ = flags.GetInt("buffer-size")
	}
	if flags.Changed("buffer-timeout") {
		cfg.BufferTimeout, _ = flags.GetFloat64("buffer-timeout")
	}
	if flags.Changed("dry-run") {
		cfg.DryRun, _ = flags.GetBool("dry-run")
	}
	return cfg, nil
}

// fail prints an operator-facing error in the tool's own voice.
func fail(err error) error {
	fmt.Fprintf(os.Stderr, "[shellhook] Error: %v\n", err)
	return err
}
