package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/shellhook/internal/app"
	"github.com/ariel-frischer/shellhook/internal/config"
	"github.com/ariel-frischer/shellhook/internal/webhook"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Run a single command and stream its output",
	Long: `Run a single command and stream its output to the configured webhook.

Output lines are buffered and sent in batches: when the buffer reaches
--buffer-size lines, when --buffer-timeout elapses, or when the command
finishes. The command's exit code becomes shellhook's exit code.`,
	Example: `  shellhook run -- make release
  shellhook run --quiet -- ./noisy-script.sh
  shellhook run --on-failure "release failed, check the logs" -- ./release.sh`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfiguration(cmd)
		if err != nil {
			return fail(err)
		}

		rc, err := cfg.NewRunConfig(args)
		if err != nil {
			return fail(err)
		}
		rc.Quiet, _ = cmd.Flags().GetBool("quiet")
		rc.OnSuccess, _ = cmd.Flags().GetString("on-success")
		rc.OnFailure, _ = cmd.Flags().GetString("on-failure")

		code, err := runInvocation(cmd, rc)
		if err != nil {
			return fail(err)
		}
		exitCode = code
		return nil
	},
}

// runInvocation executes one invocation with the real process streams.
func runInvocation(cmd *cobra.Command, rc *config.RunConfig) (int, error) {
	a := &app.App{
		Config:   rc,
		Notifier: webhook.NewClient(rc.WebhookURL, rc.Format, rc.DryRun),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
	return a.Run(cmd.Context())
}

func init() {
	runCmd.Flags().BoolP("quiet", "q", false, "Don't stream output lines to the webhook (status messages are still sent)")
	runCmd.Flags().String("on-success", "", "Custom message to send on command success")
	runCmd.Flags().String("on-failure", "", "Custom message to send on command failure")
	rootCmd.AddCommand(runCmd)
}
