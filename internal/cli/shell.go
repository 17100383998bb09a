package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ariel-frischer/shellhook/internal/app"
	"github.com/ariel-frischer/shellhook/internal/config"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session streaming each command",
	Long: `Start an interactive session. Every entered line runs as one shell
command whose output is streamed to the webhook, with its own start and
final status notifications. Type "exit" or "quit" (or press Ctrl-D) to
leave the session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfiguration(cmd)
		if err != nil {
			return fail(err)
		}
		quiet, _ := cmd.Flags().GetBool("quiet")

		code, err := runShell(cmd, cfg, quiet, os.Stdin)
		if err != nil {
			return fail(err)
		}
		exitCode = code
		return nil
	},
}

// runShell reads commands line by line until EOF or an exit keyword. Each
// line becomes one ad-hoc invocation reusing the session's webhook
// configuration; per-line override text starts cleared. The exit code of
// the last invocation becomes the session's exit code.
func runShell(cmd *cobra.Command, cfg *config.Configuration, quiet bool, input *os.File) (int, error) {
	interactive := term.IsTerminal(int(input.Fd()))
	if interactive {
		fmt.Println("shellhook interactive session. Type \"exit\" to leave.")
	}

	lastCode := app.ExitSuccess
	scanner := bufio.NewScanner(input)
	for {
		if interactive {
			fmt.Print("shellhook> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		rc, err := cfg.NewRunConfig([]string{"sh", "-c", line})
		if err != nil {
			return lastCode, err
		}
		rc.Quiet = quiet

		code, err := runInvocation(cmd, rc)
		if err != nil {
			// A configuration error ends the session; command failures
			// only set the exit code and the loop continues.
			return lastCode, err
		}
		lastCode = code
	}
	if err := scanner.Err(); err != nil {
		return lastCode, fmt.Errorf("reading input: %w", err)
	}
	return lastCode, nil
}

func init() {
	shellCmd.Flags().BoolP("quiet", "q", false, "Don't stream output lines to the webhook (status messages are still sent)")
	rootCmd.AddCommand(shellCmd)
}
