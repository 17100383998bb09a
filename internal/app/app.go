// Package app wires one command invocation end to end: channel, batch
// dispatcher, start notification, command runner, drain, final status.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/shellhook/internal/config"
	"github.com/ariel-frischer/shellhook/internal/dispatch"
	"github.com/ariel-frischer/shellhook/internal/runner"
	"github.com/ariel-frischer/shellhook/internal/stream"
)

// Exit codes surfaced at the process boundary.
const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitNotFound = 127
)

// ErrMissingWebhookURL aborts an invocation before any subprocess spawn.
var ErrMissingWebhookURL = errors.New("missing webhook URL: set --webhook-url or the WEBHOOK_URL environment variable")

// App executes one command invocation.
type App struct {
	Config   *config.RunConfig
	Notifier dispatch.Notifier // shared across start, streaming, and final notifications
	Stdout   io.Writer
	Stderr   io.Writer
}

// Run executes the configured command and returns the process exit code.
// The start notification is printed and sent before the spawn; the final
// one is sent only after the dispatcher has fully drained, so no output
// batch ever follows the final status message.
//
// Only the configuration check can fail; every later error is folded into
// the status text and the exit code.
func (a *App) Run(ctx context.Context) (int, error) {
	cfg := a.Config
	if cfg.WebhookURL == "" && !cfg.DryRun {
		return ExitError, ErrMissingWebhookURL
	}

	ch := make(chan stream.Message, stream.DefaultChannelCapacity)
	done := make(chan struct{})

	d := &dispatch.Dispatcher{
		MaxBatch: cfg.BufferSize,
		Timeout:  cfg.BufferTimeout,
		Title:    cfg.Title,
		Notifier: a.Notifier,
		ErrOut:   a.Stderr,
	}
	go func() {
		defer close(done)
		d.Run(ctx, ch)
	}()

	stopFlushRelay := relayFlushSignals(ch, done)
	defer stopFlushRelay()

	prefix := cfg.TitlePrefix()
	start := prefix + fmt.Sprintf(startMessageFormat, strings.Join(cfg.Argv, " "))
	fmt.Fprintln(a.Stdout, start)
	a.send(ctx, start)

	r := &runner.Runner{
		Argv:   cfg.Argv,
		Quiet:  cfg.Quiet,
		Stdout: a.Stdout,
		Stderr: a.Stderr,
	}
	// The runner sends the Finished sentinel on every return path, so the
	// dispatcher is guaranteed to drain and exit.
	status, runErr := r.Run(ch, done)
	<-done

	return a.finish(ctx, status, runErr, prefix), nil
}

// send delivers a status message, reporting failures without aborting.
func (a *App) send(ctx context.Context, message string) {
	if err := a.Notifier.Send(ctx, message); err != nil {
		fmt.Fprintf(a.Stderr, "[shellhook] Error sending notification: %v\n", err)
	}
}

// finish prints and sends the final status message and maps the outcome to
// an exit code.
func (a *App) finish(ctx context.Context, status runner.ExitStatus, runErr error, prefix string) int {
	cfg := a.Config

	if runErr != nil {
		base := cfg.OnFailure
		if base == "" {
			base = fmt.Sprintf(spawnFailureMessageFormat, runErr)
		}
		final := prefix + base
		fmt.Fprintln(a.Stderr, final)
		a.send(ctx, final)
		if runner.IsNotFound(runErr) {
			return ExitNotFound
		}
		return ExitError
	}

	var base string
	failed := true
	switch {
	case status.Signaled:
		base = cfg.OnFailure
		if base == "" {
			base = signalMessage
		}
	case status.Code == 0:
		failed = false
		base = cfg.OnSuccess
		if base == "" {
			base = successMessage
		}
	default:
		base = cfg.OnFailure
		if base == "" {
			base = fmt.Sprintf(failureMessageFormat, status.Code)
		}
	}

	final := prefix + base
	if failed {
		fmt.Fprintln(a.Stderr, final)
	} else {
		fmt.Fprintln(a.Stdout, final)
	}
	a.send(ctx, final)
	return status.Code
}
