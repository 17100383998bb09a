// Package runner owns the subprocess lifecycle: spawn with both output
// streams piped, stream them through concurrent line readers, and signal
// the pipeline when everything has drained.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/ariel-frischer/shellhook/internal/stream"
)

// ExitStatus describes how the child process ended.
type ExitStatus struct {
	Code     int
	Signaled bool // terminated by a signal, Code is then a best-effort 1
}

// Runner executes one command and streams its output into the pipeline.
type Runner struct {
	Argv   []string  // command and arguments, Argv[0] is resolved via PATH
	Quiet  bool      // suppress forwarding to the channel, echo still happens
	Stdout io.Writer // local echo target for child stdout
	Stderr io.Writer // local echo target for child stderr
}

// Run spawns the command, attaches one line reader per output pipe, waits
// for both readers to drain and the process to exit, then sends the
// Finished sentinel. Exactly one sentinel goes out on every return path,
// spawn failures and reader I/O errors included, so the dispatcher always
// terminates. A spawn failure (typically executable not found) is returned
// without starting any reader; callers map it to a "failed to start"
// status.
func (r *Runner) Run(ch chan<- stream.Message, done <-chan struct{}) (ExitStatus, error) {
	defer func() {
		ch <- stream.Finished()
	}()

	if len(r.Argv) == 0 {
		return ExitStatus{}, errors.New("no command given")
	}

	cmd := exec.Command(r.Argv[0], r.Argv[1:]...)
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return ExitStatus{}, fmt.Errorf("creating stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return ExitStatus{}, fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return ExitStatus{}, fmt.Errorf("starting %s: %w", r.Argv[0], err)
	}

	readers := []*stream.LineReader{
		{Source: stdoutPipe, Echo: r.Stdout, Out: ch, Quiet: r.Quiet, Done: done},
		{Source: stderrPipe, Echo: r.Stderr, Out: ch, Quiet: r.Quiet, Done: done},
	}
	var wg sync.WaitGroup
	for _, lr := range readers {
		wg.Add(1)
		go func(lr *stream.LineReader) {
			defer wg.Done()
			// A read error ends one stream early; lines already read
			// are not lost and the invocation carries on.
			if err := lr.Run(); err != nil {
				fmt.Fprintf(r.Stderr, "[shellhook] Error: %v\n", err)
			}
		}(lr)
	}

	// The pipes must be fully drained before Wait closes them, and OS pipe
	// buffers can still hold output after the process exits. Truncated
	// capture is the failure mode if this order is wrong.
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return ExitStatus{}, fmt.Errorf("waiting for %s: %w", r.Argv[0], err)
		}
		if code := exitErr.ExitCode(); code >= 0 {
			return ExitStatus{Code: code}, nil
		}
		return ExitStatus{Code: 1, Signaled: true}, nil
	}
	return ExitStatus{Code: 0}, nil
}

// IsNotFound reports whether a spawn failure was a missing executable.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
