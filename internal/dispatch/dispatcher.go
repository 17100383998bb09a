// Package dispatch accumulates captured output lines into batches and
// decides when a batch is flushed to the notifier: when it reaches the
// configured size, when the quiescence timeout elapses, or when the
// pipeline finishes.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ariel-frischer/shellhook/internal/stream"
)

// DefaultTimeout is the quiescence timeout used when none is configured.
const DefaultTimeout = 2 * time.Second

// DefaultMaxBatch is the batch size threshold used when none is configured.
const DefaultMaxBatch = 10

// Notifier delivers one formatted message. Implemented by webhook.Client.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// Dispatcher is the sole consumer of the pipeline channel. It owns the
// batch exclusively between flushes; nothing else touches it.
type Dispatcher struct {
	MaxBatch int           // flush when the batch reaches this many lines
	Timeout  time.Duration // per-iteration wait before flushing what is buffered
	Title    string        // optional, prepended as "[title] " to every flush
	Notifier Notifier
	ErrOut   io.Writer // delivery failures are reported here, defaults to stderr

	batch []string
}

// Run consumes ch until the Finished sentinel arrives or the channel is
// closed, flushing per the batching rules. The timeout timer resets every
// iteration, so under a steady trickle of lines each flush happens at most
// one timeout after the previous wait began. A final flush always runs
// before Run returns: buffered output cannot be lost at shutdown.
func (d *Dispatcher) Run(ctx context.Context, ch <-chan stream.Message) {
	maxBatch := d.MaxBatch
	if maxBatch <= 0 {
		maxBatch = DefaultMaxBatch
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		timer.Reset(timeout)

		select {
		case msg, ok := <-ch:
			if !ok {
				// All producers gone, equivalent to Finished.
				d.flush(ctx)
				return
			}
			switch msg.Kind {
			case stream.KindLine:
				d.batch = append(d.batch, msg.Text)
				if len(d.batch) >= maxBatch {
					d.flush(ctx)
				}
			case stream.KindFlush:
				d.flush(ctx)
			case stream.KindFinished:
				d.flush(ctx)
				return
			}
		case <-timer.C:
			d.flush(ctx)
		}
	}
}

// flush delivers the current batch as one message and clears it. Empty
// batches are skipped. The batch is cleared even when delivery fails:
// streaming is best-effort and a failed batch is not requeued.
func (d *Dispatcher) flush(ctx context.Context) {
	if len(d.batch) == 0 {
		return
	}
	message := strings.Join(d.batch, "\n")
	if d.Title != "" {
		message = "[" + d.Title + "] " + message
	}
	d.batch = nil

	if err := d.Notifier.Send(ctx, message); err != nil {
		errOut := d.ErrOut
		if errOut == nil {
			errOut = os.Stderr
		}
		fmt.Fprintf(errOut, "[shellhook] Error sending buffered lines: %v\n", err)
	}
}
