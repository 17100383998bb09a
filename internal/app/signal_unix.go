//go:build unix

package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/shellhook/internal/stream"
)

// relayFlushSignals forwards SIGUSR1 as a Flush message so an operator can
// force out the current batch of a long-running command. The relay stops
// once the dispatcher exits; the returned stop function unregisters the
// handler.
func relayFlushSignals(ch chan<- stream.Message, done <-chan struct{}) (stop func()) {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGUSR1)

	go func() {
		for {
			select {
			case <-sigc:
				select {
				case ch <- stream.Flush():
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()

	return func() { signal.Stop(sigc) }
}
