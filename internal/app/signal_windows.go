//go:build windows

package app

import "github.com/ariel-frischer/shellhook/internal/stream"

// relayFlushSignals is a no-op on Windows, which has no SIGUSR1.
func relayFlushSignals(_ chan<- stream.Message, _ <-chan struct{}) (stop func()) {
	return func() {}
}
