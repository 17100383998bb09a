package stream

import (
	"bufio"
	"fmt"
	"io"
)

// maxLineBytes caps a single scanned line. Commands that emit longer lines
// (minified bundles, base64 dumps) get them split by the scanner error path
// rather than exhausting memory.
const maxLineBytes = 1024 * 1024

// LineReader splits one child output stream into lines. Every line is echoed
// verbatim to the local device; unless Quiet is set it is also forwarded on
// Out. Two LineReaders run concurrently per invocation, one per stream.
type LineReader struct {
	Source io.Reader       // child pipe, read to EOF
	Echo   io.Writer       // local mirror (the process's stdout or stderr)
	Out    chan<- Message  // pipeline channel
	Quiet  bool            // suppress forwarding, echo is unaffected
	Done   <-chan struct{} // closed when the consumer has gone away
}

// Run reads Source until EOF or a read error. A final line without a
// trailing terminator is still emitted. If Done closes while a send is
// blocked, the reader stops early without error: the dispatcher has already
// shut down and the remaining output only matters locally.
func (lr *LineReader) Run() error {
	scanner := bufio.NewScanner(lr.Source)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Text()
		fmt.Fprintln(lr.Echo, line)

		if lr.Quiet {
			continue
		}
		select {
		case lr.Out <- Line(line):
		case <-lr.Done:
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading command output: %w", err)
	}
	return nil
}
