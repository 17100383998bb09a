// Package stream carries captured command output from the pipe readers to
// the batch dispatcher. The two readers and the command runner are the only
// producers on a pipeline channel; the dispatcher is its sole consumer.
package stream

// DefaultChannelCapacity bounds in-flight messages so a fast-producing
// command backpressures the readers instead of growing memory.
const DefaultChannelCapacity = 100

// Kind discriminates pipeline messages.
type Kind int

const (
	// KindLine carries one captured output line.
	KindLine Kind = iota
	// KindFlush requests an immediate flush of the current batch without
	// terminating the dispatcher.
	KindFlush
	// KindFinished is the terminal sentinel: the command has exited and
	// both readers have drained. Exactly one is sent per invocation,
	// always last.
	KindFinished
)

// Message is one event on the pipeline channel.
type Message struct {
	Kind Kind
	Text string // set for KindLine only, excludes the line terminator
}

// Line wraps one captured output line.
func Line(text string) Message { return Message{Kind: KindLine, Text: text} }

// Flush builds an explicit flush request.
func Flush() Message { return Message{Kind: KindFlush} }

// Finished builds the terminal sentinel.
func Finished() Message { return Message{Kind: KindFinished} }
