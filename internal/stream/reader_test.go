package stream

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain collects every line message currently buffered on ch.
func drain(ch chan Message) []string {
	var lines []string
	for {
		select {
		case msg := <-ch:
			if msg.Kind == KindLine {
				lines = append(lines, msg.Text)
			}
		default:
			return lines
		}
	}
}

func TestLineReaderRun(t *testing.T) {
	tests := map[string]struct {
		input     string
		quiet     bool
		wantEcho  string
		wantLines []string
	}{
		"terminated lines are echoed and forwarded": {
			input:     "alpha\nbeta\n",
			wantEcho:  "alpha\nbeta\n",
			wantLines: []string{"alpha", "beta"},
		},
		"final unterminated line is emitted": {
			input:     "alpha\nbeta",
			wantEcho:  "alpha\nbeta\n",
			wantLines: []string{"alpha", "beta"},
		},
		"empty stream produces nothing": {
			input:     "",
			wantEcho:  "",
			wantLines: nil,
		},
		"blank lines survive": {
			input:     "a\n\nb\n",
			wantEcho:  "a\n\nb\n",
			wantLines: []string{"a", "", "b"},
		},
		"quiet suppresses forwarding but not echo": {
			input:     "alpha\nbeta\n",
			quiet:     true,
			wantEcho:  "alpha\nbeta\n",
			wantLines: nil,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ch := make(chan Message, 16)
			var echo bytes.Buffer
			lr := &LineReader{
				Source: strings.NewReader(tc.input),
				Echo:   &echo,
				Out:    ch,
				Quiet:  tc.quiet,
				Done:   make(chan struct{}),
			}

			require.NoError(t, lr.Run())
			assert.Equal(t, tc.wantEcho, echo.String())
			assert.Equal(t, tc.wantLines, drain(ch))
		})
	}
}

func TestLineReaderStopsWhenConsumerGone(t *testing.T) {
	t.Parallel()

	// Unbuffered channel with no receiver: the first send blocks until
	// Done closes, at which point the reader must give up cleanly.
	ch := make(chan Message)
	done := make(chan struct{})

	lr := &LineReader{
		Source: strings.NewReader("a\nb\nc\n"),
		Echo:   &bytes.Buffer{},
		Out:    ch,
		Done:   done,
	}

	result := make(chan error, 1)
	go func() { result <- lr.Run() }()

	close(done)

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("reader did not stop after consumer shutdown")
	}
}

func TestLineReaderEchoMatchesForwarded(t *testing.T) {
	t.Parallel()

	input := "one\ntwo\nthree\nfour\n"
	ch := make(chan Message, 16)
	var echo bytes.Buffer

	lr := &LineReader{
		Source: strings.NewReader(input),
		Echo:   &echo,
		Out:    ch,
		Done:   make(chan struct{}),
	}
	require.NoError(t, lr.Run())

	echoed := strings.Split(strings.TrimSuffix(echo.String(), "\n"), "\n")
	assert.Equal(t, echoed, drain(ch))
}
