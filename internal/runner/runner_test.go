package runner

import (
	"bytes"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/shellhook/internal/stream"
)

func requireUnixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests drive sh")
	}
}

// runCollect executes r and gathers every channel message until Finished.
func runCollect(t *testing.T, r *Runner) (ExitStatus, []stream.Message, error) {
	t.Helper()

	ch := make(chan stream.Message, stream.DefaultChannelCapacity)
	done := make(chan struct{})
	defer close(done)

	type result struct {
		status ExitStatus
		err    error
	}
	resc := make(chan result, 1)
	go func() {
		status, err := r.Run(ch, done)
		resc <- result{status, err}
	}()

	var msgs []stream.Message
	timeout := time.After(10 * time.Second)
	for {
		select {
		case msg := <-ch:
			msgs = append(msgs, msg)
			if msg.Kind == stream.KindFinished {
				res := <-resc
				return res.status, msgs, res.err
			}
		case <-timeout:
			t.Fatal("runner did not finish")
			return ExitStatus{}, nil, nil
		}
	}
}

func lineTexts(msgs []stream.Message) []string {
	var texts []string
	for _, m := range msgs {
		if m.Kind == stream.KindLine {
			texts = append(texts, m.Text)
		}
	}
	return texts
}

func TestRunnerCapturesStdout(t *testing.T) {
	requireUnixShell(t)
	t.Parallel()

	var stdout, stderr bytes.Buffer
	r := &Runner{
		Argv:   []string{"sh", "-c", "printf 'a\\nb\\n'"},
		Stdout: &stdout,
		Stderr: &stderr,
	}
	status, msgs, err := runCollect(t, r)

	require.NoError(t, err)
	assert.Equal(t, ExitStatus{Code: 0}, status)
	assert.Equal(t, []string{"a", "b"}, lineTexts(msgs))
	assert.Equal(t, "a\nb\n", stdout.String())
	assert.Empty(t, stderr.String())
	assert.Equal(t, stream.KindFinished, msgs[len(msgs)-1].Kind)
}

func TestRunnerRoutesStderrLocally(t *testing.T) {
	requireUnixShell(t)
	t.Parallel()

	var stdout, stderr bytes.Buffer
	r := &Runner{
		Argv:   []string{"sh", "-c", "echo out; echo err 1>&2"},
		Stdout: &stdout,
		Stderr: &stderr,
	}
	status, msgs, err := runCollect(t, r)

	require.NoError(t, err)
	assert.Equal(t, 0, status.Code)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
	// Cross-stream order is unspecified, both lines must arrive.
	assert.ElementsMatch(t, []string{"out", "err"}, lineTexts(msgs))
}

func TestRunnerQuietStillEchoes(t *testing.T) {
	requireUnixShell(t)
	t.Parallel()

	var stdout, stderr bytes.Buffer
	r := &Runner{
		Argv:   []string{"sh", "-c", "echo hello"},
		Quiet:  true,
		Stdout: &stdout,
		Stderr: &stderr,
	}
	_, msgs, err := runCollect(t, r)

	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout.String())
	assert.Empty(t, lineTexts(msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, stream.KindFinished, msgs[0].Kind)
}

func TestRunnerExitCode(t *testing.T) {
	requireUnixShell(t)
	t.Parallel()

	var stdout, stderr bytes.Buffer
	r := &Runner{
		Argv:   []string{"sh", "-c", "exit 3"},
		Stdout: &stdout,
		Stderr: &stderr,
	}
	status, _, err := runCollect(t, r)

	require.NoError(t, err)
	assert.Equal(t, ExitStatus{Code: 3}, status)
}

func TestRunnerMissingExecutable(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	r := &Runner{
		Argv:   []string{"nonexistent_binary_xyz"},
		Stdout: &stdout,
		Stderr: &stderr,
	}
	_, msgs, err := runCollect(t, r)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	require.Len(t, msgs, 1, "sentinel still sent on spawn failure")
	assert.Equal(t, stream.KindFinished, msgs[0].Kind)
}

func TestRunnerEmptyArgv(t *testing.T) {
	t.Parallel()

	r := &Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	_, err := r.Run(make(chan stream.Message, 1), make(chan struct{}))
	assert.Error(t, err)
}

func TestRunnerLargeOutputDrainsCompletely(t *testing.T) {
	requireUnixShell(t)
	t.Parallel()

	var stdout, stderr bytes.Buffer
	r := &Runner{
		Argv:   []string{"sh", "-c", "i=0; while [ $i -lt 500 ]; do echo line$i; i=$((i+1)); done"},
		Stdout: &stdout,
		Stderr: &stderr,
	}
	status, msgs, err := runCollect(t, r)

	require.NoError(t, err)
	assert.Equal(t, 0, status.Code)
	texts := lineTexts(msgs)
	require.Len(t, texts, 500)
	assert.Equal(t, "line0", texts[0])
	assert.Equal(t, "line499", texts[499])
}
