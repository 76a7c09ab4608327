package toolchain

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"
)

// LineFunc receives one complete, CR/LF-trimmed output line.
type LineFunc func(line string)

// StreamingExecutor executes commands while streaming both output streams
// line by line. It implements Executor for use with the orchestrator, which
// classifies compiler output as it arrives instead of waiting for exit.
//
// Both streams are also captured completely, so callers get the same
// (stdout, stderr) contract as DefaultExecutor.
type StreamingExecutor struct {
	onStdoutLine LineFunc
	onStderrLine LineFunc

	// Logger receives a warning when line scanning stops before EOF (an
	// oversized line or a read error). The zero value is disabled.
	Logger zerolog.Logger
}

// NewStreamingExecutor creates a StreamingExecutor with per-stream line
// callbacks. Either callback may be nil to capture that stream silently.
func NewStreamingExecutor(onStdout, onStderr LineFunc) *StreamingExecutor {
	return &StreamingExecutor{
		onStdoutLine: onStdout,
		onStderrLine: onStderr,
	}
}

// Execute runs the command, pumping stdout and stderr line by line through
// the configured callbacks while capturing both streams completely.
// Callbacks run on the pump goroutines; both pumps join before Wait so no
// callback fires after Execute returns.
func (e *StreamingExecutor) Execute(_ context.Context, cmd *exec.Cmd) ([]byte, []byte, error) {
	// Create pipes for stdout and stderr
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, err
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, nil, err
	}

	// Start the command
	if startErr := cmd.Start(); startErr != nil {
		return nil, nil, startErr
	}

	// Capture stdout and stderr concurrently
	var stdout, stderr bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		e.streamLines(stdoutPipe, &stdout, e.onStdoutLine)
	}()

	go func() {
		defer wg.Done()
		e.streamLines(stderrPipe, &stderr, e.onStderrLine)
	}()

	// Wait for all I/O to complete before reaping the process
	wg.Wait()

	err = cmd.Wait()

	return stdout.Bytes(), stderr.Bytes(), err
}

// streamLines reads a stream line by line, invoking fn per line and
// collecting the full output.
//
// A line beyond the scanner limit (or a read error) stops line delivery, but
// the stream is still drained to EOF: the pipe must empty or the child blocks
// writing and Execute never returns.
func (e *StreamingExecutor) streamLines(r io.Reader, buf *bytes.Buffer, fn LineFunc) {
	scanner := bufio.NewScanner(r)

	// Increase buffer size for long compiler lines
	const maxLineSize = 1024 * 1024 // 1MB
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Text()

		// Write to buffer for complete capture
		buf.WriteString(line)
		buf.WriteByte('\n')

		if fn != nil {
			fn(line)
		}
	}

	if err := scanner.Err(); err != nil {
		e.Logger.Warn().Err(err).Msg("line streaming stopped early, draining remainder raw")
		_, _ = io.Copy(buf, r)
	}
}
