// Package toolchain wraps invocation of the external board-toolchain binary
// (arduino-cli by default).
//
// Everything in panda that touches a subprocess goes through the Executor
// seam defined here, so discovery, the orchestrator, and the CLI can all be
// tested against scripted output without spawning real processes.
//
// Import rules:
//   - CAN import: internal/constants, internal/errors, std lib
//   - MUST NOT import: internal/workspace, internal/orchestrator, internal/cli
package toolchain

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// Executor abstracts process execution for testability.
// This allows the production code to use real subprocess execution
// while tests provide a mock implementation.
//
// The ctx parameter is included for interface consistency and future flexibility,
// even though the production implementations embed context via exec.CommandContext().
// Mock implementations may use ctx to simulate cancellation behavior.
type Executor interface {
	// Execute runs the command and returns stdout, stderr, and any error.
	// The context is passed for mock implementations that need cancellation awareness.
	Execute(ctx context.Context, cmd *exec.Cmd) (stdout, stderr []byte, err error)
}

// DefaultExecutor is the production implementation of Executor.
// It runs commands using the operating system's process execution and
// buffers both streams completely.
//
// An optional Mirror callback receives every output line from both streams
// as it is written; the CLI uses this to trace discovery-query output into
// the debug log without the full streaming machinery.
type DefaultExecutor struct {
	// Mirror, when non-nil, is called once per complete output line.
	Mirror LineFunc
}

// Execute runs the command and captures its output.
func (e *DefaultExecutor) Execute(_ context.Context, cmd *exec.Cmd) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if e.Mirror != nil {
		outLines := NewLineWriter(e.Mirror)
		errLines := NewLineWriter(e.Mirror)
		cmd.Stdout = io.MultiWriter(&stdout, outLines)
		cmd.Stderr = io.MultiWriter(&stderr, errLines)
		defer outLines.Flush()
		defer errLines.Flush()
	}

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
