package toolchain

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
)

// ExecError reports a toolchain process that launched and ran but exited
// non-zero. It carries the exit code and the partial output captured before
// exit so callers can always inspect what the process said.
type ExecError struct {
	// ExitCode is the process exit code.
	ExitCode int

	// Stdout is the captured standard output, possibly partial.
	Stdout []byte

	// Stderr is the captured standard error, possibly partial.
	Stderr []byte
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	return fmt.Sprintf("process exited with code %d", e.ExitCode)
}

// Unwrap allows errors.Is(err, ErrProcessExecution) checks.
func (e *ExecError) Unwrap() error {
	return pandaerrors.ErrProcessExecution
}

// CLI invokes the board-toolchain binary. The zero value is not usable;
// construct with New.
type CLI struct {
	binary   string
	executor Executor
	logger   zerolog.Logger
}

// Option is a functional option for configuring CLI.
type Option func(*CLI)

// WithExecutor sets the process executor. Tests use this to script
// toolchain output without spawning subprocesses.
func WithExecutor(executor Executor) Option {
	return func(c *CLI) {
		c.executor = executor
	}
}

// WithLogger sets the logger for command tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *CLI) {
		c.logger = logger
	}
}

// New creates a CLI for the given binary. A bare binary name is resolved
// through PATH at launch time. If no executor option is supplied, a
// DefaultExecutor runs real subprocesses.
func New(binary string, opts ...Option) *CLI {
	c := &CLI{
		binary:   binary,
		executor: &DefaultExecutor{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// The stock executor mirrors output lines into the trace log so
	// discovery queries are inspectable without streaming machinery.
	if de, ok := c.executor.(*DefaultExecutor); ok && de.Mirror == nil {
		logger := c.logger
		de.Mirror = func(line string) {
			logger.Trace().Str("stream", "toolchain").Msg(line)
		}
	}
	return c
}

// Binary returns the configured binary name or path.
func (c *CLI) Binary() string {
	return c.binary
}

// Run executes the toolchain with the given arguments and returns both
// captured streams.
//
// Failure modes are distinguished by sentinel:
//   - the process could not be started at all (binary missing, permission
//     denied) → error wraps ErrProcessLaunch
//   - the process ran and exited non-zero → *ExecError wrapping
//     ErrProcessExecution, with partial output attached
//   - the context was canceled → ctx.Err(), partial output attached
func (c *CLI) Run(ctx context.Context, args []string) (stdout, stderr []byte, err error) {
	return c.RunWith(ctx, c.executor, args)
}

// RunWith is Run with a caller-supplied executor. The orchestrator uses this
// to attach a fresh StreamingExecutor per operation while keeping the binary
// and logger configured here.
//
// An executor may return an already classified *ExecError (scripted
// executions in tests do); it is passed through unchanged.
func (c *CLI) RunWith(ctx context.Context, executor Executor, args []string) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, c.binary, args...) //#nosec G204 -- args are built by this package, not concatenated from user input

	c.logger.Debug().
		Str("binary", c.binary).
		Strs("args", args).
		Msg("running toolchain command")

	stdout, stderr, err = executor.Execute(ctx, cmd)
	if err != nil {
		// Check for context cancellation
		if ctx.Err() != nil {
			return stdout, stderr, ctx.Err()
		}

		var execErr *ExecError
		if stderrors.As(err, &execErr) {
			return stdout, stderr, execErr
		}

		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			c.logger.Debug().
				Int("exit_code", exitErr.ExitCode()).
				Msg("toolchain command exited non-zero")
			return stdout, stderr, &ExecError{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout,
				Stderr:   stderr,
			}
		}

		// Anything else means the process never ran
		return stdout, stderr, fmt.Errorf("launching %s: %v: %w", c.binary, err, pandaerrors.ErrProcessLaunch)
	}

	return stdout, stderr, nil
}

// Version runs the toolchain's version subcommand and returns the trimmed
// combined output. This doubles as the reachability preflight: any failure
// wraps ErrToolchainUnavailable.
func (c *CLI) Version(ctx context.Context) (string, error) {
	stdout, stderr, err := c.Run(ctx, VersionArgs())
	if err != nil {
		return "", fmt.Errorf("%s version query: %v: %w", c.binary, err, pandaerrors.ErrToolchainUnavailable)
	}

	combined := strings.TrimSpace(string(stdout) + string(stderr))
	return combined, nil
}
