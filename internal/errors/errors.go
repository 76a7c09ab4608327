// Package errors provides centralized error handling for panda.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrToolchainUnavailable indicates that the toolchain binary could not
	// be reached at all, typically because it is not installed or not on
	// PATH. Detected via the version preflight before discovery queries.
	ErrToolchainUnavailable = errors.New("toolchain unavailable")

	// ErrToolchainQuery indicates that a discovery query (port or board
	// listing) ran but failed or returned output that could not be parsed.
	ErrToolchainQuery = errors.New("toolchain query failed")

	// ErrProcessLaunch indicates that the toolchain process could not be
	// started (missing binary, permission denied, bad working directory).
	// Distinct from ErrProcessExecution, which means the process ran and
	// exited non-zero.
	ErrProcessLaunch = errors.New("process launch failed")

	// ErrProcessExecution indicates that the toolchain process ran but
	// exited with a non-zero status. The wrapped chain carries the exit
	// code and captured output.
	ErrProcessExecution = errors.New("process execution failed")

	// ErrWorkspace indicates that preparing the build workspace failed
	// (staging directory creation, source copy, or output directory).
	ErrWorkspace = errors.New("workspace preparation failed")

	// ErrCompileFailed indicates that the toolchain reported compilation
	// errors. The operation result carries the classified diagnostics.
	ErrCompileFailed = errors.New("compile failed")

	// ErrUploadFailed indicates that flashing the device failed, either
	// through reported errors or a missing completion marker.
	ErrUploadFailed = errors.New("upload failed")

	// ErrSketchNotFound indicates the requested sketch source path does
	// not exist.
	ErrSketchNotFound = errors.New("sketch not found")

	// ErrNotASketch indicates the source path exists but is not usable for
	// the requested compile mode (wrong extension, or a file where a
	// directory was expected).
	ErrNotASketch = errors.New("not a sketch")

	// ErrMissingBoard indicates no board FQBN was provided by flag or config.
	ErrMissingBoard = errors.New("board not specified")

	// ErrMissingPort indicates no device port was provided by flag or config
	// for an operation that flashes.
	ErrMissingPort = errors.New("port not specified")

	// ErrInvalidState indicates an operation attempted a state transition
	// that the build lifecycle does not allow.
	ErrInvalidState = errors.New("invalid state transition")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates a configuration value failed validation.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidCompileMode indicates an unknown compile mode was specified.
	ErrInvalidCompileMode = errors.New("invalid compile mode")

	// ErrEmptyValue indicates a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrCommandNotConfigured indicates that a mock command was not configured in tests.
	ErrCommandNotConfigured = errors.New("command not configured")

	// ErrNoSelection indicates the interactive picker ended without a choice.
	ErrNoSelection = errors.New("nothing selected")

	// ErrWatchModeJSONUnsupported indicates that watch mode does not support JSON output.
	ErrWatchModeJSONUnsupported = errors.New("watch mode does not support JSON output")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
