package tui

import (
	"context"
	"io"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
)

// Output provides structured output for commands. The TTY implementation
// renders styled text; the JSON implementation emits machine-readable
// objects and suppresses decoration.
type Output interface {
	// Success prints a success message.
	Success(msg string)
	// Error prints an error message.
	Error(err error)
	// Warning prints a warning message.
	Warning(msg string)
	// Info prints an informational message.
	Info(msg string)
	// Table prints tabular data with aligned columns.
	Table(headers []string, rows [][]string)
	// JSON outputs a value as formatted JSON.
	JSON(v any) error
	// Spinner starts a progress spinner with the given message.
	// JSON and non-TTY outputs return a no-op spinner.
	Spinner(ctx context.Context, msg string) Spinner
}

// Spinner is a running progress indicator.
type Spinner interface {
	// Update changes the spinner message.
	Update(msg string)
	// Stop terminates the spinner and clears its line.
	Stop()
}

// NewOutput creates the appropriate output for the requested format.
func NewOutput(w io.Writer, format string) Output {
	if format == constants.JSONFormatFlag {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}
