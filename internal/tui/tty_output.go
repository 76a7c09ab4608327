package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
)

// TTYOutput renders human-readable terminal output with color and icons.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
}

// NewTTYOutput creates terminal output writing to w. Color support is
// re-evaluated so NO_COLOR is honored per invocation.
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()
	return &TTYOutput{
		w:      w,
		styles: NewOutputStyles(),
	}
}

// Success prints a success message with a checkmark.
func (t *TTYOutput) Success(msg string) {
	_, _ = fmt.Fprintln(t.w, t.styles.Success.Render("✓ "+msg))
}

// Error prints the user-facing message for err, with a suggested action
// when one is known for the underlying sentinel.
func (t *TTYOutput) Error(err error) {
	message, action := pandaerrors.Actionable(err)
	_, _ = fmt.Fprintln(t.w, t.styles.Error.Render("✗ "+message))
	if action != "" {
		_, _ = fmt.Fprintln(t.w, t.styles.Dim.Render("  → "+action))
	}
}

// Warning prints a warning message.
func (t *TTYOutput) Warning(msg string) {
	_, _ = fmt.Fprintln(t.w, t.styles.Warning.Render("⚠ "+msg))
}

// Info prints an informational message.
func (t *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(t.w, t.styles.Info.Render(msg))
}

// Table prints rows with aligned columns.
func (t *TTYOutput) Table(headers []string, rows [][]string) {
	_, _ = fmt.Fprint(t.w, FormatTable(headers, rows))
}

// JSON pretty-prints v. Available on TTY output so commands can honor an
// explicit JSON request without switching output implementations.
func (t *TTYOutput) JSON(v any) error {
	enc := json.NewEncoder(t.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Spinner starts an animated spinner writing to this output's stream.
func (t *TTYOutput) Spinner(ctx context.Context, msg string) Spinner {
	return NewSpinnerAdapter(ctx, t.w, msg)
}
