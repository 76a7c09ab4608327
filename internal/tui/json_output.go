package tui

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
)

// JSONOutput renders machine-readable output, one JSON value per line.
// Spinners are disabled so the stream stays parseable.
type JSONOutput struct {
	w io.Writer
}

// NewJSONOutput creates JSON output writing to w.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{w: w}
}

// jsonMessage is the envelope for status lines.
type jsonMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// jsonError carries the user-facing message plus the raw error chain when
// the two differ.
type jsonError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success emits a success message object.
func (j *JSONOutput) Success(msg string) {
	j.emit(jsonMessage{Type: "success", Message: msg})
}

// Error emits an error object with the user-facing message and details.
func (j *JSONOutput) Error(err error) {
	out := jsonError{
		Type:    "error",
		Message: pandaerrors.UserMessage(err),
	}
	if details := err.Error(); details != out.Message {
		out.Details = details
	}
	j.emit(out)
}

// Warning emits a warning message object.
func (j *JSONOutput) Warning(msg string) {
	j.emit(jsonMessage{Type: "warning", Message: msg})
}

// Info emits an informational message object.
func (j *JSONOutput) Info(msg string) {
	j.emit(jsonMessage{Type: "info", Message: msg})
}

// Table emits rows as an array of objects keyed by lower-cased headers.
func (j *JSONOutput) Table(headers []string, rows [][]string) {
	objects := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		object := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				object[strings.ToLower(header)] = row[i]
			}
		}
		objects = append(objects, object)
	}
	j.emit(objects)
}

// JSON encodes v directly onto the stream.
func (j *JSONOutput) JSON(v any) error {
	return json.NewEncoder(j.w).Encode(v)
}

// Spinner returns a no-op spinner; animation would corrupt the stream.
func (j *JSONOutput) Spinner(_ context.Context, _ string) Spinner {
	return &NoopSpinner{}
}

func (j *JSONOutput) emit(v any) {
	_ = json.NewEncoder(j.w).Encode(v)
}
