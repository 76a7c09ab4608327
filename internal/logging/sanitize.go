// Package logging provides log output sanitizing for panda.
//
// Toolchain output mirrored into log entries carries terminal control
// noise: ANSI color and cursor sequences from arduino-cli, and
// carriage-return progress redraws from avrdude. The helpers here strip
// that noise so mirrored lines render cleanly and the log file stays one
// parseable entry per line.
package logging

import (
	"io"
	"regexp"
	"strings"
)

// ansiPatterns match terminal escape sequences in toolchain output.
var ansiPatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// CSI sequences: colors, cursor movement, line clearing (ESC [ ... cmd)
	regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`),

	// OSC sequences: window titles, hyperlinks (ESC ] ... BEL or ESC \)
	regexp.MustCompile(`\x1b\][^\x07\x1b]*(\x07|\x1b\\)`),

	// Two-character escapes: charset selection, keypad modes
	regexp.MustCompile(`\x1b[@-Z\\-_]`),
}

// controlChars matches control characters that corrupt single-line log
// entries. Tab survives; newline and carriage return are handled
// separately so progress redraws become separate lines.
var controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`) //nolint:gochecknoglobals // Package-level pattern for reuse

// ContainsANSI reports whether a string carries terminal escape sequences.
func ContainsANSI(s string) bool {
	for _, pattern := range ansiPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// Sanitize strips terminal escape sequences and control characters from a
// toolchain output line. Carriage returns become newlines, so an in-place
// progress redraw ("50%\r75%\r100%") reads as its successive states.
func Sanitize(value string) string {
	result := value
	for _, pattern := range ansiPatterns {
		result = pattern.ReplaceAllString(result, "")
	}
	result = strings.ReplaceAll(result, "\r\n", "\n")
	result = strings.ReplaceAll(result, "\r", "\n")
	return controlChars.ReplaceAllString(result, "")
}

// SanitizeLine sanitizes a single mirrored output line, collapsing any
// carriage-return redraws down to the final state. Use this when the line
// is displayed or logged as one unit.
func SanitizeLine(line string) string {
	sanitized := Sanitize(line)
	if idx := strings.LastIndexByte(sanitized, '\n'); idx >= 0 {
		sanitized = sanitized[idx+1:]
	}
	return strings.TrimRight(sanitized, " ")
}

// SanitizingWriter wraps an io.Writer and strips terminal control noise
// from everything written through it. It wraps the rotating log file
// writer so raw escape bytes never land on disk.
type SanitizingWriter struct {
	w io.Writer
}

// NewSanitizingWriter creates a SanitizingWriter around the given writer.
func NewSanitizingWriter(w io.Writer) *SanitizingWriter {
	return &SanitizingWriter{w: w}
}

// Write implements io.Writer, sanitizing data before passing it through.
func (sw *SanitizingWriter) Write(p []byte) (n int, err error) {
	sanitized := sanitizeBytes(string(p))
	_, err = sw.w.Write([]byte(sanitized))
	if err != nil {
		return 0, err
	}
	// Report the original length so callers never see a short write
	return len(p), nil
}

// sanitizeBytes strips escapes and control characters but leaves newlines
// untouched; the wrapped writer receives whole log entries.
func sanitizeBytes(s string) string {
	result := s
	for _, pattern := range ansiPatterns {
		result = pattern.ReplaceAllString(result, "")
	}
	result = strings.ReplaceAll(result, "\r", "")
	return controlChars.ReplaceAllString(result, "")
}
