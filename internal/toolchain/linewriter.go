package toolchain

import (
	"bytes"
	"strings"
)

// LineWriter is an io.Writer that assembles arbitrary write chunks into
// complete lines and hands each CR/LF-trimmed line to a callback. It is used
// to mirror toolchain output into the logger and text-mode sinks, which want
// lines rather than byte soup.
//
// LineWriter is not safe for concurrent use; give each stream its own.
type LineWriter struct {
	fn  LineFunc
	buf bytes.Buffer
}

// NewLineWriter creates a LineWriter that calls fn once per complete line.
func NewLineWriter(fn LineFunc) *LineWriter {
	return &LineWriter{fn: fn}
}

// Write implements io.Writer. Partial lines are buffered until a newline
// arrives.
func (w *LineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)

	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// No complete line yet; put the partial back
			w.buf.WriteString(line)
			break
		}
		w.emit(line)
	}

	return len(p), nil
}

// Flush emits any buffered partial line. Call after the stream closes so a
// final line without a trailing newline is not lost.
func (w *LineWriter) Flush() {
	if w.buf.Len() == 0 {
		return
	}
	line := w.buf.String()
	w.buf.Reset()
	w.emit(line)
}

func (w *LineWriter) emit(line string) {
	line = strings.TrimRight(line, "\r\n")
	if w.fn != nil {
		w.fn(line)
	}
}
