// Package diagnostics turns raw toolchain output lines into structured
// diagnostics and progress events.
//
// Classification is two independent passes over the same line: severity
// (error/warning diagnostics) and progress (coarse build stages). A line can
// produce one, both, or neither.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, std lib
//   - MUST NOT import: internal/toolchain, internal/orchestrator, internal/cli
package diagnostics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
	"github.com/TomShaoquan/arduino-panda/internal/domain"
)

// diagnosticRe matches gcc-style compiler diagnostics:
//
//	<path>:<line>:<column>: <severity>: <message>
//
// where severity is literally "error" or "warning". The path group is lazy
// so Windows drive letters and embedded colons in the message don't confuse
// the split.
var diagnosticRe = regexp.MustCompile(`^(.+?):(\d+):(\d+):\s*(error|warning):\s*(.*)$`)

// progressTrigger pairs a literal output substring with the stage it
// announces and the completion estimate to report.
type progressTrigger struct {
	keyword string
	percent int
}

// progressTriggers are checked in order; the first match wins. The
// percentages are rough stage estimates, not measured progress — the
// toolchain reports no real numbers.
//
//nolint:gochecknoglobals // Read-only lookup table
var progressTriggers = []progressTrigger{
	{"Compiling", 30},
	{"Linking", 60},
	{"Building", 80},
	{"Uploading", 90},
}

// ClassifyLine parses one output line into a Diagnostic, or nil when the
// line carries no error or warning.
//
// A fully structured line ("foo.ino:12:4: error: expected ';'") yields a
// positioned diagnostic whose Message keeps the severity prefix. A line that
// merely contains "error:" or "warning:" yields a severity-only diagnostic
// with the whole line as message; "error:" is checked first so a line
// containing both counts as an error.
func ClassifyLine(line string) *domain.Diagnostic {
	if m := diagnosticRe.FindStringSubmatch(line); m != nil {
		lineNo, _ := strconv.Atoi(m[2])
		column, _ := strconv.Atoi(m[3])
		return &domain.Diagnostic{
			File:     m[1],
			Line:     lineNo,
			Column:   column,
			Severity: constants.Severity(m[4]),
			Message:  m[4] + ": " + m[5],
		}
	}

	if strings.Contains(line, "error:") {
		return &domain.Diagnostic{
			Severity: constants.SeverityError,
			Message:  line,
		}
	}
	if strings.Contains(line, "warning:") {
		return &domain.Diagnostic{
			Severity: constants.SeverityWarning,
			Message:  line,
		}
	}

	return nil
}

// ClassifyProgress maps one output line to a coarse progress event, or nil
// when the line announces no stage. A line matches at most one trigger.
func ClassifyProgress(line string) *domain.ProgressEvent {
	for _, trigger := range progressTriggers {
		if strings.Contains(line, trigger.keyword) {
			return &domain.ProgressEvent{
				Stage:   trigger.keyword,
				Percent: trigger.percent,
			}
		}
	}
	return nil
}
