package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/TomShaoquan/arduino-panda/internal/domain"
)

// RenderDiagnostic formats one classified toolchain line for the terminal:
// severity icon, dim file:line:column locator when present, then the
// message styled by severity.
func RenderDiagnostic(d domain.Diagnostic) string {
	var b strings.Builder
	b.WriteString(SeverityStyle(d.Severity).Render(SeverityIcon(d.Severity)))
	b.WriteString(" ")

	if d.File != "" {
		locator := d.File
		if d.Line > 0 {
			locator = fmt.Sprintf("%s:%d", locator, d.Line)
			if d.Column > 0 {
				locator = fmt.Sprintf("%s:%d", locator, d.Column)
			}
		}
		b.WriteString(StyleDim.Render(locator))
		b.WriteString(" ")
	}

	b.WriteString(SeverityStyle(d.Severity).Render(d.Message))
	return b.String()
}

// WriteDiagnostics prints each diagnostic on its own line in arrival order.
func WriteDiagnostics(w io.Writer, diags []domain.Diagnostic) {
	for _, d := range diags {
		_, _ = fmt.Fprintln(w, RenderDiagnostic(d))
	}
}

// ResultSummary builds the one-line outcome for an operation, e.g.
// "compile succeeded in 1.2s" or "deploy failed in 4.0s (1 error, 2 warnings)".
func ResultSummary(result *domain.OperationResult) string {
	verdict := "failed"
	if result.Succeeded {
		verdict = "succeeded"
	}

	summary := fmt.Sprintf("%s %s in %s", result.Operation, verdict, FormatDuration(result.DurationMs))
	if counts := diagnosticCounts(result); counts != "" {
		summary += " (" + counts + ")"
	}
	return summary
}

// diagnosticCounts renders "1 error, 2 warnings" from the result counters,
// or "" when both are zero.
func diagnosticCounts(result *domain.OperationResult) string {
	var parts []string
	if result.Errors > 0 {
		parts = append(parts, pluralize(result.Errors, "error"))
	}
	if result.Warnings > 0 {
		parts = append(parts, pluralize(result.Warnings, "warning"))
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
