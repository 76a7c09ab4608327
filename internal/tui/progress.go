package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/TomShaoquan/arduino-panda/internal/domain"
)

// DefaultProgressWidth is the bar width when the terminal width is unknown.
const DefaultProgressWidth = 40

// ProgressBar renders build progress as a horizontal bar. It has no
// animation state; each stage event is rendered at its reported percent.
type ProgressBar struct {
	model progress.Model
}

// NewProgressBar creates a progress bar sized to width cells. Gradient fill
// is used when the terminal supports color, solid gray otherwise.
func NewProgressBar(width int) *ProgressBar {
	if width <= 0 {
		width = DefaultProgressWidth
	}

	opts := []progress.Option{
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	}
	if HasColorSupport() {
		opts = append(opts, progress.WithScaledGradient("#0087AF", "#00D7FF"))
	} else {
		opts = append(opts, progress.WithSolidFill("#808080"))
	}

	return &ProgressBar{model: progress.New(opts...)}
}

// Render draws the bar at the given percent (0-100).
func (p *ProgressBar) Render(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return p.model.ViewAs(float64(percent) / 100)
}

// StageLine formats a progress event as a single status line:
// bar, percent, stage name.
func (p *ProgressBar) StageLine(ev domain.ProgressEvent) string {
	var b strings.Builder
	b.WriteString(p.Render(ev.Percent))
	b.WriteString(fmt.Sprintf(" %3d%% ", ev.Percent))
	b.WriteString(ev.Stage)
	return b.String()
}
