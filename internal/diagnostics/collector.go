package diagnostics

import (
	"strings"
	"sync"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
	"github.com/TomShaoquan/arduino-panda/internal/domain"
)

// Collector accumulates classified output for one operation. Every line from
// both process streams is fed through it; diagnostics keep their order of
// appearance across streams.
//
// Collector is safe for concurrent use — the stdout and stderr pumps feed it
// from separate goroutines.
type Collector struct {
	mu         sync.Mutex
	markers    []string
	raw        []string
	diags      []domain.Diagnostic
	errors     int
	warnings   int
	markerSeen bool
}

// NewCollector creates a Collector watching for the given completion
// markers. An empty marker set falls back to the built-in defaults, so a
// collector always recognizes a stock toolchain's flash acknowledgement.
func NewCollector(markers []string) *Collector {
	if len(markers) == 0 {
		markers = constants.DefaultCompletionMarkers
	}
	return &Collector{
		markers: append([]string(nil), markers...),
	}
}

// Feed records one output line: appends it to the raw log, classifies it
// into a diagnostic if it is one, and checks it against the completion
// marker set.
func (c *Collector) Feed(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.raw = append(c.raw, line)

	if d := ClassifyLine(line); d != nil {
		c.diags = append(c.diags, *d)
		switch d.Severity {
		case constants.SeverityError:
			c.errors++
		case constants.SeverityWarning:
			c.warnings++
		}
	}

	if !c.markerSeen {
		for _, marker := range c.markers {
			if strings.Contains(line, marker) {
				c.markerSeen = true
				break
			}
		}
	}
}

// Diagnostics returns the collected diagnostics in order of appearance.
// The returned slice is a copy.
func (c *Collector) Diagnostics() []domain.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Diagnostic(nil), c.diags...)
}

// HasErrors reports whether any error-severity diagnostic was collected.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors > 0
}

// ErrorCount returns the number of error-severity diagnostics.
func (c *Collector) ErrorCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors
}

// WarningCount returns the number of warning-severity diagnostics.
func (c *Collector) WarningCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.warnings
}

// MarkerSeen reports whether any completion marker appeared in the stream.
func (c *Collector) MarkerSeen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.markerSeen
}

// Raw returns a copy of every fed line in order.
func (c *Collector) Raw() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.raw...)
}
