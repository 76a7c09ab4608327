package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// safeWriter wraps an io.Writer with mutex protection for concurrent access.
// The spinner animation goroutine and toolchain output mirroring share one
// terminal stream.
type safeWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newSafeWriter(w io.Writer) *safeWriter {
	return &safeWriter{w: w}
}

// Write implements io.Writer with mutex protection.
func (sw *safeWriter) Write(p []byte) (n int, err error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

// spinnerFrames are the animation frames for the spinner.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"} //nolint:gochecknoglobals // Package-level constant for spinner animation

// SpinnerInterval is the update interval for the spinner animation.
const SpinnerInterval = 100 * time.Millisecond

// spinnerMessageThrottle limits how often the message may change, so rapid
// progress events do not make the line flash.
const spinnerMessageThrottle = 200 * time.Millisecond

// TerminalSpinner provides animated progress indication while the toolchain
// runs. Progress events update the message in place.
type TerminalSpinner struct {
	w       *safeWriter
	styles  *OutputStyles
	message string
	started time.Time
	done    chan struct{}
	mu      sync.Mutex
	running bool
	stopped bool

	lastMessageUpdate time.Time
	throttleInterval  time.Duration
}

// NewTerminalSpinner creates a spinner that writes to w. The writer is
// wrapped with mutex protection so other goroutines may share it.
func NewTerminalSpinner(w io.Writer) *TerminalSpinner {
	return &TerminalSpinner{
		w:                newSafeWriter(w),
		styles:           NewOutputStyles(),
		throttleInterval: spinnerMessageThrottle,
	}
}

// Writer returns the thread-safe writer used by this spinner.
func (s *TerminalSpinner) Writer() io.Writer {
	return s.w
}

// Start begins the animation with the given message. Calling Start on a
// running spinner just updates the message.
func (s *TerminalSpinner) Start(ctx context.Context, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
	s.started = time.Now()
	s.lastMessageUpdate = time.Now()

	if s.running {
		return
	}

	s.running = true
	s.stopped = false
	s.done = make(chan struct{})

	// Capture the channel before the goroutine starts to avoid racing a
	// concurrent Stop.
	done := s.done
	go s.animate(ctx, done)
}

// UpdateMessage changes the spinner message without stopping the animation.
// Updates are throttled and deduplicated.
func (s *TerminalSpinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.message == message {
		return
	}
	now := time.Now()
	if now.Sub(s.lastMessageUpdate) < s.throttleInterval {
		return
	}

	s.message = message
	s.lastMessageUpdate = now
}

// Stop stops the animation and clears the line.
func (s *TerminalSpinner) Stop() {
	s.mu.Lock()
	if !s.running || s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.running = false
	done := s.done
	s.mu.Unlock()

	close(done)

	_, _ = fmt.Fprint(s.w, "\r\033[K")
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *TerminalSpinner) StopWithSuccess(message string) {
	s.Stop()
	_, _ = fmt.Fprintln(s.w, s.styles.Success.Render("✓ "+message))
}

// StopWithError stops the spinner and prints an error line.
func (s *TerminalSpinner) StopWithError(message string) {
	s.Stop()
	_, _ = fmt.Fprintln(s.w, s.styles.Error.Render("✗ "+message))
}

// animate runs the animation loop. The done channel is a parameter to avoid
// racing the s.done field against a restart.
func (s *TerminalSpinner) animate(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(SpinnerInterval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			s.mu.Lock()
			wasRunning := s.running && !s.stopped
			if wasRunning {
				s.running = false
				s.stopped = true
			}
			s.mu.Unlock()

			if wasRunning {
				_, _ = fmt.Fprint(s.w, "\r\033[K")
			}
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.running {
				s.mu.Unlock()
				return
			}
			msg := s.message
			elapsed := time.Since(s.started)
			if elapsed > 10*time.Second {
				msg = fmt.Sprintf("%s (%s)", s.message, formatElapsed(elapsed))
			}
			spinnerFrame := s.styles.Info.Render(spinnerFrames[frame%len(spinnerFrames)])

			// Keep the line inside the terminal width so it never wraps:
			// frame (1 cell) + space + margin.
			if maxMsg := terminalWidth() - 4; maxMsg > 0 {
				msg = runewidth.Truncate(msg, maxMsg, "…")
			}
			s.mu.Unlock()

			_, _ = fmt.Fprintf(s.w, "\r\033[K%s %s", spinnerFrame, msg)
			frame++
		}
	}
}

// formatElapsed formats a duration for the spinner suffix.
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}

// terminalWidth returns the current terminal width, falling back to 80
// when detection fails. Spinners write to stderr.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// FormatDuration formats an operation duration in milliseconds for display,
// e.g. "850ms" or "2.4s".
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

// SpinnerAdapter bridges TerminalSpinner to the Output.Spinner contract.
type SpinnerAdapter struct {
	spinner *TerminalSpinner
	cancel  context.CancelFunc
}

// NewSpinnerAdapter creates and starts a spinner for TTY output.
func NewSpinnerAdapter(ctx context.Context, w io.Writer, msg string) *SpinnerAdapter {
	ctx, cancel := context.WithCancel(ctx)
	s := NewTerminalSpinner(w)
	s.Start(ctx, msg)
	return &SpinnerAdapter{spinner: s, cancel: cancel}
}

// Update changes the spinner message.
func (a *SpinnerAdapter) Update(msg string) {
	a.spinner.UpdateMessage(msg)
}

// Stop terminates the spinner.
func (a *SpinnerAdapter) Stop() {
	a.cancel()
	a.spinner.Stop()
}

// NoopSpinner is the spinner for JSON and non-TTY output.
type NoopSpinner struct{}

// Update is a no-op.
func (*NoopSpinner) Update(_ string) {}

// Stop is a no-op.
func (*NoopSpinner) Stop() {}
