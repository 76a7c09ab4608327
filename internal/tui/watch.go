package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TomShaoquan/arduino-panda/internal/clock"
	"github.com/TomShaoquan/arduino-panda/internal/domain"
)

// PortLister is the discovery surface the watch view polls.
type PortLister interface {
	ListPorts(ctx context.Context) ([]domain.PortInfo, error)
}

// DefaultWatchInterval is how often the watch view re-polls the toolchain.
const DefaultWatchInterval = 2 * time.Second

// WatchConfig controls the live port table.
type WatchConfig struct {
	// Interval between toolchain polls.
	Interval time.Duration

	// BellEnabled rings the terminal bell when a new port appears.
	BellEnabled bool
}

// DefaultWatchConfig returns the standard watch settings.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Interval:    DefaultWatchInterval,
		BellEnabled: true,
	}
}

// TickMsg triggers the next poll cycle.
type TickMsg time.Time

// RefreshMsg carries one poll's outcome back to the model.
type RefreshMsg struct {
	Ports []domain.PortInfo
	Err   error
}

// PortWatchModel is the bubbletea model behind `panda ports --watch`. It
// polls the port lister on a fixed interval and redraws the table in place.
type PortWatchModel struct {
	lister PortLister
	cfg    WatchConfig

	// baseCtx carries cancellation into poll commands; bubbletea's Update
	// has no context parameter.
	baseCtx context.Context //nolint:containedctx

	ports    []domain.PortInfo
	known    map[string]bool
	err      error
	lastSeen time.Time
	width    int
	quitting bool

	bell func()
	clk  clock.Clock
}

// NewPortWatchModel creates a watch model polling lister on cfg.Interval.
func NewPortWatchModel(ctx context.Context, lister PortLister, cfg WatchConfig) *PortWatchModel {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultWatchInterval
	}
	return &PortWatchModel{
		lister:  lister,
		cfg:     cfg,
		baseCtx: ctx,
		bell:    ringBell,
		clk:     clock.System{},
	}
}

// Init starts the first poll and the tick loop.
func (m *PortWatchModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.tickCmd())
}

// Update handles key presses, resize, ticks, and poll results.
func (m *PortWatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case TickMsg:
		return m, tea.Batch(m.refreshCmd(), m.tickCmd())

	case RefreshMsg:
		m.apply(msg)
	}

	return m, nil
}

// View renders the title, the port table, and the refresh footer.
func (m *PortWatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleBold.Render("Watching ports"))
	b.WriteString(StyleDim.Render(fmt.Sprintf(" (every %s)", m.cfg.Interval)))
	b.WriteString("\n\n")

	if len(m.ports) == 0 {
		b.WriteString(StyleDim.Render("No ports detected."))
		b.WriteString("\n")
	} else {
		headers, rows := PortTableData(m.ports)
		b.WriteString(FormatTable(headers, rows))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(NewOutputStyles().Error.Render("✗ " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := fmt.Sprintf("Updated %s · press q to quit", RelativeTimeWith(m.clk, m.lastSeen))
	b.WriteString(StyleDim.Render(footer))
	b.WriteString("\n")
	return b.String()
}

// apply folds a poll result into the model and rings the bell for ports
// that were not present on the previous poll. The first poll establishes
// the baseline without ringing.
func (m *PortWatchModel) apply(msg RefreshMsg) {
	m.lastSeen = m.clk.Now()

	if msg.Err != nil {
		m.err = msg.Err
		return
	}
	m.err = nil

	fresh := false
	seen := make(map[string]bool, len(msg.Ports))
	for _, p := range msg.Ports {
		seen[p.Address] = true
		if m.known != nil && !m.known[p.Address] {
			fresh = true
		}
	}
	if fresh && m.cfg.BellEnabled && m.bell != nil {
		m.bell()
	}

	m.known = seen
	m.ports = msg.Ports
}

// refreshCmd polls the lister once.
func (m *PortWatchModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ports, err := m.lister.ListPorts(m.baseCtx)
		return RefreshMsg{Ports: ports, Err: err}
	}
}

// tickCmd schedules the next poll.
func (m *PortWatchModel) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.Interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ringBell writes the terminal bell to stderr so it never lands in piped
// stdout.
func ringBell() {
	_, _ = os.Stderr.WriteString("\a")
}

// RunPortWatch runs the watch view until the user quits or ctx is canceled.
func RunPortWatch(ctx context.Context, lister PortLister, cfg WatchConfig) error {
	model := NewPortWatchModel(ctx, lister, cfg)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
