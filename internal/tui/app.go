// Package tui provides the live dashboard for nexwatch watch runs.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nexwatch/nexwatch/internal/tui/styles"
	"github.com/nexwatch/nexwatch/internal/watch"
)

// Mode selects which watcher the dashboard fronts.
type Mode string

const (
	// ModeAdditions fronts the additions watcher.
	ModeAdditions Mode = "additions"
	// ModeUpdates fronts the updates watcher.
	ModeUpdates Mode = "updates"
)

// EventMsg wraps a watch event for the TUI.
type EventMsg struct {
	Event watch.Event
}

// DoneMsg signals that the watcher returned.
type DoneMsg struct {
	Err error
}

// TickMsg drives time-based display updates.
type TickMsg struct {
	Time time.Time
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	mode    Mode
	game    string
	spinner spinner.Model
	feed    viewport.Model

	lines  []string
	status string

	checks     int
	discovered int
	updated    int
	failed     int

	startTime time.Time
	width     int
	height    int
	ready     bool
	quitting  bool
	err       error
}

// NewModel creates a dashboard model for the given mode and game.
func NewModel(mode Mode, game string) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Secondary)

	vp := viewport.New(80, 20)
	vp.Style = styles.FeedStyle

	return &Model{
		mode:      mode,
		game:      game,
		spinner:   s,
		feed:      vp,
		status:    "Starting...",
		startTime: time.Now(),
	}
}

// Init is the Bubble Tea initialization function.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

// tickCmd returns a command that sends a tick message every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "g":
			m.feed.GotoTop()
		case "G":
			m.feed.GotoBottom()
		}
		var cmd tea.Cmd
		m.feed, cmd = m.feed.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Title, status and status bar take four rows; the feed gets the rest.
		m.feed.Width = msg.Width - 2
		m.feed.Height = msg.Height - 6
		m.ready = true
		m.refreshFeed()
		return m, nil

	case TickMsg:
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// Err returns the watcher error captured by DoneMsg, if any.
func (m *Model) Err() error {
	return m.err
}

// handleEvent folds a watch event into the dashboard state.
func (m *Model) handleEvent(event watch.Event) {
	ts := event.Timestamp.Format("15:04:05")

	switch event.Type {
	case watch.EventCheckStarted:
		m.checks++
		m.status = event.Message
	case watch.EventCheckCompleted:
		m.status = event.Message
		m.appendLine(styles.DimStyle.Render(fmt.Sprintf("%s %s", ts, event.Message)))
	case watch.EventCheckFailed:
		m.failed++
		m.status = "Check failed"
		m.appendLine(styles.ErrorStyle.Render(fmt.Sprintf("%s check failed: %v", ts, event.Error)))
	case watch.EventModDiscovered:
		m.discovered++
		m.appendLine(styles.DiscoveredStyle.Render(
			fmt.Sprintf("%s + %s (id=%d, v%s)", ts, event.ModName, event.ModID, event.Message)))
	case watch.EventModUpdated:
		m.updated++
		m.appendLine(styles.UpdatedStyle.Render(
			fmt.Sprintf("%s ^ %s (id=%d, %s)", ts, event.ModName, event.ModID, event.Message)))
	case watch.EventModTracked:
		m.appendLine(styles.DimStyle.Render(fmt.Sprintf("%s tracking new mod id=%d", ts, event.ModID)))
	case watch.EventModSkipped:
		m.appendLine(styles.DimStyle.Render(
			fmt.Sprintf("%s skipped id=%d: %s", ts, event.ModID, event.Message)))
	case watch.EventNotifyFailed:
		m.failed++
		m.appendLine(styles.ErrorStyle.Render(
			fmt.Sprintf("%s notification failed for id=%d: %v", ts, event.ModID, event.Error)))
	case watch.EventCachePrimed:
		m.appendLine(styles.DimStyle.Render(fmt.Sprintf("%s %s", ts, event.Message)))
	case watch.EventSleeping:
		m.status = event.Message
	}
}

// appendLine adds a feed line and keeps the viewport following the tail.
func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refreshFeed()
}

func (m *Model) refreshFeed() {
	atBottom := m.feed.AtBottom()
	m.feed.SetContent(strings.Join(m.lines, "\n"))
	if atBottom {
		m.feed.GotoBottom()
	}
}

// View renders the dashboard.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	title := styles.TitleStyle.Render(fmt.Sprintf("nexwatch · %s · %s", m.game, m.mode))
	status := styles.StatusStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), m.status))
	statusBar := styles.StatusBarStyle.Render(fmt.Sprintf(
		"checks %d · new %d · updated %d · failures %d · elapsed %s · q to quit",
		m.checks, m.discovered, m.updated, m.failed,
		time.Since(m.startTime).Round(time.Second)))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		status,
		m.feed.View(),
		statusBar,
	)
}
