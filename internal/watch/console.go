// Package watch implements the polling loops for nexwatch.
// This file implements the console reporter used when running without the
// TUI, suitable for cron jobs and CI.
package watch

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	consoleDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	consoleErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// ConsoleConfig configures the console reporter.
type ConsoleConfig struct {
	// Writer is the output writer (defaults to discard when nil).
	Writer io.Writer
	// Verbose includes skip events in the output.
	Verbose bool
}

// ConsoleReporter renders watch events as timestamped lines.
// Its HandleEvent method is designed to be used as the Options.OnEvent
// callback.
type ConsoleReporter struct {
	config    *ConsoleConfig
	startTime time.Time

	checks     int
	discovered int
	updated    int
	notified   int
	failed     int
}

// NewConsoleReporter creates a console reporter.
func NewConsoleReporter(config *ConsoleConfig) *ConsoleReporter {
	if config == nil {
		config = &ConsoleConfig{}
	}
	return &ConsoleReporter{
		config:    config,
		startTime: time.Now(),
	}
}

// HandleEvent processes a watch event for console output.
func (r *ConsoleReporter) HandleEvent(event Event) {
	w := r.config.Writer
	if w == nil {
		return
	}

	prefix := fmt.Sprintf("[%s]", formatElapsed(time.Since(r.startTime)))

	var message string
	switch event.Type {
	case EventCheckStarted:
		r.checks++
		message = fmt.Sprintf("%s %s...", prefix, event.Message)
	case EventCheckCompleted:
		message = fmt.Sprintf("%s %s", prefix, event.Message)
	case EventCheckFailed:
		r.failed++
		message = consoleErrStyle.Render(fmt.Sprintf("%s Check failed: %v", prefix, event.Error))
	case EventModDiscovered:
		r.discovered++
		message = fmt.Sprintf("%s New mod: %s (id=%d, v%s)", prefix, event.ModName, event.ModID, event.Message)
	case EventModUpdated:
		r.updated++
		message = fmt.Sprintf("%s Updated: %s (id=%d, %s)", prefix, event.ModName, event.ModID, event.Message)
	case EventModTracked:
		message = fmt.Sprintf("%s Tracking new mod (id=%d)", prefix, event.ModID)
	case EventModSkipped:
		if r.config.Verbose {
			message = consoleDimStyle.Render(fmt.Sprintf("%s Skipped mod id=%d: %s", prefix, event.ModID, event.Message))
		}
	case EventNotifySent:
		r.notified++
		if r.config.Verbose {
			message = consoleDimStyle.Render(fmt.Sprintf("%s Telegram notification sent (id=%d)", prefix, event.ModID))
		}
	case EventNotifyFailed:
		r.failed++
		message = consoleErrStyle.Render(fmt.Sprintf("%s Notification failed (id=%d): %v", prefix, event.ModID, event.Error))
	case EventCachePrimed:
		message = fmt.Sprintf("%s Initial population complete: %s", prefix, event.Message)
	case EventSleeping:
		message = consoleDimStyle.Render(fmt.Sprintf("%s %s", prefix, event.Message))
	}

	if message != "" {
		fmt.Fprintln(w, message)
	}
}

// PrintSummary prints a final summary after the watcher returns.
func (r *ConsoleReporter) PrintSummary() {
	w := r.config.Writer
	if w == nil {
		return
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "Duration: %s\n", time.Since(r.startTime).Round(time.Second))
	fmt.Fprintf(w, "Checks: %d\n", r.checks)
	fmt.Fprintf(w, "Mods: %d discovered, %d updated, %d notifications sent\n",
		r.discovered, r.updated, r.notified)
	if r.failed > 0 {
		fmt.Fprintf(w, "Failures: %d\n", r.failed)
	}
	fmt.Fprintln(w, strings.Repeat("─", 60))
}

// formatElapsed formats duration as MM:SS or HH:MM:SS.
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
