// Package styles provides Lip Gloss styles for the nexwatch TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the TUI.
var (
	Primary     = lipgloss.Color("#7C3AED") // Purple
	Secondary   = lipgloss.Color("#06B6D4") // Cyan
	Success     = lipgloss.Color("#10B981") // Green
	Warning     = lipgloss.Color("#F59E0B") // Amber
	Error       = lipgloss.Color("#EF4444") // Red
	Muted       = lipgloss.Color("#6B7280") // Gray
	Foreground  = lipgloss.Color("#F9FAFB") // White
	BorderColor = lipgloss.Color("#374151") // Border Gray
)

var (
	// TitleStyle is for the application title bar.
	TitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Primary).
			Bold(true).
			Padding(0, 1)

	// StatusStyle is for the spinner status line.
	StatusStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	// FeedStyle frames the event feed.
	FeedStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor)

	// StatusBarStyle is for the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// DiscoveredStyle highlights newly discovered mods in the feed.
	DiscoveredStyle = lipgloss.NewStyle().
			Foreground(Success)

	// UpdatedStyle highlights updated mods in the feed.
	UpdatedStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	// ErrorStyle highlights failures in the feed.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error)

	// DimStyle is for low-priority feed lines.
	DimStyle = lipgloss.NewStyle().
			Foreground(Muted)
)
