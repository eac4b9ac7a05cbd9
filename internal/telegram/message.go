// Package telegram provides Telegram delivery for nexwatch.
// This file builds the HTML notification texts.
package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/nexwatch/nexwatch/internal/nexus"
)

// AdditionText formats the notification for a newly added mod.
func AdditionText(mod *nexus.Mod) string {
	return fmt.Sprintf("<b>%s</b>\n%s - Version %s\nLink: %s",
		html.EscapeString(mod.DisplayName()),
		html.EscapeString(mod.Author),
		html.EscapeString(mod.Version),
		mod.URL())
}

// UpdateText formats the notification for an updated mod, including the
// changelog entries newer than oldVersion.
func UpdateText(mod *nexus.Mod, oldVersion string, changelog nexus.ChangelogList) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<b>%s</b>\n%s - Version %s -> %s\nLink: %s",
		html.EscapeString(mod.DisplayName()),
		html.EscapeString(mod.Author),
		html.EscapeString(oldVersion),
		html.EscapeString(mod.Version),
		mod.URL())

	if len(changelog) > 0 {
		sb.WriteString("\nChangelog:\n")
		sb.WriteString(ChangelogText(changelog))
	}

	return sb.String()
}

// ChangelogText renders changelog entries as HTML, one version per block.
func ChangelogText(changelog nexus.ChangelogList) string {
	blocks := make([]string, 0, len(changelog))
	for _, entry := range changelog {
		notes := make([]string, len(entry.Notes))
		for i, note := range entry.Notes {
			notes[i] = html.EscapeString(note)
		}
		blocks = append(blocks, fmt.Sprintf("<b>%s</b>\n- %s",
			html.EscapeString(entry.Version),
			strings.Join(notes, "\n- ")))
	}
	return strings.Join(blocks, "\n")
}
