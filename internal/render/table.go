// Package render formats watcher results as terminal tables.
package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Color palette, shared with the TUI styles.
var (
	headerColor = lipgloss.Color("#06B6D4") // Cyan
	borderColor = lipgloss.Color("#374151") // Border Gray
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(headerColor).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// AdditionRow is one newly discovered mod.
type AdditionRow struct {
	ID     int64
	Author string
	Name   string
	Link   string
}

// UpdateRow is one mod version bump.
type UpdateRow struct {
	ID         int64
	Author     string
	Name       string
	Link       string
	OldVersion string
	NewVersion string
}

// newTable builds a table with the shared styling.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// AdditionsTable renders newly discovered mods.
func AdditionsTable(rows []AdditionRow) string {
	t := newTable("ID", "Author", "Name", "Link")
	for _, r := range rows {
		t.Row(strconv.FormatInt(r.ID, 10), r.Author, r.Name, r.Link)
	}
	return t.String()
}

// DependencyRow is one manifest dependency declaration.
type DependencyRow struct {
	Name       string
	Constraint string
	Extras     string
	Group      string
}

// DependenciesTable renders manifest dependencies across groups.
func DependenciesTable(rows []DependencyRow) string {
	t := newTable("Name", "Constraint", "Extras", "Group")
	for _, r := range rows {
		t.Row(r.Name, r.Constraint, r.Extras, r.Group)
	}
	return t.String()
}

// UpdatesTable renders updated mods, one row per new version.
func UpdatesTable(rows []UpdateRow) string {
	t := newTable("ID", "Author", "Name", "Link", "Old Version", "New Version")
	for _, r := range rows {
		t.Row(strconv.FormatInt(r.ID, 10), r.Author, r.Name, r.Link, r.OldVersion, r.NewVersion)
	}
	return t.String()
}
