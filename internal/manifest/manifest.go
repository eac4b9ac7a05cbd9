// Package manifest models Poetry project manifests (pyproject.toml): package
// metadata, runtime and development dependency groups, the build-system block
// and the tool configuration sections. Manifests parse, serialize back to
// TOML, and lint for internal consistency.
package manifest

import (
	"fmt"
	"sort"
	"strings"
)

// Metadata is the package identity block.
type Metadata struct {
	Name        string
	Version     string
	Description string
	Authors     []string
	Readme      string
}

// Dependency is a single dependency declaration.
type Dependency struct {
	// Name is the package name as written in the manifest.
	Name string
	// Constraint is the version constraint, verbatim (e.g. "^3.9.1").
	Constraint string
	// Extras are optional feature flags (e.g. "speedups").
	Extras []string
}

// ParsedConstraint parses the dependency's version constraint.
func (d Dependency) ParsedConstraint() (*Constraint, error) {
	return ParseConstraint(d.Constraint)
}

// BuildSystem is the build-system block.
type BuildSystem struct {
	Requires []string
	Backend  string
}

// Tools holds the tool configuration sections. Sections are kept as raw
// key/value maps so unknown options survive a parse/serialize cycle.
type Tools struct {
	Isort map[string]any
	Black map[string]any
	Ruff  map[string]any
	Mypy  map[string]any
}

// Manifest is a parsed Poetry project manifest.
type Manifest struct {
	Package Metadata
	// runtime and dev keep the dependency groups separate; order is
	// normalized to name order (TOML tables carry no reliable order).
	runtime []Dependency
	dev     []Dependency
	Build   BuildSystem
	Tools   Tools
}

// Runtime returns the runtime dependency group, sorted by name.
func (m *Manifest) Runtime() []Dependency {
	out := make([]Dependency, len(m.runtime))
	copy(out, m.runtime)
	return out
}

// Dev returns the development dependency group, sorted by name.
func (m *Manifest) Dev() []Dependency {
	out := make([]Dependency, len(m.dev))
	copy(out, m.dev)
	return out
}

// Dependency looks up a dependency by name across both groups.
func (m *Manifest) Dependency(name string) (Dependency, bool) {
	for _, d := range m.runtime {
		if d.Name == name {
			return d, true
		}
	}
	for _, d := range m.dev {
		if d.Name == name {
			return d, true
		}
	}
	return Dependency{}, false
}

// BuildBackend returns the declared build backend.
func (m *Manifest) BuildBackend() string {
	return m.Build.Backend
}

// LineLengths returns the configured line length per tool section, for the
// sections that set one. Keys are "isort", "black" and "ruff".
func (m *Manifest) LineLengths() map[string]int {
	lengths := make(map[string]int)
	if n, ok := intOption(m.Tools.Isort, "line_length"); ok {
		lengths["isort"] = n
	}
	if n, ok := intOption(m.Tools.Black, "line-length"); ok {
		lengths["black"] = n
	}
	if n, ok := intOption(m.Tools.Ruff, "line-length"); ok {
		lengths["ruff"] = n
	}
	return lengths
}

// Strict reports the type checker's strict flag. The second return value is
// false when the option is not set.
func (m *Manifest) Strict() (bool, bool) {
	v, ok := m.Tools.Mypy["strict"]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Issue is a single lint finding.
type Issue struct {
	Field   string
	Message string
}

// String formats the issue for display.
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Lint checks the manifest for internal consistency. It returns one issue
// per finding; an empty slice means the manifest is clean.
func (m *Manifest) Lint() []Issue {
	var issues []Issue

	if m.Package.Name == "" {
		issues = append(issues, Issue{Field: "tool.poetry.name", Message: "package name is required"})
	}
	if m.Package.Version == "" {
		issues = append(issues, Issue{Field: "tool.poetry.version", Message: "package version is required"})
	} else if _, err := ParseConstraint(m.Package.Version); err != nil {
		issues = append(issues, Issue{Field: "tool.poetry.version", Message: err.Error()})
	}

	for _, group := range []struct {
		field string
		deps  []Dependency
	}{
		{"tool.poetry.dependencies", m.runtime},
		{"tool.poetry.group.dev.dependencies", m.dev},
	} {
		for _, d := range group.deps {
			if _, err := d.ParsedConstraint(); err != nil {
				issues = append(issues, Issue{
					Field:   group.field + "." + d.Name,
					Message: err.Error(),
				})
			}
		}
	}

	if m.Build.Backend == "" {
		issues = append(issues, Issue{Field: "build-system.build-backend", Message: "build backend is required"})
	}

	issues = append(issues, m.lintLineLengths()...)

	if strict, set := m.Strict(); set && !strict {
		issues = append(issues, Issue{Field: "tool.mypy.strict", Message: "strict mode is disabled"})
	}

	return issues
}

// lintLineLengths flags tool sections whose line lengths disagree.
func (m *Manifest) lintLineLengths() []Issue {
	lengths := m.LineLengths()
	if len(lengths) < 2 {
		return nil
	}

	distinct := make(map[int][]string)
	for tool, n := range lengths {
		distinct[n] = append(distinct[n], tool)
	}
	if len(distinct) < 2 {
		return nil
	}

	parts := make([]string, 0, len(lengths))
	for _, tool := range []string{"isort", "black", "ruff"} {
		if n, ok := lengths[tool]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", tool, n))
		}
	}
	return []Issue{{
		Field:   "tool",
		Message: "line lengths disagree: " + strings.Join(parts, ", "),
	}}
}

// intOption reads an integer tool option. TOML integers decode as int64.
func intOption(section map[string]any, key string) (int, bool) {
	v, ok := section[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

// sortDeps normalizes a dependency group to name order.
func sortDeps(deps []Dependency) {
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
}
