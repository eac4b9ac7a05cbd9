// Package manifest models Poetry project manifests.
// This file implements TOML parsing and serialization.
package manifest

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/nexwatch/nexwatch/internal/errors"
)

// rawManifest mirrors the pyproject.toml layout for go-toml.
type rawManifest struct {
	Tool        rawTool        `toml:"tool"`
	BuildSystem rawBuildSystem `toml:"build-system"`
}

type rawTool struct {
	Poetry rawPoetry      `toml:"poetry"`
	Isort  map[string]any `toml:"isort,omitempty"`
	Black  map[string]any `toml:"black,omitempty"`
	Ruff   map[string]any `toml:"ruff,omitempty"`
	Mypy   map[string]any `toml:"mypy,omitempty"`
}

type rawPoetry struct {
	Name        string         `toml:"name"`
	Version     string         `toml:"version"`
	Description string         `toml:"description,omitempty"`
	Authors     []string       `toml:"authors,omitempty"`
	Readme      string         `toml:"readme,omitempty"`
	Dependencies map[string]any `toml:"dependencies,omitempty"`
	// DevDependencies is the legacy Poetry 1.1 group.
	DevDependencies map[string]any          `toml:"dev-dependencies,omitempty"`
	Group           map[string]rawDepGroup  `toml:"group,omitempty"`
}

type rawDepGroup struct {
	Dependencies map[string]any `toml:"dependencies"`
}

type rawBuildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
}

// Parse parses a Poetry manifest from TOML.
func Parse(data []byte) (*Manifest, error) {
	var raw rawManifest
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}

	m := &Manifest{
		Package: Metadata{
			Name:        raw.Tool.Poetry.Name,
			Version:     raw.Tool.Poetry.Version,
			Description: raw.Tool.Poetry.Description,
			Authors:     raw.Tool.Poetry.Authors,
			Readme:      raw.Tool.Poetry.Readme,
		},
		Build: BuildSystem{
			Requires: raw.BuildSystem.Requires,
			Backend:  raw.BuildSystem.BuildBackend,
		},
		Tools: Tools{
			Isort: raw.Tool.Isort,
			Black: raw.Tool.Black,
			Ruff:  raw.Tool.Ruff,
			Mypy:  raw.Tool.Mypy,
		},
	}

	var err error
	if m.runtime, err = decodeDeps(raw.Tool.Poetry.Dependencies); err != nil {
		return nil, err
	}

	// Poetry 1.2 group syntax wins; fall back to the legacy table.
	devTable := raw.Tool.Poetry.DevDependencies
	if group, ok := raw.Tool.Poetry.Group["dev"]; ok {
		devTable = group.Dependencies
	}
	if m.dev, err = decodeDeps(devTable); err != nil {
		return nil, err
	}

	return m, nil
}

// ParseFile parses a Poetry manifest from a file.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrManifest, "failed to read manifest").
			WithDetails("path", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, errors.ManifestInvalid(path, err)
	}
	return m, nil
}

// decodeDeps converts a dependency table into Dependency values.
// Entries are either a bare constraint string or a table with a version and
// optional extras.
func decodeDeps(table map[string]any) ([]Dependency, error) {
	deps := make([]Dependency, 0, len(table))
	for name, value := range table {
		dep := Dependency{Name: name}
		switch v := value.(type) {
		case string:
			dep.Constraint = v
		case map[string]any:
			constraint, ok := v["version"].(string)
			if !ok {
				return nil, fmt.Errorf("dependency %q: missing version", name)
			}
			dep.Constraint = constraint
			if extras, ok := v["extras"].([]any); ok {
				for _, e := range extras {
					s, ok := e.(string)
					if !ok {
						return nil, fmt.Errorf("dependency %q: non-string extra", name)
					}
					dep.Extras = append(dep.Extras, s)
				}
			}
		default:
			return nil, fmt.Errorf("dependency %q: unsupported declaration type %T", name, value)
		}
		deps = append(deps, dep)
	}
	sortDeps(deps)
	return deps, nil
}

// Encode serializes the manifest back to TOML. Dependency constraints and
// tool options are written verbatim; table order is normalized.
func (m *Manifest) Encode() ([]byte, error) {
	raw := rawManifest{
		Tool: rawTool{
			Poetry: rawPoetry{
				Name:         m.Package.Name,
				Version:      m.Package.Version,
				Description:  m.Package.Description,
				Authors:      m.Package.Authors,
				Readme:       m.Package.Readme,
				Dependencies: encodeDeps(m.runtime),
			},
			Isort: m.Tools.Isort,
			Black: m.Tools.Black,
			Ruff:  m.Tools.Ruff,
			Mypy:  m.Tools.Mypy,
		},
		BuildSystem: rawBuildSystem{
			Requires:     m.Build.Requires,
			BuildBackend: m.Build.Backend,
		},
	}

	if len(m.dev) > 0 {
		raw.Tool.Poetry.Group = map[string]rawDepGroup{
			"dev": {Dependencies: encodeDeps(m.dev)},
		}
	}

	data, err := toml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return data, nil
}

// encodeDeps converts Dependency values back into a dependency table.
func encodeDeps(deps []Dependency) map[string]any {
	if len(deps) == 0 {
		return nil
	}
	table := make(map[string]any, len(deps))
	for _, d := range deps {
		if len(d.Extras) == 0 {
			table[d.Name] = d.Constraint
			continue
		}
		table[d.Name] = map[string]any{
			"version": d.Constraint,
			"extras":  d.Extras,
		}
	}
	return table
}
