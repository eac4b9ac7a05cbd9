// Package manifest models Poetry project manifests.
// This file implements version constraint parsing with caret-range semantics.
package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

// Constraint is a parsed dependency version constraint.
// The original text is kept verbatim so constraints round-trip unchanged.
type Constraint struct {
	raw   string
	op    string
	parts []int
}

// ParseConstraint parses a Poetry-style version constraint.
// Supported forms: "*", "^X.Y.Z", "~X.Y", ">=X", ">X", "<=X", "<X", "==X"
// and a bare version (treated as exact).
func ParseConstraint(s string) (*Constraint, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty version constraint")
	}
	if s == "*" {
		return &Constraint{raw: raw, op: "*"}, nil
	}

	op := "=="
	for _, candidate := range []string{"^", "~", ">=", "<=", "==", ">", "<"} {
		if strings.HasPrefix(s, candidate) {
			op = candidate
			s = strings.TrimSpace(strings.TrimPrefix(s, candidate))
			break
		}
	}

	parts, err := parseVersion(s)
	if err != nil {
		return nil, fmt.Errorf("invalid version in constraint %q: %w", raw, err)
	}

	return &Constraint{raw: raw, op: op, parts: parts}, nil
}

// String returns the constraint exactly as written.
func (c *Constraint) String() string {
	return c.raw
}

// Allows reports whether the given version satisfies the constraint.
func (c *Constraint) Allows(version string) bool {
	if c.op == "*" {
		return true
	}

	v, err := parseVersion(version)
	if err != nil {
		return false
	}

	switch c.op {
	case "==":
		return compareVersions(v, c.parts) == 0
	case ">=":
		return compareVersions(v, c.parts) >= 0
	case ">":
		return compareVersions(v, c.parts) > 0
	case "<=":
		return compareVersions(v, c.parts) <= 0
	case "<":
		return compareVersions(v, c.parts) < 0
	case "^":
		return compareVersions(v, c.parts) >= 0 && compareVersions(v, c.caretUpper()) < 0
	case "~":
		return compareVersions(v, c.parts) >= 0 && compareVersions(v, c.tildeUpper()) < 0
	}
	return false
}

// caretUpper returns the exclusive upper bound for a caret constraint:
// the leftmost non-zero component is bumped (^1.2.3 < 2.0.0, ^0.9.0 < 0.10.0,
// ^0.0.3 < 0.0.4).
func (c *Constraint) caretUpper() []int {
	upper := make([]int, len(c.parts))
	for i, p := range c.parts {
		if p != 0 || i == len(c.parts)-1 {
			copy(upper, c.parts[:i])
			upper[i] = p + 1
			return upper[:i+1]
		}
	}
	return upper
}

// tildeUpper returns the exclusive upper bound for a tilde constraint:
// the second specified component is bumped when present, the first otherwise
// (~1.2.3 < 1.3.0, ~1 < 2).
func (c *Constraint) tildeUpper() []int {
	if len(c.parts) == 1 {
		return []int{c.parts[0] + 1}
	}
	return []int{c.parts[0], c.parts[1] + 1}
}

// parseVersion parses a dotted version into its numeric components.
func parseVersion(s string) ([]int, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "v"))
	if s == "" {
		return nil, fmt.Errorf("empty version")
	}

	segments := strings.Split(s, ".")
	parts := make([]int, 0, len(segments))
	for _, seg := range segments {
		// Strip any pre-release suffix (e.g. "1-rc1")
		seg = strings.SplitN(seg, "-", 2)[0]
		n, err := strconv.Atoi(seg)
		if err != nil {
			return nil, fmt.Errorf("non-numeric segment %q", seg)
		}
		parts = append(parts, n)
	}
	return parts, nil
}

// compareVersions compares component slices, treating missing components as
// zero. Returns 1 if a > b, -1 if a < b, 0 if equal.
func compareVersions(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av > bv {
			return 1
		}
		if av < bv {
			return -1
		}
	}
	return 0
}
