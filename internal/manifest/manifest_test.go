package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func loadFixture(t *testing.T) *Manifest {
	t.Helper()
	m, err := ParseFile(filepath.Join("testdata", "pyproject.toml"))
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	return m
}

func TestParseFixtureGroups(t *testing.T) {
	m := loadFixture(t)

	if got := len(m.Runtime()); got != 5 {
		t.Errorf("len(Runtime()) = %d, want 5", got)
	}
	if got := len(m.Dev()); got != 8 {
		t.Errorf("len(Dev()) = %d, want 8", got)
	}

	wantRuntime := []string{"aiohttp", "beautifulsoup4", "pygments", "python", "tabulate"}
	for i, d := range m.Runtime() {
		if d.Name != wantRuntime[i] {
			t.Errorf("Runtime()[%d].Name = %q, want %q", i, d.Name, wantRuntime[i])
		}
	}

	wantDev := []string{"black", "flake8", "ipdb", "ipython", "isort", "mypy", "pre-commit", "ruff"}
	for i, d := range m.Dev() {
		if d.Name != wantDev[i] {
			t.Errorf("Dev()[%d].Name = %q, want %q", i, d.Name, wantDev[i])
		}
	}
}

func TestParseFixtureMetadata(t *testing.T) {
	m := loadFixture(t)

	if m.Package.Name != "nexus-notifier" {
		t.Errorf("Package.Name = %q, want %q", m.Package.Name, "nexus-notifier")
	}
	if m.Package.Version != "0.1.0" {
		t.Errorf("Package.Version = %q, want %q", m.Package.Version, "0.1.0")
	}
	if got := m.BuildBackend(); got != "poetry.core.masonry.api" {
		t.Errorf("BuildBackend() = %q, want %q", got, "poetry.core.masonry.api")
	}
}

func TestParseFixtureExtras(t *testing.T) {
	m := loadFixture(t)

	d, ok := m.Dependency("aiohttp")
	if !ok {
		t.Fatal("Dependency(aiohttp) not found")
	}
	if d.Constraint != "^3.9.1" {
		t.Errorf("aiohttp constraint = %q, want %q", d.Constraint, "^3.9.1")
	}
	if len(d.Extras) != 1 || d.Extras[0] != "speedups" {
		t.Errorf("aiohttp extras = %v, want [speedups]", d.Extras)
	}

	if _, ok := m.Dependency("requests"); ok {
		t.Error("Dependency(requests) found, want absent")
	}
}

func TestParseFixtureToolSections(t *testing.T) {
	m := loadFixture(t)

	lengths := m.LineLengths()
	for _, tool := range []string{"isort", "black", "ruff"} {
		if lengths[tool] != 120 {
			t.Errorf("line length for %s = %d, want 120", tool, lengths[tool])
		}
	}

	strict, set := m.Strict()
	if !set {
		t.Fatal("Strict() not set, want set")
	}
	if !strict {
		t.Error("Strict() = false, want true")
	}
}

func TestLintCleanFixture(t *testing.T) {
	m := loadFixture(t)
	if issues := m.Lint(); len(issues) != 0 {
		t.Errorf("Lint() = %v, want no issues", issues)
	}
}

func TestLintFindings(t *testing.T) {
	tests := []struct {
		name      string
		manifest  string
		wantField string
	}{
		{
			name:      "missing name",
			manifest:  "[tool.poetry]\nversion = \"1.0.0\"\n\n[build-system]\nbuild-backend = \"poetry.core.masonry.api\"\n",
			wantField: "tool.poetry.name",
		},
		{
			name:      "missing version",
			manifest:  "[tool.poetry]\nname = \"x\"\n\n[build-system]\nbuild-backend = \"poetry.core.masonry.api\"\n",
			wantField: "tool.poetry.version",
		},
		{
			name:      "missing backend",
			manifest:  "[tool.poetry]\nname = \"x\"\nversion = \"1.0.0\"\n",
			wantField: "build-system.build-backend",
		},
		{
			name: "bad dependency constraint",
			manifest: "[tool.poetry]\nname = \"x\"\nversion = \"1.0.0\"\n\n" +
				"[tool.poetry.dependencies]\nfoo = \"^oops\"\n\n" +
				"[build-system]\nbuild-backend = \"poetry.core.masonry.api\"\n",
			wantField: "tool.poetry.dependencies.foo",
		},
		{
			name: "line length mismatch",
			manifest: "[tool.poetry]\nname = \"x\"\nversion = \"1.0.0\"\n\n" +
				"[build-system]\nbuild-backend = \"poetry.core.masonry.api\"\n\n" +
				"[tool.black]\nline-length = 120\n\n[tool.ruff]\nline-length = 100\n",
			wantField: "tool",
		},
		{
			name: "strict disabled",
			manifest: "[tool.poetry]\nname = \"x\"\nversion = \"1.0.0\"\n\n" +
				"[build-system]\nbuild-backend = \"poetry.core.masonry.api\"\n\n" +
				"[tool.mypy]\nstrict = false\n",
			wantField: "tool.mypy.strict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.manifest))
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			issues := m.Lint()
			if len(issues) == 0 {
				t.Fatal("Lint() returned no issues")
			}
			found := false
			for _, issue := range issues {
				if issue.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Lint() = %v, want issue on field %q", issues, tt.wantField)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "invalid toml", input: "[tool.poetry\nname"},
		{name: "table without version", input: "[tool.poetry.dependencies]\nfoo = { extras = [\"bar\"] }"},
		{name: "non-string extra", input: "[tool.poetry.dependencies]\nfoo = { version = \"1.0\", extras = [1] }"},
		{name: "unsupported declaration", input: "[tool.poetry.dependencies]\nfoo = 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input)); err == nil {
				t.Error("Parse() expected error, got nil")
			}
		})
	}
}

func TestLegacyDevDependencies(t *testing.T) {
	input := "[tool.poetry]\nname = \"x\"\nversion = \"1.0.0\"\n\n" +
		"[tool.poetry.dev-dependencies]\nblack = \"^23.0\"\n"

	m, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	dev := m.Dev()
	if len(dev) != 1 || dev[0].Name != "black" {
		t.Errorf("Dev() = %v, want [black]", dev)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	m := loadFixture(t)

	data, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Encode()) error: %v", err)
	}

	if len(back.Runtime()) != len(m.Runtime()) {
		t.Errorf("runtime group changed: %d -> %d", len(m.Runtime()), len(back.Runtime()))
	}
	if len(back.Dev()) != len(m.Dev()) {
		t.Errorf("dev group changed: %d -> %d", len(m.Dev()), len(back.Dev()))
	}

	d, ok := back.Dependency("aiohttp")
	if !ok {
		t.Fatal("aiohttp lost in round trip")
	}
	if d.Constraint != "^3.9.1" || len(d.Extras) != 1 || d.Extras[0] != "speedups" {
		t.Errorf("aiohttp changed in round trip: %+v", d)
	}

	strict, set := back.Strict()
	if !set || !strict {
		t.Errorf("mypy strict changed in round trip: strict=%t set=%t", strict, set)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("ParseFile() expected error for missing file")
	}
}

func TestParseFileWritten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")
	content := "[tool.poetry]\nname = \"demo\"\nversion = \"2.0.0\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if m.Package.Name != "demo" {
		t.Errorf("Package.Name = %q, want demo", m.Package.Name)
	}
}

func TestIssueString(t *testing.T) {
	issue := Issue{Field: "tool.poetry.name", Message: "package name is required"}
	if got := issue.String(); !strings.Contains(got, "tool.poetry.name") {
		t.Errorf("Issue.String() = %q, want field name included", got)
	}
}
