package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexwatch/nexwatch/internal/errors"
	"github.com/nexwatch/nexwatch/internal/manifest"
	"github.com/nexwatch/nexwatch/internal/render"
)

// manifestCmd groups the pyproject.toml inspection commands.
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect a Poetry project manifest",
	Long: `Manifest inspects a pyproject.toml: show its dependency groups and
tool configuration, lint it for inconsistencies, or reformat it.`,
}

var manifestShowCmd = &cobra.Command{
	Use:   "show [pyproject.toml]",
	Short: "Show manifest metadata and dependencies",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runManifestShow,
}

var manifestLintCmd = &cobra.Command{
	Use:   "lint [pyproject.toml]",
	Short: "Check a manifest for inconsistencies",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runManifestLint,
}

var manifestFmtCmd = &cobra.Command{
	Use:   "fmt [pyproject.toml]",
	Short: "Reformat a manifest with normalized table order",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runManifestFmt,
}

// manifestPath resolves the manifest path argument, defaulting to
// pyproject.toml in the working directory.
func manifestPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "pyproject.toml"
}

func runManifestShow(cmd *cobra.Command, args []string) error {
	m, err := manifest.ParseFile(manifestPath(args))
	if err != nil {
		return err
	}

	cmd.Printf("%s %s\n", m.Package.Name, m.Package.Version)
	if m.Package.Description != "" {
		cmd.Println(m.Package.Description)
	}
	if backend := m.BuildBackend(); backend != "" {
		cmd.Printf("Build backend: %s\n", backend)
	}

	var rows []render.DependencyRow
	for _, d := range m.Runtime() {
		rows = append(rows, dependencyRow(d, "runtime"))
	}
	for _, d := range m.Dev() {
		rows = append(rows, dependencyRow(d, "dev"))
	}
	cmd.Println(render.DependenciesTable(rows))

	if lengths := m.LineLengths(); len(lengths) > 0 {
		parts := make([]string, 0, len(lengths))
		for _, tool := range []string{"isort", "black", "ruff"} {
			if n, ok := lengths[tool]; ok {
				parts = append(parts, fmt.Sprintf("%s=%d", tool, n))
			}
		}
		cmd.Printf("Line lengths: %s\n", strings.Join(parts, " "))
	}
	if strict, set := m.Strict(); set {
		cmd.Printf("Mypy strict: %t\n", strict)
	}
	return nil
}

func dependencyRow(d manifest.Dependency, group string) render.DependencyRow {
	return render.DependencyRow{
		Name:       d.Name,
		Constraint: d.Constraint,
		Extras:     strings.Join(d.Extras, ", "),
		Group:      group,
	}
}

func runManifestLint(cmd *cobra.Command, args []string) error {
	path := manifestPath(args)
	m, err := manifest.ParseFile(path)
	if err != nil {
		return err
	}

	issues := m.Lint()
	if len(issues) == 0 {
		cmd.Printf("%s: no issues found\n", path)
		return nil
	}

	for _, issue := range issues {
		cmd.Printf("%s: %s\n", path, issue)
	}
	return errors.New(errors.ErrManifest, fmt.Sprintf("%d issue(s) found", len(issues)))
}

func runManifestFmt(cmd *cobra.Command, args []string) error {
	path := manifestPath(args)
	m, err := manifest.ParseFile(path)
	if err != nil {
		return err
	}

	data, err := m.Encode()
	if err != nil {
		return errors.ManifestInvalid(path, err)
	}

	write, _ := cmd.Flags().GetBool("write")
	if !write {
		cmd.Print(string(data))
		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrManifest, "failed to write manifest").
			WithDetails("path", path)
	}
	cmd.Printf("Rewrote %s\n", path)
	return nil
}

func init() {
	manifestFmtCmd.Flags().BoolP("write", "w", false, "Write the result back instead of printing it")

	manifestCmd.AddCommand(manifestShowCmd)
	manifestCmd.AddCommand(manifestLintCmd)
	manifestCmd.AddCommand(manifestFmtCmd)
	rootCmd.AddCommand(manifestCmd)
}
