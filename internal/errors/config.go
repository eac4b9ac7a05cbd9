// Package errors provides error types for nexwatch.
// This file contains configuration, state and manifest error constructors.
package errors

import "fmt"

// ConfigMissing creates an error for a missing required configuration value.
func ConfigMissing(field string) *WatchError {
	return &WatchError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("missing required configuration: %s", field),
		Details: map[string]string{"field": field},
		Suggestion: fmt.Sprintf(`Set %q in .nexwatch/config.yaml or via the
matching NEXWATCH_* environment variable. Run 'nexwatch init' to
generate a config file with all fields documented.`, field),
	}
}

// ConfigInvalid creates an error for an invalid configuration value.
func ConfigInvalid(field, value, reason string) *WatchError {
	return &WatchError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("invalid configuration: %s = %q (%s)", field, value, reason),
		Details: map[string]string{"field": field, "value": value},
	}
}

// StateCorrupt creates an error for an unreadable state file.
func StateCorrupt(path string, cause error) *WatchError {
	return &WatchError{
		Kind:    ErrState,
		Message: "state file is corrupt",
		Cause:   cause,
		Details: map[string]string{"path": path},
		Suggestion: `Delete the file to start from a clean slate. The next run
will repopulate it (the updates watcher will re-fetch tracked mods).`,
	}
}

// ManifestInvalid creates an error for a manifest that failed to parse.
func ManifestInvalid(path string, cause error) *WatchError {
	return &WatchError{
		Kind:    ErrManifest,
		Message: "failed to parse manifest",
		Cause:   cause,
		Details: map[string]string{"path": path},
		Suggestion: "Check the file is valid TOML with a [tool.poetry] section.",
	}
}
