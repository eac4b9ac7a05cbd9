// Package nexus provides a client for the Nexus Mods public API.
package nexus

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Mod is a mod as returned by the games/{game}/mods endpoints.
type Mod struct {
	ModID            int64  `json:"mod_id"`
	Name             string `json:"name"`
	Summary          string `json:"summary"`
	Version          string `json:"version"`
	Author           string `json:"author"`
	UploadedBy       string `json:"uploaded_by"`
	DomainName       string `json:"domain_name"`
	Available        bool   `json:"available"`
	AdultContent     bool   `json:"contains_adult_content"`
	CreatedTimestamp int64  `json:"created_timestamp"`
	UpdatedTimestamp int64  `json:"updated_timestamp"`
}

// URL returns the public mod page URL.
func (m *Mod) URL() string {
	return fmt.Sprintf("https://nexusmods.com/%s/mods/%d", m.DomainName, m.ModID)
}

// DisplayName returns the mod name, or a placeholder when the API omits it.
func (m *Mod) DisplayName() string {
	if m.Name == "" {
		return "N/A"
	}
	return m.Name
}

// ModUpdate is an entry from the games/{game}/mods/updated endpoint.
type ModUpdate struct {
	ModID            int64 `json:"mod_id"`
	LatestFileUpdate int64 `json:"latest_file_update"`
	LatestModActivity int64 `json:"latest_mod_activity"`
}

// TrackedMod is an entry from the user/tracked_mods endpoint.
type TrackedMod struct {
	ModID      int64  `json:"mod_id"`
	DomainName string `json:"domain_name"`
}

// ChangelogEntry is the changelog for a single released version.
type ChangelogEntry struct {
	Version string
	Notes   []string
}

// ChangelogList is an ordered list of version changelogs.
// The API returns a JSON object whose keys are version strings ordered
// oldest to newest; decoding goes through the token stream to keep that
// order, which standard map decoding would lose.
type ChangelogList []ChangelogEntry

// UnmarshalJSON decodes the changelog object preserving key order.
func (c *ChangelogList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("changelogs: expected object, got %v", tok)
	}

	var list ChangelogList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		version, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("changelogs: expected string key, got %v", keyTok)
		}

		var notes []string
		if err := dec.Decode(&notes); err != nil {
			return fmt.Errorf("changelogs: notes for %q: %w", version, err)
		}
		list = append(list, ChangelogEntry{Version: version, Notes: notes})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = list
	return nil
}

// Versions returns the version strings in order.
func (c ChangelogList) Versions() []string {
	versions := make([]string, len(c))
	for i, entry := range c {
		versions[i] = entry.Version
	}
	return versions
}

// NewSince returns the entries released after oldVersion.
// When oldVersion is not present in the list, only the newest entry is
// returned, so a notification never replays the full history.
func (c ChangelogList) NewSince(oldVersion string) ChangelogList {
	for i, entry := range c {
		if entry.Version == oldVersion {
			return c[i+1:]
		}
	}
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1:]
}
