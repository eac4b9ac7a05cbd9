// Package watch implements the polling loops for nexwatch.
// This file implements the updates watcher: report new versions of the
// user's tracked mods, with changelogs.
package watch

import (
	"context"
	"fmt"

	"github.com/nexwatch/nexwatch/internal/nexus"
	"github.com/nexwatch/nexwatch/internal/render"
	"github.com/nexwatch/nexwatch/internal/state"
	"github.com/nexwatch/nexwatch/internal/telegram"
)

// RunUpdates checks tracked mods for new versions, looping at the configured
// frequency until the context is cancelled (or returning after one pass when
// looping is disabled).
//
// Unlike the additions watcher, a failed pass does not stop the loop: the
// next cycle retries with the state saved by the last good pass.
func (w *Watcher) RunUpdates(ctx context.Context) error {
	if err := w.track.Load(); err != nil {
		return err
	}

	// First run: prime the cache so we only notify about versions released
	// from now on. This is the expensive pass (one fetch per tracked mod).
	if w.track.Empty() {
		if err := w.primeTrackCache(ctx); err != nil {
			return err
		}
	}

	for {
		rows, err := w.checkUpdates(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			w.log.Error("update check failed", "error", err)
			w.emit(EventCheckFailed, 0, "", "Check failed", err)
		case len(rows) > 0:
			w.emit(EventCheckCompleted, 0, "", fmt.Sprintf("%d updated mod(s) found", len(rows)), nil)
			if w.opts.TableWriter != nil {
				fmt.Fprintln(w.opts.TableWriter, render.UpdatesTable(rows))
			}
		default:
			w.emit(EventCheckCompleted, 0, "", "No updated mods found", nil)
		}

		if !w.cfg.Watch.Loop {
			return err
		}
		if err := w.sleep(ctx, w.cfg.Watch.UpdatesFrequency); err != nil {
			return err
		}
	}
}

// primeTrackCache populates the cache with the current version of every
// tracked mod.
func (w *Watcher) primeTrackCache(ctx context.Context) error {
	w.emit(EventCheckStarted, 0, "", "Fetching initial list of tracked mods", nil)

	latest, err := w.latestFileUpdates(ctx)
	if err != nil {
		return err
	}

	tracked, err := w.api.TrackedMods(ctx, w.cfg.Nexus.Game)
	if err != nil {
		return err
	}

	for _, t := range tracked {
		mod, err := w.api.Mod(ctx, w.cfg.Nexus.Game, t.ModID)
		if err != nil {
			return err
		}
		w.track.Put(t.ModID, state.TrackedEntry{
			Version:          mod.Version,
			LatestFileUpdate: latest[t.ModID],
			Adult:            mod.AdultContent,
		})
	}

	if err := w.track.Save(); err != nil {
		return err
	}

	w.emit(EventCachePrimed, 0, "", fmt.Sprintf("Tracking %d mod(s)", w.track.Len()), nil)
	return nil
}

// checkUpdates performs a single updates pass and returns one row per newly
// released version.
func (w *Watcher) checkUpdates(ctx context.Context) ([]render.UpdateRow, error) {
	w.emit(EventCheckStarted, 0, "", "Checking for updates", nil)

	latest, err := w.latestFileUpdates(ctx)
	if err != nil {
		return nil, err
	}

	tracked, err := w.api.TrackedMods(ctx, w.cfg.Nexus.Game)
	if err != nil {
		return nil, err
	}

	var rows []render.UpdateRow
	for _, t := range tracked {
		entry, known := w.track.Get(t.ModID)

		// A mod tracked since the last pass: record it, notify from the
		// next version on.
		if !known {
			w.emit(EventModTracked, t.ModID, "", "newly tracked, fetching", nil)
			mod, err := w.api.Mod(ctx, w.cfg.Nexus.Game, t.ModID)
			if err != nil {
				return rows, err
			}
			w.track.Put(t.ModID, state.TrackedEntry{
				Version:          mod.Version,
				LatestFileUpdate: latest[t.ModID],
				Adult:            mod.AdultContent,
			})
			continue
		}

		if w.cfg.Watch.HideAdult && entry.Adult {
			continue
		}

		newUpdate := latest[t.ModID]
		if newUpdate == 0 || newUpdate == entry.LatestFileUpdate {
			continue
		}

		// A file changed; only a version string change is a release.
		mod, err := w.api.Mod(ctx, w.cfg.Nexus.Game, t.ModID)
		if err != nil {
			return rows, err
		}

		if entry.Version != "" && mod.Version != "" && mod.Version != entry.Version {
			newRows, err := w.reportUpdate(ctx, mod, entry.Version)
			if err != nil {
				return rows, err
			}
			rows = append(rows, newRows...)
		}

		w.track.Put(t.ModID, state.TrackedEntry{
			Version:          mod.Version,
			LatestFileUpdate: newUpdate,
			Adult:            mod.AdultContent,
		})
	}

	if err := w.track.Save(); err != nil {
		return rows, err
	}
	return rows, nil
}

// reportUpdate notifies about a version bump and returns one table row per
// version released since oldVersion.
func (w *Watcher) reportUpdate(ctx context.Context, mod *nexus.Mod, oldVersion string) ([]render.UpdateRow, error) {
	w.log.Info("mod updated", "mod_id", mod.ModID, "old", oldVersion, "new", mod.Version)
	w.emit(EventModUpdated, mod.ModID, mod.DisplayName(),
		fmt.Sprintf("%s -> %s", oldVersion, mod.Version), nil)

	changelogs, err := w.api.Changelogs(ctx, w.cfg.Nexus.Game, mod.ModID)
	if err != nil {
		return nil, err
	}
	newEntries := changelogs.NewSince(oldVersion)

	w.notify(ctx, mod.ModID, mod.DisplayName(), telegram.UpdateText(mod, oldVersion, newEntries))

	old := oldVersion
	if old == "" {
		old = "N/A"
	}
	rows := make([]render.UpdateRow, 0, len(newEntries))
	for _, entry := range newEntries {
		rows = append(rows, render.UpdateRow{
			ID:         mod.ModID,
			Author:     mod.Author,
			Name:       mod.DisplayName(),
			Link:       mod.URL(),
			OldVersion: old,
			NewVersion: entry.Version,
		})
	}
	return rows, nil
}

// latestFileUpdates fetches the updated-mods feed as a mod id -> epoch map.
func (w *Watcher) latestFileUpdates(ctx context.Context) (map[int64]int64, error) {
	updates, err := w.api.Updated(ctx, w.cfg.Nexus.Game, string(w.cfg.Nexus.Period))
	if err != nil {
		return nil, err
	}
	latest := make(map[int64]int64, len(updates))
	for _, u := range updates {
		latest[u.ModID] = u.LatestFileUpdate
	}
	return latest, nil
}
