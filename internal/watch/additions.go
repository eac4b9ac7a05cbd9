// Package watch implements the polling loops for nexwatch.
// This file implements the additions watcher: report mods newly added to a
// game, once each.
package watch

import (
	"context"
	"fmt"
	"sort"

	"github.com/nexwatch/nexwatch/internal/render"
	"github.com/nexwatch/nexwatch/internal/telegram"
)

// RunAdditions checks for newly added mods, looping at the configured
// frequency until the context is cancelled (or returning after one pass when
// looping is disabled).
func (w *Watcher) RunAdditions(ctx context.Context) error {
	if err := w.seen.Load(); err != nil {
		return err
	}

	for {
		rows, err := w.checkAdditions(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.emit(EventCheckFailed, 0, "", "Check failed", err)
			return err
		}

		if len(rows) > 0 {
			w.emit(EventCheckCompleted, 0, "", fmt.Sprintf("%d new mod(s) found", len(rows)), nil)
			if w.opts.TableWriter != nil {
				fmt.Fprintln(w.opts.TableWriter, render.AdditionsTable(rows))
			}
		} else {
			w.emit(EventCheckCompleted, 0, "", "No new mods found", nil)
		}

		if !w.cfg.Watch.Loop {
			return nil
		}
		if err := w.sleep(ctx, w.cfg.Watch.AdditionsFrequency); err != nil {
			return err
		}
	}
}

// checkAdditions performs a single additions pass and returns the rows for
// the result table.
func (w *Watcher) checkAdditions(ctx context.Context) ([]render.AdditionRow, error) {
	w.emit(EventCheckStarted, 0, "", "Checking for new mods", nil)

	mods, err := w.api.LatestAdded(ctx, w.cfg.Nexus.Game)
	if err != nil {
		return nil, err
	}

	// Oldest first, so notifications arrive in publication order.
	sort.Slice(mods, func(i, j int) bool { return mods[i].ModID < mods[j].ModID })

	var rows []render.AdditionRow
	for i := range mods {
		mod := &mods[i]
		if w.seen.Seen(mod.ModID) {
			continue
		}

		// Not marked seen: the mod may become available on a later pass.
		if !mod.Available {
			w.log.Debug("mod not available yet, skipping", "mod_id", mod.ModID)
			w.emit(EventModSkipped, mod.ModID, mod.DisplayName(), "not available yet", nil)
			continue
		}

		w.seen.MarkSeen(mod.ModID)

		if w.cfg.Watch.HideAdult && mod.AdultContent {
			w.log.Debug("mod contains adult content, skipping", "mod_id", mod.ModID)
			w.emit(EventModSkipped, mod.ModID, mod.DisplayName(), "adult content", nil)
			continue
		}

		rows = append(rows, render.AdditionRow{
			ID:     mod.ModID,
			Author: mod.Author,
			Name:   mod.DisplayName(),
			Link:   mod.URL(),
		})
		w.emit(EventModDiscovered, mod.ModID, mod.DisplayName(), mod.Version, nil)

		w.notify(ctx, mod.ModID, mod.DisplayName(), telegram.AdditionText(mod))
	}

	if err := w.seen.Save(); err != nil {
		return rows, err
	}
	return rows, nil
}
