// Package watch implements the polling loops that check Nexus Mods for new
// and updated mods, deduplicate against on-disk state, and fan results out to
// Telegram, the terminal table and any subscribed observer.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/nexwatch/nexwatch/internal/config"
	"github.com/nexwatch/nexwatch/internal/logging"
	"github.com/nexwatch/nexwatch/internal/nexus"
	"github.com/nexwatch/nexwatch/internal/state"
	"github.com/nexwatch/nexwatch/internal/telegram"
)

// ModAPI is the subset of the Nexus Mods client the watcher needs.
// *nexus.Client satisfies it; tests substitute a fake.
type ModAPI interface {
	LatestAdded(ctx context.Context, game string) ([]nexus.Mod, error)
	Updated(ctx context.Context, game, period string) ([]nexus.ModUpdate, error)
	TrackedMods(ctx context.Context, game string) ([]nexus.TrackedMod, error)
	Mod(ctx context.Context, game string, modID int64) (*nexus.Mod, error)
	Changelogs(ctx context.Context, game string, modID int64) (nexus.ChangelogList, error)
}

// Notifier delivers notification messages. *telegram.Client satisfies it.
type Notifier interface {
	SendMessage(ctx context.Context, msg telegram.Message) error
}

// Watcher runs the additions and updates checks.
type Watcher struct {
	api      ModAPI
	notifier Notifier // nil disables notifications
	seen     *state.SeenStore
	track    *state.TrackCache
	cfg      *config.Config
	log      *logging.Logger
	opts     *Options
}

// NewWatcher creates a Watcher with the given dependencies.
// notifier may be nil to disable Telegram delivery.
func NewWatcher(api ModAPI, notifier Notifier, seen *state.SeenStore, track *state.TrackCache, cfg *config.Config) *Watcher {
	return &Watcher{
		api:      api,
		notifier: notifier,
		seen:     seen,
		track:    track,
		cfg:      cfg,
		log:      logging.Global(),
		opts:     DefaultOptions(),
	}
}

// SetOptions sets the watcher options.
func (w *Watcher) SetOptions(opts *Options) {
	if opts != nil {
		w.opts = opts
	}
}

// emit sends an event to the event handler if configured.
func (w *Watcher) emit(eventType EventType, modID int64, modName, message string, err error) {
	if w.opts.OnEvent != nil {
		w.opts.OnEvent(Event{
			Type:      eventType,
			ModID:     modID,
			ModName:   modName,
			Message:   message,
			Error:     err,
			Timestamp: time.Now(),
		})
	}
}

// notify sends a Telegram message when a notifier is configured.
// Delivery failures are reported as events but do not abort the check;
// the mod stays recorded as seen either way.
func (w *Watcher) notify(ctx context.Context, modID int64, modName, text string) {
	if w.notifier == nil {
		return
	}

	msg := telegram.Message{
		ChatID:   w.cfg.Telegram.ChatID,
		Text:     text,
		ThreadID: w.cfg.Telegram.TopicID,
	}
	if err := w.notifier.SendMessage(ctx, msg); err != nil {
		w.log.Error("notification failed", "mod_id", modID, "error", err)
		w.emit(EventNotifyFailed, modID, modName, "", err)
		return
	}
	w.emit(EventNotifySent, modID, modName, "", nil)
}

// sleep waits for the given frequency or until the context is cancelled.
func (w *Watcher) sleep(ctx context.Context, frequency time.Duration) error {
	w.emit(EventSleeping, 0, "", fmt.Sprintf("Sleeping for %v", frequency), nil)

	timer := time.NewTimer(frequency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
