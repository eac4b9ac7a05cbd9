package watch

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nexwatch/nexwatch/internal/config"
	"github.com/nexwatch/nexwatch/internal/nexus"
	"github.com/nexwatch/nexwatch/internal/state"
	"github.com/nexwatch/nexwatch/internal/telegram"
)

// fakeAPI is a scriptable ModAPI implementation.
type fakeAPI struct {
	mu sync.Mutex

	latestAdded []nexus.Mod
	updated     []nexus.ModUpdate
	tracked     []nexus.TrackedMod
	mods        map[int64]*nexus.Mod
	changelogs  map[int64]nexus.ChangelogList

	latestAddedErr error
	updatedErr     error
	trackedErr     error
	modErr         error

	modFetches int
}

func (f *fakeAPI) LatestAdded(ctx context.Context, game string) ([]nexus.Mod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.latestAddedErr != nil {
		return nil, f.latestAddedErr
	}
	return f.latestAdded, nil
}

func (f *fakeAPI) Updated(ctx context.Context, game, period string) ([]nexus.ModUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updatedErr != nil {
		return nil, f.updatedErr
	}
	return f.updated, nil
}

func (f *fakeAPI) TrackedMods(ctx context.Context, game string) ([]nexus.TrackedMod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.trackedErr != nil {
		return nil, f.trackedErr
	}
	return f.tracked, nil
}

func (f *fakeAPI) Mod(ctx context.Context, game string, modID int64) (*nexus.Mod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.modErr != nil {
		return nil, f.modErr
	}
	f.modFetches++
	mod, ok := f.mods[modID]
	if !ok {
		return nil, fmt.Errorf("no such mod %d", modID)
	}
	copied := *mod
	return &copied, nil
}

func (f *fakeAPI) Changelogs(ctx context.Context, game string, modID int64) (nexus.ChangelogList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.changelogs[modID], nil
}

// fakeNotifier records sent messages.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []telegram.Message
	err      error
}

func (f *fakeNotifier) SendMessage(ctx context.Context, msg telegram.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeNotifier) sent() []telegram.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]telegram.Message, len(f.messages))
	copy(out, f.messages)
	return out
}

// eventRecorder collects events by type.
type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) handle(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) ofType(t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// newTestWatcher wires a watcher with fakes and single-pass config.
func newTestWatcher(t *testing.T, api *fakeAPI, notifier Notifier) (*Watcher, *eventRecorder) {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Nexus.APIKey = "key"
	cfg.Nexus.Game = "starfield"
	cfg.Telegram.ChatID = "-100123"
	cfg.Watch.Loop = false
	cfg.State.Dir = t.TempDir()

	seen := state.NewSeenStoreInDir(cfg.State.Dir)
	track := state.NewTrackCacheInDir(cfg.State.Dir)

	w := NewWatcher(api, notifier, seen, track, cfg)
	rec := &eventRecorder{}
	w.SetOptions(&Options{OnEvent: rec.handle})
	return w, rec
}

func TestSleepCancellation(t *testing.T) {
	w, _ := newTestWatcher(t, &fakeAPI{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := w.sleep(ctx, time.Hour)
	if err != context.Canceled {
		t.Errorf("sleep() = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("sleep() did not return promptly on cancellation")
	}
}

func TestNotifyNilNotifier(t *testing.T) {
	w, rec := newTestWatcher(t, &fakeAPI{}, nil)

	// Must be a no-op without panicking.
	w.notify(context.Background(), 1, "Mod", "text")
	if got := rec.ofType(EventNotifySent); got != nil {
		t.Errorf("notify events = %v, want none", got)
	}
}

func TestNotifyFailureEmitsEvent(t *testing.T) {
	notifier := &fakeNotifier{err: fmt.Errorf("boom")}
	w, rec := newTestWatcher(t, &fakeAPI{}, notifier)

	w.notify(context.Background(), 7, "Mod", "text")

	failed := rec.ofType(EventNotifyFailed)
	if len(failed) != 1 || failed[0].ModID != 7 {
		t.Errorf("notify-failed events = %v, want one for mod 7", failed)
	}
	if sent := rec.ofType(EventNotifySent); sent != nil {
		t.Errorf("notify-sent events = %v, want none", sent)
	}
}
