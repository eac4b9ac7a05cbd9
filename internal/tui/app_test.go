package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nexwatch/nexwatch/internal/watch"
)

func eventMsg(t watch.EventType, modID int64, name, message string, err error) EventMsg {
	return EventMsg{Event: watch.Event{
		Type:      t,
		ModID:     modID,
		ModName:   name,
		Message:   message,
		Error:     err,
		Timestamp: time.Now(),
	}}
}

func readyModel(mode Mode) *Model {
	m := NewModel(mode, "starfield")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(*Model)
}

func TestModelCountsEvents(t *testing.T) {
	m := readyModel(ModeAdditions)

	msgs := []tea.Msg{
		eventMsg(watch.EventCheckStarted, 0, "", "Checking", nil),
		eventMsg(watch.EventModDiscovered, 1, "A", "1.0", nil),
		eventMsg(watch.EventModDiscovered, 2, "B", "2.0", nil),
		eventMsg(watch.EventModUpdated, 3, "C", "1.0 -> 2.0", nil),
		eventMsg(watch.EventCheckFailed, 0, "", "", fmt.Errorf("boom")),
	}
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(*Model)
	}

	if m.checks != 1 || m.discovered != 2 || m.updated != 1 || m.failed != 1 {
		t.Errorf("counters = checks=%d discovered=%d updated=%d failed=%d",
			m.checks, m.discovered, m.updated, m.failed)
	}
}

func TestModelViewShowsState(t *testing.T) {
	m := readyModel(ModeUpdates)

	updated, _ := m.Update(eventMsg(watch.EventModDiscovered, 42, "Cool Mod", "1.0", nil))
	m = updated.(*Model)

	view := m.View()
	for _, want := range []string{"starfield", "updates", "Cool Mod", "q to quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModelViewBeforeReady(t *testing.T) {
	m := NewModel(ModeAdditions, "starfield")
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q, want Loading...", got)
	}
}

func TestModelQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		m := readyModel(ModeAdditions)

		var msg tea.KeyMsg
		if key == "q" {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}

		updated, cmd := m.Update(msg)
		m = updated.(*Model)
		if !m.quitting {
			t.Errorf("key %q did not set quitting", key)
		}
		if cmd == nil {
			t.Errorf("key %q returned no quit command", key)
		}
		if m.View() != "" {
			t.Errorf("View() after quit = %q, want empty", m.View())
		}
	}
}

func TestModelDoneMsg(t *testing.T) {
	m := readyModel(ModeAdditions)

	watchErr := fmt.Errorf("watch failed")
	updated, cmd := m.Update(DoneMsg{Err: watchErr})
	m = updated.(*Model)

	if m.Err() != watchErr {
		t.Errorf("Err() = %v, want the watcher error", m.Err())
	}
	if cmd == nil {
		t.Error("DoneMsg returned no quit command")
	}
}

func TestModelStatusFromSleeping(t *testing.T) {
	m := readyModel(ModeAdditions)

	updated, _ := m.Update(eventMsg(watch.EventSleeping, 0, "", "Sleeping for 5m0s", nil))
	m = updated.(*Model)

	if !strings.Contains(m.View(), "Sleeping for 5m0s") {
		t.Error("View() does not show sleeping status")
	}
}
