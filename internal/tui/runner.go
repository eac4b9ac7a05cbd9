// Package tui provides the live dashboard for nexwatch watch runs.
// This file bridges the watcher's event stream into the Bubble Tea program.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nexwatch/nexwatch/internal/watch"
)

// Run starts the dashboard and the watcher together and blocks until the
// watcher finishes or the user quits.
func Run(ctx context.Context, w *watch.Watcher, mode Mode, game string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(mode, game)
	program := tea.NewProgram(model, tea.WithAltScreen())

	w.SetOptions(&watch.Options{
		OnEvent: func(event watch.Event) {
			program.Send(EventMsg{Event: event})
		},
	})

	watchErr := make(chan error, 1)
	go func() {
		var err error
		switch mode {
		case ModeUpdates:
			err = w.RunUpdates(ctx)
		default:
			err = w.RunAdditions(ctx)
		}
		watchErr <- err
		program.Send(DoneMsg{Err: err})
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-watchErr
		return err
	}

	// The user quit (or the watcher finished); stop the watcher and collect
	// its result. Cancellation caused by quitting is not an error.
	cancel()
	if err := <-watchErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
