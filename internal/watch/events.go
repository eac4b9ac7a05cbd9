// Package watch implements the polling loops that check Nexus Mods for new
// and updated mods.
// This file defines the event stream observers (console, TUI) subscribe to.
package watch

import (
	"io"
	"time"
)

// EventType identifies the type of watch event.
type EventType string

const (
	EventCheckStarted   EventType = "check_started"
	EventCheckCompleted EventType = "check_completed"
	EventCheckFailed    EventType = "check_failed"
	EventModDiscovered  EventType = "mod_discovered"
	EventModSkipped     EventType = "mod_skipped"
	EventModTracked     EventType = "mod_tracked"
	EventModUpdated     EventType = "mod_updated"
	EventNotifySent     EventType = "notify_sent"
	EventNotifyFailed   EventType = "notify_failed"
	EventCachePrimed    EventType = "cache_primed"
	EventSleeping       EventType = "sleeping"
)

// Event represents a watch event for observers.
type Event struct {
	Type      EventType
	ModID     int64
	ModName   string
	Message   string
	Error     error
	Timestamp time.Time
}

// EventHandler is a callback for watch events.
type EventHandler func(event Event)

// Options configures a Watcher.
type Options struct {
	// OnEvent is called for each watch event (optional).
	OnEvent EventHandler
	// TableWriter receives the rendered result table after each check
	// (optional). The TUI passes nil and renders from events instead.
	TableWriter io.Writer
}

// DefaultOptions returns default watcher options.
func DefaultOptions() *Options {
	return &Options{}
}
