// Package store persists events and the hackathon preference.
package store

import (
	"context"
	"errors"

	"github.com/hackbot/hackbot/pkg/proto"
)

// ErrStoreNotFound is returned when no driver is registered under a name.
var ErrStoreNotFound = errors.New("store not found")

// EventStore is an interface for managing events.
type EventStore interface {
	// ListEvents returns every persisted event, across all guilds.
	ListEvents(ctx context.Context) ([]proto.Event, error)
	// SaveEvent creates or replaces an event.
	SaveEvent(ctx context.Context, event proto.Event) error
	// DeleteEvent removes an event. Deleting a missing event is not an error.
	DeleteEvent(ctx context.Context, guild proto.ID, event proto.ID) error
}

// PreferenceStore is an interface for managing the hackathon preference.
type PreferenceStore interface {
	Preference(ctx context.Context) (proto.Preference, error)
	SetPreference(ctx context.Context, pref proto.Preference) error
}

// Store is an interface for managing events and preferences.
type Store interface {
	EventStore
	PreferenceStore

	// Ping reports whether the underlying storage is reachable.
	Ping(ctx context.Context) error
	// Close releases the underlying storage.
	Close() error
}
