// Package file stores events and the preference as JSON documents in the
// data directory.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/pkg/config"
	"github.com/hackbot/hackbot/pkg/proto"
	"github.com/hackbot/hackbot/pkg/store"
)

const (
	// EventsFile holds every event, keyed by guild then by event.
	EventsFile = "events.json"
	// PreferenceFile holds the hackathon preference.
	PreferenceFile = "preference.json"
)

func init() {
	store.Register("file", newStore)
}

type document map[proto.ID]map[proto.ID]proto.Event

// Store is a store.Store backed by two JSON files. Every write replaces the
// whole file.
type Store struct {
	dir    string
	logger *log.Logger

	mu     sync.Mutex
	events document
	pref   proto.Preference
}

var _ store.Store = (*Store)(nil)

func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg == nil {
		return nil, config.ErrNilConfig
	}
	return Open(ctx, cfg.DataPath)
}

// Open loads the documents found in dir. Missing files are treated as empty
// documents.
func Open(ctx context.Context, dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	s := &Store{
		dir:    dir,
		logger: log.FromContext(ctx).WithPrefix("store.file"),
		events: document{},
	}

	if err := s.read(EventsFile, &s.events); err != nil {
		return nil, err
	}
	if err := s.read(PreferenceFile, &s.pref); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) read(name string, v any) error {
	bts, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(bts) == 0 {
		return nil
	}
	if err := json.Unmarshal(bts, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// write replaces name atomically. It must be called with mu held.
func (s *Store) write(name string, v any) error {
	bts, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, name+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // nolint: errcheck

	if _, err := tmp.Write(bts); err != nil {
		tmp.Close() // nolint: errcheck
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	s.logger.Debug("write", "file", name, "size", len(bts))
	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}

// ListEvents implements store.EventStore.
func (s *Store) ListEvents(_ context.Context) ([]proto.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []proto.Event
	for _, guild := range s.events {
		for _, e := range guild {
			events = append(events, e.Clone())
		}
	}
	store.SortEvents(events)
	return events, nil
}

// SaveEvent implements store.EventStore.
func (s *Store) SaveEvent(_ context.Context, event proto.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild, ok := s.events[event.GuildID]
	if !ok {
		guild = map[proto.ID]proto.Event{}
		s.events[event.GuildID] = guild
	}
	prev, existed := guild[event.ID]
	guild[event.ID] = event.Clone()

	if err := s.write(EventsFile, s.events); err != nil {
		if existed {
			guild[event.ID] = prev
		} else {
			delete(guild, event.ID)
		}
		return err
	}
	return nil
}

// DeleteEvent implements store.EventStore.
func (s *Store) DeleteEvent(_ context.Context, guild proto.ID, event proto.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, ok := s.events[guild]
	if !ok {
		return nil
	}
	prev, ok := events[event]
	if !ok {
		return nil
	}
	delete(events, event)
	if len(events) == 0 {
		delete(s.events, guild)
	}

	if err := s.write(EventsFile, s.events); err != nil {
		if _, ok := s.events[guild]; !ok {
			s.events[guild] = events
		}
		events[event] = prev
		return err
	}
	return nil
}

// Preference implements store.PreferenceStore.
func (s *Store) Preference(_ context.Context) (proto.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pref, nil
}

// SetPreference implements store.PreferenceStore.
func (s *Store) SetPreference(_ context.Context, pref proto.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(PreferenceFile, pref); err != nil {
		return err
	}
	s.pref = pref
	return nil
}

// Ping implements store.Store. It checks that the data directory is still
// there.
func (s *Store) Ping(_ context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

// Close implements store.Store.
func (s *Store) Close() error {
	return nil
}
