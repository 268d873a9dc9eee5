// Package backend is the process-wide events registry. It keeps every event
// in memory, persists each change through a store and re-renders the
// scheduled event description on the platform.
package backend

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/pkg/config"
	"github.com/hackbot/hackbot/pkg/proto"
	"github.com/hackbot/hackbot/pkg/store"
)

// Renderer updates the platform side of an event.
type Renderer interface {
	EditScheduledEventDescription(ctx context.Context, guild proto.ID, event proto.ID, description string) error
}

// Backend holds the events registry and the hackathon preference.
type Backend struct {
	ctx    context.Context
	cfg    *config.Config
	store  store.Store
	logger *log.Logger
	cache  *cache

	renderMu sync.RWMutex
	renderer Renderer

	mu     sync.RWMutex
	events map[proto.ID]map[proto.ID]proto.Event

	prefMu sync.RWMutex
	pref   proto.Preference
}

// New returns a new backend persisting through st. Call Load before use.
func New(ctx context.Context, cfg *config.Config, st store.Store) *Backend {
	size := 0
	if cfg != nil {
		size = cfg.Cache.Size
	}

	return &Backend{
		ctx:    ctx,
		cfg:    cfg,
		store:  st,
		logger: log.FromContext(ctx).WithPrefix("backend"),
		cache:  newCache(size),
		events: map[proto.ID]map[proto.ID]proto.Event{},
	}
}

// SetRenderer sets where refreshed events are rendered. Until it is set,
// events are persisted without being rendered.
func (b *Backend) SetRenderer(r Renderer) {
	b.renderMu.Lock()
	defer b.renderMu.Unlock()
	b.renderer = r
}

// Store returns the store events are persisted to.
func (b *Backend) Store() store.Store {
	return b.store
}

// Load replaces the registry and the preference with the persisted state.
func (b *Backend) Load(ctx context.Context) error {
	events, err := b.store.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	pref, err := b.store.Preference(ctx)
	if err != nil {
		return fmt.Errorf("load preference: %w", err)
	}

	b.mu.Lock()
	b.events = map[proto.ID]map[proto.ID]proto.Event{}
	for _, e := range events {
		b.put(e)
	}
	b.mu.Unlock()

	b.prefMu.Lock()
	b.pref = pref
	b.prefMu.Unlock()

	b.logger.Info("registry loaded", "events", len(events))
	return nil
}

// Flush persists every event and the preference.
func (b *Backend) Flush(ctx context.Context) error {
	var errs []error

	b.mu.Lock()
	n := 0
	for _, guild := range b.events {
		for _, e := range guild {
			if err := b.store.SaveEvent(ctx, e); err != nil {
				errs = append(errs, fmt.Errorf("save event %s: %w", e.ID, err))
				continue
			}
			n++
		}
	}
	b.mu.Unlock()

	b.prefMu.Lock()
	if err := b.store.SetPreference(ctx, b.pref); err != nil {
		errs = append(errs, fmt.Errorf("save preference: %w", err))
	}
	b.prefMu.Unlock()

	b.logger.Info("registry flushed", "events", n)
	return errors.Join(errs...)
}

// put stores e in the registry. It must be called with mu held.
func (b *Backend) put(e proto.Event) {
	guild, ok := b.events[e.GuildID]
	if !ok {
		guild = map[proto.ID]proto.Event{}
		b.events[e.GuildID] = guild
	}
	guild[e.ID] = e
}

// lookup returns the live record. It must be called with mu held.
func (b *Backend) lookup(guild, id proto.ID) (proto.Event, bool) {
	e, ok := b.events[guild][id]
	return e, ok
}
