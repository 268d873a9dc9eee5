package backend

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/hackbot/hackbot/pkg/proto"
	"github.com/hackbot/hackbot/pkg/store"
)

// Get returns a snapshot of an event.
func (b *Backend) Get(_ context.Context, guild, id proto.ID) (proto.Event, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.lookup(guild, id)
	if !ok {
		return proto.Event{}, false
	}
	return e.Clone(), true
}

// Events returns snapshots of the events of a guild, ordered by ID.
func (b *Backend) Events(_ context.Context, guild proto.ID) []proto.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	events := make([]proto.Event, 0, len(b.events[guild]))
	for _, e := range b.events[guild] {
		events = append(events, e.Clone())
	}
	store.SortEvents(events)
	return events
}

// Guilds returns the guilds owning at least one event.
func (b *Backend) Guilds() []proto.ID {
	b.mu.RLock()
	defer b.mu.RUnlock()

	guilds := make([]proto.ID, 0, len(b.events))
	for g, events := range b.events {
		if len(events) > 0 {
			guilds = append(guilds, g)
		}
	}
	slices.Sort(guilds)
	return guilds
}

// CreateEvent registers a new event.
func (b *Backend) CreateEvent(ctx context.Context, e proto.Event) error {
	b.mu.Lock()
	if _, ok := b.lookup(e.GuildID, e.ID); ok {
		b.mu.Unlock()
		return proto.ErrEventExists
	}
	e = e.Clone()
	if err := b.save(ctx, e); err != nil {
		b.mu.Unlock()
		return err
	}
	b.mu.Unlock()

	b.render(ctx, e)
	return nil
}

// DeleteEvent removes an event and returns its last state.
func (b *Backend) DeleteEvent(ctx context.Context, guild, id proto.ID) (proto.Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.lookup(guild, id)
	if !ok {
		return proto.Event{}, proto.ErrEventNotFound
	}
	if err := b.store.DeleteEvent(ctx, guild, id); err != nil {
		return proto.Event{}, fmt.Errorf("delete event %s: %w", id, err)
	}

	delete(b.events[guild], id)
	if len(b.events[guild]) == 0 {
		delete(b.events, guild)
	}
	b.cache.Delete(guild, id)
	b.logger.Debug("event deleted", "guild", guild, "event", id)
	return e, nil
}

// RefreshEvent replaces a registered event with e, persists it and
// re-renders it. Refreshing the same state twice renders once.
func (b *Backend) RefreshEvent(ctx context.Context, e proto.Event) error {
	b.mu.Lock()
	if _, ok := b.lookup(e.GuildID, e.ID); !ok {
		b.mu.Unlock()
		return proto.ErrEventNotFound
	}
	e = e.Clone()
	if err := b.save(ctx, e); err != nil {
		b.mu.Unlock()
		return err
	}
	b.mu.Unlock()

	b.render(ctx, e)
	return nil
}

// UpdateEvent applies fn to the registered event and persists the result,
// holding the write lock so concurrent updates are not lost. Nothing is
// persisted when fn fails. It returns the updated event.
func (b *Backend) UpdateEvent(ctx context.Context, guild, id proto.ID, fn func(*proto.Event) error) (proto.Event, error) {
	b.mu.Lock()
	e, ok := b.lookup(guild, id)
	if !ok {
		b.mu.Unlock()
		return proto.Event{}, proto.ErrEventNotFound
	}
	e = e.Clone()
	if err := fn(&e); err != nil {
		b.mu.Unlock()
		return proto.Event{}, err
	}
	if err := b.save(ctx, e); err != nil {
		b.mu.Unlock()
		return proto.Event{}, err
	}
	b.mu.Unlock()

	b.render(ctx, e)
	return e.Clone(), nil
}

// save persists e and stores it in the registry. It must be called with mu
// held.
func (b *Backend) save(ctx context.Context, e proto.Event) error {
	if err := b.store.SaveEvent(ctx, e); err != nil {
		return fmt.Errorf("save event %s: %w", e.ID, err)
	}
	b.put(e)
	refreshCounter.Inc()
	return nil
}

// render sets the scheduled event description. Failures are logged: the
// event is already persisted and the next refresh renders it again.
func (b *Backend) render(ctx context.Context, e proto.Event) {
	b.renderMu.RLock()
	r := b.renderer
	b.renderMu.RUnlock()
	if r == nil {
		return
	}

	desc := e.Render()
	if b.cache.Rendered(e.GuildID, e.ID, desc) {
		renderCounter.WithLabelValues("cached").Inc()
		return
	}

	if err := r.EditScheduledEventDescription(ctx, e.GuildID, e.ID, desc); err != nil {
		renderCounter.WithLabelValues("error").Inc()
		b.logger.Error("render event", "guild", e.GuildID, "event", e.ID, "err", err)
		return
	}

	b.cache.Set(e.GuildID, e.ID, desc)
	renderCounter.WithLabelValues("ok").Inc()
}

// Prune removes the events of guild whose scheduled event is not in live.
// It returns the removed events.
func (b *Backend) Prune(ctx context.Context, guild proto.ID, live []proto.ScheduledEvent) ([]proto.Event, error) {
	keep := make(map[proto.ID]struct{}, len(live))
	for _, se := range live {
		keep[se.ID] = struct{}{}
	}

	var removed []proto.Event
	for _, e := range b.Events(ctx, guild) {
		if _, ok := keep[e.ID]; ok {
			continue
		}
		old, err := b.DeleteEvent(ctx, guild, e.ID)
		if errors.Is(err, proto.ErrEventNotFound) {
			continue
		}
		if err != nil {
			return removed, err
		}
		removed = append(removed, old)
	}
	return removed, nil
}
