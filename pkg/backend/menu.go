package backend

import (
	"context"

	"github.com/hackbot/hackbot/pkg/proto"
)

// MenuNonzeroTeam returns a menu of the guild events having at least one
// team. It returns false when there is none.
func (b *Backend) MenuNonzeroTeam(ctx context.Context, guild proto.ID) (proto.SelectMenu, bool) {
	return b.EventsMenu(ctx, guild, func(e proto.Event) bool {
		return !e.Teams.IsEmpty()
	})
}

// MenuWithUser returns a menu of the guild events where user is a member of
// a team. It returns false when there is none.
func (b *Backend) MenuWithUser(ctx context.Context, guild, user proto.ID) (proto.SelectMenu, bool) {
	return b.EventsMenu(ctx, guild, func(e proto.Event) bool {
		found := false
		e.Teams.Each(func(_ proto.TeamID, t proto.Team) bool {
			found = t.Contains(user)
			return !found
		})
		return found
	})
}

// EventsMenu returns a menu of the guild events accepted by keep. A nil
// keep accepts every event. Only the first proto.MaxMenuOptions events are
// offered. It returns false when the menu is empty.
func (b *Backend) EventsMenu(ctx context.Context, guild proto.ID, keep func(proto.Event) bool) (proto.SelectMenu, bool) {
	menu := proto.SelectMenu{CustomID: proto.MenuEvent}
	for _, e := range b.Events(ctx, guild) {
		if keep != nil && !keep(e) {
			continue
		}
		if !menu.Add(e.Name, e.ID.String()) {
			b.logger.Warn("events menu truncated", "guild", guild, "max", proto.MaxMenuOptions)
			break
		}
	}
	return menu, !menu.IsEmpty()
}

// TeamsMenu returns a menu of every team of an event.
func (b *Backend) TeamsMenu(ctx context.Context, guild, event proto.ID) proto.SelectMenu {
	return b.teamsMenu(ctx, guild, event, nil)
}

// TeamsMenuWithoutUser returns a menu of the teams of an event that user is
// not a member of.
func (b *Backend) TeamsMenuWithoutUser(ctx context.Context, guild, event, user proto.ID) proto.SelectMenu {
	return b.teamsMenu(ctx, guild, event, func(t proto.Team) bool {
		return !t.Contains(user)
	})
}

// TeamsMenuWithUser returns a menu of the teams of an event that user is a
// member of.
func (b *Backend) TeamsMenuWithUser(ctx context.Context, guild, event, user proto.ID) proto.SelectMenu {
	return b.teamsMenu(ctx, guild, event, func(t proto.Team) bool {
		return t.Contains(user)
	})
}

func (b *Backend) teamsMenu(ctx context.Context, guild, event proto.ID, keep func(proto.Team) bool) proto.SelectMenu {
	menu := proto.SelectMenu{CustomID: proto.MenuTeam}
	e, ok := b.Get(ctx, guild, event)
	if !ok {
		return menu
	}

	e.Teams.Each(func(id proto.TeamID, t proto.Team) bool {
		if keep != nil && !keep(t) {
			return true
		}
		if !menu.Add(t.Name, id.String()) {
			b.logger.Warn("teams menu truncated", "guild", guild, "event", event, "max", proto.MaxMenuOptions)
			return false
		}
		return true
	})
	return menu
}
