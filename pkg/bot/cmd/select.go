package cmd

import (
	"context"

	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/proto"
)

// choose shows menu with content and waits for the invoking user to pick an
// option. Any failure to get a single string choice is reported as stage.
// Errors from the platform are returned unchanged.
func (s *Session) choose(ctx context.Context, in *platform.Interaction, content string, menu proto.SelectMenu, stage *SelectionError) (*platform.Interaction, string, error) {
	err := s.reply(ctx, in, platform.Response{
		Content:   content,
		Ephemeral: true,
		Menus:     []proto.SelectMenu{menu},
	})
	if err != nil {
		return nil, "", err
	}

	choice, err := s.Collector.Await(ctx, platform.Filter{
		GuildID:  in.GuildID,
		UserID:   in.User.ID,
		CustomID: menu.CustomID,
	})
	if err != nil {
		s.Logger.Debug("no choice", "menu", menu.CustomID, "user", in.User.ID, "err", err)
		return nil, "", stage
	}
	if choice.ComponentType != platform.ComponentStringSelect {
		return nil, "", stage
	}
	value, ok := choice.FirstValue()
	if !ok {
		return nil, "", stage
	}
	return choice, value, nil
}

// selectEvent shows an event menu and returns the picked event.
func (s *Session) selectEvent(ctx context.Context, in *platform.Interaction, content string, menu proto.SelectMenu) (*platform.Interaction, proto.ID, error) {
	choice, value, err := s.choose(ctx, in, content, menu, ErrEventSelection)
	if err != nil {
		return nil, 0, err
	}
	id, err := proto.ParseID(value)
	if err != nil {
		return nil, 0, ErrEventSelection
	}
	return choice, id, nil
}

// selectTeam shows a team menu and returns the picked team.
func (s *Session) selectTeam(ctx context.Context, in *platform.Interaction, content string, menu proto.SelectMenu) (*platform.Interaction, proto.TeamID, error) {
	choice, value, err := s.choose(ctx, in, content, menu, ErrTeamSelection)
	if err != nil {
		return nil, 0, err
	}
	id, err := proto.ParseTeamID(value)
	if err != nil {
		return nil, 0, ErrTeamSelection
	}
	return choice, id, nil
}

// lookupTeam returns the current state of an event and one of its teams.
func (s *Session) lookupTeam(ctx context.Context, guild, event proto.ID, team proto.TeamID) (proto.Event, proto.Team, error) {
	e, ok := s.Backend.Get(ctx, guild, event)
	if !ok {
		return proto.Event{}, proto.Team{}, ErrLookupFailed
	}
	t, ok := e.Teams.Team(team)
	if !ok {
		return proto.Event{}, proto.Team{}, ErrLookupFailed
	}
	return e, t, nil
}
