package cmd

import (
	"context"

	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/proto"
)

func leaveCommand() *Command {
	return &Command{
		Spec: platform.CommandSpec{
			Name:        "leave",
			Description: "Leave a team.",
		},
		Run: runLeave,
	}
}

func runLeave(ctx context.Context, s *Session, in *platform.Interaction) error {
	if in.GuildID.IsZero() {
		return ErrNotInGuild
	}
	guild, user := in.GuildID, in.User.ID
	p := s.Printer

	menu, ok := s.Backend.MenuWithUser(ctx, guild, user)
	if !ok {
		return s.Client.Respond(ctx, in, platform.Response{
			Content:   p.Sprintf(msgNotMember),
			Ephemeral: true,
		})
	}

	choice, eventID, err := s.selectEvent(ctx, in, p.Sprintf(msgSelectLeaveEvent), menu)
	if err != nil {
		return err
	}

	teams := s.Backend.TeamsMenuWithUser(ctx, guild, eventID, user)
	if teams.IsEmpty() {
		return s.done(ctx, choice, p.Sprintf(msgNotMember))
	}

	choice, teamID, err := s.selectTeam(ctx, choice, p.Sprintf(msgSelectLeaveTeam), teams)
	if err != nil {
		return err
	}

	_, team, err := s.lookupTeam(ctx, guild, eventID, teamID)
	if err != nil {
		return err
	}

	for _, channel := range team.Channels() {
		if err := s.Client.DeleteChannelPermission(ctx, channel, user); err != nil {
			return err
		}
	}

	if _, err := s.Backend.UpdateEvent(ctx, guild, eventID, func(e *proto.Event) error {
		e.Teams.RemoveParticipant(teamID, user)
		return nil
	}); err != nil {
		s.Logger.Error("refresh event", "guild", guild, "event", eventID, "err", err)
	}

	return s.done(ctx, choice, p.Sprintf(msgLeft, team.Name))
}
