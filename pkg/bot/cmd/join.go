package cmd

import (
	"context"
	"errors"

	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/proto"
)

func joinCommand() *Command {
	return &Command{
		Spec: platform.CommandSpec{
			Name:        "join",
			Description: "Join a team.",
		},
		Run: runJoin,
	}
}

// runJoin walks the user through picking an event then a team, opens the
// team channels to them and adds them to the team. Channel permissions
// already granted are kept when a later step fails. The user is only told
// they joined once the membership is saved.
func runJoin(ctx context.Context, s *Session, in *platform.Interaction) error {
	if in.GuildID.IsZero() {
		return ErrNotInGuild
	}
	guild := in.GuildID
	p := s.Printer

	menu, ok := s.Backend.MenuNonzeroTeam(ctx, guild)
	if !ok {
		joinCounter.WithLabelValues("no_teams").Inc()
		return s.Client.Respond(ctx, in, platform.Response{
			Content:   p.Sprintf(msgNoTeams),
			Ephemeral: true,
		})
	}

	choice, eventID, err := s.selectEvent(ctx, in, p.Sprintf(msgSelectJoinEvent), menu)
	if err != nil {
		joinCounter.WithLabelValues("failed").Inc()
		return err
	}

	teams := s.Backend.TeamsMenu(ctx, guild, eventID)
	if teams.IsEmpty() {
		joinCounter.WithLabelValues("no_teams").Inc()
		return s.done(ctx, choice, p.Sprintf(msgNoTeamLeft))
	}

	choice, teamID, err := s.selectTeam(ctx, choice, p.Sprintf(msgSelectJoinTeam), teams)
	if err != nil {
		joinCounter.WithLabelValues("failed").Inc()
		return err
	}

	_, team, err := s.lookupTeam(ctx, guild, eventID, teamID)
	if err != nil {
		joinCounter.WithLabelValues("failed").Inc()
		return err
	}

	participant := proto.ParticipantFromUser(choice.User)
	ow := proto.MemberOverwrite(participant.ID)
	for _, channel := range team.Channels() {
		if err := s.Client.SetChannelPermission(ctx, channel, ow); err != nil {
			joinCounter.WithLabelValues("failed").Inc()
			return err
		}
	}

	var addErr error
	_, err = s.Backend.UpdateEvent(ctx, guild, eventID, func(e *proto.Event) error {
		addErr = e.Teams.AddParticipant(teamID, participant)
		return nil
	})

	var msg string
	switch {
	case addErr != nil:
		joinCounter.WithLabelValues("capacity").Inc()
		s.Logger.Debug("participant not added", "team", team.Name, "user", participant.ID, "err", addErr)
		msg = p.Sprintf(msgNotJoined, addErr)
	case errors.Is(err, proto.ErrEventNotFound):
		// The event was unregistered while the user was choosing.
		joinCounter.WithLabelValues("failed").Inc()
		return ErrLookupFailed
	case err != nil:
		joinCounter.WithLabelValues("failed").Inc()
		s.Logger.Error("save participant", "guild", guild, "event", eventID, "team", teamID, "err", err)
		msg = p.Sprintf(msgNotSaved)
	default:
		joinCounter.WithLabelValues("joined").Inc()
		msg = p.Sprintf(msgJoined, team.Name)
	}

	return s.done(ctx, choice, msg)
}
