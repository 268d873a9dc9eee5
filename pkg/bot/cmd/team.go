package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/proto"
	"github.com/hackbot/hackbot/pkg/utils"
)

func teamCommand() *Command {
	return &Command{
		Spec: platform.CommandSpec{
			Name:        "team",
			Description: "Manage the teams of an event.",
			Subcommands: []platform.CommandSpec{
				{
					Name:        "create",
					Description: "Create a team with its own text and voice channels.",
					Options: []platform.OptionSpec{
						{
							Name:        "name",
							Description: "Name of the team.",
							Type:        platform.OptionString,
							Required:    true,
						},
						{
							Name:        "description",
							Description: "What the team works on.",
							Type:        platform.OptionString,
						},
					},
				},
				{
					Name:        "delete",
					Description: "Delete a team and its channels.",
				},
			},
		},
		Run: runTeam,
	}
}

func runTeam(ctx context.Context, s *Session, in *platform.Interaction) error {
	if in.GuildID.IsZero() {
		return ErrNotInGuild
	}
	switch in.Subcommand {
	case "create":
		return createTeam(ctx, s, in)
	case "delete":
		return deleteTeam(ctx, s, in)
	default:
		return fmt.Errorf("unknown subcommand %q", in.Subcommand)
	}
}

func createTeam(ctx context.Context, s *Session, in *platform.Interaction) error {
	guild := in.GuildID
	p := s.Printer

	name, _ := in.StringOption("name")
	name = strings.TrimSpace(name)
	if err := utils.ValidateTeamName(name); err != nil {
		return err
	}
	description, _ := in.StringOption("description")

	menu, ok := s.Backend.EventsMenu(ctx, guild, nil)
	if !ok {
		return s.Client.Respond(ctx, in, platform.Response{
			Content:   p.Sprintf(msgRegisterFirst),
			Ephemeral: true,
		})
	}

	choice, eventID, err := s.selectEvent(ctx, in, p.Sprintf(msgSelectCreateEvent), menu)
	if err != nil {
		return err
	}
	if _, ok := s.Backend.Get(ctx, guild, eventID); !ok {
		return ErrLookupFailed
	}

	pref := s.Backend.Preference(ctx)
	text, err := s.Client.CreateChannel(ctx, guild, platform.ChannelSpec{
		Name:    utils.ChannelName(name),
		Topic:   description,
		Kind:    platform.ChannelText,
		Parent:  pref.HackathonCategory,
		Private: true,
	})
	if err != nil {
		return err
	}
	vocal, err := s.Client.CreateChannel(ctx, guild, platform.ChannelSpec{
		Name:    name,
		Kind:    platform.ChannelVoice,
		Parent:  pref.HackathonCategory,
		Private: true,
	})
	if err != nil {
		s.deleteChannels(ctx, proto.NewTeam(name, description, nil, text, 0))
		return err
	}

	team := proto.NewTeam(name, description, nil, text, vocal)
	var id proto.TeamID
	if _, err := s.Backend.UpdateEvent(ctx, guild, eventID, func(e *proto.Event) error {
		id = e.Teams.AddTeam(team)
		return nil
	}); err != nil {
		s.deleteChannels(ctx, team)
		return err
	}

	s.Logger.Info("team created", "guild", guild, "event", eventID, "team", id, "name", name)
	return s.done(ctx, choice, p.Sprintf(msgTeamCreated, name))
}

func deleteTeam(ctx context.Context, s *Session, in *platform.Interaction) error {
	guild := in.GuildID
	p := s.Printer

	menu, ok := s.Backend.MenuNonzeroTeam(ctx, guild)
	if !ok {
		return s.Client.Respond(ctx, in, platform.Response{
			Content:   p.Sprintf(msgNoTeamToDelete),
			Ephemeral: true,
		})
	}

	choice, eventID, err := s.selectEvent(ctx, in, p.Sprintf(msgSelectDeleteEvent), menu)
	if err != nil {
		return err
	}

	teams := s.Backend.TeamsMenu(ctx, guild, eventID)
	if teams.IsEmpty() {
		return s.done(ctx, choice, p.Sprintf(msgNoTeamToDelete))
	}

	choice, teamID, err := s.selectTeam(ctx, choice, p.Sprintf(msgSelectDeleteTeam), teams)
	if err != nil {
		return err
	}

	var team proto.Team
	if _, err := s.Backend.UpdateEvent(ctx, guild, eventID, func(e *proto.Event) error {
		var ok bool
		team, ok = e.Teams.Delete(teamID)
		if !ok {
			return ErrLookupFailed
		}
		return nil
	}); err != nil {
		if errors.Is(err, proto.ErrEventNotFound) {
			return ErrLookupFailed
		}
		return err
	}

	s.deleteChannels(ctx, team)
	s.Logger.Info("team deleted", "guild", guild, "event", eventID, "team", teamID, "name", team.Name)
	return s.done(ctx, choice, p.Sprintf(msgTeamDeleted, team.Name))
}
