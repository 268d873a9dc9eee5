package cmd

import (
	"context"
	"fmt"
	"math"

	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/proto"
)

var minCapacity = 0.0

func eventCommand() *Command {
	return &Command{
		Spec: platform.CommandSpec{
			Name:        "event",
			Description: "Manage the events teams can be created for.",
			AdminOnly:   true,
			Subcommands: []platform.CommandSpec{
				{
					Name:        "register",
					Description: "Register a scheduled event.",
					Options: []platform.OptionSpec{{
						Name:        "capacity",
						Description: "Maximum number of members per team.",
						Type:        platform.OptionInteger,
						MinValue:    &minCapacity,
						MaxValue:    math.MaxUint32,
					}},
				},
				{
					Name:        "unregister",
					Description: "Unregister an event and delete its team channels.",
				},
			},
		},
		Run: runEvent,
	}
}

func runEvent(ctx context.Context, s *Session, in *platform.Interaction) error {
	if in.GuildID.IsZero() {
		return ErrNotInGuild
	}
	switch in.Subcommand {
	case "register":
		return registerEvent(ctx, s, in)
	case "unregister":
		return unregisterEvent(ctx, s, in)
	default:
		return fmt.Errorf("unknown subcommand %q", in.Subcommand)
	}
}

func registerEvent(ctx context.Context, s *Session, in *platform.Interaction) error {
	guild := in.GuildID
	p := s.Printer

	var capacity uint32
	if n, ok := in.IntOption("capacity"); ok {
		if n < 0 || n > math.MaxUint32 {
			return s.Client.Respond(ctx, in, platform.Response{
				Content:   p.Sprintf(msgInvalidCapacity, uint32(math.MaxUint32)),
				Ephemeral: true,
			})
		}
		capacity = uint32(n)
	}

	scheduled, err := s.Client.ScheduledEvents(ctx, guild)
	if err != nil {
		return err
	}

	menu := proto.SelectMenu{CustomID: proto.MenuEvent}
	candidates := map[proto.ID]proto.ScheduledEvent{}
	for _, se := range scheduled {
		if _, ok := s.Backend.Get(ctx, guild, se.ID); ok {
			continue
		}
		if !menu.Add(se.Name, se.ID.String()) {
			break
		}
		candidates[se.ID] = se
	}
	if menu.IsEmpty() {
		return s.Client.Respond(ctx, in, platform.Response{
			Content:   p.Sprintf(msgNoScheduledEvent),
			Ephemeral: true,
		})
	}

	choice, eventID, err := s.selectEvent(ctx, in, p.Sprintf(msgSelectRegister), menu)
	if err != nil {
		return err
	}
	se, ok := candidates[eventID]
	if !ok {
		return ErrEventSelection
	}

	if err := s.Backend.CreateEvent(ctx, proto.NewEvent(se, capacity)); err != nil {
		return err
	}

	s.Logger.Info("event registered", "guild", guild, "event", se.ID, "capacity", capacity)
	return s.done(ctx, choice, p.Sprintf(msgRegistered, se.Name))
}

func unregisterEvent(ctx context.Context, s *Session, in *platform.Interaction) error {
	guild := in.GuildID
	p := s.Printer

	menu, ok := s.Backend.EventsMenu(ctx, guild, nil)
	if !ok {
		return s.Client.Respond(ctx, in, platform.Response{
			Content:   p.Sprintf(msgNoRegisteredEvent),
			Ephemeral: true,
		})
	}

	choice, eventID, err := s.selectEvent(ctx, in, p.Sprintf(msgSelectUnregister), menu)
	if err != nil {
		return err
	}

	e, err := s.Backend.DeleteEvent(ctx, guild, eventID)
	if err != nil {
		return err
	}

	e.Teams.Each(func(_ proto.TeamID, t proto.Team) bool {
		s.deleteChannels(ctx, t)
		return true
	})

	s.Logger.Info("event unregistered", "guild", guild, "event", e.ID)
	return s.done(ctx, choice, p.Sprintf(msgUnregistered, e.Name))
}

// deleteChannels removes the channels of a team. Failures are logged.
func (s *Session) deleteChannels(ctx context.Context, t proto.Team) {
	for _, channel := range t.Channels() {
		if channel.IsZero() {
			continue
		}
		if err := s.Client.DeleteChannel(ctx, channel); err != nil {
			s.Logger.Warn("delete channel", "team", t.Name, "channel", channel, "err", err)
		}
	}
}
