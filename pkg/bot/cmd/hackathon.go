package cmd

import (
	"context"
	"fmt"

	"github.com/hackbot/hackbot/pkg/platform"
)

func hackathonCommand() *Command {
	channel := platform.OptionSpec{
		Name:        "channel",
		Description: "The channel.",
		Type:        platform.OptionChannel,
		Required:    true,
	}
	return &Command{
		Spec: platform.CommandSpec{
			Name:        "hackathon",
			Description: "Configure the hackathon.",
			AdminOnly:   true,
			Subcommands: []platform.CommandSpec{
				{
					Name:        "channel",
					Description: "Set the channel announcing the hackathon.",
					Options:     []platform.OptionSpec{channel},
				},
				{
					Name:        "category",
					Description: "Set the category team channels are created in.",
					Options:     []platform.OptionSpec{channel},
				},
			},
		},
		Run: runHackathon,
	}
}

func runHackathon(ctx context.Context, s *Session, in *platform.Interaction) error {
	p := s.Printer
	id, ok := in.IDOption("channel")
	if !ok {
		return s.Client.Respond(ctx, in, platform.Response{
			Content:   p.Sprintf(msgInvalidChannel),
			Ephemeral: true,
		})
	}

	var msg string
	switch in.Subcommand {
	case "channel":
		if err := s.Backend.SetHackathonChannel(ctx, id); err != nil {
			return err
		}
		msg = p.Sprintf(msgHackathonChannel, id.String())
	case "category":
		if err := s.Backend.SetHackathonCategory(ctx, id); err != nil {
			return err
		}
		msg = p.Sprintf(msgHackathonCategory, id.String())
	default:
		return fmt.Errorf("unknown subcommand %q", in.Subcommand)
	}

	return s.Client.Respond(ctx, in, platform.Response{
		Content:   msg,
		Ephemeral: true,
	})
}
