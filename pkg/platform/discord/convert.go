package discord

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/proto"
)

// ErrUnsupportedInteraction is returned for interactions the bot does not
// handle, such as autocompletion.
var ErrUnsupportedInteraction = errors.New("unsupported interaction")

// Interaction converts a gateway interaction.
func Interaction(i *discordgo.Interaction) (*platform.Interaction, error) {
	if i == nil {
		return nil, ErrUnsupportedInteraction
	}

	in := &platform.Interaction{
		ID:    i.ID,
		AppID: i.AppID,
		Token: i.Token,
	}
	if i.GuildID != "" {
		guild, err := proto.ParseID(i.GuildID)
		if err != nil {
			return nil, fmt.Errorf("guild %q: %w", i.GuildID, err)
		}
		in.GuildID = guild
	}
	if i.ChannelID != "" {
		channel, err := proto.ParseID(i.ChannelID)
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w", i.ChannelID, err)
		}
		in.ChannelID = channel
	}

	user, err := interactionUser(i)
	if err != nil {
		return nil, err
	}
	in.User = user

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		in.Type = platform.InteractionCommand
		data := i.ApplicationCommandData()
		in.Command = data.Name
		in.Options = map[string]string{}
		options := data.Options
		if len(options) == 1 && options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
			in.Subcommand = options[0].Name
			options = options[0].Options
		}
		for _, o := range options {
			in.Options[o.Name] = optionValue(o)
		}
	case discordgo.InteractionMessageComponent:
		in.Type = platform.InteractionComponent
		data := i.MessageComponentData()
		in.CustomID = data.CustomID
		in.Values = data.Values
		switch data.ComponentType {
		case discordgo.SelectMenuComponent:
			in.ComponentType = platform.ComponentStringSelect
		case discordgo.ButtonComponent:
			in.ComponentType = platform.ComponentButton
		default:
			in.ComponentType = platform.ComponentOther
		}
	default:
		return nil, ErrUnsupportedInteraction
	}

	return in, nil
}

func interactionUser(i *discordgo.Interaction) (proto.User, error) {
	var u *discordgo.User
	var nick string
	switch {
	case i.Member != nil && i.Member.User != nil:
		u = i.Member.User
		nick = i.Member.Nick
	case i.User != nil:
		u = i.User
	default:
		return proto.User{}, fmt.Errorf("%w: no user", ErrUnsupportedInteraction)
	}

	id, err := proto.ParseID(u.ID)
	if err != nil {
		return proto.User{}, fmt.Errorf("user %q: %w", u.ID, err)
	}
	return proto.User{
		ID:         id,
		Username:   u.Username,
		GlobalName: u.GlobalName,
		Nick:       nick,
	}, nil
}

func optionValue(o *discordgo.ApplicationCommandInteractionDataOption) string {
	switch v := o.Value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// ScheduledEvent converts a guild scheduled event.
func ScheduledEvent(e *discordgo.GuildScheduledEvent) (proto.ScheduledEvent, error) {
	id, err := proto.ParseID(e.ID)
	if err != nil {
		return proto.ScheduledEvent{}, fmt.Errorf("event %q: %w", e.ID, err)
	}
	guild, err := proto.ParseID(e.GuildID)
	if err != nil {
		return proto.ScheduledEvent{}, fmt.Errorf("guild %q: %w", e.GuildID, err)
	}
	return proto.ScheduledEvent{
		ID:          id,
		GuildID:     guild,
		Name:        e.Name,
		Description: e.Description,
		StartTime:   e.ScheduledStartTime,
	}, nil
}

func responseData(r platform.Response) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content: r.Content,
	}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if r.ClearComponents {
		data.Components = []discordgo.MessageComponent{}
	}
	for _, m := range r.Menus {
		data.Components = append(data.Components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{selectMenu(m)},
		})
	}
	return data
}

func selectMenu(m proto.SelectMenu) discordgo.SelectMenu {
	options := make([]discordgo.SelectMenuOption, 0, len(m.Options))
	for _, o := range m.Options {
		options = append(options, discordgo.SelectMenuOption{
			Label: o.Label,
			Value: o.Value,
		})
	}
	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    m.CustomID,
		Placeholder: m.Placeholder,
		Options:     options,
	}
}

func overwriteType(k proto.OverwriteKind) discordgo.PermissionOverwriteType {
	if k == proto.OverwriteRole {
		return discordgo.PermissionOverwriteTypeRole
	}
	return discordgo.PermissionOverwriteTypeMember
}

func channelType(k platform.ChannelKind) discordgo.ChannelType {
	if k == platform.ChannelVoice {
		return discordgo.ChannelTypeGuildVoice
	}
	return discordgo.ChannelTypeGuildText
}

// ApplicationCommands converts command specs for registration.
func ApplicationCommands(specs []platform.CommandSpec) []*discordgo.ApplicationCommand {
	commands := make([]*discordgo.ApplicationCommand, 0, len(specs))
	for _, spec := range specs {
		cmd := &discordgo.ApplicationCommand{
			Name:        spec.Name,
			Description: spec.Description,
			Options:     commandOptions(spec),
		}
		if spec.AdminOnly {
			perm := int64(discordgo.PermissionManageServer)
			cmd.DefaultMemberPermissions = &perm
		}
		commands = append(commands, cmd)
	}
	return commands
}

func commandOptions(spec platform.CommandSpec) []*discordgo.ApplicationCommandOption {
	var options []*discordgo.ApplicationCommandOption
	for _, sub := range spec.Subcommands {
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        sub.Name,
			Description: sub.Description,
			Options:     commandOptions(sub),
		})
	}
	for _, o := range spec.Options {
		opt := &discordgo.ApplicationCommandOption{
			Name:        o.Name,
			Description: o.Description,
			Required:    o.Required,
			MinValue:    o.MinValue,
			MaxValue:    o.MaxValue,
		}
		switch o.Type {
		case platform.OptionInteger:
			opt.Type = discordgo.ApplicationCommandOptionInteger
		case platform.OptionChannel:
			opt.Type = discordgo.ApplicationCommandOptionChannel
		default:
			opt.Type = discordgo.ApplicationCommandOptionString
		}
		options = append(options, opt)
	}
	return options
}
