// Package discord implements the platform over a discordgo session.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/proto"
)

// Client is a platform.Client using a discordgo session.
type Client struct {
	s      *discordgo.Session
	logger *log.Logger
}

var _ platform.Client = (*Client)(nil)

// NewClient returns a client using s.
func NewClient(ctx context.Context, s *discordgo.Session) *Client {
	return &Client{
		s:      s,
		logger: log.FromContext(ctx).WithPrefix("discord"),
	}
}

// Session returns the underlying session.
func (c *Client) Session() *discordgo.Session {
	return c.s
}

func raw(in *platform.Interaction) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:    in.ID,
		AppID: in.AppID,
		Token: in.Token,
	}
}

// Respond implements platform.Client.
func (c *Client) Respond(ctx context.Context, in *platform.Interaction, r platform.Response) error {
	return c.s.InteractionRespond(raw(in), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: responseData(r),
	}, discordgo.WithContext(ctx))
}

// Update implements platform.Client. It edits the message holding the
// component the user interacted with.
func (c *Client) Update(ctx context.Context, in *platform.Interaction, r platform.Response) error {
	return c.s.InteractionRespond(raw(in), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: responseData(r),
	}, discordgo.WithContext(ctx))
}

// SetChannelPermission implements platform.Client.
func (c *Client) SetChannelPermission(ctx context.Context, channel proto.ID, ow proto.Overwrite) error {
	c.logger.Debug("set channel permission", "channel", channel, "target", ow.Target, "kind", ow.Kind, "allow", ow.Allow)
	return c.s.ChannelPermissionSet(channel.String(), ow.Target.String(), overwriteType(ow.Kind),
		int64(ow.Allow), int64(ow.Deny), discordgo.WithContext(ctx))
}

// DeleteChannelPermission implements platform.Client.
func (c *Client) DeleteChannelPermission(ctx context.Context, channel proto.ID, target proto.ID) error {
	c.logger.Debug("delete channel permission", "channel", channel, "target", target)
	return c.s.ChannelPermissionDelete(channel.String(), target.String(), discordgo.WithContext(ctx))
}

// CreateChannel implements platform.Client.
func (c *Client) CreateChannel(ctx context.Context, guild proto.ID, spec platform.ChannelSpec) (proto.ID, error) {
	data := discordgo.GuildChannelCreateData{
		Name:  spec.Name,
		Topic: spec.Topic,
		Type:  channelType(spec.Kind),
	}
	if spec.Parent != nil {
		data.ParentID = spec.Parent.String()
	}
	if spec.Private {
		// @everyone shares the guild ID.
		data.PermissionOverwrites = []*discordgo.PermissionOverwrite{{
			ID:   guild.String(),
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		}}
		if c.s.State != nil && c.s.State.User != nil {
			data.PermissionOverwrites = append(data.PermissionOverwrites, &discordgo.PermissionOverwrite{
				ID:    c.s.State.User.ID,
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionViewChannel,
			})
		}
	}

	ch, err := c.s.GuildChannelCreateComplex(guild.String(), data, discordgo.WithContext(ctx))
	if err != nil {
		return 0, err
	}
	id, err := proto.ParseID(ch.ID)
	if err != nil {
		return 0, fmt.Errorf("channel %q: %w", ch.ID, err)
	}
	c.logger.Debug("channel created", "guild", guild, "channel", id, "name", spec.Name)
	return id, nil
}

// DeleteChannel implements platform.Client.
func (c *Client) DeleteChannel(ctx context.Context, channel proto.ID) error {
	_, err := c.s.ChannelDelete(channel.String(), discordgo.WithContext(ctx))
	return err
}

// ScheduledEvents implements platform.Client.
func (c *Client) ScheduledEvents(ctx context.Context, guild proto.ID) ([]proto.ScheduledEvent, error) {
	events, err := c.s.GuildScheduledEvents(guild.String(), false, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	out := make([]proto.ScheduledEvent, 0, len(events))
	for _, e := range events {
		se, err := ScheduledEvent(e)
		if err != nil {
			c.logger.Warn("skipping scheduled event", "guild", guild, "event", e.ID, "err", err)
			continue
		}
		out = append(out, se)
	}
	return out, nil
}

// EditScheduledEventDescription implements platform.Client.
func (c *Client) EditScheduledEventDescription(ctx context.Context, guild proto.ID, event proto.ID, description string) error {
	_, err := c.s.GuildScheduledEventEdit(guild.String(), event.String(), &discordgo.GuildScheduledEventParams{
		Description: description,
	}, discordgo.WithContext(ctx))
	return err
}
