// Package platform is the boundary between the bot and the chat platform.
// Commands only see the types of this package; the discord package provides
// the implementation.
package platform

import (
	"context"
	"errors"
	"strconv"

	"github.com/hackbot/hackbot/pkg/proto"
)

var (
	// ErrNoInteraction is returned when no matching component interaction
	// arrived before the deadline.
	ErrNoInteraction = errors.New("no component interaction received")

	// ErrCollectorClosed is returned when the collector shuts down while
	// waiting.
	ErrCollectorClosed = errors.New("collector closed")
)

// InteractionType is the kind of an interaction.
type InteractionType int

// Interaction types.
const (
	InteractionCommand InteractionType = iota + 1
	InteractionComponent
)

// String implements fmt.Stringer.
func (t InteractionType) String() string {
	switch t {
	case InteractionCommand:
		return "command"
	case InteractionComponent:
		return "component"
	default:
		return "unknown"
	}
}

// ComponentType is the kind of the component a user interacted with.
type ComponentType int

// Component types.
const (
	ComponentStringSelect ComponentType = iota + 1
	ComponentButton
	ComponentOther
)

// Interaction is a slash command invocation or a component interaction.
type Interaction struct {
	ID    string
	AppID string
	Token string
	Type  InteractionType

	GuildID   proto.ID
	ChannelID proto.ID
	User      proto.User

	// Command fields.
	Command    string
	Subcommand string
	Options    map[string]string

	// Component fields.
	CustomID      string
	ComponentType ComponentType
	Values        []string
}

// StringOption returns the value of a command option.
func (in *Interaction) StringOption(name string) (string, bool) {
	v, ok := in.Options[name]
	return v, ok
}

// IntOption returns the value of an integer command option.
func (in *Interaction) IntOption(name string) (int64, bool) {
	v, ok := in.Options[name]
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// IDOption returns the value of a user, channel or role command option.
func (in *Interaction) IDOption(name string) (proto.ID, bool) {
	v, ok := in.Options[name]
	if !ok {
		return 0, false
	}
	id, err := proto.ParseID(v)
	if err != nil {
		return 0, false
	}
	return id, true
}

// FirstValue returns the first selected value of a component interaction.
func (in *Interaction) FirstValue() (string, bool) {
	if len(in.Values) == 0 {
		return "", false
	}
	return in.Values[0], true
}

// Response is the content of an interaction response.
type Response struct {
	Content   string
	Ephemeral bool
	Menus     []proto.SelectMenu
	// ClearComponents removes the components of the updated message.
	ClearComponents bool
}

// ChannelKind is the kind of a guild channel.
type ChannelKind int

// Channel kinds.
const (
	ChannelText ChannelKind = iota + 1
	ChannelVoice
)

// ChannelSpec describes a channel to create.
type ChannelSpec struct {
	Name  string
	Topic string
	Kind  ChannelKind
	// Parent is the category of the channel, if any.
	Parent *proto.ID
	// Private channels are hidden from everyone but the bot until a member
	// overwrite is added.
	Private bool
}

// Client is what commands need from the chat platform.
type Client interface {
	// Respond answers an interaction with a new message.
	Respond(ctx context.Context, in *Interaction, r Response) error
	// Update replaces the message a component interaction belongs to.
	Update(ctx context.Context, in *Interaction, r Response) error

	// SetChannelPermission adds or replaces the overwrite of its target on a
	// channel. Other overwrites are kept.
	SetChannelPermission(ctx context.Context, channel proto.ID, ow proto.Overwrite) error
	// DeleteChannelPermission removes the overwrite of target on a channel.
	DeleteChannelPermission(ctx context.Context, channel proto.ID, target proto.ID) error

	CreateChannel(ctx context.Context, guild proto.ID, spec ChannelSpec) (proto.ID, error)
	DeleteChannel(ctx context.Context, channel proto.ID) error

	// ScheduledEvents lists the scheduled events of a guild.
	ScheduledEvents(ctx context.Context, guild proto.ID) ([]proto.ScheduledEvent, error)
	// EditScheduledEventDescription replaces the description of a scheduled
	// event.
	EditScheduledEventDescription(ctx context.Context, guild proto.ID, event proto.ID, description string) error
}
