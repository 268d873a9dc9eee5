package test

import (
	"context"
	"slices"
	"sync"

	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/proto"
)

// Client operation names, as recorded in Call.Op.
const (
	OpRespond                 = "respond"
	OpUpdate                  = "update"
	OpSetChannelPermission    = "set_channel_permission"
	OpDeleteChannelPermission = "delete_channel_permission"
	OpCreateChannel           = "create_channel"
	OpDeleteChannel           = "delete_channel"
	OpScheduledEvents         = "scheduled_events"
	OpEditDescription         = "edit_description"
)

// Call is one recorded Client call.
type Call struct {
	Op          string
	Interaction *platform.Interaction
	Response    platform.Response
	Guild       proto.ID
	Channel     proto.ID
	Event       proto.ID
	Target      proto.ID
	Overwrite   proto.Overwrite
	Spec        platform.ChannelSpec
	Description string
}

// Client is an in-memory platform.Client recording every call.
type Client struct {
	mu     sync.Mutex
	calls  []Call
	events map[proto.ID][]proto.ScheduledEvent
	nextID proto.ID

	// Errors makes the operation fail with the given error. Failed calls are
	// not recorded.
	Errors map[string]error
	// OnUpdate is called after an Update is recorded.
	OnUpdate func(Call)
	// OnSetChannelPermission is called after a SetChannelPermission is
	// recorded.
	OnSetChannelPermission func(Call)
}

var _ platform.Client = (*Client)(nil)

// NewClient returns an empty client. Created channels get IDs from 1000.
func NewClient() *Client {
	return &Client{
		events: map[proto.ID][]proto.ScheduledEvent{},
		nextID: 1000,
		Errors: map[string]error{},
	}
}

// AddScheduledEvent adds a scheduled event returned by ScheduledEvents.
func (c *Client) AddScheduledEvent(se proto.ScheduledEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events[se.GuildID] = append(c.events[se.GuildID], se)
}

// RemoveScheduledEvent removes a scheduled event.
func (c *Client) RemoveScheduledEvent(guild, id proto.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events[guild] = slices.DeleteFunc(c.events[guild], func(se proto.ScheduledEvent) bool {
		return se.ID == id
	})
}

// Calls returns the recorded calls, optionally limited to some operations.
func (c *Client) Calls(ops ...string) []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	var calls []Call
	for _, call := range c.calls {
		if len(ops) == 0 || slices.Contains(ops, call.Op) {
			calls = append(calls, call)
		}
	}
	return calls
}

// Last returns the last recorded call of op.
func (c *Client) Last(op string) (Call, bool) {
	calls := c.Calls(op)
	if len(calls) == 0 {
		return Call{}, false
	}
	return calls[len(calls)-1], true
}

func (c *Client) record(call Call) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.Errors[call.Op]; err != nil {
		return err
	}
	c.calls = append(c.calls, call)
	return nil
}

// Respond implements platform.Client.
func (c *Client) Respond(_ context.Context, in *platform.Interaction, r platform.Response) error {
	return c.record(Call{Op: OpRespond, Interaction: in, Response: r})
}

// Update implements platform.Client.
func (c *Client) Update(_ context.Context, in *platform.Interaction, r platform.Response) error {
	call := Call{Op: OpUpdate, Interaction: in, Response: r}
	if err := c.record(call); err != nil {
		return err
	}
	if c.OnUpdate != nil {
		c.OnUpdate(call)
	}
	return nil
}

// SetChannelPermission implements platform.Client.
func (c *Client) SetChannelPermission(_ context.Context, channel proto.ID, ow proto.Overwrite) error {
	call := Call{Op: OpSetChannelPermission, Channel: channel, Overwrite: ow}
	if err := c.record(call); err != nil {
		return err
	}
	if c.OnSetChannelPermission != nil {
		c.OnSetChannelPermission(call)
	}
	return nil
}

// DeleteChannelPermission implements platform.Client.
func (c *Client) DeleteChannelPermission(_ context.Context, channel proto.ID, target proto.ID) error {
	return c.record(Call{Op: OpDeleteChannelPermission, Channel: channel, Target: target})
}

// CreateChannel implements platform.Client.
func (c *Client) CreateChannel(_ context.Context, guild proto.ID, spec platform.ChannelSpec) (proto.ID, error) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.mu.Unlock()
	if err := c.record(Call{Op: OpCreateChannel, Guild: guild, Channel: id, Spec: spec}); err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteChannel implements platform.Client.
func (c *Client) DeleteChannel(_ context.Context, channel proto.ID) error {
	return c.record(Call{Op: OpDeleteChannel, Channel: channel})
}

// ScheduledEvents implements platform.Client.
func (c *Client) ScheduledEvents(_ context.Context, guild proto.ID) ([]proto.ScheduledEvent, error) {
	if err := c.record(Call{Op: OpScheduledEvents, Guild: guild}); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.events[guild]), nil
}

// EditScheduledEventDescription implements platform.Client.
func (c *Client) EditScheduledEventDescription(_ context.Context, guild proto.ID, event proto.ID, description string) error {
	return c.record(Call{Op: OpEditDescription, Guild: guild, Event: event, Description: description})
}
