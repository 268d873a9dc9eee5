package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/proto"
	"github.com/hackbot/hackbot/pkg/test"
	"github.com/matryer/is"
)

func TestTeamCreate(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, time.Second)
	h.addEvent(10, "E1", 0, "T0")
	is.NoErr(h.backend.SetHackathonCategory(context.TODO(), 55))

	errc := h.start(teamCommand(), command(42, "team", "create", map[string]string{
		"name":        "Rust Crabs",
		"description": "Crabs",
	}))
	h.pickEvent(42, 10)
	is.NoErr(h.wait(errc))

	created := h.client.Calls(test.OpCreateChannel)
	is.Equal(len(created), 2)
	category := proto.ID(55)
	is.Equal(created[0].Spec, platform.ChannelSpec{
		Name:    "rust-crabs",
		Topic:   "Crabs",
		Kind:    platform.ChannelText,
		Parent:  &category,
		Private: true,
	})
	is.Equal(created[1].Spec.Kind, platform.ChannelVoice)
	is.Equal(created[1].Spec.Name, "Rust Crabs")

	// The first team got ID 0.
	team := h.team(10, 1)
	is.Equal(team.Name, "Rust Crabs")
	is.Equal(team.Description, "Crabs")
	is.Equal(team.TextChannel, created[0].Channel)
	is.Equal(team.VocalChannel, created[1].Channel)

	last, _ := h.client.Last(test.OpUpdate)
	is.Equal(last.Response.Content, "L'équipe Rust Crabs a été créée.")
}

func TestTeamCreateVoiceFailure(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, time.Second)
	h.addEvent(10, "E1", 0)

	boom := errors.New("quota")
	h.session.Client = &voiceCreateFailingClient{Client: h.client, err: boom}

	errc := h.start(teamCommand(), command(42, "team", "create", map[string]string{"name": "Rust"}))
	h.pickEvent(42, 10)
	is.Equal(h.wait(errc), boom)

	// The text channel is removed again.
	created := h.client.Calls(test.OpCreateChannel)
	deleted := h.client.Calls(test.OpDeleteChannel)
	is.Equal(len(created), 1)
	is.Equal(len(deleted), 1)
	is.Equal(deleted[0].Channel, created[0].Channel)

	e, _ := h.backend.Get(context.TODO(), guild, 10)
	is.True(e.Teams.IsEmpty())
}

type voiceCreateFailingClient struct {
	*test.Client
	err error
}

func (c *voiceCreateFailingClient) CreateChannel(ctx context.Context, guild proto.ID, spec platform.ChannelSpec) (proto.ID, error) {
	if spec.Kind == platform.ChannelVoice {
		return 0, c.err
	}
	return c.Client.CreateChannel(ctx, guild, spec)
}

func TestTeamCreateWithoutEvent(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, time.Second)
	is.NoErr(teamCommand().Run(context.TODO(), h.session, command(42, "team", "create", map[string]string{"name": "Rust"})))
	last, _ := h.client.Last(test.OpRespond)
	is.Equal(last.Response.Content, "Veuillez enregistrer un événement avant de créer une équipe.")
}

func TestTeamDelete(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, time.Second)
	h.addEvent(10, "E1", 0, "T0", "T1")

	errc := h.start(teamCommand(), command(42, "team", "delete", nil))
	h.pickEvent(42, 10)
	h.pickTeam(42, 0)
	is.NoErr(h.wait(errc))

	e, _ := h.backend.Get(context.TODO(), guild, 10)
	is.Equal(e.Teams.IDs(), []proto.TeamID{1})
	var deleted []proto.ID
	for _, c := range h.client.Calls(test.OpDeleteChannel) {
		deleted = append(deleted, c.Channel)
	}
	is.Equal(deleted, []proto.ID{100, 200})
	last, _ := h.client.Last(test.OpUpdate)
	is.Equal(last.Response.Content, "L'équipe T0 a été supprimée.")

	// A new team does not reuse the deleted ID.
	_, err := h.backend.UpdateEvent(context.TODO(), guild, 10, func(e *proto.Event) error {
		is.Equal(e.Teams.AddTeam(proto.NewTeam("T2", "", nil, 102, 202)), proto.TeamID(2))
		return nil
	})
	is.NoErr(err)
}
