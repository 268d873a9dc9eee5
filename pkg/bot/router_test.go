package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hackbot/hackbot/pkg/backend"
	"github.com/hackbot/hackbot/pkg/bot/cmd"
	"github.com/hackbot/hackbot/pkg/config"
	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/proto"
	"github.com/hackbot/hackbot/pkg/store/file"
	"github.com/hackbot/hackbot/pkg/test"
	"github.com/matryer/is"
)

const guild = proto.ID(1)

func newRouter(t *testing.T) (*Router, *backend.Backend, *test.Client, *platform.Collector) {
	t.Helper()
	ctx := context.TODO()
	st, err := file.Open(ctx, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	be := backend.New(ctx, config.DefaultConfig(), st)
	if err := be.Load(ctx); err != nil {
		t.Fatal(err)
	}
	client := test.NewClient()
	collector := platform.NewCollector(ctx, time.Second)
	t.Cleanup(collector.Close)
	r := NewRouter(ctx, cmd.NewSession(ctx, be, client, collector), cmd.Commands())
	return r, be, client, collector
}

func commandInteraction(name string) *platform.Interaction {
	return &platform.Interaction{
		ID:      "command",
		Type:    platform.InteractionCommand,
		GuildID: guild,
		User:    proto.User{ID: 42, Username: "ann"},
		Command: name,
	}
}

func TestRouterUnknownCommand(t *testing.T) {
	is := is.New(t)
	r, _, _, _ := newRouter(t)
	err := r.Handle(context.TODO(), commandInteraction("nope"))
	is.True(errors.Is(err, ErrUnknownCommand))
}

func TestRouterCommandError(t *testing.T) {
	is := is.New(t)
	r, _, client, _ := newRouter(t)

	in := commandInteraction("join")
	in.GuildID = 0
	is.Equal(r.Handle(context.TODO(), in), cmd.ErrNotInGuild)
	is.Equal(len(client.Calls()), 0)
}

func TestRouterRoutesComponents(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	r, be, client, collector := newRouter(t)

	e := proto.NewEvent(proto.ScheduledEvent{ID: 10, GuildID: guild, Name: "E1"}, 0)
	e.Teams.AddTeam(proto.NewTeam("T0", "", nil, 100, 200))
	is.NoErr(be.CreateEvent(ctx, e))

	errc := make(chan error, 1)
	go func() { errc <- r.Handle(ctx, commandInteraction("join")) }()

	pick := func(customID, value string) {
		deadline := time.Now().Add(2 * time.Second)
		for collector.Pending() == 0 {
			if time.Now().After(deadline) {
				t.Fatal("join is not waiting for a choice")
			}
			time.Sleep(time.Millisecond)
		}
		is.NoErr(r.Handle(ctx, &platform.Interaction{
			ID:            "component",
			Type:          platform.InteractionComponent,
			GuildID:       guild,
			User:          proto.User{ID: 42, Username: "ann"},
			CustomID:      customID,
			ComponentType: platform.ComponentStringSelect,
			Values:        []string{value},
		}))
	}
	pick(proto.MenuEvent, "10")
	pick(proto.MenuTeam, "0")

	select {
	case err := <-errc:
		is.NoErr(err)
	case <-time.After(5 * time.Second):
		t.Fatal("join did not return")
	}

	last, ok := client.Last(test.OpUpdate)
	is.True(ok)
	is.Equal(last.Response.Content, "Vous avez été rajouté à l'équipe: T0")
}

func TestRouterUnmatchedComponent(t *testing.T) {
	is := is.New(t)
	r, _, client, _ := newRouter(t)
	is.NoErr(r.Handle(context.TODO(), &platform.Interaction{
		Type:          platform.InteractionComponent,
		GuildID:       guild,
		CustomID:      proto.MenuEvent,
		ComponentType: platform.ComponentStringSelect,
	}))
	is.Equal(len(client.Calls()), 0)
}

func TestScheduledEventDeleted(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	r, be, _, _ := newRouter(t)
	is.NoErr(be.CreateEvent(ctx, proto.NewEvent(proto.ScheduledEvent{ID: 10, GuildID: guild, Name: "E1"}, 0)))

	se := proto.ScheduledEvent{ID: 10, GuildID: guild}
	is.NoErr(r.ScheduledEventDeleted(ctx, se))
	_, ok := be.Get(ctx, guild, 10)
	is.True(!ok)

	// Unknown events are ignored.
	is.NoErr(r.ScheduledEventDeleted(ctx, se))
}
