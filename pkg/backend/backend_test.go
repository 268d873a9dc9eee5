package backend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hackbot/hackbot/pkg/config"
	"github.com/hackbot/hackbot/pkg/proto"
	"github.com/hackbot/hackbot/pkg/store/file"
	"github.com/hackbot/hackbot/pkg/test"
	"github.com/matryer/is"
)

func newBackend(t *testing.T, dir string) *Backend {
	t.Helper()
	ctx := context.TODO()
	st, err := file.Open(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	b := New(ctx, config.DefaultConfig(), st)
	if err := b.Load(ctx); err != nil {
		t.Fatal(err)
	}
	return b
}

func scheduled(guild, id proto.ID, name string) proto.ScheduledEvent {
	return proto.ScheduledEvent{
		ID:          id,
		GuildID:     guild,
		Name:        name,
		Description: "48h",
		StartTime:   time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dir := t.TempDir()
	b := newBackend(t, dir)

	e := proto.NewEvent(scheduled(1, 10, "Hackathon"), 4)
	is.NoErr(b.CreateEvent(ctx, e))

	t0 := e.Teams.AddTeam(proto.NewTeam("T0", "first", nil, 100, 200))
	t1 := e.Teams.AddTeam(proto.NewTeam("T1", "second", nil, 101, 201))
	is.NoErr(e.Teams.AddParticipant(t0, proto.Participant{ID: 42, Display: "ann"}))
	is.NoErr(e.Teams.AddParticipant(t1, proto.Participant{ID: 7, Display: "bob"}))
	is.NoErr(e.Teams.AddParticipant(t1, proto.Participant{ID: 8, Display: "eve"}))
	is.NoErr(b.RefreshEvent(ctx, e))
	is.NoErr(b.CreateEvent(ctx, proto.NewEvent(scheduled(2, 20, "Other"), 0)))

	reloaded := newBackend(t, dir)
	is.Equal(reloaded.events, b.events)

	got, ok := reloaded.Get(ctx, 1, 10)
	is.True(ok)
	is.Equal(got, e)
}

func TestFlushThenLoad(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dir := t.TempDir()
	b := newBackend(t, dir)
	is.NoErr(b.CreateEvent(ctx, proto.NewEvent(scheduled(1, 10, "Hackathon"), 0)))
	is.NoErr(b.SetHackathonCategory(ctx, 55))
	is.NoErr(b.Flush(ctx))

	reloaded := newBackend(t, dir)
	is.Equal(reloaded.events, b.events)
	is.Equal(*reloaded.Preference(ctx).HackathonCategory, proto.ID(55))
	is.Equal(reloaded.Preference(ctx).HackathonChannel, nil)
}

func TestGetIsSnapshot(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	b := newBackend(t, t.TempDir())
	is.NoErr(b.CreateEvent(ctx, proto.NewEvent(scheduled(1, 10, "Hackathon"), 0)))

	e, ok := b.Get(ctx, 1, 10)
	is.True(ok)
	e.Teams.AddTeam(proto.NewTeam("T0", "", nil, 1, 2))

	again, _ := b.Get(ctx, 1, 10)
	is.True(again.Teams.IsEmpty())

	_, ok = b.Get(ctx, 1, 11)
	is.True(!ok)
}

func TestCreateEventTwice(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	b := newBackend(t, t.TempDir())
	e := proto.NewEvent(scheduled(1, 10, "Hackathon"), 0)
	is.NoErr(b.CreateEvent(ctx, e))
	is.Equal(b.CreateEvent(ctx, e), proto.ErrEventExists)
}

func TestRefreshUnknownEvent(t *testing.T) {
	is := is.New(t)
	b := newBackend(t, t.TempDir())
	err := b.RefreshEvent(context.TODO(), proto.NewEvent(scheduled(1, 10, "Hackathon"), 0))
	is.Equal(err, proto.ErrEventNotFound)
}

func TestUpdateEventNoLostUpdate(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	b := newBackend(t, t.TempDir())
	e := proto.NewEvent(scheduled(1, 10, "Hackathon"), 0)
	id := e.Teams.AddTeam(proto.NewTeam("T0", "", nil, 100, 200))
	is.NoErr(b.CreateEvent(ctx, e))

	const n = 20
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(user proto.ID) {
			defer wg.Done()
			_, err := b.UpdateEvent(ctx, 1, 10, func(e *proto.Event) error {
				return e.Teams.AddParticipant(id, proto.Participant{ID: user})
			})
			if err != nil {
				t.Error(err)
			}
		}(proto.ID(i))
	}
	wg.Wait()

	got, _ := b.Get(ctx, 1, 10)
	team, _ := got.Teams.Team(id)
	is.Equal(len(team.Members), n)
}

func TestUpdateEventFailureKeepsState(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	b := newBackend(t, t.TempDir())
	is.NoErr(b.CreateEvent(ctx, proto.NewEvent(scheduled(1, 10, "Hackathon"), 0)))

	boom := errors.New("boom")
	_, err := b.UpdateEvent(ctx, 1, 10, func(e *proto.Event) error {
		e.Teams.AddTeam(proto.NewTeam("T0", "", nil, 1, 2))
		return boom
	})
	is.Equal(err, boom)
	got, _ := b.Get(ctx, 1, 10)
	is.True(got.Teams.IsEmpty())

	_, err = b.UpdateEvent(ctx, 1, 11, func(*proto.Event) error { return nil })
	is.Equal(err, proto.ErrEventNotFound)
}

func TestRenderSkipsIdenticalDescription(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	client := test.NewClient()
	b := newBackend(t, t.TempDir())
	b.SetRenderer(client)

	e := proto.NewEvent(scheduled(1, 10, "Hackathon"), 0)
	e.Teams.AddTeam(proto.NewTeam("T0", "first", nil, 100, 200))
	is.NoErr(b.CreateEvent(ctx, e))
	is.NoErr(b.RefreshEvent(ctx, e))
	is.NoErr(b.RefreshEvent(ctx, e))

	calls := client.Calls(test.OpEditDescription)
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Description, "48h\n\n**T0**: first\nParticipants:")
	is.Equal(calls[0].Event, proto.ID(10))
}

func TestRenderFailureIsNotFatal(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	client := test.NewClient()
	client.Errors[test.OpEditDescription] = errors.New("unavailable")
	b := newBackend(t, t.TempDir())
	b.SetRenderer(client)

	e := proto.NewEvent(scheduled(1, 10, "Hackathon"), 0)
	is.NoErr(b.CreateEvent(ctx, e))
	_, ok := b.Get(ctx, 1, 10)
	is.True(ok)
}

func TestDeleteEvent(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dir := t.TempDir()
	b := newBackend(t, dir)
	is.NoErr(b.CreateEvent(ctx, proto.NewEvent(scheduled(1, 10, "Hackathon"), 0)))

	e, err := b.DeleteEvent(ctx, 1, 10)
	is.NoErr(err)
	is.Equal(e.Name, "Hackathon")
	_, err = b.DeleteEvent(ctx, 1, 10)
	is.Equal(err, proto.ErrEventNotFound)
	is.Equal(len(b.Guilds()), 0)

	reloaded := newBackend(t, dir)
	is.Equal(len(reloaded.Events(ctx, 1)), 0)
}

func TestPrune(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	b := newBackend(t, t.TempDir())
	is.NoErr(b.CreateEvent(ctx, proto.NewEvent(scheduled(1, 10, "kept"), 0)))
	is.NoErr(b.CreateEvent(ctx, proto.NewEvent(scheduled(1, 11, "gone"), 0)))
	is.NoErr(b.CreateEvent(ctx, proto.NewEvent(scheduled(2, 12, "other guild"), 0)))

	removed, err := b.Prune(ctx, 1, []proto.ScheduledEvent{scheduled(1, 10, "kept")})
	is.NoErr(err)
	is.Equal(len(removed), 1)
	is.Equal(removed[0].ID, proto.ID(11))
	is.Equal(len(b.Events(ctx, 1)), 1)
	is.Equal(len(b.Events(ctx, 2)), 1)
	is.Equal(b.Guilds(), []proto.ID{1, 2})
}

func TestContext(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	is.True(FromContext(ctx) == nil)
	b := newBackend(t, t.TempDir())
	is.Equal(FromContext(WithContext(ctx, b)), b)
}
