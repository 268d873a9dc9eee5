package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hackbot/hackbot/pkg/config"
	"github.com/hackbot/hackbot/pkg/db"
	"github.com/hackbot/hackbot/pkg/proto"
	"github.com/hackbot/hackbot/pkg/store"
	"github.com/matryer/is"
)

func openStore(t *testing.T) store.Store {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DB.Driver = "sqlite"
	cfg.DB.DataSource = filepath.Join(t.TempDir(), "test.db")
	s, err := store.New(context.TODO(), cfg, "database")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Error(err)
		}
	})
	return s
}

func TestSaveEventReplaces(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	s := openStore(t)

	e := proto.NewEvent(proto.ScheduledEvent{
		ID:        10,
		GuildID:   1,
		Name:      "Hackathon",
		StartTime: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}, 2)
	id := e.Teams.AddTeam(proto.NewTeam("T0", "", nil, 100, 200))
	is.NoErr(s.SaveEvent(ctx, e))

	is.NoErr(e.Teams.AddParticipant(id, proto.Participant{ID: 42, Display: "ann"}))
	is.NoErr(s.SaveEvent(ctx, e))

	events, err := s.ListEvents(ctx)
	is.NoErr(err)
	is.Equal(events, []proto.Event{e})

	is.NoErr(s.DeleteEvent(ctx, 1, 10))
	is.NoErr(s.DeleteEvent(ctx, 1, 10))
	events, err = s.ListEvents(ctx)
	is.NoErr(err)
	is.Equal(len(events), 0)
}

func TestPreference(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	s := openStore(t)

	pref, err := s.Preference(ctx)
	is.NoErr(err)
	is.Equal(pref, proto.Preference{})

	category := proto.ID(77)
	is.NoErr(s.SetPreference(ctx, proto.Preference{HackathonCategory: &category}))
	is.NoErr(s.SetPreference(ctx, proto.Preference{HackathonCategory: &category}))
	pref, err = s.Preference(ctx)
	is.NoErr(err)
	is.Equal(*pref.HackathonCategory, category)
	is.NoErr(s.Ping(ctx))
}

func TestNewUsesContextDB(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := db.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "ctx.db"))
	is.NoErr(err)
	defer dbx.Close() // nolint: errcheck

	s, err := store.New(db.WithContext(ctx, dbx), config.DefaultConfig(), "database")
	is.NoErr(err)
	is.NoErr(s.Close())
	// The connection is still usable.
	is.NoErr(dbx.PingContext(ctx))
}
