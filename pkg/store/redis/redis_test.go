package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hackbot/hackbot/pkg/proto"
	"github.com/matryer/is"
	"github.com/redis/go-redis/v9"
)

func TestKeys(t *testing.T) {
	is := is.New(t)
	s := New(context.TODO(), redis.NewClient(&redis.Options{}), "hackbot:")
	is.Equal(s.guildsKey(), "hackbot:guilds")
	is.Equal(s.eventsKey(42), "hackbot:events:42")
	is.Equal(s.preferenceKey(), "hackbot:preference")
}

// TestStore needs a running server. Set HACKBOT_TEST_REDIS_ADDR to run it.
func TestStore(t *testing.T) {
	addr := os.Getenv("HACKBOT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("HACKBOT_TEST_REDIS_ADDR is not set")
	}

	is := is.New(t)
	ctx := context.TODO()
	client := redis.NewClient(&redis.Options{Addr: addr})
	s := New(ctx, client, "hackbot-test:"+uuid.NewString()+":")
	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, s.prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		s.Close() // nolint: errcheck
	})
	is.NoErr(s.Ping(ctx))

	e := proto.NewEvent(proto.ScheduledEvent{
		ID:        10,
		GuildID:   1,
		StartTime: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}, 0)
	e.Teams.AddTeam(proto.NewTeam("T0", "", []proto.Participant{{ID: 1, Display: "ann"}}, 100, 200))
	is.NoErr(s.SaveEvent(ctx, e))

	events, err := s.ListEvents(ctx)
	is.NoErr(err)
	is.Equal(events, []proto.Event{e})

	is.NoErr(s.DeleteEvent(ctx, 1, 10))
	n, err := client.SCard(ctx, s.guildsKey()).Result()
	is.NoErr(err)
	is.Equal(n, int64(0))

	pref, err := s.Preference(ctx)
	is.NoErr(err)
	is.Equal(pref, proto.Preference{})
}
