// Package redis stores events and the preference in Redis. Each guild owns a
// hash of JSON encoded events.
package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/pkg/config"
	"github.com/hackbot/hackbot/pkg/proto"
	"github.com/hackbot/hackbot/pkg/store"
	"github.com/redis/go-redis/v9"
)

func init() {
	store.Register("redis", newStore)
}

// Store is a store.Store backed by Redis.
type Store struct {
	client *redis.Client
	prefix string
	logger *log.Logger
}

var _ store.Store = (*Store)(nil)

func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	s := New(ctx, client, cfg.Redis.Prefix)
	if err := s.Ping(ctx); err != nil {
		client.Close() // nolint: errcheck
		return nil, err
	}
	return s, nil
}

// New returns a store using client. Every key starts with prefix.
func New(ctx context.Context, client *redis.Client, prefix string) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		logger: log.FromContext(ctx).WithPrefix("store.redis"),
	}
}

func (s *Store) guildsKey() string {
	return s.prefix + "guilds"
}

func (s *Store) eventsKey(guild proto.ID) string {
	return s.prefix + "events:" + guild.String()
}

func (s *Store) preferenceKey() string {
	return s.prefix + "preference"
}

// ListEvents implements store.EventStore.
func (s *Store) ListEvents(ctx context.Context) ([]proto.Event, error) {
	guilds, err := s.client.SMembers(ctx, s.guildsKey()).Result()
	if err != nil {
		return nil, err
	}

	var events []proto.Event
	for _, g := range guilds {
		guild, err := proto.ParseID(g)
		if err != nil {
			s.logger.Warn("skipping invalid guild", "guild", g)
			continue
		}

		values, err := s.client.HGetAll(ctx, s.eventsKey(guild)).Result()
		if err != nil {
			return nil, err
		}
		for id, v := range values {
			var e proto.Event
			if err := json.Unmarshal([]byte(v), &e); err != nil {
				s.logger.Error("skipping undecodable event", "guild", guild, "event", id, "err", err)
				continue
			}
			events = append(events, e)
		}
	}

	store.SortEvents(events)
	return events, nil
}

// SaveEvent implements store.EventStore.
func (s *Store) SaveEvent(ctx context.Context, event proto.Event) error {
	bts, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.SAdd(ctx, s.guildsKey(), event.GuildID.String())
		p.HSet(ctx, s.eventsKey(event.GuildID), event.ID.String(), bts)
		return nil
	})
	return err
}

// DeleteEvent implements store.EventStore.
func (s *Store) DeleteEvent(ctx context.Context, guild proto.ID, event proto.ID) error {
	if err := s.client.HDel(ctx, s.eventsKey(guild), event.String()).Err(); err != nil {
		return err
	}

	n, err := s.client.HLen(ctx, s.eventsKey(guild)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return s.client.SRem(ctx, s.guildsKey(), guild.String()).Err()
	}
	return nil
}

// Preference implements store.PreferenceStore.
func (s *Store) Preference(ctx context.Context) (proto.Preference, error) {
	var pref proto.Preference
	bts, err := s.client.Get(ctx, s.preferenceKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return pref, nil
	}
	if err != nil {
		return pref, err
	}

	err = json.Unmarshal(bts, &pref)
	return pref, err
}

// SetPreference implements store.PreferenceStore.
func (s *Store) SetPreference(ctx context.Context, pref proto.Preference) error {
	bts, err := json.Marshal(pref)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.preferenceKey(), bts, 0).Err()
}

// Ping implements store.Store.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close implements store.Store.
func (s *Store) Close() error {
	return s.client.Close()
}
