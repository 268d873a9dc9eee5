// Package database stores events and the preference in a SQL database.
package database

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/pkg/config"
	"github.com/hackbot/hackbot/pkg/db"
	"github.com/hackbot/hackbot/pkg/db/migrate"
	"github.com/hackbot/hackbot/pkg/proto"
	"github.com/hackbot/hackbot/pkg/store"
)

func init() {
	store.Register("database", newStore)
}

type datastore struct {
	db     *db.DB
	logger *log.Logger
	owned  bool
}

var _ store.Store = (*datastore)(nil)

type eventRow struct {
	GuildID string `db:"guild_id"`
	EventID string `db:"event_id"`
	Data    string `db:"data"`
}

func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	dbx := db.FromContext(ctx)
	owned := false
	if dbx == nil {
		var err error
		dbx, err = db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
		if err != nil {
			return nil, err
		}
		owned = true
	}

	s, err := New(ctx, dbx)
	if err != nil {
		if owned {
			dbx.Close() // nolint: errcheck
		}
		return nil, err
	}
	s.(*datastore).owned = owned
	return s, nil
}

// New returns a store.Store using dbx. The schema is migrated first.
func New(ctx context.Context, dbx *db.DB) (store.Store, error) {
	if err := migrate.Migrate(ctx, dbx); err != nil {
		return nil, err
	}

	return &datastore{
		db:     dbx,
		logger: log.FromContext(ctx).WithPrefix("store.database"),
	}, nil
}

// ListEvents implements store.EventStore.
func (s *datastore) ListEvents(ctx context.Context) ([]proto.Event, error) {
	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT guild_id, event_id, data FROM events"); err != nil {
		return nil, db.WrapError(err)
	}

	events := make([]proto.Event, 0, len(rows))
	for _, r := range rows {
		var e proto.Event
		if err := json.Unmarshal([]byte(r.Data), &e); err != nil {
			s.logger.Error("skipping undecodable event", "guild", r.GuildID, "event", r.EventID, "err", err)
			continue
		}
		events = append(events, e)
	}
	store.SortEvents(events)
	return events, nil
}

// SaveEvent implements store.EventStore.
func (s *datastore) SaveEvent(ctx context.Context, event proto.Event) error {
	bts, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.db.TransactionContext(ctx, func(tx *db.Tx) error {
		guild, id := event.GuildID.String(), event.ID.String()
		res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE events SET data = ?, updated_at = CURRENT_TIMESTAMP
			WHERE guild_id = ? AND event_id = ?`), string(bts), guild, id)
		if err != nil {
			return db.WrapError(err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			return nil
		}

		_, err = tx.ExecContext(ctx, tx.Rebind("INSERT INTO events (guild_id, event_id, data) VALUES (?, ?, ?)"),
			guild, id, string(bts))
		return db.WrapError(err)
	})
}

// DeleteEvent implements store.EventStore.
func (s *datastore) DeleteEvent(ctx context.Context, guild proto.ID, event proto.ID) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM events WHERE guild_id = ? AND event_id = ?"),
		guild.String(), event.String())
	return db.WrapError(err)
}

// Preference implements store.PreferenceStore.
func (s *datastore) Preference(ctx context.Context) (proto.Preference, error) {
	var pref proto.Preference
	var data string
	err := s.db.GetContext(ctx, &data, s.db.Rebind("SELECT data FROM preference WHERE id = ?"), 1)
	if err := db.WrapError(err); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return pref, nil
		}
		return pref, err
	}

	err = json.Unmarshal([]byte(data), &pref)
	return pref, err
}

// SetPreference implements store.PreferenceStore.
func (s *datastore) SetPreference(ctx context.Context, pref proto.Preference) error {
	bts, err := json.Marshal(pref)
	if err != nil {
		return err
	}

	return s.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM preference WHERE id = ?"), 1); err != nil {
			return db.WrapError(err)
		}
		_, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO preference (id, data) VALUES (?, ?)"), 1, string(bts))
		return db.WrapError(err)
	})
}

// Ping implements store.Store.
func (s *datastore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close implements store.Store. The connection is only closed when the
// store opened it.
func (s *datastore) Close() error {
	if s.owned {
		return s.db.Close()
	}
	return nil
}
