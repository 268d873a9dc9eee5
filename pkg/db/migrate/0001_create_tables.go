package migrate

import (
	"context"

	"github.com/hackbot/hackbot/pkg/db"
)

const (
	createTablesName    = "create tables"
	createTablesVersion = 1
)

// Events are stored as JSON documents keyed by guild and scheduled event.
// The preference table holds a single row.
var createTables = Migration{
	Version: createTablesVersion,
	Name:    createTablesName,
	Migrate: func(ctx context.Context, tx *db.Tx) error {
		switch tx.DriverName() {
		case driverPostgres:
			return execAll(ctx, tx,
				`CREATE TABLE IF NOT EXISTS events (
					guild_id TEXT NOT NULL,
					event_id TEXT NOT NULL,
					data TEXT NOT NULL,
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (guild_id, event_id)
				)`,
				`CREATE TABLE IF NOT EXISTS preference (
					id INTEGER PRIMARY KEY,
					data TEXT NOT NULL,
					updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
			)
		default:
			return execAll(ctx, tx,
				`CREATE TABLE IF NOT EXISTS events (
					guild_id TEXT NOT NULL,
					event_id TEXT NOT NULL,
					data TEXT NOT NULL,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (guild_id, event_id)
				)`,
				`CREATE TABLE IF NOT EXISTS preference (
					id INTEGER PRIMARY KEY,
					data TEXT NOT NULL,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
			)
		}
	},
	Rollback: func(ctx context.Context, tx *db.Tx) error {
		return execAll(ctx, tx,
			"DROP TABLE IF EXISTS preference",
			"DROP TABLE IF EXISTS events",
		)
	},
}
