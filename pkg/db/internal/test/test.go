// Package test opens throwaway databases for tests.
package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hackbot/hackbot/pkg/db"
)

// sqlitePragmas match the data source written in the default config.
const sqlitePragmas = "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// OpenSqlite opens a SQLite database in a temp directory of tb. The
// connection is closed when the test ends.
func OpenSqlite(ctx context.Context, tb testing.TB) (*db.DB, error) {
	tb.Helper()
	if ctx == nil {
		ctx = context.TODO()
	}

	dbx, err := db.Open(ctx, "sqlite", filepath.Join(tb.TempDir(), "hackbot.db")+sqlitePragmas)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	tb.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			tb.Error(err)
		}
	})
	return dbx, nil
}
