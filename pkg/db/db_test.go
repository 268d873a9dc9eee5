package db_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hackbot/hackbot/pkg/db"
	"github.com/hackbot/hackbot/pkg/db/internal/test"
	"github.com/matryer/is"
)

func TestOpenUnknownDriver(t *testing.T) {
	_, err := db.Open(context.TODO(), "invalid", "")
	if err == nil {
		t.Fatal("Open(invalid) => nil, want error")
	}
	if !strings.Contains(err.Error(), "unknown driver") {
		t.Errorf("Open(invalid) => %v, want error containing 'unknown driver'", err)
	}
}

func TestTransactionRollback(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)

	_, err = dbx.ExecContext(ctx, "CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT)")
	is.NoErr(err)

	boom := errors.New("boom")
	err = dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO kv (k, v) VALUES ('a', '1')"); err != nil {
			return err
		}
		return boom
	})
	is.Equal(err, boom)

	var n int
	is.NoErr(dbx.GetContext(ctx, &n, "SELECT COUNT(*) FROM kv"))
	is.Equal(n, 0)
}

func TestWrapErrorDuplicateKey(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)

	_, err = dbx.ExecContext(ctx, "CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT)")
	is.NoErr(err)
	_, err = dbx.ExecContext(ctx, "INSERT INTO kv (k, v) VALUES ('a', '1')")
	is.NoErr(err)
	_, err = dbx.ExecContext(ctx, "INSERT INTO kv (k, v) VALUES ('a', '2')")
	is.Equal(db.WrapError(err), db.ErrDuplicateKey)
}
