package migrate

import (
	"context"
	"testing"

	"github.com/hackbot/hackbot/pkg/config"
	"github.com/hackbot/hackbot/pkg/db"
	"github.com/hackbot/hackbot/pkg/db/internal/test"
	"github.com/matryer/is"
)

func TestMigrate(t *testing.T) {
	is := is.New(t)
	ctx := config.WithContext(context.TODO(), config.DefaultConfig())
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.NoErr(Migrate(ctx, dbx))

	// Running twice is a no-op.
	is.NoErr(Migrate(ctx, dbx))

	var n int
	is.NoErr(dbx.GetContext(ctx, &n, "SELECT COUNT(*) FROM migrations"))
	is.Equal(n, len(migrations))
}

func TestRollback(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.NoErr(Migrate(ctx, dbx))
	is.NoErr(Rollback(ctx, dbx))

	err = dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		is.True(!hasTable(ctx, tx, "events"))
		return nil
	})
	is.NoErr(err)

	// Nothing left to roll back.
	is.True(Rollback(ctx, dbx) != nil)
}
