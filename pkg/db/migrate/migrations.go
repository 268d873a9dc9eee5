package migrate

import (
	"context"

	"github.com/hackbot/hackbot/pkg/db"
)

// Keep this in order of execution, oldest to newest.
var migrations = []Migration{
	createTables,
}

func execAll(ctx context.Context, h db.Handler, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := h.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
