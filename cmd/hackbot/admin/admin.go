// Package admin implements the database administration commands.
package admin

import (
	"fmt"

	"github.com/hackbot/hackbot/cmd"
	"github.com/hackbot/hackbot/pkg/db"
	"github.com/hackbot/hackbot/pkg/db/migrate"
	"github.com/spf13/cobra"
)

var (
	// Command is the admin command.
	Command = &cobra.Command{
		Use:   "admin",
		Short: "Administrate the database store",
	}

	migrateCmd = &cobra.Command{
		Use:                "migrate",
		Short:              "Migrate the database to the latest version",
		PersistentPreRunE:  cmd.InitDBContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db := db.FromContext(ctx)
			if err := migrate.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migration: %w", err)
			}

			return nil
		},
	}

	rollbackCmd = &cobra.Command{
		Use:                "rollback",
		Short:              "Rollback the database to the previous version",
		PersistentPreRunE:  cmd.InitDBContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db := db.FromContext(ctx)
			if err := migrate.Rollback(ctx, db); err != nil {
				return fmt.Errorf("rollback: %w", err)
			}

			return nil
		},
	}
)

func init() {
	Command.AddCommand(
		migrateCmd,
		rollbackCmd,
	)
}
