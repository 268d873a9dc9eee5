// Package cmd holds what the hackbot commands share: building the backend
// and the database from the configuration in context.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hackbot/hackbot/pkg/backend"
	"github.com/hackbot/hackbot/pkg/config"
	"github.com/hackbot/hackbot/pkg/db"
	"github.com/hackbot/hackbot/pkg/store"
	_ "github.com/hackbot/hackbot/pkg/store/database" // database store
	_ "github.com/hackbot/hackbot/pkg/store/file"     // file store
	_ "github.com/hackbot/hackbot/pkg/store/redis"    // redis store
	"github.com/spf13/cobra"
)

func ensureDataPath(cfg *config.Config) error {
	if _, err := os.Stat(cfg.DataPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(cfg.DataPath, os.ModePerm); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	return nil
}

// InitBackendContext opens the configured store, loads the events registry
// and attaches both to the command context.
func InitBackendContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return config.ErrNilConfig
	}
	if err := ensureDataPath(cfg); err != nil {
		return err
	}

	st, err := store.New(ctx, cfg, cfg.Store.Driver)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}

	ctx = store.WithContext(ctx, st)
	be := backend.New(ctx, cfg, st)
	if err := be.Load(ctx); err != nil {
		st.Close() // nolint: errcheck
		return fmt.Errorf("load events: %w", err)
	}
	ctx = backend.WithContext(ctx, be)

	cmd.SetContext(ctx)

	return nil
}

// CloseStoreContext closes the store context.
func CloseStoreContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	st := store.FromContext(ctx)
	if st != nil {
		if err := st.Close(); err != nil {
			return fmt.Errorf("close store: %w", err)
		}
	}

	return nil
}

// InitDBContext opens the configured database and attaches it to the command
// context.
func InitDBContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return config.ErrNilConfig
	}
	if err := ensureDataPath(cfg); err != nil {
		return err
	}

	dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	cmd.SetContext(db.WithContext(ctx, dbx))

	return nil
}

// CloseDBContext closes the database context.
func CloseDBContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dbx := db.FromContext(ctx)
	if dbx != nil {
		if err := dbx.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}
