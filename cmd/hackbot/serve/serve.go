// Package serve implements the command running the bot.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hackbot/hackbot/cmd"
	"github.com/hackbot/hackbot/pkg/config"
	"github.com/spf13/cobra"
)

// Command is the serve command.
var Command = &cobra.Command{
	Use:                "serve",
	Short:              "Start the bot",
	Args:               cobra.NoArgs,
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseStoreContext,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		cfg := config.FromContext(ctx)
		if !cfg.Exist() {
			if err := cfg.WriteConfig(); err != nil {
				return fmt.Errorf("write config file: %w", err)
			}
		}

		s, err := NewServer(ctx)
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}

		lch := make(chan error, 1)
		done := make(chan os.Signal, 1)
		doneOnce := sync.OnceFunc(func() {
			signal.Stop(done)
			close(done)
		})

		signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			lch <- s.Start()
			doneOnce()
		}()

		select {
		case err := <-lch:
			if err != nil {
				s.Close() // nolint: errcheck
				return fmt.Errorf("server error: %w", err)
			}
		case <-done:
		}

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return s.Shutdown(ctx)
	},
}
