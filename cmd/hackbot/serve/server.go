package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/pkg/backend"
	"github.com/hackbot/hackbot/pkg/bot"
	"github.com/hackbot/hackbot/pkg/config"
	"github.com/hackbot/hackbot/pkg/cron"
	"github.com/hackbot/hackbot/pkg/jobs"
	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/stats"
	"github.com/hackbot/hackbot/pkg/web"
	"golang.org/x/sync/errgroup"
)

// Server is the hackbot server.
type Server struct {
	Bot         *bot.Bot
	HTTPServer  *web.HTTPServer
	StatsServer *stats.StatsServer
	Cron        *cron.Scheduler
	Config      *config.Config
	Backend     *backend.Backend

	logger *log.Logger
	ctx    context.Context
}

// NewServer returns a new *Server running the bot.
// It expects a context with *backend.Backend, *log.Logger, and
// *config.Config attached.
func NewServer(ctx context.Context) (*Server, error) {
	var err error
	cfg := config.FromContext(ctx)
	be := backend.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("server")
	srv := &Server{
		Config:  cfg,
		Backend: be,
		logger:  logger,
	}

	srv.Bot, err = bot.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	ctx = bot.WithContext(ctx, srv.Bot)
	ctx = platform.WithContext(ctx, srv.Bot.Client())
	srv.ctx = ctx

	// Add cron jobs.
	sched := cron.NewScheduler(ctx)
	for n, j := range jobs.List() {
		id, err := sched.AddFunc(j.Runner.Spec(ctx), j.Runner.Func(ctx))
		if err != nil {
			logger.Warn("error adding cron job", "job", n, "err", err)
		}

		j.ID = id
	}

	srv.Cron = sched

	srv.HTTPServer, err = web.NewHTTPServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create http server: %w", err)
	}

	srv.StatsServer, err = stats.NewStatsServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create stats server: %w", err)
	}

	return srv, nil
}

// Start starts the bot and the servers.
func (s *Server) Start() error {
	errg, _ := errgroup.WithContext(s.ctx)

	errg.Go(func() error {
		s.logger.Print("Starting bot", "store", s.Config.Store.Driver)
		if err := s.Bot.ListenAndServe(); !errors.Is(err, bot.ErrServerClosed) {
			return err
		}
		return nil
	})

	// optionally start the HTTP server
	if s.Config.HTTP.Enabled {
		errg.Go(func() error {
			s.logger.Print("Starting HTTP server", "addr", s.HTTPServer.Addr())
			if err := s.HTTPServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	// optionally start the Stats server
	if s.Config.Stats.Enabled {
		errg.Go(func() error {
			s.logger.Print("Starting Stats server", "addr", s.Config.Stats.ListenAddr)
			if err := s.StatsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	errg.Go(func() error {
		s.Cron.Start()
		return nil
	})
	return errg.Wait()
}

// Shutdown lets the server gracefully shutdown. The events registry is
// flushed once the bot has stopped.
func (s *Server) Shutdown(ctx context.Context) error {
	errg, gctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return s.Bot.Shutdown(gctx)
	})
	errg.Go(func() error {
		return s.HTTPServer.Shutdown(gctx)
	})
	errg.Go(func() error {
		return s.StatsServer.Shutdown(gctx)
	})
	errg.Go(func() error {
		for _, j := range jobs.List() {
			s.Cron.Remove(j.ID)
		}
		s.Cron.Stop()
		return nil
	})
	err := errg.Wait()
	return errors.Join(err, s.Backend.Flush(ctx))
}

// Close closes the bot and the servers.
func (s *Server) Close() error {
	var errg errgroup.Group
	errg.Go(s.Bot.Close)
	errg.Go(s.HTTPServer.Close)
	errg.Go(s.StatsServer.Close)
	errg.Go(func() error {
		s.Cron.Stop()
		return nil
	})
	return errg.Wait()
}
