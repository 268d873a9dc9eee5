package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hackbot/hackbot/pkg/bot/cmd"
	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/proto"
)

// ErrUnknownCommand is returned for a command the bot does not have.
var ErrUnknownCommand = errors.New("unknown command")

// Router dispatches interactions. Commands run on the calling goroutine;
// component interactions go to the command awaiting them.
type Router struct {
	session  *cmd.Session
	commands map[string]*cmd.Command
	logger   *log.Logger
}

// NewRouter returns a router running cmds against session.
func NewRouter(ctx context.Context, session *cmd.Session, cmds []*cmd.Command) *Router {
	r := &Router{
		session:  session,
		commands: make(map[string]*cmd.Command, len(cmds)),
		logger:   log.FromContext(ctx).WithPrefix("bot"),
	}
	for _, c := range cmds {
		r.commands[c.Spec.Name] = c
	}
	return r
}

// Handle routes one interaction. A command error is logged and returned.
func (r *Router) Handle(ctx context.Context, in *platform.Interaction) error {
	interactionCounter.WithLabelValues(in.Type.String()).Inc()

	switch in.Type {
	case platform.InteractionComponent:
		if !r.session.Collector.Dispatch(in) {
			r.logger.Debug("unmatched component",
				"custom_id", in.CustomID,
				"guild", in.GuildID,
				"user", in.User.ID)
		}
		return nil
	case platform.InteractionCommand:
		return r.run(ctx, in)
	default:
		return fmt.Errorf("interaction type %s: %w", in.Type, ErrUnknownCommand)
	}
}

func (r *Router) run(ctx context.Context, in *platform.Interaction) error {
	logger := r.logger.With(
		"request", uuid.NewString(),
		"command", in.Command,
		"guild", in.GuildID,
		"user", in.User.ID,
	)

	c, ok := r.commands[in.Command]
	if !ok {
		logger.Warn("unknown command")
		return fmt.Errorf("%q: %w", in.Command, ErrUnknownCommand)
	}

	start := time.Now()
	logger.Debug("command", "subcommand", in.Subcommand)
	if err := c.Run(log.WithContext(ctx, logger), r.session, in); err != nil {
		commandErrorCounter.WithLabelValues(in.Command).Inc()
		logger.Error("command failed", "err", err, "elapsed", time.Since(start))
		return err
	}

	logger.Debug("command done", "elapsed", time.Since(start))
	return nil
}

// ScheduledEventDeleted removes the event registered for a scheduled event
// deleted on the platform.
func (r *Router) ScheduledEventDeleted(ctx context.Context, se proto.ScheduledEvent) error {
	e, err := r.session.Backend.DeleteEvent(ctx, se.GuildID, se.ID)
	if errors.Is(err, proto.ErrEventNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	r.logger.Info("scheduled event deleted", "guild", e.GuildID, "event", e.ID, "teams", e.Teams.Len())
	return nil
}

