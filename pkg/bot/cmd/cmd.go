// Package cmd implements the slash commands of the bot.
package cmd

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/pkg/backend"
	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/text/message"
)

var joinCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hackbot",
	Subsystem: "cmd",
	Name:      "joins_total",
	Help:      "The total number of /join outcomes",
}, []string{"outcome"})

// Session is what a command runs against.
type Session struct {
	Backend   *backend.Backend
	Client    platform.Client
	Collector *platform.Collector
	Logger    *log.Logger
	Printer   *message.Printer
}

// NewSession returns a session. The logger is taken from ctx.
func NewSession(ctx context.Context, be *backend.Backend, client platform.Client, collector *platform.Collector) *Session {
	return &Session{
		Backend:   be,
		Client:    client,
		Collector: collector,
		Logger:    log.FromContext(ctx).WithPrefix("cmd"),
		Printer:   NewPrinter(),
	}
}

// Command is a slash command.
type Command struct {
	Spec platform.CommandSpec
	Run  func(ctx context.Context, s *Session, in *platform.Interaction) error
}

// Commands returns every command of the bot.
func Commands() []*Command {
	return []*Command{
		joinCommand(),
		leaveCommand(),
		eventCommand(),
		teamCommand(),
		hackathonCommand(),
	}
}

// Specs returns the specs of cmds, for registration.
func Specs(cmds []*Command) []platform.CommandSpec {
	specs := make([]platform.CommandSpec, 0, len(cmds))
	for _, c := range cmds {
		specs = append(specs, c.Spec)
	}
	return specs
}

// reply answers a command with a new message and a component interaction by
// updating its message.
func (s *Session) reply(ctx context.Context, in *platform.Interaction, r platform.Response) error {
	if in.Type == platform.InteractionComponent {
		return s.Client.Update(ctx, in, r)
	}
	return s.Client.Respond(ctx, in, r)
}

// done replaces the menus of in's message with a final message.
func (s *Session) done(ctx context.Context, in *platform.Interaction, content string) error {
	return s.reply(ctx, in, platform.Response{
		Content:         content,
		Ephemeral:       true,
		ClearComponents: true,
	})
}
