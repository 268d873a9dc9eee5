// Package bot runs the gateway session: it registers the slash commands and
// routes interactions and scheduled event updates.
package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/pkg/backend"
	"github.com/hackbot/hackbot/pkg/bot/cmd"
	"github.com/hackbot/hackbot/pkg/config"
	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/platform/discord"
)

var (
	// ErrServerClosed is returned by ListenAndServe after Shutdown or Close.
	ErrServerClosed = errors.New("bot: server closed")

	// ErrMissingToken is returned when no bot token is configured.
	ErrMissingToken = errors.New("missing discord token")
)

// Bot is the gateway side of the bot.
type Bot struct {
	ctx       context.Context
	cfg       *config.Config
	backend   *backend.Backend
	session   *discordgo.Session
	client    *discord.Client
	collector *platform.Collector
	router    *Router
	commands  []*cmd.Command
	logger    *log.Logger

	registered []*discordgo.ApplicationCommand
	connected  atomic.Bool
	done       chan struct{}
	closeOnce  sync.Once
}

// New returns a new bot. It expects a context with *config.Config and
// *backend.Backend attached.
func New(ctx context.Context) (*Bot, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}
	if cfg.Discord.Token == "" {
		return nil, ErrMissingToken
	}
	be := backend.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("bot")

	s, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildScheduledEvents
	setSessionLogger(s, log.FromContext(ctx).WithPrefix("discordgo"))

	client := discord.NewClient(ctx, s)
	be.SetRenderer(client)

	collector := platform.NewCollector(ctx, cfg.SelectTimeout())
	cmds := cmd.Commands()
	b := &Bot{
		ctx:       ctx,
		cfg:       cfg,
		backend:   be,
		session:   s,
		client:    client,
		collector: collector,
		router:    NewRouter(ctx, cmd.NewSession(ctx, be, client, collector), cmds),
		commands:  cmds,
		logger:    logger,
		done:      make(chan struct{}),
	}

	s.AddHandler(b.onReady)
	s.AddHandler(b.onResumed)
	s.AddHandler(b.onDisconnect)
	s.AddHandler(b.onInteraction)
	s.AddHandler(b.onScheduledEventDelete)

	return b, nil
}

// Client returns the platform client of the bot.
func (b *Bot) Client() platform.Client {
	return b.client
}

// Connected returns whether the gateway session is up.
func (b *Bot) Connected() bool {
	return b.connected.Load()
}

// ListenAndServe opens the gateway session, registers the commands and
// blocks until the bot is shut down.
func (b *Bot) ListenAndServe() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}

	if err := b.register(); err != nil {
		b.session.Close() // nolint: errcheck
		return err
	}

	<-b.done
	return ErrServerClosed
}

func (b *Bot) appID() string {
	if b.cfg.Discord.ApplicationID != "" {
		return b.cfg.Discord.ApplicationID
	}
	if b.session.State != nil && b.session.State.User != nil {
		return b.session.State.User.ID
	}
	return ""
}

func (b *Bot) register() error {
	specs := discord.ApplicationCommands(cmd.Specs(b.commands))
	registered, err := b.session.ApplicationCommandBulkOverwrite(b.appID(), b.cfg.Discord.GuildID, specs,
		discordgo.WithContext(b.ctx))
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}

	b.registered = registered
	b.logger.Info("commands registered", "count", len(registered), "guild", b.cfg.Discord.GuildID)
	return nil
}

func (b *Bot) unregister(ctx context.Context) error {
	var errs []error
	for _, c := range b.registered {
		if err := b.session.ApplicationCommandDelete(b.appID(), b.cfg.Discord.GuildID, c.ID,
			discordgo.WithContext(ctx)); err != nil {
			errs = append(errs, fmt.Errorf("delete command %s: %w", c.Name, err))
		}
	}
	b.registered = nil
	return errors.Join(errs...)
}

// Shutdown stops the bot. Pending menus fail and the commands are removed
// when configured.
func (b *Bot) Shutdown(ctx context.Context) error {
	var err error
	if b.cfg.Discord.UnregisterCommands {
		err = b.unregister(ctx)
	}
	return errors.Join(err, b.Close())
}

// Close stops the bot immediately.
func (b *Bot) Close() error {
	var err error
	b.closeOnce.Do(func() {
		b.collector.Close()
		err = b.session.Close()
		b.connected.Store(false)
		close(b.done)
	})
	return err
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.connected.Store(true)
	b.logger.Info("connected", "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) onResumed(_ *discordgo.Session, _ *discordgo.Resumed) {
	b.connected.Store(true)
	b.logger.Debug("resumed")
}

func (b *Bot) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	b.connected.Store(false)
	b.logger.Warn("disconnected")
}

func (b *Bot) onInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	in, err := discord.Interaction(i.Interaction)
	if err != nil {
		b.logger.Debug("ignored interaction", "id", i.ID, "err", err)
		return
	}

	_ = b.router.Handle(b.ctx, in)
}

func (b *Bot) onScheduledEventDelete(_ *discordgo.Session, e *discordgo.GuildScheduledEventDelete) {
	se, err := discord.ScheduledEvent(e.GuildScheduledEvent)
	if err != nil {
		b.logger.Warn("scheduled event delete", "err", err)
		return
	}

	if err := b.router.ScheduledEventDeleted(b.ctx, se); err != nil {
		b.logger.Error("scheduled event delete", "guild", se.GuildID, "event", se.ID, "err", err)
	}
}
