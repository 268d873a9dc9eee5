package jobs

import (
	"context"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/hackbot/hackbot/internal/sync"
	"github.com/hackbot/hackbot/pkg/backend"
	"github.com/hackbot/hackbot/pkg/config"
	"github.com/hackbot/hackbot/pkg/platform"
)

func init() {
	Register("prune-events", pruneEvents{})
}

// pruneEvents removes the events whose scheduled event no longer exists on
// the platform.
type pruneEvents struct{}

var _ Runner = pruneEvents{}

// Spec implements Runner.
func (pruneEvents) Spec(ctx context.Context) string {
	cfg := config.FromContext(ctx)
	return cfg.Jobs.PruneEvents
}

// Func implements Runner. It expects a context with *backend.Backend and a
// platform.Client attached.
func (pruneEvents) Func(ctx context.Context) func() {
	be := backend.FromContext(ctx)
	client := platform.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("jobs.prune")
	return func() {
		if be == nil || client == nil {
			logger.Error("missing backend or platform client")
			return
		}

		wq := sync.NewWorkQueue(runtime.GOMAXPROCS(0))
		for _, guild := range be.Guilds() {
			guild := guild
			wq.Add(guild.String(), func(ctx context.Context) {
				live, err := client.ScheduledEvents(ctx, guild)
				if err != nil {
					logger.Error("list scheduled events", "guild", guild, "err", err)
					return
				}

				removed, err := be.Prune(ctx, guild, live)
				for _, e := range removed {
					logger.Info("pruned event", "guild", guild, "event", e.ID, "name", e.Name)
				}
				if err != nil {
					logger.Error("prune events", "guild", guild, "err", err)
				}
			})
		}

		logger.Debug("pruning events", "guilds", wq.Len())
		wq.Run(ctx)
	}
}
