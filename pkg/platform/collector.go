package platform

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hackbot/hackbot/pkg/proto"
)

// DefaultTimeout is how long Await waits when the collector has no timeout.
const DefaultTimeout = 5 * time.Minute

// Filter selects the component interaction a waiter expects. Zero fields
// match anything.
type Filter struct {
	GuildID  proto.ID
	UserID   proto.ID
	CustomID string
}

// Match reports whether in satisfies the filter.
func (f Filter) Match(in *Interaction) bool {
	if in == nil || in.Type != InteractionComponent {
		return false
	}
	if !f.GuildID.IsZero() && f.GuildID != in.GuildID {
		return false
	}
	if !f.UserID.IsZero() && f.UserID != in.User.ID {
		return false
	}
	if f.CustomID != "" && f.CustomID != in.CustomID {
		return false
	}
	return true
}

type waiter struct {
	key    string
	filter Filter
	ch     chan *Interaction
}

// Collector hands component interactions to the commands awaiting them.
type Collector struct {
	timeout time.Duration
	logger  *log.Logger

	mu      sync.Mutex
	waiters []*waiter
	closed  bool
	done    chan struct{}
}

// NewCollector returns a collector whose waits last at most timeout.
func NewCollector(ctx context.Context, timeout time.Duration) *Collector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Collector{
		timeout: timeout,
		logger:  log.FromContext(ctx).WithPrefix("collector"),
		done:    make(chan struct{}),
	}
}

// Await blocks until a component interaction matching f is dispatched. It
// returns ErrNoInteraction when the timeout elapses or ctx is done, and
// ErrCollectorClosed when the collector is closed.
func (c *Collector) Await(ctx context.Context, f Filter) (*Interaction, error) {
	w := &waiter{
		key:    uuid.NewString(),
		filter: f,
		ch:     make(chan *Interaction, 1),
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrCollectorClosed
	}
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()

	c.logger.Debug("awaiting interaction", "waiter", w.key, "guild", f.GuildID, "user", f.UserID, "custom_id", f.CustomID)

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	var err error
	select {
	case in := <-w.ch:
		return in, nil
	case <-timer.C:
		err = ErrNoInteraction
	case <-ctx.Done():
		err = ErrNoInteraction
	case <-c.done:
		err = ErrCollectorClosed
	}

	if !c.remove(w.key) {
		// Dispatch won the race and already sent the interaction.
		select {
		case in := <-w.ch:
			return in, nil
		default:
		}
	}

	c.logger.Debug("no interaction", "waiter", w.key, "err", err)
	return nil, err
}

func (c *Collector) remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, w := range c.waiters {
		if w.key == key {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return true
		}
	}
	return false
}

// Dispatch hands in to the oldest waiter it matches. It returns false when
// nobody was waiting for it.
func (c *Collector) Dispatch(in *Interaction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, w := range c.waiters {
		if w.filter.Match(in) {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			w.ch <- in
			return true
		}
	}

	return false
}

// Pending returns the number of waiters.
func (c *Collector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

// Close releases every waiter with ErrCollectorClosed.
func (c *Collector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}
