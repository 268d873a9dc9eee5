package backend

import (
	"github.com/hackbot/hackbot/pkg/proto"
	lru "github.com/hashicorp/golang-lru/v2"
)

type eventKey struct {
	guild proto.ID
	event proto.ID
}

// cache remembers the last description rendered for each event.
type cache struct {
	rendered *lru.Cache[eventKey, string]
}

func newCache(size int) *cache {
	if size <= 0 {
		size = 1
	}
	c := &cache{}
	rendered, _ := lru.New[eventKey, string](size)
	c.rendered = rendered
	return c
}

// Rendered reports whether description is what the platform already shows.
func (c *cache) Rendered(guild, event proto.ID, description string) bool {
	v, ok := c.rendered.Get(eventKey{guild, event})
	return ok && v == description
}

func (c *cache) Set(guild, event proto.ID, description string) {
	c.rendered.Add(eventKey{guild, event}, description)
}

func (c *cache) Delete(guild, event proto.ID) {
	c.rendered.Remove(eventKey{guild, event})
}

func (c *cache) Len() int {
	return c.rendered.Len()
}
