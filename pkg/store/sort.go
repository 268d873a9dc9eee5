package store

import (
	"cmp"
	"slices"

	"github.com/hackbot/hackbot/pkg/proto"
)

// SortEvents orders events by guild, then by ID.
func SortEvents(events []proto.Event) {
	slices.SortFunc(events, func(a, b proto.Event) int {
		if c := cmp.Compare(a.GuildID, b.GuildID); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
