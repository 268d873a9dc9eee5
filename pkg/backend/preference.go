package backend

import (
	"context"
	"fmt"

	"github.com/hackbot/hackbot/pkg/proto"
)

// Preference returns the hackathon preference.
func (b *Backend) Preference(_ context.Context) proto.Preference {
	b.prefMu.RLock()
	defer b.prefMu.RUnlock()
	return b.pref
}

// SetHackathonChannel sets the channel announcing the hackathon.
func (b *Backend) SetHackathonChannel(ctx context.Context, channel proto.ID) error {
	return b.updatePreference(ctx, func(p *proto.Preference) {
		p.HackathonChannel = &channel
	})
}

// SetHackathonCategory sets the category team channels are created in.
func (b *Backend) SetHackathonCategory(ctx context.Context, category proto.ID) error {
	return b.updatePreference(ctx, func(p *proto.Preference) {
		p.HackathonCategory = &category
	})
}

func (b *Backend) updatePreference(ctx context.Context, fn func(*proto.Preference)) error {
	b.prefMu.Lock()
	defer b.prefMu.Unlock()

	pref := b.pref
	fn(&pref)
	if err := b.store.SetPreference(ctx, pref); err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	b.pref = pref
	return nil
}
