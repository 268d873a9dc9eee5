package cmd

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hackbot/hackbot/pkg/backend"
	"github.com/hackbot/hackbot/pkg/config"
	"github.com/hackbot/hackbot/pkg/platform"
	"github.com/hackbot/hackbot/pkg/proto"
	"github.com/hackbot/hackbot/pkg/store"
	"github.com/hackbot/hackbot/pkg/store/file"
	"github.com/hackbot/hackbot/pkg/test"
)

const guild = proto.ID(1)

// countingStore counts saved events. Saves fail with failWith when it is
// set.
type countingStore struct {
	store.Store
	saves    atomic.Int32
	failWith error
}

func (s *countingStore) SaveEvent(ctx context.Context, e proto.Event) error {
	s.saves.Add(1)
	if s.failWith != nil {
		return s.failWith
	}
	return s.Store.SaveEvent(ctx, e)
}

type harness struct {
	t         *testing.T
	dir       string
	store     *countingStore
	backend   *backend.Backend
	client    *test.Client
	collector *platform.Collector
	session   *Session
}

func newHarness(t *testing.T, timeout time.Duration) *harness {
	t.Helper()
	ctx := context.TODO()
	dir := t.TempDir()
	st, err := file.Open(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	cs := &countingStore{Store: st}
	be := backend.New(ctx, config.DefaultConfig(), cs)
	if err := be.Load(ctx); err != nil {
		t.Fatal(err)
	}
	client := test.NewClient()
	collector := platform.NewCollector(ctx, timeout)
	t.Cleanup(collector.Close)

	return &harness{
		t:         t,
		dir:       dir,
		store:     cs,
		backend:   be,
		client:    client,
		collector: collector,
		session:   NewSession(ctx, be, client, collector),
	}
}

// addEvent registers an event with one team per name. Team i uses channels
// 100+i and 200+i.
func (h *harness) addEvent(id proto.ID, name string, capacity uint32, teams ...string) proto.Event {
	h.t.Helper()
	e := proto.NewEvent(proto.ScheduledEvent{
		ID:        id,
		GuildID:   guild,
		Name:      name,
		StartTime: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}, capacity)
	for i, t := range teams {
		e.Teams.AddTeam(proto.NewTeam(t, "", nil, proto.ID(100+i), proto.ID(200+i)))
	}
	if err := h.backend.CreateEvent(context.TODO(), e); err != nil {
		h.t.Fatal(err)
	}
	return e
}

// start runs a command in the background and returns its error channel.
func (h *harness) start(cmd *Command, in *platform.Interaction) <-chan error {
	errc := make(chan error, 1)
	go func() {
		errc <- cmd.Run(context.TODO(), h.session, in)
	}()
	return errc
}

// waitPending blocks until a command awaits a choice.
func (h *harness) waitPending() {
	h.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.collector.Pending() == 0 {
		if time.Now().After(deadline) {
			h.t.Fatal("no command is waiting for a choice")
		}
		time.Sleep(time.Millisecond)
	}
}

// pick answers the pending menu as user.
func (h *harness) pick(user proto.ID, customID string, kind platform.ComponentType, values ...string) *platform.Interaction {
	h.t.Helper()
	h.waitPending()
	in := &platform.Interaction{
		ID:            "component",
		Type:          platform.InteractionComponent,
		GuildID:       guild,
		User:          proto.User{ID: user, Username: "user-" + user.String()},
		CustomID:      customID,
		ComponentType: kind,
		Values:        values,
	}
	if !h.collector.Dispatch(in) {
		h.t.Fatalf("nobody awaits %s", customID)
	}
	return in
}

func (h *harness) pickEvent(user, event proto.ID) {
	h.t.Helper()
	h.pick(user, proto.MenuEvent, platform.ComponentStringSelect, event.String())
}

func (h *harness) pickTeam(user proto.ID, team proto.TeamID) {
	h.t.Helper()
	h.pick(user, proto.MenuTeam, platform.ComponentStringSelect, team.String())
}

func (h *harness) wait(errc <-chan error) error {
	h.t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(5 * time.Second):
		h.t.Fatal("command did not return")
		return nil
	}
}

func (h *harness) team(event proto.ID, id proto.TeamID) proto.Team {
	h.t.Helper()
	e, ok := h.backend.Get(context.TODO(), guild, event)
	if !ok {
		h.t.Fatalf("event %s not found", event)
	}
	t, ok := e.Teams.Team(id)
	if !ok {
		h.t.Fatalf("team %s not found", id)
	}
	return t
}

func command(user proto.ID, name, sub string, options map[string]string) *platform.Interaction {
	return &platform.Interaction{
		ID:         "command",
		Type:       platform.InteractionCommand,
		GuildID:    guild,
		User:       proto.User{ID: user, Username: "user-" + user.String()},
		Command:    name,
		Subcommand: sub,
		Options:    options,
	}
}

type permission struct {
	channel proto.ID
	ow      proto.Overwrite
}

func (h *harness) permissions() []permission {
	var out []permission
	for _, c := range h.client.Calls(test.OpSetChannelPermission) {
		out = append(out, permission{c.Channel, c.Overwrite})
	}
	return out
}

func TestCommandNames(t *testing.T) {
	seen := map[string]bool{}
	for _, spec := range Specs(Commands()) {
		if seen[spec.Name] {
			t.Errorf("duplicate command %q", spec.Name)
		}
		seen[spec.Name] = true
	}
	for _, name := range []string{"join", "leave", "event", "team", "hackathon"} {
		if !seen[name] {
			t.Errorf("missing command %q", name)
		}
	}
}

func TestNotInGuild(t *testing.T) {
	h := newHarness(t, time.Second)
	in := command(42, "join", "", nil)
	in.GuildID = 0
	if err := joinCommand().Run(context.TODO(), h.session, in); err != ErrNotInGuild {
		t.Errorf("Run() => %v, want %v", err, ErrNotInGuild)
	}
}
