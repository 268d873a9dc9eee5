package proto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
)

func sampleEvent() Event {
	e := NewEvent(ScheduledEvent{
		ID:          1001,
		GuildID:     5,
		Name:        "Hackathon",
		Description: "48h",
		StartTime:   time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}, 4)
	a := e.Teams.AddTeam(NewTeam("T0", "first", nil, 100, 200))
	e.Teams.AddTeam(NewTeam("T1", "second", nil, 101, 201))
	_ = e.Teams.AddParticipant(a, Participant{ID: 42, Display: "ann"})
	_ = e.Teams.AddParticipant(a, Participant{ID: 7, Display: "bob"})
	return e
}

func TestEventJSONRoundTrip(t *testing.T) {
	is := is.New(t)
	e := sampleEvent()
	bts, err := json.Marshal(e)
	is.NoErr(err)

	var got Event
	is.NoErr(json.Unmarshal(bts, &got))
	is.Equal(got, e)
}

func TestEventIDsAsStrings(t *testing.T) {
	is := is.New(t)
	bts, err := json.Marshal(Preference{HackathonChannel: func() *ID { id := ID(12); return &id }()})
	is.NoErr(err)
	is.Equal(string(bts), `{"hackathon_channel":"12","hackathon_category":null}`)
}

func TestEventCloneIsDeep(t *testing.T) {
	is := is.New(t)
	e := sampleEvent()
	c := e.Clone()
	c.Teams.teams[0].Members[0].Display = "changed"
	_ = c.Teams.AddParticipant(1, Participant{ID: 9})

	team, _ := e.Teams.Team(0)
	is.Equal(team.Members[0].Display, "ann")
	team, _ = e.Teams.Team(1)
	is.True(!team.Contains(9))
}

func TestEventRender(t *testing.T) {
	is := is.New(t)
	e := sampleEvent()
	is.Equal(e.Render(), "48h\n\n**T0**: first\nParticipants: ann bob \n**T1**: second\nParticipants:")

	e.Description = strings.Repeat("x", 2*MaxDescriptionLength)
	is.Equal(len([]rune(e.Render())), MaxDescriptionLength)
}

func TestParseID(t *testing.T) {
	cases := []struct {
		in   string
		want ID
		err  error
	}{
		{"42", 42, nil},
		{"0", 0, ErrInvalidID},
		{"", 0, ErrInvalidID},
		{"-1", 0, ErrInvalidID},
		{"abc", 0, ErrInvalidID},
	}
	for _, c := range cases {
		got, err := ParseID(c.in)
		if got != c.want || err != c.err {
			t.Errorf("ParseID(%q) => %d, %v, want %d, %v", c.in, got, err, c.want, c.err)
		}
	}
}
