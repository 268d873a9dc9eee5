package proto

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/matryer/is"
)

func participant(id ID) Participant {
	return Participant{ID: id, Display: "user-" + id.String()}
}

func TestAddTeamAllocatesIDs(t *testing.T) {
	is := is.New(t)
	var teams Teams
	is.Equal(teams.AddTeam(NewTeam("a", "", nil, 1, 2)), TeamID(0))
	is.Equal(teams.AddTeam(NewTeam("b", "", nil, 3, 4)), TeamID(1))
	is.Equal(teams.Len(), 2)

	_, ok := teams.Delete(0)
	is.True(ok)
	// The next ID is not the current size.
	is.Equal(teams.AddTeam(NewTeam("c", "", nil, 5, 6)), TeamID(2))
	is.Equal(teams.IDs(), []TeamID{1, 2})
}

func TestDeleteReturnsPrevious(t *testing.T) {
	is := is.New(t)
	var teams Teams
	id := teams.AddTeam(NewTeam("a", "desc", nil, 1, 2))
	team, ok := teams.Delete(id)
	is.True(ok)
	is.Equal(team.Name, "a")
	_, ok = teams.Delete(id)
	is.True(!ok)
	is.True(teams.IsEmpty())
}

func TestTeamIsSnapshot(t *testing.T) {
	is := is.New(t)
	var teams Teams
	id := teams.AddTeam(NewTeam("a", "", []Participant{participant(1)}, 1, 2))
	team, _ := teams.Team(id)
	team.Members[0].Display = "changed"
	team.Members = append(team.Members, participant(2))

	again, _ := teams.Team(id)
	is.Equal(again.Members, []Participant{participant(1)})
}

func TestCapacityReached(t *testing.T) {
	is := is.New(t)
	teams := NewTeams(2)
	id := teams.AddTeam(NewTeam("T0", "", nil, 100, 200))
	is.NoErr(teams.AddParticipant(id, participant(1)))
	is.NoErr(teams.AddParticipant(id, participant(2)))

	err := teams.AddParticipant(id, participant(7))
	is.Equal(err, ErrCapacityReached)
	is.Equal(err.Error(), "L'équipe a atteint sa capacité maximale")

	team, _ := teams.Team(id)
	is.Equal(len(team.Members), 2)
	is.True(!team.Contains(7))
}

func TestCapacityNeverExceeded(t *testing.T) {
	const capacity = 3
	r := rand.New(rand.NewSource(42)) //nolint:gosec
	teams := NewTeams(capacity)
	for i := 0; i < 4; i++ {
		teams.AddTeam(NewTeam("t", "", nil, 1, 2))
	}
	for i := 0; i < 200; i++ {
		id := TeamID(r.Intn(5)) // 4 does not exist
		_ = teams.AddParticipant(id, participant(ID(r.Intn(10)+1)))
		if r.Intn(4) == 0 {
			teams.RemoveParticipant(TeamID(r.Intn(4)), ID(r.Intn(10)+1))
		}
		teams.Each(func(id TeamID, team Team) bool {
			if len(team.Members) > capacity {
				t.Fatalf("team %d has %d members, capacity is %d", id, len(team.Members), capacity)
			}
			return true
		})
	}
}

func TestAddParticipantUnknownTeam(t *testing.T) {
	is := is.New(t)
	teams := NewTeams(1)
	teams.AddTeam(NewTeam("a", "", nil, 1, 2))
	before := teams.Clone()

	is.NoErr(teams.AddParticipant(12, participant(1)))
	is.Equal(teams, before)
}

func TestAddParticipantContains(t *testing.T) {
	cases := []struct {
		name     string
		capacity uint32
		members  int
		team     TeamID
		want     bool
	}{
		{"no capacity", 0, 5, 0, true},
		{"room left", 2, 1, 0, true},
		{"full", 2, 2, 0, false},
		{"missing team", 0, 0, 3, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			teams := NewTeams(c.capacity)
			teams.AddTeam(NewTeam("a", "", nil, 1, 2))
			for i := 0; i < c.members; i++ {
				teams.teams[0] = Team{Members: append(teams.teams[0].Members, participant(ID(100+i)))}
			}
			_ = teams.AddParticipant(c.team, participant(42))
			team, _ := teams.Team(0)
			if got := team.Contains(42); got != c.want {
				t.Errorf("Contains(42) => %v, want %v", got, c.want)
			}
		})
	}
}

func TestRemoveParticipantIdempotent(t *testing.T) {
	is := is.New(t)
	var teams Teams
	id := teams.AddTeam(NewTeam("a", "", nil, 1, 2))
	is.NoErr(teams.AddParticipant(id, participant(1)))
	is.NoErr(teams.AddParticipant(id, participant(2)))
	is.NoErr(teams.AddParticipant(id, participant(1)))

	teams.RemoveParticipant(id, 1)
	once := teams.Clone()
	teams.RemoveParticipant(id, 1)
	is.Equal(teams, once)

	team, _ := teams.Team(id)
	is.Equal(team.Members, []Participant{participant(2)})

	// Unknown team.
	teams.RemoveParticipant(9, 2)
	is.Equal(teams, once)
}

func TestTeamsJSONWithoutCounter(t *testing.T) {
	is := is.New(t)
	doc := `{"teams":{"0":{"name":"a","members":null},"4":{"name":"b","members":null}},"capacity":3}`
	var teams Teams
	is.NoErr(json.Unmarshal([]byte(doc), &teams))
	capacity, ok := teams.Capacity()
	is.True(ok)
	is.Equal(capacity, uint32(3))
	is.Equal(teams.AddTeam(Team{Name: "c"}), TeamID(5))
}

func TestTeamRender(t *testing.T) {
	is := is.New(t)
	team := NewTeam("Rust", "Crabs", []Participant{{ID: 1, Display: "ann"}, {ID: 2, Display: "bob"}}, 1, 2)
	is.Equal(team.String(), "**Rust**: Crabs")
	is.Equal(team.Render(), "**Rust**: Crabs\nParticipants: ann bob ")
}
