package proto

import (
	"encoding/json"
	"slices"
	"strings"
)

// Teams is the collection of teams of one event. Team IDs are allocated from
// a counter that never goes back, so a deleted team's ID is never reused.
//
// The zero value is an empty collection without capacity.
type Teams struct {
	teams    map[TeamID]Team
	capacity uint32
	nextID   TeamID
}

// NewTeams returns an empty collection. A zero capacity means the teams have
// no size limit.
func NewTeams(capacity uint32) Teams {
	return Teams{capacity: capacity}
}

// Capacity returns the maximum number of members per team, if any.
func (t *Teams) Capacity() (uint32, bool) {
	return t.capacity, t.capacity > 0
}

// SetCapacity sets the maximum number of members per team. Zero removes the
// limit.
func (t *Teams) SetCapacity(capacity uint32) {
	t.capacity = capacity
}

// AddTeam inserts a team and returns its ID. Names are not checked for
// uniqueness.
func (t *Teams) AddTeam(team Team) TeamID {
	if t.teams == nil {
		t.teams = make(map[TeamID]Team)
	}
	id := t.nextID
	t.teams[id] = team
	t.nextID++
	return id
}

// Team returns a copy of the team with the given ID.
func (t *Teams) Team(id TeamID) (Team, bool) {
	team, ok := t.teams[id]
	if !ok {
		return Team{}, false
	}
	return team.clone(), true
}

// Delete removes a team and returns it.
func (t *Teams) Delete(id TeamID) (Team, bool) {
	team, ok := t.teams[id]
	if !ok {
		return Team{}, false
	}
	delete(t.teams, id)
	return team, true
}

// AddParticipant appends a participant to a team. It fails with
// ErrCapacityReached when the team is full. Adding to a team that does not
// exist is a no-op and does not fail. Membership is not checked, a user
// added twice appears twice.
func (t *Teams) AddParticipant(id TeamID, p Participant) error {
	team, ok := t.teams[id]
	if !ok {
		return nil
	}
	if t.capacity > 0 && len(team.Members) >= int(t.capacity) {
		return ErrCapacityReached
	}
	team.Members = append(team.Members, p)
	t.teams[id] = team
	return nil
}

// RemoveParticipant removes every occurrence of the user from a team. Unknown
// teams and users are ignored.
func (t *Teams) RemoveParticipant(id TeamID, user ID) {
	team, ok := t.teams[id]
	if !ok {
		return
	}
	team.Members = slices.DeleteFunc(team.Members, func(p Participant) bool {
		return p.ID == user
	})
	t.teams[id] = team
}

// Len returns the number of teams.
func (t *Teams) Len() int {
	return len(t.teams)
}

// IsEmpty returns whether there are no teams.
func (t *Teams) IsEmpty() bool {
	return len(t.teams) == 0
}

// IDs returns the team IDs in ascending order.
func (t *Teams) IDs() []TeamID {
	ids := make([]TeamID, 0, len(t.teams))
	for id := range t.teams {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Each calls fn for every team in ascending ID order until fn returns false.
func (t *Teams) Each(fn func(TeamID, Team) bool) {
	for _, id := range t.IDs() {
		if !fn(id, t.teams[id].clone()) {
			return
		}
	}
}

// Clone returns a deep copy of the collection.
func (t Teams) Clone() Teams {
	c := Teams{capacity: t.capacity, nextID: t.nextID}
	if t.teams != nil {
		c.teams = make(map[TeamID]Team, len(t.teams))
		for id, team := range t.teams {
			c.teams[id] = team.clone()
		}
	}
	return c
}

// String implements fmt.Stringer.
func (t Teams) String() string {
	var sb strings.Builder
	t.Each(func(_ TeamID, team Team) bool {
		sb.WriteString(team.Render())
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}

type teamsJSON struct {
	Teams    map[TeamID]Team `json:"teams"`
	Capacity *uint32         `json:"capacity"`
	NextID   *TeamID         `json:"next_id,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (t Teams) MarshalJSON() ([]byte, error) {
	v := teamsJSON{
		Teams:  t.teams,
		NextID: &t.nextID,
	}
	if t.capacity > 0 {
		v.Capacity = &t.capacity
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler. Documents written before the
// ID counter existed resume after the highest known ID.
func (t *Teams) UnmarshalJSON(b []byte) error {
	var v teamsJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = Teams{teams: v.Teams}
	if v.Capacity != nil {
		t.capacity = *v.Capacity
	}
	if v.NextID != nil {
		t.nextID = *v.NextID
	} else {
		for id := range v.Teams {
			if id >= t.nextID {
				t.nextID = id + 1
			}
		}
	}
	return nil
}
