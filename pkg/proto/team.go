package proto

import (
	"fmt"
	"strings"
)

// Team is a named group of participants with its own text and voice
// channels.
type Team struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Members      []Participant `json:"members"`
	TextChannel  ID            `json:"text_channel"`
	VocalChannel ID            `json:"vocal_channel"`
}

// NewTeam returns a new team.
func NewTeam(name, description string, members []Participant, text, vocal ID) Team {
	return Team{
		Name:         name,
		Description:  description,
		Members:      members,
		TextChannel:  text,
		VocalChannel: vocal,
	}
}

// Contains returns whether the user is a member of the team.
func (t Team) Contains(user ID) bool {
	for _, p := range t.Members {
		if p.ID == user {
			return true
		}
	}
	return false
}

// Channels returns the team's text and voice channels, in that order.
func (t Team) Channels() []ID {
	return []ID{t.TextChannel, t.VocalChannel}
}

// String implements fmt.Stringer.
func (t Team) String() string {
	return fmt.Sprintf("**%s**: %s", t.Name, t.Description)
}

// Render returns the team followed by its members.
func (t Team) Render() string {
	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteString("\nParticipants: ")
	for _, p := range t.Members {
		sb.WriteString(p.String())
		sb.WriteByte(' ')
	}
	return sb.String()
}

func (t Team) clone() Team {
	if t.Members != nil {
		t.Members = append(make([]Participant, 0, len(t.Members)), t.Members...)
	}
	return t
}
