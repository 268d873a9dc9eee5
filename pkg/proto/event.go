package proto

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxDescriptionLength is the longest description a scheduled event accepts.
const MaxDescriptionLength = 1000

// ScheduledEvent is a calendar entry of a guild on the platform.
type ScheduledEvent struct {
	ID          ID
	GuildID     ID
	Name        string
	Description string
	StartTime   time.Time
}

// Event is a scheduled event registered for teams.
type Event struct {
	ID      ID `json:"id"`
	GuildID ID `json:"guild_id"`
	// Name is the scheduled event title.
	Name string `json:"name"`
	// Description is the scheduled event description as set by its author,
	// without the rendered teams.
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	Teams       Teams     `json:"teams"`
}

// NewEvent returns an event without teams for a scheduled event.
func NewEvent(se ScheduledEvent, capacity uint32) Event {
	return Event{
		ID:          se.ID,
		GuildID:     se.GuildID,
		Name:        se.Name,
		Description: se.Description,
		StartTime:   se.StartTime,
		Teams:       NewTeams(capacity),
	}
}

// Clone returns a deep copy of the event.
func (e Event) Clone() Event {
	e.Teams = e.Teams.Clone()
	return e
}

// Render returns the scheduled event description listing the teams. It is
// cut to MaxDescriptionLength.
func (e Event) Render() string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(e.Description))
	if teams := strings.TrimSpace(e.Teams.String()); teams != "" {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(teams)
	}
	return truncate(sb.String(), MaxDescriptionLength)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
