package cmd

import "errors"

// SelectionError is returned when the user did not pick an option of a
// menu, or picked one that does not parse.
type SelectionError struct {
	Stage string
}

// Error implements error.
func (e *SelectionError) Error() string {
	return e.Stage
}

var (
	// ErrEventSelection is returned when no event was picked.
	ErrEventSelection = &SelectionError{Stage: "Event selection failed."}

	// ErrTeamSelection is returned when no team was picked.
	ErrTeamSelection = &SelectionError{Stage: "Team selection failed."}

	// ErrLookupFailed is returned when the picked event or team no longer
	// exists.
	ErrLookupFailed = errors.New("Event joining failed.") //nolint:revive,stylecheck

	// ErrNotInGuild is returned for commands used outside of a guild.
	ErrNotInGuild = errors.New("command used outside of a guild")
)
