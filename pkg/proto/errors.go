package proto

import (
	"errors"
)

var (
	// ErrCapacityReached is returned when a team is full. The message is shown
	// to users as is.
	ErrCapacityReached = errors.New("L'équipe a atteint sa capacité maximale")
	// ErrEventNotFound is returned when an event is not registered.
	ErrEventNotFound = errors.New("event not found")
	// ErrEventExists is returned when an event is already registered.
	ErrEventExists = errors.New("event already registered")
	// ErrTeamNotFound is returned when a team does not exist in an event.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidID is returned when an identifier cannot be parsed.
	ErrInvalidID = errors.New("invalid id")
)
