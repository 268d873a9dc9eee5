package proto

import (
	"strconv"
)

// ID is a platform snowflake identifying a user, a channel, a guild or a
// scheduled event. It is encoded as a decimal string.
type ID uint64

// ParseID parses a decimal, non-zero ID.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, ErrInvalidID
	}
	return ID(v), nil
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IsZero returns whether the ID is unset.
func (id ID) IsZero() bool {
	return id == 0
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return ErrInvalidID
	}
	*id = ID(v)
	return nil
}

// TeamID identifies a team within one event.
type TeamID uint64

// ParseTeamID parses a decimal team ID.
func ParseTeamID(s string) (TeamID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return TeamID(v), nil
}

// String implements fmt.Stringer.
func (id TeamID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
