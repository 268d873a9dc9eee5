package proto

// User is a platform user as seen in an interaction.
type User struct {
	ID         ID
	Username   string
	GlobalName string
	Nick       string
}

// DisplayName returns the name the user is shown with in a guild.
func (u User) DisplayName() string {
	switch {
	case u.Nick != "":
		return u.Nick
	case u.GlobalName != "":
		return u.GlobalName
	}
	return u.Username
}

// Participant is a user member of a team.
type Participant struct {
	ID      ID     `json:"id"`
	Display string `json:"display"`
}

// ParticipantFromUser returns the participant for a user.
func ParticipantFromUser(u User) Participant {
	return Participant{
		ID:      u.ID,
		Display: u.DisplayName(),
	}
}

// String implements fmt.Stringer.
func (p Participant) String() string {
	return p.Display
}
