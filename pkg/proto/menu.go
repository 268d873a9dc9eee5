package proto

// Custom IDs of the select menus.
const (
	MenuEvent = "event"
	MenuTeam  = "team"
)

// MaxMenuOptions is the most options a select menu can offer.
const MaxMenuOptions = 25

// SelectOption is one choice of a select menu.
type SelectOption struct {
	Label string
	Value string
}

// SelectMenu is a single choice string select menu.
type SelectMenu struct {
	CustomID    string
	Placeholder string
	Options     []SelectOption
}

// IsEmpty returns whether the menu has no option.
func (m SelectMenu) IsEmpty() bool {
	return len(m.Options) == 0
}

// IsFull returns whether no option can be added.
func (m SelectMenu) IsFull() bool {
	return len(m.Options) >= MaxMenuOptions
}

// Add appends an option. It returns false, leaving the menu unchanged, when
// the menu is full.
func (m *SelectMenu) Add(label, value string) bool {
	if m.IsFull() {
		return false
	}
	m.Options = append(m.Options, SelectOption{Label: label, Value: value})
	return true
}
