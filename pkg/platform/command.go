package platform

// OptionType is the type of a command option.
type OptionType int

// Option types.
const (
	OptionString OptionType = iota + 1
	OptionInteger
	OptionChannel
)

// OptionSpec describes a command option.
type OptionSpec struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool
	// MinValue and MaxValue bound integer options. A zero MaxValue leaves
	// the option unbounded above.
	MinValue *float64
	MaxValue float64
}

// CommandSpec describes a slash command, or a subcommand when it is nested.
type CommandSpec struct {
	Name        string
	Description string
	Options     []OptionSpec
	Subcommands []CommandSpec
	// AdminOnly restricts the command to members that can manage the guild.
	AdminOnly bool
}
