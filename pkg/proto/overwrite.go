package proto

// Permission is a bit set of channel permissions.
type Permission uint64

// PermissionViewChannel allows seeing a channel.
const PermissionViewChannel Permission = 1 << 10

// OverwriteKind is the kind of target of an overwrite.
type OverwriteKind int

// Overwrite targets.
const (
	OverwriteRole OverwriteKind = iota
	OverwriteMember
)

// String implements fmt.Stringer.
func (k OverwriteKind) String() string {
	switch k {
	case OverwriteRole:
		return "role"
	case OverwriteMember:
		return "member"
	}
	return "unknown"
}

// Overwrite grants and denies permissions on a channel to a role or a member.
type Overwrite struct {
	Target ID
	Kind   OverwriteKind
	Allow  Permission
	Deny   Permission
}

// MemberOverwrite returns an overwrite allowing the user to see a channel.
func MemberOverwrite(user ID) Overwrite {
	return Overwrite{
		Target: user,
		Kind:   OverwriteMember,
		Allow:  PermissionViewChannel,
	}
}
