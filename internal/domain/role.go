package domain

// Role is the access level assigned to a participant.
type Role int

const (
	RoleUser Role = iota
	RoleOrganiser
	RoleAdmin
)

// String returns the canonical name of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "USER"
	case RoleOrganiser:
		return "ORGANISER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleOrganiser || r == RoleAdmin
}

// ParseRole converts a role name to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "USER":
		return RoleUser, nil
	case "ORGANISER":
		return RoleOrganiser, nil
	case "ADMIN":
		return RoleAdmin, nil
	default:
		return RoleUser, ErrInvalidRole
	}
}
