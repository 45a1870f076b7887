package enum

// UserRole is the access level of a staff account
type UserRole string

const (
	UserRoleOwner     UserRole = "owner"
	UserRoleAttendant UserRole = "attendant"
)

func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether r is a known role
func (r UserRole) IsValid() bool {
	return r == UserRoleOwner || r == UserRoleAttendant
}
