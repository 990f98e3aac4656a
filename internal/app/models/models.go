package models

// Role defines the role of an account
type Role string

const (
	// RoleAdmin is the administrator role
	RoleAdmin Role = "admin"
	// RoleUser is the regular user role
	RoleUser Role = "user"
)

// IsValid reports whether the role is one of the two known values
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}
