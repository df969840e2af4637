// Package entity contains the core business objects of the project.
package entity

// Role represents the access level carried in an access token.
type Role string

const (
	// RoleUser is the default role assigned on registration.
	RoleUser Role = "user"
	// RoleAdmin is assigned explicitly through the profile service's admin surface.
	RoleAdmin Role = "admin"
	// RoleService identifies service-to-service credentials, not end users.
	RoleService Role = "service"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleService:
		return true
	default:
		return false
	}
}

// IsAssignable reports whether the role may be stored on a user profile.
// Service credentials are minted from configuration, never stored on a profile.
func (r Role) IsAssignable() bool {
	return r == RoleUser || r == RoleAdmin
}
