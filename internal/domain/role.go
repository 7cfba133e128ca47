package domain

import "strings"

// Role is the closed set of authorization levels the dashboard knows about.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleGuest      Role = "guest"
)

// ParseRole maps a raw role string onto the closed enum. Unrecognized
// values return ok=false so callers can report the offending string
// instead of falling through to a default.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.TrimSpace(raw)) {
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	case RoleGuest:
		return RoleGuest, true
	}
	return RoleGuest, false
}

// AuthorizedUser is a row of the authorized_users table. The role field is
// kept raw here; parsing happens at dispatch time.
type AuthorizedUser struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
