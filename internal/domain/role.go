package domain

import "strings"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleScheduler Role = "scheduler"
	RoleDriver    Role = "driver"
)

// ParseRole normalizes a role name and reports whether it is known.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleScheduler, RoleDriver:
		return r, true
	}
	return "", false
}

// CanBook reports whether the role may create and delete bookings.
func (r Role) CanBook() bool {
	return r == RoleAdmin || r == RoleScheduler
}

// Caller is the identity attached to a request by the access-control layer.
type Caller struct {
	UserID int64
	Role   Role
}

func (c Caller) IsDriver() bool { return c.Role == RoleDriver }
