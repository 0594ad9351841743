package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of employee roles. Role checks go through the type,
// never raw string comparison.
type Role string

const (
	RoleGeneral    Role = "GENERAL"
	RolePrivileged Role = "PRIVILEGED"
)

// ParseRole normalizes and validates a role string.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleGeneral:
		return RoleGeneral, nil
	case RolePrivileged:
		return RolePrivileged, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGeneral, RolePrivileged:
		return true
	default:
		return false
	}
}

// Privileged reports whether r may manage other employees' records and
// process leave requests.
func (r Role) Privileged() bool {
	return r == RolePrivileged
}

func (r Role) String() string {
	return string(r)
}
