// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Manages users, event types and every event
	RoleAdmin UserRole = "admin"

	// Default role for self-registered accounts
	RoleUser UserRole = "user"
)

// ParseRole maps a stored role string to a [UserRole]. Unknown values fall back to [RoleUser].
func ParseRole(value string) UserRole {
	switch UserRole(value) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
