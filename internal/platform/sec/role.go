// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access; bypasses ownership checks everywhere.
	RoleAdmin UserRole = "admin"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Profile Visibility

// ProfileStatus is the account-wide visibility switch. It gates who may view
// a profile and its subscription lists, and whether the account accepts new
// subscribers.
type ProfileStatus string

const (
	StatusPublic  ProfileStatus = "public"
	StatusPrivate ProfileStatus = "private"
)

// IsPublic reports whether the status exposes the profile to everyone.
func (s ProfileStatus) IsPublic() bool {
	return s == StatusPublic
}
