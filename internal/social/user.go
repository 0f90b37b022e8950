// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package social implements the community surface: user profiles, the directed
subscription graph, and per-user action history.

# Architecture

Profile visibility is gated by the account's public/private status. Unlike
playlists, a denied profile read answers with a visible Forbidden; the
account's existence is not a secret, only its content.
*/
package social

import (
	"time"

	"github.com/cinelog/cinelog/internal/platform/sec"
)

// # Domain Entities

// Profile is the full view of a user account, minus credentials.
type Profile struct {
	UserID    string            `json:"user_id"`
	Username  string            `json:"username"`
	Bio       *string           `json:"bio,omitempty"`
	Location  *string           `json:"location,omitempty"`
	BirthDate *time.Time        `json:"birth_date,omitempty"`
	Email     *string           `json:"email,omitempty"`
	Avatar    *string           `json:"avatar,omitempty"`
	Role      sec.UserRole      `json:"role"`
	Status    sec.ProfileStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// Preview is the reduced card shown in search results and subscription lists.
type Preview struct {
	UserID   string            `json:"user_id"`
	Username string            `json:"username"`
	Avatar   *string           `json:"avatar,omitempty"`
	Status   sec.ProfileStatus `json:"status"`
}

// HistoryEntry is one recorded user action. Attributes is a free-form bag of
// event parameters (playlist ids, target users).
type HistoryEntry struct {
	ActionID   string         `json:"action_id"`
	UserID     string         `json:"user_id"`
	Name       string         `json:"name"`
	Date       time.Time      `json:"date"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// current value untouched.
type ProfileUpdate struct {
	Username  *string    `json:"username"`
	Bio       *string    `json:"bio"`
	Location  *string    `json:"location"`
	BirthDate *time.Time `json:"birth_date"`
	Avatar    *string    `json:"avatar"`
}
