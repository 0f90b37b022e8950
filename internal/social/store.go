// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package social

import "context"

// Repository defines the data access contract for the community surface.
//
// Stores answer without regard to visibility; the service applies the access
// rules before and after every call.
type Repository interface {
	// GetProfile returns the full profile, or NotFound.
	GetProfile(ctx context.Context, userID string) (*Profile, error)

	// SearchProfiles returns previews whose username matches the fuzzy
	// pattern, capped at limit.
	SearchProfiles(ctx context.Context, username string, limit int) ([]*Preview, error)

	// UpdateProfile persists the mutable profile fields.
	UpdateProfile(ctx context.Context, p *Profile) error

	// ListSubscribers returns previews of users following userID.
	ListSubscribers(ctx context.Context, userID string) ([]*Preview, error)

	// ListSubscribed returns previews of users userID follows.
	ListSubscribed(ctx context.Context, userID string) ([]*Preview, error)

	// IsSubscribed reports whether the directed edge exists.
	IsSubscribed(ctx context.Context, subscriberID, subscribedID string) (bool, error)

	// CreateSubscription inserts the directed edge. A duplicate maps to
	// Conflict, a missing target to NotFound.
	CreateSubscription(ctx context.Context, subscriberID, subscribedID string) error

	// DeleteSubscription removes the edge, or NotFound when absent.
	DeleteSubscription(ctx context.Context, subscriberID, subscribedID string) error

	// InsertAction appends one history entry.
	InsertAction(ctx context.Context, entry *HistoryEntry) error

	// ListActions returns the newest entries first, capped at limit.
	ListActions(ctx context.Context, userID string, limit int) ([]*HistoryEntry, error)
}
