// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package film

import "context"

// Repository defines the local data access contract for the film domain.
//
// # Architecture
//
// The Postgres implementation lives in store_postgres.go — the interface
// lives here because the service layer (the consumer) defines what it needs.
// Scoped methods take the acting user's id and hydrate the per-user
// personalization fields; Search with an empty scope is the unscoped shared
// catalog view.
type Repository interface {
	// Search returns films matching the filter.
	//
	// With a non-empty scopeUserID only films tracked by that user are
	// returned, with IsWatched, UserRating, and AddedAt populated. limit <= 0
	// disables pagination.
	Search(ctx context.Context, filter *Filter, scopeUserID string, limit, offset int) ([]*Film, error)

	// Insert persists a catalog entry if no row with its id exists yet.
	// Inserting an already cached film is a no-op, not an error.
	Insert(ctx context.Context, film *Film) error

	// AddToUnwatched attaches a film to the user's collection in the
	// unwatched state. Returns ErrNotFound if the film is not cached,
	// Conflict if the pair already exists.
	AddToUnwatched(ctx context.Context, userID, filmID string) error

	// SetWatchStatus flips the watched flag on an existing user-film pair.
	SetWatchStatus(ctx context.Context, userID, filmID string, watched bool) error

	// SetRating replaces the user's multi-aspect rating wholesale.
	SetRating(ctx context.Context, userID, filmID string, rating *ComplexRating) error

	// Remove detaches a film from the user's collection. The shared catalog
	// entry is untouched.
	Remove(ctx context.Context, userID, filmID string) error

	// ListByWatchStatus returns the user's films in the given watch state,
	// most recently added first.
	ListByWatchStatus(ctx context.Context, userID string, watched bool) ([]*Film, error)

	// ListAll returns every film the user tracks, most recently added first.
	ListAll(ctx context.Context, userID string) ([]*Film, error)
}

// ExternalCatalog is the outbound contract to the film metadata provider.
//
// Implementations live in internal/catalog. Calls are fallible and are not
// retried; the resolution engine treats an upstream failure in one tier as
// terminal for that tier only.
type ExternalCatalog interface {
	// Get fetches a single entry by catalog id.
	Get(ctx context.Context, id string) (*Film, error)

	// SearchByName runs the catalog's text search. Non-name criteria on the
	// filter are NOT forwarded; the caller narrows the result in memory.
	SearchByName(ctx context.Context, name string, filter *APIFilter) ([]*Film, error)

	// SearchByFilters runs the catalog's parametric search with every
	// encodable criterion forwarded.
	SearchByFilters(ctx context.Context, filter *APIFilter) ([]*Film, error)

	// GetAllSeasons fetches the per-season entries of a series, untransformed.
	GetAllSeasons(ctx context.Context, id string) ([]*Film, error)
}
