// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package playlist

import "context"

// Repository defines the data access contract for playlists and their items.
//
// # Architecture
//
// The Postgres implementation lives in store_postgres.go. Item uniqueness
// per (playlist, film) is a storage constraint; the service translates the
// resulting conflict into the domain answer.
type Repository interface {
	// Create persists a new playlist. The caller sets the id.
	Create(ctx context.Context, p *Playlist) error

	// FindByID returns the playlist regardless of visibility.
	//
	// Visibility is the service's concern; the store never masks.
	FindByID(ctx context.Context, id string) (*Playlist, error)

	// List returns playlists matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]*Playlist, error)

	// UpdateMeta persists the mutable metadata fields (name, description,
	// publicity) and refreshes the updated timestamp.
	UpdateMeta(ctx context.Context, p *Playlist) error

	// SetCollaborators replaces the collaborator set wholesale.
	SetCollaborators(ctx context.Context, id string, collaborators []string) error

	// Delete removes the playlist and its items atomically.
	Delete(ctx context.Context, id string) error

	// AddItem inserts one item and bumps the addition counter atomically.
	// A duplicate (playlist, film) pair maps to Conflict.
	AddItem(ctx context.Context, item *Item) error

	// AddItems inserts a batch in one transaction, used by autofill.
	AddItems(ctx context.Context, items []*Item) error

	// GetItem returns one item, or NotFound.
	GetItem(ctx context.Context, playlistID, filmID string) (*Item, error)

	// RemoveItem deletes one item, or NotFound when absent.
	RemoveItem(ctx context.Context, playlistID, filmID string) error

	// ListItems returns the playlist's items, oldest additions first.
	ListItems(ctx context.Context, playlistID string) ([]*Item, error)
}
