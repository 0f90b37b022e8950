// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package playlist

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/cinelog/cinelog/internal/access"
	"github.com/cinelog/cinelog/internal/film"
	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/pkg/pagination"
	"github.com/cinelog/cinelog/pkg/pointer"
	"github.com/cinelog/cinelog/pkg/slice"
	uuidv7 "github.com/cinelog/cinelog/pkg/uuid"
)

// FilmSearcher is the slice of the film engine that autofill needs.
type FilmSearcher interface {
	LocalSearch(ctx context.Context, identity access.Identity, filter *film.APIFilter) ([]*film.Film, error)
}

// ActionRecorder appends an entry to a user's action history. Recording is
// best-effort: playlist operations never fail because history could not be
// written.
type ActionRecorder interface {
	RecordAction(ctx context.Context, userID, name string, attributes map[string]any) error
}

// # Service Layer

// Service orchestrates playlist business logic on top of the access rules.
type Service struct {
	repository Repository
	films      FilmSearcher
	actions    ActionRecorder
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, films FilmSearcher, actions ActionRecorder, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		films:      films,
		actions:    actions,
		logger:     logger,
	}
}

// loadReadable fetches a playlist through the read gate.
//
// A denial is reported as NotFound, never Forbidden: private playlists must
// be indistinguishable from absent ones.
func (service *Service) loadReadable(ctx context.Context, identity access.Identity, playlistID string) (*Playlist, error) {
	p, err := service.repository.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if !identity.CanReadPlaylist(p.UserID, p.Collaborators, p.IsPublic) {
		return nil, apperr.NotFound("Playlist")
	}
	return p, nil
}

// loadOwned fetches a playlist for a mutating operation: unreadable masks
// as NotFound, readable-but-not-owned fails visibly.
func (service *Service) loadOwned(ctx context.Context, identity access.Identity, playlistID string) (*Playlist, error) {
	p, err := service.loadReadable(ctx, identity, playlistID)
	if err != nil {
		return nil, err
	}
	if !identity.IsOwner(p.UserID) {
		return nil, apperr.Forbidden("Only the owner may modify this playlist")
	}
	return p, nil
}

// # Lifecycle

// CreateInput defines the fields accepted when creating a playlist.
type CreateInput struct {
	Name          string
	Description   *string
	IsPublic      bool
	GenAttrs      *film.Filter
	Collaborators []string
}

/*
Create persists a new playlist owned by the requester.

Description: An auto-filling playlist (GenAttrs set) without an explicit
description gets one generated from its saved filter. The creation is
recorded in the owner's action history.

Parameters:
  - ctx: context.Context
  - identity: access.Identity
  - input: CreateInput

Returns:
  - *Playlist: The persisted playlist
  - error: Validation or storage failures
*/
func (service *Service) Create(ctx context.Context, identity access.Identity, input CreateInput) (*Playlist, error) {
	collaborators := slices.DeleteFunc(slices.Clone(input.Collaborators), func(id string) bool {
		return id == identity.UserID
	})

	p := &Playlist{
		PlaylistID:    uuidv7.New(),
		UserID:        identity.UserID,
		Name:          input.Name,
		Description:   input.Description,
		IsPublic:      input.IsPublic,
		GenAttrs:      input.GenAttrs,
		Collaborators: collaborators,
	}

	if p.GenAttrs != nil && p.Description == nil {
		p.Description = pointer.To(DescribeFilter(p.GenAttrs))
	}

	if err := service.repository.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("playlist_service_create_failed: %w", err)
	}

	service.recordAction(ctx, identity.UserID, "playlist_created", map[string]any{
		"playlist_id": p.PlaylistID,
		"name":        p.Name,
	})
	service.logger.Info("playlist_created",
		slog.String("playlist_id", p.PlaylistID), slog.String("user_id", identity.UserID))

	return p, nil
}

// Get returns one playlist through the read gate.
func (service *Service) Get(ctx context.Context, identity access.Identity, playlistID string) (*Playlist, error) {
	return service.loadReadable(ctx, identity, playlistID)
}

/*
GetByOwner lists a user's playlists, narrowed to what the requester may see.

Description: The owner (and an admin) sees everything; anyone else sees
public playlists plus those they collaborate on.
*/
func (service *Service) GetByOwner(ctx context.Context, identity access.Identity, ownerID string) ([]*Playlist, error) {
	playlists, err := service.repository.List(ctx, ListFilter{OwnerID: &ownerID})
	if err != nil {
		return nil, fmt.Errorf("playlist_service_get_by_owner_failed: %w", err)
	}
	if identity.IsOwner(ownerID) || identity.IsAdmin() {
		return playlists, nil
	}

	return slice.Filter(playlists, func(p *Playlist) bool {
		return identity.CanReadPlaylist(p.UserID, p.Collaborators, p.IsPublic)
	}), nil
}

// Search lists readable playlists matching the filter.
func (service *Service) Search(ctx context.Context, identity access.Identity, filter ListFilter) ([]*Playlist, error) {
	playlists, err := service.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("playlist_service_search_failed: %w", err)
	}

	return slice.Filter(playlists, func(p *Playlist) bool {
		return identity.CanReadPlaylist(p.UserID, p.Collaborators, p.IsPublic)
	}), nil
}

// Delete removes a playlist and its items. Owner only.
func (service *Service) Delete(ctx context.Context, identity access.Identity, playlistID string) error {
	p, err := service.loadOwned(ctx, identity, playlistID)
	if err != nil {
		return err
	}
	if err := service.repository.Delete(ctx, p.PlaylistID); err != nil {
		return fmt.Errorf("playlist_service_delete_failed: %w", err)
	}

	service.logger.Info("playlist_deleted",
		slog.String("playlist_id", playlistID), slog.String("user_id", identity.UserID))
	return nil
}

// # Metadata

// Rename changes the playlist name. Owner only.
func (service *Service) Rename(ctx context.Context, identity access.Identity, playlistID, name string) (*Playlist, error) {
	p, err := service.loadOwned(ctx, identity, playlistID)
	if err != nil {
		return nil, err
	}
	p.Name = name
	if err := service.repository.UpdateMeta(ctx, p); err != nil {
		return nil, fmt.Errorf("playlist_service_rename_failed: %w", err)
	}
	return p, nil
}

// SetDescription replaces the description. Owner only.
func (service *Service) SetDescription(ctx context.Context, identity access.Identity, playlistID string, description *string) (*Playlist, error) {
	p, err := service.loadOwned(ctx, identity, playlistID)
	if err != nil {
		return nil, err
	}
	p.Description = description
	if err := service.repository.UpdateMeta(ctx, p); err != nil {
		return nil, fmt.Errorf("playlist_service_set_description_failed: %w", err)
	}
	return p, nil
}

// SetPublicity flips the public flag. Owner only.
func (service *Service) SetPublicity(ctx context.Context, identity access.Identity, playlistID string, isPublic bool) (*Playlist, error) {
	p, err := service.loadOwned(ctx, identity, playlistID)
	if err != nil {
		return nil, err
	}
	p.IsPublic = isPublic
	if err := service.repository.UpdateMeta(ctx, p); err != nil {
		return nil, fmt.Errorf("playlist_service_set_publicity_failed: %w", err)
	}
	return p, nil
}

// # Collaborators

/*
AddCollaborator grants a user contribution rights. Owner only.

Edge cases: the owner cannot be their own collaborator; adding a user twice
fails with Conflict and leaves the set untouched.
*/
func (service *Service) AddCollaborator(ctx context.Context, identity access.Identity, playlistID, collaboratorID string) (*Playlist, error) {
	p, err := service.loadOwned(ctx, identity, playlistID)
	if err != nil {
		return nil, err
	}
	if collaboratorID == p.UserID {
		return nil, apperr.ValidationError("The owner is not a collaborator")
	}
	if slices.Contains(p.Collaborators, collaboratorID) {
		return nil, apperr.Conflict("User is already a collaborator")
	}

	p.Collaborators = append(p.Collaborators, collaboratorID)
	if err := service.repository.SetCollaborators(ctx, p.PlaylistID, p.Collaborators); err != nil {
		return nil, fmt.Errorf("playlist_service_add_collaborator_failed: %w", err)
	}
	return p, nil
}

// RemoveCollaborator revokes contribution rights. Owner only; removing a
// user who is not a collaborator fails with NotFound.
func (service *Service) RemoveCollaborator(ctx context.Context, identity access.Identity, playlistID, collaboratorID string) (*Playlist, error) {
	p, err := service.loadOwned(ctx, identity, playlistID)
	if err != nil {
		return nil, err
	}
	index := slices.Index(p.Collaborators, collaboratorID)
	if index < 0 {
		return nil, apperr.NotFound("Collaborator")
	}

	p.Collaborators = slices.Delete(p.Collaborators, index, index+1)
	if err := service.repository.SetCollaborators(ctx, p.PlaylistID, p.Collaborators); err != nil {
		return nil, fmt.Errorf("playlist_service_remove_collaborator_failed: %w", err)
	}
	return p, nil
}

// # Content

/*
Content returns the playlist's items, autofilling first when applicable.

Description: Autofill runs only when the playlist carries a saved filter
AND the requester is the owner: the stored filter is re-run against the
owner's film collection, films already present are excluded, and the
remainder is inserted before listing. Collaborator and public reads never
mutate the playlist.

Parameters:
  - ctx: context.Context
  - identity: access.Identity
  - playlistID: string

Returns:
  - []*Item: The playlist content, oldest first
  - error: Masked NotFound, storage or search failures
*/
func (service *Service) Content(ctx context.Context, identity access.Identity, playlistID string) ([]*Item, error) {
	p, err := service.loadReadable(ctx, identity, playlistID)
	if err != nil {
		return nil, err
	}

	if p.GenAttrs != nil && identity.IsOwner(p.UserID) {
		if err := service.autofill(ctx, p); err != nil {
			return nil, err
		}
	}

	items, err := service.repository.ListItems(ctx, p.PlaylistID)
	if err != nil {
		return nil, fmt.Errorf("playlist_service_content_failed: %w", err)
	}
	return items, nil
}

// autofill inserts the owner's films matching the saved filter that the
// playlist does not contain yet.
func (service *Service) autofill(ctx context.Context, p *Playlist) error {
	matches, err := service.films.LocalSearch(ctx,
		access.Identity{UserID: p.UserID},
		&film.APIFilter{Filter: *p.GenAttrs, Limit: pointer.To(pagination.MaxLimit)},
	)
	if err != nil {
		return fmt.Errorf("playlist_service_autofill_search_failed: %w", err)
	}

	existing, err := service.repository.ListItems(ctx, p.PlaylistID)
	if err != nil {
		return fmt.Errorf("playlist_service_autofill_list_failed: %w", err)
	}
	present := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		present[item.FilmID] = struct{}{}
	}

	var missing []*Item
	for _, match := range matches {
		if _, ok := present[match.FilmID]; ok {
			continue
		}
		missing = append(missing, &Item{
			PlaylistID: p.PlaylistID,
			FilmID:     match.FilmID,
			CreatorID:  p.UserID,
		})
	}
	if len(missing) == 0 {
		return nil
	}

	if err := service.repository.AddItems(ctx, missing); err != nil {
		return fmt.Errorf("playlist_service_autofill_insert_failed: %w", err)
	}
	service.logger.Info("playlist_autofilled",
		slog.String("playlist_id", p.PlaylistID), slog.Int("added", len(missing)))
	return nil
}

/*
AddItem attaches a film to the playlist.

Description: Owner and collaborators may contribute; the acting user is
stored as the item's creator. A film already present fails with Conflict.
*/
func (service *Service) AddItem(ctx context.Context, identity access.Identity, playlistID, filmID string) (*Item, error) {
	p, err := service.loadReadable(ctx, identity, playlistID)
	if err != nil {
		return nil, err
	}
	if !identity.CanContribute(p.UserID, p.Collaborators) {
		return nil, apperr.Forbidden("Only the owner and collaborators may add films")
	}

	item := &Item{
		PlaylistID: p.PlaylistID,
		FilmID:     filmID,
		CreatorID:  identity.UserID,
	}
	if err := service.repository.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("playlist_service_add_item_failed: %w", err)
	}
	return item, nil
}

/*
RemoveItem detaches a film from the playlist.

Description: Allowed for the playlist owner and for the item's stored
creator, including a creator who has since been removed from the
collaborator set.
*/
func (service *Service) RemoveItem(ctx context.Context, identity access.Identity, playlistID, filmID string) error {
	p, err := service.loadReadable(ctx, identity, playlistID)
	if err != nil {
		return err
	}

	item, err := service.repository.GetItem(ctx, p.PlaylistID, filmID)
	if err != nil {
		return err
	}
	if !identity.IsOwner(p.UserID) && !identity.IsCreator(item.CreatorID) {
		return apperr.Forbidden("Only the owner or the item's creator may remove it")
	}

	if err := service.repository.RemoveItem(ctx, p.PlaylistID, filmID); err != nil {
		return fmt.Errorf("playlist_service_remove_item_failed: %w", err)
	}
	return nil
}

// recordAction writes history best-effort; failures are logged only.
func (service *Service) recordAction(ctx context.Context, userID, name string, attributes map[string]any) {
	if service.actions == nil {
		return
	}
	if err := service.actions.RecordAction(ctx, userID, name, attributes); err != nil {
		service.logger.Warn("playlist_action_record_failed",
			slog.String("action", name), slog.String("error", err.Error()))
	}
}
