// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package film

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cinelog/cinelog/internal/access"
	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/constants"
	"github.com/cinelog/cinelog/pkg/pagination"
)

// # Service Layer

// Service is the film resolution engine.
//
// It chains three lookup tiers with strict short-circuit ordering: the
// user's own collection, the shared local cache, then the external catalog.
// External hits are written back to the cache on a detached goroutine that
// the response path never waits for.
type Service struct {
	repository Repository
	catalog    ExternalCatalog
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, catalog ExternalCatalog, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		catalog:    catalog,
		logger:     logger,
	}
}

// # Resolution

/*
Get resolves a film or the season entries of a series by catalog id.

Description: Tiers are consulted in order and the first hit wins:

 1. the requester's collection (personalization populated);
 2. the shared local cache;
 3. the external catalog — a series fans out to all its seasons, each
    converted to the stored entry form before being returned, a plain film
    resolves to a single entry.

External hits are cached on a detached goroutine; a failed cache write is
logged and never surfaces to the caller. A failing season conversion,
however, aborts the whole request.

Parameters:
  - ctx: context.Context
  - identity: access.Identity (the authenticated requester)
  - filmID: string (base catalog id)
  - isSeries: bool (requests the season fan-out on external resolution)

Returns:
  - []*Film: One entry for a film, one per season for a series
  - error: apperr.NotFound when no tier resolves, upstream or storage failures
*/
func (service *Service) Get(ctx context.Context, identity access.Identity, filmID string, isSeries bool) ([]*Film, error) {
	filter := &Filter{FilmIDs: []string{filmID}}

	// Tier 1: the requester's own collection.
	films, err := service.repository.Search(ctx, filter, identity.UserID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("film_service_get_scoped_failed: %w", err)
	}
	if len(films) > 0 {
		return films, nil
	}

	// Tier 2: the shared local cache.
	films, err = service.repository.Search(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("film_service_get_unscoped_failed: %w", err)
	}
	if len(films) > 0 {
		return films, nil
	}

	// Tier 3: the external catalog.
	if isSeries {
		seasons, err := service.catalog.GetAllSeasons(ctx, filmID)
		if err != nil {
			return nil, fmt.Errorf("film_service_get_seasons_failed: %w", err)
		}
		if len(seasons) == 0 {
			return nil, apperr.NotFound("Film")
		}
		for _, season := range seasons {
			if err := TransformSeries(season); err != nil {
				return nil, err
			}
		}
		service.cacheDetached(seasons)
		return seasons, nil
	}

	film, err := service.catalog.Get(ctx, filmID)
	if err != nil {
		return nil, fmt.Errorf("film_service_get_external_failed: %w", err)
	}
	if film == nil {
		return nil, apperr.NotFound("Film")
	}
	service.cacheDetached([]*Film{film})
	return []*Film{film}, nil
}

/*
ExternalSearch runs a catalog-wide search with the given criteria.

Description: A name criterion routes through the catalog's text search and
the remaining criteria are applied to the result in memory; without a name
every criterion is forwarded to the parametric endpoint. An empty criteria
set short-circuits to an empty result without touching the catalog.

For an authenticated requester each candidate is marked AlreadyAdded when
its base id is present in the requester's collection, composite season ids
normalized on both sides.

Parameters:
  - ctx: context.Context
  - identity: *access.Identity (nil for anonymous search)
  - filter: *APIFilter

Returns:
  - []*Film: Catalog candidates, never nil
  - error: Upstream or storage failures
*/
func (service *Service) ExternalSearch(ctx context.Context, identity *access.Identity, filter *APIFilter) ([]*Film, error) {
	if filter == nil || filter.IsEmpty() {
		return []*Film{}, nil
	}

	var results []*Film
	var err error

	if filter.has(FieldName) {
		results, err = service.catalog.SearchByName(ctx, *filter.Name, filter)
		if err != nil {
			return nil, fmt.Errorf("film_service_search_by_name_failed: %w", err)
		}
		// The text endpoint only understands the name; narrow the rest here.
		remaining := filter.Filter
		remaining.Name = nil
		results = remaining.Apply(results)
	} else {
		results, err = service.catalog.SearchByFilters(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("film_service_search_by_filters_failed: %w", err)
		}
	}

	if identity != nil {
		if err := service.markAlreadyAdded(ctx, *identity, results); err != nil {
			return nil, err
		}
	}

	if results == nil {
		results = []*Film{}
	}
	return results, nil
}

// markAlreadyAdded flags candidates whose base id the user already tracks.
func (service *Service) markAlreadyAdded(ctx context.Context, identity access.Identity, candidates []*Film) error {
	if len(candidates) == 0 {
		return nil
	}

	baseIDs := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		baseIDs = append(baseIDs, BaseID(candidate.FilmID))
	}

	tracked, err := service.repository.Search(ctx, &Filter{FilmIDs: baseIDs}, identity.UserID, 0, 0)
	if err != nil {
		return fmt.Errorf("film_service_mark_added_failed: %w", err)
	}

	owned := make(map[string]struct{}, len(tracked))
	for _, film := range tracked {
		owned[BaseID(film.FilmID)] = struct{}{}
	}
	for _, candidate := range candidates {
		if _, ok := owned[BaseID(candidate.FilmID)]; ok {
			candidate.AlreadyAdded = true
		}
	}
	return nil
}

/*
LocalSearch searches the requester's collection with pagination.

Parameters:
  - ctx: context.Context
  - identity: access.Identity
  - filter: *APIFilter (criteria plus Page/Limit)

Returns:
  - []*Film: The user's matching films, personalization populated
  - error: Storage failures
*/
func (service *Service) LocalSearch(ctx context.Context, identity access.Identity, filter *APIFilter) ([]*Film, error) {
	page, limit := pagination.DefaultPage, pagination.DefaultLimit
	if filter.Page != nil {
		page = *filter.Page
	}
	if filter.Limit != nil && *filter.Limit <= pagination.MaxLimit {
		limit = *filter.Limit
	}

	films, err := service.repository.Search(ctx, &filter.Filter, identity.UserID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("film_service_local_search_failed: %w", err)
	}
	return films, nil
}

// # Collection Management

/*
AddToUnwatched attaches a film to the requester's collection, unwatched.

Description: When the film is not cached yet (the detached cache write of a
previous lookup may still be in flight, or never happened) it is resolved
from the catalog and cached synchronously, then the attach is retried once.
*/
func (service *Service) AddToUnwatched(ctx context.Context, identity access.Identity, filmID string) error {
	err := service.repository.AddToUnwatched(ctx, identity.UserID, filmID)
	if err == nil {
		service.logger.Info("film_added_to_unwatched",
			slog.String("user_id", identity.UserID), slog.String("film_id", filmID))
		return nil
	}
	if !apperr.IsNotFound(err) {
		return fmt.Errorf("film_service_add_unwatched_failed: %w", err)
	}

	if err := service.resolveAndCache(ctx, filmID); err != nil {
		return err
	}
	if err := service.repository.AddToUnwatched(ctx, identity.UserID, filmID); err != nil {
		return fmt.Errorf("film_service_add_unwatched_retry_failed: %w", err)
	}

	service.logger.Info("film_added_to_unwatched",
		slog.String("user_id", identity.UserID), slog.String("film_id", filmID))
	return nil
}

// resolveAndCache fetches an uncached entry from the catalog and stores it
// synchronously. A composite season id fans out to the full series so every
// sibling season lands in the cache with it.
func (service *Service) resolveAndCache(ctx context.Context, filmID string) error {
	baseID := BaseID(filmID)

	if baseID != filmID {
		seasons, err := service.catalog.GetAllSeasons(ctx, baseID)
		if err != nil {
			return fmt.Errorf("film_service_resolve_seasons_failed: %w", err)
		}
		for _, season := range seasons {
			if err := TransformSeries(season); err != nil {
				return err
			}
			if err := service.repository.Insert(ctx, season); err != nil {
				return fmt.Errorf("film_service_resolve_cache_failed: %w", err)
			}
		}
		return nil
	}

	film, err := service.catalog.Get(ctx, filmID)
	if err != nil {
		return fmt.Errorf("film_service_resolve_failed: %w", err)
	}
	if film == nil {
		return apperr.NotFound("Film")
	}
	if err := service.repository.Insert(ctx, film); err != nil {
		return fmt.Errorf("film_service_resolve_cache_failed: %w", err)
	}
	return nil
}

// SetWatchStatus flips the watched flag on a film in the requester's collection.
func (service *Service) SetWatchStatus(ctx context.Context, identity access.Identity, filmID string, watched bool) error {
	if err := service.repository.SetWatchStatus(ctx, identity.UserID, filmID, watched); err != nil {
		return fmt.Errorf("film_service_set_watch_status_failed: %w", err)
	}
	return nil
}

// SetRating replaces the requester's multi-aspect rating of a film.
func (service *Service) SetRating(ctx context.Context, identity access.Identity, filmID string, rating *ComplexRating) error {
	if aspect, ok := rating.Validate(); !ok {
		return apperr.ValidationError(fmt.Sprintf("rating aspect %q is out of scale", aspect))
	}
	if err := service.repository.SetRating(ctx, identity.UserID, filmID, rating); err != nil {
		return fmt.Errorf("film_service_set_rating_failed: %w", err)
	}
	return nil
}

// Remove detaches a film from the requester's collection.
func (service *Service) Remove(ctx context.Context, identity access.Identity, filmID string) error {
	if err := service.repository.Remove(ctx, identity.UserID, filmID); err != nil {
		return fmt.Errorf("film_service_remove_failed: %w", err)
	}
	service.logger.Info("film_removed",
		slog.String("user_id", identity.UserID), slog.String("film_id", filmID))
	return nil
}

// GetList returns the requester's films in one watch state.
func (service *Service) GetList(ctx context.Context, identity access.Identity, watched bool) ([]*Film, error) {
	films, err := service.repository.ListByWatchStatus(ctx, identity.UserID, watched)
	if err != nil {
		return nil, fmt.Errorf("film_service_get_list_failed: %w", err)
	}
	return films, nil
}

// GetAll returns the requester's whole collection.
func (service *Service) GetAll(ctx context.Context, identity access.Identity) ([]*Film, error) {
	films, err := service.repository.ListAll(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("film_service_get_all_failed: %w", err)
	}
	return films, nil
}

// # Detached Cache-Back

// cacheDetached schedules a best-effort cache write for external results.
//
// The goroutine runs on its own deadline, detached from the request
// context. Per-film failures are collected and logged together; nothing is
// retried and nothing reaches the user.
func (service *Service) cacheDetached(films []*Film) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.CacheWriteTimeout)
		defer cancel()

		var failures []error
		for _, film := range films {
			if err := service.repository.Insert(ctx, film); err != nil {
				failures = append(failures, fmt.Errorf("cache %s: %w", film.FilmID, err))
			}
		}
		if err := errors.Join(failures...); err != nil {
			service.logger.Error("film_cache_write_failed",
				slog.Int("films", len(films)),
				slog.String("error", err.Error()),
			)
		}
	}()
}
