// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package film_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/access"
	"github.com/cinelog/cinelog/internal/film"
	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/sec"
)

// # Test Doubles

type fakeRepository struct {
	mu       sync.Mutex
	inserted []*film.Film

	searchFunc         func(filter *film.Filter, scopeUserID string) ([]*film.Film, error)
	addToUnwatchedFunc func(userID, filmID string) error
	setWatchStatusFunc func(userID, filmID string, watched bool) error
	setRatingFunc      func(userID, filmID string, rating *film.ComplexRating) error
	removeFunc         func(userID, filmID string) error
	listFunc           func(userID string, watched *bool) ([]*film.Film, error)
}

func (r *fakeRepository) Search(_ context.Context, filter *film.Filter, scopeUserID string, _, _ int) ([]*film.Film, error) {
	if r.searchFunc == nil {
		return nil, nil
	}
	return r.searchFunc(filter, scopeUserID)
}

func (r *fakeRepository) Insert(_ context.Context, entry *film.Film) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserted = append(r.inserted, entry)
	return nil
}

func (r *fakeRepository) insertedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, len(r.inserted))
	for i, entry := range r.inserted {
		ids[i] = entry.FilmID
	}
	return ids
}

func (r *fakeRepository) AddToUnwatched(_ context.Context, userID, filmID string) error {
	if r.addToUnwatchedFunc == nil {
		return nil
	}
	return r.addToUnwatchedFunc(userID, filmID)
}

func (r *fakeRepository) SetWatchStatus(_ context.Context, userID, filmID string, watched bool) error {
	if r.setWatchStatusFunc == nil {
		return nil
	}
	return r.setWatchStatusFunc(userID, filmID, watched)
}

func (r *fakeRepository) SetRating(_ context.Context, userID, filmID string, rating *film.ComplexRating) error {
	if r.setRatingFunc == nil {
		return nil
	}
	return r.setRatingFunc(userID, filmID, rating)
}

func (r *fakeRepository) Remove(_ context.Context, userID, filmID string) error {
	if r.removeFunc == nil {
		return nil
	}
	return r.removeFunc(userID, filmID)
}

func (r *fakeRepository) ListByWatchStatus(_ context.Context, userID string, watched bool) ([]*film.Film, error) {
	if r.listFunc == nil {
		return nil, nil
	}
	return r.listFunc(userID, &watched)
}

func (r *fakeRepository) ListAll(_ context.Context, userID string) ([]*film.Film, error) {
	if r.listFunc == nil {
		return nil, nil
	}
	return r.listFunc(userID, nil)
}

type fakeCatalog struct {
	getFunc           func(id string) (*film.Film, error)
	searchByNameFunc  func(name string, filter *film.APIFilter) ([]*film.Film, error)
	searchFiltersFunc func(filter *film.APIFilter) ([]*film.Film, error)
	allSeasonsFunc    func(id string) ([]*film.Film, error)

	calls []string
}

func (c *fakeCatalog) Get(_ context.Context, id string) (*film.Film, error) {
	c.calls = append(c.calls, "get")
	if c.getFunc == nil {
		return nil, nil
	}
	return c.getFunc(id)
}

func (c *fakeCatalog) SearchByName(_ context.Context, name string, filter *film.APIFilter) ([]*film.Film, error) {
	c.calls = append(c.calls, "search_by_name")
	if c.searchByNameFunc == nil {
		return nil, nil
	}
	return c.searchByNameFunc(name, filter)
}

func (c *fakeCatalog) SearchByFilters(_ context.Context, filter *film.APIFilter) ([]*film.Film, error) {
	c.calls = append(c.calls, "search_by_filters")
	if c.searchFiltersFunc == nil {
		return nil, nil
	}
	return c.searchFiltersFunc(filter)
}

func (c *fakeCatalog) GetAllSeasons(_ context.Context, id string) ([]*film.Film, error) {
	c.calls = append(c.calls, "get_all_seasons")
	if c.allSeasonsFunc == nil {
		return nil, nil
	}
	return c.allSeasonsFunc(id)
}

func newTestService(repository *fakeRepository, catalog *fakeCatalog) *film.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return film.NewService(repository, catalog, logger)
}

func testIdentity() access.Identity {
	return access.Identity{UserID: "u-1", Role: sec.RoleUser, Status: sec.StatusPublic}
}

// # Resolution Tiers

func TestService_Get_OwnCollectionShortCircuits(t *testing.T) {
	watched := true
	owned := &film.Film{FilmID: "301", Name: "The Matrix", IsWatched: &watched}

	repository := &fakeRepository{
		searchFunc: func(filter *film.Filter, scopeUserID string) ([]*film.Film, error) {
			require.Equal(t, []string{"301"}, filter.FilmIDs)
			if scopeUserID == "u-1" {
				return []*film.Film{owned}, nil
			}
			t.Fatal("unscoped tier must not be consulted after a scoped hit")
			return nil, nil
		},
	}
	catalog := &fakeCatalog{}

	films, err := newTestService(repository, catalog).Get(context.Background(), testIdentity(), "301", false)

	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.NotNil(t, films[0].IsWatched, "personalization must survive the scoped tier")
	assert.Empty(t, catalog.calls)
}

func TestService_Get_SharedCacheSecondTier(t *testing.T) {
	cached := &film.Film{FilmID: "301", Name: "The Matrix"}

	repository := &fakeRepository{
		searchFunc: func(_ *film.Filter, scopeUserID string) ([]*film.Film, error) {
			if scopeUserID == "" {
				return []*film.Film{cached}, nil
			}
			return nil, nil
		},
	}
	catalog := &fakeCatalog{}

	films, err := newTestService(repository, catalog).Get(context.Background(), testIdentity(), "301", false)

	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Nil(t, films[0].IsWatched)
	assert.Empty(t, catalog.calls)
}

func TestService_Get_SeriesFansOutAndCachesDetached(t *testing.T) {
	repository := &fakeRepository{}
	catalog := &fakeCatalog{
		allSeasonsFunc: func(id string) ([]*film.Film, error) {
			require.Equal(t, "301", id)
			return []*film.Film{
				{FilmID: "301", IsSeries: true, Season: intPtr(1)},
				{FilmID: "301", IsSeries: true, Season: intPtr(2)},
			}, nil
		},
	}

	films, err := newTestService(repository, catalog).Get(context.Background(), testIdentity(), "301", true)

	require.NoError(t, err)
	require.Len(t, films, 2)
	assert.Equal(t, "301-1", films[0].FilmID)
	assert.Equal(t, "301-2", films[1].FilmID)
	assert.False(t, films[0].IsSeries)

	// The cache write is detached from the request path.
	require.Eventually(t, func() bool {
		return len(repository.insertedIDs()) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestService_Get_ExternalMissIsNotFound(t *testing.T) {
	repository := &fakeRepository{}
	catalog := &fakeCatalog{}

	_, err := newTestService(repository, catalog).Get(context.Background(), testIdentity(), "missing", false)

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// # External Search

func TestService_ExternalSearch_EmptyCriteriaShortCircuits(t *testing.T) {
	catalog := &fakeCatalog{}
	limit := 10

	films, err := newTestService(&fakeRepository{}, catalog).
		ExternalSearch(context.Background(), nil, &film.APIFilter{Limit: &limit})

	require.NoError(t, err)
	assert.Empty(t, films)
	assert.Empty(t, catalog.calls, "extension knobs alone must not trigger a catalog call")
}

func TestService_ExternalSearch_NameRoutesThroughTextSearch(t *testing.T) {
	name := "matrix"
	catalog := &fakeCatalog{
		searchByNameFunc: func(query string, _ *film.APIFilter) ([]*film.Film, error) {
			require.Equal(t, "matrix", query)
			return []*film.Film{
				{FilmID: "301", Name: "The Matrix", ReleaseYear: intPtr(1999)},
				{FilmID: "302", Name: "The Matrix Reloaded", ReleaseYear: intPtr(2003)},
			}, nil
		},
	}

	filter := &film.APIFilter{Filter: film.Filter{Name: &name, Year: film.Above(2000)}}
	films, err := newTestService(&fakeRepository{}, catalog).
		ExternalSearch(context.Background(), nil, filter)

	require.NoError(t, err)
	assert.Equal(t, []string{"search_by_name"}, catalog.calls)
	require.Len(t, films, 1, "non-name criteria must be applied to the text results")
	assert.Equal(t, "302", films[0].FilmID)
}

func TestService_ExternalSearch_FilterOnlyUsesParametricEndpoint(t *testing.T) {
	catalog := &fakeCatalog{
		searchFiltersFunc: func(_ *film.APIFilter) ([]*film.Film, error) {
			return []*film.Film{{FilmID: "42"}}, nil
		},
	}

	filter := &film.APIFilter{Filter: film.Filter{Genres: []string{"drama"}}}
	films, err := newTestService(&fakeRepository{}, catalog).
		ExternalSearch(context.Background(), nil, filter)

	require.NoError(t, err)
	assert.Equal(t, []string{"search_by_filters"}, catalog.calls)
	assert.Len(t, films, 1)
}

/*
TestService_ExternalSearch_MarksAlreadyAdded verifies the base-id
normalization on both sides: a locally tracked season entry "301-2" marks
the catalog's series candidate "301".
*/
func TestService_ExternalSearch_MarksAlreadyAdded(t *testing.T) {
	name := "matrix"
	catalog := &fakeCatalog{
		searchByNameFunc: func(string, *film.APIFilter) ([]*film.Film, error) {
			return []*film.Film{{FilmID: "301", Name: "m"}, {FilmID: "999", Name: "m"}}, nil
		},
	}
	repository := &fakeRepository{
		searchFunc: func(filter *film.Filter, scopeUserID string) ([]*film.Film, error) {
			require.Equal(t, "u-1", scopeUserID)
			require.ElementsMatch(t, []string{"301", "999"}, filter.FilmIDs)
			return []*film.Film{{FilmID: "301-2"}}, nil
		},
	}

	identity := testIdentity()
	filter := &film.APIFilter{Filter: film.Filter{Name: &name}}
	films, err := newTestService(repository, catalog).
		ExternalSearch(context.Background(), &identity, filter)

	require.NoError(t, err)
	require.Len(t, films, 2)
	assert.True(t, films[0].AlreadyAdded)
	assert.False(t, films[1].AlreadyAdded)
}

// # Collection Management

func TestService_AddToUnwatched_ResolvesUncachedFilm(t *testing.T) {
	attempts := 0
	repository := &fakeRepository{
		addToUnwatchedFunc: func(userID, filmID string) error {
			attempts++
			if attempts == 1 {
				return apperr.NotFound("Film")
			}
			return nil
		},
	}
	catalog := &fakeCatalog{
		getFunc: func(id string) (*film.Film, error) {
			return &film.Film{FilmID: id}, nil
		},
	}

	err := newTestService(repository, catalog).
		AddToUnwatched(context.Background(), testIdentity(), "301")

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, []string{"301"}, repository.insertedIDs())
}

func TestService_AddToUnwatched_CompositeIDFansOutSeries(t *testing.T) {
	attempts := 0
	repository := &fakeRepository{
		addToUnwatchedFunc: func(string, string) error {
			attempts++
			if attempts == 1 {
				return apperr.NotFound("Film")
			}
			return nil
		},
	}
	catalog := &fakeCatalog{
		allSeasonsFunc: func(id string) ([]*film.Film, error) {
			require.Equal(t, "301", id)
			return []*film.Film{
				{FilmID: "301", IsSeries: true, Season: intPtr(1)},
				{FilmID: "301", IsSeries: true, Season: intPtr(2)},
			}, nil
		},
	}

	err := newTestService(repository, catalog).
		AddToUnwatched(context.Background(), testIdentity(), "301-2")

	require.NoError(t, err)
	assert.Equal(t, []string{"301-1", "301-2"}, repository.insertedIDs())
}

func TestService_SetRating_RejectsOutOfScale(t *testing.T) {
	bad := film.RatingScale(9)
	rating := &film.ComplexRating{Music: &bad}

	err := newTestService(&fakeRepository{}, &fakeCatalog{}).
		SetRating(context.Background(), testIdentity(), "301", rating)

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}
