// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/catalog"
	"github.com/cinelog/cinelog/internal/film"
	"github.com/cinelog/cinelog/internal/platform/apperr"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *catalog.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return catalog.NewClient(server.URL, "test-key", logger)
}

func TestClient_Get(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/movie/301", request.URL.Path)
		assert.Equal(t, "test-key", request.Header.Get("X-API-KEY"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{
			"id": 301, "name": "The Matrix", "year": 1999, "isSeries": false,
			"movieLength": 136, "rating": {"kp": 8.5, "imdb": 8.7},
			"genres": [{"name": "action"}, {"name": "sci-fi"}],
			"poster": {"url": "https://img.example/301.jpg"},
			"persons": [{"name": "Lana Wachowski", "profession": "director"}]
		}`))
	})

	entry, err := client.Get(context.Background(), "301")

	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "301", entry.FilmID)
	assert.Equal(t, 1999, *entry.ReleaseYear)
	assert.Equal(t, 8.5, entry.Ratings[film.RatingSourceKP])
	assert.Equal(t, []string{"action", "sci-fi"}, entry.Genres)
	assert.Equal(t, "Lana Wachowski", *entry.Director)
	assert.False(t, entry.LastUpdated.IsZero())
}

func TestClient_Get_UnknownIDIsNilNotError(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})

	entry, err := client.Get(context.Background(), "999")

	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestClient_Get_UpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Get(context.Background(), "301")

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "SERVICE_UNAVAILABLE", appError.Code)
}

// The text endpoint receives the folded query and pagination only; every
// narrowing criterion stays on our side.
func TestClient_SearchByName_FoldsQueryAndDropsCriteria(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/movie/search", request.URL.Path)
		assert.Equal(t, "amelie", request.URL.Query().Get("query"))
		assert.Equal(t, "2", request.URL.Query().Get("page"))
		assert.Empty(t, request.URL.Query().Get("year"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"docs": [{"id": 42, "name": "Amélie"}], "total": 1}`))
	})

	page := 2
	filter := &film.APIFilter{
		Filter: film.Filter{Year: film.Exact(2001)},
		Page:   &page,
	}
	films, err := client.SearchByName(context.Background(), "Amélie", filter)

	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, "42", films[0].FilmID)
}

func TestClient_SearchByFilters_ForwardsEncodedRanges(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/movie", request.URL.Path)
		assert.Equal(t, "1995-2050", request.URL.Query().Get("year"))
		assert.Equal(t, []string{"drama"}, request.URL.Query()["genres.name"])

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"docs": [], "total": 0}`))
	})

	filter := &film.APIFilter{Filter: film.Filter{
		Year:   film.Above(1995),
		Genres: []string{"drama"},
	}}
	films, err := client.SearchByFilters(context.Background(), filter)

	require.NoError(t, err)
	assert.Empty(t, films)
}

func TestClient_GetAllSeasons(t *testing.T) {
	client := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/movie/301/seasons", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"docs": [
			{"id": 301, "name": "Twin Peaks", "isSeries": true, "season": 1},
			{"id": 301, "name": "Twin Peaks", "isSeries": true, "season": 2}
		], "total": 2}`))
	})

	seasons, err := client.GetAllSeasons(context.Background(), "301")

	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.True(t, seasons[0].IsSeries, "the client must not transform entries itself")
	assert.Equal(t, 2, *seasons[1].Season)
}
