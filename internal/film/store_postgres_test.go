// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package film_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/film"
	"github.com/cinelog/cinelog/internal/platform/apperr"
)

func newMockRepository(t *testing.T) (film.Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return film.NewRepository(mock), mock
}

func TestPostgresRepository_AddToUnwatched(t *testing.T) {
	repository, mock := newMockRepository(t)

	mock.ExpectExec("INSERT INTO films.userfilm").
		WithArgs("u-1", "301").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repository.AddToUnwatched(context.Background(), "u-1", "301")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A missing catalog row surfaces as a foreign key violation and maps to
// NotFound; an existing pair violates the primary key and maps to Conflict.
func TestPostgresRepository_AddToUnwatched_ConstraintMapping(t *testing.T) {
	tests := []struct {
		name     string
		sqlstate string
		wantCode string
	}{
		{"uncached_film", "23503", "NOT_FOUND"},
		{"duplicate_pair", "23505", "CONFLICT"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repository, mock := newMockRepository(t)

			mock.ExpectExec("INSERT INTO films.userfilm").
				WithArgs("u-1", "301").
				WillReturnError(&pgconn.PgError{Code: tc.sqlstate})

			err := repository.AddToUnwatched(context.Background(), "u-1", "301")

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tc.wantCode, appError.Code)
		})
	}
}

func TestPostgresRepository_SetWatchStatus_MissingPairIsNotFound(t *testing.T) {
	repository, mock := newMockRepository(t)

	mock.ExpectExec("UPDATE films.userfilm SET iswatched").
		WithArgs("u-1", "301", true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repository.SetWatchStatus(context.Background(), "u-1", "301", true)

	assert.True(t, apperr.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Remove(t *testing.T) {
	repository, mock := newMockRepository(t)

	mock.ExpectExec("DELETE FROM films.userfilm").
		WithArgs("u-1", "301").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repository.Remove(context.Background(), "u-1", "301"))
	require.NoError(t, mock.ExpectationsWereMet())
}

// Insert must keep whatever is already cached: the statement carries
// ON CONFLICT DO NOTHING and zero affected rows is still a success.
func TestPostgresRepository_Insert_ExistingEntryIsNoop(t *testing.T) {
	repository, mock := newMockRepository(t)

	mock.ExpectExec("INSERT INTO films.film .+ ON CONFLICT \\(filmid\\) DO NOTHING").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err := repository.Insert(context.Background(), &film.Film{FilmID: "301", Name: "The Matrix"})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresRepository_Search_ScopedJoin verifies that a scoped search joins
the user-film table with the scope as first bind argument and that filter
binds are numbered after it.
*/
func TestPostgresRepository_Search_ScopedJoin(t *testing.T) {
	repository, mock := newMockRepository(t)

	columns := []string{
		"filmid", "name", "alternativename", "releaseyear", "endyear",
		"season", "seasonsinfo", "slogan", "description", "posterlink",
		"genres", "countries", "director", "persons", "timeminutes",
		"agerating", "ratings", "trailers", "status", "episodes", "lastupdated",
		"iswatched", "userrating", "addedat",
	}

	mock.ExpectQuery("SELECT .+ JOIN films.userfilm uf ON .+ AND \\(f.filmid = \\$2 OR f.filmid LIKE \\$3\\)").
		WithArgs("u-1", "301", "301-%").
		WillReturnRows(pgxmock.NewRows(columns))

	filter := &film.Filter{FilmIDs: []string{"301"}}
	films, err := repository.Search(context.Background(), filter, "u-1", 0, 0)

	require.NoError(t, err)
	assert.Empty(t, films)
	require.NoError(t, mock.ExpectationsWereMet())
}
