// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package film

import (
	"context"
	"fmt"
	"strings"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/database/schema"
	"github.com/cinelog/cinelog/internal/platform/dberr"
	"github.com/cinelog/cinelog/internal/platform/postgres"
)

// postgresRepository implements [Repository] using pgx.
//
// jsonb columns (genres, countries, persons, ratings, seasonsinfo,
// trailers, episodes, userrating) are scanned straight into their Go
// shapes through pgx's JSON codec.
type postgresRepository struct {
	db postgres.DB
}

// NewRepository constructs the PostgreSQL backed film store.
func NewRepository(db postgres.DB) Repository {
	return &postgresRepository{db: db}
}

// filmColumns renders the aliased select list for films.film.
func filmColumns(alias string) string {
	columns := schema.Film.Columns()
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}

// scanTargets returns the scan destinations matching [filmColumns] order.
func scanTargets(film *Film) []any {
	return []any{
		&film.FilmID, &film.Name, &film.AlternativeName, &film.ReleaseYear,
		&film.EndYear, &film.Season, &film.SeasonsInfo, &film.Slogan,
		&film.Description, &film.PosterLink, &film.Genres, &film.Countries,
		&film.Director, &film.Persons, &film.TimeMinutes, &film.AgeRating,
		&film.Ratings, &film.Trailers, &film.Status, &film.Episodes,
		&film.LastUpdated,
	}
}

/*
Search returns films matching the filter, optionally scoped to one user.

Description: The filter renders itself as dynamic WHERE conjuncts with
positional binds. A non-empty scope joins films.userfilm, which both
restricts the result to the user's collection and hydrates the
personalization columns in the same round-trip.

Parameters:
  - ctx: context.Context
  - filter: *Filter (nil means unconstrained)
  - scopeUserID: string ("" for the shared catalog view)
  - limit, offset: int (limit <= 0 disables pagination)

Returns:
  - []*Film: Hydrated film entities
  - error: Database execution errors
*/
func (repository *postgresRepository) Search(ctx context.Context, filter *Filter, scopeUserID string, limit, offset int) ([]*Film, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	scoped := scopeUserID != ""

	queryBuilder.WriteString("SELECT ")
	queryBuilder.WriteString(filmColumns("f"))
	if scoped {
		queryBuilder.WriteString(fmt.Sprintf(", uf.%s, uf.%s, uf.%s",
			schema.UserFilm.IsWatched, schema.UserFilm.UserRating, schema.UserFilm.AddedAt))
	}
	queryBuilder.WriteString(fmt.Sprintf(" FROM %s f", schema.Film.Table))
	if scoped {
		queryBuilder.WriteString(fmt.Sprintf(
			" JOIN %s uf ON uf.%s = f.%s AND uf.%s = $%d",
			schema.UserFilm.Table, schema.UserFilm.FilmID, schema.Film.FilmID,
			schema.UserFilm.UserID, argID))
		args = append(args, scopeUserID)
		argID++
	}
	queryBuilder.WriteString(" WHERE TRUE")

	if filter != nil {
		filter.AppendSQL(&queryBuilder, &args, &argID, "f")
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY f.%s DESC", schema.Film.LastUpdated))
	if limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
		args = append(args, limit, offset)
	}

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "film_search")
	}
	defer rows.Close()

	var films []*Film
	for rows.Next() {
		film := &Film{}
		targets := scanTargets(film)
		if scoped {
			targets = append(targets, &film.IsWatched, &film.UserRating, &film.AddedAt)
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, dberr.Wrap(err, "film_search_scan")
		}
		films = append(films, film)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "film_search_rows")
	}

	return films, nil
}

/*
Insert caches a catalog entry, keeping whatever is already stored.

Description: ON CONFLICT DO NOTHING makes concurrent cache-backs of the
same film race-free; the first writer wins and later writers are silent
no-ops.
*/
func (repository *postgresRepository) Insert(ctx context.Context, film *Film) error {
	columns := schema.Film.Columns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO NOTHING",
		schema.Film.Table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		schema.Film.FilmID,
	)

	_, err := repository.db.Exec(ctx, query,
		film.FilmID, film.Name, film.AlternativeName, film.ReleaseYear,
		film.EndYear, film.Season, film.SeasonsInfo, film.Slogan,
		film.Description, film.PosterLink, film.Genres, film.Countries,
		film.Director, film.Persons, film.TimeMinutes, film.AgeRating,
		film.Ratings, film.Trailers, film.Status, film.Episodes,
		film.LastUpdated,
	)
	if err != nil {
		return dberr.Wrap(err, "film_insert")
	}
	return nil
}

// AddToUnwatched attaches a cached film to the user's collection.
//
// A foreign key violation means the film was never cached locally and maps
// to NotFound; a unique violation means the pair already exists and maps to
// Conflict. Both arrive through [dberr.Wrap].
func (repository *postgresRepository) AddToUnwatched(ctx context.Context, userID, filmID string) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, FALSE, NOW())",
		schema.UserFilm.Table,
		schema.UserFilm.UserID, schema.UserFilm.FilmID,
		schema.UserFilm.IsWatched, schema.UserFilm.AddedAt,
	)

	if _, err := repository.db.Exec(ctx, query, userID, filmID); err != nil {
		return dberr.Wrap(err, "film_add_to_unwatched")
	}
	return nil
}

func (repository *postgresRepository) SetWatchStatus(ctx context.Context, userID, filmID string, watched bool) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $3 WHERE %s = $1 AND %s = $2",
		schema.UserFilm.Table, schema.UserFilm.IsWatched,
		schema.UserFilm.UserID, schema.UserFilm.FilmID,
	)

	tag, err := repository.db.Exec(ctx, query, userID, filmID, watched)
	if err != nil {
		return dberr.Wrap(err, "film_set_watch_status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Film")
	}
	return nil
}

func (repository *postgresRepository) SetRating(ctx context.Context, userID, filmID string, rating *ComplexRating) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $3 WHERE %s = $1 AND %s = $2",
		schema.UserFilm.Table, schema.UserFilm.UserRating,
		schema.UserFilm.UserID, schema.UserFilm.FilmID,
	)

	tag, err := repository.db.Exec(ctx, query, userID, filmID, rating)
	if err != nil {
		return dberr.Wrap(err, "film_set_rating")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Film")
	}
	return nil
}

func (repository *postgresRepository) Remove(ctx context.Context, userID, filmID string) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.UserFilm.Table, schema.UserFilm.UserID, schema.UserFilm.FilmID,
	)

	tag, err := repository.db.Exec(ctx, query, userID, filmID)
	if err != nil {
		return dberr.Wrap(err, "film_remove")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Film")
	}
	return nil
}

func (repository *postgresRepository) ListByWatchStatus(ctx context.Context, userID string, watched bool) ([]*Film, error) {
	return repository.listScoped(ctx, userID, &watched)
}

func (repository *postgresRepository) ListAll(ctx context.Context, userID string) ([]*Film, error) {
	return repository.listScoped(ctx, userID, nil)
}

// listScoped lists the user's collection, newest additions first, with an
// optional watch-state restriction.
func (repository *postgresRepository) listScoped(ctx context.Context, userID string, watched *bool) ([]*Film, error) {
	var queryBuilder strings.Builder
	args := []any{userID}

	queryBuilder.WriteString("SELECT ")
	queryBuilder.WriteString(filmColumns("f"))
	queryBuilder.WriteString(fmt.Sprintf(", uf.%s, uf.%s, uf.%s",
		schema.UserFilm.IsWatched, schema.UserFilm.UserRating, schema.UserFilm.AddedAt))
	queryBuilder.WriteString(fmt.Sprintf(
		" FROM %s f JOIN %s uf ON uf.%s = f.%s WHERE uf.%s = $1",
		schema.Film.Table, schema.UserFilm.Table,
		schema.UserFilm.FilmID, schema.Film.FilmID, schema.UserFilm.UserID,
	))
	if watched != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND uf.%s = $2", schema.UserFilm.IsWatched))
		args = append(args, *watched)
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY uf.%s DESC", schema.UserFilm.AddedAt))

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "film_list_scoped")
	}
	defer rows.Close()

	var films []*Film
	for rows.Next() {
		film := &Film{}
		targets := append(scanTargets(film), &film.IsWatched, &film.UserRating, &film.AddedAt)
		if err := rows.Scan(targets...); err != nil {
			return nil, dberr.Wrap(err, "film_list_scoped_scan")
		}
		films = append(films, film)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "film_list_scoped_rows")
	}

	return films, nil
}
