// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package playlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/database/schema"
	"github.com/cinelog/cinelog/internal/platform/dberr"
	"github.com/cinelog/cinelog/internal/platform/postgres"
)

// postgresRepository implements [Repository] using pgx.
//
// genattrs and collaborators are jsonb columns scanned through pgx's JSON
// codec.
type postgresRepository struct {
	db postgres.DB
}

// NewRepository constructs the PostgreSQL backed playlist store.
func NewRepository(db postgres.DB) Repository {
	return &postgresRepository{db: db}
}

func playlistColumns() string {
	return strings.Join(schema.Playlist.Columns(), ", ")
}

func scanPlaylist(row interface{ Scan(...any) error }) (*Playlist, error) {
	p := &Playlist{}
	err := row.Scan(
		&p.PlaylistID, &p.UserID, &p.Name, &p.Description, &p.IsPublic,
		&p.AdditionsCount, &p.GenAttrs, &p.Collaborators,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (repository *postgresRepository) Create(ctx context.Context, p *Playlist) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.Playlist.Table, playlistColumns(),
	)

	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now

	_, err := repository.db.Exec(ctx, query,
		p.PlaylistID, p.UserID, p.Name, p.Description, p.IsPublic,
		p.AdditionsCount, p.GenAttrs, p.Collaborators,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "playlist_create")
	}
	return nil
}

func (repository *postgresRepository) FindByID(ctx context.Context, id string) (*Playlist, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		playlistColumns(), schema.Playlist.Table, schema.Playlist.PlaylistID)

	p, err := scanPlaylist(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "playlist_find_by_id")
	}
	return p, nil
}

/*
List returns playlists matching the filter, newest first.

Parameters:
  - ctx: context.Context
  - filter: ListFilter (owner, fuzzy name, publicity; all optional)

Returns:
  - []*Playlist: Hydrated playlists
  - error: Database execution errors
*/
func (repository *postgresRepository) List(ctx context.Context, filter ListFilter) ([]*Playlist, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM %s WHERE TRUE`,
		playlistColumns(), schema.Playlist.Table))

	if filter.OwnerID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Playlist.UserID, argID))
		args = append(args, *filter.OwnerID)
		argID++
	}
	if filter.Name != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND LOWER(%s) LIKE $%d", schema.Playlist.Name, argID))
		args = append(args, "%"+strings.ToLower(*filter.Name)+"%")
		argID++
	}
	if filter.IsPublic != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Playlist.IsPublic, argID))
		args = append(args, *filter.IsPublic)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC", schema.Playlist.CreatedAt))

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "playlist_list")
	}
	defer rows.Close()

	var playlists []*Playlist
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "playlist_list_scan")
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "playlist_list_rows")
	}

	return playlists, nil
}

func (repository *postgresRepository) UpdateMeta(ctx context.Context, p *Playlist) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1`,
		schema.Playlist.Table,
		schema.Playlist.Name, schema.Playlist.Description,
		schema.Playlist.IsPublic, schema.Playlist.UpdatedAt,
		schema.Playlist.PlaylistID,
	)

	tag, err := repository.db.Exec(ctx, query,
		p.PlaylistID, p.Name, p.Description, p.IsPublic, time.Now())
	if err != nil {
		return dberr.Wrap(err, "playlist_update_meta")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Playlist")
	}
	return nil
}

func (repository *postgresRepository) SetCollaborators(ctx context.Context, id string, collaborators []string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.Playlist.Table, schema.Playlist.Collaborators,
		schema.Playlist.UpdatedAt, schema.Playlist.PlaylistID,
	)

	tag, err := repository.db.Exec(ctx, query, id, collaborators, time.Now())
	if err != nil {
		return dberr.Wrap(err, "playlist_set_collaborators")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Playlist")
	}
	return nil
}

// Delete removes the playlist and its items in one transaction.
func (repository *postgresRepository) Delete(ctx context.Context, id string) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "playlist_delete_begin")
	}
	defer tx.Rollback(ctx)

	itemsQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.PlaylistItem.Table, schema.PlaylistItem.PlaylistID)
	if _, err := tx.Exec(ctx, itemsQuery, id); err != nil {
		return dberr.Wrap(err, "playlist_delete_items")
	}

	playlistQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Playlist.Table, schema.Playlist.PlaylistID)
	tag, err := tx.Exec(ctx, playlistQuery, id)
	if err != nil {
		return dberr.Wrap(err, "playlist_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Playlist")
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "playlist_delete_commit")
	}
	return nil
}

// # Item Management

// AddItem inserts the item and bumps the addition counter in one
// transaction, so the counter never drifts from the item rows.
func (repository *postgresRepository) AddItem(ctx context.Context, item *Item) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "playlist_add_item_begin")
	}
	defer tx.Rollback(ctx)

	if err := insertItem(ctx, tx, item); err != nil {
		return err
	}
	if err := bumpAdditions(ctx, tx, item.PlaylistID, 1); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "playlist_add_item_commit")
	}
	return nil
}

func (repository *postgresRepository) AddItems(ctx context.Context, items []*Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "playlist_add_items_begin")
	}
	defer tx.Rollback(ctx)

	for _, item := range items {
		if err := insertItem(ctx, tx, item); err != nil {
			return err
		}
	}
	if err := bumpAdditions(ctx, tx, items[0].PlaylistID, len(items)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "playlist_add_items_commit")
	}
	return nil
}

func insertItem(ctx context.Context, tx postgres.Executor, item *Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)`,
		schema.PlaylistItem.Table,
		schema.PlaylistItem.PlaylistID, schema.PlaylistItem.FilmID,
		schema.PlaylistItem.CreatorID, schema.PlaylistItem.AddedAt,
	)

	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	if _, err := tx.Exec(ctx, query,
		item.PlaylistID, item.FilmID, item.CreatorID, item.AddedAt); err != nil {
		return dberr.Wrap(err, "playlist_insert_item")
	}
	return nil
}

func bumpAdditions(ctx context.Context, tx postgres.Executor, playlistID string, delta int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + $2 WHERE %s = $1`,
		schema.Playlist.Table, schema.Playlist.AdditionsCount,
		schema.Playlist.AdditionsCount, schema.Playlist.PlaylistID,
	)
	if _, err := tx.Exec(ctx, query, playlistID, delta); err != nil {
		return dberr.Wrap(err, "playlist_bump_additions")
	}
	return nil
}

func (repository *postgresRepository) GetItem(ctx context.Context, playlistID, filmID string) (*Item, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s FROM %s
		WHERE %s = $1 AND %s = $2`,
		schema.PlaylistItem.PlaylistID, schema.PlaylistItem.FilmID,
		schema.PlaylistItem.CreatorID, schema.PlaylistItem.AddedAt,
		schema.PlaylistItem.Table,
		schema.PlaylistItem.PlaylistID, schema.PlaylistItem.FilmID,
	)

	item := &Item{}
	err := repository.db.QueryRow(ctx, query, playlistID, filmID).Scan(
		&item.PlaylistID, &item.FilmID, &item.CreatorID, &item.AddedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "playlist_get_item")
	}
	return item, nil
}

func (repository *postgresRepository) RemoveItem(ctx context.Context, playlistID, filmID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.PlaylistItem.Table,
		schema.PlaylistItem.PlaylistID, schema.PlaylistItem.FilmID,
	)

	tag, err := repository.db.Exec(ctx, query, playlistID, filmID)
	if err != nil {
		return dberr.Wrap(err, "playlist_remove_item")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Playlist item")
	}
	return nil
}

func (repository *postgresRepository) ListItems(ctx context.Context, playlistID string) ([]*Item, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s FROM %s
		WHERE %s = $1 ORDER BY %s ASC`,
		schema.PlaylistItem.PlaylistID, schema.PlaylistItem.FilmID,
		schema.PlaylistItem.CreatorID, schema.PlaylistItem.AddedAt,
		schema.PlaylistItem.Table,
		schema.PlaylistItem.PlaylistID, schema.PlaylistItem.AddedAt,
	)

	rows, err := repository.db.Query(ctx, query, playlistID)
	if err != nil {
		return nil, dberr.Wrap(err, "playlist_list_items")
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.PlaylistID, &item.FilmID, &item.CreatorID, &item.AddedAt); err != nil {
			return nil, dberr.Wrap(err, "playlist_list_items_scan")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "playlist_list_items_rows")
	}

	return items, nil
}
