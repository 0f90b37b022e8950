// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package social

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/database/schema"
	"github.com/cinelog/cinelog/internal/platform/dberr"
	"github.com/cinelog/cinelog/internal/platform/postgres"
)

// postgresRepository implements [Repository] on pgx.
type postgresRepository struct {
	db postgres.DB
}

// NewRepository creates the Postgres-backed community store.
func NewRepository(db postgres.DB) Repository {
	return &postgresRepository{db: db}
}

// # Profiles

/*
GetProfile retrieves a user record from the users.account table.

Parameters:
  - ctx: context.Context
  - userID: string (UUID)

Returns:
  - *Profile: Hydrated profile entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *postgresRepository) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Bio,
		schema.UserAccount.Location, schema.UserAccount.BirthDate, schema.UserAccount.Email,
		schema.UserAccount.Avatar, schema.UserAccount.Role, schema.UserAccount.Status,
		schema.UserAccount.CreatedAt,
		schema.UserAccount.Table,
		schema.UserAccount.ID,
	)

	profile := &Profile{}
	err := repository.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Username,
		&profile.Bio,
		&profile.Location,
		&profile.BirthDate,
		&profile.Email,
		&profile.Avatar,
		&profile.Role,
		&profile.Status,
		&profile.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "social_get_profile")
	}

	return profile, nil
}

/*
SearchProfiles performs a case-insensitive fuzzy lookup on usernames.

Parameters:
  - ctx: context.Context
  - username: string (substring, not a pattern)
  - limit: int

Returns:
  - []*Preview: Matching profile cards, alphabetical
  - error: Database execution failure
*/
func (repository *postgresRepository) SearchProfiles(ctx context.Context, username string, limit int) ([]*Preview, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE LOWER(%s) LIKE $1
		ORDER BY %s ASC
		LIMIT $2`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Avatar,
		schema.UserAccount.Status,
		schema.UserAccount.Table,
		schema.UserAccount.Username,
		schema.UserAccount.Username,
	)

	rows, err := repository.db.Query(ctx, query, "%"+strings.ToLower(username)+"%", limit)
	if err != nil {
		return nil, dberr.Wrap(err, "social_search_profiles")
	}
	defer rows.Close()

	return scanPreviews(rows)
}

// UpdateProfile persists the mutable fields and refreshes the updated
// timestamp. Credentials and status are the auth engine's territory.
func (repository *postgresRepository) UpdateProfile(ctx context.Context, p *Profile) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Bio, schema.UserAccount.Location,
		schema.UserAccount.BirthDate, schema.UserAccount.Avatar, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	tag, err := repository.db.Exec(ctx, query,
		p.UserID,
		p.Username,
		p.Bio,
		p.Location,
		p.BirthDate,
		p.Avatar,
		time.Now().UTC(),
	)
	if err != nil {
		return dberr.Wrap(err, "social_update_profile")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Profile")
	}
	return nil
}

// # Subscriptions

/*
ListSubscribers returns the profile cards of everyone following userID.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - []*Preview: Followers, newest edge first
  - error: Database execution failure
*/
func (repository *postgresRepository) ListSubscribers(ctx context.Context, userID string) ([]*Preview, error) {
	return repository.listEdge(ctx, userID,
		schema.UserSubscription.SubscribedID, schema.UserSubscription.SubscriberID, "social_list_subscribers")
}

/*
ListSubscribed returns the profile cards of everyone userID follows.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - []*Preview: Followed users, newest edge first
  - error: Database execution failure
*/
func (repository *postgresRepository) ListSubscribed(ctx context.Context, userID string) ([]*Preview, error) {
	return repository.listEdge(ctx, userID,
		schema.UserSubscription.SubscriberID, schema.UserSubscription.SubscribedID, "social_list_subscribed")
}

// listEdge walks the subscription graph in one direction: rows where
// matchColumn = userID, joined to the account on the opposite endpoint.
func (repository *postgresRepository) listEdge(ctx context.Context, userID, matchColumn, joinColumn, action string) ([]*Preview, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s
		FROM %s s
		JOIN %s a ON a.%s = s.%s
		WHERE s.%s = $1
		ORDER BY s.%s DESC`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Avatar,
		schema.UserAccount.Status,
		schema.UserSubscription.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, joinColumn,
		matchColumn,
		schema.UserSubscription.CreatedAt,
	)

	rows, err := repository.db.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	return scanPreviews(rows)
}

// IsSubscribed reports whether subscriberID follows subscribedID.
func (repository *postgresRepository) IsSubscribed(ctx context.Context, subscriberID, subscribedID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.UserSubscription.Table, schema.UserSubscription.SubscriberID, schema.UserSubscription.SubscribedID)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, subscriberID, subscribedID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "social_is_subscribed")
	}
	return exists, nil
}

// CreateSubscription inserts the directed edge. The composite primary key
// turns a repeat into Conflict; the foreign key turns a ghost target into
// NotFound.
func (repository *postgresRepository) CreateSubscription(ctx context.Context, subscriberID, subscribedID string) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, NOW())`,
		schema.UserSubscription.Table,
		schema.UserSubscription.SubscriberID, schema.UserSubscription.SubscribedID,
		schema.UserSubscription.CreatedAt,
	)

	if _, err := repository.db.Exec(ctx, query, subscriberID, subscribedID); err != nil {
		return dberr.Wrap(err, "social_create_subscription")
	}
	return nil
}

// DeleteSubscription removes the edge.
func (repository *postgresRepository) DeleteSubscription(ctx context.Context, subscriberID, subscribedID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.UserSubscription.Table,
		schema.UserSubscription.SubscriberID, schema.UserSubscription.SubscribedID,
	)

	tag, err := repository.db.Exec(ctx, query, subscriberID, subscribedID)
	if err != nil {
		return dberr.Wrap(err, "social_delete_subscription")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Subscription")
	}
	return nil
}

// # Action History

// InsertAction appends one history row. Attributes travel as jsonb.
func (repository *postgresRepository) InsertAction(ctx context.Context, entry *HistoryEntry) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		schema.UserAction.Table,
		schema.UserAction.ActionID, schema.UserAction.UserID, schema.UserAction.Name,
		schema.UserAction.Date, schema.UserAction.Attributes,
	)

	if _, err := repository.db.Exec(ctx, query,
		entry.ActionID, entry.UserID, entry.Name, entry.Date, entry.Attributes,
	); err != nil {
		return dberr.Wrap(err, "social_insert_action")
	}
	return nil
}

/*
ListActions returns a user's history, newest first.

Parameters:
  - ctx: context.Context
  - userID: string
  - limit: int

Returns:
  - []*HistoryEntry: Recorded events
  - error: Database execution failure
*/
func (repository *postgresRepository) ListActions(ctx context.Context, userID string, limit int) ([]*HistoryEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2`,
		schema.UserAction.ActionID, schema.UserAction.UserID, schema.UserAction.Name,
		schema.UserAction.Date, schema.UserAction.Attributes,
		schema.UserAction.Table,
		schema.UserAction.UserID,
		schema.UserAction.Date,
	)

	rows, err := repository.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "social_list_actions")
	}
	defer rows.Close()

	var entries []*HistoryEntry
	for rows.Next() {
		entry := &HistoryEntry{}
		if err := rows.Scan(&entry.ActionID, &entry.UserID, &entry.Name, &entry.Date, &entry.Attributes); err != nil {
			return nil, dberr.Wrap(err, "social_list_actions_scan")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "social_list_actions_rows")
	}

	return entries, nil
}

// scanPreviews drains rows shaped as (id, username, avatar, status).
func scanPreviews(rows pgx.Rows) ([]*Preview, error) {
	var previews []*Preview
	for rows.Next() {
		preview := &Preview{}
		if err := rows.Scan(&preview.UserID, &preview.Username, &preview.Avatar, &preview.Status); err != nil {
			return nil, dberr.Wrap(err, "social_scan_preview")
		}
		previews = append(previews, preview)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "social_preview_rows")
	}
	return previews, nil
}
