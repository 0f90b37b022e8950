// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/database/schema"
	"github.com/cinelog/cinelog/internal/platform/dberr"
	"github.com/cinelog/cinelog/internal/platform/postgres"
)

// # User Repository

// PostgresUserRepository implements the [UserRepository] interface using pgx.
type PostgresUserRepository struct {
	db postgres.DB
}

// NewUserRepository creates a new PostgreSQL implementation of the [UserRepository].
func NewUserRepository(db postgres.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists the credential row, initializing timestamps when
the caller leaves them zero. Login and username uniqueness is a storage
constraint; violations surface as Conflict.

Parameters:
  - ctx: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Login, schema.UserAccount.Password,
		schema.UserAccount.Role, schema.UserAccount.Status, schema.UserAccount.Username,
		schema.UserAccount.Email, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		user.ID,
		user.Login,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.Username,
		user.Email,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_create")
	}

	return nil
}

/*
FindByID retrieves a user record by its primary key.

Parameters:
  - ctx: context.Context
  - id: string (UUID)

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.findBy(ctx, schema.UserAccount.ID, id)
}

/*
FindByLogin retrieves a user record by its unique login.

Parameters:
  - ctx: context.Context
  - login: string

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresUserRepository) FindByLogin(ctx context.Context, login string) (*User, error) {
	return repository.findBy(ctx, schema.UserAccount.Login, login)
}

/*
FindByUsername retrieves a user record by its display username.

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return repository.findBy(ctx, schema.UserAccount.Username, username)
}

// findBy runs the single-row account lookup keyed on one unique column.
func (repository *PostgresUserRepository) findBy(ctx context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.Login, schema.UserAccount.Password,
		schema.UserAccount.Role, schema.UserAccount.Status, schema.UserAccount.Username,
		schema.UserAccount.Email, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table,
		column,
	)

	user := &User{}
	err := repository.db.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.Login,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.Username,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_repo_find")
	}

	return user, nil
}

/*
UpdatePassword replaces the stored password hash.

Parameters:
  - ctx: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: apperr.NotFound or update failures
*/
func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Password, schema.UserAccount.UpdatedAt, schema.UserAccount.ID,
	)

	tag, err := repository.db.Exec(ctx, query, userID, newHash, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_update_password")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}
	return nil
}

/*
UpdateStatus flips the account-wide public/private switch.

Parameters:
  - ctx: context.Context
  - userID: string
  - status: string

Returns:
  - error: apperr.NotFound or update failures
*/
func (repository *PostgresUserRepository) UpdateStatus(ctx context.Context, userID, status string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Status, schema.UserAccount.UpdatedAt, schema.UserAccount.ID,
	)

	tag, err := repository.db.Exec(ctx, query, userID, status, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_update_status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}
	return nil
}
