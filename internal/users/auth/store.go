// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(ctx context.Context, id string) (*User, error)

	/*
		FindByLogin returns the account with the given login.

		Parameters:
		  - ctx: context.Context
		  - login: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByLogin(ctx context.Context, login string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - ctx: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(ctx context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - ctx: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(ctx context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - ctx: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(ctx context.Context, userID, newHash string) error

	/*
		UpdateStatus flips the account-wide public/private switch.

		Parameters:
		  - ctx: context.Context
		  - userID: string
		  - status: string

		Returns:
		  - error: Persistence failures
	*/
	UpdateStatus(ctx context.Context, userID, status string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token
// sessions. Sessions are volatile: the store expires them on its own after
// the configured TTL, so no sweep job is needed.
type SessionRepository interface {

	/*
		Set stores a refresh-token digest with its owning userID.

		Parameters:
		  - ctx: context.Context
		  - tokenHash: string
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	Set(ctx context.Context, tokenHash, userID string) error

	/*
		Get returns the userID owning the refresh-token digest, or NotFound
		when the session is absent, expired, or revoked.

		Parameters:
		  - ctx: context.Context
		  - tokenHash: string

		Returns:
		  - string: UserID
		  - error: Retrieval failures
	*/
	Get(ctx context.Context, tokenHash string) (string, error)

	/*
		Delete revokes one session. Deleting an absent session is a no-op.

		Parameters:
		  - ctx: context.Context
		  - tokenHash: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(ctx context.Context, tokenHash string) error
}
