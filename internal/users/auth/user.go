// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package auth implements account registration and the session lifecycle.

It owns the credential half of the user record: login, password hash, role,
and the public/private status that the rest of the system reads from JWT
claims. Profile editing lives in the social engine; this package only mints
the identity.

# Architecture

  - Service: Orchestrates business logic (Register, Login, Refresh).
  - UserRepository: Postgres persistence of the account row.
  - SessionRepository: Redis persistence of opaque refresh tokens.
  - Security: bcrypt password hashing and RS256-signed JWTs.
*/
package auth

import (
	"time"

	"github.com/cinelog/cinelog/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Cinelog platform.
type User struct {
	ID           string            `json:"id"`
	Login        string            `json:"login"`
	PasswordHash string            `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole      `json:"role"`
	Status       sec.ProfileStatus `json:"status"`
	Username     string            `json:"username"`
	Email        *string           `json:"email,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and response mapping in the
// authentication domain.
const (
	FieldLogin       = "login"
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldStatus      = "status"
	FieldToken       = "token"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)
