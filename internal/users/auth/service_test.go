// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/sec"
)

// fakeUserRepository keeps accounts in memory, keyed by id.
type fakeUserRepository struct {
	users map[string]*User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*User{}}
}

func (r *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("Account")
}

func (r *fakeUserRepository) FindByLogin(_ context.Context, login string) (*User, error) {
	for _, user := range r.users {
		if user.Login == login {
			return user, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (r *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (r *fakeUserRepository) Create(_ context.Context, user *User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	user.PasswordHash = newHash
	return nil
}

func (r *fakeUserRepository) UpdateStatus(_ context.Context, userID, status string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	user.Status = sec.ProfileStatus(status)
	return nil
}

// fakeSessionRepository mirrors the Redis contract in a plain map.
type fakeSessionRepository struct {
	sessions map[string]string
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]string{}}
}

func (r *fakeSessionRepository) Set(_ context.Context, tokenHash, userID string) error {
	r.sessions[tokenHash] = userID
	return nil
}

func (r *fakeSessionRepository) Get(_ context.Context, tokenHash string) (string, error) {
	if userID, ok := r.sessions[tokenHash]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Session")
}

func (r *fakeSessionRepository) Delete(_ context.Context, tokenHash string) error {
	delete(r.sessions, tokenHash)
	return nil
}

// fakeTokenProvider emits an inspectable token instead of a signed JWT.
type fakeTokenProvider struct{}

func (p *fakeTokenProvider) GenerateAccessToken(userID, username, role, status string, _ time.Duration) (string, error) {
	return fmt.Sprintf("%s|%s|%s|%s", userID, username, role, status), nil
}

func newTestService() (*Service, *fakeUserRepository, *fakeSessionRepository) {
	userRepo := newFakeUserRepository()
	sessionRepo := newFakeSessionRepository()
	return NewService(userRepo, sessionRepo, &fakeTokenProvider{}), userRepo, sessionRepo
}

func register(t *testing.T, service *Service, login string) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		Login:    login,
		Username: login + "_name",
		Password: "correct horse",
	})
	require.NoError(t, err)
	return user
}

func TestService_Register(t *testing.T) {
	service, userRepo, _ := newTestService()

	user := register(t, service, "alice")
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Equal(t, sec.StatusPublic, user.Status)
	assert.NotEmpty(t, user.ID)

	// The stored hash must never equal the plain password.
	stored := userRepo.users[user.ID]
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct horse", stored.PasswordHash))

	t.Run("duplicate_login_conflicts", func(t *testing.T) {
		_, err := service.Register(context.Background(), RegisterInput{
			Login: "alice", Username: "someone_else", Password: "irrelevant1",
		})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("duplicate_username_conflicts", func(t *testing.T) {
		_, err := service.Register(context.Background(), RegisterInput{
			Login: "bob", Username: "alice_name", Password: "irrelevant1",
		})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

func TestService_Login(t *testing.T) {
	service, _, sessionRepo := newTestService()
	register(t, service, "alice")

	t.Run("valid_credentials_open_session", func(t *testing.T) {
		session, err := service.Login(context.Background(), LoginInput{
			Login: "alice", Password: "correct horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Contains(t, session.AccessToken, "|public")

		// The session store holds a digest, never the raw token.
		require.Len(t, sessionRepo.sessions, 1)
		_, held := sessionRepo.sessions[session.RefreshToken]
		assert.False(t, held)
		_, held = sessionRepo.sessions[sec.HashToken(session.RefreshToken)]
		assert.True(t, held)
	})

	t.Run("username_works_as_login", func(t *testing.T) {
		_, err := service.Login(context.Background(), LoginInput{
			Login: "alice_name", Password: "correct horse",
		})
		require.NoError(t, err)
	})

	t.Run("wrong_password_is_unauthorized", func(t *testing.T) {
		_, err := service.Login(context.Background(), LoginInput{
			Login: "alice", Password: "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("unknown_login_same_message", func(t *testing.T) {
		_, err := service.Login(context.Background(), LoginInput{
			Login: "nobody", Password: "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})
}

func TestService_RefreshSession_RotatesToken(t *testing.T) {
	service, userRepo, sessionRepo := newTestService()
	user := register(t, service, "alice")

	session, err := service.Login(context.Background(), LoginInput{
		Login: "alice", Password: "correct horse",
	})
	require.NoError(t, err)

	// Status changes surface in the next rotation.
	require.NoError(t, userRepo.UpdateStatus(context.Background(), user.ID, string(sec.StatusPrivate)))

	rotated, err := service.RefreshSession(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)
	assert.Contains(t, rotated.AccessToken, "|private")

	// The old token was revoked by the rotation; replaying it fails.
	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	require.Len(t, sessionRepo.sessions, 1)
}

func TestService_Logout_IsIdempotent(t *testing.T) {
	service, _, sessionRepo := newTestService()
	register(t, service, "alice")

	session, err := service.Login(context.Background(), LoginInput{
		Login: "alice", Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, sessionRepo.sessions)

	// A second logout with the same token still succeeds.
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
}

func TestService_ChangePassword(t *testing.T) {
	service, _, _ := newTestService()
	user := register(t, service, "alice")

	t.Run("wrong_current_password_rejected", func(t *testing.T) {
		err := service.ChangePassword(context.Background(), user.ID, "wrong", "new password 1")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("rotates_the_hash", func(t *testing.T) {
		require.NoError(t, service.ChangePassword(context.Background(), user.ID, "correct horse", "new password 1"))

		_, err := service.Login(context.Background(), LoginInput{Login: "alice", Password: "correct horse"})
		require.Error(t, err)
		_, err = service.Login(context.Background(), LoginInput{Login: "alice", Password: "new password 1"})
		require.NoError(t, err)
	})
}

func TestService_SetStatus(t *testing.T) {
	service, userRepo, _ := newTestService()
	user := register(t, service, "alice")

	require.NoError(t, service.SetStatus(context.Background(), user.ID, sec.StatusPrivate))
	assert.Equal(t, sec.StatusPrivate, userRepo.users[user.ID].Status)

	err := service.SetStatus(context.Background(), user.ID, sec.ProfileStatus("invisible"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
