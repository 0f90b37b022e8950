// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package social

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/access"
	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/sec"
)

type edge struct {
	subscriber string
	subscribed string
}

// fakeRepository keeps profiles, edges, and history in memory.
type fakeRepository struct {
	profiles map[string]*Profile
	edges    []edge
	actions  []*HistoryEntry
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{profiles: map[string]*Profile{}}
}

func (r *fakeRepository) GetProfile(_ context.Context, userID string) (*Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperr.NotFound("Profile")
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepository) SearchProfiles(_ context.Context, _ string, _ int) ([]*Preview, error) {
	var previews []*Preview
	for _, p := range r.profiles {
		previews = append(previews, &Preview{UserID: p.UserID, Username: p.Username, Status: p.Status})
	}
	return previews, nil
}

func (r *fakeRepository) UpdateProfile(_ context.Context, p *Profile) error {
	if _, ok := r.profiles[p.UserID]; !ok {
		return apperr.NotFound("Profile")
	}
	copied := *p
	r.profiles[p.UserID] = &copied
	return nil
}

func (r *fakeRepository) ListSubscribers(_ context.Context, userID string) ([]*Preview, error) {
	var previews []*Preview
	for _, e := range r.edges {
		if e.subscribed == userID {
			previews = append(previews, &Preview{UserID: e.subscriber})
		}
	}
	return previews, nil
}

func (r *fakeRepository) ListSubscribed(_ context.Context, userID string) ([]*Preview, error) {
	var previews []*Preview
	for _, e := range r.edges {
		if e.subscriber == userID {
			previews = append(previews, &Preview{UserID: e.subscribed})
		}
	}
	return previews, nil
}

func (r *fakeRepository) IsSubscribed(_ context.Context, subscriberID, subscribedID string) (bool, error) {
	for _, e := range r.edges {
		if e.subscriber == subscriberID && e.subscribed == subscribedID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) CreateSubscription(_ context.Context, subscriberID, subscribedID string) error {
	if _, ok := r.profiles[subscribedID]; !ok {
		return apperr.NotFound("Referenced resource")
	}
	for _, e := range r.edges {
		if e.subscriber == subscriberID && e.subscribed == subscribedID {
			return apperr.Conflict("Resource already exists")
		}
	}
	r.edges = append(r.edges, edge{subscriber: subscriberID, subscribed: subscribedID})
	return nil
}

func (r *fakeRepository) DeleteSubscription(_ context.Context, subscriberID, subscribedID string) error {
	for i, e := range r.edges {
		if e.subscriber == subscriberID && e.subscribed == subscribedID {
			r.edges = append(r.edges[:i], r.edges[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Subscription")
}

func (r *fakeRepository) InsertAction(_ context.Context, entry *HistoryEntry) error {
	r.actions = append(r.actions, entry)
	return nil
}

func (r *fakeRepository) ListActions(_ context.Context, userID string, _ int) ([]*HistoryEntry, error) {
	var entries []*HistoryEntry
	for _, a := range r.actions {
		if a.UserID == userID {
			entries = append(entries, a)
		}
	}
	return entries, nil
}

func newTestService(repository Repository) *Service {
	return NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedProfile(repository *fakeRepository, userID string, status sec.ProfileStatus) {
	email := userID + "@example.com"
	repository.profiles[userID] = &Profile{
		UserID:    userID,
		Username:  "user_" + userID,
		Email:     &email,
		Role:      sec.RoleUser,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

func identityOf(userID string, role sec.UserRole) access.Identity {
	return access.Identity{UserID: userID, Role: role, Status: sec.StatusPublic}
}

func TestService_GetProfile_Visibility(t *testing.T) {
	repository := newFakeRepository()
	seedProfile(repository, "alice", sec.StatusPrivate)
	service := newTestService(repository)

	t.Run("owner_sees_private_profile", func(t *testing.T) {
		profile, err := service.GetProfile(context.Background(), identityOf("alice", sec.RoleUser), "alice")
		require.NoError(t, err)
		assert.NotNil(t, profile.Email)
	})

	t.Run("admin_sees_private_profile", func(t *testing.T) {
		_, err := service.GetProfile(context.Background(), identityOf("root", sec.RoleAdmin), "alice")
		require.NoError(t, err)
	})

	t.Run("stranger_gets_visible_forbidden_not_a_mask", func(t *testing.T) {
		_, err := service.GetProfile(context.Background(), identityOf("bob", sec.RoleUser), "alice")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("unknown_user_is_not_found", func(t *testing.T) {
		_, err := service.GetProfile(context.Background(), identityOf("bob", sec.RoleUser), "ghost")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

func TestService_GetProfile_StripsEmailForOthers(t *testing.T) {
	repository := newFakeRepository()
	seedProfile(repository, "alice", sec.StatusPublic)
	service := newTestService(repository)

	profile, err := service.GetProfile(context.Background(), identityOf("bob", sec.RoleUser), "alice")
	require.NoError(t, err)
	assert.Nil(t, profile.Email)

	// The stored record keeps its email.
	require.NotNil(t, repository.profiles["alice"].Email)
}

func TestService_UpdateProfile(t *testing.T) {
	repository := newFakeRepository()
	seedProfile(repository, "alice", sec.StatusPublic)
	service := newTestService(repository)

	bio := "Cinephile"
	t.Run("stranger_is_forbidden", func(t *testing.T) {
		_, err := service.UpdateProfile(context.Background(), identityOf("bob", sec.RoleUser), "alice",
			ProfileUpdate{Bio: &bio})
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("owner_partial_update", func(t *testing.T) {
		updated, err := service.UpdateProfile(context.Background(), identityOf("alice", sec.RoleUser), "alice",
			ProfileUpdate{Bio: &bio})
		require.NoError(t, err)
		require.NotNil(t, updated.Bio)
		assert.Equal(t, "Cinephile", *updated.Bio)
		assert.Equal(t, "user_alice", updated.Username)
	})

	t.Run("admin_may_edit_any_profile", func(t *testing.T) {
		username := "renamed"
		updated, err := service.UpdateProfile(context.Background(), identityOf("root", sec.RoleAdmin), "alice",
			ProfileUpdate{Username: &username})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Username)
	})
}

func TestService_Subscribe(t *testing.T) {
	repository := newFakeRepository()
	seedProfile(repository, "alice", sec.StatusPublic)
	seedProfile(repository, "carol", sec.StatusPrivate)
	service := newTestService(repository)
	bob := identityOf("bob", sec.RoleUser)

	t.Run("self_subscription_rejected", func(t *testing.T) {
		err := service.Subscribe(context.Background(), bob, "bob")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("private_target_forbidden", func(t *testing.T) {
		err := service.Subscribe(context.Background(), bob, "carol")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
		assert.Empty(t, repository.edges)
	})

	t.Run("public_target_succeeds_and_records_history", func(t *testing.T) {
		require.NoError(t, service.Subscribe(context.Background(), bob, "alice"))
		require.Len(t, repository.edges, 1)

		require.Len(t, repository.actions, 1)
		assert.Equal(t, "user_subscribed", repository.actions[0].Name)
		assert.Equal(t, "bob", repository.actions[0].UserID)
		assert.Equal(t, "alice", repository.actions[0].Attributes["target_id"])
	})

	t.Run("repeat_is_conflict", func(t *testing.T) {
		err := service.Subscribe(context.Background(), bob, "alice")
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

func TestService_Unsubscribe_AllowedAfterTargetGoesPrivate(t *testing.T) {
	repository := newFakeRepository()
	seedProfile(repository, "alice", sec.StatusPublic)
	service := newTestService(repository)
	bob := identityOf("bob", sec.RoleUser)

	require.NoError(t, service.Subscribe(context.Background(), bob, "alice"))
	repository.profiles["alice"].Status = sec.StatusPrivate

	require.NoError(t, service.Unsubscribe(context.Background(), bob, "alice"))
	assert.Empty(t, repository.edges)
}

func TestService_Unsubscribe_AbsentEdgeIsNotFound(t *testing.T) {
	repository := newFakeRepository()
	seedProfile(repository, "alice", sec.StatusPublic)
	service := newTestService(repository)

	err := service.Unsubscribe(context.Background(), identityOf("bob", sec.RoleUser), "alice")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_SubscriptionLists_GatedByVisibility(t *testing.T) {
	repository := newFakeRepository()
	seedProfile(repository, "alice", sec.StatusPrivate)
	repository.edges = append(repository.edges, edge{subscriber: "bob", subscribed: "alice"})
	service := newTestService(repository)

	_, err := service.GetSubscribers(context.Background(), identityOf("carol", sec.RoleUser), "alice")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	subscribers, err := service.GetSubscribers(context.Background(), identityOf("alice", sec.RoleUser), "alice")
	require.NoError(t, err)
	require.Len(t, subscribers, 1)
	assert.Equal(t, "bob", subscribers[0].UserID)
}

func TestService_GetActionHistory(t *testing.T) {
	repository := newFakeRepository()
	seedProfile(repository, "alice", sec.StatusPublic)
	service := newTestService(repository)
	require.NoError(t, service.RecordAction(context.Background(), "alice", "playlist_created",
		map[string]any{"playlist_id": "pl-1"}))

	t.Run("stranger_forbidden", func(t *testing.T) {
		_, err := service.GetActionHistory(context.Background(), identityOf("bob", sec.RoleUser), "alice")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("subscriber_allowed", func(t *testing.T) {
		repository.edges = append(repository.edges, edge{subscriber: "bob", subscribed: "alice"})
		entries, err := service.GetActionHistory(context.Background(), identityOf("bob", sec.RoleUser), "alice")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "playlist_created", entries[0].Name)
		assert.NotEmpty(t, entries[0].ActionID)
	})

	t.Run("owner_and_admin_allowed", func(t *testing.T) {
		_, err := service.GetActionHistory(context.Background(), identityOf("alice", sec.RoleUser), "alice")
		require.NoError(t, err)
		_, err = service.GetActionHistory(context.Background(), identityOf("root", sec.RoleAdmin), "alice")
		require.NoError(t, err)
	})
}
