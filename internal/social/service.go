// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package social

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinelog/cinelog/internal/access"
	"github.com/cinelog/cinelog/internal/platform/apperr"
	uuidv7 "github.com/cinelog/cinelog/pkg/uuid"
)

const (
	// searchLimit caps profile search results.
	searchLimit = 50

	// historyLimit caps one page of action history.
	historyLimit = 100
)

// # Service Layer

// Service orchestrates the community rules on top of the access model.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// loadVisible fetches a profile through the visibility gate.
//
// A private profile read by a stranger fails with a visible Forbidden. The
// account's existence is public; only its content is gated.
func (service *Service) loadVisible(ctx context.Context, identity access.Identity, targetID string) (*Profile, error) {
	profile, err := service.repository.GetProfile(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !identity.CanViewProfile(profile.UserID, profile.Status) {
		return nil, apperr.Forbidden("This profile is private")
	}
	return profile, nil
}

// # Profiles

/*
GetProfile returns a user's profile.

Description: The owner and an admin always see it; others only when the
account status is public. Email is stripped from the answer unless the
requester is the owner or an admin.

Parameters:
  - ctx: context.Context
  - identity: access.Identity
  - targetID: string

Returns:
  - *Profile: The visible profile
  - error: apperr.NotFound, apperr.Forbidden, or storage failures
*/
func (service *Service) GetProfile(ctx context.Context, identity access.Identity, targetID string) (*Profile, error) {
	profile, err := service.loadVisible(ctx, identity, targetID)
	if err != nil {
		return nil, err
	}
	if !identity.IsOwner(profile.UserID) && !identity.IsAdmin() {
		profile.Email = nil
	}
	return profile, nil
}

// SearchProfiles looks up users by username fragment. Private accounts stay
// listed; their cards are public even when their content is not.
func (service *Service) SearchProfiles(ctx context.Context, username string) ([]*Preview, error) {
	previews, err := service.repository.SearchProfiles(ctx, username, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("social_service_search_failed: %w", err)
	}
	return previews, nil
}

/*
UpdateProfile applies the non-nil fields of the update to the target profile.

Description: Permitted for the profile owner and for an admin. Role, status,
and credentials are out of reach here; the auth engine owns those.
*/
func (service *Service) UpdateProfile(ctx context.Context, identity access.Identity, targetID string, update ProfileUpdate) (*Profile, error) {
	if !identity.IsOwner(targetID) && !identity.IsAdmin() {
		return nil, apperr.Forbidden("You may only edit your own profile")
	}

	profile, err := service.repository.GetProfile(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		profile.Username = *update.Username
	}
	if update.Bio != nil {
		profile.Bio = update.Bio
	}
	if update.Location != nil {
		profile.Location = update.Location
	}
	if update.BirthDate != nil {
		profile.BirthDate = update.BirthDate
	}
	if update.Avatar != nil {
		profile.Avatar = update.Avatar
	}

	if err := service.repository.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("social_service_update_profile_failed: %w", err)
	}

	service.logger.Info("profile_updated",
		slog.String("user_id", targetID), slog.String("actor_id", identity.UserID))
	return profile, nil
}

// # Subscriptions

// GetSubscribers lists who follows the target. Gated by profile visibility.
func (service *Service) GetSubscribers(ctx context.Context, identity access.Identity, targetID string) ([]*Preview, error) {
	if _, err := service.loadVisible(ctx, identity, targetID); err != nil {
		return nil, err
	}
	previews, err := service.repository.ListSubscribers(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("social_service_get_subscribers_failed: %w", err)
	}
	return previews, nil
}

// GetSubscribes lists who the target follows. Gated by profile visibility.
func (service *Service) GetSubscribes(ctx context.Context, identity access.Identity, targetID string) ([]*Preview, error) {
	if _, err := service.loadVisible(ctx, identity, targetID); err != nil {
		return nil, err
	}
	previews, err := service.repository.ListSubscribed(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("social_service_get_subscribes_failed: %w", err)
	}
	return previews, nil
}

/*
Subscribe creates the directed edge requester → target.

Description: Self-subscription is rejected before storage is touched. The
target must exist and be public; following a private account is refused with
Forbidden even for current followers. The new edge is recorded in the
requester's action history.

Parameters:
  - ctx: context.Context
  - identity: access.Identity
  - targetID: string

Returns:
  - error: Validation, visibility, Conflict on a repeat, or storage failures
*/
func (service *Service) Subscribe(ctx context.Context, identity access.Identity, targetID string) error {
	if identity.UserID == targetID {
		return apperr.ValidationError("You cannot subscribe to yourself")
	}

	target, err := service.repository.GetProfile(ctx, targetID)
	if err != nil {
		return err
	}
	if !target.Status.IsPublic() {
		return apperr.Forbidden("This profile is private")
	}

	if err := service.repository.CreateSubscription(ctx, identity.UserID, targetID); err != nil {
		return err
	}

	service.record(ctx, identity.UserID, "user_subscribed", map[string]any{"target_id": targetID})
	service.logger.Info("subscription_created",
		slog.String("subscriber_id", identity.UserID), slog.String("subscribed_id", targetID))
	return nil
}

/*
Unsubscribe removes the requester's own edge to the target.

Description: Always allowed, even when the target has since gone private;
leaving never requires permission. Removing an edge that does not exist
fails with NotFound.
*/
func (service *Service) Unsubscribe(ctx context.Context, identity access.Identity, targetID string) error {
	if identity.UserID == targetID {
		return apperr.ValidationError("You cannot unsubscribe from yourself")
	}

	if err := service.repository.DeleteSubscription(ctx, identity.UserID, targetID); err != nil {
		return err
	}

	service.record(ctx, identity.UserID, "user_unsubscribed", map[string]any{"target_id": targetID})
	return nil
}

// # Action History

/*
GetActionHistory returns the target's recorded actions, newest first.

Description: Visible to the owner, an admin, or a requester who subscribes
to the target. Everyone else gets Forbidden.
*/
func (service *Service) GetActionHistory(ctx context.Context, identity access.Identity, targetID string) ([]*HistoryEntry, error) {
	allowed := identity.IsOwner(targetID) || identity.IsAdmin()
	if !allowed {
		subscribed, err := service.repository.IsSubscribed(ctx, identity.UserID, targetID)
		if err != nil {
			return nil, fmt.Errorf("social_service_history_gate_failed: %w", err)
		}
		allowed = subscribed
	}
	if !allowed {
		return nil, apperr.Forbidden("Action history is visible to subscribers only")
	}

	entries, err := service.repository.ListActions(ctx, targetID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("social_service_history_failed: %w", err)
	}
	return entries, nil
}

// RecordAction appends an entry to a user's history on behalf of another
// engine. Satisfies the recorder contracts of the playlist service.
func (service *Service) RecordAction(ctx context.Context, userID, name string, attributes map[string]any) error {
	return service.repository.InsertAction(ctx, &HistoryEntry{
		ActionID:   uuidv7.New(),
		UserID:     userID,
		Name:       name,
		Date:       time.Now().UTC(),
		Attributes: attributes,
	})
}

// record is the in-package flavor of RecordAction: best-effort, log-only on
// failure.
func (service *Service) record(ctx context.Context, userID, name string, attributes map[string]any) {
	if err := service.RecordAction(ctx, userID, name, attributes); err != nil {
		service.logger.Warn("social_action_record_failed",
			slog.String("action", name), slog.String("error", err.Error()))
	}
}
