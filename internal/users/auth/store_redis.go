// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// The key is the refresh-token digest, the value the owning userID. Redis
// expiry enforces the session TTL; a revoked session is simply a deleted
// key, so no revocation flags exist.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed [SessionRepository].
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

/*
Set stores a refresh-token digest with its owning userID.

Parameters:
  - ctx: context.Context
  - tokenHash: string
  - userID: string

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Set(ctx context.Context, tokenHash, userID string) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Set(ctx, key, userID, RefreshTokenTTL).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the userID for a refresh-token digest.

Description: Returns apperr.NotFound when the session is absent or has
expired; the two cases are indistinguishable on purpose.

Parameters:
  - ctx: context.Context
  - tokenHash: string

Returns:
  - string: Owning UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) Get(ctx context.Context, tokenHash string) (string, error) {
	key := constants.RedisPrefixSession + tokenHash

	userID, err := repository.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Session")
		}
		return "", fmt.Errorf("redis_session_get_failed: %w", err)
	}
	return userID, nil
}

/*
Delete revokes one session. Deleting an absent key is a successful no-op,
which keeps logout idempotent.

Parameters:
  - ctx: context.Context
  - tokenHash: string

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Delete(ctx context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
