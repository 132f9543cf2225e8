// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alumhub/alumhub/internal/platform/apperr"
	"github.com/alumhub/alumhub/internal/platform/constants"
	"github.com/alumhub/alumhub/internal/users/identity"
)

// RedisSessionRepository implements Repository using Redis.
type RedisSessionRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisSessionRepository creates a new Redis-backed session Repository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, now: time.Now}
}

/*
Create persists the session as a JSON blob with the TTL set to its absolute
deadline.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Persistence failures
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {

	// Serialize the full record including the embedded principal
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	// TTL equals the remaining life of the session
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis_session_create_failed: session already expired")
	}

	// Set the session with TTL
	key := constants.RedisPrefixSession + session.ID
	if err := repository.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Find retrieves the session for a given ID.

Description: Returns apperr.NotFound if the session is absent or expired. A
record whose embedded deadline has passed is treated as absent even if the
Redis key somehow survived.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *Session: Hydrated entity
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) Find(context context.Context, sessionID string) (*Session, error) {

	// Get the session from Redis
	key := constants.RedisPrefixSession + sessionID
	payload, err := repository.client.Get(context, key).Bytes()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	// Deserialize the record
	var record Session
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("redis_session_unmarshal_failed: %w", err)
	}

	// Belt-and-braces deadline check on the payload itself
	if record.Expired(repository.now()) {
		return nil, apperr.NotFound("Session")
	}

	// Return the session
	return &record, nil
}

/*
UpdatePrincipal rewrites the stored principal while preserving the key's TTL.

Description: Uses redis.KeepTTL so a token refresh never extends the login's
absolute deadline.

Parameters:
  - context: context.Context
  - sessionID: string
  - principal: *identity.Principal

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *RedisSessionRepository) UpdatePrincipal(context context.Context, sessionID string, principal *identity.Principal) error {

	// Load the current record to keep its metadata intact
	record, err := repository.Find(context, sessionID)
	if err != nil {
		return err
	}

	// Swap in the refreshed principal
	record.Principal = *principal

	// Serialize the updated record
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	// KeepTTL preserves the absolute session deadline
	key := constants.RedisPrefixSession + sessionID
	if err := repository.client.Set(context, key, payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("redis_session_update_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Delete removes the session from Redis.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Delete(context context.Context, sessionID string) error {

	// Delete the session key; DEL on a missing key is a no-op
	key := constants.RedisPrefixSession + sessionID
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
