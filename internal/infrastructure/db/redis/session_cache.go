package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCache fronts the Mongo session registry on the refresh hot path.
// Keys:
//
//	session:<sha256(token)>         → owning user id, TTL = session expiry
//	user_sessions:<user_id>         → set of hashed tokens, for bulk purge
//
// Token values are secrets, so only digests are stored. Mongo stays the
// source of truth; a miss here is not a failure.
type SessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a SessionCache wrapping the given Redis client.
func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

// Put records a live session. The user set carries the same TTL so an idle
// user's index does not outlive their last session.
func (c *SessionCache) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	digest := hashToken(token)

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, sessionKey(digest), userID, ttl)
	pipe.SAdd(ctx, userKey(userID), digest)
	pipe.Expire(ctx, userKey(userID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session cache put: %w", err)
	}
	return nil
}

// Get returns the owning user id for a token, with ok=false on a miss.
func (c *SessionCache) Get(ctx context.Context, token string) (string, bool, error) {
	userID, err := c.client.Get(ctx, sessionKey(hashToken(token))).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session cache get: %w", err)
	}
	return userID, true, nil
}

// DeleteToken evicts a single session.
func (c *SessionCache) DeleteToken(ctx context.Context, token string) error {
	digest := hashToken(token)

	userID, err := c.client.Get(ctx, sessionKey(digest)).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("session cache delete: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, sessionKey(digest))
	if userID != "" {
		pipe.SRem(ctx, userKey(userID), digest)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session cache delete: %w", err)
	}
	return nil
}

// DeleteUser evicts every cached session owned by the user.
func (c *SessionCache) DeleteUser(ctx context.Context, userID string) error {
	digests, err := c.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("session cache purge: %w", err)
	}

	pipe := c.client.TxPipeline()
	for _, digest := range digests {
		pipe.Del(ctx, sessionKey(digest))
	}
	pipe.Del(ctx, userKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session cache purge: %w", err)
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func sessionKey(digest string) string {
	return "session:" + digest
}

func userKey(userID string) string {
	return "user_sessions:" + userID
}
