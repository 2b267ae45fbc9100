package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tribeoftech/atlas-files-manager/internal/store"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// keyPrefix namespaces session keys inside the shared Redis instance.
const keyPrefix = "auth_"

// SessionStore is the Redis implementation of store.SessionStore. Each
// token maps to its owner's ID and expires on its own; there is no
// per-user bookkeeping.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore wires an existing Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Create stores token -> userID with the given time-to-live.
func (s *SessionStore) Create(ctx context.Context, token string, userID bson.ObjectID, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+token, userID.Hex(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Resolve returns the user ID a token maps to. An expired token and a
// token that never existed are indistinguishable: both miss the key.
func (s *SessionStore) Resolve(ctx context.Context, token string) (bson.ObjectID, error) {
	val, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return bson.ObjectID{}, store.ErrNotFound
		}
		return bson.ObjectID{}, fmt.Errorf("failed to resolve session: %w", err)
	}

	userID, err := bson.ObjectIDFromHex(val)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("corrupt session value for token: %w", err)
	}
	return userID, nil
}

// Revoke deletes the mapping. A removed count of zero means the token was
// absent (or already expired) and surfaces as store.ErrNotFound.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	removed, err := s.client.Del(ctx, keyPrefix+token).Result()
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	if removed == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
