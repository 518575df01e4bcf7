package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "storegate:revoked:"

// RevocationBackend is the slice of the Redis command surface the store
// needs. *redis.Client satisfies it.
type RevocationBackend interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RevocationStore tracks revoked token ids in Redis. Entries expire with the
// token itself, so the list never needs manual cleanup.
type RevocationStore struct {
	client RevocationBackend
}

// NewRevocationStore creates a revocation store over a Redis client.
func NewRevocationStore(client RevocationBackend) *RevocationStore {
	return &RevocationStore{client: client}
}

// Revoke marks a token id as revoked until the token would have expired
// anyway.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, revocationKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether a token id has been revoked.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revocationKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
