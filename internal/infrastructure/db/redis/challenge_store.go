package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/worklock/worklock/internal/core/domain"
)

const challengeKey = "challenge:current"

// ChallengeStore keeps the single live challenge in Redis so every API
// instance serves the same token until it expires.
type ChallengeStore struct {
	client *redis.Client
}

// NewChallengeStore creates a ChallengeStore wrapping the given Redis client.
func NewChallengeStore(client *redis.Client) *ChallengeStore {
	return &ChallengeStore{client: client}
}

// Get returns the current challenge, or found=false when none is live.
func (s *ChallengeStore) Get(ctx context.Context) (domain.Challenge, bool, error) {
	raw, err := s.client.Get(ctx, challengeKey).Bytes()
	if err == redis.Nil {
		return domain.Challenge{}, false, nil
	}
	if err != nil {
		return domain.Challenge{}, false, fmt.Errorf("challenge get: %w", err)
	}

	var ch domain.Challenge
	if err := json.Unmarshal(raw, &ch); err != nil {
		return domain.Challenge{}, false, fmt.Errorf("challenge decode: %w", err)
	}
	return ch, true, nil
}

// Put stores the challenge with the given TTL so Redis retires it on its own.
func (s *ChallengeStore) Put(ctx context.Context, ch domain.Challenge, ttl time.Duration) error {
	raw, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("challenge encode: %w", err)
	}
	return s.client.Set(ctx, challengeKey, raw, ttl).Err()
}
