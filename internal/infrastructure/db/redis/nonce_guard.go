package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/worklock/worklock/internal/core/domain"
)

const nonceTTL = 48 * time.Hour

// NonceGuard provides replay checks backed by Redis.
// Key format: nonce:<wallet>:<day>:<nonce_hex>
type NonceGuard struct {
	client *redis.Client
}

// NewNonceGuard creates a NonceGuard wrapping the given Redis client.
func NewNonceGuard(client *redis.Client) *NonceGuard {
	return &NonceGuard{client: client}
}

// Seen reports whether this nonce was already spent for the wallet and day.
func (g *NonceGuard) Seen(ctx context.Context, wallet string, day uint64, nonce domain.Nonce) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(wallet, day, nonce)).Result()
	if err != nil {
		return false, fmt.Errorf("nonce check: %w", err)
	}
	return n > 0, nil
}

// Mark records the nonce as spent. Entries outlive the day they guard and
// then expire on their own.
func (g *NonceGuard) Mark(ctx context.Context, wallet string, day uint64, nonce domain.Nonce) error {
	return g.client.Set(ctx, g.key(wallet, day, nonce), "1", nonceTTL).Err()
}

func (g *NonceGuard) key(wallet string, day uint64, nonce domain.Nonce) string {
	return fmt.Sprintf("nonce:%s:%d:%s", wallet, day, nonce.Hex())
}
