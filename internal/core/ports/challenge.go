package ports

import (
	"context"
	"time"

	"github.com/worklock/worklock/internal/core/domain"
)

// ChallengeStore holds the single live challenge. There is at most one
// current challenge per deployment; a new issuance supersedes it.
type ChallengeStore interface {
	// Get returns the current challenge; found=false when none is stored or
	// the stored one has lapsed out of the store.
	Get(ctx context.Context) (ch domain.Challenge, found bool, err error)
	// Put replaces the current challenge, expiring it from the store after ttl.
	Put(ctx context.Context, ch domain.Challenge, ttl time.Duration) error
}

// ChallengeService issues and serves the live check-in/check-out challenge.
type ChallengeService interface {
	// Current returns the live challenge, issuing a fresh one when the
	// previous has expired.
	Current(ctx context.Context) (domain.Challenge, error)
}
