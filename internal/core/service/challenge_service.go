package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/worklock/worklock/internal/api/metrics"
	"github.com/worklock/worklock/internal/core/domain"
	"github.com/worklock/worklock/internal/core/ports"
)

const defaultChallengeTTL = 60 * time.Second

// ChallengeService issues the single live attendance challenge. The
// challenge value is the hex sha256 of a random seed; clients never validate
// or regenerate it, they only consume it.
type ChallengeService struct {
	store ports.ChallengeStore
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time
}

func NewChallengeService(store ports.ChallengeStore, ttl time.Duration, log zerolog.Logger) *ChallengeService {
	if ttl <= 0 {
		ttl = defaultChallengeTTL
	}
	return &ChallengeService{
		store: store,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}
}

// Current returns the live challenge, issuing a fresh one when the stored
// challenge is missing or expired. At most one challenge is live at a time; a
// new issuance supersedes, never mutates, the previous one.
func (s *ChallengeService) Current(ctx context.Context) (domain.Challenge, error) {
	ch, found, err := s.store.Get(ctx)
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("challenge store: %w", err)
	}
	if found && !ch.Expired(s.now()) {
		return ch, nil
	}
	return s.issue(ctx)
}

func (s *ChallengeService) issue(ctx context.Context) (domain.Challenge, error) {
	now := s.now()
	seed := uuid.NewString() + strconv.FormatInt(now.UnixNano(), 10)
	sum := sha256.Sum256([]byte(seed))

	ch := domain.Challenge{
		Value:     hex.EncodeToString(sum[:]),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	if err := s.store.Put(ctx, ch, s.ttl); err != nil {
		return domain.Challenge{}, fmt.Errorf("challenge store: %w", err)
	}

	metrics.ChallengesIssuedTotal.Inc()
	s.log.Debug().Int64("expires_at", ch.ExpiresAt).Msg("challenge issued")
	return ch, nil
}
