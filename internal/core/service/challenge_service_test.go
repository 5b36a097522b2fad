package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/worklock/worklock/internal/core/domain"
)

type memChallengeStore struct {
	ch    domain.Challenge
	found bool
	puts  int
}

func (m *memChallengeStore) Get(_ context.Context) (domain.Challenge, bool, error) {
	return m.ch, m.found, nil
}

func (m *memChallengeStore) Put(_ context.Context, ch domain.Challenge, _ time.Duration) error {
	m.ch = ch
	m.found = true
	m.puts++
	return nil
}

func TestChallengeService_IssuesWhenEmpty(t *testing.T) {
	store := &memChallengeStore{}
	svc := NewChallengeService(store, 60*time.Second, zerolog.Nop())
	svc.now = func() time.Time { return time.Unix(1000, 0) }

	ch, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if ch.Value == "" {
		t.Fatalf("expected a challenge value")
	}
	if ch.ExpiresAt != 1060 {
		t.Fatalf("expected expiry 1060, got %d", ch.ExpiresAt)
	}
	if store.puts != 1 {
		t.Fatalf("expected one store put, got %d", store.puts)
	}
}

func TestChallengeService_ServesLiveChallenge(t *testing.T) {
	store := &memChallengeStore{}
	svc := NewChallengeService(store, 60*time.Second, zerolog.Nop())
	svc.now = func() time.Time { return time.Unix(1000, 0) }

	first, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}

	svc.now = func() time.Time { return time.Unix(1030, 0) }
	second, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}

	if first != second {
		t.Fatalf("live challenge must be reused, got a new one")
	}
	if store.puts != 1 {
		t.Fatalf("no reissue expected while live, got %d puts", store.puts)
	}
}

func TestChallengeService_ReissuesAfterExpiry(t *testing.T) {
	store := &memChallengeStore{}
	svc := NewChallengeService(store, 60*time.Second, zerolog.Nop())
	svc.now = func() time.Time { return time.Unix(1000, 0) }

	first, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}

	svc.now = func() time.Time { return time.Unix(1061, 0) }
	second, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}

	if first.Value == second.Value {
		t.Fatalf("expected a fresh challenge after expiry")
	}
	if second.ExpiresAt != 1061+60 {
		t.Fatalf("expected expiry 1121, got %d", second.ExpiresAt)
	}
	if store.puts != 2 {
		t.Fatalf("expected two issues, got %d", store.puts)
	}
}
