package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/worklock/worklock/internal/core/domain"
	"github.com/worklock/worklock/internal/core/ports"
)

// RotorState is the countdown scheduler's state.
type RotorState string

const (
	RotorIdle     RotorState = "idle"
	RotorCounting RotorState = "counting"
	RotorExpired  RotorState = "expired"
)

// ChallengeRotor drives the display-side refresh loop: it counts the live
// challenge down once per second and fetches a replacement the moment it
// expires, re-entering the countdown with the new one. Exactly one timer is
// live at any time, and the whole loop is bound to the context passed to
// Start: cancelling it stops the timer and returns the rotor to Idle, so no
// background task outlives its session.
type ChallengeRotor struct {
	challenges ports.ChallengeService
	interval   time.Duration
	onTick     func(remaining time.Duration)
	onRefresh  func(ch domain.Challenge)
	log        zerolog.Logger
	now        func() time.Time

	mu      sync.Mutex
	state   RotorState
	current domain.Challenge
}

// NewChallengeRotor builds a rotor ticking at the given interval (one second
// when zero). onTick and onRefresh may be nil.
func NewChallengeRotor(challenges ports.ChallengeService, interval time.Duration, onTick func(time.Duration), onRefresh func(domain.Challenge), log zerolog.Logger) *ChallengeRotor {
	if interval <= 0 {
		interval = time.Second
	}
	return &ChallengeRotor{
		challenges: challenges,
		interval:   interval,
		onTick:     onTick,
		onRefresh:  onRefresh,
		log:        log,
		now:        time.Now,
		state:      RotorIdle,
	}
}

// Start fetches the initial challenge, enters Counting and launches the tick
// loop. It returns an error only when the initial fetch fails; later fetch
// failures are logged and retried on the next tick.
func (r *ChallengeRotor) Start(ctx context.Context) error {
	ch, err := r.challenges.Current(ctx)
	if err != nil {
		return fmt.Errorf("rotor start: %w", err)
	}

	r.mu.Lock()
	if r.state != RotorIdle {
		r.mu.Unlock()
		return fmt.Errorf("rotor start: already running")
	}
	r.current = ch
	r.state = RotorCounting
	r.mu.Unlock()

	if r.onRefresh != nil {
		r.onRefresh(ch)
	}

	go r.loop(ctx)
	return nil
}

// loop owns the single timer handle. Each pass re-arms the same handle, so
// replacing the challenge can never leave two timers live.
func (r *ChallengeRotor) loop(ctx context.Context) {
	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.mu.Lock()
			r.state = RotorIdle
			r.mu.Unlock()
			return
		case <-timer.C:
			r.tick(ctx)
			timer.Reset(r.interval)
		}
	}
}

func (r *ChallengeRotor) tick(ctx context.Context) {
	r.mu.Lock()
	remaining := r.current.Remaining(r.now())
	r.mu.Unlock()

	if remaining > 0 {
		if r.onTick != nil {
			r.onTick(remaining)
		}
		return
	}

	// Counting -> Expired, then synchronously re-issue and re-enter Counting.
	r.mu.Lock()
	r.state = RotorExpired
	r.mu.Unlock()

	ch, err := r.challenges.Current(ctx)
	if err != nil {
		// Stay in Expired; the next tick retries.
		r.log.Warn().Err(err).Msg("challenge refresh failed")
		return
	}

	r.mu.Lock()
	r.current = ch
	r.state = RotorCounting
	r.mu.Unlock()

	if r.onRefresh != nil {
		r.onRefresh(ch)
	}
}

// State returns the rotor's current state.
func (r *ChallengeRotor) State() RotorState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Current returns the challenge the rotor is counting down.
func (r *ChallengeRotor) Current() domain.Challenge {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
