package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/worklock/worklock/internal/api/metrics"
	"github.com/worklock/worklock/internal/core/domain"
	"github.com/worklock/worklock/internal/core/ports"
)

const (
	// DefaultHistoryDays is the rolling window for personal history views.
	DefaultHistoryDays = 30
	// RosterWindowDays is the shorter window used by roster-wide admin views.
	RosterWindowDays = 14

	opCheckIn       = "check_in"
	opCheckOut      = "check_out"
	opGetAttendance = "get_attendance"
)

// ReplayGuard abstracts the best-effort nonce replay store (Redis). It only
// saves a wasted round trip: the ledger independently rejects a repeated
// nonce for the same wallet and day.
type ReplayGuard interface {
	Seen(ctx context.Context, wallet string, day uint64, nonce domain.Nonce) (bool, error)
	Mark(ctx context.Context, wallet string, day uint64, nonce domain.Nonce) error
}

// AttendanceService implements the scan-to-ledger attendance protocol and the
// history reader.
type AttendanceService struct {
	tx       *TxAssembler
	contract string
	guard    ReplayGuard
	log      zerolog.Logger
	now      func() time.Time
}

// NewAttendanceService wires the service against the attendance contract.
// guard may be nil.
func NewAttendanceService(tx *TxAssembler, contract string, guard ReplayGuard, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		tx:       tx,
		contract: contract,
		guard:    guard,
		log:      log,
		now:      time.Now,
	}
}

// CheckIn authorizes and submits the opening punch for today.
func (s *AttendanceService) CheckIn(ctx context.Context, wallet string, rawScan []byte) (*ports.SubmitReceipt, error) {
	return s.punch(ctx, wallet, rawScan, opCheckIn)
}

// CheckOut authorizes and submits the closing punch for today.
func (s *AttendanceService) CheckOut(ctx context.Context, wallet string, rawScan []byte) (*ports.SubmitReceipt, error) {
	return s.punch(ctx, wallet, rawScan, opCheckOut)
}

func (s *AttendanceService) punch(ctx context.Context, wallet string, rawScan []byte, operation string) (*ports.SubmitReceipt, error) {
	// 1. Recover the challenge from the scanned payload.
	ch, err := domain.DecodeToken(rawScan)
	if err != nil {
		return nil, err
	}

	// 2. Local expiry pre-check. This only avoids a wasted round trip; the
	// ledger independently validates expiry and nonce freshness.
	now := s.now()
	if ch.Expired(now) {
		return nil, domain.ErrExpiredChallenge
	}

	// 3. Bind this wallet to this challenge instance.
	nonce := domain.BindNonce(ch.Value, wallet)
	day := domain.DayEpoch(now)

	// 4. Best-effort replay short-circuit.
	if s.guard != nil {
		seen, gerr := s.guard.Seen(ctx, wallet, day, nonce)
		if gerr != nil {
			s.log.Warn().Err(gerr).Str("wallet", wallet).Msg("replay guard check failed, submitting anyway")
		} else if seen {
			metrics.NonceReplayTotal.WithLabelValues("hit").Inc()
			return nil, &domain.SimulationRejectedError{Reason: "nonce already used today"}
		} else {
			metrics.NonceReplayTotal.WithLabelValues("miss").Inc()
		}
	}

	// 5. Submit. Contract rejections ("already checked in today", "employee
	// not registered", ...) surface verbatim.
	receipt, err := s.tx.Submit(ctx, s.contract, operation, wallet,
		ports.AddressArg(wallet),
		ports.BytesArg(nonce.Bytes()),
	)
	if err != nil {
		return nil, err
	}

	if s.guard != nil {
		if gerr := s.guard.Mark(ctx, wallet, day, nonce); gerr != nil {
			s.log.Warn().Err(gerr).Str("wallet", wallet).Msg("failed to mark nonce in replay guard")
		}
	}

	s.log.Info().
		Str("wallet", wallet).
		Str("operation", operation).
		Uint64("day", day).
		Msg("attendance punch recorded")

	return receipt, nil
}

// attendanceResult is the wire shape of a get_attendance return value.
type attendanceResult struct {
	CheckIn  *int64 `json:"check_in"`
	CheckOut *int64 `json:"check_out"`
}

// History reads the last windowDays of records, most recent day first, and
// derives the hour aggregates. Days are independent reads issued
// concurrently; a failed day is logged and skipped so one network error never
// aborts the rest of the window.
func (s *AttendanceService) History(ctx context.Context, wallet string, windowDays int) (*ports.AttendanceHistory, error) {
	if windowDays <= 0 {
		windowDays = DefaultHistoryDays
	}

	now := s.now()
	today := domain.DayEpoch(now)

	slots := make([]*domain.AttendanceRecord, windowDays)
	var wg sync.WaitGroup
	for i := 0; i < windowDays; i++ {
		if uint64(i) > today {
			break
		}
		wg.Add(1)
		go func(idx int, day uint64) {
			defer wg.Done()
			rec, err := s.readDay(ctx, wallet, day)
			if err != nil {
				metrics.AttendanceReadFailuresTotal.Inc()
				s.log.Warn().Err(err).Uint64("day", day).Str("wallet", wallet).Msg("day read failed, skipping")
				return
			}
			slots[idx] = rec
		}(i, today-uint64(i))
	}
	wg.Wait()

	weekStart := domain.WeekStart(now).Unix()
	monthStart := domain.MonthStart(now).Unix()

	history := &ports.AttendanceHistory{Records: make([]domain.AttendanceRecord, 0, windowDays)}
	for _, rec := range slots {
		if rec == nil {
			continue
		}
		history.Records = append(history.Records, *rec)

		// Open records (check-in only) never contribute hours.
		if !rec.Complete() {
			continue
		}
		hours := rec.Hours()
		dayStart := int64(rec.Day) * domain.SecondsPerDay

		history.Summary.TotalAll += hours
		if dayStart >= weekStart {
			history.Summary.TotalWeek += hours
		}
		if dayStart >= monthStart {
			history.Summary.TotalMonth += hours
		}
	}
	return history, nil
}

// readDay fetches one day's record; (nil, nil) means no record exists.
func (s *AttendanceService) readDay(ctx context.Context, wallet string, day uint64) (*domain.AttendanceRecord, error) {
	raw, err := s.tx.Read(ctx, s.contract, opGetAttendance, wallet,
		ports.AddressArg(wallet),
		ports.U64Arg(day),
	)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var res attendanceResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode attendance record: %w", err)
	}

	rec := &domain.AttendanceRecord{Wallet: wallet, Day: day}
	if res.CheckIn != nil {
		rec.CheckIn = *res.CheckIn
	}
	if res.CheckOut != nil {
		rec.CheckOut = *res.CheckOut
	}
	return rec, nil
}

// RosterSummary aggregates hours per employee for the admin view. An
// employee whose reads fail entirely is skipped, mirroring the per-day
// tolerance of History.
func (s *AttendanceService) RosterSummary(ctx context.Context, roster []domain.RosterEntry, windowDays int) ([]ports.RosterHours, error) {
	if windowDays <= 0 {
		windowDays = RosterWindowDays
	}

	out := make([]ports.RosterHours, 0, len(roster))
	for _, entry := range roster {
		history, err := s.History(ctx, entry.Wallet, windowDays)
		if err != nil {
			s.log.Warn().Err(err).Str("wallet", entry.Wallet).Msg("roster aggregation failed for employee, skipping")
			continue
		}
		out = append(out, ports.RosterHours{
			Email:     entry.Email,
			Wallet:    entry.Wallet,
			TotalWeek: history.Summary.TotalWeek,
			TotalAll:  history.Summary.TotalAll,
		})
	}
	return out, nil
}
