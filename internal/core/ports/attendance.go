package ports

import (
	"context"

	"github.com/worklock/worklock/internal/core/domain"
)

// AttendanceHistory is the per-wallet view assembled by the reader: records
// most recent day first, plus derived hour aggregates.
type AttendanceHistory struct {
	Records []domain.AttendanceRecord `json:"records"`
	Summary domain.HoursSummary       `json:"summary"`
}

// RosterHours is one employee's aggregate line in the admin roster view.
type RosterHours struct {
	Email     string  `json:"email"`
	Wallet    string  `json:"wallet"`
	TotalWeek float64 `json:"total_week"`
	TotalAll  float64 `json:"total_all"`
}

// AttendanceService drives the scan-to-ledger attendance protocol and reads
// historical records back.
type AttendanceService interface {
	// CheckIn decodes a scanned token, verifies it locally, binds the nonce
	// and submits check_in for the wallet.
	CheckIn(ctx context.Context, wallet string, rawScan []byte) (*SubmitReceipt, error)
	// CheckOut is the closing counterpart of CheckIn.
	CheckOut(ctx context.Context, wallet string, rawScan []byte) (*SubmitReceipt, error)
	// History reads the last windowDays of records and aggregates hours.
	// Individual failed day reads are skipped, never fatal.
	History(ctx context.Context, wallet string, windowDays int) (*AttendanceHistory, error)
	// RosterSummary aggregates hours per roster entry for the admin view.
	RosterSummary(ctx context.Context, roster []domain.RosterEntry, windowDays int) ([]RosterHours, error)
}
