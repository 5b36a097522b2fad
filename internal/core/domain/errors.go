package domain

import (
	"errors"
	"fmt"
)

// Ledger interaction failure taxonomy. Network-level failures are
// recoverable; contract-level rejections carry the contract-reported reason
// verbatim because that string holds the actionable detail ("already checked
// in today", "not enough hours", ...).

var ErrAccountUnreachable = errors.New("account unreachable")
var ErrSigningDeclined = errors.New("signing declined")

// SimulationRejectedError is returned when transaction simulation fails a
// contract-enforced precondition. It is never retried automatically.
type SimulationRejectedError struct {
	Reason string
}

func (e *SimulationRejectedError) Error() string {
	return fmt.Sprintf("simulation rejected: %s", e.Reason)
}

// SubmissionRejectedError is returned when the network or consensus rejects a
// signed transaction.
type SubmissionRejectedError struct {
	Reason string
}

func (e *SubmissionRejectedError) Error() string {
	return fmt.Sprintf("submission rejected: %s", e.Reason)
}
