package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// EscrowState represents the lifecycle state of an escrow.
type EscrowState string

const (
	EscrowActive   EscrowState = "active"
	EscrowDisputed EscrowState = "disputed"
	EscrowReleased EscrowState = "released"
	EscrowRefunded EscrowState = "refunded"
)

// validEscrowTransitions defines the allowed state machine transitions.
// Released and Refunded are terminal.
var validEscrowTransitions = map[EscrowState][]EscrowState{
	EscrowActive:   {EscrowDisputed, EscrowReleased},
	EscrowDisputed: {EscrowReleased, EscrowRefunded},
}

var ErrInvalidEscrowTransition = errors.New("invalid escrow state transition")
var ErrInvalidAmount = errors.New("invalid amount")

// CanTransitionTo reports whether a transition from the current state to next
// is valid.
func (s EscrowState) CanTransitionTo(next EscrowState) bool {
	for _, allowed := range validEscrowTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the state admits no further transitions.
func (s EscrowState) Terminal() bool {
	return s == EscrowReleased || s == EscrowRefunded
}

// AmountScale is the protocol constant for on-chain amounts: the ledger
// integer represents currency scaled by 10^7. Not configurable.
const AmountScale = 7

// Escrow is the contract-held agreement between employer and employee. Funds
// are released to the employee once RequiredHours of verified attendance is
// met, or by the resolver after a dispute. The benefits wallet receives the
// statutory cut on release.
type Escrow struct {
	Employer       string      `json:"employer"`
	Employee       string      `json:"employee"`
	Resolver       string      `json:"resolver"`
	BenefitsWallet string      `json:"benefits_wallet"`
	TokenContract  string      `json:"token_contract"`
	Amount         int64       `json:"amount"`
	RequiredHours  uint64      `json:"required_hours"`
	ManualHours    uint64      `json:"manual_hours"`
	State          EscrowState `json:"state"`
}

// DisplayAmount converts the on-chain integer amount to its decimal currency
// representation (divide by 10^7).
func (e Escrow) DisplayAmount() string {
	return FormatAmount(e.Amount)
}

// FormatAmount renders an on-chain integer amount as a decimal string.
func FormatAmount(raw int64) string {
	return decimal.New(raw, -AmountScale).StringFixed(AmountScale)
}

// ParseAmount converts a decimal currency string ("100.0000000") to the
// on-chain integer representation. Amounts must be positive and carry at most
// seven decimal places.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if d.Sign() <= 0 || d.Exponent() < -AmountScale {
		return 0, ErrInvalidAmount
	}
	return d.Shift(AmountScale).IntPart(), nil
}
