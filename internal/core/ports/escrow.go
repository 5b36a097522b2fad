package ports

import (
	"context"

	"github.com/worklock/worklock/internal/core/domain"
)

// CreateEscrowInput carries all data needed to open a new escrow. Amount is
// the on-chain integer representation (currency scaled by 10^7).
type CreateEscrowInput struct {
	Employer       string
	Employee       string
	Resolver       string
	BenefitsWallet string
	Amount         int64
	RequiredHours  uint64
}

// FundEscrowInput transfers amount of the token asset into the escrow
// contract. Funding never changes escrow state; sufficiency is checked at
// claim time.
type FundEscrowInput struct {
	Employer string
	Amount   int64
}

// EscrowService reads escrow state and drives every lifecycle transition.
// Preconditions are enforced ledger-side; this service surfaces rejections,
// it never swallows them.
type EscrowService interface {
	// Status returns the employee's escrow, or (nil, nil) when none was ever
	// created, distinct from a refunded escrow.
	Status(ctx context.Context, employee string) (*domain.Escrow, error)
	Create(ctx context.Context, in CreateEscrowInput) (*SubmitReceipt, error)
	Fund(ctx context.Context, in FundEscrowInput) (*SubmitReceipt, error)
	Claim(ctx context.Context, employee string) (*SubmitReceipt, error)
	AddManualHours(ctx context.Context, employer, employee string, hours uint64) (*SubmitReceipt, error)
	OpenDispute(ctx context.Context, caller, employee string) (*SubmitReceipt, error)
	ResolveDispute(ctx context.Context, resolver, employee string, releaseToEmployee bool) (*SubmitReceipt, error)
}
