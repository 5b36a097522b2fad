package handler

import "github.com/worklock/worklock/internal/core/domain"

// createEscrowRequest opens an agreement for one employee. Amount is a
// decimal string such as "1500.50"; it is scaled to the on-chain integer
// representation before submission.
type createEscrowRequest struct {
	Employee       string `json:"employee" validate:"required"`
	Resolver       string `json:"resolver" validate:"required"`
	BenefitsWallet string `json:"benefits_wallet" validate:"required"`
	Amount         string `json:"amount" validate:"required"`
	RequiredHours  uint64 `json:"required_hours" validate:"gt=0"`
}

type fundEscrowRequest struct {
	Amount string `json:"amount" validate:"required"`
}

type manualHoursRequest struct {
	Employee string `json:"employee" validate:"required"`
	Hours    uint64 `json:"hours" validate:"gt=0"`
}

type disputeRequest struct {
	Employee string `json:"employee"`
}

type resolveRequest struct {
	Employee          string `json:"employee" validate:"required"`
	ReleaseToEmployee bool   `json:"release_to_employee"`
}

// escrowResponse pairs the raw on-chain record with the human-readable
// amount so clients never redo the fixed-point math.
type escrowResponse struct {
	Escrow *domain.Escrow `json:"escrow"`
	Amount string         `json:"amount"`
}
