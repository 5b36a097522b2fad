package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/worklock/worklock/internal/core/domain"
	"github.com/worklock/worklock/internal/core/ports"
)

const (
	opCreateEscrow   = "create_escrow"
	opAddManualHours = "add_manual_hours"
	opClaim          = "claim"
	opOpenDispute    = "open_dispute"
	opResolveDispute = "resolve_dispute"
	opGetEscrow      = "get_escrow"
	opTransfer       = "transfer"
)

// EscrowService drives the escrow lifecycle. Every transition is guarded
// ledger-side; this service forwards the calls and surfaces rejections with
// their contract-reported reasons, never swallowing them. They represent
// money.
type EscrowService struct {
	tx                 *TxAssembler
	escrowContract     string
	attendanceContract string
	tokenContract      string
	log                zerolog.Logger
}

func NewEscrowService(tx *TxAssembler, escrowContract, attendanceContract, tokenContract string, log zerolog.Logger) *EscrowService {
	return &EscrowService{
		tx:                 tx,
		escrowContract:     escrowContract,
		attendanceContract: attendanceContract,
		tokenContract:      tokenContract,
		log:                log,
	}
}

// Status returns the employee's escrow, or (nil, nil) when none was ever
// created. Absence is distinct from a refunded escrow, which still reads back
// with state refunded.
func (s *EscrowService) Status(ctx context.Context, employee string) (*domain.Escrow, error) {
	raw, err := s.tx.Read(ctx, s.escrowContract, opGetEscrow, employee,
		ports.AddressArg(employee),
	)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var esc domain.Escrow
	if err := json.Unmarshal(raw, &esc); err != nil {
		return nil, fmt.Errorf("decode escrow: %w", err)
	}
	return &esc, nil
}

// Create opens a new escrow in the Active state. The ledger rejects a second
// escrow while one is already active for the employee.
func (s *EscrowService) Create(ctx context.Context, in ports.CreateEscrowInput) (*ports.SubmitReceipt, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	receipt, err := s.tx.Submit(ctx, s.escrowContract, opCreateEscrow, in.Employer,
		ports.AddressArg(in.Employer),
		ports.AddressArg(in.Employee),
		ports.AddressArg(s.attendanceContract),
		ports.AddressArg(in.Resolver),
		ports.AddressArg(in.BenefitsWallet),
		ports.AddressArg(s.tokenContract),
		ports.I128Arg(in.Amount),
		ports.U64Arg(in.RequiredHours),
	)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("employer", in.Employer).
		Str("employee", in.Employee).
		Str("amount", domain.FormatAmount(in.Amount)).
		Uint64("required_hours", in.RequiredHours).
		Msg("escrow created")
	return receipt, nil
}

// Fund transfers amount of the token asset into the escrow contract. State
// is untouched: funding sufficiency is checked at claim time, not here.
func (s *EscrowService) Fund(ctx context.Context, in ports.FundEscrowInput) (*ports.SubmitReceipt, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	receipt, err := s.tx.Submit(ctx, s.tokenContract, opTransfer, in.Employer,
		ports.AddressArg(in.Employer),
		ports.AddressArg(s.escrowContract),
		ports.I128Arg(in.Amount),
	)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("employer", in.Employer).
		Str("amount", domain.FormatAmount(in.Amount)).
		Msg("escrow funded")
	return receipt, nil
}

// Claim asks the contract to release the escrow to the employee. The
// contract verifies funding and that required hours are met from attendance
// plus manual credits; on rejection the state is unchanged.
func (s *EscrowService) Claim(ctx context.Context, employee string) (*ports.SubmitReceipt, error) {
	return s.tx.Submit(ctx, s.escrowContract, opClaim, employee,
		ports.AddressArg(employee),
	)
}

// AddManualHours credits hours outside the check-in/check-out path, e.g.
// correcting missed punches. State is unchanged.
func (s *EscrowService) AddManualHours(ctx context.Context, employer, employee string, hours uint64) (*ports.SubmitReceipt, error) {
	return s.tx.Submit(ctx, s.escrowContract, opAddManualHours, employer,
		ports.AddressArg(employer),
		ports.AddressArg(employee),
		ports.U64Arg(hours),
	)
}

// OpenDispute freezes an active escrow. Only the employer or the employee
// may succeed; the contract enforces this.
func (s *EscrowService) OpenDispute(ctx context.Context, caller, employee string) (*ports.SubmitReceipt, error) {
	return s.tx.Submit(ctx, s.escrowContract, opOpenDispute, caller,
		ports.AddressArg(caller),
		ports.AddressArg(employee),
	)
}

// ResolveDispute settles a disputed escrow: released to the employee when
// releaseToEmployee, refunded to the employer otherwise. Only the designated
// resolver succeeds; the client forwards any caller and surfaces the
// contract's rejection.
func (s *EscrowService) ResolveDispute(ctx context.Context, resolver, employee string, releaseToEmployee bool) (*ports.SubmitReceipt, error) {
	receipt, err := s.tx.Submit(ctx, s.escrowContract, opResolveDispute, resolver,
		ports.AddressArg(resolver),
		ports.AddressArg(employee),
		ports.BoolArg(releaseToEmployee),
	)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("employee", employee).
		Bool("release_to_employee", releaseToEmployee).
		Msg("dispute resolved")
	return receipt, nil
}
