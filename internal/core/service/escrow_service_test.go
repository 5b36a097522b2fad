package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/worklock/worklock/internal/core/domain"
	"github.com/worklock/worklock/internal/core/ports"
	"github.com/worklock/worklock/internal/infrastructure/ledger/memledger"
	"github.com/worklock/worklock/internal/infrastructure/signer"
)

const (
	employer  = "GWALLETEMPLOYER"
	employee  = "GWALLETWORKER"
	resolver  = "GWALLETRESOLVER"
	benefits  = "GWALLETBENEFITS"
	escrowCID = "esc-contract"
)

type escrowFixture struct {
	svc    *EscrowService
	ledger *memledger.Ledger
}

func newEscrowFixture(t *testing.T) *escrowFixture {
	t.Helper()

	ledger := memledger.New("att-contract", escrowCID, "tok-contract")
	sgn, err := signer.NewLocal(testSeed)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}

	tx := NewTxAssembler(ledger, sgn, nil, "testnet", zerolog.Nop())
	svc := NewEscrowService(tx, escrowCID, "att-contract", "tok-contract", zerolog.Nop())

	return &escrowFixture{svc: svc, ledger: ledger}
}

func (f *escrowFixture) create(t *testing.T, amount int64, requiredHours uint64) {
	t.Helper()
	_, err := f.svc.Create(context.Background(), ports.CreateEscrowInput{
		Employer:       employer,
		Employee:       employee,
		Resolver:       resolver,
		BenefitsWallet: benefits,
		Amount:         amount,
		RequiredHours:  requiredHours,
	})
	if err != nil {
		t.Fatalf("create escrow: %v", err)
	}
}

func simReason(t *testing.T, err error) string {
	t.Helper()
	var sim *domain.SimulationRejectedError
	if !errors.As(err, &sim) {
		t.Fatalf("expected SimulationRejectedError, got %v", err)
	}
	return sim.Reason
}

func TestEscrow_StatusAbsentBeforeCreate(t *testing.T) {
	f := newEscrowFixture(t)

	esc, err := f.svc.Status(context.Background(), employee)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if esc != nil {
		t.Fatalf("expected absence, got %+v", esc)
	}
}

func TestEscrow_ClaimLifecycle(t *testing.T) {
	f := newEscrowFixture(t)
	ctx := context.Background()

	amount, err := domain.ParseAmount("1000")
	if err != nil {
		t.Fatalf("parse amount: %v", err)
	}
	f.create(t, amount, 8)

	esc, err := f.svc.Status(ctx, employee)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if esc == nil || esc.State != domain.EscrowActive {
		t.Fatalf("expected active escrow, got %+v", esc)
	}
	if esc.Amount != amount || esc.RequiredHours != 8 {
		t.Fatalf("escrow terms mismatch: %+v", esc)
	}

	// Unfunded claim fails.
	_, err = f.svc.Claim(ctx, employee)
	if reason := simReason(t, err); reason != "escrow not funded" {
		t.Fatalf("unexpected reason %q", reason)
	}

	// Fund, then claim still fails on hours.
	f.ledger.SetBalance(employer, amount)
	if _, err := f.svc.Fund(ctx, ports.FundEscrowInput{Employer: employer, Amount: amount}); err != nil {
		t.Fatalf("fund: %v", err)
	}
	_, err = f.svc.Claim(ctx, employee)
	if reason := simReason(t, err); reason != "not enough hours" {
		t.Fatalf("unexpected reason %q", reason)
	}

	// Credit the hours and claim.
	if _, err := f.svc.AddManualHours(ctx, employer, employee, 8); err != nil {
		t.Fatalf("add manual hours: %v", err)
	}
	if _, err := f.svc.Claim(ctx, employee); err != nil {
		t.Fatalf("claim: %v", err)
	}

	esc, err = f.svc.Status(ctx, employee)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if esc.State != domain.EscrowReleased {
		t.Fatalf("expected released, got %s", esc.State)
	}

	// 95/5 split between employee and the benefits wallet.
	wantEmployee := amount * 95 / 100
	if got := f.ledger.Balance(employee); got != wantEmployee {
		t.Fatalf("employee payout: expected %d, got %d", wantEmployee, got)
	}
	if got := f.ledger.Balance(benefits); got != amount-wantEmployee {
		t.Fatalf("benefits payout: expected %d, got %d", amount-wantEmployee, got)
	}

	// Released is terminal: no dispute afterwards.
	_, err = f.svc.OpenDispute(ctx, employee, employee)
	if reason := simReason(t, err); reason != "cannot dispute" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestEscrow_DuplicateActiveRejected(t *testing.T) {
	f := newEscrowFixture(t)

	f.create(t, 1000, 8)

	_, err := f.svc.Create(context.Background(), ports.CreateEscrowInput{
		Employer:       employer,
		Employee:       employee,
		Resolver:       resolver,
		BenefitsWallet: benefits,
		Amount:         2000,
		RequiredHours:  4,
	})
	if reason := simReason(t, err); reason != "escrow already active" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestEscrow_DisputeAndRefund(t *testing.T) {
	f := newEscrowFixture(t)
	ctx := context.Background()

	f.create(t, 5000, 8)
	f.ledger.SetBalance(employer, 5000)
	if _, err := f.svc.Fund(ctx, ports.FundEscrowInput{Employer: employer, Amount: 5000}); err != nil {
		t.Fatalf("fund: %v", err)
	}

	if _, err := f.svc.OpenDispute(ctx, employee, employee); err != nil {
		t.Fatalf("open dispute: %v", err)
	}

	esc, err := f.svc.Status(ctx, employee)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if esc.State != domain.EscrowDisputed {
		t.Fatalf("expected disputed, got %s", esc.State)
	}

	// A disputed escrow is not claimable.
	_, err = f.svc.Claim(ctx, employee)
	if reason := simReason(t, err); reason != "escrow not claimable" {
		t.Fatalf("unexpected reason %q", reason)
	}

	// Only the designated resolver settles.
	_, err = f.svc.ResolveDispute(ctx, employer, employee, false)
	if reason := simReason(t, err); reason != "not dispute resolver" {
		t.Fatalf("unexpected reason %q", reason)
	}

	if _, err := f.svc.ResolveDispute(ctx, resolver, employee, false); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	esc, err = f.svc.Status(ctx, employee)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if esc.State != domain.EscrowRefunded {
		t.Fatalf("expected refunded, got %s", esc.State)
	}
	if got := f.ledger.Balance(employer); got != 5000 {
		t.Fatalf("refund must return the funds to the employer, got %d", got)
	}
}

func TestEscrow_ResolveWithoutDisputeRejected(t *testing.T) {
	f := newEscrowFixture(t)
	ctx := context.Background()

	f.create(t, 1000, 8)

	_, err := f.svc.ResolveDispute(ctx, resolver, employee, true)
	if reason := simReason(t, err); reason != "no active dispute" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestEscrow_RejectsNonPositiveAmounts(t *testing.T) {
	f := newEscrowFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, ports.CreateEscrowInput{
		Employer: employer, Employee: employee,
		Resolver: resolver, BenefitsWallet: benefits,
		Amount: 0, RequiredHours: 8,
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	_, err = f.svc.Fund(ctx, ports.FundEscrowInput{Employer: employer, Amount: -1})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
