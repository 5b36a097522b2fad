// Package memledger is an in-memory ledger that executes the attendance,
// escrow and token contracts' semantics. It backs the test suite and the
// standalone development mode, so every contract-enforced precondition the
// client must surface is reproduced here: one attendance record per wallet
// and day, nonce replay rejection, the escrow state machine with its funding
// and hour checks, and per-account sequence numbers.
package memledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/worklock/worklock/internal/core/domain"
	"github.com/worklock/worklock/internal/core/ports"
)

const claimWindowDays = 30

// payout split on claim: 95% to the employee, the rest to the benefits wallet.
const employeeShare = 95

type attendanceRecord struct {
	CheckIn  *int64 `json:"check_in"`
	CheckOut *int64 `json:"check_out"`
}

// Ledger implements ports.Ledger in memory.
type Ledger struct {
	attendanceID string
	escrowID     string
	tokenID      string

	mu         sync.Mutex
	now        func() time.Time
	ledgerSeq  uint64
	sequences  map[string]uint64
	employees  map[string]bool
	attendance map[string]*attendanceRecord // wallet:day
	usedNonces map[string]bool              // wallet:day:nonce
	escrows    map[string]*domain.Escrow    // by employee
	balances   map[string]int64
}

// New builds an empty ledger serving the three contract addresses.
func New(attendanceID, escrowID, tokenID string) *Ledger {
	return &Ledger{
		attendanceID: attendanceID,
		escrowID:     escrowID,
		tokenID:      tokenID,
		now:          time.Now,
		sequences:    make(map[string]uint64),
		employees:    make(map[string]bool),
		attendance:   make(map[string]*attendanceRecord),
		usedNonces:   make(map[string]bool),
		escrows:      make(map[string]*domain.Escrow),
		balances:     make(map[string]int64),
	}
}

// SetClock replaces the ledger's clock. Intended for tests.
func (l *Ledger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// RegisterEmployee whitelists a wallet for attendance punches.
func (l *Ledger) RegisterEmployee(wallet string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.employees[wallet] = true
}

// SetBalance seeds a wallet's token balance.
func (l *Ledger) SetBalance(wallet string, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[wallet] = amount
}

// Balance reads a wallet's token balance.
func (l *Ledger) Balance(wallet string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[wallet]
}

func (l *Ledger) GetAccount(_ context.Context, address string) (ports.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ports.Account{Address: address, Sequence: l.sequences[address]}, nil
}

func (l *Ledger) Simulate(_ context.Context, tx ports.UnsignedTx) (ports.SimulationResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	result, hasResult, err := l.execute(tx, false)
	if err != nil {
		return ports.SimulationResult{}, err
	}
	return ports.SimulationResult{
		HasResult: hasResult,
		Result:    result,
		Footprint: []string{tx.Invocation.Contract + "/" + tx.Invocation.Operation},
		MinFee:    100,
	}, nil
}

func (l *Ledger) Submit(_ context.Context, signed []byte) (ports.SubmitReceipt, error) {
	var env ports.Envelope
	if err := json.Unmarshal(signed, &env); err != nil {
		return ports.SubmitReceipt{}, &domain.SubmissionRejectedError{Reason: "undecodable envelope"}
	}
	if len(env.Signature) == 0 {
		return ports.SubmitReceipt{}, &domain.SubmissionRejectedError{Reason: "missing signature"}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// The ledger serializes per account: a stale sequence number rejects.
	if env.Tx.Sequence != l.sequences[env.Tx.Source]+1 {
		return ports.SubmitReceipt{}, &domain.SubmissionRejectedError{Reason: "bad sequence"}
	}

	if _, _, err := l.execute(env.Tx, true); err != nil {
		// Contract panics at apply time surface as submission rejections.
		reason := err.Error()
		var sim *domain.SimulationRejectedError
		if errors.As(err, &sim) {
			reason = sim.Reason
		}
		return ports.SubmitReceipt{}, &domain.SubmissionRejectedError{Reason: reason}
	}

	l.sequences[env.Tx.Source]++
	l.ledgerSeq++

	sum := sha256.Sum256(signed)
	return ports.SubmitReceipt{Hash: hex.EncodeToString(sum[:]), Ledger: l.ledgerSeq}, nil
}

func reject(reason string) error {
	return &domain.SimulationRejectedError{Reason: reason}
}

// execute runs one invocation. With commit=false it is a dry run: all
// precondition checks fire, no state changes.
func (l *Ledger) execute(tx ports.UnsignedTx, commit bool) (json.RawMessage, bool, error) {
	inv := tx.Invocation
	switch inv.Contract {
	case l.attendanceID:
		return l.execAttendance(tx, commit)
	case l.escrowID:
		return l.execEscrow(tx, commit)
	case l.tokenID:
		return l.execToken(tx, commit)
	default:
		return nil, false, reject(fmt.Sprintf("unknown contract %s", inv.Contract))
	}
}

func (l *Ledger) execAttendance(tx ports.UnsignedTx, commit bool) (json.RawMessage, bool, error) {
	inv := tx.Invocation
	switch inv.Operation {
	case "check_in", "check_out":
		if len(inv.Args) != 2 || inv.Args[0].Kind != ports.ArgAddress || inv.Args[1].Kind != ports.ArgBytes {
			return nil, false, reject("bad arguments")
		}
		employee := inv.Args[0].Address
		nonce := inv.Args[1].Bytes
		if employee != tx.Source {
			return nil, false, reject("auth required")
		}
		if !l.employees[employee] {
			return nil, false, reject("employee not registered")
		}

		ts := l.now().Unix()
		day := uint64(ts) / domain.SecondsPerDay
		key := fmt.Sprintf("%s:%d", employee, day)
		nonceKey := fmt.Sprintf("%s:%d:%s", employee, day, hex.EncodeToString(nonce))

		rec := l.attendance[key]
		if rec == nil {
			rec = &attendanceRecord{}
		}

		if l.usedNonces[nonceKey] {
			return nil, false, reject("nonce reused")
		}

		if inv.Operation == "check_in" {
			if rec.CheckIn != nil {
				return nil, false, reject("already checked in today")
			}
			if commit {
				rec.CheckIn = &ts
			}
		} else {
			if rec.CheckIn == nil {
				return nil, false, reject("cannot checkout without checkin")
			}
			if rec.CheckOut != nil {
				return nil, false, reject("already checked out today")
			}
			if commit {
				rec.CheckOut = &ts
			}
		}
		if commit {
			l.attendance[key] = rec
			l.usedNonces[nonceKey] = true
		}
		return nil, false, nil

	case "get_attendance":
		if len(inv.Args) != 2 {
			return nil, false, reject("bad arguments")
		}
		key := fmt.Sprintf("%s:%d", inv.Args[0].Address, inv.Args[1].U64)
		rec, ok := l.attendance[key]
		if !ok {
			return nil, false, nil
		}
		raw, err := json.Marshal(rec)
		if err != nil {
			return nil, false, reject("encode record")
		}
		return raw, true, nil

	default:
		return nil, false, reject(fmt.Sprintf("unknown operation %s", inv.Operation))
	}
}

func (l *Ledger) execEscrow(tx ports.UnsignedTx, commit bool) (json.RawMessage, bool, error) {
	inv := tx.Invocation
	switch inv.Operation {
	case "create_escrow":
		if len(inv.Args) != 8 {
			return nil, false, reject("bad arguments")
		}
		employer := inv.Args[0].Address
		employee := inv.Args[1].Address
		if employer != tx.Source {
			return nil, false, reject("auth required")
		}
		if existing, ok := l.escrows[employee]; ok && !existing.State.Terminal() {
			return nil, false, reject("escrow already active")
		}
		if commit {
			l.escrows[employee] = &domain.Escrow{
				Employer:       employer,
				Employee:       employee,
				Resolver:       inv.Args[3].Address,
				BenefitsWallet: inv.Args[4].Address,
				TokenContract:  inv.Args[5].Address,
				Amount:         inv.Args[6].I128,
				RequiredHours:  inv.Args[7].U64,
				State:          domain.EscrowActive,
			}
		}
		return nil, false, nil

	case "add_manual_hours":
		if len(inv.Args) != 3 {
			return nil, false, reject("bad arguments")
		}
		esc, ok := l.escrows[inv.Args[1].Address]
		if !ok {
			return nil, false, reject("no escrow")
		}
		if inv.Args[0].Address != esc.Employer || inv.Args[0].Address != tx.Source {
			return nil, false, reject("auth required")
		}
		if esc.State != domain.EscrowActive {
			return nil, false, reject("escrow not active")
		}
		if commit {
			esc.ManualHours += inv.Args[2].U64
		}
		return nil, false, nil

	case "claim":
		if len(inv.Args) != 1 {
			return nil, false, reject("bad arguments")
		}
		employee := inv.Args[0].Address
		if employee != tx.Source {
			return nil, false, reject("auth required")
		}
		esc, ok := l.escrows[employee]
		if !ok {
			return nil, false, reject("no escrow")
		}
		if esc.State != domain.EscrowActive {
			return nil, false, reject("escrow not claimable")
		}
		if l.balances[l.escrowID] < esc.Amount {
			return nil, false, reject("escrow not funded")
		}
		if l.workedHours(employee)+esc.ManualHours < esc.RequiredHours {
			return nil, false, reject("not enough hours")
		}
		if commit {
			employeeAmount := esc.Amount * employeeShare / 100
			l.balances[l.escrowID] -= esc.Amount
			l.balances[esc.Employee] += employeeAmount
			l.balances[esc.BenefitsWallet] += esc.Amount - employeeAmount
			esc.State = domain.EscrowReleased
		}
		return nil, false, nil

	case "open_dispute":
		if len(inv.Args) != 2 {
			return nil, false, reject("bad arguments")
		}
		caller := inv.Args[0].Address
		esc, ok := l.escrows[inv.Args[1].Address]
		if !ok {
			return nil, false, reject("no escrow")
		}
		if caller != tx.Source {
			return nil, false, reject("auth required")
		}
		if caller != esc.Employer && caller != esc.Employee {
			return nil, false, reject("not authorized")
		}
		if esc.State != domain.EscrowActive {
			return nil, false, reject("cannot dispute")
		}
		if commit {
			esc.State = domain.EscrowDisputed
		}
		return nil, false, nil

	case "resolve_dispute":
		if len(inv.Args) != 3 {
			return nil, false, reject("bad arguments")
		}
		resolver := inv.Args[0].Address
		esc, ok := l.escrows[inv.Args[1].Address]
		if !ok {
			return nil, false, reject("no escrow")
		}
		if resolver != tx.Source {
			return nil, false, reject("auth required")
		}
		if resolver != esc.Resolver {
			return nil, false, reject("not dispute resolver")
		}
		if esc.State != domain.EscrowDisputed {
			return nil, false, reject("no active dispute")
		}
		if l.balances[l.escrowID] < esc.Amount {
			return nil, false, reject("insufficient balance")
		}
		if commit {
			l.balances[l.escrowID] -= esc.Amount
			if inv.Args[2].Bool {
				l.balances[esc.Employee] += esc.Amount
				esc.State = domain.EscrowReleased
			} else {
				l.balances[esc.Employer] += esc.Amount
				esc.State = domain.EscrowRefunded
			}
		}
		return nil, false, nil

	case "get_escrow":
		if len(inv.Args) != 1 {
			return nil, false, reject("bad arguments")
		}
		esc, ok := l.escrows[inv.Args[0].Address]
		if !ok {
			return nil, false, nil
		}
		raw, err := json.Marshal(esc)
		if err != nil {
			return nil, false, reject("encode escrow")
		}
		return raw, true, nil

	default:
		return nil, false, reject(fmt.Sprintf("unknown operation %s", inv.Operation))
	}
}

func (l *Ledger) execToken(tx ports.UnsignedTx, commit bool) (json.RawMessage, bool, error) {
	inv := tx.Invocation
	switch inv.Operation {
	case "transfer":
		if len(inv.Args) != 3 {
			return nil, false, reject("bad arguments")
		}
		from, to, amount := inv.Args[0].Address, inv.Args[1].Address, inv.Args[2].I128
		if from != tx.Source {
			return nil, false, reject("auth required")
		}
		if amount <= 0 {
			return nil, false, reject("bad amount")
		}
		if l.balances[from] < amount {
			return nil, false, reject("insufficient balance")
		}
		if commit {
			l.balances[from] -= amount
			l.balances[to] += amount
		}
		return nil, false, nil

	case "balance":
		if len(inv.Args) != 1 {
			return nil, false, reject("bad arguments")
		}
		raw, err := json.Marshal(l.balances[inv.Args[0].Address])
		if err != nil {
			return nil, false, reject("encode balance")
		}
		return raw, true, nil

	default:
		return nil, false, reject(fmt.Sprintf("unknown operation %s", inv.Operation))
	}
}

// workedHours mirrors the escrow contract's hour calculation: whole hours per
// complete record over the last 30 days.
func (l *Ledger) workedHours(employee string) uint64 {
	currentDay := uint64(l.now().Unix()) / domain.SecondsPerDay

	var total uint64
	for i := uint64(0); i < claimWindowDays; i++ {
		if currentDay < i {
			break
		}
		rec, ok := l.attendance[fmt.Sprintf("%s:%d", employee, currentDay-i)]
		if !ok || rec.CheckIn == nil || rec.CheckOut == nil {
			continue
		}
		total += uint64(*rec.CheckOut-*rec.CheckIn) / 3600
	}
	return total
}
