package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/worklock/worklock/internal/api/metrics"
	"github.com/worklock/worklock/internal/core/ports"
)

const (
	// baseFee is the fixed fee attached before simulation; simulation may
	// raise it to the reported minimum.
	baseFee = 100
	// stateChangeWindow bounds the validity of state-changing transactions,
	// in ledgers. Read-only simulations use 0 (unbounded).
	stateChangeWindow = 30
)

// TxAssembler builds, simulates, signs and submits contract transactions.
// Every state-changing operation in the system goes through Submit; every
// ledger read goes through Read. The assembler does not wait for final
// settlement: Submit returns as soon as the network acknowledges the
// transaction.
type TxAssembler struct {
	ledger    ports.Ledger
	signer    ports.Signer
	sequencer ports.Sequencer
	network   string
	log       zerolog.Logger
}

// NewTxAssembler wires an assembler. sequencer may be nil, in which case
// submissions are not serialized per wallet and concurrent calls on the same
// source may fail with stale sequence numbers.
func NewTxAssembler(ledger ports.Ledger, signer ports.Signer, sequencer ports.Sequencer, network string, log zerolog.Logger) *TxAssembler {
	return &TxAssembler{
		ledger:    ledger,
		signer:    signer,
		sequencer: sequencer,
		network:   network,
		log:       log,
	}
}

// Submit performs the full state-changing pipeline for one contract
// operation. Submissions sharing a source wallet are serialized through the
// sequencer so each one sees the sequence number left by the previous.
func (a *TxAssembler) Submit(ctx context.Context, contract, operation, source string, args ...ports.Arg) (*ports.SubmitReceipt, error) {
	var receipt *ports.SubmitReceipt
	task := func(ctx context.Context) error {
		r, err := a.submit(ctx, contract, operation, source, args)
		receipt = r
		return err
	}

	var err error
	if a.sequencer != nil {
		err = a.sequencer.Do(ctx, source, task)
	} else {
		err = task(ctx)
	}
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (a *TxAssembler) submit(ctx context.Context, contract, operation, source string, args []ports.Arg) (*ports.SubmitReceipt, error) {
	start := time.Now()

	// 1. Resolve the source account's current sequence.
	account, err := a.ledger.GetAccount(ctx, source)
	if err != nil {
		metrics.TxRejectedTotal.WithLabelValues(operation, "account").Inc()
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	// 2. Build the unsigned transaction with a bounded validity window.
	tx := ports.UnsignedTx{
		Source:          source,
		Sequence:        account.Sequence + 1,
		Fee:             baseFee,
		ValidForLedgers: stateChangeWindow,
		Invocation: ports.Invocation{
			Contract:  contract,
			Operation: operation,
			Args:      args,
		},
	}

	// 3. Simulate to obtain the resource footprint; contract precondition
	// failures surface here with the contract-reported reason.
	sim, err := a.ledger.Simulate(ctx, tx)
	if err != nil {
		metrics.TxRejectedTotal.WithLabelValues(operation, "simulation").Inc()
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	if sim.MinFee > tx.Fee {
		tx.Fee = sim.MinFee
	}

	// 4. Assemble and hand the encoding to the external signer.
	envelope, err := json.Marshal(ports.Envelope{
		Tx:        tx,
		Network:   a.network,
		Footprint: sim.Footprint,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: encode envelope: %w", operation, err)
	}
	signed, err := a.signer.Sign(ctx, envelope, a.network)
	if err != nil {
		metrics.TxRejectedTotal.WithLabelValues(operation, "signing").Inc()
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	// 5. Submit. No settlement polling: the receipt acknowledges acceptance.
	receipt, err := a.ledger.Submit(ctx, signed)
	if err != nil {
		metrics.TxRejectedTotal.WithLabelValues(operation, "submission").Inc()
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	metrics.TxSubmittedTotal.WithLabelValues(operation).Inc()
	metrics.TxSubmitDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	a.log.Info().
		Str("contract", contract).
		Str("operation", operation).
		Str("source", source).
		Str("tx_hash", receipt.Hash).
		Msg("transaction submitted")

	return &receipt, nil
}

// Read simulates a read-only operation and returns the decoded return value.
// A nil result with nil error means the contract reported no value; absence
// is a valid outcome, distinct from failure.
func (a *TxAssembler) Read(ctx context.Context, contract, operation, source string, args ...ports.Arg) (json.RawMessage, error) {
	account, err := a.ledger.GetAccount(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	tx := ports.UnsignedTx{
		Source:   source,
		Sequence: account.Sequence + 1,
		Fee:      baseFee,
		// Unbounded: the transaction is never submitted.
		ValidForLedgers: 0,
		Invocation: ports.Invocation{
			Contract:  contract,
			Operation: operation,
			Args:      args,
		},
	}

	sim, err := a.ledger.Simulate(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	if !sim.HasResult {
		return nil, nil
	}
	return sim.Result, nil
}
