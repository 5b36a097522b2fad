package ports

import (
	"context"
	"encoding/json"
)

// ArgKind enumerates the wire types a contract operation accepts.
type ArgKind string

const (
	ArgAddress ArgKind = "address"
	ArgBytes   ArgKind = "bytes"
	ArgU64     ArgKind = "u64"
	ArgI128    ArgKind = "i128"
	ArgBool    ArgKind = "bool"
)

// Arg is a typed contract-call argument. Exactly one value field is
// meaningful, selected by Kind.
type Arg struct {
	Kind    ArgKind `json:"kind"`
	Address string  `json:"address,omitempty"`
	Bytes   []byte  `json:"bytes,omitempty"`
	U64     uint64  `json:"u64,omitempty"`
	I128    int64   `json:"i128,omitempty"`
	Bool    bool    `json:"bool,omitempty"`
}

func AddressArg(a string) Arg { return Arg{Kind: ArgAddress, Address: a} }
func BytesArg(b []byte) Arg   { return Arg{Kind: ArgBytes, Bytes: b} }
func U64Arg(v uint64) Arg     { return Arg{Kind: ArgU64, U64: v} }
func I128Arg(v int64) Arg     { return Arg{Kind: ArgI128, I128: v} }
func BoolArg(v bool) Arg      { return Arg{Kind: ArgBool, Bool: v} }

// Invocation names one contract operation with its ordered arguments.
type Invocation struct {
	Contract  string `json:"contract"`
	Operation string `json:"operation"`
	Args      []Arg  `json:"args"`
}

// UnsignedTx is a transaction before signing. ValidForLedgers bounds the
// validity window for state-changing calls; zero means unbounded (used for
// read-only simulations).
type UnsignedTx struct {
	Source          string     `json:"source"`
	Sequence        uint64     `json:"sequence"`
	Fee             int64      `json:"fee"`
	ValidForLedgers uint32     `json:"valid_for_ledgers"`
	Invocation      Invocation `json:"invocation"`
}

// Envelope is the transaction encoding handed to the signer: the unsigned
// transaction assembled with its simulated resource footprint. The signer
// returns the same encoding with Signature populated, or refuses.
type Envelope struct {
	Tx        UnsignedTx `json:"tx"`
	Network   string     `json:"network"`
	Footprint []string   `json:"footprint,omitempty"`
	Signature []byte     `json:"signature,omitempty"`
}

// Account is the ledger-side view of a wallet needed to build a transaction.
type Account struct {
	Address  string `json:"address"`
	Sequence uint64 `json:"sequence"`
}

// SimulationResult carries the resource footprint of a simulated call and,
// for reads, the decoded return value. HasResult=false signals contract-
// reported absence (e.g. no escrow exists yet), a valid non-error outcome.
type SimulationResult struct {
	HasResult bool            `json:"has_result"`
	Result    json.RawMessage `json:"result,omitempty"`
	Footprint []string        `json:"footprint,omitempty"`
	MinFee    int64           `json:"min_fee"`
}

// SubmitReceipt acknowledges a submitted transaction. It does not imply final
// settlement; callers that need confirmation poll separately.
type SubmitReceipt struct {
	Hash   string `json:"hash"`
	Ledger uint64 `json:"ledger,omitempty"`
}

// Ledger is the boundary to the contract ledger. Implementations map
// transport failures onto the domain taxonomy: account lookup network errors
// to ErrAccountUnreachable, contract precondition failures to
// SimulationRejectedError, consensus rejections to SubmissionRejectedError.
type Ledger interface {
	GetAccount(ctx context.Context, address string) (Account, error)
	Simulate(ctx context.Context, tx UnsignedTx) (SimulationResult, error)
	Submit(ctx context.Context, signed []byte) (SubmitReceipt, error)
}
