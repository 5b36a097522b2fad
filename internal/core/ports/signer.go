package ports

import "context"

// Signer is the opaque wallet boundary: given an unsigned transaction
// encoding and the target network identifier, it returns the signed encoding
// or refuses with ErrSigningDeclined. Refusal is user- or signer-initiated
// and is never retried automatically.
type Signer interface {
	Sign(ctx context.Context, envelope []byte, network string) ([]byte, error)
}
