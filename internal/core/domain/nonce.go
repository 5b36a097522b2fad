package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// Nonce is the fixed-length commitment binding one challenge instance to one
// wallet. It is derived, never stored client-side, and recomputed at use time.
type Nonce [32]byte

// BindNonce derives the nonce as sha256(challengeValue ++ wallet). The
// binding is deterministic: identical inputs always produce the identical
// nonce, which lets the ledger reject a repeated nonce for the same wallet
// and day. Binding to both fields prevents one wallet replaying another
// wallet's scanned token.
func BindNonce(challengeValue, wallet string) Nonce {
	return sha256.Sum256([]byte(challengeValue + wallet))
}

// Hex returns the lowercase hex encoding of the nonce.
func (n Nonce) Hex() string {
	return hex.EncodeToString(n[:])
}

// Bytes returns the nonce as a byte slice for ledger arguments.
func (n Nonce) Bytes() []byte {
	out := make([]byte, len(n))
	copy(out, n[:])
	return out
}
