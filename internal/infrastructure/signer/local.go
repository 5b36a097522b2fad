// Package signer provides the local ed25519 implementation of the signer
// port. Production deployments front a wallet extension instead; the
// interface is the same either way: bytes in, signed bytes or refusal out.
package signer

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/worklock/worklock/internal/core/domain"
	"github.com/worklock/worklock/internal/core/ports"
)

// Local signs envelopes with an in-process ed25519 key.
type Local struct {
	key ed25519.PrivateKey
}

// NewLocal derives the keypair from a 32-byte hex seed. An empty seed yields
// a signer that declines every request, which keeps the refusal path
// exercisable without a key.
func NewLocal(seedHex string) (*Local, error) {
	if seedHex == "" {
		return &Local{}, nil
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil || len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("signer: invalid seed")
	}
	return &Local{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign checks the envelope targets the expected network, signs it and
// returns the envelope re-encoded with the signature attached.
func (s *Local) Sign(_ context.Context, envelope []byte, network string) ([]byte, error) {
	if s.key == nil {
		return nil, domain.ErrSigningDeclined
	}

	var env ports.Envelope
	if err := json.Unmarshal(envelope, &env); err != nil {
		return nil, fmt.Errorf("%w: undecodable envelope", domain.ErrSigningDeclined)
	}
	if env.Network != network {
		return nil, fmt.Errorf("%w: wrong network", domain.ErrSigningDeclined)
	}

	env.Signature = ed25519.Sign(s.key, envelope)
	return json.Marshal(env)
}
