package domain

import (
	"crypto/sha256"
	"errors"
	"testing"
	"time"
)

func TestChallenge_TokenRoundTrip(t *testing.T) {
	ch := Challenge{Value: "abc123", ExpiresAt: 1700000060}

	raw, err := EncodeToken(ch)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeToken(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != ch {
		t.Fatalf("round trip mismatch: %+v != %+v", got, ch)
	}
}

func TestChallenge_DecodeMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "not-json-at-all"},
		{"missing value", `{"expires":1700000060}`},
		{"missing expiry", `{"challenge":"abc123"}`},
		{"zero expiry", `{"challenge":"abc123","expires":0}`},
		{"empty", ``},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeToken([]byte(tc.raw)); !errors.Is(err, ErrMalformedToken) {
				t.Fatalf("expected ErrMalformedToken, got %v", err)
			}
		})
	}
}

func TestChallenge_DecodeDoesNotCheckExpiry(t *testing.T) {
	raw := []byte(`{"challenge":"old","expires":1}`)
	ch, err := DecodeToken(raw)
	if err != nil {
		t.Fatalf("decode of expired token must succeed: %v", err)
	}
	if !ch.Expired(time.Now()) {
		t.Fatalf("expected challenge to report expired")
	}
}

func TestChallenge_ExpiredBoundary(t *testing.T) {
	ch := Challenge{Value: "v", ExpiresAt: 1000}

	// The expiry second itself is still usable.
	if ch.Expired(time.Unix(1000, 0)) {
		t.Fatalf("challenge must be valid at its expiry second")
	}
	if !ch.Expired(time.Unix(1001, 0)) {
		t.Fatalf("challenge must be expired after its expiry second")
	}
}

func TestChallenge_RemainingClamped(t *testing.T) {
	ch := Challenge{Value: "v", ExpiresAt: 1000}

	if got := ch.Remaining(time.Unix(940, 0)); got != 60*time.Second {
		t.Fatalf("expected 60s remaining, got %v", got)
	}
	if got := ch.Remaining(time.Unix(2000, 0)); got != 0 {
		t.Fatalf("expected 0 remaining, got %v", got)
	}
}

func TestBindNonce_Deterministic(t *testing.T) {
	a := BindNonce("challenge-value", "GWALLETA")
	b := BindNonce("challenge-value", "GWALLETA")
	if a != b {
		t.Fatalf("same inputs must produce the same nonce")
	}

	want := sha256.Sum256([]byte("challenge-value" + "GWALLETA"))
	if a != Nonce(want) {
		t.Fatalf("nonce is not sha256(value||wallet)")
	}
}

func TestBindNonce_DistinctPerWalletAndChallenge(t *testing.T) {
	base := BindNonce("challenge-value", "GWALLETA")
	if BindNonce("challenge-value", "GWALLETB") == base {
		t.Fatalf("different wallets must produce different nonces")
	}
	if BindNonce("other-value", "GWALLETA") == base {
		t.Fatalf("different challenges must produce different nonces")
	}
}

func TestNonce_Hex(t *testing.T) {
	n := BindNonce("v", "w")
	if len(n.Hex()) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(n.Hex()))
	}
	if len(n.Bytes()) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(n.Bytes()))
	}
}
