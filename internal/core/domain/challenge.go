package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrMalformedToken = errors.New("malformed scan token")
var ErrExpiredChallenge = errors.New("challenge expired")

// Challenge is a short-lived random value issued to authorize a single
// attendance action. It is immutable; a new issuance supersedes it.
type Challenge struct {
	Value     string `json:"challenge"`
	ExpiresAt int64  `json:"expires"`
}

// Expired reports whether the challenge is no longer usable at the given time.
func (c Challenge) Expired(now time.Time) bool {
	return now.Unix() > c.ExpiresAt
}

// Remaining returns the time left before expiry, clamped at zero.
func (c Challenge) Remaining(now time.Time) time.Duration {
	d := time.Duration(c.ExpiresAt-now.Unix()) * time.Second
	if d < 0 {
		return 0
	}
	return d
}

// EncodeToken serializes the full challenge (value and expiry) as the scan
// token payload, so a scanning party recovers both fields without a side
// channel.
func EncodeToken(c Challenge) ([]byte, error) {
	return json.Marshal(c)
}

// DecodeToken parses a scanned token payload back into a Challenge. It fails
// with ErrMalformedToken when the payload is not a structurally valid
// challenge. Expiry is NOT validated here; that is the caller's job at the
// point of use.
func DecodeToken(raw []byte) (Challenge, error) {
	var c Challenge
	if err := json.Unmarshal(raw, &c); err != nil {
		return Challenge{}, ErrMalformedToken
	}
	if c.Value == "" || c.ExpiresAt <= 0 {
		return Challenge{}, ErrMalformedToken
	}
	return c, nil
}
