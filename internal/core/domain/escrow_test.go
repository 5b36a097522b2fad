package domain

import (
	"errors"
	"testing"
)

func TestEscrowState_Transitions(t *testing.T) {
	cases := []struct {
		from    EscrowState
		to      EscrowState
		allowed bool
	}{
		{EscrowActive, EscrowDisputed, true},
		{EscrowActive, EscrowReleased, true},
		{EscrowActive, EscrowRefunded, false},
		{EscrowDisputed, EscrowReleased, true},
		{EscrowDisputed, EscrowRefunded, true},
		{EscrowDisputed, EscrowActive, false},
		{EscrowReleased, EscrowDisputed, false},
		{EscrowReleased, EscrowRefunded, false},
		{EscrowRefunded, EscrowReleased, false},
		{EscrowRefunded, EscrowActive, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestEscrowState_Terminal(t *testing.T) {
	if EscrowActive.Terminal() || EscrowDisputed.Terminal() {
		t.Fatalf("active and disputed are not terminal")
	}
	if !EscrowReleased.Terminal() || !EscrowRefunded.Terminal() {
		t.Fatalf("released and refunded are terminal")
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"1500.50", 15005000000, true},
		{"0.0000001", 1, true},
		{"100", 1000000000, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"0.00000001", 0, false}, // more than 7 decimal places
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Errorf("ParseAmount(%q): unexpected error %v", tc.in, err)
				continue
			}
			if got != tc.want {
				t.Errorf("ParseAmount(%q): expected %d, got %d", tc.in, tc.want, got)
			}
		} else if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("ParseAmount(%q): expected ErrInvalidAmount, got %v", tc.in, err)
		}
	}
}

func TestFormatAmount_RoundTrip(t *testing.T) {
	raw, err := ParseAmount("1500.50")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := FormatAmount(raw); got != "1500.5000000" {
		t.Fatalf("expected 1500.5000000, got %s", got)
	}

	e := Escrow{Amount: raw}
	if e.DisplayAmount() != "1500.5000000" {
		t.Fatalf("display amount mismatch: %s", e.DisplayAmount())
	}
}
