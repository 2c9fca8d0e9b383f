package chain

import (
	"errors"
	"testing"
	"time"
)

func TestParseIdentifier_Call(t *testing.T) {
	id, err := ParseIdentifier("CMG240621C00150000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id.Root != "CMG" {
		t.Errorf("expected root CMG, got %q", id.Root)
	}
	if !id.Expiry.Equal(time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected expiry 2024-06-21, got %v", id.Expiry)
	}
	if id.Side != Call {
		t.Errorf("expected call side, got %v", id.Side)
	}
	if id.Strike != 150.0 {
		t.Errorf("expected strike 150, got %v", id.Strike)
	}
}

func TestParseIdentifier_PutWithFractionalStrike(t *testing.T) {
	id, err := ParseIdentifier("SPXW240920P04502500")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id.Root != "SPXW" {
		t.Errorf("expected root SPXW, got %q", id.Root)
	}
	if id.Side != Put {
		t.Errorf("expected put side, got %v", id.Side)
	}
	if id.Strike != 4502.5 {
		t.Errorf("expected strike 4502.5, got %v", id.Strike)
	}
}

func TestParseIdentifier_Malformed(t *testing.T) {
	cases := []struct {
		name   string
		symbol string
	}{
		{"too short", "C00150000"},
		{"bad side flag", "CMG240621X00150000"},
		{"bad expiry", "CMG24AB21C00150000"},
		{"non-numeric strike", "CMG240621C0015000X"},
		{"zero strike", "CMG240621C00000000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseIdentifier(tc.symbol)
			if err == nil {
				t.Fatalf("expected decode error for %q", tc.symbol)
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Errorf("expected *DecodeError, got %T", err)
			}
		})
	}
}
