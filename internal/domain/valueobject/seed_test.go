package valueobject

import (
	"math"
	"testing"
)

func TestNewSeed_Zero_Succeeds(t *testing.T) {
	s, err := NewSeed(0)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Value() != 0 {
		t.Errorf("got %d, want 0", s.Value())
	}
}

func TestNewSeed_Negative_ReturnsInvalidSeed(t *testing.T) {
	_, err := NewSeed(-1)

	if code := firstCode(t, err); code != CodeInvalidSeed {
		t.Errorf("got %q, want %q", code, CodeInvalidSeed)
	}
}

func TestSeedFromFloat(t *testing.T) {
	cases := []struct {
		name  string
		in    float64
		valid bool
	}{
		{"integer", 42, true},
		{"large", 999_999, true},
		{"fraction", 1.5, false},
		{"negative", -3, false},
		{"nan", math.NaN(), false},
		{"inf", math.Inf(1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SeedFromFloat(tc.in)
			if tc.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRandomSeed_WithinBounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		s := RandomSeed()
		if s.Value() < 0 || s.Value() >= SeedUpperBound {
			t.Fatalf("seed %d out of bounds", s.Value())
		}
	}
}

func TestTurnRole_Other(t *testing.T) {
	if TurnSLP.Other() != TurnStudent {
		t.Error("slp.Other() should be student")
	}
	if TurnStudent.Other() != TurnSLP {
		t.Error("student.Other() should be slp")
	}
}

func TestNewUserRole(t *testing.T) {
	if _, err := NewUserRole("teacher"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := NewUserRole("admin"); err == nil {
		t.Error("expected error for unknown role")
	}
}
