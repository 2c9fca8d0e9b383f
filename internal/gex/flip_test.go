package gex

import (
	"math"
	"testing"
)

func TestFindFlip_Interpolation(t *testing.T) {
	levels := []float64{90, 95, 100, 105}
	gamma := []float64{-2.0, -0.5, 1.0, 3.0}

	flip, ok := FindFlip(levels, gamma)
	if !ok {
		t.Fatal("expected a crossing")
	}

	// Bracket (95, -0.5) -> (100, 1.0): 100 - 5*1.0/1.5
	want := 100 - 5*1.0/1.5
	if math.Abs(flip-want) > 1e-9 {
		t.Errorf("expected flip %v, got %v", want, flip)
	}
}

func TestFindFlip_NoCrossing(t *testing.T) {
	levels := []float64{90, 95, 100}

	if _, ok := FindFlip(levels, []float64{1, 2, 3}); ok {
		t.Error("all-positive curve must report no crossing")
	}
	if _, ok := FindFlip(levels, []float64{-1, -2, -3}); ok {
		t.Error("all-negative curve must report no crossing")
	}
}

func TestFindFlip_FirstCrossingWins(t *testing.T) {
	levels := []float64{90, 95, 100, 105, 110}
	gamma := []float64{-1, 1, -1, 1, 1}

	flip, ok := FindFlip(levels, gamma)
	if !ok {
		t.Fatal("expected a crossing")
	}
	// Lowest-spot bracket: (90, -1) -> (95, 1), midpoint.
	if math.Abs(flip-92.5) > 1e-9 {
		t.Errorf("expected first crossing at 92.5, got %v", flip)
	}
}

func TestFindFlip_NegativeToPositiveDirectionAgnostic(t *testing.T) {
	levels := []float64{90, 95}

	flip, ok := FindFlip(levels, []float64{2, -2})
	if !ok {
		t.Fatal("expected a crossing")
	}
	if math.Abs(flip-92.5) > 1e-9 {
		t.Errorf("expected 92.5 for descending crossing, got %v", flip)
	}
}

func TestFindFlip_EmptyAndSinglePoint(t *testing.T) {
	if _, ok := FindFlip(nil, nil); ok {
		t.Error("empty profile must report no crossing")
	}
	if _, ok := FindFlip([]float64{100}, []float64{-1}); ok {
		t.Error("single point must report no crossing")
	}
}
