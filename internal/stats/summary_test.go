package stats

import (
	"math"
	"testing"
)

func TestDiscountedReturn(t *testing.T) {
	rewards := []float64{-5, -5, -5}
	got := DiscountedReturn(rewards, 0.9)
	want := -5.0 + 0.9*-5.0 + 0.81*-5.0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("discounted return = %f, want %f", got, want)
	}

	if got := DiscountedReturn(rewards, 1.0); got != -15.0 {
		t.Fatalf("undiscounted return = %f, want -15.0", got)
	}
	if got := DiscountedReturn(nil, 0.9); got != 0 {
		t.Fatalf("empty return = %f, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{-10, -5, 0, -5})
	if s.Count != 4 {
		t.Fatalf("count = %d, want 4", s.Count)
	}
	if s.Mean != -5 {
		t.Fatalf("mean = %f, want -5", s.Mean)
	}
	if s.Min != -10 || s.Max != 0 {
		t.Fatalf("min/max = %f/%f, want -10/0", s.Min, s.Max)
	}
	want := math.Sqrt(12.5)
	if math.Abs(s.StdDev-want) > 1e-12 {
		t.Fatalf("stddev = %f, want %f", s.StdDev, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestRate(t *testing.T) {
	if got := Rate([]bool{true, false, true, false}); got != 0.5 {
		t.Fatalf("rate = %f, want 0.5", got)
	}
	if got := Rate(nil); got != 0 {
		t.Fatalf("empty rate = %f, want 0", got)
	}
}
