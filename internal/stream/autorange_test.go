package stream

import (
	"math"
	"testing"
)

func TestComputeRange_NormalSignal(t *testing.T) {
	got := ComputeRange(0, 10)
	if got.Min != -1 || got.Max != 11 {
		t.Fatalf("expected [-1, 11], got [%v, %v]", got.Min, got.Max)
	}
}

func TestComputeRange_FlatSignal(t *testing.T) {
	// Flat at 10: margin = |10|*0.1 + 0.1 = 1.1
	got := ComputeRange(10, 10)
	if got.Min != 8.9 || got.Max != 11.1 {
		t.Fatalf("expected [8.9, 11.1], got [%v, %v]", got.Min, got.Max)
	}
}

func TestComputeRange_FlatAtZero(t *testing.T) {
	got := ComputeRange(0, 0)
	if got.Min != -0.1 || got.Max != 0.1 {
		t.Fatalf("expected [-0.1, 0.1], got [%v, %v]", got.Min, got.Max)
	}
	if got.Min >= got.Max {
		t.Fatal("flat signal must still yield min < max")
	}
}

func TestComputeRange_RoundsToThreeDigits(t *testing.T) {
	got := ComputeRange(0.00123, 0.98765)
	for _, b := range []float64{got.Min, got.Max} {
		scaled := b * 1000
		if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
			t.Fatalf("bound %v not rounded to 3 decimals", b)
		}
	}
}

func TestAxisRange_Hysteresis(t *testing.T) {
	cur := AxisRange{Min: -1, Max: 11}
	within := AxisRange{Min: -1.005, Max: 11.009}
	if within.DiffersFrom(cur) {
		t.Fatal("sub-threshold movement should not trigger an update")
	}
	beyond := AxisRange{Min: -1, Max: 11.02}
	if !beyond.DiffersFrom(cur) {
		t.Fatal("movement beyond threshold must trigger an update")
	}
}
