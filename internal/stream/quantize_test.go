package stream

import (
	"errors"
	"math"
	"testing"
)

func TestQuantize_ExactDivider(t *testing.T) {
	// 32768 / 640 = 51.2 exactly
	got, err := Quantize(51.2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != 51.2 {
		t.Fatalf("expected 51.2, got %v", got)
	}
	if Divider(got) != 640 {
		t.Fatalf("expected divider 640, got %d", Divider(got))
	}
}

func TestQuantize_NearestDivider(t *testing.T) {
	// 32768 / 50 = 655.36 -> divider 655 -> ~50.0275 Hz
	got, err := Quantize(50.0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := 32768.0 / 655.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestQuantize_TieRoundsAwayFromZero(t *testing.T) {
	// Pick a request whose divider lands exactly on N.5:
	// 32768 / req = 2.5 => req = 13107.2, divider must become 3.
	got, err := Quantize(13107.2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := 32768.0 / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("tie should round divider up to 3: expected %v, got %v", want, got)
	}
}

func TestQuantize_HugeRateClampsDividerToOne(t *testing.T) {
	got, err := Quantize(1e9)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != 32768 {
		t.Fatalf("expected clock rate 32768, got %v", got)
	}
}

func TestQuantize_RejectsNonPositive(t *testing.T) {
	for _, hz := range []float64{0, -1, -51.2, math.NaN()} {
		if _, err := Quantize(hz); !errors.Is(err, ErrInvalidSamplingRate) {
			t.Fatalf("Quantize(%v): expected ErrInvalidSamplingRate, got %v", hz, err)
		}
	}
}

func TestQuantize_DeterministicAndBounded(t *testing.T) {
	for _, hz := range []float64{1, 2.5, 13, 51.2, 100, 333.33, 1000, 40000} {
		a, err := Quantize(hz)
		if err != nil {
			t.Fatalf("Quantize(%v): %v", hz, err)
		}
		b, _ := Quantize(hz)
		if a != b {
			t.Fatalf("Quantize(%v) not deterministic: %v vs %v", hz, a, b)
		}
		if a <= 0 || a > 32768 {
			t.Fatalf("Quantize(%v) = %v out of (0, 32768]", hz, a)
		}
	}
}
