package ui

import "testing"

func TestLabelRowSet_CoversTopAndBottom(t *testing.T) {
	rows := labelRowSet(20, 5)
	if _, ok := rows[0]; !ok {
		t.Fatal("top row must carry a label")
	}
	if _, ok := rows[19]; !ok {
		t.Fatal("bottom row must carry a label")
	}
	if len(rows) != 6 {
		t.Fatalf("interval 5 should yield 6 label rows, got %d", len(rows))
	}
}

func TestLabelRowSet_IntervalFloor(t *testing.T) {
	rows := labelRowSet(10, 0)
	if len(rows) != 2 {
		t.Fatalf("interval clamps to 1: expected 2 rows, got %d", len(rows))
	}
}

func TestFormatAxisValue(t *testing.T) {
	for in, want := range map[float64]string{
		1234:   "1234",
		-1234:  "-1234",
		42.7:   "42.7",
		0.1234: "0.123",
		-0.5:   "-0.500",
	} {
		if got := formatAxisValue(in); got != want {
			t.Fatalf("formatAxisValue(%v) = %q, want %q", in, got, want)
		}
	}
}
