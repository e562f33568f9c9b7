package scope

import "testing"

func TestParseNumber_AcceptsBothSeparators(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{"1,5", 1.5},
		{"-0,25", -0.25},
		{"+10", 10},
		{"600", 600},
	} {
		got, err := parseNumber(tc.in)
		if err != nil {
			t.Fatalf("parseNumber(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parseNumber(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseNumber_RejectsGarbage(t *testing.T) {
	for _, in := range []string{"abc", "1.2.3", "1,2,3", "1e5", "--2", "12x", "."} {
		if _, err := parseNumber(in); err == nil {
			t.Fatalf("parseNumber(%q): expected error", in)
		}
	}
}

func TestSignOnly(t *testing.T) {
	if !signOnly("+") || !signOnly("-") {
		t.Fatal("bare signs are in-progress typing")
	}
	if signOnly("") || signOnly("+1") {
		t.Fatal("only a lone sign counts")
	}
}

func TestEditableField_RevertRestoresLastValid(t *testing.T) {
	f := newField(12.5)
	f.Text = "garbage"
	f.revert()
	if f.Text != "12.5" || f.Value != 12.5 {
		t.Fatalf("revert failed: text=%q value=%v", f.Text, f.Value)
	}
}
