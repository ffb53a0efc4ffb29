package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"5000", 500000, true},
		{"0", 0, true},
		{"0.00", 0, true},
		{".5", 50, true},
		{"7.", 700, true},
		{"", 0, false},
		{".", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"abc", 0, false},
		{"12.3.4", 0, false},
		{"12x", 0, false},
	}
	for _, tc := range cases {
		m, err := ParseAmount(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseAmount(%q): unexpected error %v", tc.in, err)
			continue
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("ParseAmount(%q): expected error, got %d cents", tc.in, m.Cents)
			}
			continue
		}
		if m.Cents != tc.cents {
			t.Errorf("ParseAmount(%q) = %d cents, want %d", tc.in, m.Cents, tc.cents)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if got := (Money{Cents: 123456}).String(); got != "₹1234.56" {
		t.Errorf("String() = %q", got)
	}
	if got := (Money{}).String(); got != "₹0.00" {
		t.Errorf("String() = %q", got)
	}
}

func TestPercentOf(t *testing.T) {
	spent := Money{Cents: 5000}
	if pct := spent.PercentOf(Money{Cents: 10000}); pct != 50 {
		t.Errorf("PercentOf = %v, want 50", pct)
	}
	// zero budget must not divide
	if pct := spent.PercentOf(Money{}); pct != 0 {
		t.Errorf("PercentOf zero budget = %v, want 0", pct)
	}
}
