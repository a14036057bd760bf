package domain

import "testing"

func TestParseAmount_AcceptsFormattedStrings(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"29800", "29800"},
		{"29,800", "29800"},
		{"₦29,800.00", "29800"},
		{"NGN 28750", "28750"},
		{"ngn 1,234.50", "1234.5"},
		{"  28900.00  ", "28900"},
		{"0", "0"},
	}
	for _, tc := range cases {
		amount, err := ParseAmount(tc.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q) error: %v", tc.in, err)
		}
		if amount.String() != tc.expected {
			t.Fatalf("ParseAmount(%q) = %s, want %s", tc.in, amount.String(), tc.expected)
		}
	}
}

func TestParseAmount_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"negative", "-29800"},
		{"negative formatted", "₦-29,800"},
		{"more than two decimals", "12.345"},
		{"not a number", "abc"},
		{"double decimal point", "12.34.56"},
		{"trailing letters", "12abc"},
		{"letter O for zero", "1O000"},
		{"interior dash", "12-34"},
		{"unknown currency symbol", "$1x2"},
		{"digits around letters", "1a2b3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseAmount(tc.in); err == nil {
				t.Fatalf("ParseAmount(%q) expected error, got none", tc.in)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	valid := []struct {
		in       string
		expected string
	}{
		{"2026-01", "2026-01"},
		{"2026/01", "2026-01"},
		{"202601", "2026-01"},
		{" 2026-12 ", "2026-12"},
	}
	for _, tc := range valid {
		period, err := ParsePeriod(tc.in)
		if err != nil {
			t.Fatalf("ParsePeriod(%q) error: %v", tc.in, err)
		}
		if period != tc.expected {
			t.Fatalf("ParsePeriod(%q) = %s, want %s", tc.in, period, tc.expected)
		}
	}

	invalid := []string{"", "2026", "2026-13", "2026-00", "Jan 2026", "01-2026"}
	for _, in := range invalid {
		if _, err := ParsePeriod(in); err == nil {
			t.Fatalf("ParsePeriod(%q) expected error, got none", in)
		}
	}
}
