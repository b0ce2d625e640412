package validator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	cases := []struct {
		month int
		want  bool
	}{
		{0, false},
		{1, true},
		{6, true},
		{12, true},
		{13, false},
		{-1, false},
	}
	for _, c := range cases {
		if got := IsValidMonth(c.month); got != c.want {
			t.Errorf("IsValidMonth(%d) = %v, want %v", c.month, got, c.want)
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	tol := decimal.NewFromFloat(0.01)

	cases := []struct {
		got  string
		want string
		ok   bool
	}{
		{"500000", "500000", true},
		{"500000.01", "500000", true},
		{"500000.02", "500000", false},
		{"499999.99", "500000", true},
		{"199999", "200000", false},
	}
	for _, c := range cases {
		got := decimal.RequireFromString(c.got)
		want := decimal.RequireFromString(c.want)
		if ok := WithinTolerance(got, want, tol); ok != c.ok {
			t.Errorf("WithinTolerance(%s, %s, 0.01) = %v, want %v", c.got, c.want, ok, c.ok)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "tax_year", Message: "must be 2026 or later"},
		{Field: "annual_rent", Message: "must be non-negative"},
	}

	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m))
	}
	if m["tax_year"] != "must be 2026 or later" {
		t.Errorf("unexpected message: %q", m["tax_year"])
	}
}
