package tax

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
)

func ntaBands(t *testing.T) []tax.Band {
	t.Helper()
	rs, err := tax.RulesetFor(2026)
	if err != nil {
		t.Fatalf("RulesetFor(2026): %v", err)
	}
	return rs.Bands
}

func TestProgressive(t *testing.T) {
	bands := ntaBands(t)

	cases := []struct {
		name string
		base string
		want string
	}{
		{"zero base", "0", "0"},
		{"inside exemption", "500000", "0"},
		{"exactly at exemption", "800000", "0"},
		{"second band partial", "1000000", "30000"},
		{"second band full", "3000000", "330000"},
		{"third band full", "12000000", "1950000"},
		{"fourth band full", "25000000", "4680000"},
		{"fifth band full", "50000000", "10430000"},
		{"top band", "60000000", "12930000"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Progressive(decimal.RequireFromString(c.base), bands)
			if err != nil {
				t.Fatalf("Progressive(%s): %v", c.base, err)
			}
			want := decimal.RequireFromString(c.want)
			if !got.Equal(want) {
				t.Errorf("Progressive(%s) = %s, want %s", c.base, got, want)
			}
		})
	}
}

func TestProgressiveRejectsNegativeBase(t *testing.T) {
	_, err := Progressive(decimal.NewFromInt(-1), ntaBands(t))
	if err == nil {
		t.Fatal("expected error for negative base, got nil")
	}
}

func TestProgressiveMonotonic(t *testing.T) {
	bands := ntaBands(t)

	prev := decimal.Zero
	// Step across every band boundary; tax must never decrease.
	for base := int64(0); base <= 60_000_000; base += 250_000 {
		got, err := Progressive(decimal.NewFromInt(base), bands)
		if err != nil {
			t.Fatalf("Progressive(%d): %v", base, err)
		}
		if got.LessThan(prev) {
			t.Fatalf("tax decreased at base %d: %s < %s", base, got, prev)
		}
		prev = got
	}
}
