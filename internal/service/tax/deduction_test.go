package tax

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/tax"
)

func TestRentRelief(t *testing.T) {
	rs, err := tax.RulesetFor(2026)
	if err != nil {
		t.Fatalf("RulesetFor(2026): %v", err)
	}

	cases := []struct {
		name string
		rent string
		want string
	}{
		{"zero rent", "0", "0"},
		{"negative rent", "-1000", "0"},
		{"below cap", "1000000", "200000"},
		{"exactly at cap", "2500000", "500000"},
		{"above cap", "3000000", "500000"},
		{"far above cap", "10000000", "500000"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := rentRelief(decimal.RequireFromString(c.rent), rs)
			want := decimal.RequireFromString(c.want)
			if !got.Equal(want) {
				t.Errorf("rentRelief(%s) = %s, want %s", c.rent, got, want)
			}
		})
	}
}

func TestConsolidatedRelief(t *testing.T) {
	rs, err := tax.RulesetFor(2026)
	if err != nil {
		t.Fatalf("RulesetFor(2026): %v", err)
	}

	cases := []struct {
		name        string
		annualGross string
		want        string
	}{
		// 1% of gross below the floor: CRA = 200,000 + 20% of gross.
		{"low income uses floor", "600000", "320000"},
		{"floor boundary", "20000000", "4200000"},
		// Above the floor: CRA = 1% + 20% of gross.
		{"high income uses percentage", "30000000", "6300000"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := consolidatedRelief(decimal.RequireFromString(c.annualGross), rs)
			want := decimal.RequireFromString(c.want)
			if !got.Equal(want) {
				t.Errorf("consolidatedRelief(%s) = %s, want %s", c.annualGross, got, want)
			}
		})
	}
}

func TestResolveDeductionsFlagGating(t *testing.T) {
	rs, err := tax.RulesetFor(2026)
	if err != nil {
		t.Fatalf("RulesetFor(2026): %v", err)
	}

	yes, no := true, false
	gross := decimal.NewFromInt(400_000)

	got := ResolveDeductions(gross, tax.BenefitFlags{
		HasPension: &yes,
		HasNHF:     &no,
		HasNHIS:    &no,
	}, tax.AnnualDeductions{}, rs)

	if !got.MonthlyEmployeePension.Equal(decimal.NewFromInt(32_000)) {
		t.Errorf("employee pension = %s, want 32000", got.MonthlyEmployeePension)
	}
	if !got.MonthlyEmployerPension.Equal(decimal.NewFromInt(40_000)) {
		t.Errorf("employer pension = %s, want 40000", got.MonthlyEmployerPension)
	}
	if !got.MonthlyNHF.IsZero() {
		t.Errorf("nhf = %s, want 0", got.MonthlyNHF)
	}
	if !got.MonthlyNHIS.IsZero() {
		t.Errorf("nhis = %s, want 0", got.MonthlyNHIS)
	}
}
