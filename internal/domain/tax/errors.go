package tax

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTaxYear      = errors.New("no ruleset exists for the requested tax year")
	ErrNegativeTaxableBase = errors.New("taxable base must be non-negative")
	ErrMissingBenefitFlag  = errors.New("employee benefit eligibility flag is missing")
)

// InvalidTaxYearError wraps ErrInvalidTaxYear with the offending year and
// the statutory reason so the caller sees why the year was rejected.
func InvalidTaxYearError(taxYear int) error {
	return fmt.Errorf("%w: tax year %d is outside %d-%d (Nigeria Tax Act 2025 applies to tax years %d and later)",
		ErrInvalidTaxYear, taxYear, MinTaxYear, MaxTaxYear, MinTaxYear)
}

// MissingFlagError wraps ErrMissingBenefitFlag with the flag name.
func MissingFlagError(flag string) error {
	return fmt.Errorf("%w: %s is required and was not set", ErrMissingBenefitFlag, flag)
}
