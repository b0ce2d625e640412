package company

import "errors"

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrTaxProfileNotFound = errors.New("company tax profile not found")
)
