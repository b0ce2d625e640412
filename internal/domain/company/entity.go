package company

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is an employer entity subject to company income tax.
type Company struct {
	ID             string
	OwnerAccountID string
	Name           string
	RCNumber       *string
	AnnualTurnover decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TaxProfile is the persisted turnover-derived classification for one
// (company, taxYear). Reporting and invoicing read it back verbatim.
type TaxProfile struct {
	ID        string
	CompanyID string
	TaxYear   int

	Turnover             decimal.Decimal
	CITRate              decimal.Decimal
	IsSmallCompanyExempt bool
	VATObligated         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
