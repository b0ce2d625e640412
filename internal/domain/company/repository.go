package company

import "context"

// CompanyRepository defines data access for companies and their stored
// tax profiles. One profile per (company, taxYear).
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	UpsertTaxProfile(ctx context.Context, profile TaxProfile) (TaxProfile, error)
	GetTaxProfile(ctx context.Context, companyID string, taxYear int) (TaxProfile, error)
}

// TaxProfileService is the boundary the API layer calls.
type TaxProfileService interface {
	Classify(ctx context.Context, req ClassifyRequest) (TaxProfileResponse, error)
	GetProfile(ctx context.Context, companyID string, taxYear int) (TaxProfileResponse, error)
}
