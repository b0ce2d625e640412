package deduction

import "context"

// DeductionsRepository defines data access for employment deductions
// records. One active record per (account, taxYear).
type DeductionsRepository interface {
	Upsert(ctx context.Context, record EmploymentDeductions) (EmploymentDeductions, error)
	GetByAccountYear(ctx context.Context, accountID string, taxYear int) (EmploymentDeductions, error)
	Delete(ctx context.Context, accountID string, taxYear int) error
}

// DeductionsService is the boundary the API layer calls.
type DeductionsService interface {
	Upsert(ctx context.Context, req UpsertDeductionsRequest) (DeductionsResponse, error)
	Get(ctx context.Context, accountID string, taxYear int) (DeductionsResponse, error)
	Delete(ctx context.Context, accountID string, taxYear int) error
}
