package subscription

// Feature is a plan-gated capability. A feature is included from its
// required tier upward.
type Feature string

const (
	// FeaturePayrollBatch covers payroll batch generation and the
	// schedule workflow.
	FeaturePayrollBatch Feature = "payroll_batch"
	// FeatureCompanyTax covers CIT classification and company tax
	// profiles.
	FeatureCompanyTax Feature = "company_tax"
)

// RequiredTier returns the minimum plan tier that includes f. Unknown
// features are treated as enterprise-only.
func (f Feature) RequiredTier() PlanTier {
	switch f {
	case FeaturePayrollBatch:
		return TierStarter
	case FeatureCompanyTax:
		return TierBusiness
	}
	return TierEnterprise
}

// Includes reports whether the tier covers the feature.
func (t PlanTier) Includes(f Feature) bool {
	return t.Level() >= f.RequiredTier().Level()
}
