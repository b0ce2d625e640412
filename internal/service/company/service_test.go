package company

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/company"
	taxservice "github.com/taxpadi/taxpadi-backend-go/internal/service/tax"
)

// fakeCompanyRepo keeps companies and profiles in memory.
type fakeCompanyRepo struct {
	companies map[string]company.Company
	profiles  map[string]company.TaxProfile
}

func newFakeCompanyRepo(companies ...company.Company) *fakeCompanyRepo {
	f := &fakeCompanyRepo{
		companies: make(map[string]company.Company),
		profiles:  make(map[string]company.TaxProfile),
	}
	for _, c := range companies {
		f.companies[c.ID] = c
	}
	return f
}

func profileKey(companyID string, taxYear int) string {
	return fmt.Sprintf("%s/%d", companyID, taxYear)
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) UpsertTaxProfile(_ context.Context, profile company.TaxProfile) (company.TaxProfile, error) {
	f.profiles[profileKey(profile.CompanyID, profile.TaxYear)] = profile
	return profile, nil
}

func (f *fakeCompanyRepo) GetTaxProfile(_ context.Context, companyID string, taxYear int) (company.TaxProfile, error) {
	p, ok := f.profiles[profileKey(companyID, taxYear)]
	if !ok {
		return company.TaxProfile{}, company.ErrTaxProfileNotFound
	}
	return p, nil
}

func TestClassify(t *testing.T) {
	newService := func() (company.TaxProfileService, *fakeCompanyRepo) {
		repo := newFakeCompanyRepo(company.Company{ID: "co-1", Name: "Ada Ventures Ltd"})
		return NewTaxProfileService(repo, taxservice.NewCalculator()), repo
	}

	t.Run("small company exempt from CIT and VAT", func(t *testing.T) {
		svc, _ := newService()

		got, err := svc.Classify(context.Background(), company.ClassifyRequest{
			CompanyID: "co-1",
			Turnover:  decimal.NewFromInt(30_000_000),
			TaxYear:   2026,
		})
		require.NoError(t, err)

		assert.True(t, got.IsSmallCompanyExempt)
		assert.True(t, got.CITRate.IsZero(), "rate = %s", got.CITRate)
		assert.False(t, got.VATObligated)
	})

	t.Run("large company pays standard rate and VAT", func(t *testing.T) {
		svc, _ := newService()

		got, err := svc.Classify(context.Background(), company.ClassifyRequest{
			CompanyID: "co-1",
			Turnover:  decimal.NewFromInt(150_000_000),
			TaxYear:   2026,
		})
		require.NoError(t, err)

		assert.False(t, got.IsSmallCompanyExempt)
		assert.True(t, got.CITRate.Equal(decimal.RequireFromString("0.30")), "rate = %s", got.CITRate)
		assert.True(t, got.VATObligated)
	})

	t.Run("mid-size company pays CIT but not VAT", func(t *testing.T) {
		svc, _ := newService()

		// Above the CIT small-company cap, at the VAT threshold exactly.
		got, err := svc.Classify(context.Background(), company.ClassifyRequest{
			CompanyID: "co-1",
			Turnover:  decimal.NewFromInt(100_000_000),
			TaxYear:   2026,
		})
		require.NoError(t, err)

		assert.False(t, got.IsSmallCompanyExempt)
		assert.False(t, got.VATObligated)
	})

	t.Run("reclassification replaces the stored profile", func(t *testing.T) {
		svc, repo := newService()
		ctx := context.Background()

		_, err := svc.Classify(ctx, company.ClassifyRequest{
			CompanyID: "co-1",
			Turnover:  decimal.NewFromInt(30_000_000),
			TaxYear:   2026,
		})
		require.NoError(t, err)

		_, err = svc.Classify(ctx, company.ClassifyRequest{
			CompanyID: "co-1",
			Turnover:  decimal.NewFromInt(150_000_000),
			TaxYear:   2026,
		})
		require.NoError(t, err)

		require.Len(t, repo.profiles, 1)
		got, err := svc.GetProfile(ctx, "co-1", 2026)
		require.NoError(t, err)
		assert.True(t, got.Turnover.Equal(decimal.NewFromInt(150_000_000)))
		assert.False(t, got.IsSmallCompanyExempt)
	})

	t.Run("unknown company", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.Classify(context.Background(), company.ClassifyRequest{
			CompanyID: "co-404",
			Turnover:  decimal.NewFromInt(10_000_000),
			TaxYear:   2026,
		})
		assert.ErrorIs(t, err, company.ErrCompanyNotFound)
	})

	t.Run("negative turnover rejected", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.Classify(context.Background(), company.ClassifyRequest{
			CompanyID: "co-1",
			Turnover:  decimal.NewFromInt(-1),
			TaxYear:   2026,
		})
		require.Error(t, err)
	})

	t.Run("pre-regime tax year rejected", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.Classify(context.Background(), company.ClassifyRequest{
			CompanyID: "co-1",
			Turnover:  decimal.NewFromInt(10_000_000),
			TaxYear:   2024,
		})
		require.Error(t, err)
	})
}
