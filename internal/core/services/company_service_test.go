package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/repositories/database/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyService_ProfileFromCountry(t *testing.T) {
	ctx := context.Background()
	svc := services.NewCompanyService(memory.NewStore(), standards.DefaultRegistry())

	company, err := svc.CreateCompany(ctx, dto.CreateCompanyRequest{Name: "Abidjan Export", CountryCode: "CI"}, testUser)
	require.NoError(t, err)
	assert.Equal(t, standards.SYSCOHADA, company.AccountingStandard)
	assert.Equal(t, "XOF", company.BaseCurrency)

	profile, err := svc.GetAccountingProfile(ctx, company.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, "CI", profile.CountryCode)
	assert.Equal(t, int32(0), profile.DecimalPlaces)
	assert.Equal(t, 10, profile.AccountNumberLength)
	assert.True(t, profile.RequireBalancedEntries)
	assert.Equal(t, "25", profile.CorporateTaxRate.String())
}

func TestCompanyService_BaseCurrencyOverride(t *testing.T) {
	ctx := context.Background()
	svc := services.NewCompanyService(memory.NewStore(), standards.DefaultRegistry())

	company, err := svc.CreateCompany(ctx, dto.CreateCompanyRequest{Name: "Lyon SAS", CountryCode: "FR", BaseCurrency: "XOF"}, testUser)
	require.NoError(t, err)

	profile, err := svc.GetAccountingProfile(ctx, company.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, standards.PCG, profile.Standard)
	assert.Equal(t, "XOF", profile.CurrencyCode)
	assert.Equal(t, int32(0), profile.DecimalPlaces)
}

func TestCompanyService_UnknownCountry(t *testing.T) {
	ctx := context.Background()

	svc := services.NewCompanyService(memory.NewStore(), standards.DefaultRegistry())
	_, err := svc.CreateCompany(ctx, dto.CreateCompanyRequest{Name: "Nowhere Ltd", CountryCode: "ZZ"}, testUser)
	assert.ErrorIs(t, err, apperrors.ErrUnknownStandard)

	// A standard without a country profile has no currency to default to.
	_, err = svc.CreateCompany(ctx, dto.CreateCompanyRequest{Name: "Nowhere Ltd", CountryCode: "ZZ", AccountingStandard: "HGB"}, testUser)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	withDefault := services.NewCompanyService(memory.NewStore(), standards.DefaultRegistry(), services.WithDefaultStandard("us_gaap"))
	company, err := withDefault.CreateCompany(ctx, dto.CreateCompanyRequest{Name: "Nowhere Ltd", CountryCode: "ZZ", BaseCurrency: "USD"}, testUser)
	require.NoError(t, err)
	assert.Equal(t, standards.USGAAP, company.AccountingStandard)
}

func TestCompanyService_GetUnknownCompany(t *testing.T) {
	svc := services.NewCompanyService(memory.NewStore(), standards.DefaultRegistry())
	_, err := svc.GetAccountingProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	companies, err := svc.ListCompanies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, companies)
}
