package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// ProfileResolver resolves the accounting rules that apply to a company.
type ProfileResolver interface {
	GetAccountingProfile(ctx context.Context, companyID string) (standards.CountryAccountingProfile, error)
}

// CompanySvcFacade manages companies, the tenants of the ledger.
type CompanySvcFacade interface {
	ProfileResolver

	// CreateCompany resolves the company's profile from its country and
	// optional standard, and defaults the base currency from the profile.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, userID string) (*domain.Company, error)

	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}
