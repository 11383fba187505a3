package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
)

// companyService handles companies and resolves their accounting profile.
type companyService struct {
	BaseService
	companyRepo     portsrepo.CompanyRepositoryFacade
	registry        *standards.Registry
	defaultStandard string
}

// CompanyServiceOption is a functional option for configuring the company service
type CompanyServiceOption func(*companyService)

// WithDefaultStandard sets the standard used for countries the registry does not know.
func WithDefaultStandard(code string) CompanyServiceOption {
	return func(s *companyService) {
		s.defaultStandard = strings.ToUpper(code)
	}
}

// NewCompanyService creates a new company service.
func NewCompanyService(repo portsrepo.CompanyRepositoryFacade, registry *standards.Registry, options ...CompanyServiceOption) portssvc.CompanySvcFacade {
	svc := &companyService{
		companyRepo: repo,
		registry:    registry,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, userID string) (*domain.Company, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: company name is required", apperrors.ErrValidation)
	}

	profile, err := s.registry.ResolveProfile(req.CountryCode, req.AccountingStandard)
	if err != nil && req.AccountingStandard == "" && s.defaultStandard != "" {
		profile, err = s.registry.GetProfile(s.defaultStandard)
	}
	if err != nil {
		s.LogWarn(ctx, "No accounting profile for company",
			slog.String("country_code", req.CountryCode),
			slog.String("standard", req.AccountingStandard))
		return nil, err
	}

	baseCurrency := strings.ToUpper(req.BaseCurrency)
	if baseCurrency == "" {
		baseCurrency = profile.CurrencyCode
	}
	if baseCurrency == "" {
		return nil, fmt.Errorf("%w: base currency is required for standard %s", apperrors.ErrValidation, profile.Standard)
	}

	now := s.Now()
	company := domain.Company{
		CompanyID:          uuid.NewString(),
		Name:               strings.TrimSpace(req.Name),
		CountryCode:        strings.ToUpper(req.CountryCode),
		AccountingStandard: profile.Standard,
		BaseCurrency:       baseCurrency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("company_name", company.Name))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.LogInfo(ctx, "Company created",
		slog.String("company_id", company.CompanyID),
		slog.String("standard", company.AccountingStandard),
		slog.String("base_currency", company.BaseCurrency))
	return &company, nil
}

func (s *companyService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company", slog.String("company_id", companyID))
		}
		return nil, fmt.Errorf("failed to get company %s: %w", companyID, err)
	}
	return company, nil
}

func (s *companyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompanies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies")
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	if companies == nil {
		return []domain.Company{}, nil
	}
	return companies, nil
}

// GetAccountingProfile returns the profile of the company's country and standard.
// When the company uses a standard foreign to its country, the bare standard is
// used and its currency settings come from the company's base currency.
func (s *companyService) GetAccountingProfile(ctx context.Context, companyID string) (standards.CountryAccountingProfile, error) {
	company, err := s.GetCompany(ctx, companyID)
	if err != nil {
		return standards.CountryAccountingProfile{}, err
	}

	profile, err := s.registry.ResolveProfile(company.CountryCode, company.AccountingStandard)
	if err != nil {
		s.LogError(ctx, err, "Company references an unknown standard",
			slog.String("company_id", companyID),
			slog.String("standard", company.AccountingStandard))
		return standards.CountryAccountingProfile{}, err
	}

	if profile.CurrencyCode != company.BaseCurrency {
		profile.CurrencyCode = company.BaseCurrency
		profile.DecimalPlaces = s.registry.CurrencyDecimals(company.BaseCurrency)
	}
	return profile, nil
}
