package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
)

// chartOfAccountsService implements the ChartOfAccountsSvcFacade interface
type chartOfAccountsService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	profiles    portssvc.ProfileResolver
	registry    *standards.Registry
}

// NewChartOfAccountsService creates a chart-of-accounts service validating against registry.
func NewChartOfAccountsService(repo portsrepo.AccountRepositoryFacade, profiles portssvc.ProfileResolver, registry *standards.Registry) portssvc.ChartOfAccountsSvcFacade {
	return &chartOfAccountsService{
		accountRepo: repo,
		profiles:    profiles,
		registry:    registry,
	}
}

var _ portssvc.ChartOfAccountsSvcFacade = (*chartOfAccountsService)(nil)

func (s *chartOfAccountsService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	profile, err := s.profiles.GetAccountingProfile(ctx, companyID)
	if err != nil {
		return nil, err
	}

	number := strings.TrimSpace(req.AccountNumber)
	if !s.registry.ValidateAccountNumber(profile, number) {
		s.LogDebug(ctx, "Account number rejected by standard",
			slog.String("account_number", number),
			slog.String("standard", profile.Standard))
		return nil, fmt.Errorf("%w: %q does not match the %s format", apperrors.ErrInvalidAccountNumber, number, profile.Standard)
	}

	class := req.AccountClass
	if class == 0 {
		class = s.registry.ClassFromNumber(profile, number)
	}
	if !s.registry.ValidateAccountClass(profile, class) {
		return nil, fmt.Errorf("%w: class %d is outside 1..%d for %s", apperrors.ErrInvalidAccountClass, class, profile.MaxAccountClasses, profile.Standard)
	}

	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	currency := strings.ToUpper(req.CurrencyCode)
	if currency == "" {
		currency = profile.CurrencyCode
	}

	now := s.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		CompanyID:     companyID,
		AccountNumber: number,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		AccountType:   req.AccountType,
		AccountClass:  class,
		CurrencyCode:  currency,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account",
				slog.String("company_id", companyID),
				slog.String("account_number", number))
		}
		return nil, fmt.Errorf("failed to create account %s: %w", number, err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("company_id", companyID),
		slog.String("account_number", number),
		slog.Int("account_class", class))
	return &account, nil
}

func (s *chartOfAccountsService) GetAccount(ctx context.Context, companyID, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, companyID, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_number", accountNumber))
		}
		return nil, fmt.Errorf("failed to get account %s: %w", accountNumber, err)
	}
	return account, nil
}

func (s *chartOfAccountsService) ListAccounts(ctx context.Context, companyID string, filter domain.AccountFilter) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *chartOfAccountsService) UpdateAccount(ctx context.Context, companyID, accountNumber string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, companyID, accountNumber)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = s.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_number", accountNumber))
		return nil, fmt.Errorf("failed to update account %s: %w", accountNumber, err)
	}
	return account, nil
}

func (s *chartOfAccountsService) DeactivateAccount(ctx context.Context, companyID, accountNumber, userID string) error {
	return s.setActive(ctx, companyID, accountNumber, false, userID)
}

func (s *chartOfAccountsService) ReactivateAccount(ctx context.Context, companyID, accountNumber, userID string) error {
	return s.setActive(ctx, companyID, accountNumber, true, userID)
}

func (s *chartOfAccountsService) setActive(ctx context.Context, companyID, accountNumber string, active bool, userID string) error {
	if err := s.accountRepo.SetAccountActive(ctx, companyID, accountNumber, active, userID, s.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to change account status",
				slog.String("account_number", accountNumber),
				slog.Bool("active", active))
		}
		return fmt.Errorf("failed to set account %s active=%t: %w", accountNumber, active, err)
	}
	s.LogInfo(ctx, "Account status changed",
		slog.String("company_id", companyID),
		slog.String("account_number", accountNumber),
		slog.Bool("active", active))
	return nil
}

// FindOrNextAvailableNumber pads prefix with zeros to the standard's length when
// no account uses it yet; otherwise it returns the numeric max of existing
// suffixes plus one, keeping the suffix width.
func (s *chartOfAccountsService) FindOrNextAvailableNumber(ctx context.Context, companyID, prefix string) (string, error) {
	profile, err := s.profiles.GetAccountingProfile(ctx, companyID)
	if err != nil {
		return "", err
	}

	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), "*")
	if prefix == "" || !isDigits(prefix) {
		return "", fmt.Errorf("%w: prefix %q must be digits", apperrors.ErrInvalidAccountNumber, prefix)
	}
	length := profile.AccountNumberLength
	if length <= len(prefix) {
		return "", fmt.Errorf("%w: prefix %q leaves no room for a suffix in %d-digit %s numbers", apperrors.ErrInvalidAccountNumber, prefix, length, profile.Standard)
	}
	width := length - len(prefix)

	existing, err := s.accountRepo.ListAccountNumbersByPrefix(ctx, companyID, prefix)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account numbers", slog.String("prefix", prefix))
		return "", fmt.Errorf("failed to scan accounts under %s: %w", prefix, err)
	}

	next := uint64(0)
	found := false
	for _, number := range existing {
		if len(number) != length {
			continue
		}
		suffix, err := strconv.ParseUint(number[len(prefix):], 10, 64)
		if err != nil {
			continue
		}
		if !found || suffix+1 > next {
			next = suffix + 1
			found = true
		}
	}

	candidate := prefix + fmt.Sprintf("%0*d", width, next)
	if len(candidate) != length {
		return "", fmt.Errorf("%w: no free number left under prefix %s", apperrors.ErrInvalidAccountNumber, prefix)
	}
	if !s.registry.ValidateAccountNumber(profile, candidate) {
		return "", fmt.Errorf("%w: %s is not a valid %s number", apperrors.ErrInvalidAccountNumber, candidate, profile.Standard)
	}
	return candidate, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
