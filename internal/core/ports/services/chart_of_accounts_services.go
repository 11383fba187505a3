package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// ChartOfAccountsReaderSvc defines read operations for a company's chart of accounts
type ChartOfAccountsReaderSvc interface {
	// GetAccount retrieves an account by its number.
	GetAccount(ctx context.Context, companyID, accountNumber string) (*domain.Account, error)

	// ListAccounts retrieves the company's accounts ordered by number.
	ListAccounts(ctx context.Context, companyID string, filter domain.AccountFilter) ([]domain.Account, error)

	// FindOrNextAvailableNumber returns the next unused account number under prefix.
	// A trailing "*" on the prefix is ignored.
	FindOrNextAvailableNumber(ctx context.Context, companyID, prefix string) (string, error)
}

// ChartOfAccountsWriterSvc defines write operations for a company's chart of accounts
type ChartOfAccountsWriterSvc interface {
	// CreateAccount validates the number and class against the company's standard and persists the account.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount changes descriptive fields only; number, type and class are fixed.
	UpdateAccount(ctx context.Context, companyID, accountNumber string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account inactive. Always permitted.
	DeactivateAccount(ctx context.Context, companyID, accountNumber, userID string) error

	// ReactivateAccount marks an inactive account active again.
	ReactivateAccount(ctx context.Context, companyID, accountNumber, userID string) error
}

// ChartOfAccountsSvcFacade combines all chart-of-accounts service interfaces
type ChartOfAccountsSvcFacade interface {
	ChartOfAccountsReaderSvc
	ChartOfAccountsWriterSvc
}
