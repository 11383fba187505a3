package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByNumber retrieves an account by its company-scoped number.
	FindAccountByNumber(ctx context.Context, companyID, accountNumber string) (*domain.Account, error)

	// FindAccountsByNumbers retrieves the accounts that exist among the given numbers, keyed by number.
	// Missing numbers are simply absent from the map.
	FindAccountsByNumbers(ctx context.Context, companyID string, accountNumbers []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the company's accounts ordered by number.
	ListAccounts(ctx context.Context, companyID string, filter domain.AccountFilter) ([]domain.Account, error)

	// ListAccountNumbersByPrefix returns every account number of the company starting with prefix.
	ListAccountNumbersByPrefix(ctx context.Context, companyID, prefix string) ([]string, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicateAccount
	// when the number is already used in the company.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's descriptive fields.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SetAccountActive flips the active flag of an account.
	SetAccountActive(ctx context.Context, companyID, accountNumber string, active bool, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
