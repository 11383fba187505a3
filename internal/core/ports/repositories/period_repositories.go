package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// PeriodReader defines read operations for financial periods
type PeriodReader interface {
	FindPeriodByID(ctx context.Context, companyID, periodID string) (*domain.FinancialPeriod, error)

	// FindPeriodForDate returns the period containing date, or apperrors.ErrNotFound.
	FindPeriodForDate(ctx context.Context, companyID string, date time.Time) (*domain.FinancialPeriod, error)

	// ListPeriods returns the company's periods ordered by start date.
	ListPeriods(ctx context.Context, companyID string) ([]domain.FinancialPeriod, error)
}

// PeriodWriter defines write operations for financial periods
type PeriodWriter interface {
	// SavePeriod persists a new period. Returns apperrors.ErrPeriodOverlap when it
	// shares a day with another period of the company.
	SavePeriod(ctx context.Context, period domain.FinancialPeriod) error

	// ChangePeriodStatus applies a guarded status change. It waits for in-flight
	// posts into the period to finish before applying.
	ChangePeriodStatus(ctx context.Context, change domain.PeriodStatusChange) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
