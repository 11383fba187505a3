package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// PeriodGate is what the journal engine needs from period management.
type PeriodGate interface {
	// FindPeriodForDate returns the period containing date.
	FindPeriodForDate(ctx context.Context, companyID string, date time.Time) (*domain.FinancialPeriod, error)

	// IsPeriodOpen reports whether the period containing date accepts postings.
	// A date outside every period is not open.
	IsPeriodOpen(ctx context.Context, companyID string, date time.Time) (bool, error)
}

// PeriodSvcFacade manages financial periods.
type PeriodSvcFacade interface {
	PeriodGate

	GetPeriod(ctx context.Context, companyID, periodID string) (*domain.FinancialPeriod, error)
	ListPeriods(ctx context.Context, companyID string) ([]domain.FinancialPeriod, error)

	// CreatePeriod opens a new period; periods of a company never overlap.
	CreatePeriod(ctx context.Context, companyID string, req dto.CreatePeriodRequest, userID string) (*domain.FinancialPeriod, error)

	// ClosePeriod moves OPEN to CLOSED once in-flight posts into the period are done.
	ClosePeriod(ctx context.Context, companyID, periodID, userID string) (*domain.FinancialPeriod, error)

	// LockPeriod moves OPEN or CLOSED to LOCKED. A locked period is final.
	LockPeriod(ctx context.Context, companyID, periodID, reason, userID string) (*domain.FinancialPeriod, error)

	// ReopenPeriod moves CLOSED back to OPEN.
	ReopenPeriod(ctx context.Context, companyID, periodID, userID string) (*domain.FinancialPeriod, error)
}
