package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/shopspring/decimal"
)

// RateProvider converts amounts between currencies.
// Lookups are bounded in time; a rate that cannot be obtained yields apperrors.ErrRateUnavailable.
type RateProvider interface {
	// GetRate returns the rate effective on date for one unit of from in to.
	GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error)

	// Convert returns amount expressed in to, rounded to to's decimal places.
	Convert(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error)
}

// ExchangeRateSvcFacade combines rate lookups with rate maintenance.
type ExchangeRateSvcFacade interface {
	RateProvider

	// CreateExchangeRate persists a new exchange rate.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}
