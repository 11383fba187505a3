package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultRateLookupTimeout = 2 * time.Second
	defaultRateLookupRetries = 3
	defaultRateRetryInterval = 100 * time.Millisecond

	// Precision kept when inverting a stored rate.
	inverseRatePrecision = 10
)

// exchangeRateService provides rate lookups and conversions. Every lookup is
// bounded by a timeout and retried with exponential backoff on transient errors.
type exchangeRateService struct {
	BaseService
	rateRepo      portsrepo.ExchangeRateRepositoryFacade
	registry      *standards.Registry
	timeout       time.Duration
	maxRetries    uint64
	retryInterval time.Duration
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithRateLookupTimeout bounds the total time spent on one rate lookup, retries included.
func WithRateLookupTimeout(d time.Duration) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRateLookupRetries sets how many times a failed lookup is retried.
func WithRateLookupRetries(n uint64) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.maxRetries = n
	}
}

// WithRateRetryInterval sets the first backoff interval.
func WithRateRetryInterval(d time.Duration) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if d > 0 {
			s.retryInterval = d
		}
	}
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, registry *standards.Registry, options ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		rateRepo:      rateRepo,
		registry:      registry,
		timeout:       defaultRateLookupTimeout,
		maxRetries:    defaultRateLookupRetries,
		retryInterval: defaultRateRetryInterval,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	from, to := strings.ToUpper(req.FromCurrencyCode), strings.ToUpper(req.ToCurrencyCode)
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	now := s.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCurrency:   from,
		ToCurrency:     to,
		Rate:           req.Rate,
		DateEffective:  domain.DateOnly(req.DateEffective),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate", slog.String("from", from), slog.String("to", to))
		return nil, fmt.Errorf("failed to save exchange rate %s->%s: %w", from, to, err)
	}
	return &rate, nil
}

// GetRate returns the rate effective on date. A stored inverse rate is used
// when no direct rate exists.
func (s *exchangeRateService) GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	day := domain.DateOnly(date)
	attempt := 0
	operation := func() (decimal.Decimal, error) {
		attempt++
		rate, err := s.lookup(lookupCtx, from, to, day)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Exchange rate lookup failed",
				slog.String("from", from),
				slog.String("to", to),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			return decimal.Zero, err
		}
		if err != nil {
			return decimal.Zero, backoff.Permanent(err)
		}
		return rate, nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retryInterval
	policy.MaxElapsedTime = 0

	rate, err := backoff.RetryWithData(operation, backoff.WithContext(backoff.WithMaxRetries(policy, s.maxRetries), lookupCtx))
	if err != nil {
		s.LogWarn(ctx, "Exchange rate unavailable",
			slog.String("from", from),
			slog.String("to", to),
			slog.String("date", day.Format(time.DateOnly)),
			slog.Int("attempts", attempt),
			slog.String("error", err.Error()))
		return decimal.Zero, fmt.Errorf("%w: %s->%s on %s: %w", apperrors.ErrRateUnavailable, from, to, day.Format(time.DateOnly), err)
	}
	return rate, nil
}

func (s *exchangeRateService) lookup(ctx context.Context, from, to string, day time.Time) (decimal.Decimal, error) {
	direct, err := s.rateRepo.FindLatestRate(ctx, from, to, day)
	if err == nil {
		return direct.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, err
	}

	inverse, err := s.rateRepo.FindLatestRate(ctx, to, from, day)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(1).DivRound(inverse.Rate, inverseRatePrecision), nil
}

// Convert returns amount in to, rounded to to's decimal places.
func (s *exchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error) {
	rate, err := s.GetRate(ctx, from, to, date)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(s.registry.CurrencyDecimals(to)), nil
}
