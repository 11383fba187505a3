package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindLatestRate(ctx context.Context, from, to string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to, asOf)
	var rate *domain.ExchangeRate
	if args.Get(0) != nil {
		rate = args.Get(0).(*domain.ExchangeRate)
	}
	return rate, args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	repo     *MockExchangeRateRepository
	service  portssvc.ExchangeRateSvcFacade
	rateDate time.Time
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

func (s *ExchangeRateServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = new(MockExchangeRateRepository)
	s.rateDate = date("2024-01-15")
	s.service = services.NewExchangeRateService(s.repo, standards.DefaultRegistry(),
		services.WithRateLookupTimeout(200*time.Millisecond),
		services.WithRateLookupRetries(3),
		services.WithRateRetryInterval(time.Millisecond),
	)
}

func (s *ExchangeRateServiceTestSuite) eurXof() *domain.ExchangeRate {
	return &domain.ExchangeRate{
		ExchangeRateID: "r1",
		FromCurrency:   "EUR",
		ToCurrency:     "XOF",
		Rate:           amount("655.957"),
		DateEffective:  date("2024-01-01"),
	}
}

func notFound(from, to string) error {
	return fmt.Errorf("%w: rate %s->%s", apperrors.ErrNotFound, from, to)
}

func (s *ExchangeRateServiceTestSuite) TestSameCurrencyIsOne() {
	rate, err := s.service.GetRate(s.ctx, "xof", "XOF", s.rateDate)
	s.Require().NoError(err)
	s.True(rate.Equal(amount("1")))
	s.repo.AssertNotCalled(s.T(), "FindLatestRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExchangeRateServiceTestSuite) TestDirectRate() {
	s.repo.On("FindLatestRate", mock.Anything, "EUR", "XOF", s.rateDate).Return(s.eurXof(), nil).Once()

	rate, err := s.service.GetRate(s.ctx, "EUR", "XOF", s.rateDate)
	s.Require().NoError(err)
	s.True(rate.Equal(amount("655.957")))
	s.repo.AssertExpectations(s.T())
}

func (s *ExchangeRateServiceTestSuite) TestInverseRateFallback() {
	s.repo.On("FindLatestRate", mock.Anything, "XOF", "EUR", s.rateDate).Return(nil, notFound("XOF", "EUR")).Once()
	s.repo.On("FindLatestRate", mock.Anything, "EUR", "XOF", s.rateDate).Return(&domain.ExchangeRate{Rate: amount("500")}, nil).Once()

	rate, err := s.service.GetRate(s.ctx, "XOF", "EUR", s.rateDate)
	s.Require().NoError(err)
	s.True(rate.Equal(amount("0.002")))
}

func (s *ExchangeRateServiceTestSuite) TestTransientFailureIsRetried() {
	s.repo.On("FindLatestRate", mock.Anything, "EUR", "XOF", s.rateDate).Return(nil, errors.New("connection reset")).Twice()
	s.repo.On("FindLatestRate", mock.Anything, "EUR", "XOF", s.rateDate).Return(s.eurXof(), nil).Once()

	rate, err := s.service.GetRate(s.ctx, "EUR", "XOF", s.rateDate)
	s.Require().NoError(err)
	s.True(rate.Equal(amount("655.957")))
	s.repo.AssertNumberOfCalls(s.T(), "FindLatestRate", 3)
}

func (s *ExchangeRateServiceTestSuite) TestMissingRateIsNotRetried() {
	s.repo.On("FindLatestRate", mock.Anything, "EUR", "USD", s.rateDate).Return(nil, notFound("EUR", "USD"))
	s.repo.On("FindLatestRate", mock.Anything, "USD", "EUR", s.rateDate).Return(nil, notFound("USD", "EUR"))

	_, err := s.service.GetRate(s.ctx, "EUR", "USD", s.rateDate)
	s.ErrorIs(err, apperrors.ErrRateUnavailable)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.repo.AssertNumberOfCalls(s.T(), "FindLatestRate", 2)
}

func (s *ExchangeRateServiceTestSuite) TestSlowSourceTimesOut() {
	s.repo.On("FindLatestRate", mock.Anything, "EUR", "XOF", s.rateDate).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	started := time.Now()
	_, err := s.service.GetRate(s.ctx, "EUR", "XOF", s.rateDate)
	s.ErrorIs(err, apperrors.ErrRateUnavailable)
	s.ErrorIs(err, apperrors.ErrUnavailable)
	s.Less(time.Since(started), 2*time.Second)
}

func (s *ExchangeRateServiceTestSuite) TestConvertRoundsToTargetCurrency() {
	s.repo.On("FindLatestRate", mock.Anything, "EUR", "XOF", s.rateDate).Return(s.eurXof(), nil)

	converted, err := s.service.Convert(s.ctx, amount("10.5"), "EUR", "XOF", s.rateDate)
	s.Require().NoError(err)
	s.True(converted.Equal(amount("6888")), converted.String())
}

func (s *ExchangeRateServiceTestSuite) TestCreateExchangeRate() {
	s.repo.On("SaveExchangeRate", mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrency == "EUR" && r.ToCurrency == "XOF" && r.DateEffective.Equal(date("2024-01-01"))
	})).Return(nil).Once()

	rate, err := s.service.CreateExchangeRate(s.ctx, dto.CreateExchangeRateRequest{
		FromCurrencyCode: "eur",
		ToCurrencyCode:   "xof",
		Rate:             amount("655.957"),
		DateEffective:    time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC),
	}, testUser)
	s.Require().NoError(err)
	s.NotEmpty(rate.ExchangeRateID)
	s.Equal(testUser, rate.CreatedBy)
	s.repo.AssertExpectations(s.T())
}

func (s *ExchangeRateServiceTestSuite) TestCreateExchangeRateValidation() {
	_, err := s.service.CreateExchangeRate(s.ctx, dto.CreateExchangeRateRequest{
		FromCurrencyCode: "EUR", ToCurrencyCode: "XOF", Rate: amount("0"), DateEffective: s.rateDate,
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.CreateExchangeRate(s.ctx, dto.CreateExchangeRateRequest{
		FromCurrencyCode: "EUR", ToCurrencyCode: "EUR", Rate: amount("1"), DateEffective: s.rateDate,
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.repo.AssertNotCalled(s.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}
