package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/handlers"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/repositories/database/memory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const actor = "alice"

func newRouter(t *testing.T, registry *standards.Registry, container *portssvc.ServiceContainer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, handlers.RegisterValidators())

	r := gin.New()
	r.Use(middleware.ActorMiddleware())
	handlers.RegisterRoutes(r, registry, container)
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.ActorHeader, actor)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body["code"]
}

// LedgerAPITestSuite drives the API over the real services and a memory store.
type LedgerAPITestSuite struct {
	suite.Suite
	router  *gin.Engine
	company dto.CompanyResponse
	base    string
}

func TestLedgerAPITestSuite(t *testing.T) {
	suite.Run(t, new(LedgerAPITestSuite))
}

func (s *LedgerAPITestSuite) SetupTest() {
	registry := standards.DefaultRegistry()
	cfg := &config.Config{RateLookupTimeout: time.Second, RateLookupMaxRetries: 1}
	container := services.NewServiceContainer(cfg, registry, memory.NewStore().Repositories())
	s.router = newRouter(s.T(), registry, container)

	w := do(s.router, http.MethodPost, "/api/v1/companies", gin.H{"name": "Dakar Trading", "countryCode": "SN"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &s.company))
	s.base = "/api/v1/companies/" + s.company.CompanyID

	for _, acc := range []gin.H{
		{"accountNumber": "4111000000", "name": "Clients", "accountType": "ASSET"},
		{"accountNumber": "7011000000", "name": "Ventes de marchandises", "accountType": "REVENUE"},
	} {
		w = do(s.router, http.MethodPost, s.base+"/accounts", acc)
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	w = do(s.router, http.MethodPost, s.base+"/periods", gin.H{
		"name": "FY2024", "startDate": "2024-01-01T00:00:00Z", "endDate": "2024-12-31T00:00:00Z",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *LedgerAPITestSuite) entry(day string) dto.EntryResponse {
	w := do(s.router, http.MethodPost, s.base+"/entries", gin.H{
		"entryDate":   day + "T00:00:00Z",
		"description": "Sale",
		"lines": []gin.H{
			{"accountNumber": "4111000000", "debit": "100000", "credit": "0"},
			{"accountNumber": "7011000000", "debit": "0", "credit": "100000"},
		},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var e dto.EntryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func (s *LedgerAPITestSuite) action(e dto.EntryResponse, verb string) *httptest.ResponseRecorder {
	return do(s.router, http.MethodPost, fmt.Sprintf("%s/entries/%s/%s", s.base, e.EntryID, verb), nil)
}

func (s *LedgerAPITestSuite) TestCompanyDefaults() {
	s.Equal(standards.SYSCOHADA, s.company.AccountingStandard)
	s.Equal("XOF", s.company.BaseCurrency)
	s.Equal(actor, s.company.CreatedBy)

	w := do(s.router, http.MethodGet, s.base+"/profile", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var profile dto.ProfileResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &profile))
	s.Equal(10, profile.AccountNumberLength)

	w = do(s.router, http.MethodGet, "/api/v1/standards", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), standards.PCG)
}

func (s *LedgerAPITestSuite) TestPostAndReport() {
	e := s.entry("2024-03-15")
	s.Equal(domain.StatusDraft, e.Status)
	s.Equal("JE-20240315-0001", e.EntryNumber)
	s.Len(e.Lines, 2)

	w := s.action(e, "validate")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	w = s.action(e, "post")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var posted dto.EntryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &posted))
	s.Equal(domain.StatusPosted, posted.Status)
	s.True(posted.TotalDebit.Equal(decimal.NewFromInt(100000)))

	w = s.action(e, "post")
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("ALREADY_POSTED", errorCode(s.T(), w))

	w = do(s.router, http.MethodGet, s.base+"/accounts/4111000000/balance?asOf=2024-12-31", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var balance domain.AccountBalance
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &balance))
	s.True(balance.Balance.Equal(decimal.NewFromInt(100000)))
	s.Equal(domain.SignDebit, balance.BalanceSign)

	w = do(s.router, http.MethodGet, s.base+"/trial-balance?from=2024-01-01&to=2024-12-31", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var tb domain.TrialBalance
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tb))
	s.Len(tb.Rows, 2)
	s.True(tb.Totals.ClosingDebit.Equal(tb.Totals.ClosingCredit))

	w = do(s.router, http.MethodGet, s.base+"/entries?status=POSTED", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list dto.ListEntriesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Len(list.Entries, 1)
}

func (s *LedgerAPITestSuite) TestClosedPeriodRejectsPost() {
	e := s.entry("2024-06-01")
	s.Require().Equal(http.StatusOK, s.action(e, "validate").Code)

	w := do(s.router, http.MethodPost, fmt.Sprintf("%s/periods/%s/close", s.base, e.PeriodID), nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.action(e, "post")
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("PERIOD_CLOSED", errorCode(s.T(), w))

	w = do(s.router, http.MethodPost, fmt.Sprintf("%s/periods/%s/reopen", s.base, e.PeriodID), nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(http.StatusOK, s.action(e, "post").Code)
}

func (s *LedgerAPITestSuite) TestDraftEditing() {
	e := s.entry("2024-04-02")

	w := do(s.router, http.MethodDelete, fmt.Sprintf("%s/entries/%s/lines/%s", s.base, e.EntryID, e.Lines[1].LineID), nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.action(e, "validate")
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("IMBALANCED_ENTRY", errorCode(s.T(), w))

	w = do(s.router, http.MethodPost, fmt.Sprintf("%s/entries/%s/lines", s.base, e.EntryID), gin.H{
		"accountNumber": "7011000000", "credit": "100000",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal(http.StatusOK, s.action(e, "validate").Code)

	w = do(s.router, http.MethodDelete, fmt.Sprintf("%s/entries/%s", s.base, e.EntryID), nil)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("ENTRY_NOT_EDITABLE", errorCode(s.T(), w))
}

func (s *LedgerAPITestSuite) TestRequestErrors() {
	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"malformed account number", http.MethodPost, s.base + "/accounts",
			gin.H{"accountNumber": "41A", "name": "Bad", "accountType": "ASSET"}, http.StatusBadRequest, "BAD_REQUEST"},
		{"number outside standard", http.MethodPost, s.base + "/accounts",
			gin.H{"accountNumber": "12345", "name": "Short", "accountType": "ASSET"}, http.StatusUnprocessableEntity, "INVALID_ACCOUNT_NUMBER"},
		{"duplicate account", http.MethodPost, s.base + "/accounts",
			gin.H{"accountNumber": "4111000000", "name": "Again", "accountType": "ASSET"}, http.StatusConflict, "DUPLICATE_ACCOUNT"},
		{"inverted trial balance range", http.MethodGet, s.base + "/trial-balance?from=2024-02-01&to=2024-01-01",
			nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown company", http.MethodGet, "/api/v1/companies/missing", nil, http.StatusNotFound, "NOT_FOUND"},
		{"unknown country", http.MethodPost, "/api/v1/companies",
			gin.H{"name": "Nowhere", "countryCode": "ZZ"}, http.StatusBadRequest, "UNKNOWN_STANDARD"},
		{"overlapping period", http.MethodPost, s.base + "/periods",
			gin.H{"name": "Overlap", "startDate": "2024-12-01T00:00:00Z", "endDate": "2025-03-31T00:00:00Z"}, http.StatusUnprocessableEntity, "PERIOD_OVERLAP"},
		{"missing lock reason", http.MethodPost, s.base + "/periods/x/lock", gin.H{}, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing prefix", http.MethodGet, s.base + "/account-numbers/next", nil, http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			w := do(s.router, tc.method, tc.path, tc.body)
			s.Equal(tc.status, w.Code, w.Body.String())
			s.Equal(tc.code, errorCode(s.T(), w))
		})
	}
}

func (s *LedgerAPITestSuite) TestNextAccountNumber() {
	w := do(s.router, http.MethodGet, s.base+"/account-numbers/next?prefix=4111*", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var next dto.NextAccountNumberResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &next))
	s.Equal("4111000001", next.AccountNumber)
}

// --- Mock BalanceSvc ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) ComputeAccountBalance(ctx context.Context, companyID, accountNumber string, asOf time.Time, opening *domain.AccountBalance) (*domain.AccountBalance, error) {
	args := m.Called(ctx, companyID, accountNumber, asOf, opening)
	var b *domain.AccountBalance
	if args.Get(0) != nil {
		b = args.Get(0).(*domain.AccountBalance)
	}
	return b, args.Error(1)
}

func (m *MockBalanceService) BuildTrialBalance(ctx context.Context, companyID string, start, end time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, companyID, start, end)
	var tb *domain.TrialBalance
	if args.Get(0) != nil {
		tb = args.Get(0).(*domain.TrialBalance)
	}
	return tb, args.Error(1)
}

// --- Mock ExchangeRateSvcFacade ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, to, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	var rate *domain.ExchangeRate
	if args.Get(0) != nil {
		rate = args.Get(0).(*domain.ExchangeRate)
	}
	return rate, args.Error(1)
}

func TestTrialBalance_IntegrityFailureIsInternal(t *testing.T) {
	balances := new(MockBalanceService)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	balances.On("BuildTrialBalance", mock.Anything, "c1", from, to).
		Return(nil, fmt.Errorf("%w: debit 100, credit 90", apperrors.ErrUnbalancedTrialBalance))

	r := newRouter(t, standards.DefaultRegistry(), &portssvc.ServiceContainer{Balance: balances})
	w := do(r, http.MethodGet, "/api/v1/companies/c1/trial-balance?from=2024-01-01&to=2024-01-31", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "UNBALANCED_TRIAL_BALANCE", errorCode(t, w))
	assert.NotContains(t, w.Body.String(), "debit 100")
	balances.AssertExpectations(t)
}

func TestConvert_RateUnavailable(t *testing.T) {
	rates := new(MockExchangeRateService)
	rates.On("Convert", mock.Anything, mock.Anything, "EUR", "XOF", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)).
		Return(decimal.Zero, fmt.Errorf("%w: EUR->XOF", apperrors.ErrRateUnavailable))

	r := newRouter(t, standards.DefaultRegistry(), &portssvc.ServiceContainer{ExchangeRate: rates})
	w := do(r, http.MethodGet, "/api/v1/exchange-rates/convert?amount=10.5&from=EUR&to=XOF&date=2024-01-15", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "RATE_UNAVAILABLE", errorCode(t, w))
}

func TestConvert_Success(t *testing.T) {
	rates := new(MockExchangeRateService)
	rates.On("Convert", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("10.5")) }),
		"EUR", "XOF", mock.Anything).Return(decimal.NewFromInt(6888), nil)

	r := newRouter(t, standards.DefaultRegistry(), &portssvc.ServiceContainer{ExchangeRate: rates})
	w := do(r, http.MethodGet, "/api/v1/exchange-rates/convert?amount=10.5&from=EUR&to=XOF", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.ConvertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Converted.Equal(decimal.NewFromInt(6888)))
	rates.AssertExpectations(t)
}
