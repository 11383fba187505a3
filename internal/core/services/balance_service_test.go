package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/repositories/database/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock MovementReader ---
type MockMovementReader struct {
	mock.Mock
}

func (m *MockMovementReader) SumPostedMovements(ctx context.Context, q domain.MovementQuery) ([]domain.AccountMovement, error) {
	args := m.Called(ctx, q)
	var movements []domain.AccountMovement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.AccountMovement)
	}
	return movements, args.Error(1)
}

type BalanceServiceTestSuite struct {
	LedgerSuite
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}

func (s *BalanceServiceTestSuite) seedLedger() {
	s.posted("2024-01-15", sale()...)
	s.posted("2024-02-10", line("601000", "30000", "0"), line("571000", "0", "30000"))
	// Never posted: must not show up anywhere.
	s.draft("2024-02-12", line("601000", "999", "0"), line("571000", "0", "999"))
	validated := s.draft("2024-02-13", line("601000", "777", "0"), line("571000", "0", "777"))
	_, err := s.svc.Journal.Validate(s.ctx, s.company.CompanyID, validated.EntryID, testUser)
	s.Require().NoError(err)
}

func (s *BalanceServiceTestSuite) TestTrialBalanceBalances() {
	s.seedLedger()

	tb, err := s.svc.Balance.BuildTrialBalance(s.ctx, s.company.CompanyID, date("2024-02-01"), date("2024-02-29"))
	s.Require().NoError(err)

	s.Require().Len(tb.Rows, 4)
	numbers := []string{tb.Rows[0].AccountNumber, tb.Rows[1].AccountNumber, tb.Rows[2].AccountNumber, tb.Rows[3].AccountNumber}
	s.Equal([]string{"411100", "571000", "601000", "701100"}, numbers)

	clients := tb.Rows[0]
	s.Equal("Clients", clients.AccountName)
	s.Equal(4, clients.AccountClass)
	s.True(clients.OpeningDebit.Equal(amount("100000")))
	s.True(clients.MovementDebit.IsZero())
	s.Equal(domain.SignDebit, clients.BalanceSign)

	purchases := tb.Rows[2]
	s.True(purchases.OpeningDebit.IsZero())
	s.True(purchases.MovementDebit.Equal(amount("30000")))
	s.Equal(1, purchases.MovementCount)

	s.True(tb.Totals.ClosingDebit.Equal(amount("130000")))
	s.True(tb.Totals.ClosingCredit.Equal(amount("130000")))
	s.True(tb.Totals.DebitBalances.Equal(tb.Totals.CreditBalances))
	s.True(tb.Totals.MovementDebit.Equal(amount("30000")))

	s.Require().Len(tb.ByClass, 4)
	s.Equal(4, tb.ByClass[0].AccountClass)
	s.Equal(7, tb.ByClass[3].AccountClass)
}

func (s *BalanceServiceTestSuite) TestTrialBalanceIsRepeatable() {
	s.seedLedger()

	first, err := s.svc.Balance.BuildTrialBalance(s.ctx, s.company.CompanyID, date("2024-01-01"), date("2024-12-31"))
	s.Require().NoError(err)
	second, err := s.svc.Balance.BuildTrialBalance(s.ctx, s.company.CompanyID, date("2024-01-01"), date("2024-12-31"))
	s.Require().NoError(err)
	s.Require().Len(second.Rows, len(first.Rows))
	for i := range first.Rows {
		s.Equal(first.Rows[i].AccountNumber, second.Rows[i].AccountNumber)
		s.True(first.Rows[i].Balance.Equal(second.Rows[i].Balance))
		s.Equal(first.Rows[i].BalanceSign, second.Rows[i].BalanceSign)
	}
	s.True(first.Totals.ClosingDebit.Equal(second.Totals.ClosingDebit))
	s.True(first.Totals.ClosingCredit.Equal(second.Totals.ClosingCredit))
}

func (s *BalanceServiceTestSuite) TestTrialBalanceRejectsInvertedRange() {
	_, err := s.svc.Balance.BuildTrialBalance(s.ctx, s.company.CompanyID, date("2024-02-01"), date("2024-01-01"))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *BalanceServiceTestSuite) TestAccountBalanceExcludesUnpostedEntries() {
	s.seedLedger()

	balance, err := s.svc.Balance.ComputeAccountBalance(s.ctx, s.company.CompanyID, "601000", date("2024-12-31"), nil)
	s.Require().NoError(err)
	s.True(balance.ClosingDebit.Equal(amount("30000")))
	s.Equal(1, balance.MovementCount)
	s.Require().NotNil(balance.LastMovementDate)
	s.Equal(date("2024-02-10"), *balance.LastMovementDate)
}

func (s *BalanceServiceTestSuite) TestAccountBalanceFromOpeningSnapshot() {
	s.posted("2024-01-15", sale()...)
	january, err := s.svc.Balance.ComputeAccountBalance(s.ctx, s.company.CompanyID, "411100", date("2024-01-31"), nil)
	s.Require().NoError(err)

	s.posted("2024-02-05", sale()...)
	february, err := s.svc.Balance.ComputeAccountBalance(s.ctx, s.company.CompanyID, "411100", date("2024-02-29"), january)
	s.Require().NoError(err)
	s.True(february.OpeningDebit.Equal(amount("100000")))
	s.True(february.MovementDebit.Equal(amount("100000")))
	s.True(february.ClosingDebit.Equal(amount("200000")))
	s.Equal(1, february.MovementCount)

	full, err := s.svc.Balance.ComputeAccountBalance(s.ctx, s.company.CompanyID, "411100", date("2024-02-29"), nil)
	s.Require().NoError(err)
	s.True(full.ClosingDebit.Equal(february.ClosingDebit))
	s.True(full.Balance.Equal(february.Balance))
}

func (s *BalanceServiceTestSuite) TestAccountBalanceRejectsForeignSnapshot() {
	opening, err := s.svc.Balance.ComputeAccountBalance(s.ctx, s.company.CompanyID, "701100", date("2024-01-31"), nil)
	s.Require().NoError(err)
	_, err = s.svc.Balance.ComputeAccountBalance(s.ctx, s.company.CompanyID, "411100", date("2024-02-29"), opening)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *BalanceServiceTestSuite) TestAccountBalanceUnknownAccount() {
	_, err := s.svc.Balance.ComputeAccountBalance(s.ctx, s.company.CompanyID, "000000", date("2024-01-31"), nil)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBuildTrialBalance_DetectsUnbalancedLedger(t *testing.T) {
	movements := new(MockMovementReader)
	movements.On("SumPostedMovements", mock.Anything, mock.MatchedBy(func(q domain.MovementQuery) bool { return q.After == nil })).
		Return([]domain.AccountMovement{}, nil)
	movements.On("SumPostedMovements", mock.Anything, mock.MatchedBy(func(q domain.MovementQuery) bool { return q.After != nil })).
		Return([]domain.AccountMovement{
			{AccountNumber: "411100", Debit: amount("100"), Credit: amount("0"), Count: 1},
			{AccountNumber: "701100", Debit: amount("0"), Credit: amount("90"), Count: 1},
		}, nil)

	svc := services.NewBalanceService(movements, memory.NewStore())
	_, err := svc.BuildTrialBalance(context.Background(), "c1", date("2024-01-01"), date("2024-01-31"))

	assert.ErrorIs(t, err, apperrors.ErrUnbalancedTrialBalance)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	movements.AssertExpectations(t)
}

func TestBuildTrialBalance_PropagatesStoreFailure(t *testing.T) {
	boom := errors.New("connection reset")
	movements := new(MockMovementReader)
	movements.On("SumPostedMovements", mock.Anything, mock.Anything).Return(nil, boom)

	svc := services.NewBalanceService(movements, memory.NewStore())
	_, err := svc.BuildTrialBalance(context.Background(), "c1", date("2024-01-01"), date("2024-01-31"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestBalanceSignOf(t *testing.T) {
	sign, net := services.BalanceSignOf(amount("150"), amount("100"))
	assert.Equal(t, domain.SignDebit, sign)
	assert.True(t, net.Equal(amount("50")))

	sign, net = services.BalanceSignOf(amount("100"), amount("150"))
	assert.Equal(t, domain.SignCredit, sign)
	assert.True(t, net.Equal(amount("50")))

	sign, net = services.BalanceSignOf(amount("100"), amount("100"))
	assert.Equal(t, domain.SignNull, sign)
	assert.True(t, net.IsZero())
}
