package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// balanceService derives balances from POSTED lines. It keeps no state between
// calls, so the same ledger always yields the same result.
type balanceService struct {
	BaseService
	movements   portsrepo.MovementReader
	accountRepo portsrepo.AccountReader
}

// NewBalanceService creates a new balance computation service.
func NewBalanceService(movements portsrepo.MovementReader, accountRepo portsrepo.AccountReader) portssvc.BalanceSvc {
	return &balanceService{
		movements:   movements,
		accountRepo: accountRepo,
	}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

func (s *balanceService) ComputeAccountBalance(ctx context.Context, companyID, accountNumber string, asOf time.Time, opening *domain.AccountBalance) (*domain.AccountBalance, error) {
	asOf = domain.DateOnly(asOf)

	if _, err := s.accountRepo.FindAccountByNumber(ctx, companyID, accountNumber); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for balance", slog.String("account_number", accountNumber))
		}
		return nil, fmt.Errorf("failed to compute balance of %s: %w", accountNumber, err)
	}

	q := domain.MovementQuery{
		CompanyID:     companyID,
		AccountNumber: &accountNumber,
		Through:       asOf,
	}
	openingDebit, openingCredit := decimal.Zero, decimal.Zero
	if opening != nil {
		if opening.AccountNumber != accountNumber || opening.CompanyID != companyID {
			return nil, fmt.Errorf("%w: opening snapshot belongs to %s/%s", apperrors.ErrValidation, opening.CompanyID, opening.AccountNumber)
		}
		after := domain.DateOnly(opening.AsOfDate)
		if after.After(asOf) {
			return nil, fmt.Errorf("%w: opening snapshot %s is after %s", apperrors.ErrValidation, after.Format(time.DateOnly), asOf.Format(time.DateOnly))
		}
		q.After = &after
		openingDebit, openingCredit = opening.ClosingDebit, opening.ClosingCredit
	}

	movs, err := s.movements.SumPostedMovements(ctx, q)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum posted movements", slog.String("account_number", accountNumber))
		return nil, fmt.Errorf("failed to compute balance of %s: %w", accountNumber, err)
	}

	var movement domain.AccountMovement
	for _, m := range movs {
		if m.AccountNumber == accountNumber {
			movement = m
		}
	}

	balance := newAccountBalance(companyID, accountNumber, asOf, openingDebit, openingCredit, movement)
	if opening != nil && balance.LastMovementDate == nil {
		balance.LastMovementDate = opening.LastMovementDate
	}
	return &balance, nil
}

// BuildTrialBalance computes every account with POSTED activity on or before
// end. Lines before start form the opening columns, lines in [start, end] the
// movement columns.
func (s *balanceService) BuildTrialBalance(ctx context.Context, companyID string, start, end time.Time) (*domain.TrialBalance, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: trial balance ends %s before it starts %s", apperrors.ErrValidation, end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	dayBefore := start.AddDate(0, 0, -1)

	openings, err := s.movements.SumPostedMovements(ctx, domain.MovementQuery{CompanyID: companyID, Through: dayBefore})
	if err != nil {
		s.LogError(ctx, err, "Failed to sum opening movements", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}
	movements, err := s.movements.SumPostedMovements(ctx, domain.MovementQuery{CompanyID: companyID, After: &dayBefore, Through: end})
	if err != nil {
		s.LogError(ctx, err, "Failed to sum period movements", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}

	openingBy := make(map[string]domain.AccountMovement, len(openings))
	numbers := make([]string, 0, len(openings)+len(movements))
	for _, m := range openings {
		openingBy[m.AccountNumber] = m
		numbers = append(numbers, m.AccountNumber)
	}
	movementBy := make(map[string]domain.AccountMovement, len(movements))
	for _, m := range movements {
		movementBy[m.AccountNumber] = m
		if _, seen := openingBy[m.AccountNumber]; !seen {
			numbers = append(numbers, m.AccountNumber)
		}
	}
	sort.Strings(numbers)

	accounts, err := s.accountRepo.FindAccountsByNumbers(ctx, companyID, numbers)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for trial balance", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}

	tb := &domain.TrialBalance{
		CompanyID:   companyID,
		PeriodStart: start,
		PeriodEnd:   end,
		Rows:        make([]domain.TrialBalanceRow, 0, len(numbers)),
	}
	byClass := make(map[int]*domain.ClassTotals)

	for _, number := range numbers {
		o := openingBy[number]
		balance := newAccountBalance(companyID, number, end, o.Debit, o.Credit, movementBy[number])
		if balance.LastMovementDate == nil {
			balance.LastMovementDate = o.LastMovementDate
		}

		row := domain.TrialBalanceRow{AccountBalance: balance}
		if acc, ok := accounts[number]; ok {
			row.AccountName = acc.Name
			row.AccountType = acc.AccountType
			row.AccountClass = acc.AccountClass
		}
		tb.Rows = append(tb.Rows, row)
		tb.Totals.Add(balance)

		ct, ok := byClass[row.AccountClass]
		if !ok {
			ct = &domain.ClassTotals{AccountClass: row.AccountClass}
			byClass[row.AccountClass] = ct
		}
		ct.AccountCount++
		ct.Totals.Add(balance)
	}

	tb.ByClass = make([]domain.ClassTotals, 0, len(byClass))
	for _, ct := range byClass {
		tb.ByClass = append(tb.ByClass, *ct)
	}
	sort.Slice(tb.ByClass, func(i, j int) bool { return tb.ByClass[i].AccountClass < tb.ByClass[j].AccountClass })

	if !tb.Totals.ClosingDebit.Equal(tb.Totals.ClosingCredit) || !tb.Totals.DebitBalances.Equal(tb.Totals.CreditBalances) {
		err := fmt.Errorf("%w: company %s through %s: closing debit %s, closing credit %s",
			apperrors.ErrUnbalancedTrialBalance, companyID, end.Format(time.DateOnly), tb.Totals.ClosingDebit, tb.Totals.ClosingCredit)
		s.LogError(ctx, err, "Ledger integrity violation",
			slog.String("company_id", companyID),
			slog.String("period_start", start.Format(time.DateOnly)),
			slog.String("period_end", end.Format(time.DateOnly)),
			slog.String("closing_debit", tb.Totals.ClosingDebit.String()),
			slog.String("closing_credit", tb.Totals.ClosingCredit.String()),
			slog.String("debit_balances", tb.Totals.DebitBalances.String()),
			slog.String("credit_balances", tb.Totals.CreditBalances.String()))
		return nil, err
	}

	s.LogDebug(ctx, "Trial balance built",
		slog.String("company_id", companyID),
		slog.Int("account_count", len(tb.Rows)),
		slog.Int("movement_count", tb.Totals.MovementCount))
	return tb, nil
}

// newAccountBalance adds movement to the opening sides and derives the sign.
func newAccountBalance(companyID, accountNumber string, asOf time.Time, openingDebit, openingCredit decimal.Decimal, movement domain.AccountMovement) domain.AccountBalance {
	b := domain.AccountBalance{
		CompanyID:        companyID,
		AccountNumber:    accountNumber,
		AsOfDate:         asOf,
		OpeningDebit:     openingDebit,
		OpeningCredit:    openingCredit,
		MovementDebit:    movement.Debit,
		MovementCredit:   movement.Credit,
		MovementCount:    movement.Count,
		LastMovementDate: movement.LastMovementDate,
	}
	b.ClosingDebit = b.OpeningDebit.Add(b.MovementDebit)
	b.ClosingCredit = b.OpeningCredit.Add(b.MovementCredit)
	b.BalanceSign, b.Balance = BalanceSignOf(b.ClosingDebit, b.ClosingCredit)
	return b
}

// BalanceSignOf nets debit against credit: DEBIT when debit exceeds credit,
// CREDIT when credit exceeds debit, NULL when they are equal.
func BalanceSignOf(debit, credit decimal.Decimal) (domain.BalanceSign, decimal.Decimal) {
	net := debit.Sub(credit)
	switch net.Sign() {
	case 1:
		return domain.SignDebit, net
	case -1:
		return domain.SignCredit, net.Neg()
	}
	return domain.SignNull, decimal.Zero
}
