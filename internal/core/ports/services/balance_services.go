package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// BalanceSvc derives balances from POSTED lines only.
type BalanceSvc interface {
	// ComputeAccountBalance sums POSTED lines of one account dated on or before asOf.
	// When opening is given, only lines after opening.AsOfDate are summed and
	// opening's closing sides become the opening sides of the result.
	ComputeAccountBalance(ctx context.Context, companyID, accountNumber string, asOf time.Time, opening *domain.AccountBalance) (*domain.AccountBalance, error)

	// BuildTrialBalance lists every account with POSTED activity through end and
	// checks that the ledger balances.
	BuildTrialBalance(ctx context.Context, companyID string, start, end time.Time) (*domain.TrialBalance, error)
}
