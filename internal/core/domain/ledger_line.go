package domain

import (
	"fmt"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/shopspring/decimal"
)

// LedgerLine is a single debit or credit posting inside a journal entry.
// AccountNumber is a snapshot taken when the line was added.
type LedgerLine struct {
	LineID           string           `json:"lineID"`
	EntryID          string           `json:"entryID"`
	Position         int              `json:"position"` // 1-based ordinal within the entry
	AccountNumber    string           `json:"accountNumber"`
	Debit            decimal.Decimal  `json:"debit"`
	Credit           decimal.Decimal  `json:"credit"`
	Label            string           `json:"label,omitempty"`
	ThirdPartyRef    *string          `json:"thirdPartyRef,omitempty"`
	CostCenter       *string          `json:"costCenter,omitempty"`
	ProjectRef       *string          `json:"projectRef,omitempty"`
	AnalyticTag      *string          `json:"analyticTag,omitempty"`
	OriginalAmount   *decimal.Decimal `json:"originalAmount,omitempty"`
	OriginalCurrency *string          `json:"originalCurrency,omitempty"`
	ExchangeRate     *decimal.Decimal `json:"exchangeRate,omitempty"`
}

// IsDebit reports whether the line carries its amount on the debit side.
func (l LedgerLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the non-zero side of the line.
func (l LedgerLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}

// IsMultiCurrency reports whether the line was converted from another currency.
func (l LedgerLine) IsMultiCurrency() bool {
	return l.OriginalAmount != nil && l.OriginalCurrency != nil
}

// Validate checks the line invariants: both sides non-negative, exactly one
// side non-zero, and no more fractional digits than decimalPlaces allows.
func (l LedgerLine) Validate(decimalPlaces int32) error {
	if l.AccountNumber == "" {
		return fmt.Errorf("%w: account number is required", apperrors.ErrInvalidLine)
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("%w: amounts must not be negative (debit %s, credit %s)", apperrors.ErrInvalidLine, l.Debit, l.Credit)
	}
	if l.Debit.IsZero() && l.Credit.IsZero() {
		return fmt.Errorf("%w: line on account %s has neither debit nor credit", apperrors.ErrInvalidLine, l.AccountNumber)
	}
	if !l.Debit.IsZero() && !l.Credit.IsZero() {
		return fmt.Errorf("%w: line on account %s has both debit and credit", apperrors.ErrInvalidLine, l.AccountNumber)
	}
	amount := l.Amount()
	if !amount.Equal(amount.Truncate(decimalPlaces)) {
		return fmt.Errorf("%w: amount %s exceeds %d decimal places", apperrors.ErrInvalidLine, amount, decimalPlaces)
	}
	if l.OriginalAmount != nil && !l.OriginalAmount.IsPositive() {
		return fmt.Errorf("%w: original amount must be positive", apperrors.ErrInvalidLine)
	}
	return nil
}
