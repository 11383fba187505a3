package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSign tells on which side an account's net balance sits.
type BalanceSign string

const (
	SignDebit  BalanceSign = "DEBIT"
	SignCredit BalanceSign = "CREDIT"
	SignNull   BalanceSign = "NULL"
)

// AccountMovement is the aggregate of posted lines for one account over a date window.
type AccountMovement struct {
	AccountNumber    string
	Debit            decimal.Decimal
	Credit           decimal.Decimal
	Count            int
	LastMovementDate *time.Time
}

// MovementQuery selects posted lines by company, account and entry date.
// After is exclusive, Through is inclusive.
type MovementQuery struct {
	CompanyID     string
	AccountNumber *string
	After         *time.Time
	Through       time.Time
}

// AccountBalance is a derived snapshot of one account at AsOfDate.
// Closing = Opening + Movement on each side.
type AccountBalance struct {
	CompanyID        string          `json:"companyID"`
	AccountNumber    string          `json:"accountNumber"`
	AsOfDate         time.Time       `json:"asOfDate"`
	OpeningDebit     decimal.Decimal `json:"openingDebit"`
	OpeningCredit    decimal.Decimal `json:"openingCredit"`
	MovementDebit    decimal.Decimal `json:"movementDebit"`
	MovementCredit   decimal.Decimal `json:"movementCredit"`
	ClosingDebit     decimal.Decimal `json:"closingDebit"`
	ClosingCredit    decimal.Decimal `json:"closingCredit"`
	BalanceSign      BalanceSign     `json:"balanceSign"`
	Balance          decimal.Decimal `json:"balance"`
	MovementCount    int             `json:"movementCount"`
	LastMovementDate *time.Time      `json:"lastMovementDate,omitempty"`
}

// TrialBalanceRow is one account line of a trial balance.
type TrialBalanceRow struct {
	AccountBalance
	AccountName  string      `json:"accountName"`
	AccountType  AccountType `json:"accountType"`
	AccountClass int         `json:"accountClass"`
}

// TrialBalanceTotals holds column totals of a trial balance or one class of it.
type TrialBalanceTotals struct {
	OpeningDebit   decimal.Decimal `json:"openingDebit"`
	OpeningCredit  decimal.Decimal `json:"openingCredit"`
	MovementDebit  decimal.Decimal `json:"movementDebit"`
	MovementCredit decimal.Decimal `json:"movementCredit"`
	ClosingDebit   decimal.Decimal `json:"closingDebit"`
	ClosingCredit  decimal.Decimal `json:"closingCredit"`
	DebitBalances  decimal.Decimal `json:"debitBalances"`
	CreditBalances decimal.Decimal `json:"creditBalances"`
	MovementCount  int             `json:"movementCount"`
}

// Add accumulates a row into the totals.
func (t *TrialBalanceTotals) Add(b AccountBalance) {
	t.OpeningDebit = t.OpeningDebit.Add(b.OpeningDebit)
	t.OpeningCredit = t.OpeningCredit.Add(b.OpeningCredit)
	t.MovementDebit = t.MovementDebit.Add(b.MovementDebit)
	t.MovementCredit = t.MovementCredit.Add(b.MovementCredit)
	t.ClosingDebit = t.ClosingDebit.Add(b.ClosingDebit)
	t.ClosingCredit = t.ClosingCredit.Add(b.ClosingCredit)
	switch b.BalanceSign {
	case SignDebit:
		t.DebitBalances = t.DebitBalances.Add(b.Balance)
	case SignCredit:
		t.CreditBalances = t.CreditBalances.Add(b.Balance)
	}
	t.MovementCount += b.MovementCount
}

// ClassTotals groups trial balance totals by account class.
type ClassTotals struct {
	AccountClass int                `json:"accountClass"`
	AccountCount int                `json:"accountCount"`
	Totals       TrialBalanceTotals `json:"totals"`
}

// TrialBalance lists every account with posted activity through PeriodEnd.
// Rows are ordered by account number.
type TrialBalance struct {
	CompanyID   string             `json:"companyID"`
	PeriodStart time.Time          `json:"periodStart"`
	PeriodEnd   time.Time          `json:"periodEnd"`
	Rows        []TrialBalanceRow  `json:"rows"`
	Totals      TrialBalanceTotals `json:"totals"`
	ByClass     []ClassTotals      `json:"byClass"`
}
