package models

import "github.com/shopspring/decimal"

// LedgerLine is a ledger_lines row. Exactly one of Debit and Credit is non-zero.
type LedgerLine struct {
	LineID           string              `db:"line_id"`
	EntryID          string              `db:"entry_id"`
	Position         int                 `db:"position"`
	AccountNumber    string              `db:"account_number"`
	Debit            decimal.Decimal     `db:"debit"`
	Credit           decimal.Decimal     `db:"credit"`
	Label            string              `db:"label"`
	ThirdPartyRef    *string             `db:"third_party_ref"`
	CostCenter       *string             `db:"cost_center"`
	ProjectRef       *string             `db:"project_ref"`
	AnalyticTag      *string             `db:"analytic_tag"`
	OriginalAmount   decimal.NullDecimal `db:"original_amount"`
	OriginalCurrency *string             `db:"original_currency"`
	ExchangeRate     decimal.NullDecimal `db:"exchange_rate"`
}
