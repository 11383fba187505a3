package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft     JournalStatus = "DRAFT"
	Validated JournalStatus = "VALIDATED"
	Posted    JournalStatus = "POSTED"
	Cancelled JournalStatus = "CANCELLED"
)

// JournalEntry is the journal_entries header row. Lines live in ledger_lines.
type JournalEntry struct {
	EntryID           string          `db:"entry_id"`
	CompanyID         string          `db:"company_id"`
	PeriodID          string          `db:"period_id"`
	EntryNumber       string          `db:"entry_number"`
	PieceNumber       string          `db:"piece_number"`
	EntryDate         time.Time       `db:"entry_date"`
	EntryType         string          `db:"entry_type"`
	Source            string          `db:"source"`
	Status            JournalStatus   `db:"status"`
	CurrencyCode      string          `db:"currency_code"`
	JournalCode       string          `db:"journal_code"`
	Description       string          `db:"description"`
	Reference         string          `db:"reference"`
	TotalDebit        decimal.Decimal `db:"total_debit"`
	TotalCredit       decimal.Decimal `db:"total_credit"`
	IsReconciled      bool            `db:"is_reconciled"`
	ReversalOfEntryID *string         `db:"reversal_of_entry_id"` // Nullable
	Version           int64           `db:"version"`
	ValidatedAt       *time.Time      `db:"validated_at"`
	ValidatedBy       *string         `db:"validated_by"`
	PostedAt          *time.Time      `db:"posted_at"`
	PostedBy          *string         `db:"posted_by"`
	AuditFields
}
