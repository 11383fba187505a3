package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates where a journal entry is in its lifecycle.
type EntryStatus string

const (
	StatusDraft     EntryStatus = "DRAFT"
	StatusValidated EntryStatus = "VALIDATED"
	StatusPosted    EntryStatus = "POSTED"
	StatusCancelled EntryStatus = "CANCELLED"
)

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
//
//	DRAFT -> VALIDATED -> POSTED
//	DRAFT -> CANCELLED
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusValidated || next == StatusCancelled
	case StatusValidated:
		return next == StatusPosted
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s EntryStatus) IsTerminal() bool {
	return s == StatusPosted || s == StatusCancelled
}

// EntryType classifies the business nature of an entry.
type EntryType string

const (
	EntryStandard   EntryType = "STANDARD"
	EntryOpening    EntryType = "OPENING"
	EntryClosing    EntryType = "CLOSING"
	EntryAdjustment EntryType = "ADJUSTMENT"
	EntryReversal   EntryType = "REVERSAL"
)

// EntrySource records where an entry came from.
type EntrySource string

const (
	SourceManual   EntrySource = "MANUAL"
	SourceImported EntrySource = "IMPORTED"
	SourceSystem   EntrySource = "SYSTEM"
)

// JournalEntry is the header of a double-entry record. Lines are owned by the
// entry and listed in Position order.
type JournalEntry struct {
	EntryID           string          `json:"entryID"`
	CompanyID         string          `json:"companyID"`
	PeriodID          string          `json:"periodID"`
	EntryNumber       string          `json:"entryNumber"`           // JE-YYYYMMDD-NNNN, unique per company
	PieceNumber       string          `json:"pieceNumber,omitempty"` // Source document number
	EntryDate         time.Time       `json:"entryDate"`
	EntryType         EntryType       `json:"entryType"`
	Source            EntrySource     `json:"source"`
	Status            EntryStatus     `json:"status"`
	CurrencyCode      string          `json:"currencyCode"`
	JournalCode       string          `json:"journalCode,omitempty"` // e.g. VT, AC, BQ
	Description       string          `json:"description"`
	Reference         string          `json:"reference,omitempty"`
	TotalDebit        decimal.Decimal `json:"totalDebit"`
	TotalCredit       decimal.Decimal `json:"totalCredit"`
	IsReconciled      bool            `json:"isReconciled"`
	ReversalOfEntryID *string         `json:"reversalOfEntryID,omitempty"`
	Version           int64           `json:"version"` // Bumped on every mutation, used for optimistic locking
	ValidatedAt       *time.Time      `json:"validatedAt,omitempty"`
	ValidatedBy       *string         `json:"validatedBy,omitempty"`
	PostedAt          *time.Time      `json:"postedAt,omitempty"`
	PostedBy          *string         `json:"postedBy,omitempty"`
	Lines             []LedgerLine    `json:"lines,omitempty"`
	AuditFields
}

// IsEditable reports whether lines and header fields may still change.
func (e *JournalEntry) IsEditable() bool {
	return e.Status == StatusDraft
}

// SumLines recomputes debit and credit totals from the given lines.
func SumLines(lines []LedgerLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// EntryTransition describes a guarded status change of one entry.
// The store applies it only if the entry is still at ExpectedVersion and From.
type EntryTransition struct {
	EntryID         string
	CompanyID       string
	ExpectedVersion int64
	From            EntryStatus
	To              EntryStatus
	TotalDebit      decimal.Decimal
	TotalCredit     decimal.Decimal
	At              time.Time
	By              string
}

// EntryFilter narrows entry listings.
type EntryFilter struct {
	Status            *EntryStatus
	FromDate          *time.Time
	ToDate            *time.Time
	// ReversalOfEntryID keeps only reversals of the given entry.
	ReversalOfEntryID *string
	Limit             int
	Offset            int
}
