package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddLineRequest defines one debit or credit line. When Currency is set and
// differs from the entry currency, the amounts are expressed in Currency and
// converted at the entry date's rate.
type AddLineRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required,accountnumber"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Label         string          `json:"label"`
	ThirdPartyRef *string         `json:"thirdPartyRef"`
	CostCenter    *string         `json:"costCenter"`
	ProjectRef    *string         `json:"projectRef"`
	AnalyticTag   *string         `json:"analyticTag"`
	Currency      *string         `json:"currency" binding:"omitempty,len=3,uppercase"`
}

// CreateEntryRequest defines the data needed to create a draft entry.
type CreateEntryRequest struct {
	EntryDate    time.Time          `json:"entryDate" binding:"required"`
	EntryType    domain.EntryType   `json:"entryType" binding:"omitempty,oneof=STANDARD OPENING CLOSING ADJUSTMENT REVERSAL"`
	Source       domain.EntrySource `json:"source" binding:"omitempty,oneof=MANUAL IMPORTED SYSTEM"`
	CurrencyCode string             `json:"currencyCode" binding:"omitempty,len=3,uppercase"` // Defaults to the company base currency
	PieceNumber  string             `json:"pieceNumber"`
	JournalCode  string             `json:"journalCode" binding:"omitempty,max=8"`
	Description  string             `json:"description" binding:"required"`
	Reference    string             `json:"reference"`
	Lines        []AddLineRequest   `json:"lines" binding:"omitempty,dive"`
}

// UpdateEntryRequest updates the header of a DRAFT entry. Version must match
// the version the caller last read.
type UpdateEntryRequest struct {
	Version     int64      `json:"version" binding:"min=1"`
	EntryDate   *time.Time `json:"entryDate"`
	PieceNumber *string    `json:"pieceNumber"`
	JournalCode *string    `json:"journalCode" binding:"omitempty,max=8"`
	Description *string    `json:"description" binding:"omitempty,min=1"`
	Reference   *string    `json:"reference"`
}

// ReverseEntryRequest defines the reversal date; the original entry date is used when empty.
type ReverseEntryRequest struct {
	EntryDate   *time.Time `json:"entryDate"`
	Description string     `json:"description"`
}

// ReconcileRequest toggles the reconciled flag of a posted entry.
type ReconcileRequest struct {
	Reconciled *bool `json:"reconciled" binding:"required"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Status   string     `form:"status" binding:"omitempty,oneof=DRAFT VALIDATED POSTED CANCELLED"`
	FromDate *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	ToDate   *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Limit    int        `form:"limit,default=50" binding:"min=0,max=500"`
	Offset   int        `form:"offset,default=0" binding:"min=0"`
}

// ToFilter converts the query parameters to a domain filter.
func (p ListEntriesParams) ToFilter() domain.EntryFilter {
	f := domain.EntryFilter{
		FromDate: p.FromDate,
		ToDate:   p.ToDate,
		Limit:    p.Limit,
		Offset:   p.Offset,
	}
	if p.Status != "" {
		s := domain.EntryStatus(p.Status)
		f.Status = &s
	}
	return f
}

// LineResponse defines the data returned for a ledger line.
type LineResponse struct {
	LineID           string           `json:"lineID"`
	Position         int              `json:"position"`
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

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID           string             `json:"entryID"`
	PeriodID          string             `json:"periodID"`
	EntryNumber       string             `json:"entryNumber"`
	PieceNumber       string             `json:"pieceNumber,omitempty"`
	EntryDate         time.Time          `json:"entryDate"`
	EntryType         domain.EntryType   `json:"entryType"`
	Source            domain.EntrySource `json:"source"`
	Status            domain.EntryStatus `json:"status"`
	CurrencyCode      string             `json:"currencyCode"`
	JournalCode       string             `json:"journalCode,omitempty"`
	Description       string             `json:"description"`
	Reference         string             `json:"reference,omitempty"`
	TotalDebit        decimal.Decimal    `json:"totalDebit"`
	TotalCredit       decimal.Decimal    `json:"totalCredit"`
	IsReconciled      bool               `json:"isReconciled"`
	ReversalOfEntryID *string            `json:"reversalOfEntryID,omitempty"`
	Version           int64              `json:"version"`
	ValidatedAt       *time.Time         `json:"validatedAt,omitempty"`
	PostedAt          *time.Time         `json:"postedAt,omitempty"`
	Lines             []LineResponse     `json:"lines,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	CreatedBy         string             `json:"createdBy"`
}

// ToLineResponse converts a domain.LedgerLine to LineResponse DTO.
func ToLineResponse(l *domain.LedgerLine) LineResponse {
	return LineResponse{
		LineID:           l.LineID,
		Position:         l.Position,
		AccountNumber:    l.AccountNumber,
		Debit:            l.Debit,
		Credit:           l.Credit,
		Label:            l.Label,
		ThirdPartyRef:    l.ThirdPartyRef,
		CostCenter:       l.CostCenter,
		ProjectRef:       l.ProjectRef,
		AnalyticTag:      l.AnalyticTag,
		OriginalAmount:   l.OriginalAmount,
		OriginalCurrency: l.OriginalCurrency,
		ExchangeRate:     l.ExchangeRate,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:           e.EntryID,
		PeriodID:          e.PeriodID,
		EntryNumber:       e.EntryNumber,
		PieceNumber:       e.PieceNumber,
		EntryDate:         e.EntryDate,
		EntryType:         e.EntryType,
		Source:            e.Source,
		Status:            e.Status,
		CurrencyCode:      e.CurrencyCode,
		JournalCode:       e.JournalCode,
		Description:       e.Description,
		Reference:         e.Reference,
		TotalDebit:        e.TotalDebit,
		TotalCredit:       e.TotalCredit,
		IsReconciled:      e.IsReconciled,
		ReversalOfEntryID: e.ReversalOfEntryID,
		Version:           e.Version,
		ValidatedAt:       e.ValidatedAt,
		PostedAt:          e.PostedAt,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToLineResponse(&e.Lines[i])
		}
	}
	return resp
}

// ToEntryResponses converts a slice of domain.JournalEntry to []EntryResponse.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
}
