package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry.
// Lines are mapped separately with ToModelLedgerLine.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		CompanyID:         d.CompanyID,
		PeriodID:          d.PeriodID,
		EntryNumber:       d.EntryNumber,
		PieceNumber:       d.PieceNumber,
		EntryDate:         domain.DateOnly(d.EntryDate),
		EntryType:         string(d.EntryType),
		Source:            string(d.Source),
		Status:            models.JournalStatus(d.Status),
		CurrencyCode:      d.CurrencyCode,
		JournalCode:       d.JournalCode,
		Description:       d.Description,
		Reference:         d.Reference,
		TotalDebit:        d.TotalDebit,
		TotalCredit:       d.TotalCredit,
		IsReconciled:      d.IsReconciled,
		ReversalOfEntryID: d.ReversalOfEntryID,
		Version:           d.Version,
		ValidatedAt:       d.ValidatedAt,
		ValidatedBy:       d.ValidatedBy,
		PostedAt:          d.PostedAt,
		PostedBy:          d.PostedBy,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without lines.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		CompanyID:         m.CompanyID,
		PeriodID:          m.PeriodID,
		EntryNumber:       m.EntryNumber,
		PieceNumber:       m.PieceNumber,
		EntryDate:         domain.DateOnly(m.EntryDate),
		EntryType:         domain.EntryType(m.EntryType),
		Source:            domain.EntrySource(m.Source),
		Status:            domain.EntryStatus(m.Status),
		CurrencyCode:      m.CurrencyCode,
		JournalCode:       m.JournalCode,
		Description:       m.Description,
		Reference:         m.Reference,
		TotalDebit:        m.TotalDebit,
		TotalCredit:       m.TotalCredit,
		IsReconciled:      m.IsReconciled,
		ReversalOfEntryID: m.ReversalOfEntryID,
		Version:           m.Version,
		ValidatedAt:       m.ValidatedAt,
		ValidatedBy:       m.ValidatedBy,
		PostedAt:          m.PostedAt,
		PostedBy:          m.PostedBy,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerLine converts a domain LedgerLine to a model LedgerLine
func ToModelLedgerLine(d domain.LedgerLine) models.LedgerLine {
	return models.LedgerLine{
		LineID:           d.LineID,
		EntryID:          d.EntryID,
		Position:         d.Position,
		AccountNumber:    d.AccountNumber,
		Debit:            d.Debit,
		Credit:           d.Credit,
		Label:            d.Label,
		ThirdPartyRef:    d.ThirdPartyRef,
		CostCenter:       d.CostCenter,
		ProjectRef:       d.ProjectRef,
		AnalyticTag:      d.AnalyticTag,
		OriginalAmount:   toNullDecimal(d.OriginalAmount),
		OriginalCurrency: d.OriginalCurrency,
		ExchangeRate:     toNullDecimal(d.ExchangeRate),
	}
}

// ToDomainLedgerLine converts a model LedgerLine to a domain LedgerLine
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:           m.LineID,
		EntryID:          m.EntryID,
		Position:         m.Position,
		AccountNumber:    m.AccountNumber,
		Debit:            m.Debit,
		Credit:           m.Credit,
		Label:            m.Label,
		ThirdPartyRef:    m.ThirdPartyRef,
		CostCenter:       m.CostCenter,
		ProjectRef:       m.ProjectRef,
		AnalyticTag:      m.AnalyticTag,
		OriginalAmount:   fromNullDecimal(m.OriginalAmount),
		OriginalCurrency: m.OriginalCurrency,
		ExchangeRate:     fromNullDecimal(m.ExchangeRate),
	}
}

// ToDomainLedgerLineSlice converts a slice of model LedgerLines to a slice of domain LedgerLines
func ToDomainLedgerLineSlice(ms []models.LedgerLine) []domain.LedgerLine {
	ds := make([]domain.LedgerLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerLine(m)
	}
	return ds
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
