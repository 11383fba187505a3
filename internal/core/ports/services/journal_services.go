package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entry headers matching the filter.
	ListEntries(ctx context.Context, companyID string, filter domain.EntryFilter) ([]domain.JournalEntry, error)
}

// JournalDraftSvc defines the operations allowed while an entry is DRAFT
type JournalDraftSvc interface {
	// CreateDraftEntry creates a DRAFT entry in the period containing its date,
	// with any lines given in the request.
	CreateDraftEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)

	// AddLine appends a line to a DRAFT entry.
	AddLine(ctx context.Context, companyID, entryID string, req dto.AddLineRequest, userID string) (*domain.JournalEntry, error)

	// RemoveLine deletes a line from a DRAFT entry.
	RemoveLine(ctx context.Context, companyID, entryID, lineID, userID string) (*domain.JournalEntry, error)

	// UpdateDraft updates header fields of a DRAFT entry.
	UpdateDraft(ctx context.Context, companyID, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteDraft removes a DRAFT entry and its lines.
	DeleteDraft(ctx context.Context, companyID, entryID, userID string) error
}

// JournalLifecycleSvc defines the status transitions of an entry
type JournalLifecycleSvc interface {
	// Validate checks lines, totals and accounts, then moves DRAFT to VALIDATED.
	Validate(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error)

	// Post moves VALIDATED to POSTED when the entry's period is open.
	Post(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error)

	// Cancel moves DRAFT to CANCELLED.
	Cancel(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error)

	// MarkReconciled sets the reconciled flag of a POSTED entry.
	MarkReconciled(ctx context.Context, companyID, entryID string, reconciled bool, userID string) (*domain.JournalEntry, error)

	// Reverse creates a DRAFT REVERSAL entry with debit and credit swapped.
	// The original entry is left untouched.
	Reverse(ctx context.Context, companyID, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalDraftSvc
	JournalLifecycleSvc
}
