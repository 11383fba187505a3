package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines in position order.
	FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entry headers (without lines) ordered by entry date, then number.
	ListEntries(ctx context.Context, companyID string, filter domain.EntryFilter) ([]domain.JournalEntry, error)
}

// MovementReader aggregates posted lines for balance computation.
type MovementReader interface {
	// SumPostedMovements groups POSTED lines matching q by account number,
	// ordered by account number. Other statuses are never included.
	SumPostedMovements(ctx context.Context, q domain.MovementQuery) ([]domain.AccountMovement, error)
}

// JournalWriter defines write operations for journal entry data
type JournalWriter interface {
	// SaveEntry persists a new entry header and its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateDraftHeader updates the descriptive header fields of a DRAFT entry
	// still at expectedVersion, and bumps its version.
	UpdateDraftHeader(ctx context.Context, entry domain.JournalEntry, expectedVersion int64) error

	// AddLine appends a line to a DRAFT entry, assigning the next position and
	// bumping the entry version. Returns the stored line.
	AddLine(ctx context.Context, companyID, entryID string, line domain.LedgerLine, userID string, now time.Time) (*domain.LedgerLine, error)

	// RemoveLine deletes a line from a DRAFT entry and closes the position gap.
	RemoveLine(ctx context.Context, companyID, entryID, lineID, userID string, now time.Time) error

	// TransitionEntry applies a guarded status change. It fails with
	// apperrors.ErrVersionConflict when the entry moved away from t.From or t.ExpectedVersion.
	TransitionEntry(ctx context.Context, t domain.EntryTransition) error

	// PostEntry checks that the period is OPEN and applies the VALIDATED to POSTED
	// transition as one atomic step. Closing the period cannot interleave with it.
	PostEntry(ctx context.Context, t domain.EntryTransition, periodID string) error

	// SetReconciled updates the reconciled flag of a POSTED entry.
	SetReconciled(ctx context.Context, companyID, entryID string, reconciled bool, userID string, now time.Time) error

	// DeleteDraft removes a DRAFT entry and its lines.
	DeleteDraft(ctx context.Context, companyID, entryID string) error

	// NextEntrySequence returns the next entry sequence of the company for the given day, starting at 1.
	NextEntrySequence(ctx context.Context, companyID string, day time.Time) (int, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	MovementReader
	JournalWriter
}
