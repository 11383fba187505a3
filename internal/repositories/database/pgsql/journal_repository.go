package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, company_id, period_id, entry_number, piece_number, entry_date, entry_type, source,
	status, currency_code, journal_code, description, reference, total_debit, total_credit, is_reconciled,
	reversal_of_entry_id, version, validated_at, validated_by, posted_at, posted_by,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, position, account_number, debit, credit, label, third_party_ref, cost_center,
	project_ref, analytic_tag, original_amount, original_currency, exchange_rate`

const insertLineQuery = `
	INSERT INTO ledger_lines (` + lineColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

// PgxJournalRepository stores entry headers in journal_entries and their lines in ledger_lines.
type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry inserts the header and every line in one transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO journal_entries (`+entryColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);`,
			m.EntryID, m.CompanyID, m.PeriodID, m.EntryNumber, m.PieceNumber, m.EntryDate, m.EntryType, m.Source,
			m.Status, m.CurrencyCode, m.JournalCode, m.Description, m.Reference, m.TotalDebit, m.TotalCredit, m.IsReconciled,
			m.ReversalOfEntryID, m.Version, m.ValidatedAt, m.ValidatedBy, m.PostedAt, m.PostedBy,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err, "uq_journal_entries_active_reversal") {
				return fmt.Errorf("%w: entry %s already has a reversal", apperrors.ErrConflict, *m.ReversalOfEntryID)
			}
			if isUniqueViolation(err, "") {
				return fmt.Errorf("%w: entry %s", apperrors.ErrDuplicate, m.EntryNumber)
			}
			return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryNumber, err)
		}

		if len(entry.Lines) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, l := range entry.Lines {
			queueLineInsert(batch, mapping.ToModelLedgerLine(l))
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert lines of journal entry "+m.EntryNumber, err)
		}
		return nil
	})
}

func queueLineInsert(batch *pgx.Batch, l models.LedgerLine) {
	batch.Queue(insertLineQuery,
		l.LineID, l.EntryID, l.Position, l.AccountNumber, l.Debit, l.Credit, l.Label, l.ThirdPartyRef, l.CostCenter,
		l.ProjectRef, l.AnalyticTag, l.OriginalAmount, l.OriginalCurrency, l.ExchangeRate,
	)
}

// FindEntryByID retrieves an entry and its lines in position order.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE company_id = $1 AND entry_id = $2;`, companyID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry %s: %w", entryID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, fmt.Errorf("failed to scan entry %s: %w", entryID, err)
	}

	lineRows, err := r.Pool.Query(ctx, `SELECT `+lineColumns+` FROM ledger_lines WHERE entry_id = $1 ORDER BY position;`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of entry %s: %w", entryID, err)
	}
	lines, err := pgx.CollectRows(lineRows, pgx.RowToStructByName[models.LedgerLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan lines of entry %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	entry.Lines = mapping.ToDomainLedgerLineSlice(lines)
	return &entry, nil
}

// ListEntries retrieves entry headers ordered by date, then number.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, companyID string, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + entryColumns + ` FROM journal_entries WHERE company_id = $1`)
	args := []any{companyID}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}
	if filter.FromDate != nil {
		args = append(args, domain.DateOnly(*filter.FromDate))
		fmt.Fprintf(&sb, " AND entry_date >= $%d", len(args))
	}
	if filter.ToDate != nil {
		args = append(args, domain.DateOnly(*filter.ToDate))
		fmt.Fprintf(&sb, " AND entry_date <= $%d", len(args))
	}
	if filter.ReversalOfEntryID != nil {
		args = append(args, *filter.ReversalOfEntryID)
		fmt.Fprintf(&sb, " AND reversal_of_entry_id = $%d", len(args))
	}
	sb.WriteString(" ORDER BY entry_date, entry_number")
	writePage(&sb, &args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan entries: %w", err)
	}
	out := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainJournalEntry(m)
	}
	return out, nil
}

func (r *PgxJournalRepository) UpdateDraftHeader(ctx context.Context, entry domain.JournalEntry, expectedVersion int64) error {
	m := mapping.ToModelJournalEntry(entry)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE journal_entries
		SET entry_date = $4, period_id = $5, piece_number = $6, journal_code = $7, description = $8, reference = $9,
		    last_updated_at = $10, last_updated_by = $11, version = version + 1
		WHERE company_id = $1 AND entry_id = $2 AND version = $3 AND status = 'DRAFT';`,
		m.CompanyID, m.EntryID, expectedVersion, m.EntryDate, m.PeriodID, m.PieceNumber, m.JournalCode, m.Description, m.Reference,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.explainMiss(ctx, r.Pool, m.CompanyID, m.EntryID, apperrors.ErrVersionConflict)
	}
	return nil
}

// AddLine appends a line under the entry row lock so positions stay dense.
func (r *PgxJournalRepository) AddLine(ctx context.Context, companyID, entryID string, line domain.LedgerLine, userID string, now time.Time) (*domain.LedgerLine, error) {
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := r.lockDraft(ctx, tx, companyID, entryID); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(position), 0) + 1 FROM ledger_lines WHERE entry_id = $1;`, entryID).Scan(&line.Position); err != nil {
			return fmt.Errorf("failed to compute next line position: %w", err)
		}
		line.EntryID = entryID
		l := mapping.ToModelLedgerLine(line)
		if _, err := tx.Exec(ctx, insertLineQuery,
			l.LineID, l.EntryID, l.Position, l.AccountNumber, l.Debit, l.Credit, l.Label, l.ThirdPartyRef, l.CostCenter,
			l.ProjectRef, l.AnalyticTag, l.OriginalAmount, l.OriginalCurrency, l.ExchangeRate,
		); err != nil {
			return fmt.Errorf("failed to insert line: %w", err)
		}
		return r.touchEntry(ctx, tx, entryID, userID, now)
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// RemoveLine deletes a line and shifts the following positions down by one.
// The position constraint is deferred to commit, so the shift may pass through duplicates.
func (r *PgxJournalRepository) RemoveLine(ctx context.Context, companyID, entryID, lineID, userID string, now time.Time) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := r.lockDraft(ctx, tx, companyID, entryID); err != nil {
			return err
		}
		var position int
		err := tx.QueryRow(ctx, `DELETE FROM ledger_lines WHERE entry_id = $1 AND line_id = $2 RETURNING position;`, entryID, lineID).Scan(&position)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: line %s", apperrors.ErrNotFound, lineID)
			}
			return fmt.Errorf("failed to delete line %s: %w", lineID, err)
		}
		if _, err := tx.Exec(ctx, `UPDATE ledger_lines SET position = position - 1 WHERE entry_id = $1 AND position > $2;`, entryID, position); err != nil {
			return fmt.Errorf("failed to renumber lines: %w", err)
		}
		return r.touchEntry(ctx, tx, entryID, userID, now)
	})
}

// lockDraft takes the entry row lock and checks the entry is still a draft.
func (r *PgxJournalRepository) lockDraft(ctx context.Context, tx pgx.Tx, companyID, entryID string) error {
	var status, number string
	err := tx.QueryRow(ctx, `SELECT status, entry_number FROM journal_entries WHERE company_id = $1 AND entry_id = $2 FOR UPDATE;`,
		companyID, entryID).Scan(&status, &number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
		}
		return fmt.Errorf("failed to lock entry %s: %w", entryID, err)
	}
	if domain.EntryStatus(status) != domain.StatusDraft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotEditable, number, status)
	}
	return nil
}

// touchEntry recomputes totals from the stored lines and bumps the version.
func (r *PgxJournalRepository) touchEntry(ctx context.Context, tx pgx.Tx, entryID, userID string, now time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE journal_entries e
		SET total_debit = t.debit, total_credit = t.credit,
		    version = e.version + 1, last_updated_at = $2, last_updated_by = $3
		FROM (
			SELECT COALESCE(SUM(debit), 0) AS debit, COALESCE(SUM(credit), 0) AS credit
			FROM ledger_lines WHERE entry_id = $1
		) t
		WHERE e.entry_id = $1;`, entryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to refresh totals of entry %s: %w", entryID, err)
	}
	return nil
}

func (r *PgxJournalRepository) TransitionEntry(ctx context.Context, t domain.EntryTransition) error {
	return r.transition(ctx, r.Pool, t)
}

// PostEntry holds the period row in share mode while applying the transition.
// ChangePeriodStatus needs the row exclusively, so a close either waits for
// this post to commit or makes it see a non-OPEN status.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, t domain.EntryTransition, periodID string) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		var name, status string
		err := tx.QueryRow(ctx, `SELECT name, status FROM financial_periods WHERE company_id = $1 AND period_id = $2 FOR SHARE;`,
			t.CompanyID, periodID).Scan(&name, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, periodID)
			}
			return fmt.Errorf("failed to lock period %s: %w", periodID, err)
		}
		if domain.PeriodStatus(status) != domain.PeriodOpen {
			return fmt.Errorf("%w: period %s is %s", apperrors.ErrPeriodClosed, name, status)
		}
		return r.transition(ctx, tx, t)
	})
}

// transition is the guarded compare-and-set on status and version.
func (r *PgxJournalRepository) transition(ctx context.Context, q querier, t domain.EntryTransition) error {
	tag, err := q.Exec(ctx, `
		UPDATE journal_entries
		SET status = $5, total_debit = $6, total_credit = $7,
		    validated_at = CASE WHEN $5 = 'VALIDATED' THEN $8 ELSE validated_at END,
		    validated_by = CASE WHEN $5 = 'VALIDATED' THEN $9 ELSE validated_by END,
		    posted_at = CASE WHEN $5 = 'POSTED' THEN $8 ELSE posted_at END,
		    posted_by = CASE WHEN $5 = 'POSTED' THEN $9 ELSE posted_by END,
		    version = version + 1, last_updated_at = $8, last_updated_by = $9
		WHERE company_id = $1 AND entry_id = $2 AND version = $3 AND status = $4;`,
		t.CompanyID, t.EntryID, t.ExpectedVersion, string(t.From), string(t.To), t.TotalDebit, t.TotalCredit, t.At, t.By,
	)
	if err != nil {
		return fmt.Errorf("failed to move entry %s to %s: %w", t.EntryID, t.To, err)
	}
	if tag.RowsAffected() == 0 {
		return r.explainMiss(ctx, q, t.CompanyID, t.EntryID, apperrors.ErrVersionConflict)
	}
	return nil
}

// explainMiss turns a guarded update that touched no row into ErrNotFound
// when the entry does not exist, and into kind otherwise.
func (r *PgxJournalRepository) explainMiss(ctx context.Context, q querier, companyID, entryID string, kind error) error {
	var status, number string
	var version int64
	err := q.QueryRow(ctx, `SELECT status, entry_number, version FROM journal_entries WHERE company_id = $1 AND entry_id = $2;`,
		companyID, entryID).Scan(&status, &number, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
		}
		return fmt.Errorf("failed to read entry %s: %w", entryID, err)
	}
	return fmt.Errorf("%w: entry %s is %s at version %d", kind, number, status, version)
}

func (r *PgxJournalRepository) SetReconciled(ctx context.Context, companyID, entryID string, reconciled bool, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE journal_entries SET is_reconciled = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND entry_id = $2 AND status = 'POSTED';`,
		companyID, entryID, reconciled, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update reconciliation of entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.explainMiss(ctx, r.Pool, companyID, entryID, apperrors.ErrEntryNotEditable)
	}
	return nil
}

// DeleteDraft removes a draft; its lines go with it through ON DELETE CASCADE.
func (r *PgxJournalRepository) DeleteDraft(ctx context.Context, companyID, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entries WHERE company_id = $1 AND entry_id = $2 AND status = 'DRAFT';`, companyID, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.explainMiss(ctx, r.Pool, companyID, entryID, apperrors.ErrEntryNotEditable)
	}
	return nil
}

// NextEntrySequence increments the per-company, per-day counter atomically.
func (r *PgxJournalRepository) NextEntrySequence(ctx context.Context, companyID string, day time.Time) (int, error) {
	var next int
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO entry_sequences (company_id, day, last_value) VALUES ($1, $2, 1)
		ON CONFLICT (company_id, day) DO UPDATE SET last_value = entry_sequences.last_value + 1
		RETURNING last_value;`, companyID, domain.DateOnly(day)).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate entry sequence: %w", err)
	}
	return next, nil
}

// SumPostedMovements aggregates POSTED lines per account in the database.
func (r *PgxJournalRepository) SumPostedMovements(ctx context.Context, q domain.MovementQuery) ([]domain.AccountMovement, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT l.account_number, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0), COUNT(*), MAX(e.entry_date)
		FROM ledger_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.company_id = $1 AND e.status = 'POSTED' AND e.entry_date <= $2`)
	args := []any{q.CompanyID, domain.DateOnly(q.Through)}
	if q.After != nil {
		args = append(args, domain.DateOnly(*q.After))
		fmt.Fprintf(&sb, " AND e.entry_date > $%d", len(args))
	}
	if q.AccountNumber != nil {
		args = append(args, *q.AccountNumber)
		fmt.Fprintf(&sb, " AND l.account_number = $%d", len(args))
	}
	sb.WriteString(" GROUP BY l.account_number ORDER BY l.account_number")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum posted movements: %w", err)
	}
	movements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AccountMovement, error) {
		var m domain.AccountMovement
		var last time.Time
		if err := row.Scan(&m.AccountNumber, &m.Debit, &m.Credit, &m.Count, &last); err != nil {
			return m, err
		}
		last = domain.DateOnly(last)
		m.LastMovementDate = &last
		return m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan posted movements: %w", err)
	}
	return movements, nil
}
