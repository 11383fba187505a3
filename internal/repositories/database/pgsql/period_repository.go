package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const periodColumns = `period_id, company_id, name, start_date, end_date, status, lock_reason, closed_at, closed_by,
	version, created_at, created_by, last_updated_at, last_updated_by`

// PgxPeriodRepository stores financial periods. Status changes take the row
// lock that PostEntry holds in share mode, so a close waits for in-flight posts.
type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) *PgxPeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

// SavePeriod serializes period creation per company on the company row, then
// rejects any overlap before inserting.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.FinancialPeriod) error {
	m := mapping.ToModelPeriod(period)
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		var companyID string
		err := tx.QueryRow(ctx, `SELECT company_id FROM companies WHERE company_id = $1 FOR UPDATE;`, m.CompanyID).Scan(&companyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: company %s", apperrors.ErrNotFound, m.CompanyID)
			}
			return fmt.Errorf("failed to lock company %s: %w", m.CompanyID, err)
		}

		var overlapping string
		err = tx.QueryRow(ctx, `
			SELECT name FROM financial_periods
			WHERE company_id = $1 AND start_date <= $3 AND end_date >= $2
			LIMIT 1;`, m.CompanyID, m.StartDate, m.EndDate).Scan(&overlapping)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s overlaps %s", apperrors.ErrPeriodOverlap, m.Name, overlapping)
		case !errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("failed to check period overlap: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO financial_periods (`+periodColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
			m.PeriodID, m.CompanyID, m.Name, m.StartDate, m.EndDate, m.Status, m.LockReason, m.ClosedAt, m.ClosedBy,
			m.Version, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to save period %s: %w", m.Name, err)
		}
		return nil
	})
}

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, companyID, periodID string) (*domain.FinancialPeriod, error) {
	return r.findOne(ctx, `SELECT `+periodColumns+` FROM financial_periods WHERE company_id = $1 AND period_id = $2;`,
		"period "+periodID, companyID, periodID)
}

func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, companyID string, date time.Time) (*domain.FinancialPeriod, error) {
	day := domain.DateOnly(date)
	return r.findOne(ctx, `
		SELECT `+periodColumns+` FROM financial_periods
		WHERE company_id = $1 AND start_date <= $2 AND end_date >= $2
		LIMIT 1;`,
		"period for "+day.Format(time.DateOnly), companyID, day)
}

func (r *PgxPeriodRepository) findOne(ctx context.Context, query, what string, args ...any) (*domain.FinancialPeriod, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.FinancialPeriod])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
		}
		return nil, fmt.Errorf("failed to scan %s: %w", what, err)
	}
	p := mapping.ToDomainPeriod(m)
	return &p, nil
}

func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, companyID string) ([]domain.FinancialPeriod, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+periodColumns+` FROM financial_periods WHERE company_id = $1 ORDER BY start_date;`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.FinancialPeriod])
	if err != nil {
		return nil, fmt.Errorf("failed to scan periods: %w", err)
	}
	out := make([]domain.FinancialPeriod, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainPeriod(m)
	}
	return out, nil
}

// ChangePeriodStatus updates the period only while it is still in change.From.
// The UPDATE blocks on the share locks of posts running against the period.
func (r *PgxPeriodRepository) ChangePeriodStatus(ctx context.Context, change domain.PeriodStatusChange) error {
	query := `
		UPDATE financial_periods
		SET status = $4,
		    lock_reason = CASE WHEN $4 = 'LOCKED' THEN $5 ELSE lock_reason END,
		    closed_at = CASE WHEN $4 = 'OPEN' THEN NULL ELSE COALESCE(closed_at, $6) END,
		    closed_by = CASE WHEN $4 = 'OPEN' THEN NULL ELSE COALESCE(closed_by, $7) END,
		    version = version + 1,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE company_id = $1 AND period_id = $2 AND status = $3;
	`
	tag, err := r.Pool.Exec(ctx, query,
		change.CompanyID, change.PeriodID, string(change.From), string(change.To), change.Reason, change.At, change.By,
	)
	if err != nil {
		return fmt.Errorf("failed to change status of period %s: %w", change.PeriodID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	current, err := r.FindPeriodByID(ctx, change.CompanyID, change.PeriodID)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: period %s is %s, expected %s", apperrors.ErrConflict, current.Name, current.Status, change.From)
}
