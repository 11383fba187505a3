package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyColumns = `company_id, name, country_code, accounting_standard, base_currency,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(pool *pgxpool.Pool) *PgxCompanyRepository {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `INSERT INTO companies (` + companyColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Name, m.CountryCode, m.AccountingStandard, m.BaseCurrency,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: company %s", apperrors.ErrDuplicate, m.CompanyID)
		}
		return fmt.Errorf("failed to save company %s: %w", m.CompanyID, err)
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+companyColumns+` FROM companies WHERE company_id = $1;`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query company %s: %w", companyID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Company])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
		}
		return nil, fmt.Errorf("failed to scan company %s: %w", companyID, err)
	}
	c := mapping.ToDomainCompany(m)
	return &c, nil
}

func (r *PgxCompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name, company_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Company])
	if err != nil {
		return nil, fmt.Errorf("failed to scan companies: %w", err)
	}
	out := make([]domain.Company, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainCompany(m)
	}
	return out, nil
}
