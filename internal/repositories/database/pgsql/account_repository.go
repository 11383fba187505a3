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

const accountColumns = `account_id, company_id, account_number, name, description, account_type, account_class,
	currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.CompanyID, m.AccountNumber, m.Name, m.Description, m.AccountType, m.AccountClass,
		m.CurrencyCode, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "uq_accounts_company_number") {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateAccount, m.AccountNumber)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: account %s rejected by schema: %v", apperrors.ErrValidation, m.AccountNumber, err)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountNumber, err)
	}
	return nil
}

// UpdateAccount updates the descriptive fields of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE company_id = $1 AND account_number = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.CompanyID, account.AccountNumber, account.Name, account.Description, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.AccountNumber)
	}
	return nil
}

func (r *PgxAccountRepository) SetAccountActive(ctx context.Context, companyID, accountNumber string, active bool, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND account_number = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, accountNumber, active, now, userID)
	if err != nil {
		return fmt.Errorf("failed to set active flag of account %s: %w", accountNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountNumber)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, companyID, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND account_number = $2;`
	rows, err := r.Pool.Query(ctx, query, companyID, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query account %s: %w", accountNumber, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountNumber)
		}
		return nil, fmt.Errorf("failed to scan account %s: %w", accountNumber, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *PgxAccountRepository) FindAccountsByNumbers(ctx context.Context, companyID string, accountNumbers []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountNumbers))
	if len(accountNumbers) == 0 {
		return out, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND account_number = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, companyID, accountNumbers)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	for _, m := range ms {
		out[m.AccountNumber] = mapping.ToDomainAccount(m)
	}
	return out, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string, filter domain.AccountFilter) ([]domain.Account, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1`)
	args := []any{companyID}
	if filter.AccountClass != nil {
		args = append(args, *filter.AccountClass)
		fmt.Fprintf(&sb, " AND account_class = $%d", len(args))
	}
	if filter.ActiveOnly {
		sb.WriteString(" AND is_active")
	}
	if filter.Prefix != "" {
		args = append(args, filter.Prefix)
		fmt.Fprintf(&sb, " AND starts_with(account_number, $%d)", len(args))
	}
	sb.WriteString(" ORDER BY account_number")
	writePage(&sb, &args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

func (r *PgxAccountRepository) ListAccountNumbersByPrefix(ctx context.Context, companyID, prefix string) ([]string, error) {
	query := `
		SELECT account_number FROM accounts
		WHERE company_id = $1 AND starts_with(account_number, $2)
		ORDER BY account_number;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list account numbers: %w", err)
	}
	numbers, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan account numbers: %w", err)
	}
	return numbers, nil
}

// writePage appends LIMIT and OFFSET clauses for positive values.
func writePage(sb *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		*args = append(*args, limit)
		fmt.Fprintf(sb, " LIMIT $%d", len(*args))
	}
	if offset > 0 {
		*args = append(*args, offset)
		fmt.Fprintf(sb, " OFFSET $%d", len(*args))
	}
}
