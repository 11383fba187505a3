package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		CompanyRepo:      newPgxCompanyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		PeriodRepo:       newPgxPeriodRepository(dbPool),
	}
}
