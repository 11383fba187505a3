package services

import (
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/SscSPs/ledger_core/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, registry *standards.Registry, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company first: every other service resolves the accounting profile through it.
	container.Company = NewCompanyService(repos.CompanyRepo, registry, WithDefaultStandard(cfg.DefaultStandard))
	container.Period = NewPeriodService(repos.PeriodRepo, repos.CompanyRepo)
	container.ExchangeRate = NewExchangeRateService(
		repos.ExchangeRateRepo,
		registry,
		WithRateLookupTimeout(cfg.RateLookupTimeout),
		WithRateLookupRetries(cfg.RateLookupMaxRetries),
	)
	container.Chart = NewChartOfAccountsService(repos.AccountRepo, container.Company, registry)
	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		container.Company,
		container.Period,
		registry,
		WithRateProvider(container.ExchangeRate),
	)
	container.Balance = NewBalanceService(repos.JournalRepo, repos.AccountRepo)

	return container
}
