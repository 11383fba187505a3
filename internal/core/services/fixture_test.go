package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testUser = "tester"

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// LedgerSuite wires every service over a fresh memory store: one Senegalese
// company (SYSCOHADA, XOF) with an open 2024 period.
type LedgerSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	registry *standards.Registry
	svc      *portssvc.ServiceContainer
	company  *domain.Company
	period   *domain.FinancialPeriod
}

func (s *LedgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.registry = standards.DefaultRegistry()
	cfg := &config.Config{
		RateLookupTimeout:    time.Second,
		RateLookupMaxRetries: 1,
	}
	s.svc = services.NewServiceContainer(cfg, s.registry, s.store.Repositories())

	company, err := s.svc.Company.CreateCompany(s.ctx, dto.CreateCompanyRequest{Name: "Dakar Trading", CountryCode: "SN"}, testUser)
	s.Require().NoError(err)
	s.company = company

	period, err := s.svc.Period.CreatePeriod(s.ctx, company.CompanyID, dto.CreatePeriodRequest{
		Name:      "FY2024",
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-12-31"),
	}, testUser)
	s.Require().NoError(err)
	s.period = period

	// Short operational numbers are seeded straight into the store, the way
	// a migrated chart would arrive.
	s.seedAccount("411100", "Clients", domain.Asset, 4)
	s.seedAccount("701100", "Ventes de marchandises", domain.Revenue, 7)
	s.seedAccount("571000", "Caisse", domain.Asset, 5)
	s.seedAccount("601000", "Achats", domain.Expense, 6)
}

func (s *LedgerSuite) seedAccount(number, name string, typ domain.AccountType, class int) {
	s.Require().NoError(s.store.SaveAccount(s.ctx, domain.Account{
		AccountID:     number,
		CompanyID:     s.company.CompanyID,
		AccountNumber: number,
		Name:          name,
		AccountType:   typ,
		AccountClass:  class,
		CurrencyCode:  "XOF",
		IsActive:      true,
	}))
}

func line(account, debit, credit string) dto.AddLineRequest {
	return dto.AddLineRequest{AccountNumber: account, Debit: amount(debit), Credit: amount(credit)}
}

// draft creates a DRAFT entry dated day with the given lines.
func (s *LedgerSuite) draft(day string, lines ...dto.AddLineRequest) *domain.JournalEntry {
	entry, err := s.svc.Journal.CreateDraftEntry(s.ctx, s.company.CompanyID, dto.CreateEntryRequest{
		EntryDate:   date(day),
		Description: "Sale",
		JournalCode: "vt",
		Lines:       lines,
	}, testUser)
	s.Require().NoError(err)
	return entry
}

// posted drafts, validates and posts an entry.
func (s *LedgerSuite) posted(day string, lines ...dto.AddLineRequest) *domain.JournalEntry {
	entry := s.draft(day, lines...)
	_, err := s.svc.Journal.Validate(s.ctx, s.company.CompanyID, entry.EntryID, testUser)
	s.Require().NoError(err)
	entry, err = s.svc.Journal.Post(s.ctx, s.company.CompanyID, entry.EntryID, testUser)
	s.Require().NoError(err)
	return entry
}

// sale is the canonical balanced sale of 100000 XOF.
func sale() []dto.AddLineRequest {
	return []dto.AddLineRequest{
		line("701100", "0", "100000"),
		line("411100", "100000", "0"),
	}
}
