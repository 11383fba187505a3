//go:build integration

package pgsql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_core/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const actor = "integration"

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type PgsqlRepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	repos   portsrepo.RepositoryProvider
	svc     *portssvc.ServiceContainer
	company *domain.Company
	period  *domain.FinancialPeriod
}

func TestPgsqlRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PgsqlRepositoryTestSuite))
}

// The container is shared by the suite; every test works in its own company.
func (s *PgsqlRepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	pool := testutil.SetupTestDB(s.T())
	s.repos = pgsql.NewRepositoryProvider(pool)
	s.svc = services.NewServiceContainer(&config.Config{
		RateLookupTimeout:    2 * time.Second,
		RateLookupMaxRetries: 1,
	}, standards.DefaultRegistry(), s.repos)
}

func (s *PgsqlRepositoryTestSuite) SetupTest() {
	company, err := s.svc.Company.CreateCompany(s.ctx, dto.CreateCompanyRequest{Name: "Dakar Trading", CountryCode: "SN"}, actor)
	s.Require().NoError(err)
	s.company = company

	period, err := s.svc.Period.CreatePeriod(s.ctx, company.CompanyID, dto.CreatePeriodRequest{
		Name: "FY2024", StartDate: day("2024-01-01"), EndDate: day("2024-12-31"),
	}, actor)
	s.Require().NoError(err)
	s.period = period

	for _, acc := range []struct {
		number string
		typ    domain.AccountType
	}{
		{"4111000000", domain.Asset},
		{"5710000000", domain.Asset},
		{"6011000000", domain.Expense},
		{"7011000000", domain.Revenue},
	} {
		_, err := s.svc.Chart.CreateAccount(s.ctx, company.CompanyID, dto.CreateAccountRequest{
			AccountNumber: acc.number, Name: "Account " + acc.number, AccountType: acc.typ,
		}, actor)
		s.Require().NoError(err)
	}
}

func line(account, debit, credit string) dto.AddLineRequest {
	return dto.AddLineRequest{AccountNumber: account, Debit: amount(debit), Credit: amount(credit)}
}

func (s *PgsqlRepositoryTestSuite) validatedSale(date string) *domain.JournalEntry {
	entry, err := s.svc.Journal.CreateDraftEntry(s.ctx, s.company.CompanyID, dto.CreateEntryRequest{
		EntryDate:   day(date),
		Description: "Sale",
		Lines: []dto.AddLineRequest{
			line("4111000000", "250000", "0"),
			line("7011000000", "0", "250000"),
		},
	}, actor)
	s.Require().NoError(err)
	entry, err = s.svc.Journal.Validate(s.ctx, s.company.CompanyID, entry.EntryID, actor)
	s.Require().NoError(err)
	return entry
}

func (s *PgsqlRepositoryTestSuite) TestDuplicateAccountNumber() {
	_, err := s.svc.Chart.CreateAccount(s.ctx, s.company.CompanyID, dto.CreateAccountRequest{
		AccountNumber: "4111000000", Name: "Again", AccountType: domain.Asset,
	}, actor)
	s.ErrorIs(err, apperrors.ErrDuplicateAccount)
}

func (s *PgsqlRepositoryTestSuite) TestClasslessAccountIsStored() {
	us, err := s.svc.Company.CreateCompany(s.ctx, dto.CreateCompanyRequest{Name: "Austin Supply", CountryCode: "US"}, actor)
	s.Require().NoError(err)

	acc, err := s.svc.Chart.CreateAccount(s.ctx, us.CompanyID, dto.CreateAccountRequest{
		AccountNumber: "100000", Name: "Cash", AccountType: domain.Asset,
	}, actor)
	s.Require().NoError(err)
	s.Equal(0, acc.AccountClass)

	got, err := s.svc.Chart.GetAccount(s.ctx, us.CompanyID, "100000")
	s.Require().NoError(err)
	s.Equal(0, got.AccountClass)
	s.Equal("USD", got.CurrencyCode)
}

func (s *PgsqlRepositoryTestSuite) TestSKRClassZeroAccountIsStored() {
	de, err := s.svc.Company.CreateCompany(s.ctx, dto.CreateCompanyRequest{Name: "Berlin GmbH", CountryCode: "DE"}, actor)
	s.Require().NoError(err)

	acc, err := s.svc.Chart.CreateAccount(s.ctx, de.CompanyID, dto.CreateAccountRequest{
		AccountNumber: "0200", Name: "Grundstücke", AccountType: domain.Asset,
	}, actor)
	s.Require().NoError(err)
	s.Equal(1, acc.AccountClass)

	next, err := s.svc.Chart.FindOrNextAvailableNumber(s.ctx, de.CompanyID, "02")
	s.Require().NoError(err)
	s.Equal("0201", next)
}

func (s *PgsqlRepositoryTestSuite) TestPeriodOverlapIsRejected() {
	_, err := s.svc.Period.CreatePeriod(s.ctx, s.company.CompanyID, dto.CreatePeriodRequest{
		Name: "Overlap", StartDate: day("2024-12-31"), EndDate: day("2025-06-30"),
	}, actor)
	s.ErrorIs(err, apperrors.ErrPeriodOverlap)
}

func (s *PgsqlRepositoryTestSuite) TestPostAndBalance() {
	entry := s.validatedSale("2024-03-15")
	posted, err := s.svc.Journal.Post(s.ctx, s.company.CompanyID, entry.EntryID, actor)
	s.Require().NoError(err)
	s.Equal(domain.StatusPosted, posted.Status)
	s.Equal("JE-20240315-0001", posted.EntryNumber)
	s.Require().Len(posted.Lines, 2)
	s.Equal(1, posted.Lines[0].Position)

	balance, err := s.svc.Balance.ComputeAccountBalance(s.ctx, s.company.CompanyID, "7011000000", day("2024-12-31"), nil)
	s.Require().NoError(err)
	s.Equal(domain.SignCredit, balance.BalanceSign)
	s.True(balance.Balance.Equal(amount("250000")), balance.Balance.String())
	s.Equal(1, balance.MovementCount)

	tb, err := s.svc.Balance.BuildTrialBalance(s.ctx, s.company.CompanyID, day("2024-01-01"), day("2024-12-31"))
	s.Require().NoError(err)
	s.Len(tb.Rows, 2)
	s.True(tb.Totals.ClosingDebit.Equal(tb.Totals.ClosingCredit))
}

func (s *PgsqlRepositoryTestSuite) TestSingleLiveReversal() {
	entry := s.validatedSale("2024-03-20")
	original, err := s.svc.Journal.Post(s.ctx, s.company.CompanyID, entry.EntryID, actor)
	s.Require().NoError(err)

	reversal, err := s.svc.Journal.Reverse(s.ctx, s.company.CompanyID, original.EntryID, dto.ReverseEntryRequest{}, actor)
	s.Require().NoError(err)

	found, err := s.repos.JournalRepo.ListEntries(s.ctx, s.company.CompanyID, domain.EntryFilter{ReversalOfEntryID: &original.EntryID})
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(reversal.EntryID, found[0].EntryID)

	_, err = s.svc.Journal.Reverse(s.ctx, s.company.CompanyID, original.EntryID, dto.ReverseEntryRequest{}, actor)
	s.ErrorIs(err, apperrors.ErrConflict)

	// Writers bypassing the service still hit the partial unique index.
	duplicate := *reversal
	duplicate.EntryID = "dup-" + reversal.EntryID
	duplicate.EntryNumber = "JE-20240320-9999"
	duplicate.Lines = nil
	err = s.repos.JournalRepo.SaveEntry(s.ctx, duplicate)
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = s.svc.Journal.Cancel(s.ctx, s.company.CompanyID, reversal.EntryID, actor)
	s.Require().NoError(err)
	_, err = s.svc.Journal.Reverse(s.ctx, s.company.CompanyID, original.EntryID, dto.ReverseEntryRequest{}, actor)
	s.NoError(err)
}

func (s *PgsqlRepositoryTestSuite) TestRemoveLineRenumbers() {
	entry, err := s.svc.Journal.CreateDraftEntry(s.ctx, s.company.CompanyID, dto.CreateEntryRequest{
		EntryDate:   day("2024-04-01"),
		Description: "Purchase",
		Lines: []dto.AddLineRequest{
			line("6011000000", "1000", "0"),
			line("6011000000", "2000", "0"),
			line("5710000000", "0", "3000"),
		},
	}, actor)
	s.Require().NoError(err)

	entry, err = s.svc.Journal.RemoveLine(s.ctx, s.company.CompanyID, entry.EntryID, entry.Lines[0].LineID, actor)
	s.Require().NoError(err)
	s.Require().Len(entry.Lines, 2)
	s.Equal(1, entry.Lines[0].Position)
	s.Equal(2, entry.Lines[1].Position)
	s.True(entry.TotalDebit.Equal(amount("2000")))

	err = s.repos.JournalRepo.RemoveLine(s.ctx, s.company.CompanyID, entry.EntryID, "missing", actor, time.Now())
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PgsqlRepositoryTestSuite) TestConcurrentPostHasOneWinner() {
	entry := s.validatedSale("2024-05-02")
	t := domain.EntryTransition{
		EntryID:         entry.EntryID,
		CompanyID:       entry.CompanyID,
		ExpectedVersion: entry.Version,
		From:            domain.StatusValidated,
		To:              domain.StatusPosted,
		TotalDebit:      entry.TotalDebit,
		TotalCredit:     entry.TotalCredit,
		At:              time.Now().UTC(),
		By:              actor,
	}

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.repos.JournalRepo.PostEntry(s.ctx, t, entry.PeriodID)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		s.ErrorIs(err, apperrors.ErrVersionConflict)
	}
	s.Equal(1, wins)
}

func (s *PgsqlRepositoryTestSuite) TestClosedPeriodRejectsPost() {
	entry := s.validatedSale("2024-06-10")
	_, err := s.svc.Period.ClosePeriod(s.ctx, s.company.CompanyID, s.period.PeriodID, actor)
	s.Require().NoError(err)

	_, err = s.svc.Journal.Post(s.ctx, s.company.CompanyID, entry.EntryID, actor)
	s.ErrorIs(err, apperrors.ErrPeriodClosed)

	_, err = s.svc.Period.ReopenPeriod(s.ctx, s.company.CompanyID, s.period.PeriodID, actor)
	s.Require().NoError(err)
	_, err = s.svc.Journal.Post(s.ctx, s.company.CompanyID, entry.EntryID, actor)
	s.NoError(err)
}

func (s *PgsqlRepositoryTestSuite) TestCloseRacingPost() {
	entry := s.validatedSale("2024-07-01")

	var postErr, closeErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, postErr = s.svc.Journal.Post(s.ctx, s.company.CompanyID, entry.EntryID, actor)
	}()
	go func() {
		defer wg.Done()
		_, closeErr = s.svc.Period.ClosePeriod(s.ctx, s.company.CompanyID, s.period.PeriodID, actor)
	}()
	wg.Wait()

	s.Require().NoError(closeErr)
	got, err := s.svc.Journal.GetEntry(s.ctx, s.company.CompanyID, entry.EntryID)
	s.Require().NoError(err)
	if postErr != nil {
		s.ErrorIs(postErr, apperrors.ErrPeriodClosed)
		s.Equal(domain.StatusValidated, got.Status)
		return
	}
	s.Equal(domain.StatusPosted, got.Status)
	period, err := s.svc.Period.GetPeriod(s.ctx, s.company.CompanyID, s.period.PeriodID)
	s.Require().NoError(err)
	s.Equal(domain.PeriodClosed, period.Status)
}

func (s *PgsqlRepositoryTestSuite) TestEntrySequencePerDay() {
	first, err := s.repos.JournalRepo.NextEntrySequence(s.ctx, s.company.CompanyID, day("2024-08-01"))
	s.Require().NoError(err)
	second, err := s.repos.JournalRepo.NextEntrySequence(s.ctx, s.company.CompanyID, day("2024-08-01"))
	s.Require().NoError(err)
	other, err := s.repos.JournalRepo.NextEntrySequence(s.ctx, s.company.CompanyID, day("2024-08-02"))
	s.Require().NoError(err)
	s.Equal([]int{1, 2, 1}, []int{first, second, other})
}

func (s *PgsqlRepositoryTestSuite) TestLatestRateAndSameDayReplace() {
	rates := s.repos.ExchangeRateRepo
	now := time.Now().UTC()
	for _, r := range []domain.ExchangeRate{
		{ExchangeRateID: "gbp-1", FromCurrency: "GBP", ToCurrency: "XOF", Rate: amount("760"), DateEffective: day("2024-01-01")},
		{ExchangeRateID: "gbp-2", FromCurrency: "GBP", ToCurrency: "XOF", Rate: amount("770"), DateEffective: day("2024-03-01")},
		{ExchangeRateID: "gbp-3", FromCurrency: "GBP", ToCurrency: "XOF", Rate: amount("765"), DateEffective: day("2024-01-01")},
	} {
		r.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: actor, LastUpdatedAt: now, LastUpdatedBy: actor}
		s.Require().NoError(rates.SaveExchangeRate(s.ctx, r))
	}

	got, err := rates.FindLatestRate(s.ctx, "GBP", "XOF", day("2024-02-15"))
	s.Require().NoError(err)
	s.Equal("gbp-1", got.ExchangeRateID)
	s.True(got.Rate.Equal(amount("765")))

	_, err = rates.FindLatestRate(s.ctx, "GBP", "XOF", day("2023-12-31"))
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PgsqlRepositoryTestSuite) TestCompanyIsolation() {
	entry := s.validatedSale("2024-09-09")
	_, err := s.repos.JournalRepo.FindEntryByID(s.ctx, "another-company", entry.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.repos.AccountRepo.FindAccountByNumber(s.ctx, "another-company", "4111000000")
	s.ErrorIs(err, apperrors.ErrNotFound)
}
