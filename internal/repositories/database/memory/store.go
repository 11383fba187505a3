// Package memory is a process-local store implementing every repository port.
// A single mutex guards all state, so a post and a period close never interleave.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
)

type accountKey struct{ companyID, number string }

type sequenceKey struct {
	companyID string
	day       string
}

// Store keeps all ledger data in maps.
type Store struct {
	mu        sync.RWMutex
	companies map[string]domain.Company
	accounts  map[accountKey]domain.Account
	entries   map[string]domain.JournalEntry // by entry id, lines included
	periods   map[string]domain.FinancialPeriod
	rates     []domain.ExchangeRate
	sequences map[sequenceKey]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		companies: make(map[string]domain.Company),
		accounts:  make(map[accountKey]domain.Account),
		entries:   make(map[string]domain.JournalEntry),
		periods:   make(map[string]domain.FinancialPeriod),
		sequences: make(map[sequenceKey]int),
	}
}

// Repositories exposes the store through the repository ports.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      s,
		CompanyRepo:      s,
		ExchangeRateRepo: s,
		JournalRepo:      s,
		PeriodRepo:       s,
	}
}

var (
	_ portsrepo.AccountRepositoryFacade      = (*Store)(nil)
	_ portsrepo.CompanyRepositoryFacade      = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade      = (*Store)(nil)
	_ portsrepo.PeriodRepositoryFacade       = (*Store)(nil)
)

// --- companies ---

func (s *Store) SaveCompany(ctx context.Context, company domain.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.companies[company.CompanyID]; exists {
		return fmt.Errorf("%w: company %s", apperrors.ErrDuplicate, company.CompanyID)
	}
	s.companies[company.CompanyID] = company
	return nil
}

func (s *Store) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.companies[companyID]
	if !ok {
		return nil, fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
	}
	return &c, nil
}

func (s *Store) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CompanyID < out[j].CompanyID
	})
	return out, nil
}

// --- accounts ---

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := accountKey{account.CompanyID, account.AccountNumber}
	if _, exists := s.accounts[key]; exists {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateAccount, account.AccountNumber)
	}
	s.accounts[key] = account
	return nil
}

func (s *Store) UpdateAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := accountKey{account.CompanyID, account.AccountNumber}
	current, ok := s.accounts[key]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.AccountNumber)
	}
	current.Name = account.Name
	current.Description = account.Description
	current.LastUpdatedAt = account.LastUpdatedAt
	current.LastUpdatedBy = account.LastUpdatedBy
	s.accounts[key] = current
	return nil
}

func (s *Store) SetAccountActive(ctx context.Context, companyID, accountNumber string, active bool, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := accountKey{companyID, accountNumber}
	acc, ok := s.accounts[key]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountNumber)
	}
	acc.IsActive = active
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = userID
	s.accounts[key] = acc
	return nil
}

func (s *Store) FindAccountByNumber(ctx context.Context, companyID, accountNumber string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[accountKey{companyID, accountNumber}]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountNumber)
	}
	return &acc, nil
}

func (s *Store) FindAccountsByNumbers(ctx context.Context, companyID string, accountNumbers []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Account, len(accountNumbers))
	for _, n := range accountNumbers {
		if acc, ok := s.accounts[accountKey{companyID, n}]; ok {
			out[n] = acc
		}
	}
	return out, nil
}

func (s *Store) ListAccounts(ctx context.Context, companyID string, filter domain.AccountFilter) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, 0)
	for key, acc := range s.accounts {
		if key.companyID != companyID {
			continue
		}
		if filter.ActiveOnly && !acc.IsActive {
			continue
		}
		if filter.AccountClass != nil && acc.AccountClass != *filter.AccountClass {
			continue
		}
		if filter.Prefix != "" && !strings.HasPrefix(acc.AccountNumber, filter.Prefix) {
			continue
		}
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (s *Store) ListAccountNumbersByPrefix(ctx context.Context, companyID, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0)
	for key := range s.accounts {
		if key.companyID == companyID && strings.HasPrefix(key.number, prefix) {
			out = append(out, key.number)
		}
	}
	sort.Strings(out)
	return out, nil
}

// --- periods ---

func (s *Store) SavePeriod(ctx context.Context, period domain.FinancialPeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.periods {
		if p.CompanyID == period.CompanyID && p.Overlaps(period) {
			return fmt.Errorf("%w: %s overlaps %s", apperrors.ErrPeriodOverlap, period.Name, p.Name)
		}
	}
	s.periods[period.PeriodID] = period
	return nil
}

func (s *Store) FindPeriodByID(ctx context.Context, companyID, periodID string) (*domain.FinancialPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.periods[periodID]
	if !ok || p.CompanyID != companyID {
		return nil, fmt.Errorf("%w: period %s", apperrors.ErrNotFound, periodID)
	}
	return &p, nil
}

func (s *Store) FindPeriodForDate(ctx context.Context, companyID string, date time.Time) (*domain.FinancialPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.periods {
		if p.CompanyID == companyID && p.Contains(date) {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: period for %s", apperrors.ErrNotFound, date.Format(time.DateOnly))
}

func (s *Store) ListPeriods(ctx context.Context, companyID string) ([]domain.FinancialPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FinancialPeriod, 0)
	for _, p := range s.periods {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (s *Store) ChangePeriodStatus(ctx context.Context, change domain.PeriodStatusChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.periods[change.PeriodID]
	if !ok || p.CompanyID != change.CompanyID {
		return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, change.PeriodID)
	}
	if p.Status != change.From {
		return fmt.Errorf("%w: period %s is %s, expected %s", apperrors.ErrConflict, p.Name, p.Status, change.From)
	}
	applyPeriodChange(&p, change)
	s.periods[p.PeriodID] = p
	return nil
}

func applyPeriodChange(p *domain.FinancialPeriod, change domain.PeriodStatusChange) {
	p.Status = change.To
	switch change.To {
	case domain.PeriodOpen:
		p.ClosedAt, p.ClosedBy = nil, nil
	case domain.PeriodLocked:
		p.LockReason = change.Reason
		fallthrough
	case domain.PeriodClosed:
		if p.ClosedAt == nil {
			at, by := change.At, change.By
			p.ClosedAt, p.ClosedBy = &at, &by
		}
	}
	p.Version++
	p.LastUpdatedAt = change.At
	p.LastUpdatedBy = change.By
}

// --- exchange rates ---

func (s *Store) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// One rate per pair and effective day; a later save replaces the earlier one.
	for i, r := range s.rates {
		if r.FromCurrency == rate.FromCurrency && r.ToCurrency == rate.ToCurrency && r.DateEffective.Equal(rate.DateEffective) {
			r.Rate = rate.Rate
			r.LastUpdatedAt, r.LastUpdatedBy = rate.LastUpdatedAt, rate.LastUpdatedBy
			s.rates[i] = r
			return nil
		}
	}
	s.rates = append(s.rates, rate)
	return nil
}

func (s *Store) FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *domain.ExchangeRate
	day := domain.DateOnly(asOf)
	for i := range s.rates {
		r := s.rates[i]
		if r.FromCurrency != fromCurrencyCode || r.ToCurrency != toCurrencyCode || r.DateEffective.After(day) {
			continue
		}
		if best == nil || r.DateEffective.After(best.DateEffective) {
			best = &r
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: rate %s->%s", apperrors.ErrNotFound, fromCurrencyCode, toCurrencyCode)
	}
	return best, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
