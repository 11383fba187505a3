package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// cloneEntry copies an entry so callers never share line slices with the store.
func cloneEntry(e domain.JournalEntry, withLines bool) domain.JournalEntry {
	out := e
	out.Lines = nil
	if withLines && len(e.Lines) > 0 {
		out.Lines = make([]domain.LedgerLine, len(e.Lines))
		copy(out.Lines, e.Lines)
	}
	return out
}

// entryFor returns the stored entry when it belongs to companyID. Caller holds the lock.
func (s *Store) entryFor(companyID, entryID string) (domain.JournalEntry, error) {
	e, ok := s.entries[entryID]
	if !ok || e.CompanyID != companyID {
		return domain.JournalEntry{}, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}
	return e, nil
}

func (s *Store) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[entry.EntryID]; exists {
		return fmt.Errorf("%w: entry %s", apperrors.ErrDuplicate, entry.EntryID)
	}
	for _, e := range s.entries {
		if e.CompanyID == entry.CompanyID && e.EntryNumber == entry.EntryNumber {
			return fmt.Errorf("%w: entry number %s", apperrors.ErrDuplicate, entry.EntryNumber)
		}
	}
	s.entries[entry.EntryID] = cloneEntry(entry, true)
	return nil
}

func (s *Store) FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, err := s.entryFor(companyID, entryID)
	if err != nil {
		return nil, err
	}
	out := cloneEntry(e, true)
	return &out, nil
}

func (s *Store) ListEntries(ctx context.Context, companyID string, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.JournalEntry, 0)
	for _, e := range s.entries {
		if e.CompanyID != companyID {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.FromDate != nil && e.EntryDate.Before(domain.DateOnly(*filter.FromDate)) {
			continue
		}
		if filter.ToDate != nil && e.EntryDate.After(domain.DateOnly(*filter.ToDate)) {
			continue
		}
		if filter.ReversalOfEntryID != nil && (e.ReversalOfEntryID == nil || *e.ReversalOfEntryID != *filter.ReversalOfEntryID) {
			continue
		}
		out = append(out, cloneEntry(e, false))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.Before(out[j].EntryDate)
		}
		return out[i].EntryNumber < out[j].EntryNumber
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (s *Store) UpdateDraftHeader(ctx context.Context, entry domain.JournalEntry, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.entryFor(entry.CompanyID, entry.EntryID)
	if err != nil {
		return err
	}
	if current.Status != domain.StatusDraft || current.Version != expectedVersion {
		return fmt.Errorf("%w: entry %s", apperrors.ErrVersionConflict, current.EntryNumber)
	}
	current.EntryDate = entry.EntryDate
	current.PeriodID = entry.PeriodID
	current.PieceNumber = entry.PieceNumber
	current.JournalCode = entry.JournalCode
	current.Description = entry.Description
	current.Reference = entry.Reference
	current.LastUpdatedAt = entry.LastUpdatedAt
	current.LastUpdatedBy = entry.LastUpdatedBy
	current.Version++
	s.entries[current.EntryID] = current
	return nil
}

func (s *Store) AddLine(ctx context.Context, companyID, entryID string, line domain.LedgerLine, userID string, now time.Time) (*domain.LedgerLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.entryFor(companyID, entryID)
	if err != nil {
		return nil, err
	}
	if e.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotEditable, e.EntryNumber, e.Status)
	}
	line.EntryID = entryID
	line.Position = len(e.Lines) + 1
	lines := make([]domain.LedgerLine, len(e.Lines), len(e.Lines)+1)
	copy(lines, e.Lines)
	e.Lines = append(lines, line)
	touchEntry(&e, userID, now)
	s.entries[entryID] = e
	return &line, nil
}

func (s *Store) RemoveLine(ctx context.Context, companyID, entryID, lineID, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.entryFor(companyID, entryID)
	if err != nil {
		return err
	}
	if e.Status != domain.StatusDraft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotEditable, e.EntryNumber, e.Status)
	}
	lines := make([]domain.LedgerLine, 0, len(e.Lines))
	found := false
	for _, l := range e.Lines {
		if l.LineID == lineID {
			found = true
			continue
		}
		l.Position = len(lines) + 1
		lines = append(lines, l)
	}
	if !found {
		return fmt.Errorf("%w: line %s", apperrors.ErrNotFound, lineID)
	}
	e.Lines = lines
	touchEntry(&e, userID, now)
	s.entries[entryID] = e
	return nil
}

// touchEntry refreshes totals, version and audit fields after a line change.
func touchEntry(e *domain.JournalEntry, userID string, now time.Time) {
	e.TotalDebit, e.TotalCredit = domain.SumLines(e.Lines)
	e.Version++
	e.LastUpdatedAt = now
	e.LastUpdatedBy = userID
}

func (s *Store) TransitionEntry(ctx context.Context, t domain.EntryTransition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyTransition(t)
}

// applyTransition is the guarded compare-and-set on status and version. Caller holds the lock.
func (s *Store) applyTransition(t domain.EntryTransition) error {
	e, err := s.entryFor(t.CompanyID, t.EntryID)
	if err != nil {
		return err
	}
	if e.Status != t.From || e.Version != t.ExpectedVersion {
		return fmt.Errorf("%w: entry %s is %s at version %d", apperrors.ErrVersionConflict, e.EntryNumber, e.Status, e.Version)
	}
	e.Status = t.To
	e.TotalDebit, e.TotalCredit = t.TotalDebit, t.TotalCredit
	at, by := t.At, t.By
	switch t.To {
	case domain.StatusValidated:
		e.ValidatedAt, e.ValidatedBy = &at, &by
	case domain.StatusPosted:
		e.PostedAt, e.PostedBy = &at, &by
	}
	e.Version++
	e.LastUpdatedAt = at
	e.LastUpdatedBy = by
	s.entries[e.EntryID] = e
	return nil
}

func (s *Store) PostEntry(ctx context.Context, t domain.EntryTransition, periodID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.periods[periodID]
	if !ok || p.CompanyID != t.CompanyID {
		return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, periodID)
	}
	if !p.IsOpen() {
		return fmt.Errorf("%w: period %s is %s", apperrors.ErrPeriodClosed, p.Name, p.Status)
	}
	return s.applyTransition(t)
}

func (s *Store) SetReconciled(ctx context.Context, companyID, entryID string, reconciled bool, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.entryFor(companyID, entryID)
	if err != nil {
		return err
	}
	if e.Status != domain.StatusPosted {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotEditable, e.EntryNumber, e.Status)
	}
	e.IsReconciled = reconciled
	e.LastUpdatedAt = now
	e.LastUpdatedBy = userID
	s.entries[entryID] = e
	return nil
}

func (s *Store) DeleteDraft(ctx context.Context, companyID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.entryFor(companyID, entryID)
	if err != nil {
		return err
	}
	if e.Status != domain.StatusDraft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotEditable, e.EntryNumber, e.Status)
	}
	delete(s.entries, entryID)
	return nil
}

func (s *Store) NextEntrySequence(ctx context.Context, companyID string, day time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sequenceKey{companyID: companyID, day: domain.DateOnly(day).Format("20060102")}
	s.sequences[key]++
	return s.sequences[key], nil
}

func (s *Store) SumPostedMovements(ctx context.Context, q domain.MovementQuery) ([]domain.AccountMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	through := domain.DateOnly(q.Through)
	var after *time.Time
	if q.After != nil {
		a := domain.DateOnly(*q.After)
		after = &a
	}

	byAccount := make(map[string]*domain.AccountMovement)
	for _, e := range s.entries {
		if e.CompanyID != q.CompanyID || e.Status != domain.StatusPosted {
			continue
		}
		if e.EntryDate.After(through) || (after != nil && !e.EntryDate.After(*after)) {
			continue
		}
		for _, l := range e.Lines {
			if q.AccountNumber != nil && l.AccountNumber != *q.AccountNumber {
				continue
			}
			m, ok := byAccount[l.AccountNumber]
			if !ok {
				m = &domain.AccountMovement{AccountNumber: l.AccountNumber, Debit: decimal.Zero, Credit: decimal.Zero}
				byAccount[l.AccountNumber] = m
			}
			m.Debit = m.Debit.Add(l.Debit)
			m.Credit = m.Credit.Add(l.Credit)
			m.Count++
			if m.LastMovementDate == nil || e.EntryDate.After(*m.LastMovementDate) {
				d := e.EntryDate
				m.LastMovementDate = &d
			}
		}
	}

	out := make([]domain.AccountMovement, 0, len(byAccount))
	for _, m := range byAccount {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return out, nil
}
