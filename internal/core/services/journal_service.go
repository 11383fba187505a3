package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// journalService is the journal entry engine: it owns the entry state machine
//
//	DRAFT -> VALIDATED -> POSTED
//	DRAFT -> CANCELLED
//
// and every check that guards a transition. All checks run before the store is
// touched, so a failed call leaves the entry exactly as it was.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	profiles    portssvc.ProfileResolver
	periods     portssvc.PeriodGate
	registry    *standards.Registry
	rates       portssvc.RateProvider
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithRateProvider enables lines denominated in a currency other than the entry's.
func WithRateProvider(rates portssvc.RateProvider) JournalServiceOption {
	return func(s *journalService) {
		s.rates = rates
	}
}

// NewJournalService creates a new journal entry engine.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	profiles portssvc.ProfileResolver,
	periods portssvc.PeriodGate,
	registry *standards.Registry,
	options ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		profiles:    profiles,
		periods:     periods,
		registry:    registry,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// draftHeader is what a new entry needs besides its lines.
type draftHeader struct {
	entryDate         time.Time
	entryType         domain.EntryType
	source            domain.EntrySource
	currencyCode      string
	pieceNumber       string
	journalCode       string
	description       string
	reference         string
	reversalOfEntryID *string
}

func (s *journalService) CreateDraftEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: entry description is required", apperrors.ErrValidation)
	}
	header := draftHeader{
		entryDate:    req.EntryDate,
		entryType:    req.EntryType,
		source:       req.Source,
		currencyCode: req.CurrencyCode,
		pieceNumber:  req.PieceNumber,
		journalCode:  req.JournalCode,
		description:  strings.TrimSpace(req.Description),
		reference:    req.Reference,
	}

	return s.createDraft(ctx, companyID, header, userID, func(entry *domain.JournalEntry, places int32) ([]domain.LedgerLine, error) {
		lines := make([]domain.LedgerLine, 0, len(req.Lines))
		for i, lineReq := range req.Lines {
			line, err := s.buildLine(ctx, entry, lineReq, places)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			line.Position = i + 1
			lines = append(lines, line)
		}
		return lines, nil
	})
}

// createDraft resolves profile, period and number for a new entry, lets
// buildLines produce its lines, and persists the result.
func (s *journalService) createDraft(
	ctx context.Context,
	companyID string,
	h draftHeader,
	userID string,
	buildLines func(entry *domain.JournalEntry, places int32) ([]domain.LedgerLine, error),
) (*domain.JournalEntry, error) {
	if h.entryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}

	profile, err := s.profiles.GetAccountingProfile(ctx, companyID)
	if err != nil {
		return nil, err
	}

	entryDate := domain.DateOnly(h.entryDate)
	period, err := s.periods.FindPeriodForDate(ctx, companyID, entryDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no financial period covers %s", apperrors.ErrValidation, entryDate.Format(time.DateOnly))
		}
		return nil, err
	}

	currency := strings.ToUpper(h.currencyCode)
	if currency == "" {
		currency = profile.CurrencyCode
	}
	entryType := h.entryType
	if entryType == "" {
		entryType = domain.EntryStandard
	}
	source := h.source
	if source == "" {
		source = domain.SourceManual
	}

	now := s.Now()
	entry := domain.JournalEntry{
		EntryID:           uuid.NewString(),
		CompanyID:         companyID,
		PeriodID:          period.PeriodID,
		PieceNumber:       h.pieceNumber,
		EntryDate:         entryDate,
		EntryType:         entryType,
		Source:            source,
		Status:            domain.StatusDraft,
		CurrencyCode:      currency,
		JournalCode:       strings.ToUpper(h.journalCode),
		Description:       h.description,
		Reference:         h.reference,
		ReversalOfEntryID: h.reversalOfEntryID,
		Version:           1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	lines, err := buildLines(&entry, s.decimalsFor(profile, currency))
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	entry.TotalDebit, entry.TotalCredit = domain.SumLines(lines)

	seq, err := s.journalRepo.NextEntrySequence(ctx, companyID, entryDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate entry number", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}
	entry.EntryNumber = FormatEntryNumber(entryDate, seq)

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry",
			slog.String("company_id", companyID),
			slog.String("entry_number", entry.EntryNumber))
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry drafted",
		slog.String("company_id", companyID),
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.Int("line_count", len(lines)))
	return &entry, nil
}

// FormatEntryNumber renders the company-unique entry number JE-YYYYMMDD-NNNN.
func FormatEntryNumber(day time.Time, seq int) string {
	return fmt.Sprintf("JE-%s-%04d", day.Format("20060102"), seq)
}

// decimalsFor returns the fractional digits allowed for amounts in currency.
func (s *journalService) decimalsFor(profile standards.CountryAccountingProfile, currency string) int32 {
	if currency == profile.CurrencyCode {
		return profile.DecimalPlaces
	}
	return s.registry.CurrencyDecimals(currency)
}

// buildLine turns a request into a validated line. Amounts in a foreign
// currency are converted at the entry date's rate and the original kept.
func (s *journalService) buildLine(ctx context.Context, entry *domain.JournalEntry, req dto.AddLineRequest, places int32) (domain.LedgerLine, error) {
	line := domain.LedgerLine{
		LineID:        uuid.NewString(),
		EntryID:       entry.EntryID,
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		Debit:         req.Debit,
		Credit:        req.Credit,
		Label:         req.Label,
		ThirdPartyRef: req.ThirdPartyRef,
		CostCenter:    req.CostCenter,
		ProjectRef:    req.ProjectRef,
		AnalyticTag:   req.AnalyticTag,
	}

	if req.Currency != nil && !strings.EqualFold(*req.Currency, entry.CurrencyCode) {
		from := strings.ToUpper(*req.Currency)
		// Validate as entered, in the original currency.
		if err := line.Validate(s.registry.CurrencyDecimals(from)); err != nil {
			return domain.LedgerLine{}, err
		}
		if s.rates == nil {
			return domain.LedgerLine{}, fmt.Errorf("%w: line in %s but entry is in %s and no rate provider is configured", apperrors.ErrCurrencyMismatch, from, entry.CurrencyCode)
		}

		original := line.Amount()
		rate, err := s.rates.GetRate(ctx, from, entry.CurrencyCode, entry.EntryDate)
		if err != nil {
			return domain.LedgerLine{}, err
		}
		converted := original.Mul(rate).Round(places)
		if !converted.IsPositive() {
			return domain.LedgerLine{}, fmt.Errorf("%w: %s %s converts to zero %s", apperrors.ErrInvalidLine, original, from, entry.CurrencyCode)
		}
		if line.IsDebit() {
			line.Debit = converted
		} else {
			line.Credit = converted
		}
		line.OriginalAmount = &original
		line.OriginalCurrency = &from
		line.ExchangeRate = &rate
	}

	if err := line.Validate(places); err != nil {
		return domain.LedgerLine{}, err
	}
	return line, nil
}

// loadEntry fetches an entry, logging only unexpected failures.
func (s *journalService) loadEntry(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load journal entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to load entry %s: %w", entryID, err)
	}
	return entry, nil
}

func notEditable(entry *domain.JournalEntry) error {
	return fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotEditable, entry.EntryNumber, entry.Status)
}

func (s *journalService) GetEntry(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	return s.loadEntry(ctx, companyID, entryID)
}

func (s *journalService) ListEntries(ctx context.Context, companyID string, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntries(ctx, companyID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

func (s *journalService) AddLine(ctx context.Context, companyID, entryID string, req dto.AddLineRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsEditable() {
		return nil, notEditable(entry)
	}

	profile, err := s.profiles.GetAccountingProfile(ctx, companyID)
	if err != nil {
		return nil, err
	}
	line, err := s.buildLine(ctx, entry, req, s.decimalsFor(profile, entry.CurrencyCode))
	if err != nil {
		return nil, err
	}

	if _, err := s.journalRepo.AddLine(ctx, companyID, entryID, line, userID, s.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to add line", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to add line to entry %s: %w", entry.EntryNumber, err)
	}
	return s.loadEntry(ctx, companyID, entryID)
}

func (s *journalService) RemoveLine(ctx context.Context, companyID, entryID, lineID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsEditable() {
		return nil, notEditable(entry)
	}

	if err := s.journalRepo.RemoveLine(ctx, companyID, entryID, lineID, userID, s.Now()); err != nil {
		return nil, fmt.Errorf("failed to remove line %s from entry %s: %w", lineID, entry.EntryNumber, err)
	}
	return s.loadEntry(ctx, companyID, entryID)
}

func (s *journalService) UpdateDraft(ctx context.Context, companyID, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsEditable() {
		return nil, notEditable(entry)
	}
	if req.Version != entry.Version {
		return nil, fmt.Errorf("%w: entry %s is at version %d, not %d", apperrors.ErrVersionConflict, entry.EntryNumber, entry.Version, req.Version)
	}

	updated := *entry
	if req.EntryDate != nil {
		newDate := domain.DateOnly(*req.EntryDate)
		period, err := s.periods.FindPeriodForDate(ctx, companyID, newDate)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: no financial period covers %s", apperrors.ErrValidation, newDate.Format(time.DateOnly))
			}
			return nil, err
		}
		updated.EntryDate = newDate
		updated.PeriodID = period.PeriodID
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, fmt.Errorf("%w: entry description cannot be empty", apperrors.ErrValidation)
		}
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.PieceNumber != nil {
		updated.PieceNumber = *req.PieceNumber
	}
	if req.JournalCode != nil {
		updated.JournalCode = strings.ToUpper(*req.JournalCode)
	}
	if req.Reference != nil {
		updated.Reference = *req.Reference
	}
	updated.LastUpdatedAt = s.Now()
	updated.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateDraftHeader(ctx, updated, req.Version); err != nil {
		return nil, fmt.Errorf("failed to update entry %s: %w", entry.EntryNumber, err)
	}
	return s.loadEntry(ctx, companyID, entryID)
}

func (s *journalService) DeleteDraft(ctx context.Context, companyID, entryID, userID string) error {
	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return err
	}
	if !entry.IsEditable() {
		return notEditable(entry)
	}
	if err := s.journalRepo.DeleteDraft(ctx, companyID, entryID); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entry.EntryNumber, err)
	}
	s.LogInfo(ctx, "Draft entry deleted",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("deleted_by", userID))
	return nil
}

// Validate moves a DRAFT entry to VALIDATED. Checks run in this order: lines
// present, each line well formed, debits equal credits, every account known
// and active.
func (s *journalService) Validate(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.StatusDraft {
		return nil, notEditable(entry)
	}
	if len(entry.Lines) == 0 {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrEmptyEntry, entry.EntryNumber)
	}

	profile, err := s.profiles.GetAccountingProfile(ctx, companyID)
	if err != nil {
		return nil, err
	}
	places := s.decimalsFor(profile, entry.CurrencyCode)
	for _, line := range entry.Lines {
		if err := line.Validate(places); err != nil {
			return nil, fmt.Errorf("line %d: %w", line.Position, err)
		}
	}

	debit, credit := domain.SumLines(entry.Lines)
	if profile.RequireBalancedEntries && !debit.Equal(credit) {
		s.LogDebug(ctx, "Entry rejected as imbalanced",
			slog.String("entry_id", entryID),
			slog.String("total_debit", debit.String()),
			slog.String("total_credit", credit.String()))
		return nil, fmt.Errorf("%w: debit %s, credit %s", apperrors.ErrImbalancedEntry, debit, credit)
	}

	if err := s.checkAccounts(ctx, companyID, entry.Lines); err != nil {
		return nil, err
	}

	return s.transition(ctx, entry, domain.StatusValidated, debit, credit, userID)
}

// checkAccounts reports the first line whose account is unknown or inactive.
func (s *journalService) checkAccounts(ctx context.Context, companyID string, lines []domain.LedgerLine) error {
	numbers := make([]string, 0, len(lines))
	for _, l := range lines {
		numbers = append(numbers, l.AccountNumber)
	}
	accounts, err := s.accountRepo.FindAccountsByNumbers(ctx, companyID, uniqueStrings(numbers))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for validation", slog.String("company_id", companyID))
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, l := range lines {
		acc, ok := accounts[l.AccountNumber]
		if !ok {
			return fmt.Errorf("%w: %s (line %d)", apperrors.ErrUnknownAccount, l.AccountNumber, l.Position)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: %s (line %d)", apperrors.ErrInactiveAccount, l.AccountNumber, l.Position)
		}
	}
	return nil
}

// Post moves a VALIDATED entry to POSTED. The period check and the status
// change are one atomic store operation; a lost race on the version counter is
// reported as ErrAlreadyPosted when the winner posted the entry.
func (s *journalService) Post(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status == domain.StatusPosted {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyPosted, entry.EntryNumber)
	}

	// A closed period rejects the post whatever state the entry is in.
	open, err := s.periods.IsPeriodOpen(ctx, companyID, entry.EntryDate)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, fmt.Errorf("%w: entry %s is dated %s", apperrors.ErrPeriodClosed, entry.EntryNumber, entry.EntryDate.Format(time.DateOnly))
	}

	if entry.Status != domain.StatusValidated {
		return nil, fmt.Errorf("%w: entry %s must be VALIDATED to post, it is %s", apperrors.ErrEntryNotEditable, entry.EntryNumber, entry.Status)
	}

	now := s.Now()
	t := domain.EntryTransition{
		EntryID:         entry.EntryID,
		CompanyID:       companyID,
		ExpectedVersion: entry.Version,
		From:            domain.StatusValidated,
		To:              domain.StatusPosted,
		TotalDebit:      entry.TotalDebit,
		TotalCredit:     entry.TotalCredit,
		At:              now,
		By:              userID,
	}
	if err := s.journalRepo.PostEntry(ctx, t, entry.PeriodID); err != nil {
		if errors.Is(err, apperrors.ErrVersionConflict) {
			return nil, s.explainConflict(ctx, entry, err)
		}
		if !errors.Is(err, apperrors.ErrPeriodClosed) {
			s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to post entry %s: %w", entry.EntryNumber, err)
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("company_id", companyID),
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("total", entry.TotalDebit.String()))
	return s.loadEntry(ctx, companyID, entryID)
}

func (s *journalService) Cancel(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.StatusDraft {
		return nil, notEditable(entry)
	}
	return s.transition(ctx, entry, domain.StatusCancelled, entry.TotalDebit, entry.TotalCredit, userID)
}

func (s *journalService) MarkReconciled(ctx context.Context, companyID, entryID string, reconciled bool, userID string) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.StatusPosted {
		return nil, fmt.Errorf("%w: only POSTED entries can be reconciled, %s is %s", apperrors.ErrEntryNotEditable, entry.EntryNumber, entry.Status)
	}
	if err := s.journalRepo.SetReconciled(ctx, companyID, entryID, reconciled, userID, s.Now()); err != nil {
		return nil, fmt.Errorf("failed to mark entry %s reconciled: %w", entry.EntryNumber, err)
	}
	return s.loadEntry(ctx, companyID, entryID)
}

// Reverse drafts a mirror entry of a POSTED one. The reversal goes through the
// normal validate and post steps; the original stays untouched.
func (s *journalService) Reverse(ctx context.Context, companyID, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error) {
	original, err := s.loadEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.StatusPosted {
		return nil, fmt.Errorf("%w: only POSTED entries can be reversed, %s is %s", apperrors.ErrConflict, original.EntryNumber, original.Status)
	}
	if original.EntryType == domain.EntryReversal {
		return nil, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrConflict, original.EntryNumber)
	}
	existing, err := s.journalRepo.ListEntries(ctx, companyID, domain.EntryFilter{ReversalOfEntryID: &original.EntryID})
	if err != nil {
		return nil, fmt.Errorf("failed to look up reversals of %s: %w", original.EntryNumber, err)
	}
	for _, r := range existing {
		if r.Status != domain.StatusCancelled {
			return nil, fmt.Errorf("%w: entry %s already has reversal %s", apperrors.ErrConflict, original.EntryNumber, r.EntryNumber)
		}
	}

	date := original.EntryDate
	if req.EntryDate != nil {
		date = *req.EntryDate
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = "Reversal of " + original.EntryNumber
	}
	originalID := original.EntryID
	header := draftHeader{
		entryDate:         date,
		entryType:         domain.EntryReversal,
		source:            domain.SourceSystem,
		currencyCode:      original.CurrencyCode,
		pieceNumber:       original.PieceNumber,
		journalCode:       original.JournalCode,
		description:       description,
		reference:         original.EntryNumber,
		reversalOfEntryID: &originalID,
	}

	reversal, err := s.createDraft(ctx, companyID, header, userID, func(entry *domain.JournalEntry, _ int32) ([]domain.LedgerLine, error) {
		lines := make([]domain.LedgerLine, len(original.Lines))
		for i, l := range original.Lines {
			mirrored := l
			mirrored.LineID = uuid.NewString()
			mirrored.EntryID = entry.EntryID
			mirrored.Position = i + 1
			mirrored.Debit, mirrored.Credit = l.Credit, l.Debit
			lines[i] = mirrored
		}
		return lines, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry reversal drafted",
		slog.String("original_entry_id", original.EntryID),
		slog.String("reversal_entry_id", reversal.EntryID))
	return reversal, nil
}

// transition applies a guarded DRAFT-origin status change.
func (s *journalService) transition(ctx context.Context, entry *domain.JournalEntry, to domain.EntryStatus, debit, credit decimal.Decimal, userID string) (*domain.JournalEntry, error) {
	if !entry.Status.CanTransitionTo(to) {
		return nil, notEditable(entry)
	}
	t := domain.EntryTransition{
		EntryID:         entry.EntryID,
		CompanyID:       entry.CompanyID,
		ExpectedVersion: entry.Version,
		From:            entry.Status,
		To:              to,
		TotalDebit:      debit,
		TotalCredit:     credit,
		At:              s.Now(),
		By:              userID,
	}
	if err := s.journalRepo.TransitionEntry(ctx, t); err != nil {
		if errors.Is(err, apperrors.ErrVersionConflict) {
			return nil, s.explainConflict(ctx, entry, err)
		}
		s.LogError(ctx, err, "Failed to change entry status",
			slog.String("entry_id", entry.EntryID),
			slog.String("to", string(to)))
		return nil, fmt.Errorf("failed to move entry %s to %s: %w", entry.EntryNumber, to, err)
	}

	s.LogInfo(ctx, "Journal entry status changed",
		slog.String("entry_id", entry.EntryID),
		slog.String("from", string(entry.Status)),
		slog.String("to", string(to)))
	return s.loadEntry(ctx, entry.CompanyID, entry.EntryID)
}

// explainConflict maps a lost version race to the state-machine error the
// caller would have seen had it arrived a moment later.
func (s *journalService) explainConflict(ctx context.Context, stale *domain.JournalEntry, cause error) error {
	current, err := s.journalRepo.FindEntryByID(ctx, stale.CompanyID, stale.EntryID)
	if err != nil {
		return fmt.Errorf("entry %s: %w", stale.EntryNumber, cause)
	}
	switch {
	case current.Status == domain.StatusPosted:
		return fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyPosted, current.EntryNumber)
	case current.Status != stale.Status:
		return notEditable(current)
	}
	return fmt.Errorf("entry %s: %w", stale.EntryNumber, cause)
}

func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	out := make([]string, 0, len(input))
	for _, v := range input {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
