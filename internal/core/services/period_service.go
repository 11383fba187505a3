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
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
)

// periodService manages financial periods and answers the journal engine's
// "is this date open" question.
type periodService struct {
	BaseService
	periodRepo  portsrepo.PeriodRepositoryFacade
	companyRepo portsrepo.CompanyReader
}

// NewPeriodService creates a new period service.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, companyRepo portsrepo.CompanyReader) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo:  periodRepo,
		companyRepo: companyRepo,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) CreatePeriod(ctx context.Context, companyID string, req dto.CreatePeriodRequest, userID string) (*domain.FinancialPeriod, error) {
	start, end := domain.DateOnly(req.StartDate), domain.DateOnly(req.EndDate)
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: period name is required", apperrors.ErrValidation)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: period ends %s before it starts %s", apperrors.ErrValidation, end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return nil, fmt.Errorf("failed to create period: %w", err)
	}

	now := s.Now()
	period := domain.FinancialPeriod{
		PeriodID:  uuid.NewString(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(req.Name),
		StartDate: start,
		EndDate:   end,
		Status:    domain.PeriodOpen,
		Version:   1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		if !errors.Is(err, apperrors.ErrPeriodOverlap) {
			s.LogError(ctx, err, "Failed to save period", slog.String("company_id", companyID))
		}
		return nil, fmt.Errorf("failed to create period %s: %w", period.Name, err)
	}

	s.LogInfo(ctx, "Financial period created",
		slog.String("company_id", companyID),
		slog.String("period_id", period.PeriodID),
		slog.String("start", start.Format(time.DateOnly)),
		slog.String("end", end.Format(time.DateOnly)))
	return &period, nil
}

func (s *periodService) GetPeriod(ctx context.Context, companyID, periodID string) (*domain.FinancialPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, companyID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get period %s: %w", periodID, err)
	}
	return period, nil
}

func (s *periodService) ListPeriods(ctx context.Context, companyID string) ([]domain.FinancialPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	if periods == nil {
		return []domain.FinancialPeriod{}, nil
	}
	return periods, nil
}

func (s *periodService) FindPeriodForDate(ctx context.Context, companyID string, date time.Time) (*domain.FinancialPeriod, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, companyID, domain.DateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("no financial period covers %s: %w", date.Format(time.DateOnly), err)
	}
	return period, nil
}

func (s *periodService) IsPeriodOpen(ctx context.Context, companyID string, date time.Time) (bool, error) {
	period, err := s.FindPeriodForDate(ctx, companyID, date)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return period.IsOpen(), nil
}

func (s *periodService) ClosePeriod(ctx context.Context, companyID, periodID, userID string) (*domain.FinancialPeriod, error) {
	period, err := s.GetPeriod(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s is already %s", apperrors.ErrPeriodClosed, period.Name, period.Status)
	}
	return s.changeStatus(ctx, period, domain.PeriodClosed, "", userID)
}

func (s *periodService) LockPeriod(ctx context.Context, companyID, periodID, reason, userID string) (*domain.FinancialPeriod, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: a lock reason is required", apperrors.ErrValidation)
	}
	period, err := s.GetPeriod(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status == domain.PeriodLocked {
		return nil, fmt.Errorf("%w: period %s is already locked", apperrors.ErrPeriodClosed, period.Name)
	}
	return s.changeStatus(ctx, period, domain.PeriodLocked, reason, userID)
}

func (s *periodService) ReopenPeriod(ctx context.Context, companyID, periodID, userID string) (*domain.FinancialPeriod, error) {
	period, err := s.GetPeriod(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}
	switch period.Status {
	case domain.PeriodLocked:
		return nil, fmt.Errorf("%w: locked period %s cannot be reopened", apperrors.ErrPeriodClosed, period.Name)
	case domain.PeriodOpen:
		return nil, fmt.Errorf("%w: period %s is already open", apperrors.ErrConflict, period.Name)
	}
	return s.changeStatus(ctx, period, domain.PeriodOpen, "", userID)
}

func (s *periodService) changeStatus(ctx context.Context, period *domain.FinancialPeriod, to domain.PeriodStatus, reason, userID string) (*domain.FinancialPeriod, error) {
	change := domain.PeriodStatusChange{
		CompanyID: period.CompanyID,
		PeriodID:  period.PeriodID,
		From:      period.Status,
		To:        to,
		Reason:    reason,
		At:        s.Now(),
		By:        userID,
	}
	if err := s.periodRepo.ChangePeriodStatus(ctx, change); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to change period status",
				slog.String("period_id", period.PeriodID),
				slog.String("to", string(to)))
		}
		return nil, fmt.Errorf("failed to move period %s to %s: %w", period.Name, to, err)
	}

	s.LogInfo(ctx, "Financial period status changed",
		slog.String("company_id", period.CompanyID),
		slog.String("period_id", period.PeriodID),
		slog.String("from", string(period.Status)),
		slog.String("to", string(to)))
	return s.GetPeriod(ctx, period.CompanyID, period.PeriodID)
}
