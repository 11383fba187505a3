package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// CreatePeriodRequest defines a new financial period. Both dates are inclusive.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required,gtefield=StartDate"`
}

// LockPeriodRequest carries the reason recorded on a locked period.
type LockPeriodRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PeriodResponse defines the data returned for a financial period.
type PeriodResponse struct {
	PeriodID   string              `json:"periodID"`
	Name       string              `json:"name"`
	StartDate  time.Time           `json:"startDate"`
	EndDate    time.Time           `json:"endDate"`
	Status     domain.PeriodStatus `json:"status"`
	LockReason string              `json:"lockReason,omitempty"`
	ClosedAt   *time.Time          `json:"closedAt,omitempty"`
	ClosedBy   *string             `json:"closedBy,omitempty"`
}

// ToPeriodResponse converts a domain.FinancialPeriod to PeriodResponse DTO.
func ToPeriodResponse(p *domain.FinancialPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:   p.PeriodID,
		Name:       p.Name,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		Status:     p.Status,
		LockReason: p.LockReason,
		ClosedAt:   p.ClosedAt,
		ClosedBy:   p.ClosedBy,
	}
}

// ToPeriodResponses converts a slice of periods.
func ToPeriodResponses(periods []domain.FinancialPeriod) []PeriodResponse {
	res := make([]PeriodResponse, len(periods))
	for i := range periods {
		res[i] = ToPeriodResponse(&periods[i])
	}
	return res
}
