package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelPeriod converts a domain FinancialPeriod to a model FinancialPeriod.
// An empty lock reason is stored as NULL.
func ToModelPeriod(d domain.FinancialPeriod) models.FinancialPeriod {
	m := models.FinancialPeriod{
		PeriodID:    d.PeriodID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		StartDate:   domain.DateOnly(d.StartDate),
		EndDate:     domain.DateOnly(d.EndDate),
		Status:      string(d.Status),
		ClosedAt:    d.ClosedAt,
		ClosedBy:    d.ClosedBy,
		Version:     d.Version,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.LockReason != "" {
		reason := d.LockReason
		m.LockReason = &reason
	}
	return m
}

// ToDomainPeriod converts a model FinancialPeriod to a domain FinancialPeriod
func ToDomainPeriod(m models.FinancialPeriod) domain.FinancialPeriod {
	d := domain.FinancialPeriod{
		PeriodID:    m.PeriodID,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		StartDate:   domain.DateOnly(m.StartDate),
		EndDate:     domain.DateOnly(m.EndDate),
		Status:      domain.PeriodStatus(m.Status),
		ClosedAt:    m.ClosedAt,
		ClosedBy:    m.ClosedBy,
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.LockReason != nil {
		d.LockReason = *m.LockReason
	}
	return d
}
