package models

import "time"

// FinancialPeriod is the financial_periods row. start_date and end_date are DATE columns.
type FinancialPeriod struct {
	PeriodID   string     `db:"period_id"`
	CompanyID  string     `db:"company_id"`
	Name       string     `db:"name"`
	StartDate  time.Time  `db:"start_date"`
	EndDate    time.Time  `db:"end_date"`
	Status     string     `db:"status"`
	LockReason *string    `db:"lock_reason"` // Nullable
	ClosedAt   *time.Time `db:"closed_at"`   // Nullable
	ClosedBy   *string    `db:"closed_by"`   // Nullable
	Version    int64      `db:"version"`
	AuditFields
}
