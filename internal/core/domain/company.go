package domain

import "time"

// Company is the tenant that owns accounts, entries and periods.
// One company's ledger data is never visible to another.
type Company struct {
	CompanyID          string `json:"companyID"`
	Name               string `json:"name"`
	CountryCode        string `json:"countryCode"`        // ISO 3166-1 alpha-2, e.g. "SN"
	AccountingStandard string `json:"accountingStandard"` // e.g. "SYSCOHADA"; empty means derive from country
	BaseCurrency       string `json:"baseCurrency"`
	AuditFields
}

// PeriodStatus is the posting state of a financial period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
	PeriodLocked PeriodStatus = "LOCKED" // Closed for good; cannot be reopened
)

// FinancialPeriod is a date range of a company that accepts postings while OPEN.
// StartDate and EndDate are both inclusive calendar days.
type FinancialPeriod struct {
	PeriodID   string       `json:"periodID"`
	CompanyID  string       `json:"companyID"`
	Name       string       `json:"name"`
	StartDate  time.Time    `json:"startDate"`
	EndDate    time.Time    `json:"endDate"`
	Status     PeriodStatus `json:"status"`
	LockReason string       `json:"lockReason,omitempty"`
	ClosedAt   *time.Time   `json:"closedAt,omitempty"`
	ClosedBy   *string      `json:"closedBy,omitempty"`
	Version    int64        `json:"version"`
	AuditFields
}

// Contains reports whether the calendar day of t falls inside the period.
func (p FinancialPeriod) Contains(t time.Time) bool {
	d := DateOnly(t)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// Overlaps reports whether two periods share at least one day.
func (p FinancialPeriod) Overlaps(o FinancialPeriod) bool {
	return !DateOnly(p.EndDate).Before(DateOnly(o.StartDate)) && !DateOnly(o.EndDate).Before(DateOnly(p.StartDate))
}

// IsOpen reports whether the period accepts postings.
func (p FinancialPeriod) IsOpen() bool {
	return p.Status == PeriodOpen
}

// PeriodStatusChange is a guarded status update; the store applies it only
// while the period is still in From.
type PeriodStatusChange struct {
	CompanyID string
	PeriodID  string
	From      PeriodStatus
	To        PeriodStatus
	Reason    string
	At        time.Time
	By        string
}
