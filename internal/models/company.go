package models

// Company is the companies row.
type Company struct {
	CompanyID          string `db:"company_id"`
	Name               string `db:"name"`
	CountryCode        string `db:"country_code"`
	AccountingStandard string `db:"accounting_standard"`
	BaseCurrency       string `db:"base_currency"`
	AuditFields
}
