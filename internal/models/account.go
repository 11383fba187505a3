package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a row of a company's chart of accounts.
// (company_id, account_number) is unique.
type Account struct {
	AccountID     string      `db:"account_id"`
	CompanyID     string      `db:"company_id"`
	AccountNumber string      `db:"account_number"`
	Name          string      `db:"name"`
	Description   string      `db:"description"`
	AccountType   AccountType `db:"account_type"`
	AccountClass  int         `db:"account_class"`
	CurrencyCode  string      `db:"currency_code"`
	IsActive      bool        `db:"is_active"`
	AuditFields
}
