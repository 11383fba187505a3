package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a ledger account in a company's chart of accounts.
// AccountNumber is unique per company; accounts are never deleted, only deactivated.
type Account struct {
	AccountID     string      `json:"accountID"`     // Surrogate key (UUID)
	CompanyID     string      `json:"companyID"`     // Owning company
	AccountNumber string      `json:"accountNumber"` // Format dictated by the company's accounting standard
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	AccountType   AccountType `json:"accountType"`
	AccountClass  int         `json:"accountClass"` // 1..MaxAccountClasses of the standard
	CurrencyCode  string      `json:"currencyCode"`
	IsActive      bool        `json:"isActive"`
	AuditFields
}

// AccountFilter narrows account listings. Results are ordered by account number.
type AccountFilter struct {
	AccountClass *int
	ActiveOnly   bool
	Prefix       string
	Limit        int
	Offset       int
}
