package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		CompanyID:     d.CompanyID,
		AccountNumber: d.AccountNumber,
		Name:          d.Name,
		Description:   d.Description,
		AccountType:   models.AccountType(d.AccountType),
		AccountClass:  d.AccountClass,
		CurrencyCode:  d.CurrencyCode,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		CompanyID:     m.CompanyID,
		AccountNumber: m.AccountNumber,
		Name:          m.Name,
		Description:   m.Description,
		AccountType:   domain.AccountType(m.AccountType),
		AccountClass:  m.AccountClass,
		CurrencyCode:  m.CurrencyCode,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
