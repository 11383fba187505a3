package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:          d.CompanyID,
		Name:               d.Name,
		CountryCode:        d.CountryCode,
		AccountingStandard: d.AccountingStandard,
		BaseCurrency:       d.BaseCurrency,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:          m.CompanyID,
		Name:               m.Name,
		CountryCode:        m.CountryCode,
		AccountingStandard: m.AccountingStandard,
		BaseCurrency:       m.BaseCurrency,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
