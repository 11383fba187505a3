package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:   d.ExchangeRateID,
		FromCurrencyCode: d.FromCurrency,
		ToCurrencyCode:   d.ToCurrency,
		Rate:             d.Rate,
		DateEffective:    domain.DateOnly(d.DateEffective),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		FromCurrency:   m.FromCurrencyCode,
		ToCurrency:     m.ToCurrencyCode,
		Rate:           m.Rate,
		DateEffective:  domain.DateOnly(m.DateEffective),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
