package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate converts one unit of FromCurrency into Rate units of ToCurrency from DateEffective on.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	DateEffective  time.Time       `json:"dateEffective"`
	AuditFields
}
