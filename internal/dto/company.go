package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/shopspring/decimal"
)

// CreateCompanyRequest defines data for creating a new company.
type CreateCompanyRequest struct {
	Name               string `json:"name" binding:"required"`
	CountryCode        string `json:"countryCode" binding:"required,len=2,uppercase"`
	AccountingStandard string `json:"accountingStandard"` // Derived from the country when empty
	BaseCurrency       string `json:"baseCurrency" binding:"omitempty,len=3,uppercase"`
}

// CompanyResponse defines data returned for a company.
type CompanyResponse struct {
	CompanyID          string    `json:"companyID"`
	Name               string    `json:"name"`
	CountryCode        string    `json:"countryCode"`
	AccountingStandard string    `json:"accountingStandard"`
	BaseCurrency       string    `json:"baseCurrency"`
	CreatedAt          time.Time `json:"createdAt"`
	CreatedBy          string    `json:"createdBy"`
}

// ToCompanyResponse converts domain.Company to DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:          c.CompanyID,
		Name:               c.Name,
		CountryCode:        c.CountryCode,
		AccountingStandard: c.AccountingStandard,
		BaseCurrency:       c.BaseCurrency,
		CreatedAt:          c.CreatedAt,
		CreatedBy:          c.CreatedBy,
	}
}

// ProfileResponse exposes the accounting rules applied to a company.
type ProfileResponse struct {
	Standard                  string          `json:"standard"`
	CountryCode               string          `json:"countryCode,omitempty"`
	CurrencyCode              string          `json:"currencyCode,omitempty"`
	AccountNumberLength       int             `json:"accountNumberLength"`
	AccountNumberPattern      string          `json:"accountNumberPattern"`
	MaxAccountClasses         int             `json:"maxAccountClasses"`
	RequireBalancedEntries    bool            `json:"requireBalancedEntries"`
	RequireAnalyticalAccounts bool            `json:"requireAnalyticalAccounts"`
	DecimalPlaces             int32           `json:"decimalPlaces"`
	VATRate                   decimal.Decimal `json:"vatRate"`
	CorporateTaxRate          decimal.Decimal `json:"corporateTaxRate"`
}

// ToProfileResponse converts a registry profile to DTO.
func ToProfileResponse(p standards.CountryAccountingProfile) ProfileResponse {
	resp := ProfileResponse{
		Standard:                  p.Standard,
		CountryCode:               p.CountryCode,
		CurrencyCode:              p.CurrencyCode,
		AccountNumberLength:       p.AccountNumberLength,
		MaxAccountClasses:         p.MaxAccountClasses,
		RequireBalancedEntries:    p.RequireBalancedEntries,
		RequireAnalyticalAccounts: p.RequireAnalyticalAccounts,
		DecimalPlaces:             p.DecimalPlaces,
		VATRate:                   p.VATRate,
		CorporateTaxRate:          p.CorporateTaxRate,
	}
	if p.AccountNumberPattern != nil {
		resp.AccountNumberPattern = p.AccountNumberPattern.String()
	}
	return resp
}
