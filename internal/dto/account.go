package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	AccountNumber string             `json:"accountNumber" binding:"required,accountnumber"`
	Name          string             `json:"name" binding:"required"`
	AccountType   domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	AccountClass  int                `json:"accountClass" binding:"min=0"`
	CurrencyCode  string             `json:"currencyCode" binding:"omitempty,len=3,uppercase"` // Defaults to the company base currency
	Description   string             `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	AccountNumber string             `json:"accountNumber"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	AccountType   domain.AccountType `json:"accountType"`
	AccountClass  int                `json:"accountClass"`
	CurrencyCode  string             `json:"currencyCode"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountNumber: acc.AccountNumber,
		Name:          acc.Name,
		Description:   acc.Description,
		AccountType:   acc.AccountType,
		AccountClass:  acc.AccountClass,
		CurrencyCode:  acc.CurrencyCode,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	AccountClass *int   `form:"class" binding:"omitempty,min=0"`
	ActiveOnly   bool   `form:"activeOnly"`
	Prefix       string `form:"prefix" binding:"omitempty,numeric"`
	Limit        int    `form:"limit,default=100" binding:"min=0,max=1000"`
	Offset       int    `form:"offset,default=0" binding:"min=0"`
}

// ToFilter converts the query parameters to a domain filter.
func (p ListAccountsParams) ToFilter() domain.AccountFilter {
	return domain.AccountFilter{
		AccountClass: p.AccountClass,
		ActiveOnly:   p.ActiveOnly,
		Prefix:       p.Prefix,
		Limit:        p.Limit,
		Offset:       p.Offset,
	}
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// NextAccountNumberResponse carries an auto-numbered account suggestion.
type NextAccountNumberResponse struct {
	Prefix        string `json:"prefix"`
	AccountNumber string `json:"accountNumber"`
}
