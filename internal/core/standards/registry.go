// Package standards holds the per-standard and per-country accounting rules
// the ledger validates against. A Registry is built once and only read afterwards.
package standards

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Standard codes known to the default registry.
const (
	SYSCOHADA = "SYSCOHADA"
	PCG       = "PCG"
	USGAAP    = "US_GAAP"
	HGB       = "HGB"
)

// CountryAccountingProfile is the rule set applied to one company.
// Standard-level profiles leave CountryCode empty.
type CountryAccountingProfile struct {
	Standard                  string
	CountryCode               string
	CurrencyCode              string
	AccountNumberLength       int
	AccountNumberPattern      *regexp.Regexp
	MaxAccountClasses         int
	ClassOffset               int // added to the leading digit to derive the class
	RequireAccountClass       bool
	RequireBalancedEntries    bool
	RequireAnalyticalAccounts bool
	DecimalPlaces             int32
	// Consumed by tax modules, carried here so one lookup serves everyone.
	VATRate          decimal.Decimal
	CorporateTaxRate decimal.Decimal
}

// ValidationRules is the standard-level part of a profile.
type ValidationRules struct {
	Standard                  string
	AccountNumberLength       int
	AccountNumberPattern      string
	MaxAccountClasses         int
	ClassOffset               int
	RequireAccountClass       bool
	RequireAnalyticalAccounts bool
}

// CountryRules binds a country to a standard and its fiscal parameters.
type CountryRules struct {
	CountryCode      string
	Standard         string
	CurrencyCode     string
	DecimalPlaces    int32
	VATRate          string
	CorporateTaxRate string
}

// Registry maps standard and country codes to profiles.
type Registry struct {
	byStandard map[string]CountryAccountingProfile
	byCountry  map[string]CountryAccountingProfile
	currencies map[string]int32
}

// NewRegistry compiles the given rules. Countries must reference a known standard.
func NewRegistry(rules []ValidationRules, countries []CountryRules) (*Registry, error) {
	r := &Registry{
		byStandard: make(map[string]CountryAccountingProfile, len(rules)),
		byCountry:  make(map[string]CountryAccountingProfile, len(countries)),
		currencies: make(map[string]int32),
	}

	for _, vr := range rules {
		code := strings.ToUpper(vr.Standard)
		pattern, err := regexp.Compile(vr.AccountNumberPattern)
		if err != nil {
			return nil, fmt.Errorf("standard %s: invalid account number pattern %q: %w", code, vr.AccountNumberPattern, err)
		}
		r.byStandard[code] = CountryAccountingProfile{
			Standard:                  code,
			AccountNumberLength:       vr.AccountNumberLength,
			AccountNumberPattern:      pattern,
			MaxAccountClasses:         vr.MaxAccountClasses,
			ClassOffset:               vr.ClassOffset,
			RequireAccountClass:       vr.RequireAccountClass,
			RequireBalancedEntries:    true,
			RequireAnalyticalAccounts: vr.RequireAnalyticalAccounts,
			DecimalPlaces:             2,
		}
	}

	for _, cr := range countries {
		country := strings.ToUpper(cr.CountryCode)
		base, ok := r.byStandard[strings.ToUpper(cr.Standard)]
		if !ok {
			return nil, fmt.Errorf("country %s: %w: %s", country, apperrors.ErrUnknownStandard, cr.Standard)
		}
		vat, err := decimal.NewFromString(cr.VATRate)
		if err != nil {
			return nil, fmt.Errorf("country %s: invalid VAT rate %q: %w", country, cr.VATRate, err)
		}
		corporate, err := decimal.NewFromString(cr.CorporateTaxRate)
		if err != nil {
			return nil, fmt.Errorf("country %s: invalid corporate tax rate %q: %w", country, cr.CorporateTaxRate, err)
		}
		profile := base
		profile.CountryCode = country
		profile.CurrencyCode = strings.ToUpper(cr.CurrencyCode)
		profile.DecimalPlaces = cr.DecimalPlaces
		profile.VATRate = vat
		profile.CorporateTaxRate = corporate
		r.byCountry[country] = profile

		if places, seen := r.currencies[profile.CurrencyCode]; !seen || cr.DecimalPlaces < places {
			r.currencies[profile.CurrencyCode] = cr.DecimalPlaces
		}
	}

	return r, nil
}

// GetProfile resolves a standard code first, then a country code.
func (r *Registry) GetProfile(standardOrCountry string) (CountryAccountingProfile, error) {
	code := strings.ToUpper(strings.TrimSpace(standardOrCountry))
	if p, ok := r.byStandard[code]; ok {
		return p, nil
	}
	if p, ok := r.byCountry[code]; ok {
		return p, nil
	}
	return CountryAccountingProfile{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownStandard, standardOrCountry)
}

// ResolveProfile picks the profile for a company: the country profile when the
// country uses the requested standard (or none is requested), else the bare standard.
func (r *Registry) ResolveProfile(countryCode, standard string) (CountryAccountingProfile, error) {
	country := strings.ToUpper(strings.TrimSpace(countryCode))
	std := strings.ToUpper(strings.TrimSpace(standard))

	if p, ok := r.byCountry[country]; ok && (std == "" || p.Standard == std) {
		return p, nil
	}
	if std != "" {
		return r.GetProfile(std)
	}
	return CountryAccountingProfile{}, fmt.Errorf("%w: no profile for country %q", apperrors.ErrUnknownStandard, countryCode)
}

// ValidateAccountNumber applies the profile's length and pattern.
func (r *Registry) ValidateAccountNumber(profile CountryAccountingProfile, accountNumber string) bool {
	if profile.AccountNumberLength > 0 && len(accountNumber) != profile.AccountNumberLength {
		return false
	}
	if profile.AccountNumberPattern == nil {
		return accountNumber != ""
	}
	return profile.AccountNumberPattern.MatchString(accountNumber)
}

// ValidateAccountClass checks 1 <= classNumber <= MaxAccountClasses.
// Standards that do not organise accounts in classes accept any class >= 0.
func (r *Registry) ValidateAccountClass(profile CountryAccountingProfile, classNumber int) bool {
	if !profile.RequireAccountClass {
		return classNumber >= 0
	}
	return classNumber >= 1 && classNumber <= profile.MaxAccountClasses
}

// ClassFromNumber derives the account class from the leading digit of a
// well-formed account number. It returns 0 for standards without classes.
func (r *Registry) ClassFromNumber(profile CountryAccountingProfile, accountNumber string) int {
	if !profile.RequireAccountClass || accountNumber == "" || accountNumber[0] < '0' || accountNumber[0] > '9' {
		return 0
	}
	return int(accountNumber[0]-'0') + profile.ClassOffset
}

// CurrencyDecimals returns the number of fractional digits allowed for a currency.
// Currencies not bound to any country default to 2.
func (r *Registry) CurrencyDecimals(currencyCode string) int32 {
	if places, ok := r.currencies[strings.ToUpper(currencyCode)]; ok {
		return places
	}
	return 2
}

// Standards lists the registered standard codes in sorted order.
func (r *Registry) Standards() []string {
	codes := make([]string, 0, len(r.byStandard))
	for code := range r.byStandard {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Countries lists the registered country codes in sorted order.
func (r *Registry) Countries() []string {
	codes := make([]string, 0, len(r.byCountry))
	for code := range r.byCountry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
