package standards

// DefaultValidationRules are the built-in standards.
var DefaultValidationRules = []ValidationRules{
	{
		Standard:                  SYSCOHADA,
		AccountNumberLength:       10,
		AccountNumberPattern:      `^[1-7]\d{9}$`,
		MaxAccountClasses:         7,
		RequireAccountClass:       true,
		RequireAnalyticalAccounts: false,
	},
	{
		Standard:                  PCG,
		AccountNumberLength:       10,
		AccountNumberPattern:      `^[1-8]\d{9}$`,
		MaxAccountClasses:         8,
		RequireAccountClass:       true,
		RequireAnalyticalAccounts: true,
	},
	{
		Standard:             USGAAP,
		AccountNumberLength:  6,
		AccountNumberPattern: `^\d{6}$`,
		MaxAccountClasses:    0,
		RequireAccountClass:  false,
	},
	{
		// SKR-style four digit accounts. SKR classes 0..9 are stored as 1..10.
		Standard:             HGB,
		AccountNumberLength:  4,
		AccountNumberPattern: `^\d{4}$`,
		MaxAccountClasses:    10,
		ClassOffset:          1,
		RequireAccountClass:  true,
	},
}

// DefaultCountryRules are the built-in countries.
var DefaultCountryRules = []CountryRules{
	{CountryCode: "SN", Standard: SYSCOHADA, CurrencyCode: "XOF", DecimalPlaces: 0, VATRate: "18", CorporateTaxRate: "30"},
	{CountryCode: "CI", Standard: SYSCOHADA, CurrencyCode: "XOF", DecimalPlaces: 0, VATRate: "18", CorporateTaxRate: "25"},
	{CountryCode: "CM", Standard: SYSCOHADA, CurrencyCode: "XAF", DecimalPlaces: 0, VATRate: "19.25", CorporateTaxRate: "33"},
	{CountryCode: "FR", Standard: PCG, CurrencyCode: "EUR", DecimalPlaces: 2, VATRate: "20", CorporateTaxRate: "25"},
	{CountryCode: "US", Standard: USGAAP, CurrencyCode: "USD", DecimalPlaces: 2, VATRate: "0", CorporateTaxRate: "21"},
	{CountryCode: "DE", Standard: HGB, CurrencyCode: "EUR", DecimalPlaces: 2, VATRate: "19", CorporateTaxRate: "15"},
}

// DefaultRegistry builds the registry from the built-in tables.
// The tables are static, so a failure here is a programming error.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultValidationRules, DefaultCountryRules)
	if err != nil {
		panic("standards: invalid built-in rules: " + err.Error())
	}
	return r
}
