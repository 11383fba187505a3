package standards

import (
	"testing"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile_ByStandardAndCountry(t *testing.T) {
	r := DefaultRegistry()

	p, err := r.GetProfile("SYSCOHADA")
	require.NoError(t, err)
	assert.Equal(t, 10, p.AccountNumberLength)
	assert.Equal(t, 7, p.MaxAccountClasses)
	assert.True(t, p.RequireBalancedEntries)
	assert.False(t, p.RequireAnalyticalAccounts)

	sn, err := r.GetProfile("sn")
	require.NoError(t, err)
	assert.Equal(t, SYSCOHADA, sn.Standard)
	assert.Equal(t, "XOF", sn.CurrencyCode)
	assert.Equal(t, int32(0), sn.DecimalPlaces)
	assert.Equal(t, "18", sn.VATRate.String())

	fr, err := r.GetProfile("FR")
	require.NoError(t, err)
	assert.Equal(t, PCG, fr.Standard)
	assert.True(t, fr.RequireAnalyticalAccounts)
}

func TestGetProfile_Unknown(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.GetProfile("IFRS-XX")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownStandard)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResolveProfile(t *testing.T) {
	r := DefaultRegistry()

	p, err := r.ResolveProfile("SN", "")
	require.NoError(t, err)
	assert.Equal(t, "SN", p.CountryCode)

	// Country on a different standard falls back to the bare standard.
	p, err = r.ResolveProfile("SN", PCG)
	require.NoError(t, err)
	assert.Equal(t, PCG, p.Standard)
	assert.Empty(t, p.CountryCode)

	_, err = r.ResolveProfile("ZZ", "")
	assert.ErrorIs(t, err, apperrors.ErrUnknownStandard)
}

func TestValidateAccountNumber(t *testing.T) {
	r := DefaultRegistry()
	syscohada, _ := r.GetProfile(SYSCOHADA)
	pcg, _ := r.GetProfile(PCG)
	usgaap, _ := r.GetProfile(USGAAP)

	tests := []struct {
		name    string
		profile CountryAccountingProfile
		number  string
		want    bool
	}{
		{"syscohada valid", syscohada, "4111000000", true},
		{"syscohada class 8 rejected", syscohada, "8111000000", false},
		{"syscohada too short", syscohada, "411100", false},
		{"syscohada letters", syscohada, "41110000AB", false},
		{"pcg class 8 accepted", pcg, "8000000000", true},
		{"pcg leading zero", pcg, "0111000000", false},
		{"us gaap six digits", usgaap, "101000", true},
		{"us gaap leading zero", usgaap, "010000", true},
		{"us gaap too long", usgaap, "1010000", false},
		{"empty", syscohada, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ValidateAccountNumber(tt.profile, tt.number))
		})
	}
}

func TestValidateAccountClass(t *testing.T) {
	r := DefaultRegistry()
	syscohada, _ := r.GetProfile(SYSCOHADA)
	usgaap, _ := r.GetProfile(USGAAP)

	assert.True(t, r.ValidateAccountClass(syscohada, 1))
	assert.True(t, r.ValidateAccountClass(syscohada, 7))
	assert.False(t, r.ValidateAccountClass(syscohada, 0))
	assert.False(t, r.ValidateAccountClass(syscohada, 8))

	assert.True(t, r.ValidateAccountClass(usgaap, 0))
	assert.True(t, r.ValidateAccountClass(usgaap, 42))
	assert.False(t, r.ValidateAccountClass(usgaap, -1))
}

func TestCurrencyDecimals(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, int32(0), r.CurrencyDecimals("XOF"))
	assert.Equal(t, int32(0), r.CurrencyDecimals("xaf"))
	assert.Equal(t, int32(2), r.CurrencyDecimals("EUR"))
	assert.Equal(t, int32(2), r.CurrencyDecimals("GBP"))
}

func TestNewRegistry_Errors(t *testing.T) {
	_, err := NewRegistry([]ValidationRules{{Standard: "BAD", AccountNumberPattern: "("}}, nil)
	require.Error(t, err)

	_, err = NewRegistry(DefaultValidationRules, []CountryRules{{CountryCode: "XX", Standard: "NOPE", VATRate: "0", CorporateTaxRate: "0"}})
	assert.ErrorIs(t, err, apperrors.ErrUnknownStandard)

	_, err = NewRegistry(DefaultValidationRules, []CountryRules{{CountryCode: "XX", Standard: PCG, VATRate: "abc", CorporateTaxRate: "0"}})
	require.Error(t, err)
}

func TestListings(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{HGB, PCG, SYSCOHADA, USGAAP}, r.Standards())
	assert.Equal(t, []string{"CI", "CM", "DE", "FR", "SN", "US"}, r.Countries())
}

func TestClassFromNumber(t *testing.T) {
	r := DefaultRegistry()

	sn, err := r.GetProfile("SN")
	require.NoError(t, err)
	assert.Equal(t, 4, r.ClassFromNumber(sn, "4111000000"))

	// SKR class 0..9 is stored one higher.
	de, err := r.GetProfile("DE")
	require.NoError(t, err)
	assert.Equal(t, 1, r.ClassFromNumber(de, "0200"))
	assert.Equal(t, 10, r.ClassFromNumber(de, "9000"))
	assert.True(t, r.ValidateAccountClass(de, r.ClassFromNumber(de, "9000")))
	assert.False(t, r.ValidateAccountClass(de, 0))

	us, err := r.GetProfile("US")
	require.NoError(t, err)
	assert.Equal(t, 0, r.ClassFromNumber(us, "100000"))
	assert.True(t, r.ValidateAccountClass(us, 0))
}
