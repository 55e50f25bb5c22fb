package rate

import (
	"math"
	"testing"

	"fxconvert/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestCurrencyValidator_ValidatePair_Errors(t *testing.T) {
	validator := NewValidator(map[string]struct{}{"USD": {}, "EUR": {}})

	require.Equal(t, ErrSourceRequired, validator.ValidatePair("", "EUR"))
	require.Equal(t, ErrTargetRequired, validator.ValidatePair("USD", ""))
	require.Equal(t, ErrInvalidCode, validator.ValidatePair("US", "EUR"))
	require.Equal(t, ErrInvalidCode, validator.ValidatePair("USD", "E1R"))
	require.Equal(t, ErrSourceUnsupported, validator.ValidatePair("ABC", "EUR"))
	require.Equal(t, ErrTargetUnsupported, validator.ValidatePair("USD", "ZZZ"))
}

func TestCurrencyValidator_ValidatePair_Success(t *testing.T) {
	validator := NewValidator(map[string]struct{}{"USD": {}, "EUR": {}})
	require.NoError(t, validator.ValidatePair("USD", "EUR"))
	require.NoError(t, validator.ValidatePair("USD", "USD"))
}

func TestCurrencyValidator_EmptySetAcceptsAnyWellFormedCode(t *testing.T) {
	validator := NewValidator(nil)

	require.NoError(t, validator.ValidatePair("ABC", "XYZ"))
	require.NoError(t, validator.ValidateCode("JPY"))
	require.Equal(t, ErrInvalidCode, validator.ValidateCode("YEN1"))
	require.Equal(t, ErrSourceRequired, validator.ValidateCode(""))
	require.Empty(t, validator.SupportedCodes())
}

func TestCurrencyValidator_ValidateCode_Unsupported(t *testing.T) {
	validator := NewValidator(map[string]struct{}{"USD": {}})
	require.Equal(t, ErrSourceUnsupported, validator.ValidateCode("EUR"))
}

func TestNewValidator_ClonesAndNormalizesMap(t *testing.T) {
	sourceCurrencies := map[string]struct{}{"usd": {}, " EUR ": {}}
	validator := NewValidator(sourceCurrencies)

	// mutate source after creation
	delete(sourceCurrencies, "usd")

	// validator should still allow USD (clone must not be affected)
	require.NoError(t, validator.ValidatePair("USD", "EUR"))
}

func TestCurrencyValidator_SupportedCodes(t *testing.T) {
	validator := NewValidator(map[string]struct{}{"USD": {}, "EUR": {}, "JPY": {}})

	got := validator.SupportedCodes()

	require.Equal(t, []string{"EUR", "JPY", "USD"}, got)

	// ensure caller modifications do not affect validator internal state
	got[0] = "XXX"
	require.ElementsMatch(t, []string{"USD", "EUR", "JPY"}, validator.SupportedCodes())
}

func TestNormalizeCode(t *testing.T) {
	require.Equal(t, "USD", NormalizeCode(" usd "))
	require.Equal(t, "EUR", NormalizeCode("EUR"))
	require.Equal(t, "", NormalizeCode("   "))
}

func TestValidateAmount(t *testing.T) {
	require.NoError(t, ValidateAmount(0.01))
	require.NoError(t, ValidateAmount(1e9))
	require.ErrorIs(t, ValidateAmount(0), ErrInvalidAmount)
	require.ErrorIs(t, ValidateAmount(-3), ErrInvalidAmount)
	require.ErrorIs(t, ValidateAmount(math.NaN()), ErrInvalidAmount)
	require.ErrorIs(t, ValidateAmount(math.Inf(-1)), ErrInvalidAmount)
}

func TestParsePair(t *testing.T) {
	pair, err := ParsePair(" usd / eur")
	require.NoError(t, err)
	require.Equal(t, domain.RatePair{Source: "USD", Target: "EUR"}, pair)

	for _, raw := range []string{"USDEUR", "US/EUR", "USD/", "/EUR", ""} {
		_, err = ParsePair(raw)
		require.ErrorIs(t, err, ErrInvalidPairFormat, raw)
	}
}
