package rate

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"fxconvert/internal/domain"
)

var (
	ErrSourceRequired    = errors.New("source currency is required")
	ErrTargetRequired    = errors.New("target currency is required")
	ErrInvalidCode       = errors.New("currency code must be three letters")
	ErrSourceUnsupported = errors.New("source currency not supported")
	ErrTargetUnsupported = errors.New("target currency not supported")
	ErrInvalidAmount     = errors.New("amount must be a positive number")
	ErrInvalidPairFormat = errors.New("pair must look like SOURCE/TARGET")
)

// CurrencyValidator checks codes before they reach the service. With an empty
// supported set any well-formed code is accepted.
type CurrencyValidator struct {
	supportedCodesSet map[string]struct{} // read only copy
	supportedCodesLst []string            // read only copy
}

func (v *CurrencyValidator) ValidateCode(code string) error {
	if code == "" {
		return ErrSourceRequired
	}
	if !wellFormed(code) {
		return ErrInvalidCode
	}
	if !v.supported(code) {
		return ErrSourceUnsupported
	}
	return nil
}

func (v *CurrencyValidator) ValidatePair(source, target string) error {
	if source == "" {
		return ErrSourceRequired
	}
	if target == "" {
		return ErrTargetRequired
	}
	if !wellFormed(source) || !wellFormed(target) {
		return ErrInvalidCode
	}
	if !v.supported(source) {
		return ErrSourceUnsupported
	}
	if !v.supported(target) {
		return ErrTargetUnsupported
	}
	return nil
}

func (v *CurrencyValidator) SupportedCodes() []string {
	return slices.Clone(v.supportedCodesLst)
}

func (v *CurrencyValidator) supported(code string) bool {
	if len(v.supportedCodesSet) == 0 {
		return true
	}
	_, ok := v.supportedCodesSet[code]
	return ok
}

func wellFormed(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// NormalizeCode is applied by every command surface; the cache itself is case sensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ParsePair reads "usd/eur" style input into a normalized pair.
func ParsePair(raw string) (domain.RatePair, error) {
	source, target, ok := strings.Cut(raw, "/")
	if !ok {
		return domain.RatePair{}, fmt.Errorf("%w: %q", ErrInvalidPairFormat, raw)
	}
	pair := domain.RatePair{Source: NormalizeCode(source), Target: NormalizeCode(target)}
	if !wellFormed(pair.Source) || !wellFormed(pair.Target) {
		return domain.RatePair{}, fmt.Errorf("%w: %q", ErrInvalidPairFormat, raw)
	}
	return pair, nil
}

func NewValidator(supportedCurrencies map[string]struct{}) *CurrencyValidator {
	codesSet := make(map[string]struct{}, len(supportedCurrencies))
	for code := range maps.Keys(supportedCurrencies) {
		codesSet[NormalizeCode(code)] = struct{}{}
	}
	codesLst := slices.Collect(maps.Keys(codesSet))
	slices.Sort(codesLst)

	return &CurrencyValidator{
		supportedCodesSet: codesSet,
		supportedCodesLst: codesLst,
	}
}
