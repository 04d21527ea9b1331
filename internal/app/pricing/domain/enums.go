package domain

import (
	"fmt"
	"strings"
)

// RateType classifies a rate definition.
type RateType string

const (
	RateTypeStandard    RateType = "standard"
	RateTypeSeasonal    RateType = "seasonal"
	RateTypePromotional RateType = "promotional"
	RateTypeEvent       RateType = "event"
	RateTypePackage     RateType = "package"
)

// ParseRateType validates a rate type string.
func ParseRateType(value string) (RateType, error) {
	switch rt := RateType(strings.ToLower(strings.TrimSpace(value))); rt {
	case RateTypeStandard, RateTypeSeasonal, RateTypePromotional, RateTypeEvent, RateTypePackage:
		return rt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRateType, value)
	}
}

// ModifierType is how a rate modifier's value is interpreted.
type ModifierType string

const (
	ModifierPercentage ModifierType = "percentage"
	ModifierFixed      ModifierType = "fixed"
)

// ParseModifierType validates a modifier type string.
func ParseModifierType(value string) (ModifierType, error) {
	switch mt := ModifierType(strings.ToLower(strings.TrimSpace(value))); mt {
	case ModifierPercentage, ModifierFixed:
		return mt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidModifierType, value)
	}
}

// Currency is an ISO 4217 code from the supported set.
type Currency string

// DefaultCurrency is used for zero-price breakdowns when no rate matched.
const DefaultCurrency Currency = "USD"

var supportedCurrencies = map[Currency]struct{}{
	"USD": {},
	"EUR": {},
	"GBP": {},
	"LBP": {},
	"AED": {},
	"SAR": {},
}

// ParseCurrency validates a currency code against the supported set.
func ParseCurrency(value string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := supportedCurrencies[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, value)
	}
	return c, nil
}
