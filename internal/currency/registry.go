// Package currency validates ISO-4217 currency codes and supplies
// deterministic conversion rates for amount normalization.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency code")
	ErrRateUnavailable = errors.New("no conversion rate available")
)

// knownCurrencies is the set of accepted ISO-4217 currency codes.
var knownCurrencies = map[string]struct{}{
	"AED": {}, "AUD": {}, "BGN": {}, "BRL": {}, "CAD": {}, "CHF": {},
	"CNY": {}, "CZK": {}, "DKK": {}, "EUR": {}, "GBP": {}, "HKD": {},
	"HUF": {}, "IDR": {}, "ILS": {}, "INR": {}, "ISK": {}, "JPY": {},
	"KRW": {}, "MXN": {}, "MYR": {}, "NOK": {}, "NZD": {}, "PHP": {},
	"PLN": {}, "RON": {}, "RSD": {}, "RUB": {}, "SEK": {}, "SGD": {},
	"THB": {}, "TRY": {}, "UAH": {}, "USD": {}, "ZAR": {},
}

// defaultUSDRates maps a currency code to the number of units per 1 USD.
// Rates are fixed at load time; the pipeline only promises "rate at write
// time", not historical accuracy.
var defaultUSDRates = map[string]string{
	"USD": "1",
	"EUR": "0.92",
	"GBP": "0.79",
	"CHF": "0.88",
	"JPY": "149.50",
	"CAD": "1.36",
	"AUD": "1.52",
	"NZD": "1.64",
	"SEK": "10.45",
	"NOK": "10.62",
	"DKK": "6.86",
	"PLN": "3.98",
	"CZK": "23.10",
	"HUF": "355.20",
	"RON": "4.57",
	"BGN": "1.80",
	"TRY": "32.40",
	"CNY": "7.24",
	"HKD": "7.82",
	"SGD": "1.34",
	"KRW": "1337.00",
	"INR": "83.30",
	"BRL": "5.06",
	"MXN": "17.05",
	"ZAR": "18.70",
	"ILS": "3.70",
	"AED": "3.67",
	"RUB": "92.50",
	"UAH": "39.40",
	"THB": "36.10",
	"MYR": "4.72",
	"IDR": "15950",
	"PHP": "57.30",
	"ISK": "138.90",
	"RSD": "107.80",
}

// Registry validates currency codes and resolves conversion rates.
// Lookups are deterministic for the lifetime of the registry.
type Registry struct {
	usdRates map[string]decimal.Decimal
}

// NewRegistry creates a registry with the built-in rate table.
func NewRegistry() *Registry {
	rates := make(map[string]decimal.Decimal, len(defaultUSDRates))
	for code, rate := range defaultUSDRates {
		d, err := decimal.NewFromString(rate)
		if err != nil {
			continue
		}
		rates[code] = d
	}
	return &Registry{usdRates: rates}
}

// NewRegistryWithRates creates a registry with a custom per-USD rate table.
// Useful for tests that need exact, hand-picked rates.
func NewRegistryWithRates(usdRates map[string]decimal.Decimal) *Registry {
	rates := make(map[string]decimal.Decimal, len(usdRates))
	for code, rate := range usdRates {
		rates[strings.ToUpper(code)] = rate
	}
	return &Registry{usdRates: rates}
}

// Validate reports whether code is a known ISO-4217 currency code.
func (r *Registry) Validate(code string) bool {
	_, ok := knownCurrencies[code]
	return ok
}

// Rate returns the multiplier converting an amount in `from` into `to`.
// Both codes must be valid; an unknown code fails with ErrUnknownCurrency.
func (r *Registry) Rate(from, to string) (decimal.Decimal, error) {
	if !r.Validate(from) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, from)
	}
	if !r.Validate(to) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, to)
	}

	if from == to {
		return decimal.NewFromInt(1), nil
	}

	fromRate, ok := r.usdRates[from]
	if !ok || fromRate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrRateUnavailable, from)
	}
	toRate, ok := r.usdRates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrRateUnavailable, to)
	}

	// units of `to` per unit of `from`, via USD
	return toRate.Div(fromRate), nil
}
