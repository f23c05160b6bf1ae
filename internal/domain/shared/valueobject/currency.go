package valueobject

import (
	"strings"

	"golang.org/x/text/currency"
)

// Currency is an ISO 4217 currency code. Amounts tagged with a currency are
// never converted; the code is carried alongside for display.
type Currency string

// DefaultCurrency is the currency orders are priced in unless stated otherwise
const DefaultCurrency Currency = "CLP"

// ParseCurrency validates and normalizes an ISO 4217 code.
// An empty code yields DefaultCurrency.
func ParseCurrency(code string) (Currency, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return DefaultCurrency, nil
	}
	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return "", err
	}
	return Currency(unit.String()), nil
}

// String returns the currency code
func (c Currency) String() string {
	return string(c)
}

// Unit returns the x/text currency unit for formatting
func (c Currency) Unit() (currency.Unit, bool) {
	unit, err := currency.ParseISO(string(c))
	if err != nil {
		return currency.Unit{}, false
	}
	return unit, true
}
