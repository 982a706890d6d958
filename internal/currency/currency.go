// Package currency lists the display currencies a user can pick. Amounts are
// never converted; the currency only changes how they are rendered.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Default is used until the user selects another currency.
var Default = Currency{Code: "USD", Symbol: "$", Name: "US Dollar"}

var supported = []Currency{
	Default,
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
}

// Supported returns the selectable currencies.
func Supported() []Currency {
	out := make([]Currency, len(supported))
	copy(out, supported)
	return out
}

// Lookup finds a supported currency by ISO code.
func Lookup(code string) (Currency, error) {
	for _, c := range supported {
		if c.Code == code {
			return c, nil
		}
	}
	return Currency{}, fmt.Errorf("unsupported currency %q", code)
}

// Format renders amount with the currency symbol and two decimals, e.g. "$12.50".
func Format(amount decimal.Decimal, c Currency) string {
	return c.Symbol + amount.StringFixed(2)
}
