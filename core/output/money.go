// Package output renders estimates for people and machines.
// Money is always shown through FormatCost so hidden pricing reads "N/A", never $0.
package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"infra-tco/core/types"
)

// NotAvailable is shown in place of hidden or missing amounts
const NotAvailable = "N/A"

type currencyFormat struct {
	tag    language.Tag
	symbol string
	suffix bool
}

var currencyFormats = map[types.Currency]currencyFormat{
	types.CurrencyUSD: {tag: language.AmericanEnglish, symbol: "$"},
	types.CurrencyGBP: {tag: language.BritishEnglish, symbol: "£"},
	types.CurrencyEUR: {tag: language.German, symbol: "€", suffix: true},
}

// FormatCost renders amount in the currency's locale with no decimals.
// A nil amount renders as "N/A".
func FormatCost(amount *decimal.Decimal, currency types.Currency) string {
	if amount == nil {
		return NotAvailable
	}
	f, ok := currencyFormats[currency]
	if !ok {
		f = currencyFormat{tag: language.AmericanEnglish, symbol: string(currency) + " "}
	}

	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	digits := message.NewPrinter(f.tag).Sprintf("%d", rounded.IntPart())

	if f.suffix {
		return sign + digits + " " + f.symbol
	}
	return sign + f.symbol + digits
}

// FormatPercent renders a percentage with one decimal, or "N/A" for nil
func FormatPercent(p *decimal.Decimal) string {
	if p == nil {
		return NotAvailable
	}
	return p.StringFixed(1) + "%"
}
