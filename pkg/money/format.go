package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency used on receipts and notifications
const Currency = "KES"

var printer = message.NewPrinter(language.English)

// Format renders an amount with thousands separators and two decimals, e.g. "1,250.00"
func Format(d decimal.Decimal) string {
	return printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatKES prefixes Format with the currency code, e.g. "KES 1,250.00"
func FormatKES(d decimal.Decimal) string {
	return Currency + " " + Format(d)
}
