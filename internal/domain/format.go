package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount as dollars with grouping, e.g. "$1,234.56"
func FormatMoney(d decimal.Decimal) string {
	d = RoundCents(d)
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg())
	}
	return moneyPrinter.Sprintf("$%.2f", d.InexactFloat64())
}
