package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRate is the sales tax applied to every quote and invoice (11.5%)
var TaxRate = decimal.RequireFromString("0.115")

var taxMultiplier = decimal.NewFromInt(1).Add(TaxRate)

// Totals holds the derived amounts for a single priced line.
// Values are exact; round with Rounded() before display.
type Totals struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	BalanceDue decimal.Decimal
}

// ComputeTotals derives subtotal, tax, total and the balance left after a deposit.
// The balance never goes below zero.
func ComputeTotals(quantity, unitPrice, deposit decimal.Decimal) Totals {
	subtotal := quantity.Mul(unitPrice)
	tax := subtotal.Mul(TaxRate)
	total := subtotal.Add(tax)

	balance := total.Sub(deposit)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      total,
		BalanceDue: balance,
	}
}

// ComputeTotalsFromInput is ComputeTotals over raw form input
func ComputeTotalsFromInput(quantity, unitPrice, deposit string) Totals {
	return ComputeTotals(ParseAmount(quantity), ParseAmount(unitPrice), ParseAmount(deposit))
}

// Rounded returns a copy with every amount rounded to cents
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:   RoundCents(t.Subtotal),
		Tax:        RoundCents(t.Tax),
		Total:      RoundCents(t.Total),
		BalanceDue: RoundCents(t.BalanceDue),
	}
}

// ParseAmount parses user input as a non-negative amount.
// Empty, malformed or negative input yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseQuantity parses a whole-number quantity, zero on failure
func ParseQuantity(s string) int {
	d := ParseAmount(s)
	return int(d.IntPart())
}

// RoundCents rounds half away from zero to two places
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// SubtotalFromTotal strips tax from a tax-inclusive amount
func SubtotalFromTotal(total decimal.Decimal) decimal.Decimal {
	return total.DivRound(taxMultiplier, 8)
}

// TaxIncluded returns the tax portion of a tax-inclusive amount
func TaxIncluded(total decimal.Decimal) decimal.Decimal {
	return total.Sub(SubtotalFromTotal(total))
}
