package draft

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sangkips/salay-pos/pkg/money"
)

// Line is a parsed line item. Values are kept exactly as typed; rounding
// happens only when an amount is displayed.
type Line struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Parse coerces the typed text of a line item into a Line.
func (li LineItem) Parse() Line {
	return Line{
		Description: strings.TrimSpace(li.Description),
		Quantity:    money.Parse(li.Quantity),
		UnitPrice:   money.Parse(li.UnitPrice),
	}
}

// Included reports whether a line counts toward the total and the payload:
// it needs a description, a positive quantity and a non-negative price.
func (l Line) Included() bool {
	return strings.TrimSpace(l.Description) != "" &&
		l.Quantity.IsPositive() &&
		!l.UnitPrice.IsNegative()
}

// ComputeLineTotal returns quantity × unit price, whether or not the line is
// included. Used for the per-row preview.
func ComputeLineTotal(l Line) decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Totals is the derived money state of a transaction.
type Totals struct {
	TotalAmount decimal.Decimal
	AmountPaid  decimal.Decimal
	Balance     decimal.Decimal
}

// IsPaid reports whether the balance is settled.
func (t Totals) IsPaid() bool {
	return money.IsSettled(t.Balance)
}

// Accent reports whether the balance should be highlighted as settled: the
// job has a positive total and nothing is owed.
func (t Totals) Accent() bool {
	return t.TotalAmount.IsPositive() && !t.Balance.IsPositive()
}

// ComputeTotals sums the included lines and derives the balance. The result
// does not depend on line order and is recomputed in full on every call.
func ComputeTotals(lines []Line, amountPaid decimal.Decimal) Totals {
	total := decimal.Zero
	for _, l := range lines {
		if !l.Included() {
			continue
		}
		total = total.Add(ComputeLineTotal(l))
	}
	return Totals{
		TotalAmount: total,
		AmountPaid:  amountPaid,
		Balance:     total.Sub(amountPaid),
	}
}

// IncludedLines filters lines down to the ones that count.
func IncludedLines(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Included() {
			out = append(out, l)
		}
	}
	return out
}
