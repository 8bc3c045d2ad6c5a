package billing

import (
	"github.com/shopspring/decimal"

	"github.com/kritagya/pharmacare-api/internal/domain/entity"
)

// Totals are the monetary aggregates derived from a draft's current
// contents. Pure derivation: same lines and payments always give the same
// Totals, nothing is cached. Values are exact decimals; two-decimal display
// rounding is a presentation concern.
type Totals struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	GrandTotal    decimal.Decimal
	AmountPaid    decimal.Decimal
	Outstanding   decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// LineSubtotal is quantity × unit price.
func LineSubtotal(li entity.LineItem) decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// LineDiscount resolves the line's discount. An explicit amount wins over a
// percent so a line is never discounted twice; with neither set the
// discount is zero.
func LineDiscount(li entity.LineItem) decimal.Decimal {
	if !li.DiscountAmount.IsZero() {
		return li.DiscountAmount
	}
	if !li.DiscountPercent.IsZero() {
		return LineSubtotal(li).Mul(li.DiscountPercent).Div(oneHundred)
	}
	return decimal.Zero
}

// LineTax applies the tax percent to the pre-discount line subtotal. GST is
// charged on the gross price, before any discount.
func LineTax(li entity.LineItem) decimal.Decimal {
	if li.TaxPercent.IsZero() {
		return decimal.Zero
	}
	return LineSubtotal(li).Mul(li.TaxPercent).Div(oneHundred)
}

// Calculate derives the monetary aggregates for a set of line items and
// payment entries.
//
// grandTotal = subtotal − totalDiscount + totalTax, never clamped: a
// negative total surfaces a data-entry error instead of hiding it.
// outstanding = grandTotal − amountPaid, negative on overpayment.
func Calculate(lines []entity.LineItem, payments []entity.PaymentEntry) Totals {
	var t Totals
	t.Subtotal = decimal.Zero
	t.TotalDiscount = decimal.Zero
	t.TotalTax = decimal.Zero
	t.AmountPaid = decimal.Zero

	for _, li := range lines {
		t.Subtotal = t.Subtotal.Add(LineSubtotal(li))
		t.TotalDiscount = t.TotalDiscount.Add(LineDiscount(li))
		t.TotalTax = t.TotalTax.Add(LineTax(li))
	}
	t.GrandTotal = t.Subtotal.Sub(t.TotalDiscount).Add(t.TotalTax)

	for _, p := range payments {
		t.AmountPaid = t.AmountPaid.Add(p.Amount)
	}
	t.Outstanding = t.GrandTotal.Sub(t.AmountPaid)

	return t
}
