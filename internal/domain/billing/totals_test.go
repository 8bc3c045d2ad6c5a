package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kritagya/pharmacare-api/internal/domain/billing"
	"github.com/kritagya/pharmacare-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// TestLineDiscount_AmountWinsOverPercent: a line with both an explicit
// discount amount and a percent must use the amount, never both.
func TestLineDiscount_AmountWinsOverPercent(t *testing.T) {
	li := entity.LineItem{
		Name:            "Amoxicillin 500mg",
		Quantity:        dec("2"),
		UnitPrice:       dec("100"),
		DiscountAmount:  dec("50"),
		DiscountPercent: dec("10"),
	}

	assert.True(t, dec("50").Equal(billing.LineDiscount(li)),
		"explicit amount must win over percent, got %s", billing.LineDiscount(li))
}

// TestCalculate_TaxBeforeDiscount: tax applies to the gross line subtotal,
// not the discounted one.
func TestCalculate_TaxBeforeDiscount(t *testing.T) {
	lines := []entity.LineItem{{
		Name:            "Insulin pen",
		Quantity:        dec("1"),
		UnitPrice:       dec("1000"),
		DiscountPercent: dec("10"),
		TaxPercent:      dec("18"),
	}}

	totals := billing.Calculate(lines, nil)

	assert.True(t, dec("1000").Equal(totals.Subtotal), "subtotal = %s", totals.Subtotal)
	assert.True(t, dec("100").Equal(totals.TotalDiscount), "discount = %s", totals.TotalDiscount)
	assert.True(t, dec("180").Equal(totals.TotalTax), "tax = %s", totals.TotalTax)
	assert.True(t, dec("1080").Equal(totals.GrandTotal), "grand total = %s", totals.GrandTotal)
}

// TestCalculate_OutstandingNotClamped: overpayment yields a negative
// outstanding balance, shown as-is.
func TestCalculate_OutstandingNotClamped(t *testing.T) {
	lines := []entity.LineItem{{
		Name:      "Thermometer",
		Quantity:  dec("1"),
		UnitPrice: dec("500"),
	}}
	payments := []entity.PaymentEntry{
		{Amount: dec("400"), Method: entity.PaymentMethodCash, Status: entity.PaymentStatusPaid},
		{Amount: dec("300"), Method: entity.PaymentMethodUPI, Status: entity.PaymentStatusPaid},
	}

	totals := billing.Calculate(lines, payments)

	assert.True(t, dec("500").Equal(totals.GrandTotal))
	assert.True(t, dec("700").Equal(totals.AmountPaid))
	assert.True(t, dec("-200").Equal(totals.Outstanding),
		"outstanding must stay -200, got %s", totals.Outstanding)
}

// TestCalculate_NegativeGrandTotalSurfaces: an oversized discount is allowed
// to drive the grand total below zero so the user sees the data-entry error.
func TestCalculate_NegativeGrandTotalSurfaces(t *testing.T) {
	lines := []entity.LineItem{{
		Name:           "Gauze roll",
		Quantity:       dec("1"),
		UnitPrice:      dec("20"),
		DiscountAmount: dec("35"),
	}}

	totals := billing.Calculate(lines, nil)
	assert.True(t, dec("-15").Equal(totals.GrandTotal))
}

// TestCalculate_Idempotent: two calls over the same unchanged input must
// yield identical results (pure function, no hidden mutation).
func TestCalculate_Idempotent(t *testing.T) {
	lines := []entity.LineItem{
		{Name: "Paracetamol", Quantity: dec("10"), UnitPrice: dec("5"), TaxPercent: dec("12")},
		{Name: "Syrup", Quantity: dec("1"), UnitPrice: dec("120"), DiscountAmount: dec("20"), TaxPercent: dec("12")},
	}
	payments := []entity.PaymentEntry{{Amount: dec("200"), Method: entity.PaymentMethodCash}}

	t1 := billing.Calculate(lines, payments)
	t2 := billing.Calculate(lines, payments)

	assert.True(t, t1.Subtotal.Equal(t2.Subtotal))
	assert.True(t, t1.TotalDiscount.Equal(t2.TotalDiscount))
	assert.True(t, t1.TotalTax.Equal(t2.TotalTax))
	assert.True(t, t1.GrandTotal.Equal(t2.GrandTotal))
	assert.True(t, t1.Outstanding.Equal(t2.Outstanding))
}

// TestCalculate_BillScenario: the reference bill — two lines and a cash
// payment — must come out to the exact decimal aggregates.
func TestCalculate_BillScenario(t *testing.T) {
	lines := []entity.LineItem{
		{Name: "Paracetamol", Quantity: dec("10"), UnitPrice: dec("5"), TaxPercent: dec("12")},
		{Name: "Syrup", Quantity: dec("1"), UnitPrice: dec("120"), DiscountAmount: dec("20"), TaxPercent: dec("12")},
	}
	payments := []entity.PaymentEntry{{Amount: dec("200"), Method: entity.PaymentMethodCash, Status: entity.PaymentStatusPaid}}

	totals := billing.Calculate(lines, payments)

	assert.True(t, dec("170").Equal(totals.Subtotal), "subtotal = %s", totals.Subtotal)
	assert.True(t, dec("20").Equal(totals.TotalDiscount), "discount = %s", totals.TotalDiscount)
	assert.True(t, dec("20.4").Equal(totals.TotalTax), "tax = %s", totals.TotalTax)
	assert.True(t, dec("170.4").Equal(totals.GrandTotal), "grand total = %s", totals.GrandTotal)
	assert.True(t, dec("-29.6").Equal(totals.Outstanding), "outstanding = %s", totals.Outstanding)
}

// TestCalculate_Empty: an empty draft has all-zero totals.
func TestCalculate_Empty(t *testing.T) {
	totals := billing.Calculate(nil, nil)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
	assert.True(t, totals.Outstanding.IsZero())
}
