package entity

import "github.com/shopspring/decimal"

// LineItem is one priced row of a draft: a medicine sold, a product
// received, a stock unit issued, a debited/credited product.
// DiscountAmount and DiscountPercent may both be set; the totals calculator
// gives the explicit amount precedence.
type LineItem struct {
	LocalID         string // draft-local identifier, not persisted
	Name            string
	BatchNumber     string
	Unit            string // e.g. "pcs", "strip", "bottle"
	Remark          string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxPercent      decimal.Decimal
}
