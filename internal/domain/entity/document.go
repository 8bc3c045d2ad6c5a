package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kritagya/pharmacare-api/internal/domain/document"
)

// Document is the persisted header of a committed draft. The primary header
// group's fields are flattened onto it; lines and payments live in child
// rows tagged with the same document ID. Documents are immutable after
// commit (view/print only).
type Document struct {
	ID            string
	Kind          document.Kind
	Number        string // human-readable, e.g. BILL-1724999999123
	PartyName     string
	PartyPhone    string
	PartyEmail    string
	PartyAddress  string
	Reference     string
	ReferenceDate time.Time
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	GrandTotal    decimal.Decimal
	AmountPaid    decimal.Decimal
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Outstanding is the unpaid balance. Negative on overpayment, by design of
// the totals rules (never clamped).
func (d *Document) Outstanding() decimal.Decimal {
	return d.GrandTotal.Sub(d.AmountPaid)
}

// DocumentLine is one persisted line item of a document.
type DocumentLine struct {
	ID              string
	DocumentID      string
	Position        int // insertion order, the display order
	Name            string
	BatchNumber     string
	Unit            string
	Remark          string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxPercent      decimal.Decimal
	LineTotal       decimal.Decimal // quantity × unit price
}

// DocumentPayment is one persisted payment entry of a document.
type DocumentPayment struct {
	ID         string
	DocumentID string
	Position   int
	Amount     decimal.Decimal
	Method     string
	Status     string
}
