package dto

import (
	"github.com/shopspring/decimal"
)

// CreateDraftRequest body for POST /api/drafts.
type CreateDraftRequest struct {
	Kind string `json:"kind" validate:"required"`
}

// HeaderGroupInput one header group (patient, supplier, vendor...) as typed
// into the form.
type HeaderGroupInput struct {
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	Reference     string `json:"reference,omitempty"`
	ReferenceDate string `json:"reference_date,omitempty"` // YYYY-MM-DD, defaults to today
}

// LineItemInput one line as typed into the form. Numeric fields arrive as
// raw text and are coerced at validation time: required ones reject
// non-numeric input, optional ones fall back to zero.
type LineItemInput struct {
	Name            string `json:"name"`
	Quantity        string `json:"quantity,omitempty"`
	UnitPrice       string `json:"unit_price,omitempty"`
	DiscountPercent string `json:"discount_percent,omitempty"`
	DiscountAmount  string `json:"discount_amount,omitempty"`
	TaxPercent      string `json:"tax_percent,omitempty"`
	BatchNumber     string `json:"batch_number,omitempty"`
	Unit            string `json:"unit,omitempty"`
	Remark          string `json:"remark,omitempty"`
}

// PaymentInput one payment entry as typed into the form.
type PaymentInput struct {
	Amount string `json:"amount"`
	Method string `json:"method"`
	Status string `json:"status,omitempty"` // defaults to paid
}

// HeaderGroupResponse header group echoed back with its draft-local id.
type HeaderGroupResponse struct {
	LocalID       string `json:"local_id"`
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	Reference     string `json:"reference,omitempty"`
	ReferenceDate string `json:"reference_date"`
}

// LineItemResponse line item echoed back with its draft-local id and
// coerced numeric values.
type LineItemResponse struct {
	LocalID         string          `json:"local_id"`
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	BatchNumber     string          `json:"batch_number,omitempty"`
	Unit            string          `json:"unit,omitempty"`
	Remark          string          `json:"remark,omitempty"`
}

// PaymentResponse payment entry echoed back with its draft-local id.
type PaymentResponse struct {
	LocalID string          `json:"local_id"`
	Amount  decimal.Decimal `json:"amount"`
	Method  string          `json:"method"`
	Status  string          `json:"status"`
}

// TotalsResponse live monetary aggregates of a draft.
type TotalsResponse struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

// DraftResponse full draft contents plus live totals for
// GET /api/drafts/:id.
type DraftResponse struct {
	ID           string                `json:"id"`
	Kind         string                `json:"kind"`
	CurrentStep  int                   `json:"current_step"`
	HeaderGroups []HeaderGroupResponse `json:"header_groups"`
	LineItems    []LineItemResponse    `json:"line_items"`
	Payments     []PaymentResponse     `json:"payments"`
	Totals       TotalsResponse        `json:"totals"`
}

// CommitResponse result of POST /api/drafts/:id/commit.
type CommitResponse struct {
	ID     string         `json:"id"`
	Number string         `json:"number"`
	Totals TotalsResponse `json:"totals"`
}
