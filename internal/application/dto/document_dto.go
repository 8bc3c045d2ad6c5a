package dto

import "github.com/shopspring/decimal"

// ListDocumentsRequest query params for GET /api/documents.
type ListDocumentsRequest struct {
	Kind string `query:"kind"`
	Q    string `query:"q"`    // party name or number search
	From string `query:"from"` // YYYY-MM-DD
	To   string `query:"to"`   // YYYY-MM-DD
	PageRequest
}

// DocumentResponse committed document header for listings and detail views.
type DocumentResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Number        string          `json:"number"`
	PartyName     string          `json:"party_name"`
	PartyPhone    string          `json:"party_phone,omitempty"`
	PartyEmail    string          `json:"party_email,omitempty"`
	PartyAddress  string          `json:"party_address,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	ReferenceDate string          `json:"reference_date"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	TaxTotal      decimal.Decimal `json:"tax_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	CreatedAt     string          `json:"created_at"`

	Lines    []DocumentLineResponse    `json:"lines,omitempty"`
	Payments []DocumentPaymentResponse `json:"payments,omitempty"`
}

// DocumentLineResponse persisted line item in a detail view.
type DocumentLineResponse struct {
	ID              string          `json:"id"`
	Position        int             `json:"position"`
	Name            string          `json:"name"`
	BatchNumber     string          `json:"batch_number,omitempty"`
	Unit            string          `json:"unit,omitempty"`
	Remark          string          `json:"remark,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// DocumentPaymentResponse persisted payment entry in a detail view.
type DocumentPaymentResponse struct {
	ID       string          `json:"id"`
	Position int             `json:"position"`
	Amount   decimal.Decimal `json:"amount"`
	Method   string          `json:"method"`
	Status   string          `json:"status"`
}

// ListDocumentsResponse page of committed documents.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Page      PageResponse       `json:"page"`
}
