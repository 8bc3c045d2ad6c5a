package entity

import "github.com/shopspring/decimal"

// Payment methods.
const (
	PaymentMethodCash       = "cash"
	PaymentMethodCard       = "card"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetBanking = "net-banking"
	PaymentMethodOther      = "other"
)

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI, PaymentMethodNetBanking, PaymentMethodOther:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is one of the accepted statuses.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// PaymentEntry is one recorded payment against a draft/document.
type PaymentEntry struct {
	LocalID string // draft-local identifier, not persisted
	Amount  decimal.Decimal
	Method  string // cash | card | upi | net-banking | other
	Status  string // pending | partial | paid
}
