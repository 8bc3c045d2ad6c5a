package entity

import "time"

// HeaderGroup is the non-line metadata block of a draft: the patient of a
// bill, the supplier of a purchase order, the vendor of a receive order.
// A draft may accumulate several; only the first one (the primary header)
// ends up flattened onto the persisted document.
type HeaderGroup struct {
	LocalID       string // draft-local identifier, not persisted
	Name          string
	Phone         string
	Email         string
	Address       string
	Reference     string // free-form: prescription no., supplier GSTIN, PO ref
	ReferenceDate time.Time
}
