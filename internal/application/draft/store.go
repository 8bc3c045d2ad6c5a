package draft

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kritagya/pharmacare-api/internal/application/dto"
	"github.com/kritagya/pharmacare-api/internal/domain"
	"github.com/kritagya/pharmacare-api/internal/domain/document"
	"github.com/kritagya/pharmacare-api/internal/domain/entity"
)

// Draft is the in-memory working state of one document being composed:
// ordered header groups, line items and payment entries. It is never
// partially persisted — it is either discarded or committed as one atomic
// document-plus-children write.
//
// Appends validate per-kind required fields and leave the draft untouched on
// failure. Removes are idempotent. Duplicates are allowed (the store does
// not deduplicate batch numbers; callers needing uniqueness check first).
type Draft struct {
	id        string
	ownerID   string
	kind      document.Kind
	createdAt time.Time

	mu           sync.Mutex
	headerGroups []entity.HeaderGroup
	lineItems    []entity.LineItem
	payments     []entity.PaymentEntry
	currentStep  int
	committing   bool

	// Reserved document identity from a failed commit attempt: an identical
	// retry reuses it so a blind re-submission cannot mint a duplicate
	// document. Any mutation invalidates the reservation.
	reservedID     string
	reservedNumber string
}

// New builds an empty draft for one document kind, owned by one user
// session.
func New(kind document.Kind, ownerID string) *Draft {
	return &Draft{
		id:        uuid.New().String(),
		ownerID:   ownerID,
		kind:      kind,
		createdAt: time.Now(),
	}
}

func (d *Draft) ID() string          { return d.id }
func (d *Draft) OwnerID() string     { return d.ownerID }
func (d *Draft) Kind() document.Kind { return d.kind }

// Step returns the wizard step index for multi-step compose UIs.
func (d *Draft) Step() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.currentStep
}

// SetStep records the wizard step index. Navigation only; no validation.
func (d *Draft) SetStep(i int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 {
		i = 0
	}
	d.currentStep = i
}

// AppendHeaderGroup validates and appends one header group (patient,
// supplier, vendor...). Name is always required; reference_date defaults to
// today and must be YYYY-MM-DD when given.
func (d *Draft) AppendHeaderGroup(in dto.HeaderGroupInput) (entity.HeaderGroup, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.committing {
		return entity.HeaderGroup{}, domain.ErrCommitInFlight
	}

	var bad []string
	name := strings.TrimSpace(in.Name)
	if name == "" {
		bad = append(bad, "name")
	}

	refDate := time.Now()
	if raw := strings.TrimSpace(in.ReferenceDate); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			bad = append(bad, "reference_date")
		} else {
			refDate = parsed
		}
	}

	if len(bad) > 0 {
		return entity.HeaderGroup{}, domain.NewValidationError(bad...)
	}

	hg := entity.HeaderGroup{
		LocalID:       uuid.New().String(),
		Name:          name,
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		Address:       strings.TrimSpace(in.Address),
		Reference:     strings.TrimSpace(in.Reference),
		ReferenceDate: refDate,
	}
	d.headerGroups = append(d.headerGroups, hg)
	d.invalidateReservationLocked()
	return hg, nil
}

// RemoveHeaderGroup removes the matching entry; no-op when not found.
func (d *Draft) RemoveHeaderGroup(localID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.committing {
		return domain.ErrCommitInFlight
	}
	for i, hg := range d.headerGroups {
		if hg.LocalID == localID {
			d.headerGroups = append(d.headerGroups[:i], d.headerGroups[i+1:]...)
			d.invalidateReservationLocked()
			return nil
		}
	}
	return nil
}

// AppendLineItem validates and appends one line item. Name is always
// required; quantity and unit price are required for kinds that price their
// lines (optional for issue-order lines). Raw-text numerics are coerced
// here: required fields reject non-numeric input, optional fields fall back
// to zero.
func (d *Draft) AppendLineItem(in dto.LineItemInput) (entity.LineItem, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.committing {
		return entity.LineItem{}, domain.ErrCommitInFlight
	}

	rules := d.kind.Rules()
	var bad []string

	name := strings.TrimSpace(in.Name)
	if name == "" {
		bad = append(bad, "name")
	}

	var qty, price decimal.Decimal
	if rules.RequiresQuantityPrice {
		qty = coerceRequired(in.Quantity, "quantity", &bad)
		price = coerceRequired(in.UnitPrice, "unit_price", &bad)
	} else {
		qty = coerceOptional(in.Quantity, "quantity", &bad)
		price = coerceOptional(in.UnitPrice, "unit_price", &bad)
	}
	// Quantity is a count of units, not a fraction.
	if !qty.IsInteger() {
		bad = append(bad, "quantity")
	}

	discPct := coerceOptional(in.DiscountPercent, "discount_percent", &bad)
	discAmt := coerceOptional(in.DiscountAmount, "discount_amount", &bad)
	taxPct := coerceOptional(in.TaxPercent, "tax_percent", &bad)

	if len(bad) > 0 {
		return entity.LineItem{}, domain.NewValidationError(bad...)
	}

	li := entity.LineItem{
		LocalID:         uuid.New().String(),
		Name:            name,
		BatchNumber:     strings.TrimSpace(in.BatchNumber),
		Unit:            strings.TrimSpace(in.Unit),
		Remark:          strings.TrimSpace(in.Remark),
		Quantity:        qty,
		UnitPrice:       price,
		DiscountPercent: discPct,
		DiscountAmount:  discAmt,
		TaxPercent:      taxPct,
	}
	d.lineItems = append(d.lineItems, li)
	d.invalidateReservationLocked()
	return li, nil
}

// RemoveLineItem removes the matching entry; no-op when not found.
func (d *Draft) RemoveLineItem(localID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.committing {
		return domain.ErrCommitInFlight
	}
	for i, li := range d.lineItems {
		if li.LocalID == localID {
			d.lineItems = append(d.lineItems[:i], d.lineItems[i+1:]...)
			d.invalidateReservationLocked()
			return nil
		}
	}
	return nil
}

// AppendPayment validates and appends one payment entry. Rejected outright
// for kinds that do not record payments.
func (d *Draft) AppendPayment(in dto.PaymentInput) (entity.PaymentEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.committing {
		return entity.PaymentEntry{}, domain.ErrCommitInFlight
	}

	rules := d.kind.Rules()
	if !rules.AllowsPayments {
		return entity.PaymentEntry{}, fmt.Errorf("%w: %s documents do not record payments", domain.ErrInvalidInput, d.kind)
	}

	var bad []string
	amount := coerceRequired(in.Amount, "amount", &bad)

	method := strings.TrimSpace(in.Method)
	if !entity.ValidPaymentMethod(method) {
		bad = append(bad, "method")
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = entity.PaymentStatusPaid
	}
	if !entity.ValidPaymentStatus(status) {
		bad = append(bad, "status")
	}

	if len(bad) > 0 {
		return entity.PaymentEntry{}, domain.NewValidationError(bad...)
	}

	p := entity.PaymentEntry{
		LocalID: uuid.New().String(),
		Amount:  amount,
		Method:  method,
		Status:  status,
	}
	d.payments = append(d.payments, p)
	d.invalidateReservationLocked()
	return p, nil
}

// RemovePayment removes the matching entry; no-op when not found.
func (d *Draft) RemovePayment(localID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.committing {
		return domain.ErrCommitInFlight
	}
	for i, p := range d.payments {
		if p.LocalID == localID {
			d.payments = append(d.payments[:i], d.payments[i+1:]...)
			d.invalidateReservationLocked()
			return nil
		}
	}
	return nil
}

// Reset clears all three sequences and rewinds the wizard step. Used after
// a successful commit or an explicit cancel.
func (d *Draft) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.committing {
		return domain.ErrCommitInFlight
	}
	d.headerGroups = nil
	d.lineItems = nil
	d.payments = nil
	d.currentStep = 0
	d.invalidateReservationLocked()
	return nil
}

// Snapshot is an immutable copy of a draft's contents, handed to the totals
// calculator and the committer.
type Snapshot struct {
	DraftID      string
	Kind         document.Kind
	HeaderGroups []entity.HeaderGroup
	LineItems    []entity.LineItem
	Payments     []entity.PaymentEntry
	CurrentStep  int

	ReservedID     string
	ReservedNumber string
}

// PrimaryHeader is the single header group whose fields populate the
// persisted document: always the first in sequence, as an explicit rule.
// Callers must check HasHeader first.
func (s Snapshot) PrimaryHeader() entity.HeaderGroup {
	return s.HeaderGroups[0]
}

// HasHeader reports whether at least one header group was accumulated.
func (s Snapshot) HasHeader() bool { return len(s.HeaderGroups) > 0 }

// Snapshot copies the current contents.
func (d *Draft) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Draft) snapshotLocked() Snapshot {
	s := Snapshot{
		DraftID:        d.id,
		Kind:           d.kind,
		HeaderGroups:   make([]entity.HeaderGroup, len(d.headerGroups)),
		LineItems:      make([]entity.LineItem, len(d.lineItems)),
		Payments:       make([]entity.PaymentEntry, len(d.payments)),
		CurrentStep:    d.currentStep,
		ReservedID:     d.reservedID,
		ReservedNumber: d.reservedNumber,
	}
	copy(s.HeaderGroups, d.headerGroups)
	copy(s.LineItems, d.lineItems)
	copy(s.Payments, d.payments)
	return s
}

// BeginCommit marks the draft as having a commit in flight and returns a
// snapshot to persist. A second commit on the same draft while one is in
// flight fails with ErrCommitInFlight (double-submit guard), as do draft
// mutations.
func (d *Draft) BeginCommit() (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.committing {
		return Snapshot{}, domain.ErrCommitInFlight
	}
	d.committing = true
	return d.snapshotLocked(), nil
}

// FinishCommit ends the in-flight commit. On failure the generated document
// identity is reserved so an identical retry reuses the same number; on
// success the reservation is cleared (the caller resets or discards the
// draft).
func (d *Draft) FinishCommit(reservedID, reservedNumber string, succeeded bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.committing = false
	if succeeded {
		d.reservedID = ""
		d.reservedNumber = ""
		return
	}
	if reservedID != "" {
		d.reservedID = reservedID
		d.reservedNumber = reservedNumber
	}
}

func (d *Draft) invalidateReservationLocked() {
	d.reservedID = ""
	d.reservedNumber = ""
}

// coerceRequired parses a required non-negative numeric field typed as raw
// text. Empty, non-numeric or negative input marks the field invalid.
func coerceRequired(raw, field string, bad *[]string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*bad = append(*bad, field)
		return decimal.Zero
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.IsNegative() {
		*bad = append(*bad, field)
		return decimal.Zero
	}
	return v
}

// coerceOptional parses an optional non-negative numeric field typed as raw
// text. Empty or non-numeric input coerces to zero; a negative value is
// still invalid (it parsed fine but violates the ≥ 0 constraint).
func coerceOptional(raw, field string, bad *[]string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	if v.IsNegative() {
		*bad = append(*bad, field)
		return decimal.Zero
	}
	return v
}
