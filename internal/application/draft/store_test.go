package draft_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritagya/pharmacare-api/internal/application/draft"
	"github.com/kritagya/pharmacare-api/internal/application/dto"
	"github.com/kritagya/pharmacare-api/internal/domain"
	"github.com/kritagya/pharmacare-api/internal/domain/document"
)

const testOwner = "00000000-0000-0000-0000-000000000001"

func billDraft() *draft.Draft {
	return draft.New(document.KindBill, testOwner)
}

func validLine() dto.LineItemInput {
	return dto.LineItemInput{
		Name:       "Paracetamol 650mg",
		Quantity:   "10",
		UnitPrice:  "5",
		TaxPercent: "12",
		Unit:       "strip",
	}
}

// TestAppendRemoveSymmetry: removing a just-appended line restores the
// previous sequence, with no ordering drift among the remaining items.
func TestAppendRemoveSymmetry(t *testing.T) {
	d := billDraft()

	first, err := d.AppendLineItem(validLine())
	require.NoError(t, err)
	second, err := d.AppendLineItem(dto.LineItemInput{Name: "Cough syrup", Quantity: "1", UnitPrice: "120"})
	require.NoError(t, err)

	extra, err := d.AppendLineItem(dto.LineItemInput{Name: "Bandage", Quantity: "2", UnitPrice: "30"})
	require.NoError(t, err)
	require.NoError(t, d.RemoveLineItem(extra.LocalID))

	snap := d.Snapshot()
	require.Len(t, snap.LineItems, 2)
	assert.Equal(t, first.LocalID, snap.LineItems[0].LocalID, "insertion order is the display order")
	assert.Equal(t, second.LocalID, snap.LineItems[1].LocalID)
}

func TestAppendLineItem_MissingRequiredFields(t *testing.T) {
	d := billDraft()

	_, err := d.AppendLineItem(dto.LineItemInput{Quantity: "2", UnitPrice: "10"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	_, err = d.AppendLineItem(dto.LineItemInput{Name: "Zinc tablets"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "quantity")
	assert.Contains(t, verr.Fields, "unit_price")

	assert.Empty(t, d.Snapshot().LineItems, "a rejected append must leave the draft unchanged")
}

func TestAppendLineItem_NonNumericRequiredRejected(t *testing.T) {
	d := billDraft()

	in := validLine()
	in.Quantity = "ten"
	_, err := d.AppendLineItem(in)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"quantity"}, verr.Fields)
}

// Optional numeric fields coerce non-numeric raw text to zero instead of
// failing the append.
func TestAppendLineItem_NonNumericOptionalCoercesToZero(t *testing.T) {
	d := billDraft()

	in := validLine()
	in.DiscountPercent = "n/a"
	li, err := d.AppendLineItem(in)
	require.NoError(t, err)
	assert.True(t, li.DiscountPercent.IsZero())
}

// Issue-order lines only need a name; quantity and price are optional there.
func TestAppendLineItem_IssueOrderOptionalQuantity(t *testing.T) {
	d := draft.New(document.KindIssueOrder, testOwner)

	li, err := d.AppendLineItem(dto.LineItemInput{Name: "Surgical gloves"})
	require.NoError(t, err)
	assert.True(t, li.Quantity.IsZero())
	assert.True(t, li.UnitPrice.IsZero())
}

func TestAppendLineItem_NegativeRejected(t *testing.T) {
	d := billDraft()

	in := validLine()
	in.UnitPrice = "-5"
	_, err := d.AppendLineItem(in)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "unit_price")
}

func TestAppendLineItem_FractionalQuantityRejected(t *testing.T) {
	d := billDraft()

	in := validLine()
	in.Quantity = "2.5"
	_, err := d.AppendLineItem(in)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "quantity")
}

// Duplicate lines (same name/batch) are permitted; the store does not
// deduplicate.
func TestAppendLineItem_DuplicatesAllowed(t *testing.T) {
	d := billDraft()

	_, err := d.AppendLineItem(validLine())
	require.NoError(t, err)
	_, err = d.AppendLineItem(validLine())
	require.NoError(t, err)
	assert.Len(t, d.Snapshot().LineItems, 2)
}

func TestRemoveLineItem_UnknownIDIsNoop(t *testing.T) {
	d := billDraft()
	_, err := d.AppendLineItem(validLine())
	require.NoError(t, err)

	require.NoError(t, d.RemoveLineItem("no-such-id"))
	assert.Len(t, d.Snapshot().LineItems, 1)
}

func TestAppendHeaderGroup(t *testing.T) {
	d := billDraft()

	hg, err := d.AppendHeaderGroup(dto.HeaderGroupInput{Name: "Jane Doe", Phone: "555-0100"})
	require.NoError(t, err)
	assert.NotEmpty(t, hg.LocalID)
	assert.False(t, hg.ReferenceDate.IsZero(), "reference date defaults to today")

	_, err = d.AppendHeaderGroup(dto.HeaderGroupInput{Phone: "555-0101"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"name"}, verr.Fields)

	_, err = d.AppendHeaderGroup(dto.HeaderGroupInput{Name: "Jane", ReferenceDate: "29/11/2023"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"reference_date"}, verr.Fields)
}

func TestPrimaryHeaderIsFirst(t *testing.T) {
	d := billDraft()
	_, err := d.AppendHeaderGroup(dto.HeaderGroupInput{Name: "First Patient"})
	require.NoError(t, err)
	_, err = d.AppendHeaderGroup(dto.HeaderGroupInput{Name: "Second Patient"})
	require.NoError(t, err)

	snap := d.Snapshot()
	require.True(t, snap.HasHeader())
	assert.Equal(t, "First Patient", snap.PrimaryHeader().Name)
}

func TestAppendPayment(t *testing.T) {
	d := billDraft()

	p, err := d.AppendPayment(dto.PaymentInput{Amount: "200", Method: "cash"})
	require.NoError(t, err)
	assert.Equal(t, "paid", p.Status, "status defaults to paid")

	_, err = d.AppendPayment(dto.PaymentInput{Amount: "100", Method: "cheque"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "method")
}

func TestAppendPayment_NotAllowedForKind(t *testing.T) {
	d := draft.New(document.KindReceiveOrder, testOwner)

	_, err := d.AppendPayment(dto.PaymentInput{Amount: "100", Method: "cash"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestReset(t *testing.T) {
	d := billDraft()
	_, err := d.AppendHeaderGroup(dto.HeaderGroupInput{Name: "Jane Doe"})
	require.NoError(t, err)
	_, err = d.AppendLineItem(validLine())
	require.NoError(t, err)
	d.SetStep(2)

	require.NoError(t, d.Reset())

	snap := d.Snapshot()
	assert.Empty(t, snap.HeaderGroups)
	assert.Empty(t, snap.LineItems)
	assert.Empty(t, snap.Payments)
	assert.Equal(t, 0, snap.CurrentStep)
}

// While a commit is in flight, a second commit and all mutations on the
// same draft are refused.
func TestCommitInFlightGuard(t *testing.T) {
	d := billDraft()
	_, err := d.AppendLineItem(validLine())
	require.NoError(t, err)

	_, err = d.BeginCommit()
	require.NoError(t, err)

	_, err = d.BeginCommit()
	assert.ErrorIs(t, err, domain.ErrCommitInFlight)

	_, err = d.AppendLineItem(validLine())
	assert.ErrorIs(t, err, domain.ErrCommitInFlight)
	assert.ErrorIs(t, d.Reset(), domain.ErrCommitInFlight)

	d.FinishCommit("", "", false)
	_, err = d.BeginCommit()
	assert.NoError(t, err, "guard must clear after FinishCommit")
}

// A failed commit reserves the generated identity for an identical retry;
// any mutation invalidates it.
func TestReservationLifecycle(t *testing.T) {
	d := billDraft()
	_, err := d.AppendLineItem(validLine())
	require.NoError(t, err)

	snap, err := d.BeginCommit()
	require.NoError(t, err)
	assert.Empty(t, snap.ReservedNumber)

	d.FinishCommit("doc-1", "BILL-123", false)

	snap, err = d.BeginCommit()
	require.NoError(t, err)
	assert.Equal(t, "doc-1", snap.ReservedID)
	assert.Equal(t, "BILL-123", snap.ReservedNumber)
	d.FinishCommit("doc-1", "BILL-123", false)

	_, err = d.AppendLineItem(validLine())
	require.NoError(t, err)
	snap = d.Snapshot()
	assert.Empty(t, snap.ReservedID, "mutation must invalidate the reservation")
	assert.Empty(t, snap.ReservedNumber)
}

func TestRegistryOwnership(t *testing.T) {
	reg := draft.NewRegistry()
	d := reg.Create(document.KindBill, testOwner)

	got, err := reg.Get(d.ID(), testOwner)
	require.NoError(t, err)
	assert.Same(t, d, got)

	_, err = reg.Get(d.ID(), "someone-else")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	reg.Discard(d.ID(), testOwner)
	_, err = reg.Get(d.ID(), testOwner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
