package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kritagya/pharmacare-api/internal/application/draft"
	"github.com/kritagya/pharmacare-api/internal/application/dto"
	"github.com/kritagya/pharmacare-api/internal/domain"
	domainbilling "github.com/kritagya/pharmacare-api/internal/domain/billing"
	"github.com/kritagya/pharmacare-api/internal/domain/document"
	"github.com/kritagya/pharmacare-api/internal/domain/entity"
	"github.com/kritagya/pharmacare-api/internal/domain/repository"
)

// Committer validates draft completeness, assembles the document payload
// and performs the atomic write: one header row plus all line and payment
// rows tagged with the same document ID.
//
// With a tx runner the whole write runs in one transaction. Without one
// (a collaborator that has no transactions) it falls back to
// header-then-children with a compensating delete of the header on child
// failure; when compensation itself fails the caller gets a
// PartialWriteError so the user can be warned that a number was reserved
// for an incomplete document.
type Committer struct {
	txRunner DocumentTxRunner
	docs     repository.DocumentRepository
}

// NewCommitter builds the committer. txRunner may be nil when the
// collaborator cannot provide transactions; docs is then used directly with
// the compensating path.
func NewCommitter(txRunner DocumentTxRunner, docs repository.DocumentRepository) *Committer {
	return &Committer{txRunner: txRunner, docs: docs}
}

// Commit persists the draft as one document. No automatic retries: a failed
// commit leaves the draft intact (with its generated number reserved) and
// requires explicit re-submission, which reuses the reserved number so a
// retry cannot mint a duplicate.
func (c *Committer) Commit(ctx context.Context, d *draft.Draft, userID string) (*dto.CommitResponse, error) {
	snap, err := d.BeginCommit()
	if err != nil {
		return nil, err
	}
	resp, docID, number, err := c.commit(ctx, snap, userID)
	d.FinishCommit(docID, number, err == nil)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Committer) commit(ctx context.Context, snap draft.Snapshot, userID string) (*dto.CommitResponse, string, string, error) {
	rules := snap.Kind.Rules()

	// Precondition checks, in order; no collaborator call happens when one
	// fails.
	if !snap.HasHeader() {
		return nil, "", "", &domain.IncompleteDocumentError{Reason: "missing header"}
	}
	if rules.RequiresLines && len(snap.LineItems) == 0 {
		return nil, "", "", &domain.IncompleteDocumentError{Reason: "missing line items"}
	}

	now := time.Now()
	docID, number := snap.ReservedID, snap.ReservedNumber
	if docID == "" {
		docID = uuid.New().String()
		number = document.NextNumber(snap.Kind, now)
	}

	totals := domainbilling.Calculate(snap.LineItems, snap.Payments)
	header := snap.PrimaryHeader()

	doc := &entity.Document{
		ID:            docID,
		Kind:          snap.Kind,
		Number:        number,
		PartyName:     header.Name,
		PartyPhone:    header.Phone,
		PartyEmail:    header.Email,
		PartyAddress:  header.Address,
		Reference:     header.Reference,
		ReferenceDate: header.ReferenceDate,
		Subtotal:      totals.Subtotal,
		DiscountTotal: totals.TotalDiscount,
		TaxTotal:      totals.TotalTax,
		GrandTotal:    totals.GrandTotal,
		AmountPaid:    totals.AmountPaid,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	lines := make([]*entity.DocumentLine, 0, len(snap.LineItems))
	for i, li := range snap.LineItems {
		lines = append(lines, &entity.DocumentLine{
			ID:              uuid.New().String(),
			DocumentID:      docID,
			Position:        i,
			Name:            li.Name,
			BatchNumber:     li.BatchNumber,
			Unit:            li.Unit,
			Remark:          li.Remark,
			Quantity:        li.Quantity,
			UnitPrice:       li.UnitPrice,
			DiscountPercent: li.DiscountPercent,
			DiscountAmount:  li.DiscountAmount,
			TaxPercent:      li.TaxPercent,
			LineTotal:       domainbilling.LineSubtotal(li),
		})
	}
	payments := make([]*entity.DocumentPayment, 0, len(snap.Payments))
	for i, p := range snap.Payments {
		payments = append(payments, &entity.DocumentPayment{
			ID:         uuid.New().String(),
			DocumentID: docID,
			Position:   i,
			Amount:     p.Amount,
			Method:     p.Method,
			Status:     p.Status,
		})
	}

	var err error
	if c.txRunner != nil {
		err = c.txRunner.RunDocument(ctx, func(docs repository.DocumentRepository) error {
			return writeDocument(docs, doc, lines, payments)
		})
		if err != nil {
			err = &domain.PersistenceError{Err: err}
		}
	} else {
		err = c.writeCompensating(doc, lines, payments)
	}
	if err != nil {
		return nil, docID, number, err
	}

	return &dto.CommitResponse{
		ID:     docID,
		Number: number,
		Totals: totalsToDTO(totals),
	}, docID, number, nil
}

// writeDocument persists the header and then each child row; meant to run
// inside one transaction.
func writeDocument(docs repository.DocumentRepository, doc *entity.Document, lines []*entity.DocumentLine, payments []*entity.DocumentPayment) error {
	if err := docs.Create(doc); err != nil {
		return err
	}
	for _, line := range lines {
		if err := docs.CreateLine(line); err != nil {
			return err
		}
	}
	for _, p := range payments {
		if err := docs.CreatePayment(p); err != nil {
			return err
		}
	}
	return nil
}

// writeCompensating is the saga fallback for collaborators without
// transactions: header first, then children; a child failure triggers a
// compensating delete of the header so no orphan is left behind. Only when
// that delete also fails does the error escalate to PartialWriteError.
func (c *Committer) writeCompensating(doc *entity.Document, lines []*entity.DocumentLine, payments []*entity.DocumentPayment) error {
	if err := c.docs.Create(doc); err != nil {
		return &domain.PersistenceError{Err: err}
	}

	var childErr error
	for _, line := range lines {
		if err := c.docs.CreateLine(line); err != nil {
			childErr = err
			break
		}
	}
	if childErr == nil {
		for _, p := range payments {
			if err := c.docs.CreatePayment(p); err != nil {
				childErr = err
				break
			}
		}
	}
	if childErr == nil {
		return nil
	}

	if delErr := c.docs.Delete(doc.ID); delErr != nil {
		return &domain.PartialWriteError{
			DocumentID: doc.ID,
			Number:     doc.Number,
			Err:        errors.Join(childErr, delErr),
		}
	}
	return &domain.PersistenceError{Err: childErr}
}

func totalsToDTO(t domainbilling.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{
		Subtotal:      t.Subtotal,
		TotalDiscount: t.TotalDiscount,
		TotalTax:      t.TotalTax,
		GrandTotal:    t.GrandTotal,
		AmountPaid:    t.AmountPaid,
		Outstanding:   t.Outstanding,
	}
}

// TotalsFor computes the live totals of a draft snapshot for display.
func TotalsFor(snap draft.Snapshot) dto.TotalsResponse {
	return totalsToDTO(domainbilling.Calculate(snap.LineItems, snap.Payments))
}
