package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kritagya/pharmacare-api/internal/application/dto"
	"github.com/kritagya/pharmacare-api/internal/domain"
	"github.com/kritagya/pharmacare-api/internal/domain/document"
	"github.com/kritagya/pharmacare-api/internal/domain/entity"
	"github.com/kritagya/pharmacare-api/internal/domain/repository"
)

// DocumentQueryUseCase serves the companion list/search and detail screens:
// committed documents read back by kind, party-name search, date range and
// pagination. Read-only — the engine never edits a committed document.
type DocumentQueryUseCase struct {
	docs     repository.DocumentRepository
	exporter DocumentExporter
}

// NewDocumentQueryUseCase builds the use case. exporter may be nil when the
// bridge export surface is disabled.
func NewDocumentQueryUseCase(docs repository.DocumentRepository, exporter DocumentExporter) *DocumentQueryUseCase {
	return &DocumentQueryUseCase{docs: docs, exporter: exporter}
}

// List returns one page of committed documents matching the filters.
func (uc *DocumentQueryUseCase) List(ctx context.Context, in dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error) {
	var filter repository.DocumentFilter

	if in.Kind != "" {
		kind, err := document.Parse(in.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		filter.Kind = kind
	}
	filter.Query = strings.TrimSpace(in.Q)

	if in.From != "" {
		from, err := time.Parse("2006-01-02", in.From)
		if err != nil {
			return nil, fmt.Errorf("%w: from must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		filter.From = from
	}
	if in.To != "" {
		to, err := time.Parse("2006-01-02", in.To)
		if err != nil {
			return nil, fmt.Errorf("%w: to must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		// inclusive end date
		filter.To = to.AddDate(0, 0, 1)
	}

	in.DefaultPage()
	docs, total, err := uc.docs.List(filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListDocumentsResponse{
		Documents: make([]dto.DocumentResponse, 0, len(docs)),
		Page:      dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, toDocumentResponse(doc, nil, nil))
	}
	return resp, nil
}

// Get returns one committed document with its lines and payments.
func (uc *DocumentQueryUseCase) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, lines, payments, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	resp := toDocumentResponse(doc, lines, payments)
	return &resp, nil
}

// ExportXML serializes one committed document for the desktop bridge.
// Returns the payload and a suggested filename.
func (uc *DocumentQueryUseCase) ExportXML(ctx context.Context, id string) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", domain.ErrNotFound
	}
	doc, lines, payments, err := uc.load(id)
	if err != nil {
		return nil, "", err
	}
	payload, err := uc.exporter.ExportDocument(doc, lines, payments)
	if err != nil {
		return nil, "", fmt.Errorf("export document: %w", err)
	}
	return payload, fmt.Sprintf("%s.xml", strings.ToLower(doc.Number)), nil
}

func (uc *DocumentQueryUseCase) load(id string) (*entity.Document, []*entity.DocumentLine, []*entity.DocumentPayment, error) {
	doc, err := uc.docs.GetByID(id)
	if err != nil {
		return nil, nil, nil, err
	}
	if doc == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	lines, err := uc.docs.GetLinesByDocumentID(id)
	if err != nil {
		return nil, nil, nil, err
	}
	payments, err := uc.docs.GetPaymentsByDocumentID(id)
	if err != nil {
		return nil, nil, nil, err
	}
	return doc, lines, payments, nil
}

func toDocumentResponse(doc *entity.Document, lines []*entity.DocumentLine, payments []*entity.DocumentPayment) dto.DocumentResponse {
	resp := dto.DocumentResponse{
		ID:            doc.ID,
		Kind:          string(doc.Kind),
		Number:        doc.Number,
		PartyName:     doc.PartyName,
		PartyPhone:    doc.PartyPhone,
		PartyEmail:    doc.PartyEmail,
		PartyAddress:  doc.PartyAddress,
		Reference:     doc.Reference,
		ReferenceDate: doc.ReferenceDate.Format("2006-01-02"),
		Subtotal:      doc.Subtotal,
		DiscountTotal: doc.DiscountTotal,
		TaxTotal:      doc.TaxTotal,
		GrandTotal:    doc.GrandTotal,
		AmountPaid:    doc.AmountPaid,
		Outstanding:   doc.Outstanding(),
		CreatedAt:     doc.CreatedAt.Format(time.RFC3339),
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, dto.DocumentLineResponse{
			ID:              line.ID,
			Position:        line.Position,
			Name:            line.Name,
			BatchNumber:     line.BatchNumber,
			Unit:            line.Unit,
			Remark:          line.Remark,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			DiscountAmount:  line.DiscountAmount,
			TaxPercent:      line.TaxPercent,
			LineTotal:       line.LineTotal,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, dto.DocumentPaymentResponse{
			ID:       p.ID,
			Position: p.Position,
			Amount:   p.Amount,
			Method:   p.Method,
			Status:   p.Status,
		})
	}
	return resp
}
