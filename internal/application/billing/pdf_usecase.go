package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/kritagya/pharmacare-api/internal/domain"
	"github.com/kritagya/pharmacare-api/internal/domain/repository"
)

// PDFUseCase renders the print view of a committed document. Documents are
// immutable after commit, so the PDF is always a faithful snapshot.
type PDFUseCase struct {
	docs      repository.DocumentRepository
	generator DocumentPDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(docs repository.DocumentRepository, generator DocumentPDFGenerator) *PDFUseCase {
	return &PDFUseCase{docs: docs, generator: generator}
}

// DownloadDocumentPDF loads the full document and generates its PDF.
//
// Returns:
//   - (pdfBytes, filename, nil) on success.
//   - domain.ErrNotFound when the document does not exist.
func (uc *PDFUseCase) DownloadDocumentPDF(ctx context.Context, documentID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.docs.GetByID(documentID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: get document: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}

	lines, err := uc.docs.GetLinesByDocumentID(documentID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: get lines: %w", err)
	}
	payments, err := uc.docs.GetPaymentsByDocumentID(documentID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: get payments: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateDocumentPDF(ctx, doc, lines, payments)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generation failed: %w", err)
	}

	filename = fmt.Sprintf("%s.pdf", strings.ToLower(doc.Number))
	return pdfBytes, filename, nil
}
