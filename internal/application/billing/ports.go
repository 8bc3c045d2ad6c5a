package billing

import (
	"context"

	"github.com/kritagya/pharmacare-api/internal/domain/entity"
	"github.com/kritagya/pharmacare-api/internal/domain/repository"
)

// DocumentTxRunner executes fn with a document repository bound to one
// transaction: the multi-row atomic write primitive the committer relies on
// when the collaborator supports transactions.
type DocumentTxRunner interface {
	RunDocument(ctx context.Context, fn func(docs repository.DocumentRepository) error) error
}

// DocumentPDFGenerator renders the print view of a committed document.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.Document, lines []*entity.DocumentLine, payments []*entity.DocumentPayment) ([]byte, error)
}

// DocumentExporter serializes a committed document for the desktop-runtime
// bridge import path.
type DocumentExporter interface {
	ExportDocument(doc *entity.Document, lines []*entity.DocumentLine, payments []*entity.DocumentPayment) ([]byte, error)
}
