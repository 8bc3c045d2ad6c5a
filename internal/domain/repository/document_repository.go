package repository

import (
	"time"

	"github.com/kritagya/pharmacare-api/internal/domain/document"
	"github.com/kritagya/pharmacare-api/internal/domain/entity"
)

// DocumentFilter narrows a document listing. Zero values mean "no filter".
type DocumentFilter struct {
	Kind  document.Kind // restrict to one kind
	Query string        // case-insensitive match on party name or number
	From  time.Time     // created at or after
	To    time.Time     // created before
}

// DocumentRepository is the persistence port for committed documents: one
// header row plus child line/payment rows tagged with the document ID.
// Implementations are usable inside or outside a transaction; the committer
// decides atomicity through the tx runner.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	CreateLine(line *entity.DocumentLine) error
	CreatePayment(payment *entity.DocumentPayment) error
	// Delete removes a header row; used as the compensating action when a
	// child write fails on a collaborator without transactions.
	Delete(id string) error

	GetByID(id string) (*entity.Document, error)
	GetLinesByDocumentID(documentID string) ([]*entity.DocumentLine, error)
	GetPaymentsByDocumentID(documentID string) ([]*entity.DocumentPayment, error)
	List(filter DocumentFilter, limit, offset int) ([]*entity.Document, int, error)
}
