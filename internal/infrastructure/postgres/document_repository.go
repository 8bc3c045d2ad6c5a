package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kritagya/pharmacare-api/internal/domain/document"
	"github.com/kritagya/pharmacare-api/internal/domain/entity"
	"github.com/kritagya/pharmacare-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implements DocumentRepository over PostgreSQL (usable with
// pool or tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository builds the adapter. Pass a pool or a tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persists the document header.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO documents (id, kind, number, party_name, party_phone, party_email, party_address,
		                       reference, reference_date, subtotal, discount_total, tax_total,
		                       grand_total, amount_paid, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, string(doc.Kind), doc.Number,
		doc.PartyName, nullIfEmpty(doc.PartyPhone), nullIfEmpty(doc.PartyEmail), nullIfEmpty(doc.PartyAddress),
		nullIfEmpty(doc.Reference), doc.ReferenceDate,
		doc.Subtotal, doc.DiscountTotal, doc.TaxTotal, doc.GrandTotal, doc.AmountPaid,
		doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("document number already exists: %w", err)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// CreateLine persists one line row.
func (r *DocumentRepo) CreateLine(line *entity.DocumentLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO document_lines (id, document_id, position, name, batch_number, unit, remark,
		                            quantity, unit_price, discount_percent, discount_amount,
		                            tax_percent, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.DocumentID, line.Position,
		line.Name, nullIfEmpty(line.BatchNumber), nullIfEmpty(line.Unit), nullIfEmpty(line.Remark),
		line.Quantity, line.UnitPrice, line.DiscountPercent, line.DiscountAmount,
		line.TaxPercent, line.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert document line: %w", err)
	}
	return nil
}

// CreatePayment persists one payment row.
func (r *DocumentRepo) CreatePayment(payment *entity.DocumentPayment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO document_payments (id, document_id, position, amount, method, status)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.DocumentID, payment.Position,
		payment.Amount, payment.Method, payment.Status,
	)
	if err != nil {
		return fmt.Errorf("insert document payment: %w", err)
	}
	return nil
}

// Delete removes the header row. Child rows cascade via the schema's foreign
// keys, so this also serves as the compensating action after a failed child
// write.
func (r *DocumentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// GetByID returns one document header, or nil when it does not exist.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := documentSelect + ` WHERE id = $1`
	doc, err := scanDocument(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// GetLinesByDocumentID returns the document's lines in display order.
func (r *DocumentRepo) GetLinesByDocumentID(documentID string) ([]*entity.DocumentLine, error) {
	query := `
		SELECT id, document_id, position, name,
		       COALESCE(batch_number, ''), COALESCE(unit, ''), COALESCE(remark, ''),
		       quantity, unit_price, discount_percent, discount_amount, tax_percent, line_total
		FROM document_lines WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(
			&l.ID, &l.DocumentID, &l.Position, &l.Name,
			&l.BatchNumber, &l.Unit, &l.Remark,
			&l.Quantity, &l.UnitPrice, &l.DiscountPercent, &l.DiscountAmount, &l.TaxPercent, &l.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// GetPaymentsByDocumentID returns the document's payments in display order.
func (r *DocumentRepo) GetPaymentsByDocumentID(documentID string) ([]*entity.DocumentPayment, error) {
	query := `
		SELECT id, document_id, position, amount, method, status
		FROM document_payments WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentPayment
	for rows.Next() {
		var p entity.DocumentPayment
		if err := rows.Scan(&p.ID, &p.DocumentID, &p.Position, &p.Amount, &p.Method, &p.Status); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// List returns one page of document headers matching the filter plus the
// total match count.
func (r *DocumentRepo) List(filter repository.DocumentFilter, limit, offset int) ([]*entity.Document, int, error) {
	var conds []string
	var args []any

	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conds = append(conds, fmt.Sprintf("(party_name ILIKE $%d OR number ILIKE $%d)", len(args), len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM documents` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		documentSelect, where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	return list, total, rows.Err()
}

const documentSelect = `
	SELECT id, kind, number, party_name,
	       COALESCE(party_phone, ''), COALESCE(party_email, ''), COALESCE(party_address, ''),
	       COALESCE(reference, ''), reference_date,
	       subtotal, discount_total, tax_total, grand_total, amount_paid,
	       created_by, created_at, updated_at
	FROM documents`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var kind string
	err := row.Scan(
		&d.ID, &kind, &d.Number, &d.PartyName,
		&d.PartyPhone, &d.PartyEmail, &d.PartyAddress,
		&d.Reference, &d.ReferenceDate,
		&d.Subtotal, &d.DiscountTotal, &d.TaxTotal, &d.GrandTotal, &d.AmountPaid,
		&d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Kind = document.Kind(kind)
	return &d, nil
}
