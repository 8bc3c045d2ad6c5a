package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/kritagya/pharmacare-api/internal/application/billing"
	"github.com/kritagya/pharmacare-api/internal/application/dto"
	"github.com/kritagya/pharmacare-api/internal/domain"
)

// DocumentHandler serves the committed-document surface: listing, detail,
// PDF print view and the bridge XML export. Read-only.
type DocumentHandler struct {
	queryUC *billing.DocumentQueryUseCase
	pdfUC   *billing.PDFUseCase
}

// NewDocumentHandler builds the document handler.
func NewDocumentHandler(queryUC *billing.DocumentQueryUseCase, pdfUC *billing.PDFUseCase) *DocumentHandler {
	return &DocumentHandler{queryUC: queryUC, pdfUC: pdfUC}
}

// List godoc
// @Summary      List committed documents
// @Tags         documents
// @Produce      json
// @Param        kind   query  string  false  "document kind"
// @Param        q      query  string  false  "party name or number search"
// @Param        from   query  string  false  "YYYY-MM-DD"
// @Param        to     query  string  false  "YYYY-MM-DD, inclusive"
// @Param        limit  query  int     false  "page size"
// @Param        offset query  int     false  "page offset"
// @Success      200  {object}  dto.ListDocumentsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var in dto.ListDocumentsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid query params"})
	}
	out, err := h.queryUC.List(c.UserContext(), in)
	if err != nil {
		return writeDocumentError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Read one committed document
// @Tags         documents
// @Produce      json
// @Param        id  path  string  true  "document id"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	out, err := h.queryUC.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeDocumentError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Download the document print view as PDF
// @Tags         documents
// @Produce      application/pdf
// @Param        id  path  string  true  "document id"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) DownloadPDF(c *fiber.Ctx) error {
	payload, filename, err := h.pdfUC.DownloadDocumentPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeDocumentError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(payload)
}

// ExportXML godoc
// @Summary      Export the document as bridge XML
// @Tags         documents
// @Produce      application/xml
// @Param        id  path  string  true  "document id"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/export.xml [get]
func (h *DocumentHandler) ExportXML(c *fiber.Ctx) error {
	payload, filename, err := h.queryUC.ExportXML(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeDocumentError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(payload)
}

func writeDocumentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "document not found"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
