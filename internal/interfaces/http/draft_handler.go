package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kritagya/pharmacare-api/internal/application/billing"
	"github.com/kritagya/pharmacare-api/internal/application/draft"
	"github.com/kritagya/pharmacare-api/internal/application/dto"
	"github.com/kritagya/pharmacare-api/internal/domain"
	"github.com/kritagya/pharmacare-api/internal/domain/document"
	"github.com/kritagya/pharmacare-api/internal/domain/entity"
)

// DraftHandler drives the compose flow: create a draft, append/remove
// entries, read it back with live totals, reset, commit, discard.
type DraftHandler struct {
	registry  *draft.Registry
	committer *billing.Committer
}

// NewDraftHandler builds the draft handler.
func NewDraftHandler(registry *draft.Registry, committer *billing.Committer) *DraftHandler {
	return &DraftHandler{registry: registry, committer: committer}
}

// Create godoc
// @Summary      Open a new draft
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDraftRequest  true  "kind"
// @Success      201   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	kind, err := document.Parse(in.Kind)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error(), Fields: []string{"kind"}})
	}
	d := h.registry.Create(kind, GetUserID(c))
	return c.Status(fiber.StatusCreated).JSON(toDraftResponse(d))
}

// Get godoc
// @Summary      Read a draft with live totals
// @Tags         drafts
// @Produce      json
// @Param        id  path  string  true  "draft id"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	d, err := h.registry.Get(c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDraftError(c, err)
	}
	return c.JSON(toDraftResponse(d))
}

// AppendHeader godoc
// @Summary      Append a header group
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "draft id"
// @Param        body  body  dto.HeaderGroupInput  true  "header group"
// @Success      201   {object}  dto.HeaderGroupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/headers [post]
func (h *DraftHandler) AppendHeader(c *fiber.Ctx) error {
	d, err := h.registry.Get(c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDraftError(c, err)
	}
	var in dto.HeaderGroupInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	hg, err := d.AppendHeaderGroup(in)
	if err != nil {
		return writeDraftError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toHeaderGroupResponse(hg))
}

// RemoveHeader removes one header group; idempotent.
func (h *DraftHandler) RemoveHeader(c *fiber.Ctx) error {
	d, err := h.registry.Get(c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDraftError(c, err)
	}
	if err := d.RemoveHeaderGroup(c.Params("localID")); err != nil {
		return writeDraftError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AppendLine godoc
// @Summary      Append a line item
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "draft id"
// @Param        body  body  dto.LineItemInput  true  "line item, numerics as raw text"
// @Success      201   {object}  dto.LineItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/lines [post]
func (h *DraftHandler) AppendLine(c *fiber.Ctx) error {
	d, err := h.registry.Get(c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDraftError(c, err)
	}
	var in dto.LineItemInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	li, err := d.AppendLineItem(in)
	if err != nil {
		return writeDraftError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLineItemResponse(li))
}

// RemoveLine removes one line item; idempotent.
func (h *DraftHandler) RemoveLine(c *fiber.Ctx) error {
	d, err := h.registry.Get(c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDraftError(c, err)
	}
	if err := d.RemoveLineItem(c.Params("localID")); err != nil {
		return writeDraftError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AppendPayment godoc
// @Summary      Append a payment entry
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "draft id"
// @Param        body  body  dto.PaymentInput  true  "payment entry"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/payments [post]
func (h *DraftHandler) AppendPayment(c *fiber.Ctx) error {
	d, err := h.registry.Get(c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDraftError(c, err)
	}
	var in dto.PaymentInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	p, err := d.AppendPayment(in)
	if err != nil {
		return writeDraftError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(p))
}

// RemovePayment removes one payment entry; idempotent.
func (h *DraftHandler) RemovePayment(c *fiber.Ctx) error {
	d, err := h.registry.Get(c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDraftError(c, err)
	}
	if err := d.RemovePayment(c.Params("localID")); err != nil {
		return writeDraftError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetStep records the wizard step index for multi-step compose UIs.
func (h *DraftHandler) SetStep(c *fiber.Ctx) error {
	d, err := h.registry.Get(c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDraftError(c, err)
	}
	var in struct {
		Step int `json:"step"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	d.SetStep(in.Step)
	return c.JSON(fiber.Map{"current_step": d.Step()})
}

// Reset godoc
// @Summary      Clear all draft contents
// @Tags         drafts
// @Produce      json
// @Param        id  path  string  true  "draft id"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/reset [post]
func (h *DraftHandler) Reset(c *fiber.Ctx) error {
	d, err := h.registry.Get(c.Params("id"), GetUserID(c))
	if err != nil {
		return writeDraftError(c, err)
	}
	if err := d.Reset(); err != nil {
		return writeDraftError(c, err)
	}
	return c.JSON(toDraftResponse(d))
}

// Commit godoc
// @Summary      Commit the draft as one document
// @Tags         drafts
// @Produce      json
// @Param        id  path  string  true  "draft id"
// @Success      201  {object}  dto.CommitResponse
// @Failure      409  {object}  dto.ErrorResponse  "commit already in flight"
// @Failure      422  {object}  dto.ErrorResponse  "incomplete draft"
// @Failure      500  {object}  dto.ErrorResponse  "partial write"
// @Failure      502  {object}  dto.ErrorResponse  "persistence failure, retry allowed"
// @Router       /api/drafts/{id}/commit [post]
func (h *DraftHandler) Commit(c *fiber.Ctx) error {
	userID := GetUserID(c)
	d, err := h.registry.Get(c.Params("id"), userID)
	if err != nil {
		return writeDraftError(c, err)
	}
	resp, err := h.committer.Commit(c.UserContext(), d, userID)
	if err != nil {
		return writeDraftError(c, err)
	}
	h.registry.Discard(d.ID(), userID)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Discard drops the draft without persisting anything; idempotent.
func (h *DraftHandler) Discard(c *fiber.Ctx) error {
	h.registry.Discard(c.Params("id"), GetUserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// writeDraftError maps engine errors to HTTP statuses. Order matters:
// PartialWriteError before PersistenceError, typed errors before sentinels.
func writeDraftError(c *fiber.Ctx, err error) error {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: validation.Error(), Fields: validation.Fields,
		})
	}
	var incomplete *domain.IncompleteDocumentError
	if errors.As(err, &incomplete) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INCOMPLETE", Message: incomplete.Error(),
		})
	}
	var partial *domain.PartialWriteError
	if errors.As(err, &partial) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "PARTIAL_WRITE", Message: partial.Error(),
		})
	}
	var persistence *domain.PersistenceError
	if errors.As(err, &persistence) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "PERSISTENCE", Message: "storage rejected the write; the draft is intact, retry the commit",
		})
	}
	switch {
	case errors.Is(err, domain.ErrCommitInFlight):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMMIT_IN_FLIGHT", Message: "a commit for this draft is already in flight"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "draft not found"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// ── mappers ──────────────────────────────────────────────────────────────────

func toDraftResponse(d *draft.Draft) dto.DraftResponse {
	snap := d.Snapshot()
	resp := dto.DraftResponse{
		ID:           snap.DraftID,
		Kind:         string(snap.Kind),
		CurrentStep:  snap.CurrentStep,
		HeaderGroups: make([]dto.HeaderGroupResponse, 0, len(snap.HeaderGroups)),
		LineItems:    make([]dto.LineItemResponse, 0, len(snap.LineItems)),
		Payments:     make([]dto.PaymentResponse, 0, len(snap.Payments)),
		Totals:       billing.TotalsFor(snap),
	}
	for _, hg := range snap.HeaderGroups {
		resp.HeaderGroups = append(resp.HeaderGroups, toHeaderGroupResponse(hg))
	}
	for _, li := range snap.LineItems {
		resp.LineItems = append(resp.LineItems, toLineItemResponse(li))
	}
	for _, p := range snap.Payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(p))
	}
	return resp
}

func toHeaderGroupResponse(hg entity.HeaderGroup) dto.HeaderGroupResponse {
	return dto.HeaderGroupResponse{
		LocalID:       hg.LocalID,
		Name:          hg.Name,
		Phone:         hg.Phone,
		Email:         hg.Email,
		Address:       hg.Address,
		Reference:     hg.Reference,
		ReferenceDate: hg.ReferenceDate.Format("2006-01-02"),
	}
}

func toLineItemResponse(li entity.LineItem) dto.LineItemResponse {
	return dto.LineItemResponse{
		LocalID:         li.LocalID,
		Name:            li.Name,
		Quantity:        li.Quantity,
		UnitPrice:       li.UnitPrice,
		DiscountPercent: li.DiscountPercent,
		DiscountAmount:  li.DiscountAmount,
		TaxPercent:      li.TaxPercent,
		BatchNumber:     li.BatchNumber,
		Unit:            li.Unit,
		Remark:          li.Remark,
	}
}

func toPaymentResponse(p entity.PaymentEntry) dto.PaymentResponse {
	return dto.PaymentResponse{
		LocalID: p.LocalID,
		Amount:  p.Amount,
		Method:  p.Method,
		Status:  p.Status,
	}
}
