package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
)

// DocumentHandler contabilización, reversa y consulta de documentos.
type DocumentHandler struct {
	posting  *inventory.PostingService
	queries  *inventory.QueryService
	vouchers *inventory.VoucherUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(posting *inventory.PostingService, queries *inventory.QueryService, vouchers *inventory.VoucherUseCase) *DocumentHandler {
	return &DocumentHandler{posting: posting, queries: queries, vouchers: vouchers}
}

// Post godoc
// @Summary      Contabilizar documento
// @Description  Crea la cabecera, un movimiento por renglón con artículo y actualiza los saldos en una sola transacción.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostDocumentRequest  true  "type (entry|issuance), warehouse_id, lines"
// @Success      201   {object}  dto.PostDocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Post(c *fiber.Ctx) error {
	var in dto.PostDocumentRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	draft, lines := inventory.DraftFromRequest(in)
	id, err := h.posting.PostDocument(c.Context(), draft, lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PostDocumentResponse{DocumentID: id})
}

// GetByID godoc
// @Summary      Detalle de documento
// @Tags         documents
// @Produce      json
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {object}  dto.DocumentDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.queries.DocumentDetail(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reverse godoc
// @Summary      Revertir documento
// @Description  Contabiliza un documento compensatorio del tipo contrario. Un documento solo se revierte una vez.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true   "ID del documento"
// @Param        body  body  dto.ReverseDocumentRequest  false  "Notas"
// @Success      201   {object}  dto.PostDocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/reverse [post]
func (h *DocumentHandler) Reverse(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ReverseDocumentRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &in); err != nil {
			return respondError(c, err)
		}
	}
	revID, err := h.posting.ReverseDocument(c.Context(), id, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PostDocumentResponse{DocumentID: revID})
}

// Voucher godoc
// @Summary      Comprobante PDF
// @Tags         documents
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/voucher [get]
func (h *DocumentHandler) Voucher(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	pdf, docNumber, err := h.vouchers.Voucher(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, docNumber))
	return c.Send(pdf)
}
