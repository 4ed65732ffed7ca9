package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/application/portal"
)

// RequestHandler solicitudes de material de los departamentos.
type RequestHandler struct {
	uc      *portal.RequestUseCase
	queries *inventory.QueryService
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *portal.RequestUseCase, queries *inventory.QueryService) *RequestHandler {
	return &RequestHandler{uc: uc, queries: queries}
}

// Create godoc
// @Summary      Registrar solicitud
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequestRequest  true  "department_id, requested_by, items"
// @Success      201   {object}  dto.RequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequestRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	id, err := h.uc.Create(c.Context(), portal.DraftFromDTO(in))
	if err != nil {
		return respondError(c, err)
	}
	req, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(portal.ToRequestResponse(req))
}

// Pending godoc
// @Summary      Solicitudes pendientes
// @Tags         requests
// @Produce      json
// @Success      200  {array}  dto.RequestResponse
// @Router       /api/requests/pending [get]
func (h *RequestHandler) Pending(c *fiber.Ctx) error {
	list, err := h.queries.PendingRequests(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.RequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, portal.ToRequestResponse(r))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener solicitud
// @Tags         requests
// @Produce      json
// @Param        id   path  int  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	req, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(portal.ToRequestResponse(req))
}

// Approve godoc
// @Summary      Aprobar solicitud
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID de la solicitud"
// @Param        body  body  dto.ProcessRequestRequest  true  "processed_by"
// @Success      200   {object}  dto.RequestResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	return h.process(c, h.uc.Approve)
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID de la solicitud"
// @Param        body  body  dto.ProcessRequestRequest  true  "processed_by"
// @Success      200   {object}  dto.RequestResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	return h.process(c, h.uc.Reject)
}

func (h *RequestHandler) process(c *fiber.Ctx, apply func(ctx context.Context, id int64, by string) error) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ProcessRequestRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := apply(c.Context(), id, in.ProcessedBy); err != nil {
		return respondError(c, err)
	}
	req, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(portal.ToRequestResponse(req))
}
