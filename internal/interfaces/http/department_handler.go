package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/application/portal"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
)

// DepartmentHandler departamentos y sus custodias.
type DepartmentHandler struct {
	uc      *usecase.DepartmentUseCase
	queries *inventory.QueryService
}

// NewDepartmentHandler construye el handler.
func NewDepartmentHandler(uc *usecase.DepartmentUseCase, queries *inventory.QueryService) *DepartmentHandler {
	return &DepartmentHandler{uc: uc, queries: queries}
}

// List godoc
// @Summary      Listar departamentos
// @Tags         departments
// @Produce      json
// @Success      200  {array}  dto.DepartmentResponse
// @Router       /api/departments [get]
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Custody godoc
// @Summary      Custodias activas del departamento
// @Tags         departments
// @Produce      json
// @Param        id   path  int  true  "ID del departamento"
// @Success      200  {array}   dto.CustodyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/departments/{id}/custody [get]
func (h *DepartmentHandler) Custody(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.queries.CustodyFor(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CustodyResponse, 0, len(list))
	for _, cu := range list {
		out = append(out, portal.ToCustodyResponse(cu))
	}
	return c.JSON(out)
}
