package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
)

// InventoryHandler consultas de saldos y movimientos por almacén.
type InventoryHandler struct {
	queries *inventory.QueryService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(queries *inventory.QueryService) *InventoryHandler {
	return &InventoryHandler{queries: queries}
}

// Snapshot godoc
// @Summary      Inventario del almacén
// @Description  Todos los artículos con su saldo en el almacén (0 si nunca tuvieron movimientos), ordenados por nombre.
// @Tags         inventory
// @Produce      json
// @Param        id   path  int  true  "ID del almacén"
// @Success      200  {array}   dto.InventorySnapshotRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock [get]
func (h *InventoryHandler) Snapshot(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.queries.InventorySnapshot(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// Stock godoc
// @Summary      Saldo de un artículo
// @Tags         inventory
// @Produce      json
// @Param        id      path  int  true  "ID del almacén"
// @Param        itemId  path  int  true  "ID del artículo"
// @Success      200     {object}  dto.StockResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock/{itemId} [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	whID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return respondError(c, err)
	}
	qty, err := h.queries.StockFor(c.Context(), whID, itemID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{WarehouseID: whID, ItemID: itemID, Quantity: qty})
}

// Movements godoc
// @Summary      Historial de movimientos
// @Description  Movimientos del almacén, más recientes primero, con el saldo del artículo después de cada uno. Sin limit devuelve todo el historial desde offset.
// @Tags         inventory
// @Produce      json
// @Param        id      path   int  true   "ID del almacén"
// @Param        limit   query  int  false  "Máximo de filas (0 = todas)"
// @Param        offset  query  int  false  "Filas a saltar"
// @Success      200     {object}  dto.MovementListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.queries.MovementPage(c.Context(), id, c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}
