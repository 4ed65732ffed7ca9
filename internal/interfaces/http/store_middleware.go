package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
)

// storeChecker es el contrato mínimo que necesitan el middleware y /health.
// Lo implementa *sqlstore.Store.
type storeChecker interface {
	Name() string
	Ping(ctx context.Context) error
	Version(ctx context.Context) (int, error)
}

// RequireStore devuelve un middleware que corta con 503 cuando el almacén no pudo abrirse.
// openErr es el error de sqlstore.Open (nil = almacén disponible).
//
// Comportamiento:
//   - openErr != nil → 503 STORE_UNAVAILABLE para toda ruta del grupo.
//   - openErr == nil → sigue al handler.
func RequireStore(openErr error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if openErr != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "STORE_UNAVAILABLE",
				Message: "almacén de datos no disponible; la API funciona en modo degradado",
			})
		}
		return c.Next()
	}
}

// HealthHandler responde /health.
type HealthHandler struct {
	store   storeChecker
	openErr error
}

// NewHealthHandler construye el handler. store es nil en modo degradado.
func NewHealthHandler(store storeChecker, openErr error) *HealthHandler {
	return &HealthHandler{store: store, openErr: openErr}
}

// HealthResponse estado del servicio.
type HealthResponse struct {
	Status        string `json:"status"` // ok | degraded
	Store         string `json:"store,omitempty"`
	SchemaVersion int    `json:"schema_version,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if h.openErr != nil || h.store == nil {
		msg := "store not configured"
		if h.openErr != nil {
			msg = h.openErr.Error()
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{Status: "degraded", Error: msg})
	}
	if err := h.store.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{Status: "degraded", Store: h.store.Name(), Error: err.Error()})
	}
	version, err := h.store.Version(c.Context())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{Status: "degraded", Store: h.store.Name(), Error: err.Error()})
	}
	return c.JSON(HealthResponse{Status: "ok", Store: h.store.Name(), SchemaVersion: version})
}
