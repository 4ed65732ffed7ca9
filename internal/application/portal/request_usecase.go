package portal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// RequestDraft solicitud de material enviada por un departamento.
type RequestDraft struct {
	DepartmentID int64
	RequestedBy  string
	Notes        string
	Items        []entity.RequestItem
}

// RequestUseCase flujo de solicitudes: alta en pending y procesamiento único (approved | rejected).
// Aprobar no mueve stock; la salida se contabiliza aparte como documento.
type RequestUseCase struct {
	tx       inventory.TxRunner
	notifier inventory.ChangeNotifier
	log      *logger.Logger
	now      func() time.Time
}

// NewRequestUseCase construye el caso de uso. notifier puede ser nil.
func NewRequestUseCase(tx inventory.TxRunner, notifier inventory.ChangeNotifier, log *logger.Logger) *RequestUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RequestUseCase{tx: tx, notifier: notifier, log: log.Component("portal"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *RequestUseCase) WithClock(now func() time.Time) *RequestUseCase {
	uc.now = now
	return uc
}

// Create registra la solicitud en estado pending y devuelve su ID.
func (uc *RequestUseCase) Create(ctx context.Context, draft RequestDraft) (int64, error) {
	if draft.DepartmentID <= 0 {
		return 0, domain.NewValidationError("department_id", "es requerido")
	}
	if len(draft.Items) == 0 {
		return 0, domain.NewValidationError("items", "se requiere al menos un artículo")
	}
	for i, it := range draft.Items {
		if it.ItemID <= 0 {
			return 0, domain.NewValidationError(fmt.Sprintf("items[%d].item_id", i), "es requerido")
		}
		if !it.Quantity.IsPositive() {
			return 0, domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "debe ser mayor que cero")
		}
	}

	now := uc.now().UTC()
	req := &entity.Request{
		DepartmentID: draft.DepartmentID,
		Items:        entity.RequestItems(draft.Items),
		Status:       entity.RequestStatusPending,
		RequestedBy:  strings.TrimSpace(draft.RequestedBy),
		CreatedAt:    now,
	}
	if n := strings.TrimSpace(draft.Notes); n != "" {
		req.Notes = &n
	}

	err := uc.tx.Run(ctx, func(repos inventory.Repos) error {
		ok, err := repos.Lookups.Exists(ctx, entity.LookupDepartments, draft.DepartmentID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewValidationError("department_id", "el departamento no existe")
		}
		for i, it := range draft.Items {
			item, err := repos.Items.GetByID(ctx, it.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.NewValidationError(fmt.Sprintf("items[%d].item_id", i), "el artículo no existe")
			}
		}
		return repos.Requests.Create(ctx, req)
	})
	if err != nil {
		return 0, uc.fail("create request", err)
	}

	uc.log.Info().
		Int64("request_id", req.ID).
		Int64("department_id", req.DepartmentID).
		Int("item_count", len(req.Items)).
		Msg("solicitud registrada")
	uc.committed(ctx, req.ID, now)
	return req.ID, nil
}

// Approve marca la solicitud como aprobada.
func (uc *RequestUseCase) Approve(ctx context.Context, id int64, by string) error {
	return uc.process(ctx, id, entity.RequestStatusApproved, by)
}

// Reject marca la solicitud como rechazada.
func (uc *RequestUseCase) Reject(ctx context.Context, id int64, by string) error {
	return uc.process(ctx, id, entity.RequestStatusRejected, by)
}

// GetByID obtiene una solicitud. ErrNotFound si no existe.
func (uc *RequestUseCase) GetByID(ctx context.Context, id int64) (*entity.Request, error) {
	var req *entity.Request
	err := uc.tx.RunReadOnly(ctx, func(repos inventory.Repos) error {
		var err error
		req, err = repos.Requests.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

func (uc *RequestUseCase) process(ctx context.Context, id int64, to entity.RequestStatus, by string) error {
	by = strings.TrimSpace(by)
	if by == "" {
		return domain.NewValidationError("processed_by", "es requerido")
	}

	now := uc.now().UTC()
	err := uc.tx.Run(ctx, func(repos inventory.Repos) error {
		applied, err := repos.Requests.Transition(ctx, id, entity.RequestStatusPending, to, by, now)
		if err != nil {
			return err
		}
		if applied {
			return nil
		}
		existing, err := repos.Requests.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return fmt.Errorf("request %d is %s: %w", id, existing.Status, domain.ErrConflict)
	})
	if err != nil {
		return uc.fail("process request", err)
	}

	uc.log.Info().
		Int64("request_id", id).
		Str("status", string(to)).
		Str("processed_by", by).
		Msg("solicitud procesada")
	uc.committed(ctx, id, now)
	return nil
}

func (uc *RequestUseCase) committed(ctx context.Context, id int64, at time.Time) {
	if uc.notifier == nil {
		return
	}
	uc.notifier.Notify(ctx, inventory.Change{Tables: []inventory.Table{inventory.TableRequests}, RequestID: id, At: at})
}

func (uc *RequestUseCase) fail(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict):
		uc.log.Warn().Err(err).Str("op", op).Msg("solicitud rechazada")
		return err
	}
	uc.log.Error().Err(err).Str("op", op).Msg("transacción abortada")
	return &domain.StoreWriteError{Op: op, Err: err}
}

// DraftFromDTO convierte el body HTTP en borrador.
func DraftFromDTO(in dto.CreateRequestRequest) RequestDraft {
	items := make([]entity.RequestItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.RequestItem{ItemID: it.ItemID, Quantity: it.Quantity, Notes: it.Notes})
	}
	return RequestDraft{
		DepartmentID: in.DepartmentID,
		RequestedBy:  in.RequestedBy,
		Notes:        in.Notes,
		Items:        items,
	}
}

// ToRequestResponse entidad → DTO.
func ToRequestResponse(r *entity.Request) dto.RequestResponse {
	out := dto.RequestResponse{
		ID:           r.ID,
		DepartmentID: r.DepartmentID,
		Items:        make([]dto.RequestItemDTO, 0, len(r.Items)),
		Status:       string(r.Status),
		RequestedBy:  r.RequestedBy,
		CreatedAt:    r.CreatedAt,
		ProcessedAt:  r.ProcessedAt,
	}
	for _, it := range r.Items {
		out.Items = append(out.Items, dto.RequestItemDTO{ItemID: it.ItemID, Quantity: it.Quantity, Notes: it.Notes})
	}
	if r.Notes != nil {
		out.Notes = *r.Notes
	}
	if r.ProcessedBy != nil {
		out.ProcessedBy = *r.ProcessedBy
	}
	return out
}

// ToCustodyResponse entidad → DTO.
func ToCustodyResponse(c *entity.Custody) dto.CustodyResponse {
	return dto.CustodyResponse{
		ID:           c.ID,
		ItemID:       c.ItemID,
		DepartmentID: c.DepartmentID,
		EmployeeID:   derefOr(c.EmployeeID),
		EmployeeName: c.EmployeeName,
		Quantity:     c.Quantity,
		ReceivedDate: c.ReceivedDate,
		Condition:    c.Condition,
		Status:       string(c.Status),
		DocID:        c.DocID,
	}
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
