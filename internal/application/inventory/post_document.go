package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// DocumentDraft cabecera enviada por el llamador para contabilizar.
type DocumentDraft struct {
	DocNumber     string // vacío = se genera ENT-/ISS-
	Type          entity.DocumentType
	Date          time.Time // cero = ahora
	WarehouseID   int64
	DepartmentID  *int64
	DivisionID    *int64
	UnitID        *int64
	SupplierID    *int64
	RecipientName string
	EntryType     string
	Notes         string
	// Custody asigna el material de una salida a un empleado del departamento.
	Custody *CustodyAssignment

	reversesDocID *int64
}

// DraftLine renglón del borrador. ItemID nil = renglón aún sin artículo (se omite).
type DraftLine struct {
	ItemID   *int64
	Quantity decimal.Decimal
}

// CustodyAssignment datos de la custodia creada por una salida.
type CustodyAssignment struct {
	EmployeeID   string
	EmployeeName string
	Condition    string
}

// DefaultCustodyCondition estado físico por defecto del material entregado.
const DefaultCustodyCondition = "جديد"

type validLine struct {
	index    int
	itemID   int64
	quantity decimal.Decimal
}

// PostingService único camino de escritura que mantiene consistentes
// documentos, movimientos y saldos.
type PostingService struct {
	tx       TxRunner
	notifier ChangeNotifier
	log      *logger.Logger
	now      func() time.Time
}

// NewPostingService construye el servicio. notifier puede ser nil.
func NewPostingService(tx TxRunner, notifier ChangeNotifier, log *logger.Logger) *PostingService {
	if log == nil {
		log = logger.Nop()
	}
	return &PostingService{tx: tx, notifier: notifier, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *PostingService) WithClock(now func() time.Time) *PostingService {
	s.now = now
	return s
}

// PostDocument crea la cabecera, un movimiento por renglón válido y actualiza (o crea) el saldo
// de cada (almacén, artículo), todo en una sola transacción. Devuelve el ID del documento.
//
// Errores: *domain.ValidationError (nada se escribe) o *domain.StoreWriteError (rollback total).
// No reintenta: reenviar un documento fallido puede duplicarlo.
func (s *PostingService) PostDocument(ctx context.Context, draft DocumentDraft, lines []DraftLine) (int64, error) {
	valid, err := validateDraft(draft, lines)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC()
	var doc *entity.Document
	var custodyCreated bool
	err = s.tx.Run(ctx, func(repos Repos) error {
		var err error
		doc, custodyCreated, err = s.post(ctx, repos, draft, valid, now)
		return err
	})
	if err != nil {
		return 0, s.fail("post document", err)
	}

	s.log.Info().
		Int64("document_id", doc.ID).
		Str("doc_number", doc.DocNumber).
		Str("type", string(doc.Type)).
		Int64("warehouse_id", doc.WarehouseID).
		Int("item_count", doc.ItemCount).
		Msg("documento contabilizado")

	s.committed(ctx, doc, custodyCreated, now)
	return doc.ID, nil
}

// ReverseDocument contabiliza un documento compensatorio del tipo contrario con los mismos
// renglones. Los movimientos originales no se tocan. Un documento solo puede revertirse una vez.
// Las custodias activas creadas por el documento original quedan como returned.
func (s *PostingService) ReverseDocument(ctx context.Context, docID int64, notes string) (int64, error) {
	now := s.now().UTC()
	var doc *entity.Document
	var returned int64
	err := s.tx.Run(ctx, func(repos Repos) error {
		orig, err := repos.Documents.GetByID(ctx, docID)
		if err != nil {
			return err
		}
		if orig == nil {
			return domain.ErrNotFound
		}
		movs, err := repos.Movements.ListByDocument(ctx, docID)
		if err != nil {
			return err
		}

		if notes == "" {
			notes = "عكس المستند " + orig.DocNumber
		}
		draft := DocumentDraft{
			Type:          orig.Type.Opposite(),
			Date:          now,
			WarehouseID:   orig.WarehouseID,
			DepartmentID:  orig.DepartmentID,
			DivisionID:    orig.DivisionID,
			UnitID:        orig.UnitID,
			SupplierID:    orig.SupplierID,
			RecipientName: deref(orig.RecipientName),
			EntryType:     entity.EntryTypeReversal,
			Notes:         notes,
			reversesDocID: &orig.ID,
		}
		lines := make([]DraftLine, 0, len(movs))
		for _, m := range movs {
			itemID := m.ItemID
			lines = append(lines, DraftLine{ItemID: &itemID, Quantity: m.Quantity})
		}
		valid, err := validateDraft(draft, lines)
		if err != nil {
			return err
		}

		doc, _, err = s.post(ctx, repos, draft, valid, now)
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.ErrConflict
		}
		if err != nil {
			return err
		}
		returned, err = repos.Custody.MarkByDocument(ctx, orig.ID, entity.CustodyStatusReturned)
		return err
	})
	if err != nil {
		return 0, s.fail("reverse document", err)
	}

	s.log.Info().
		Int64("document_id", doc.ID).
		Int64("reverses_doc_id", docID).
		Int64("custody_returned", returned).
		Msg("documento revertido")

	s.committed(ctx, doc, returned > 0, now)
	return doc.ID, nil
}

// post ejecuta la escritura dentro de la transacción ya abierta.
func (s *PostingService) post(
	ctx context.Context,
	repos Repos,
	draft DocumentDraft,
	valid []validLine,
	now time.Time,
) (*entity.Document, bool, error) {
	wh, err := repos.Warehouses.GetByID(ctx, draft.WarehouseID)
	if err != nil {
		return nil, false, err
	}
	if wh == nil {
		return nil, false, domain.NewValidationError("warehouse_id", "el almacén no existe")
	}
	if err := checkLookups(ctx, repos, draft); err != nil {
		return nil, false, err
	}

	// Artículos referenciados (cada uno se lee una sola vez).
	items := make(map[int64]*entity.Item, len(valid))
	total := decimal.Zero
	priced := false
	for _, l := range valid {
		item, ok := items[l.itemID]
		if !ok {
			item, err = repos.Items.GetByID(ctx, l.itemID)
			if err != nil {
				return nil, false, err
			}
			if item == nil {
				return nil, false, domain.NewValidationError(fmt.Sprintf("lines[%d].item_id", l.index), "el artículo no existe")
			}
			items[l.itemID] = item
		}
		if item.Price != nil {
			total = total.Add(l.quantity.Mul(*item.Price))
			priced = true
		}
	}

	date := draft.Date
	if date.IsZero() {
		date = now
	}
	docNumber := strings.TrimSpace(draft.DocNumber)
	if docNumber == "" {
		docNumber = generateDocNumber(draft.Type, now)
	}

	doc := &entity.Document{
		DocNumber:     docNumber,
		Type:          draft.Type,
		Date:          date.UTC(),
		WarehouseID:   draft.WarehouseID,
		DepartmentID:  draft.DepartmentID,
		DivisionID:    draft.DivisionID,
		UnitID:        draft.UnitID,
		SupplierID:    draft.SupplierID,
		RecipientName: optString(draft.RecipientName),
		EntryType:     optString(draft.EntryType),
		Notes:         optString(draft.Notes),
		Status:        entity.DocumentStatusApproved,
		ItemCount:     len(valid),
		ReversesDocID: draft.reversesDocID,
		CreatedAt:     now,
	}
	if priced {
		doc.TotalValue = &total
	}
	if err := repos.Documents.Create(ctx, doc); err != nil {
		return nil, false, err
	}

	for _, l := range valid {
		mov := &entity.Movement{
			DocID:        doc.ID,
			ItemID:       l.itemID,
			Type:         draft.Type,
			Quantity:     l.quantity,
			Date:         doc.Date,
			WarehouseID:  draft.WarehouseID,
			DepartmentID: draft.DepartmentID,
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return nil, false, err
		}

		// Lectura-modificación-escritura del saldo dentro de la misma transacción.
		bal, err := repos.Balances.GetForUpdate(ctx, draft.WarehouseID, l.itemID)
		if err != nil {
			return nil, false, err
		}
		if bal == nil {
			bal = &entity.InventoryBalance{
				WarehouseID: draft.WarehouseID,
				ItemID:      l.itemID,
				Quantity:    inventory.SignedQuantity(draft.Type, l.quantity),
				LastUpdated: now,
			}
			if err := repos.Balances.Create(ctx, bal); err != nil {
				return nil, false, err
			}
			continue
		}
		bal.Quantity = inventory.ApplyMovement(bal.Quantity, draft.Type, l.quantity)
		bal.LastUpdated = now
		if err := repos.Balances.Update(ctx, bal); err != nil {
			return nil, false, err
		}
	}

	if draft.Custody == nil {
		return doc, false, nil
	}
	condition := strings.TrimSpace(draft.Custody.Condition)
	if condition == "" {
		condition = DefaultCustodyCondition
	}
	for _, l := range valid {
		c := &entity.Custody{
			ItemID:       l.itemID,
			DepartmentID: *draft.DepartmentID,
			EmployeeID:   optString(draft.Custody.EmployeeID),
			EmployeeName: strings.TrimSpace(draft.Custody.EmployeeName),
			Quantity:     l.quantity,
			ReceivedDate: doc.Date,
			Condition:    condition,
			Status:       entity.CustodyStatusActive,
			DocID:        &doc.ID,
		}
		if err := repos.Custody.Create(ctx, c); err != nil {
			return nil, false, err
		}
	}
	return doc, true, nil
}

func (s *PostingService) committed(ctx context.Context, doc *entity.Document, custody bool, at time.Time) {
	if s.notifier == nil {
		return
	}
	tables := []Table{TableDocuments, TableMovements, TableInventory}
	if custody {
		tables = append(tables, TableCustody)
	}
	s.notifier.Notify(ctx, Change{Tables: tables, DocumentID: doc.ID, At: at})
}

// fail deja pasar los errores de dominio y envuelve el resto como StoreWriteError.
func (s *PostingService) fail(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrStoreWrite):
		s.log.Warn().Err(err).Str("op", op).Msg("contabilización rechazada")
		return err
	}
	s.log.Error().Err(err).Str("op", op).Msg("transacción abortada, rollback completo")
	return &domain.StoreWriteError{Op: op, Err: err}
}

// validateDraft validaciones sin E/S; se ejecutan antes de abrir la transacción.
func validateDraft(draft DocumentDraft, lines []DraftLine) ([]validLine, error) {
	if !draft.Type.Valid() {
		return nil, domain.NewValidationError("type", "debe ser entry o issuance")
	}
	if draft.WarehouseID <= 0 {
		return nil, domain.NewValidationError("warehouse_id", "es requerido")
	}
	if len(lines) == 0 {
		return nil, domain.NewValidationError("lines", "el documento no tiene renglones")
	}

	valid := make([]validLine, 0, len(lines))
	for i, l := range lines {
		if l.ItemID == nil {
			continue
		}
		if !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.NewValidationError(fmt.Sprintf("lines[%d].quantity", i), "debe ser mayor que cero")
		}
		valid = append(valid, validLine{index: i, itemID: *l.ItemID, quantity: l.Quantity})
	}
	if len(valid) == 0 {
		return nil, domain.NewValidationError("lines", "ningún renglón tiene artículo seleccionado")
	}

	if c := draft.Custody; c != nil {
		if draft.Type != entity.DocumentTypeIssuance {
			return nil, domain.NewValidationError("custody", "solo aplica a documentos de salida")
		}
		if draft.DepartmentID == nil {
			return nil, domain.NewValidationError("department_id", "requerido para asignar custodia")
		}
		if strings.TrimSpace(c.EmployeeName) == "" {
			return nil, domain.NewValidationError("custody.employee_name", "es requerido")
		}
	}
	return valid, nil
}

func checkLookups(ctx context.Context, repos Repos, draft DocumentDraft) error {
	refs := []struct {
		table entity.LookupTable
		field string
		id    *int64
	}{
		{entity.LookupDepartments, "department_id", draft.DepartmentID},
		{entity.LookupDivisions, "division_id", draft.DivisionID},
		{entity.LookupUnits, "unit_id", draft.UnitID},
		{entity.LookupSuppliers, "supplier_id", draft.SupplierID},
	}
	for _, r := range refs {
		if r.id == nil {
			continue
		}
		ok, err := repos.Lookups.Exists(ctx, r.table, *r.id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewValidationError(r.field, "referencia inexistente")
		}
	}
	return nil
}

func generateDocNumber(t entity.DocumentType, now time.Time) string {
	prefix := "ENT"
	if t == entity.DocumentTypeIssuance {
		prefix = "ISS"
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
