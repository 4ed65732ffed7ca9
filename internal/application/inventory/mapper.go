package inventory

import (
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

func toDocumentResponse(d *entity.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:            d.ID,
		DocNumber:     d.DocNumber,
		Type:          string(d.Type),
		Date:          d.Date,
		WarehouseID:   d.WarehouseID,
		DepartmentID:  d.DepartmentID,
		DivisionID:    d.DivisionID,
		UnitID:        d.UnitID,
		SupplierID:    d.SupplierID,
		RecipientName: deref(d.RecipientName),
		EntryType:     deref(d.EntryType),
		Notes:         deref(d.Notes),
		Status:        string(d.Status),
		ItemCount:     d.ItemCount,
		TotalValue:    d.TotalValue,
		ReversesDocID: d.ReversesDocID,
		CreatedAt:     d.CreatedAt,
	}
}

func toDocumentLineResponse(l *entity.DocumentLine) dto.DocumentLineResponse {
	return dto.DocumentLineResponse{
		ItemID:    l.ItemID,
		ItemCode:  l.ItemCode,
		ItemName:  l.ItemName,
		Unit:      l.ItemUnit,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
	}
}

func toItemMovement(m *entity.MovementLine) dto.ItemMovement {
	return dto.ItemMovement{
		ID:             m.ID,
		DocID:          m.DocID,
		DocNumber:      m.DocNumber,
		Date:           m.Date,
		Type:           string(m.Type),
		ItemID:         m.ItemID,
		ItemCode:       m.ItemCode,
		ItemName:       m.ItemName,
		Unit:           m.ItemUnit,
		Quantity:       m.Quantity,
		DepartmentName: m.DepartmentName,
	}
}

// DraftFromRequest convierte el body HTTP en borrador + renglones.
func DraftFromRequest(in dto.PostDocumentRequest) (DocumentDraft, []DraftLine) {
	draft := DocumentDraft{
		DocNumber:     in.DocNumber,
		Type:          entity.DocumentType(in.Type),
		WarehouseID:   in.WarehouseID,
		DepartmentID:  in.DepartmentID,
		DivisionID:    in.DivisionID,
		UnitID:        in.UnitID,
		SupplierID:    in.SupplierID,
		RecipientName: in.RecipientName,
		EntryType:     in.EntryType,
		Notes:         in.Notes,
	}
	if in.Date != nil {
		draft.Date = *in.Date
	}
	if in.Custody != nil {
		draft.Custody = &CustodyAssignment{
			EmployeeID:   in.Custody.EmployeeID,
			EmployeeName: in.Custody.EmployeeName,
			Condition:    in.Custody.Condition,
		}
	}
	lines := make([]DraftLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, DraftLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return draft, lines
}
