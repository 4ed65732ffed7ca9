package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/pdf"
)

func sampleDocument() *entity.Document {
	total := decimal.RequireFromString("62.5")
	notes := "entrega mensual"
	return &entity.Document{
		ID:          7,
		DocNumber:   "ENT-20260301-ab12cd34",
		Type:        entity.DocumentTypeEntry,
		Date:        time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		WarehouseID: 1,
		Notes:       &notes,
		Status:      entity.DocumentStatusApproved,
		ItemCount:   2,
		TotalValue:  &total,
	}
}

func TestGenerateVoucherPDF_DevuelvePDF(t *testing.T) {
	price := decimal.RequireFromString("12.5")
	lines := []*entity.DocumentLine{
		{ItemID: 1, ItemCode: "IT-1", ItemName: "ورق طباعة", ItemUnit: "رزمة", Quantity: decimal.NewFromInt(5), UnitPrice: &price},
		{ItemID: 2, ItemCode: "IT-2", ItemName: "Boligrafos", ItemUnit: "caja", Quantity: decimal.NewFromInt(3)},
	}

	out, err := pdf.NewVoucherGenerator("Almacén central").GenerateVoucherPDF(
		context.Background(), sampleDocument(), &entity.Warehouse{ID: 1, Code: "W-MAIN", Name: "Principal"}, lines)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
	assert.Greater(t, len(out), 1000)
}

func TestGenerateVoucherPDF_SinRenglones(t *testing.T) {
	doc := sampleDocument()
	doc.TotalValue = nil
	doc.Type = entity.DocumentTypeIssuance

	out, err := pdf.NewVoucherGenerator("").GenerateVoucherPDF(context.Background(), doc, &entity.Warehouse{ID: 1}, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestQRPayload(t *testing.T) {
	assert.Equal(t,
		"DOC:ENT-20260301-ab12cd34|ID:7|TYPE:entry|DATE:2026-03-01|ITEMS:2",
		pdf.QRPayload(sampleDocument()))
}
