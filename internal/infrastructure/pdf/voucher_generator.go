// Package pdf genera el comprobante imprimible de un documento de inventario contabilizado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento + N°  │  Fecha + Almacén          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Destinatario / Tipo de entrada / Notas               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Código | Artículo | Unidad | Cant | P.Unit | Val │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: renglones / VALOR TOTAL                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de referencia + firmas                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// VoucherGenerator implementa inventory.VoucherGenerator usando Maroto v2.
type VoucherGenerator struct {
	author string
}

var _ inventory.VoucherGenerator = (*VoucherGenerator)(nil)

// NewVoucherGenerator construye el generador. author aparece en los metadatos del PDF.
func NewVoucherGenerator(author string) *VoucherGenerator {
	return &VoucherGenerator{author: author}
}

// GenerateVoucherPDF genera el PDF y devuelve sus bytes.
func (g *VoucherGenerator) GenerateVoucherPDF(
	_ context.Context,
	doc *entity.Document,
	warehouse *entity.Warehouse,
	lines []*entity.DocumentLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante "+doc.DocNumber, true).
		WithAuthor(nonEmpty(g.author, "inventory-ledger"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, warehouse))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailsRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc, lines))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc *entity.Document, warehouse *entity.Warehouse) core.Row {
	title := "COMPROBANTE DE ENTRADA"
	if doc.Type == entity.DocumentTypeIssuance {
		title = "COMPROBANTE DE SALIDA"
	}
	if doc.ReversesDocID != nil {
		title += " (REVERSA)"
	}
	whLabel := warehouse.Code
	if warehouse.Name != "" {
		whLabel = warehouse.Code + " " + warehouse.Name
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+doc.DocNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+doc.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Almacén: "+nonEmpty(whLabel, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+string(doc.Status), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func detailsRow(doc *entity.Document) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DEL DOCUMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Destinatario: %s   |   Tipo de entrada: %s",
				nonEmpty(deref(doc.RecipientName), "-"),
				nonEmpty(deref(doc.EntryType), "-"),
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New("Notas: "+nonEmpty(deref(doc.Notes), "-"), props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Código", 2, align.Left),
		h("Artículo", 4, align.Left),
		h("Unidad", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("P. Unit.", 1, align.Right),
		h("Valor", 2, align.Right),
	)
}

func tableLineRows(lines []*entity.DocumentLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		unitPrice, value := "-", "-"
		if l.UnitPrice != nil {
			unitPrice = l.UnitPrice.StringFixed(2)
			value = l.UnitPrice.Mul(l.Quantity).StringFixed(2)
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.ItemCode, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(nonEmpty(l.ItemName, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(nonEmpty(l.ItemUnit, "-"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(l.Quantity.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(unitPrice, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(value, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(doc *entity.Document, lines []*entity.DocumentLine) core.Row {
	total := "-"
	switch {
	case doc.TotalValue != nil:
		total = doc.TotalValue.StringFixed(2)
	default:
		if sum, ok := sumValues(lines); ok {
			total = sum.StringFixed(2)
		}
	}

	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Renglones:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2}),
			text.New("VALOR TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(strconv.Itoa(doc.ItemCount), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(total, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 6,
			}),
		),
	)
}

// footerRow: QR con la referencia del documento + espacio para firmas.
func footerRow(doc *entity.Document) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(QRPayload(doc), props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Entregado por: ______________________", props.Text{Size: 8, Top: 8, Left: 3}),
			text.New("Recibido por: ______________________", props.Text{Size: 8, Top: 18, Left: 3}),
			text.New("Documento generado por el sistema de inventario. Los movimientos "+
				"contabilizados no se modifican; las correcciones se hacen por reversa.",
				props.Text{Size: 6.5, Top: 30, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// QRPayload contenido del código QR del comprobante.
func QRPayload(doc *entity.Document) string {
	return fmt.Sprintf("DOC:%s|ID:%d|TYPE:%s|DATE:%s|ITEMS:%d",
		doc.DocNumber, doc.ID, doc.Type, doc.Date.UTC().Format("2006-01-02"), doc.ItemCount)
}

// sumValues suma cantidad × precio; false si algún renglón no tiene precio.
func sumValues(lines []*entity.DocumentLine) (decimal.Decimal, bool) {
	sum := decimal.Zero
	for _, l := range lines {
		if l.UnitPrice == nil {
			return decimal.Zero, false
		}
		sum = sum.Add(l.UnitPrice.Mul(l.Quantity))
	}
	return sum, len(lines) > 0
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
