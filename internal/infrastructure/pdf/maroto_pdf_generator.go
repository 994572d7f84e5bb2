// Package pdf genera la hoja imprimible de una orden de bodega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: HOJA DE PICKING/RECEPCIÓN  │  N° orden + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORDEN: bodega / estado / proveedor / notas                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: OK | Ubicación | SKU | Producto | Cant | P.Unit | Sub │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades / valor                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id de la orden + firmas                   │
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

	"github.com/jhoicas/warely-stock/internal/application/usecase"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.SlipGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateOrderSlip genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrderSlip(_ context.Context, slip *usecase.OrderSlip) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(slipTitle(slip.Order), true).
		WithAuthor(slip.Order.CreatedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(slip.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderInfoRow(slip.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(slip.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(slip))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(slip.Order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func slipTitle(o *entity.Order) string {
	if o.Type == entity.OrderTypeInbound {
		return "HOJA DE RECEPCIÓN"
	}
	return "HOJA DE PICKING"
}

// headerRow: título (izq) y N° de orden + fecha (der).
func headerRow(o *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(slipTitle(o), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega: "+o.WarehouseID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN "+o.Type, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(o.ID, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+o.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// orderInfoRow: estado, proveedor y notas.
func orderInfoRow(o *entity.Order) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DE LA ORDEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Estado: %s   |   Proveedor: %s   |   Creada por: %s",
				o.Status,
				nonEmpty(o.SupplierID, "-"),
				nonEmpty(o.CreatedBy, "-"),
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New("Notas: "+nonEmpty(o.Notes, "-"), props.Text{Size: 8, Top: 10, Color: colorGray}),
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
		h("OK", 1, align.Center),
		h("Ubicación", 2, align.Left),
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Cant.", 1, align.Center),
		h("P. Unit.", 1, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea, con casilla vacía para marcar a mano.
func tableDetailRows(lines []usecase.SlipLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New("[  ]", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.LocationCode, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.FormatInt(l.Quantity, 10), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New("$"+formatMoney(l.UnitPrice.StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(l.Subtotal.StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(slip *usecase.OrderSlip) core.Row {
	var units int64
	for _, l := range slip.Lines {
		units += l.Quantity
	}
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Right: 1, Top: top})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(label("Unidades:", 1), label("Valor total:", 7)),
		col.New(3).Add(
			value(strconv.FormatInt(units, 10), 1),
			value("$"+formatMoney(slip.Total.StringFixed(0)), 7),
		),
	)
}

// footerRow: QR con el id de la orden para escanear al completar, y espacio para firmas.
func footerRow(o *entity.Order) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(o.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Escanee el código para abrir la orden "+o.ID, props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Preparado por: ______________________", props.Text{Size: 9, Top: 18, Left: 3}),
			text.New("Verificado por: _____________________", props.Text{Size: 9, Top: 28, Left: 3}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
