// Package pdf genera la versión imprimible del reporte de trazabilidad.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Traceability + dirección  │  Empresa + generado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARÁMETROS: Producto / Lote / Fechas / nota de cantidad     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Product | Quantity | Consumption (totales)           │
//	│     └ Lot: X Expiration_date: Y                              │
//	│         orden | cantidad | consumo                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR al cliente web                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	apptrace "github.com/jhoicas/trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/infrastructure/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight   = &props.Color{Red: 235, Green: 240, Blue: 246}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// TraceabilityPDFGenerator genera el reporte con Maroto v2.
type TraceabilityPDFGenerator struct {
	fmt *report.Formatter
}

// NewTraceabilityPDFGenerator construye el generador.
func NewTraceabilityPDFGenerator(f *report.Formatter) *TraceabilityPDFGenerator {
	return &TraceabilityPDFGenerator{fmt: f}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *TraceabilityPDFGenerator) Generate(rep *apptrace.Report) ([]byte, error) {
	v := report.BuildView(rep, g.fmt)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(v.Title, true).
		WithAuthor(v.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(parameterRows(v)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if v.Empty() {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("No data", props.Text{Size: 11, Align: align.Center, Color: colorGray, Top: 3}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		for _, p := range v.Products {
			m.AddRows(productRows(p)...)
		}
	}

	if v.CompanyURL != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(footerRow(v.CompanyURL))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y dirección (izq), empresa y fecha de generación (der).
func headerRow(v report.View) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(v.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Efficiency Product Type: "+v.DirectionLabel, props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(v.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Generado: "+v.GeneratedAt, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// parameterRows: producto, lote, nota de cantidad y fechas (si se filtró por fecha).
func parameterRows(v report.View) []core.Row {
	lotText, expiryText := "", ""
	if v.Lot != nil {
		lotText = "Lot: " + v.Lot.Number
		expiryText = "Expiration Date: " + v.Lot.ExpirationDate
	}
	rows := []core.Row{
		row.New(7).Add(
			col.New(6).Add(text.New("Product: "+v.ProductName, props.Text{Style: fontstyle.Bold, Top: 1})),
			col.New(3).Add(text.New(lotText, props.Text{Top: 1})),
			col.New(3).Add(text.New(expiryText, props.Text{Top: 1})),
		),
		row.New(6).Add(col.New(12).Add(
			text.New("Quantity: "+report.QuantityNote, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
	}
	if v.ShowDate {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New("From Date: "+v.FromDate, props.Text{Size: 8, Top: 1})),
			col.New(6).Add(text.New("To Date: "+v.ToDate, props.Text{Size: 8, Top: 1})),
		))
	}
	return rows
}

// tableHeaderRow: cabecera de la tabla resumen.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Product", 8, align.Left),
		h("Quantity", 2, align.Right),
		h("Consumption", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorLight})
}

// productRows: fila de totales del producto seguida del detalle por lote.
func productRows(p report.ProductView) []core.Row {
	rows := []core.Row{
		row.New(7).Add(
			col.New(8).Add(text.New(p.Name, props.Text{Style: fontstyle.Bold, Top: 1, Left: 1})),
			col.New(2).Add(text.New(p.Quantity, props.Text{Style: fontstyle.Bold, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(p.Consumption, props.Text{Style: fontstyle.Bold, Align: align.Right, Top: 1, Right: 1})),
		),
	}
	for _, l := range p.Lots {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(l.Header, props.Text{Size: 8, Style: fontstyle.Bold, Left: 6, Top: 1}),
		)))
		for _, e := range l.Entries {
			link := e.Link
			rows = append(rows, row.New(5).Add(
				col.New(8).Add(text.New(e.Production, props.Text{
					Size: 8, Left: 10, Top: 0.5, Color: colorPrimary, Hyperlink: &link,
				})),
				col.New(2).Add(text.New(e.Quantity, props.Text{Size: 8, Align: align.Right, Top: 0.5, Right: 1})),
				col.New(2).Add(text.New(e.Consumption, props.Text{Size: 8, Align: align.Right, Top: 0.5, Right: 1})),
			))
		}
	}
	rows = append(rows, line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.1}))
	return rows
}

// footerRow: QR con el enlace al cliente web de la empresa.
func footerRow(baseURL string) core.Row {
	return row.New(30).Add(
		col.New(2).Add(code.NewQr(baseURL, props.Rect{Percent: 95, Center: true})),
		col.New(10).Add(
			text.New("Escanea el código para abrir las órdenes en el sistema.", props.Text{
				Size: 8, Top: 10, Left: 3, Color: colorGray,
			}),
			text.New(baseURL, props.Text{Size: 7, Top: 16, Left: 3, Color: colorGray}),
		),
	)
}
