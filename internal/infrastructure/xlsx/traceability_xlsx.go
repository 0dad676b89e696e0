// Package xlsx exporta el reporte de trazabilidad a Excel (una hoja, una fila por aporte de orden).
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	apptrace "github.com/jhoicas/trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/infrastructure/report"
)

// Sheet nombre de la hoja generada.
const Sheet = "Traceability"

var (
	columns = []string{"Product", "Lot", "Expiration date", "Production", "Date", "Quantity", "UoM", "Consumption", "UoM"}
	widths  = []float64{36, 16, 16, 16, 14, 16, 8, 16, 8}
)

// TraceabilityXLSXGenerator genera el libro con excelize.
type TraceabilityXLSXGenerator struct {
	fmt *report.Formatter
}

// NewTraceabilityXLSXGenerator construye el generador. Las fechas usan el mismo formato que HTML/PDF.
func NewTraceabilityXLSXGenerator(f *report.Formatter) *TraceabilityXLSXGenerator {
	return &TraceabilityXLSXGenerator{fmt: f}
}

type styles struct {
	title, header, total, number int
}

// Generate devuelve los bytes del .xlsx. Las cantidades se escriben como números (4 decimales).
func (g *TraceabilityXLSXGenerator) Generate(rep *apptrace.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f}
	p := rep.Parameters

	w.set(1, 1, "Traceability")
	w.set(2, 1, p.Direction.Label())
	w.style(1, 1, 1, st.title)
	w.set(1, 2, "Company")
	w.set(2, 2, p.Company.Name)
	w.set(1, 3, "Product")
	w.set(2, 3, p.Product.RecName())
	row := 4
	if p.Lot != nil {
		w.set(1, row, "Lot")
		w.set(2, row, p.Lot.Number)
		w.set(3, row, g.fmt.Date(p.Lot.ExpirationDate))
		row++
	}
	if p.ShowDate {
		w.set(1, row, "From Date")
		w.set(2, row, g.fmt.Date(&p.FromDate))
		w.set(3, row, "To Date")
		w.set(4, row, g.fmt.Date(&p.ToDate))
		row++
	}
	w.set(1, row, report.QuantityNote)
	row += 2

	for i, h := range columns {
		w.set(i+1, row, h)
	}
	w.style(1, row, len(columns), st.header)
	row++

	if rep.IsEmpty() {
		w.set(1, row, "No data")
		return w.finish(widths)
	}

	for _, pr := range rep.Records.Products() {
		w.set(1, row, pr.Product.RecName())
		if t, ok := rep.Totals[pr.Product.ID]; ok {
			w.set(6, row, t.Quantity.Round(report.Digits).InexactFloat64())
			w.set(7, row, t.QuantityUOM.Symbol)
			w.set(8, row, t.Consumption.Round(report.Digits).InexactFloat64())
			w.set(9, row, t.ConsumptionUOM.Symbol)
		}
		w.style(1, row, len(columns), st.total)
		w.styleCell(6, row, st.number)
		w.styleCell(8, row, st.number)
		row++

		for _, l := range pr.Lots() {
			lotNumber, expiration := "--", "--"
			if l.Lot != nil && l.Lot.ID != "" {
				lotNumber = l.Lot.Number
				expiration = g.fmt.Date(l.Lot.ExpirationDate)
			}
			for _, e := range l.Entries {
				date := e.Production.EffectiveDate
				w.set(2, row, lotNumber)
				w.set(3, row, expiration)
				w.set(4, row, e.Production.Number)
				w.link(4, row, apptrace.ProductionLink(p.BaseURL, e.Production))
				w.set(5, row, g.fmt.Date(&date))
				w.set(6, row, e.Quantity.Round(report.Digits).InexactFloat64())
				w.set(7, row, e.QuantityUOM.Symbol)
				w.set(8, row, e.Consumption.Round(report.Digits).InexactFloat64())
				w.set(9, row, e.ConsumptionUOM.Symbol)
				w.styleCell(6, row, st.number)
				w.styleCell(8, row, st.number)
				row++
			}
		}
	}
	return w.finish(widths)
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	numFmt := "#,##0.0000"
	border := []excelize.Border{
		{Type: "bottom", Color: "#00467F", Style: 1},
	}
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14, Color: "#00467F"}}); err != nil {
		return s, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#EBF0F6"}},
		Border: border,
	}); err != nil {
		return s, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if s.total, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if s.number, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt}); err != nil {
		return s, fmt.Errorf("xlsx: estilo: %w", err)
	}
	return s, nil
}

// sheetWriter acumula el primer error para no chequear cada celda.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil && w.err == nil {
		w.err = err
	}
	return name
}

func (w *sheetWriter) set(col, row int, v any) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(Sheet, w.cell(col, row), v)
}

func (w *sheetWriter) styleCell(col, row, style int) {
	w.style(col, row, col, style)
}

func (w *sheetWriter) style(fromCol, row, toCol, style int) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(Sheet, w.cell(fromCol, row), w.cell(toCol, row), style)
}

func (w *sheetWriter) link(col, row int, url string) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellHyperLink(Sheet, w.cell(col, row), url, "External")
}

func (w *sheetWriter) finish(widths []float64) ([]byte, error) {
	for i, width := range widths {
		if w.err != nil {
			break
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			break
		}
		w.err = w.f.SetColWidth(Sheet, col, col, width)
	}
	if w.err != nil {
		return nil, fmt.Errorf("xlsx: escribir hoja: %w", w.err)
	}
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
