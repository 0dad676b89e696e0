// Package report presenta el reporte de trazabilidad en HTML. La vista intermedia (View) la
// comparten el HTML y el PDF.
package report

import (
	"fmt"

	apptrace "github.com/jhoicas/trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
)

// QuantityNote aclaración que acompaña a la columna Quantity.
const QuantityNote = "quantity produced including all outgoing moves in production"

// View datos ya formateados del reporte.
type View struct {
	Title          string
	CompanyName    string
	CompanyURL     string
	DirectionLabel string
	ProductName    string
	Lot            *LotInfo
	ShowDate       bool
	FromDate       string
	ToDate         string
	Products       []ProductView
	GeneratedAt    string
}

// Empty informa si no hay nada que mostrar.
func (v View) Empty() bool { return len(v.Products) == 0 }

// LotInfo lote solicitado en la cabecera.
type LotInfo struct {
	Number         string
	ExpirationDate string
}

// ProductView fila resumen de un producto contraparte con sus lotes.
type ProductView struct {
	Key         string
	Name        string
	Quantity    string
	Consumption string
	Lots        []LotView
}

// LotView bloque de detalle de un lote.
type LotView struct {
	Header  string
	Entries []EntryView
}

// EntryView aporte de una orden.
type EntryView struct {
	Production  string
	Link        string
	Quantity    string
	Consumption string
}

// BuildView proyecta el reporte a la vista, conservando el orden de registros.
func BuildView(r *apptrace.Report, f *Formatter) View {
	p := r.Parameters
	v := View{
		Title:          "Traceability",
		CompanyName:    p.Company.Name,
		CompanyURL:     p.BaseURL,
		DirectionLabel: p.Direction.Label(),
		ProductName:    p.Product.RecName(),
		ShowDate:       p.ShowDate,
		FromDate:       f.Date(&p.FromDate),
		ToDate:         f.Date(&p.ToDate),
		GeneratedAt:    r.GeneratedAt.Format("2006-01-02 15:04"),
	}
	if p.Lot != nil {
		v.Lot = &LotInfo{Number: p.Lot.Number, ExpirationDate: f.Date(p.Lot.ExpirationDate)}
	}
	if r.Records == nil {
		return v
	}

	for _, pr := range r.Records.Products() {
		item := ProductView{
			Key:  "product-" + pr.Product.ID,
			Name: pr.Product.RecName(),
		}
		if t, ok := r.Totals[pr.Product.ID]; ok {
			item.Quantity = f.Quantity(t.Quantity, t.QuantityUOM)
			item.Consumption = f.Quantity(t.Consumption, t.ConsumptionUOM)
		}
		for _, l := range pr.Lots() {
			lot := LotView{Header: lotHeader(l.Lot, f)}
			for _, e := range l.Entries {
				lot.Entries = append(lot.Entries, EntryView{
					Production:  e.Production.Number,
					Link:        apptrace.ProductionLink(p.BaseURL, e.Production),
					Quantity:    f.Quantity(e.Quantity, e.QuantityUOM),
					Consumption: f.Quantity(e.Consumption, e.ConsumptionUOM),
				})
			}
			item.Lots = append(item.Lots, lot)
		}
		v.Products = append(v.Products, item)
	}
	return v
}

func lotHeader(l *entity.Lot, f *Formatter) string {
	if l == nil || l.ID == "" {
		return "Lot: -- Expiration_date: --"
	}
	return fmt.Sprintf("Lot: %s Expiration_date: %s", l.Number, f.Date(l.ExpirationDate))
}
