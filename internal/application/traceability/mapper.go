package traceability

import (
	"fmt"
	"time"

	"github.com/jhoicas/trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/trazabilidad-api/internal/domain/traceability"
)

const dateLayout = "2006-01-02"

// ProductionLink enlace a la orden en el cliente web: {base}/model/production/{id};name="{número}".
func ProductionLink(baseURL string, ref traceability.ProductionRef) string {
	return fmt.Sprintf(`%s/model/production/%s;name="%s"`, baseURL, ref.ID, ref.Number)
}

// ToDTO proyecta el reporte a la respuesta JSON conservando el orden de los registros.
func ToDTO(r *Report) dto.TraceabilityReportDTO {
	p := r.Parameters
	out := dto.TraceabilityReportDTO{
		Parameters: dto.TraceabilityParametersDTO{
			CompanyID:      p.Company.ID,
			CompanyName:    p.Company.Name,
			ProductID:      p.Product.ID,
			ProductName:    p.Product.RecName(),
			Direction:      string(p.Direction),
			DirectionLabel: p.Direction.Label(),
			FromDate:       p.FromDate.Format(dateLayout),
			ToDate:         p.ToDate.Format(dateLayout),
			ShowDate:       p.ShowDate,
			Lot:            lotRef(p.Lot),
			BaseURL:        p.BaseURL,
		},
		Productions: r.Productions,
		Products:    make([]dto.TraceabilityProductDTO, 0),
		GeneratedAt: r.GeneratedAt.UTC().Format(time.RFC3339),
		Empty:       r.IsEmpty(),
	}
	if r.Records == nil {
		return out
	}
	for _, pr := range r.Records.Products() {
		item := dto.TraceabilityProductDTO{
			ProductID: pr.Product.ID,
			Code:      pr.Product.Code,
			Name:      pr.Product.Name,
		}
		for _, l := range pr.Lots() {
			lot := dto.TraceabilityLotDTO{Lot: lotRef(l.Lot)}
			for _, e := range l.Entries {
				lot.Entries = append(lot.Entries, dto.TraceabilityEntryDTO{
					Production: dto.ProductionRefDTO{
						ID:            e.Production.ID,
						Number:        e.Production.Number,
						EffectiveDate: e.Production.EffectiveDate.Format(dateLayout),
						Link:          ProductionLink(p.BaseURL, e.Production),
					},
					Quantity:       e.Quantity,
					QuantityUOM:    unitRef(e.QuantityUOM),
					Consumption:    e.Consumption,
					ConsumptionUOM: unitRef(e.ConsumptionUOM),
				})
			}
			item.Lots = append(item.Lots, lot)
		}
		if t, ok := r.Totals[pr.Product.ID]; ok {
			item.Totals = dto.TraceabilityTotalsDTO{
				Quantity:       t.Quantity,
				QuantityUOM:    unitRef(t.QuantityUOM),
				Consumption:    t.Consumption,
				ConsumptionUOM: unitRef(t.ConsumptionUOM),
			}
		}
		out.Products = append(out.Products, item)
	}
	return out
}

func lotRef(l *entity.Lot) *dto.LotRefDTO {
	if traceability.KeyOf(l).IsNoLot() {
		return nil
	}
	ref := &dto.LotRefDTO{ID: l.ID, Number: l.Number}
	if l.ExpirationDate != nil {
		ref.ExpirationDate = l.ExpirationDate.Format(dateLayout)
	}
	return ref
}

func unitRef(u entity.UnitOfMeasure) dto.UnitDTO {
	return dto.UnitDTO{ID: u.ID, Symbol: u.Symbol, Name: u.Name}
}
