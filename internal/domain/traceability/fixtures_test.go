package traceability_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/trazabilidad-api/internal/domain/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/domain/uom"
)

var (
	uomUnit = entity.UnitOfMeasure{ID: "uom-u", Symbol: "u", Category: "unit", Factor: decimal.NewFromInt(1)}
	uomKg   = entity.UnitOfMeasure{ID: "uom-kg", Symbol: "kg", Category: "weight", Factor: decimal.NewFromInt(1)}
	uomG    = entity.UnitOfMeasure{ID: "uom-g", Symbol: "g", Category: "weight", Factor: decimal.RequireFromString("0.001")}

	finished = &entity.Product{ID: "prod-F", Code: "F", Name: "Producto terminado", DefaultUOM: uomUnit}
	rawR     = &entity.Product{ID: "prod-R", Code: "R", Name: "Harina", DefaultUOM: uomKg}
	rawR2    = &entity.Product{ID: "prod-R2", Code: "R2", Name: "Azúcar", DefaultUOM: uomKg}

	lotL1 = &entity.Lot{ID: "lot-L1", Number: "L1", ProductID: rawR.ID}
	lotL2 = &entity.Lot{ID: "lot-L2", Number: "L2", ProductID: rawR.ID}
)

func newEngine() *traceability.Engine {
	return traceability.NewEngine(uom.NewConverter())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mv(p *entity.Product, lot *entity.Lot, qty string, unit entity.UnitOfMeasure) entity.Move {
	return entity.Move{
		ID:       p.ID + "-" + qty,
		Product:  p,
		Lot:      lot,
		Quantity: dec(qty),
		Unit:     unit,
		State:    "done",
	}
}

func production(number string, inputs, outputs []entity.Move) *entity.Production {
	return &entity.Production{
		ID:            "id-" + number,
		Number:        number,
		CompanyID:     "company-1",
		State:         entity.ProductionStateDone,
		EffectiveDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Inputs:        inputs,
		Outputs:       outputs,
	}
}

// scenarioP1: 10 u de F consumiendo 4 kg de R lote L1 y 6 kg de R2 sin lote.
func scenarioP1() *entity.Production {
	return production("P1",
		[]entity.Move{mv(rawR, lotL1, "4", uomKg), mv(rawR2, nil, "6", uomKg)},
		[]entity.Move{mv(finished, nil, "10", uomUnit)},
	)
}
