package pdf_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptrace "github.com/jhoicas/trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/trazabilidad-api/internal/domain/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/domain/uom"
	"github.com/jhoicas/trazabilidad-api/internal/infrastructure/pdf"
	"github.com/jhoicas/trazabilidad-api/internal/infrastructure/report"
)

func sampleReport(t *testing.T, withOrder bool) *apptrace.Report {
	t.Helper()
	kg := entity.UnitOfMeasure{ID: "uom-kg", Symbol: "kg", Category: "weight", Factor: decimal.NewFromInt(1)}
	u := entity.UnitOfMeasure{ID: "uom-u", Symbol: "u", Category: "unit", Factor: decimal.NewFromInt(1)}
	finished := &entity.Product{ID: "prod-F", Code: "F", Name: "Pan", DefaultUOM: u}
	raw := &entity.Product{ID: "prod-R", Code: "R", Name: "Harina", DefaultUOM: kg}

	var results []*traceability.Result
	if withOrder {
		p := &entity.Production{
			ID: "id-P1", Number: "P1", State: entity.ProductionStateDone,
			Inputs:  []entity.Move{{ID: "m1", Product: raw, Quantity: decimal.NewFromInt(4), Unit: kg}},
			Outputs: []entity.Move{{ID: "m2", Product: finished, Quantity: decimal.NewFromInt(10), Unit: u}},
		}
		res, err := traceability.NewEngine(uom.NewConverter()).Compute(p, finished, traceability.Backward)
		require.NoError(t, err)
		results = append(results, res)
	}
	records, totals, err := traceability.Fold(results)
	require.NoError(t, err)

	return &apptrace.Report{
		Parameters: apptrace.Parameters{
			Direction: traceability.Backward,
			FromDate:  apptrace.MinDate,
			ToDate:    apptrace.MaxDate,
			Product:   *finished,
			Company:   entity.Company{ID: "c1", Name: "Panadería"},
			BaseURL:   "https://erp.example.com",
		},
		Records:     records,
		Totals:      totals,
		GeneratedAt: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}
}

func TestGenerate_ProducesPDF(t *testing.T) {
	f, err := report.NewFormatter("es-CO")
	require.NoError(t, err)
	g := pdf.NewTraceabilityPDFGenerator(f)

	for _, withOrder := range []bool{true, false} {
		b, err := g.Generate(sampleReport(t, withOrder))
		require.NoError(t, err)
		require.NotEmpty(t, b)
		assert.Equal(t, "%PDF", string(b[:4]))
	}
}
