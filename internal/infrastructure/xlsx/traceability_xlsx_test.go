package xlsx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apptrace "github.com/jhoicas/trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/trazabilidad-api/internal/domain/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/domain/uom"
	"github.com/jhoicas/trazabilidad-api/internal/infrastructure/report"
	"github.com/jhoicas/trazabilidad-api/internal/infrastructure/xlsx"
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
			EffectiveDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Inputs:        []entity.Move{{ID: "m1", Product: raw, Quantity: decimal.NewFromInt(4), Unit: kg}},
			Outputs:       []entity.Move{{ID: "m2", Product: finished, Quantity: decimal.NewFromInt(10), Unit: u}},
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

func readRows(t *testing.T, b []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(xlsx.Sheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return rows
}

func newGenerator(t *testing.T) *xlsx.TraceabilityXLSXGenerator {
	t.Helper()
	f, err := report.NewFormatter("en")
	require.NoError(t, err)
	return xlsx.NewTraceabilityXLSXGenerator(f)
}

func TestGenerate_FilasPorProductoYOrden(t *testing.T) {
	b, err := newGenerator(t).Generate(sampleReport(t, true))
	require.NoError(t, err)

	rows := readRows(t, b)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, "Traceability", rows[0][0])

	// las dos últimas filas: total del producto y el aporte de P1
	total := rows[len(rows)-2]
	entry := rows[len(rows)-1]

	assert.Equal(t, "[R] Harina", total[0])
	assert.Equal(t, "10", total[5])
	assert.Equal(t, "u", total[6])
	assert.Equal(t, "4", total[7])
	assert.Equal(t, "kg", total[8])

	assert.Equal(t, "--", entry[1])
	assert.Equal(t, "P1", entry[3])
	assert.Equal(t, "10", entry[5])
	assert.Equal(t, "4", entry[7])
}

func TestGenerate_SinDatos(t *testing.T) {
	b, err := newGenerator(t).Generate(sampleReport(t, false))
	require.NoError(t, err)

	rows := readRows(t, b)
	assert.Equal(t, []string{"No data"}, rows[len(rows)-1])
}
