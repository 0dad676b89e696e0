package uom_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/trazabilidad-api/internal/domain"
	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/trazabilidad-api/internal/domain/uom"
)

var (
	kg   = entity.UnitOfMeasure{ID: "kg", Symbol: "kg", Category: "weight", Factor: decimal.NewFromInt(1), Rounding: decimal.RequireFromString("0.001")}
	gram = entity.UnitOfMeasure{ID: "g", Symbol: "g", Category: "weight", Factor: decimal.RequireFromString("0.001"), Rounding: decimal.NewFromInt(1)}
	unit = entity.UnitOfMeasure{ID: "u", Symbol: "u", Category: "unit", Factor: decimal.NewFromInt(1), Rounding: decimal.NewFromInt(1)}
)

func TestConvert_MismaUnidadDevuelveCantidad(t *testing.T) {
	got, err := uom.NewConverter().Convert(decimal.RequireFromString("4.25"), kg, kg, false)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("4.25")), "got %s", got)
}

func TestConvert_GramosAKilos(t *testing.T) {
	got, err := uom.NewConverter().Convert(decimal.NewFromInt(2500), gram, kg, false)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("2.5")), "got %s", got)
}

func TestConvert_KilosAGramos(t *testing.T) {
	got, err := uom.NewConverter().Convert(decimal.RequireFromString("1.2"), kg, gram, false)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(1200)), "got %s", got)
}

func TestConvert_SinRedondeoConservaPrecision(t *testing.T) {
	conv := uom.NewConverter()

	exact, err := conv.Convert(decimal.RequireFromString("1.5"), gram, kg, false)
	require.NoError(t, err)
	assert.True(t, exact.Equal(decimal.RequireFromString("0.0015")), "got %s", exact)

	rounded, err := conv.Convert(decimal.RequireFromString("1.5"), gram, kg, true)
	require.NoError(t, err)
	assert.True(t, rounded.Equal(decimal.RequireFromString("0.002")), "got %s", rounded)
}

func TestConvert_CategoriasDistintas_Error(t *testing.T) {
	_, err := uom.NewConverter().Convert(decimal.NewFromInt(1), kg, unit, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnits)
}

func TestConvert_FactorCero_Error(t *testing.T) {
	broken := gram
	broken.ID = "broken"
	broken.Factor = decimal.Zero
	_, err := uom.NewConverter().Convert(decimal.NewFromInt(1), broken, kg, false)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnits)
}
