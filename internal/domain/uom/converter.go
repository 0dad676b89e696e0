package uom

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/trazabilidad-api/internal/domain"
	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
)

// Converter convierte cantidades entre unidades de la misma categoría (servicio de dominio).
// Cantidad destino = cantidad * from.Factor / to.Factor
type Converter struct{}

// NewConverter construye el conversor.
func NewConverter() *Converter { return &Converter{} }

// Convert expresa qty (en from) en la unidad to. Con round=true aplica el redondeo de la unidad destino.
func (c *Converter) Convert(qty decimal.Decimal, from, to entity.UnitOfMeasure, round bool) (decimal.Decimal, error) {
	if from.SameAs(to) {
		return roundTo(qty, to, round), nil
	}
	if from.Category != to.Category {
		return decimal.Zero, fmt.Errorf("%w: %s (%s) → %s (%s)",
			domain.ErrIncompatibleUnits, from.Symbol, from.Category, to.Symbol, to.Category)
	}
	if from.Factor.IsZero() || to.Factor.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: factor cero en %s → %s", domain.ErrIncompatibleUnits, from.Symbol, to.Symbol)
	}
	amount := qty.Mul(from.Factor).Div(to.Factor)
	return roundTo(amount, to, round), nil
}

func roundTo(qty decimal.Decimal, u entity.UnitOfMeasure, round bool) decimal.Decimal {
	if !round || !u.Rounding.GreaterThan(decimal.Zero) {
		return qty
	}
	return qty.Div(u.Rounding).Round(0).Mul(u.Rounding)
}
