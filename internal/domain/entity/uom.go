package entity

import "github.com/shopspring/decimal"

// UnitOfMeasure unidad de medida. Factor indica cuántas unidades de referencia de la categoría
// equivale una unidad de esta (la unidad de referencia tiene factor 1; g = 0.001 si kg es referencia).
type UnitOfMeasure struct {
	ID       string
	Name     string
	Symbol   string
	Category string // ej. weight, volume, unit
	Factor   decimal.Decimal
	Rounding decimal.Decimal // precisión de redondeo (ej. 0.01); cero = sin redondeo
}

// SameAs compara por ID; dos unidades con el mismo ID son la misma aunque difieran los campos cargados.
func (u UnitOfMeasure) SameAs(other UnitOfMeasure) bool {
	return u.ID == other.ID
}
