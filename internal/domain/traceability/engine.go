package traceability

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/trazabilidad-api/internal/domain"
	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
)

// UnitConverter contrato de conversión de unidades que consume el motor.
type UnitConverter interface {
	Convert(qty decimal.Decimal, from, to entity.UnitOfMeasure, round bool) (decimal.Decimal, error)
}

// Engine motor de trazabilidad. No guarda estado entre llamadas: Compute puede invocarse
// en paralelo para órdenes distintas.
type Engine struct {
	conv UnitConverter
}

// NewEngine construye el motor con el conversor de unidades.
func NewEngine(conv UnitConverter) *Engine {
	return &Engine{conv: conv}
}

type counterpartGroup struct {
	product *entity.Product
	lot     *entity.Lot
	qty     decimal.Decimal
}

// Compute calcula el resultado de una orden finalizada para el producto solicitado.
//
// La cantidad del producto solicitado se suma a nivel de orden (sin distinguir lote); los
// movimientos contraparte se agrupan por (producto, lote). Todas las cantidades se expresan en la
// unidad por defecto de su producto, sin redondeo. Una orden sin movimientos contraparte
// devuelve un resultado vacío.
func (e *Engine) Compute(order *entity.Production, requested *entity.Product, dir Direction) (*Result, error) {
	if order == nil || requested == nil {
		return nil, fmt.Errorf("%w: orden y producto son obligatorios", domain.ErrInvalidInput)
	}

	quantity := decimal.Zero
	for _, m := range dir.Primary(order) {
		if m.Product == nil {
			return nil, fmt.Errorf("%w: movimiento %s sin producto", domain.ErrInvalidInput, m.ID)
		}
		if m.Product.ID != requested.ID {
			continue
		}
		qty, err := e.conv.Convert(m.Quantity, m.Unit, requested.DefaultUOM, false)
		if err != nil {
			return nil, fmt.Errorf("orden %s, movimiento %s: %w", order.Number, m.ID, err)
		}
		quantity = quantity.Add(qty)
	}

	groups := newOrderedMap[string, *orderedMap[LotKey, *counterpartGroup]]()
	for _, m := range dir.Counterpart(order) {
		if m.Product == nil {
			return nil, fmt.Errorf("%w: movimiento %s sin producto", domain.ErrInvalidInput, m.ID)
		}
		qty, err := e.conv.Convert(m.Quantity, m.Unit, m.Product.DefaultUOM, false)
		if err != nil {
			return nil, fmt.Errorf("orden %s, movimiento %s: %w", order.Number, m.ID, err)
		}
		lots := groups.getOrCreate(m.Product.ID, newOrderedMap[LotKey, *counterpartGroup])
		g := lots.getOrCreate(KeyOf(m.Lot), func() *counterpartGroup {
			return &counterpartGroup{product: m.Product, lot: m.Lot, qty: decimal.Zero}
		})
		g.qty = g.qty.Add(qty)
	}

	res := newResult(order)
	for _, productID := range groups.keys {
		lots, _ := groups.get(productID)
		for _, key := range lots.keys {
			g, _ := lots.get(key)
			entry := Entry{Production: res.Production, Product: *g.product, Lot: g.lot}
			if dir == Backward {
				entry.Quantity, entry.QuantityUOM = quantity, requested.DefaultUOM
				entry.Consumption, entry.ConsumptionUOM = g.qty, g.product.DefaultUOM
			} else {
				entry.Quantity, entry.QuantityUOM = g.qty, g.product.DefaultUOM
				entry.Consumption, entry.ConsumptionUOM = quantity, requested.DefaultUOM
			}
			res.put(productID, key, entry)
		}
	}
	return res, nil
}
