package traceability

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
)

// ProductionRef referencia de procedencia de una entrada (solo para enlazar en la presentación).
type ProductionRef struct {
	ID            string
	Number        string
	EffectiveDate time.Time
}

// RefOf construye la referencia de una orden.
func RefOf(p *entity.Production) ProductionRef {
	return ProductionRef{ID: p.ID, Number: p.Number, EffectiveDate: p.EffectiveDate}
}

// Entry resultado de una orden para un par (producto contraparte, lote).
//
// Backward: Quantity = producto solicitado fabricado por la orden; Consumption = lo consumido del
// producto/lote contraparte. Forward: Quantity = lo fabricado del producto/lote contraparte;
// Consumption = lo consumido del producto solicitado.
type Entry struct {
	Production     ProductionRef
	Product        entity.Product // producto contraparte
	Lot            *entity.Lot    // nil = sin lote
	Quantity       decimal.Decimal
	QuantityUOM    entity.UnitOfMeasure
	Consumption    decimal.Decimal
	ConsumptionUOM entity.UnitOfMeasure
}

// Result salida del motor para una orden: producto → clave de lote → Entry,
// en el orden en que aparecen los movimientos contraparte.
type Result struct {
	Production ProductionRef
	groups     *orderedMap[string, *orderedMap[LotKey, Entry]]
}

func newResult(p *entity.Production) *Result {
	return &Result{
		Production: RefOf(p),
		groups:     newOrderedMap[string, *orderedMap[LotKey, Entry]](),
	}
}

func (r *Result) put(productID string, lot LotKey, e Entry) {
	lots := r.groups.getOrCreate(productID, newOrderedMap[LotKey, Entry])
	lots.set(lot, e)
}

// IsEmpty informa si la orden no aportó ninguna entrada.
func (r *Result) IsEmpty() bool { return r.groups.len() == 0 }

// Len número total de entradas (pares producto/lote).
func (r *Result) Len() int {
	n := 0
	for _, id := range r.groups.keys {
		lots, _ := r.groups.get(id)
		n += lots.len()
	}
	return n
}

// Products IDs de productos contraparte en orden de aparición.
func (r *Result) Products() []string {
	return append([]string(nil), r.groups.keys...)
}

// Lots claves de lote de un producto en orden de aparición.
func (r *Result) Lots(productID string) []LotKey {
	lots, ok := r.groups.get(productID)
	if !ok {
		return nil
	}
	return append([]LotKey(nil), lots.keys...)
}

// Entry devuelve la entrada de un par producto/lote.
func (r *Result) Entry(productID string, lot LotKey) (Entry, bool) {
	lots, ok := r.groups.get(productID)
	if !ok {
		return Entry{}, false
	}
	return lots.get(lot)
}

// Each recorre las entradas en orden (producto, luego lote).
func (r *Result) Each(fn func(productID string, lot LotKey, e Entry)) {
	for _, id := range r.groups.keys {
		lots, _ := r.groups.get(id)
		for _, k := range lots.keys {
			e, _ := lots.get(k)
			fn(id, k, e)
		}
	}
}
