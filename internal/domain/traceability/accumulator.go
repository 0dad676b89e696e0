package traceability

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/trazabilidad-api/internal/domain"
	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
)

// LotRecords entradas acumuladas de un lote, en el orden en que se plegaron.
type LotRecords struct {
	Key     LotKey
	Lot     *entity.Lot
	Entries []Entry
}

// ProductRecords lotes acumulados de un producto contraparte.
type ProductRecords struct {
	Product entity.Product
	lots    *orderedMap[LotKey, *LotRecords]
}

// Lots lotes del producto en orden de inserción.
func (p *ProductRecords) Lots() []*LotRecords {
	out := make([]*LotRecords, 0, p.lots.len())
	for _, k := range p.lots.keys {
		l, _ := p.lots.get(k)
		out = append(out, l)
	}
	return out
}

// Lot devuelve los registros de un lote.
func (p *ProductRecords) Lot(key LotKey) (*LotRecords, bool) {
	return p.lots.get(key)
}

// Records producto → lote → []Entry, conservando el orden de inserción.
type Records struct {
	products *orderedMap[string, *ProductRecords]
}

func newRecords() *Records {
	return &Records{products: newOrderedMap[string, *ProductRecords]()}
}

// Products productos en orden de inserción.
func (r *Records) Products() []*ProductRecords {
	out := make([]*ProductRecords, 0, r.products.len())
	for _, id := range r.products.keys {
		p, _ := r.products.get(id)
		out = append(out, p)
	}
	return out
}

// Product devuelve los registros de un producto.
func (r *Records) Product(productID string) (*ProductRecords, bool) {
	return r.products.get(productID)
}

// Entries entradas de un par producto/lote (nil si no existe).
func (r *Records) Entries(productID string, lot LotKey) []Entry {
	p, ok := r.products.get(productID)
	if !ok {
		return nil
	}
	l, ok := p.lots.get(lot)
	if !ok {
		return nil
	}
	return l.Entries
}

// Len número de productos.
func (r *Records) Len() int { return r.products.len() }

// IsEmpty informa si no hay registros.
func (r *Records) IsEmpty() bool { return r.products.len() == 0 }

// Totals sumas acumuladas por producto contraparte. Las unidades quedan fijadas por la primera
// entrada y deben coincidir con todas las siguientes.
type Totals struct {
	Product        entity.Product
	Quantity       decimal.Decimal
	Consumption    decimal.Decimal
	QuantityUOM    entity.UnitOfMeasure
	ConsumptionUOM entity.UnitOfMeasure
}

// Accumulator pliega resultados por orden en Records y Totals. No es seguro para uso concurrente:
// para paralelizar, acumular por tramos y combinar con Merge en el orden original.
type Accumulator struct {
	records *Records
	totals  map[string]*Totals
}

// NewAccumulator construye un acumulador vacío.
func NewAccumulator() *Accumulator {
	return &Accumulator{records: newRecords(), totals: make(map[string]*Totals)}
}

// Add pliega el resultado de una orden. Tras un error el acumulador no debe seguir usándose.
func (a *Accumulator) Add(res *Result) error {
	if res == nil {
		return nil
	}
	var err error
	res.Each(func(productID string, lot LotKey, e Entry) {
		if err == nil {
			err = a.addEntry(productID, lot, e)
		}
	})
	return err
}

// Merge agrega al final las entradas de other (que debe cubrir órdenes posteriores a las del receptor).
func (a *Accumulator) Merge(other *Accumulator) error {
	if other == nil {
		return nil
	}
	for _, p := range other.records.Products() {
		for _, l := range p.Lots() {
			for _, e := range l.Entries {
				if err := a.addEntry(p.Product.ID, l.Key, e); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (a *Accumulator) addEntry(productID string, lot LotKey, e Entry) error {
	t, ok := a.totals[productID]
	if !ok {
		t = &Totals{
			Product:        e.Product,
			Quantity:       decimal.Zero,
			Consumption:    decimal.Zero,
			QuantityUOM:    e.QuantityUOM,
			ConsumptionUOM: e.ConsumptionUOM,
		}
		a.totals[productID] = t
	}
	if !t.QuantityUOM.SameAs(e.QuantityUOM) || !t.ConsumptionUOM.SameAs(e.ConsumptionUOM) {
		return fmt.Errorf("%w: producto %s (orden %s): %s/%s frente a %s/%s",
			domain.ErrUnitMismatch, e.Product.RecName(), e.Production.Number,
			e.QuantityUOM.Symbol, e.ConsumptionUOM.Symbol, t.QuantityUOM.Symbol, t.ConsumptionUOM.Symbol)
	}
	t.Quantity = t.Quantity.Add(e.Quantity)
	t.Consumption = t.Consumption.Add(e.Consumption)

	p := a.records.products.getOrCreate(productID, func() *ProductRecords {
		return &ProductRecords{Product: e.Product, lots: newOrderedMap[LotKey, *LotRecords]()}
	})
	l := p.lots.getOrCreate(lot, func() *LotRecords {
		return &LotRecords{Key: lot, Lot: e.Lot}
	})
	l.Entries = append(l.Entries, e)
	return nil
}

// Records registros acumulados.
func (a *Accumulator) Records() *Records { return a.records }

// Totals copia de los totales por producto.
func (a *Accumulator) Totals() map[string]Totals {
	out := make(map[string]Totals, len(a.totals))
	for id, t := range a.totals {
		out[id] = *t
	}
	return out
}

// Fold pliega los resultados en el orden recibido (el de la consulta al almacén).
func Fold(results []*Result) (*Records, map[string]Totals, error) {
	acc := NewAccumulator()
	for _, r := range results {
		if err := acc.Add(r); err != nil {
			return nil, nil, err
		}
	}
	return acc.Records(), acc.Totals(), nil
}
