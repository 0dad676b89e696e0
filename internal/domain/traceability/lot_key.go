package traceability

import "github.com/jhoicas/trazabilidad-api/internal/domain/entity"

// LotKey clave de agrupación por lote. Los movimientos sin lote comparten NoLot,
// que nunca coincide con el ID de un lote real.
type LotKey string

// NoLot clave canónica para "sin lote".
const NoLot LotKey = ""

// KeyOf devuelve la clave de agrupación del lote (NoLot si es nil).
func KeyOf(lot *entity.Lot) LotKey {
	if lot == nil || lot.ID == "" {
		return NoLot
	}
	return LotKey(lot.ID)
}

// IsNoLot informa si la clave es la de "sin lote".
func (k LotKey) IsNoLot() bool { return k == NoLot }
