package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de producción. Solo las órdenes en ProductionStateDone participan en la trazabilidad.
const (
	ProductionStateDraft     = "draft"
	ProductionStateWaiting   = "waiting"
	ProductionStateAssigned  = "assigned"
	ProductionStateRunning   = "running"
	ProductionStateDone      = "done"
	ProductionStateCancelled = "cancelled"
)

// Production orden de producción: consume Inputs y genera Outputs.
type Production struct {
	ID            string
	Number        string
	CompanyID     string
	State         string
	EffectiveDate time.Time
	Inputs        []Move
	Outputs       []Move
}

// IsDone informa si la orden está finalizada.
func (p *Production) IsDone() bool {
	return p.State == ProductionStateDone
}

// Move movimiento de stock de una orden de producción (entrada o salida).
// Lot nil significa "sin lote"; Unit es la unidad en la que está expresada Quantity.
type Move struct {
	ID            string
	ProductionID  string
	Product       *Product
	Lot           *Lot
	Quantity      decimal.Decimal
	Unit          UnitOfMeasure
	EffectiveDate time.Time
	State         string
}
