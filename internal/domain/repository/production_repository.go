package repository

import (
	"context"
	"time"

	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/trazabilidad-api/internal/domain/traceability"
)

// TraceabilityFilter criterios de búsqueda de órdenes para el reporte de trazabilidad.
type TraceabilityFilter struct {
	CompanyID string
	ProductID string
	LotID     string // vacío = cualquier lote
	Direction traceability.Direction
	From      time.Time
	To        time.Time
}

// ProductionRepository puerto del almacén de órdenes de producción.
type ProductionRepository interface {
	// SearchForTraceability devuelve las órdenes en estado done de la empresa cuyos movimientos
	// primarios (salidas si backward, entradas si forward) referencian el producto (y lote, si se
	// indica) con fecha efectiva en [From, To]. Cada orden viene con Inputs y Outputs completos,
	// productos y unidades cargados. Orden: fecha efectiva y luego ID.
	SearchForTraceability(ctx context.Context, filter TraceabilityFilter) ([]*entity.Production, error)
}
