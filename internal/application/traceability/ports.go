package traceability

import (
	"context"
	"time"

	"github.com/jhoicas/trazabilidad-api/internal/domain/repository"
)

// SnapshotRunner ejecuta fn con un repositorio de órdenes atado a una lectura consistente
// (transacción de solo lectura). Garantiza que órdenes y movimientos salgan de la misma foto.
type SnapshotRunner interface {
	ReadOnly(ctx context.Context, fn func(productions repository.ProductionRepository) error) error
}

// MetricsRecorder registra métricas de generación de reportes.
type MetricsRecorder interface {
	ObserveReport(direction, outcome string, productions int, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveReport(string, string, int, time.Duration) {}
