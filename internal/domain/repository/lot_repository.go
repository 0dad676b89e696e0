package repository

import (
	"context"

	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
)

// LotRepository define el puerto de lectura para lotes.
type LotRepository interface {
	// GetByID devuelve (nil, nil) si el lote no existe.
	GetByID(ctx context.Context, id string) (*entity.Lot, error)
}
