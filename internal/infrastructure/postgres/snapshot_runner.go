package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/domain/repository"
)

var _ traceability.SnapshotRunner = (*SnapshotRunner)(nil)

// SnapshotRunner ejecuta callbacks de solo lectura dentro de una transacción REPEATABLE READ,
// de modo que órdenes y movimientos se lean desde la misma foto de la base.
type SnapshotRunner struct {
	pool *pgxpool.Pool
	opts ProductionOptions
}

// NewSnapshotRunner construye el runner con el pool.
func NewSnapshotRunner(pool *pgxpool.Pool, opts ProductionOptions) *SnapshotRunner {
	return &SnapshotRunner{pool: pool, opts: opts}
}

// ReadOnly inicia la transacción, ejecuta fn con el repositorio atado a la tx y hace Rollback al terminar
// (no hay nada que confirmar).
func (r *SnapshotRunner) ReadOnly(ctx context.Context, fn func(productions repository.ProductionRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin read-only transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return fn(NewProductionRepository(tx, r.opts))
}
