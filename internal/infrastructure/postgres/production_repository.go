package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/trazabilidad-api/internal/domain/repository"
	"github.com/jhoicas/trazabilidad-api/internal/domain/traceability"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// Tipos de movimiento de una orden (columna production_moves.kind).
const (
	moveKindInput  = "input"
	moveKindOutput = "output"
)

// ProductionOptions opciones del adaptador de órdenes de producción.
type ProductionOptions struct {
	// LotTracking false: no se consulta la tabla lots y todos los movimientos quedan "sin lote".
	LotTracking bool
	// QueryTimeout límite de la búsqueda completa; 0 = sin límite propio.
	QueryTimeout time.Duration
}

// ProductionRepo búsqueda de órdenes de producción para trazabilidad (usable con pool o tx).
type ProductionRepo struct {
	q    Querier
	opts ProductionOptions
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier, opts ProductionOptions) *ProductionRepo {
	return &ProductionRepo{q: q, opts: opts}
}

// SearchForTraceability ver repository.ProductionRepository.
func (r *ProductionRepo) SearchForTraceability(ctx context.Context, f repository.TraceabilityFilter) ([]*entity.Production, error) {
	if r.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.QueryTimeout)
		defer cancel()
	}

	productions, err := r.findProductions(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(productions) == 0 {
		return productions, nil
	}
	if err := r.loadMoves(ctx, productions); err != nil {
		return nil, err
	}
	return productions, nil
}

// findProductions: órdenes done con al menos un movimiento primario que cumple el filtro.
func (r *ProductionRepo) findProductions(ctx context.Context, f repository.TraceabilityFilter) ([]*entity.Production, error) {
	kind := moveKindOutput
	if f.Direction == traceability.Forward {
		kind = moveKindInput
	}
	query := `
		SELECT p.id, p.number, p.company_id, p.state, p.effective_date
		FROM productions p
		WHERE p.company_id = $1
		  AND p.state = $2
		  AND EXISTS (
		      SELECT 1 FROM production_moves m
		       WHERE m.production_id = p.id
		         AND m.kind = $3
		         AND m.product_id = $4
		         AND m.state = $2
		         AND m.effective_date BETWEEN $5 AND $6`
	args := []any{f.CompanyID, entity.ProductionStateDone, kind, f.ProductID, f.From, f.To}
	if f.LotID != "" && r.opts.LotTracking {
		query += fmt.Sprintf(" AND m.lot_id = $%d", len(args)+1)
		args = append(args, f.LotID)
	}
	query += `)
		ORDER BY p.effective_date, p.id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryErr("search productions", err)
	}
	defer rows.Close()
	var list []*entity.Production
	for rows.Next() {
		var p entity.Production
		if err := rows.Scan(&p.ID, &p.Number, &p.CompanyID, &p.State, &p.EffectiveDate); err != nil {
			return nil, fmt.Errorf("scan production: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("search productions", err)
	}
	return list, nil
}

// loadMoves carga entradas y salidas de las órdenes en una sola consulta. Los productos se
// comparten entre movimientos para que todos apunten a la misma unidad por defecto.
func (r *ProductionRepo) loadMoves(ctx context.Context, productions []*entity.Production) error {
	lotCols := "NULL::uuid, NULL::text, NULL::date"
	lotJoin := ""
	if r.opts.LotTracking {
		lotCols = "l.id, l.number, l.expiration_date"
		lotJoin = "LEFT JOIN lots l ON l.id = m.lot_id"
	}
	query := fmt.Sprintf(`
		SELECT m.id, m.production_id, m.kind, m.quantity, m.effective_date, m.state,
		       u.id, u.name, u.symbol, u.category, u.factor, u.rounding,
		       pr.id, pr.company_id, pr.code, pr.name,
		       du.id, du.name, du.symbol, du.category, du.factor, du.rounding,
		       %s
		FROM production_moves m
		JOIN uoms u      ON u.id  = m.uom_id
		JOIN products pr ON pr.id = m.product_id
		JOIN uoms du     ON du.id = pr.default_uom_id
		%s
		WHERE m.production_id = ANY($1)
		ORDER BY m.production_id, m.sequence, m.id`, lotCols, lotJoin)

	ids := make([]string, len(productions))
	byID := make(map[string]*entity.Production, len(productions))
	for i, p := range productions {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return wrapQueryErr("load production moves", err)
	}
	defer rows.Close()

	products := make(map[string]*entity.Product)
	for rows.Next() {
		var (
			m      entity.Move
			kind   string
			prod   entity.Product
			lotID  *string
			lotNum *string
			lotExp *time.Time
		)
		u, du := &m.Unit, &prod.DefaultUOM
		if err := rows.Scan(
			&m.ID, &m.ProductionID, &kind, &m.Quantity, &m.EffectiveDate, &m.State,
			&u.ID, &u.Name, &u.Symbol, &u.Category, &u.Factor, &u.Rounding,
			&prod.ID, &prod.CompanyID, &prod.Code, &prod.Name,
			&du.ID, &du.Name, &du.Symbol, &du.Category, &du.Factor, &du.Rounding,
			&lotID, &lotNum, &lotExp,
		); err != nil {
			return fmt.Errorf("scan production move: %w", err)
		}
		if cached, ok := products[prod.ID]; ok {
			m.Product = cached
		} else {
			p := prod
			products[prod.ID] = &p
			m.Product = &p
		}
		if lotID != nil {
			m.Lot = &entity.Lot{ID: *lotID, ProductID: prod.ID, ExpirationDate: lotExp}
			if lotNum != nil {
				m.Lot.Number = *lotNum
			}
		}

		owner, ok := byID[m.ProductionID]
		if !ok {
			continue
		}
		if kind == moveKindInput {
			owner.Inputs = append(owner.Inputs, m)
		} else {
			owner.Outputs = append(owner.Outputs, m)
		}
	}
	if err := rows.Err(); err != nil {
		return wrapQueryErr("load production moves", err)
	}
	return nil
}
