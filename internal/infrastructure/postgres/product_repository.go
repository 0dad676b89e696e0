package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/trazabilidad-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de lectura de productos (con su unidad por defecto) sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID junto con su unidad de medida por defecto.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	const query = `
		SELECT p.id, p.company_id, p.code, p.name, p.created_at, p.updated_at,
		       u.id, u.name, u.symbol, u.category, u.factor, u.rounding
		FROM products p
		JOIN uoms u ON u.id = p.default_uom_id
		WHERE p.id = $1`
	var p entity.Product
	u := &p.DefaultUOM
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CompanyID, &p.Code, &p.Name, &p.CreatedAt, &p.UpdatedAt,
		&u.ID, &u.Name, &u.Symbol, &u.Category, &u.Factor, &u.Rounding,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
