// Package traceability implementa el motor de trazabilidad de producción: a partir de órdenes
// finalizadas calcula, por producto y lote, qué materias primas (hacia atrás) o qué productos
// terminados (hacia adelante) están ligados a un producto solicitado, y en qué cantidades.
package traceability

import (
	"fmt"
	"strings"

	"github.com/jhoicas/trazabilidad-api/internal/domain"
	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
)

// Direction sentido de la trazabilidad.
type Direction string

const (
	// Backward: del producto terminado a las materias primas consumidas.
	// El producto solicitado se busca en las salidas y el desglose sale de las entradas.
	Backward Direction = "backward"
	// Forward: de la materia prima a los productos terminados en los que participó.
	// El producto solicitado se busca en las entradas y el desglose sale de las salidas.
	Forward Direction = "forward"
)

// ParseDirection interpreta el texto recibido; vacío equivale a Backward.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Backward:
		return Backward, nil
	case Forward:
		return Forward, nil
	}
	return "", fmt.Errorf("%w: dirección %q (use backward o forward)", domain.ErrInvalidInput, s)
}

// Label etiqueta legible para reportes.
func (d Direction) Label() string {
	if d == Forward {
		return "Forward"
	}
	return "Backward"
}

// Primary movimientos donde se busca el producto solicitado.
func (d Direction) Primary(p *entity.Production) []entity.Move {
	if d == Backward {
		return p.Outputs
	}
	return p.Inputs
}

// Counterpart movimientos que se desglosan por producto y lote.
func (d Direction) Counterpart(p *entity.Production) []entity.Move {
	if d == Backward {
		return p.Inputs
	}
	return p.Outputs
}
