package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrUnitMismatch indica que dos cantidades del mismo producto llegaron en unidades distintas
	// al acumular totales. Es un defecto de normalización: el reporte se aborta.
	ErrUnitMismatch = errors.New("unidad de medida inconsistente en totales")
	// ErrIncompatibleUnits indica una conversión entre categorías distintas (ej. kg → unidad).
	ErrIncompatibleUnits = errors.New("unidades de medida incompatibles")
)
