package entity

import (
	"fmt"
	"time"
)

// Product representa un producto (materia prima, semielaborado o terminado) de una empresa.
// DefaultUOM es la unidad a la que se normalizan todas las cantidades de los reportes.
type Product struct {
	ID         string
	CompanyID  string
	Code       string // código único por empresa
	Name       string
	DefaultUOM UnitOfMeasure
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RecName nombre para mostrar: "[CODE] Nombre", o solo el nombre si no hay código.
func (p Product) RecName() string {
	if p.Code == "" {
		return p.Name
	}
	return fmt.Sprintf("[%s] %s", p.Code, p.Name)
}
