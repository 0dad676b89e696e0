package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
)

// Digits decimales con que se muestran cantidades y consumos.
const Digits = 4

const dateLayout = "2006-01-02"

// Formatter da formato localizado a cantidades y fechas del reporte.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter crea el formateador para una etiqueta BCP 47 (p. ej. es-CO).
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q inválido: %w", locale, err)
	}
	return &Formatter{printer: message.NewPrinter(tag)}, nil
}

// Number cantidad con Digits decimales y separadores del locale.
func (f *Formatter) Number(d decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(d.Round(Digits).InexactFloat64(), number.Scale(Digits)))
}

// Quantity cantidad seguida del símbolo de la unidad.
func (f *Formatter) Quantity(d decimal.Decimal, u entity.UnitOfMeasure) string {
	return f.Number(d) + " " + u.Symbol
}

// Date fecha en formato YYYY-MM-DD; "--" si no hay.
func (f *Formatter) Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "--"
	}
	return t.Format(dateLayout)
}
