package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// uomNamespace espacio de nombres de los UUID v5 de unidades: el mismo código siempre da el mismo id.
var uomNamespace = uuid.MustParse("6f1c2f1e-8a0b-4a51-9d0e-1b7c3f2d9a11")

type catalogo struct {
	Unidades []unidad `xml:"unidad"`
}

type unidad struct {
	Codigo    string `xml:"codigo,attr"`
	Nombre    string `xml:"nombre,attr"`
	Simbolo   string `xml:"simbolo,attr"`
	Categoria string `xml:"categoria,attr"`
	Factor    string `xml:"factor,attr"`
	Redondeo  string `xml:"redondeo,attr"`
}

// uomRow unidad validada lista para insertar.
type uomRow struct {
	ID       uuid.UUID
	Code     string
	Name     string
	Symbol   string
	Category string
	Factor   decimal.Decimal
	Rounding decimal.Decimal
}

// parseCatalog lee el catálogo (UTF-8 o ISO-8859-1) y valida cada unidad.
// Cada categoría debe tener exactamente una unidad de referencia (factor 1).
func parseCatalog(r io.Reader) ([]uomRow, error) {
	var c catalogo
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decodificar XML: %w", err)
	}

	seen := make(map[string]bool)
	refs := make(map[string]int)
	rows := make([]uomRow, 0, len(c.Unidades))
	for _, u := range c.Unidades {
		code := strings.TrimSpace(u.Codigo)
		if code == "" || strings.TrimSpace(u.Nombre) == "" || strings.TrimSpace(u.Categoria) == "" {
			return nil, fmt.Errorf("unidad incompleta: %+v", u)
		}
		if seen[code] {
			return nil, fmt.Errorf("código duplicado %q", code)
		}
		seen[code] = true

		factor, err := decimal.NewFromString(strings.TrimSpace(u.Factor))
		if err != nil || !factor.IsPositive() {
			return nil, fmt.Errorf("unidad %s: factor inválido %q", code, u.Factor)
		}
		rounding := decimal.Zero
		if s := strings.TrimSpace(u.Redondeo); s != "" {
			if rounding, err = decimal.NewFromString(s); err != nil || rounding.IsNegative() {
				return nil, fmt.Errorf("unidad %s: redondeo inválido %q", code, u.Redondeo)
			}
		}
		symbol := strings.TrimSpace(u.Simbolo)
		if symbol == "" {
			symbol = code
		}
		category := strings.ToLower(strings.TrimSpace(u.Categoria))
		if factor.Equal(decimal.NewFromInt(1)) {
			refs[category]++
		}
		rows = append(rows, uomRow{
			ID:       uuid.NewSHA1(uomNamespace, []byte(code)),
			Code:     code,
			Name:     strings.TrimSpace(u.Nombre),
			Symbol:   symbol,
			Category: category,
			Factor:   factor,
			Rounding: rounding,
		})
	}

	for _, r := range rows {
		if refs[r.Category] != 1 {
			return nil, fmt.Errorf("categoría %q: debe tener exactamente una unidad de referencia (factor 1), tiene %d", r.Category, refs[r.Category])
		}
	}

	// Ordenar por categoría y código para salida estable
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Code < rows[j].Code
	})
	return rows, nil
}

// writeSQL escribe el script idempotente de carga de unidades.
func writeSQL(w io.Writer, rows []uomRow) error {
	var b strings.Builder
	b.WriteString("-- Unidades de medida (catálogo)\n")
	b.WriteString("-- Generado por cmd/seed_uom; no editar a mano\n\n")
	b.WriteString("INSERT INTO uoms (id, code, name, symbol, category, factor, rounding) VALUES\n")
	for i, r := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '%s', %s, %s)%s\n",
			r.ID, escapeSQL(r.Code), escapeSQL(r.Name), escapeSQL(r.Symbol), escapeSQL(r.Category),
			r.Factor.String(), r.Rounding.String(), sep)
	}
	b.WriteString("ON CONFLICT (code) DO UPDATE SET\n")
	b.WriteString("  name = EXCLUDED.name, symbol = EXCLUDED.symbol, category = EXCLUDED.category,\n")
	b.WriteString("  factor = EXCLUDED.factor, rounding = EXCLUDED.rounding;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
