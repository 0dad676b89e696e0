package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	apptrace "github.com/jhoicas/trazabilidad-api/internal/application/traceability"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLRenderer genera el reporte HTML (Bootstrap, detalle por lote colapsable).
type HTMLRenderer struct {
	tmpl *template.Template
	fmt  *Formatter
}

// NewHTMLRenderer parsea la plantilla embebida.
func NewHTMLRenderer(f *Formatter) (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/traceability.html")
	if err != nil {
		return nil, fmt.Errorf("parsear plantilla de trazabilidad: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl, fmt: f}, nil
}

type htmlData struct {
	View
	QuantityNote string
}

// Render escribe el reporte en w.
func (r *HTMLRenderer) Render(w io.Writer, rep *apptrace.Report) error {
	data := htmlData{View: BuildView(rep, r.fmt), QuantityNote: QuantityNote}
	if err := r.tmpl.ExecuteTemplate(w, "traceability.html", data); err != nil {
		return fmt.Errorf("renderizar reporte HTML: %w", err)
	}
	return nil
}
