// Package cli implementa la línea de comandos "trazabilidad" (generación offline del reporte).
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	apptrace "github.com/jhoicas/trazabilidad-api/internal/application/traceability"
)

// ReportGenerator caso de uso del reporte.
type ReportGenerator interface {
	Generate(ctx context.Context, q apptrace.Query) (*apptrace.Report, error)
}

// HTMLRenderer presentador HTML.
type HTMLRenderer interface {
	Render(w io.Writer, rep *apptrace.Report) error
}

// PDFGenerator presentador PDF.
type PDFGenerator interface {
	Generate(rep *apptrace.Report) ([]byte, error)
}

// XLSXGenerator presentador Excel.
type XLSXGenerator interface {
	Generate(rep *apptrace.Report) ([]byte, error)
}

// Backend dependencias que necesita el comando report.
type Backend struct {
	Reports ReportGenerator
	HTML    HTMLRenderer
	PDF     PDFGenerator
	XLSX    XLSXGenerator
	BaseURL string
}

// Opener abre el backend (conexión a la base) y devuelve la función de cierre.
type Opener func(ctx context.Context) (*Backend, func(), error)

// RootOptions flags globales.
type RootOptions struct {
	Open Opener
}

// NewRootCommand crea el comando raíz con sus subcomandos.
func NewRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{Open: open}
	cmd := &cobra.Command{
		Use:           "trazabilidad",
		Short:         "Reportes de trazabilidad de producción",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(NewReportCommand(opts))
	return cmd
}
