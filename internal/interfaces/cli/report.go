package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	apptrace "github.com/jhoicas/trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/domain"
)

// ReportOptions flags del comando report.
type ReportOptions struct {
	*RootOptions
	CompanyID string
	ProductID string
	LotID     string
	Direction string
	From      string
	To        string
	Format    string
	Out       string
}

// NewReportCommand crea el comando report.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Genera el reporte de trazabilidad de un producto o lote",
		Long: `Genera el reporte de trazabilidad a partir de las órdenes de producción finalizadas.

Ejemplo:
  trazabilidad report --company <uuid> --product <uuid> --direction backward --format html --out traza.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.CompanyID, "company", "", "UUID de la empresa (obligatorio)")
	f.StringVar(&opts.ProductID, "product", "", "UUID del producto")
	f.StringVar(&opts.LotID, "lot", "", "UUID del lote")
	f.StringVar(&opts.Direction, "direction", "backward", "backward | forward")
	f.StringVar(&opts.From, "from", "", "fecha desde (YYYY-MM-DD)")
	f.StringVar(&opts.To, "to", "", "fecha hasta (YYYY-MM-DD)")
	f.StringVar(&opts.Format, "format", "json", "json | html | pdf | xlsx")
	f.StringVarP(&opts.Out, "out", "o", "-", "archivo de salida ('-' = stdout)")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}

func runReport(cmd *cobra.Command, opts *ReportOptions) error {
	format := strings.ToLower(opts.Format)
	switch format {
	case "json", "html", "pdf", "xlsx":
	default:
		return fmt.Errorf("--format debe ser json, html, pdf o xlsx")
	}
	for name, id := range map[string]string{"company": opts.CompanyID, "product": opts.ProductID, "lot": opts.LotID} {
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("%w: --%s debe ser un UUID", domain.ErrInvalidInput, name)
		}
	}
	from, err := parseDateFlag("from", opts.From)
	if err != nil {
		return err
	}
	to, err := parseDateFlag("to", opts.To)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	backend, closeFn, err := opts.Open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := backend.Reports.Generate(ctx, apptrace.Query{
		CompanyID: opts.CompanyID,
		ProductID: opts.ProductID,
		LotID:     opts.LotID,
		Direction: opts.Direction,
		FromDate:  from,
		ToDate:    to,
		BaseURL:   backend.BaseURL,
	})
	if err != nil {
		return err
	}

	// Se renderiza completo en memoria: un error de generación no deja archivos a medias.
	var buf bytes.Buffer
	switch format {
	case "html":
		err = backend.HTML.Render(&buf, report)
	case "pdf":
		err = writeBytes(&buf, backend.PDF.Generate, report)
	case "xlsx":
		err = writeBytes(&buf, backend.XLSX.Generate, report)
	default:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(apptrace.ToDTO(report))
	}
	if err != nil {
		return err
	}

	if opts.Out == "" || opts.Out == "-" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	return writeFile(opts.Out, buf.Bytes())
}

func writeFile(path string, b []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear %s: %w", path, err)
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cerrar %s: %w", path, err)
	}
	return nil
}

func writeBytes(w io.Writer, gen func(*apptrace.Report) ([]byte, error), report *apptrace.Report) error {
	b, err := gen(report)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func parseDateFlag(name, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("--%s debe tener formato YYYY-MM-DD: %w", name, err)
	}
	return &t, nil
}
