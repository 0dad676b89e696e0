package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/trazabilidad-api/internal/application/dto"
	apptrace "github.com/jhoicas/trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/domain"
	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/trazabilidad-api/internal/domain/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/interfaces/cli"
)

const (
	companyID = "0b6d6f3e-2c1a-4b8e-9a57-1f0c2d3e4a5b"
	productID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

type fakeReports struct {
	last apptrace.Query
	err  error
}

func (f *fakeReports) Generate(_ context.Context, q apptrace.Query) (*apptrace.Report, error) {
	f.last = q
	if f.err != nil {
		return nil, f.err
	}
	records, totals, _ := traceability.Fold(nil)
	return &apptrace.Report{
		Parameters: apptrace.Parameters{
			Direction: traceability.Forward,
			FromDate:  apptrace.MinDate,
			ToDate:    apptrace.MaxDate,
			Product:   entity.Product{ID: q.ProductID, Code: "R", Name: "Harina"},
			Company:   entity.Company{ID: q.CompanyID, Name: "Panadería"},
		},
		Records:     records,
		Totals:      totals,
		GeneratedAt: time.Now(),
	}, nil
}

type fakeHTML struct{}

func (fakeHTML) Render(w io.Writer, _ *apptrace.Report) error {
	_, err := io.WriteString(w, "<html>No data</html>")
	return err
}

type fakePDF struct{}

func (fakePDF) Generate(*apptrace.Report) ([]byte, error) { return []byte("%PDF-fake"), nil }

type fakeXLSX struct{}

func (fakeXLSX) Generate(*apptrace.Report) ([]byte, error) { return []byte("PK-fake"), nil }

type failingPDF struct{}

func (failingPDF) Generate(*apptrace.Report) ([]byte, error) { return nil, errors.New("maroto: fuente") }

func newBackend(reports *fakeReports) *cli.Backend {
	return &cli.Backend{Reports: reports, HTML: fakeHTML{}, PDF: fakePDF{}, XLSX: fakeXLSX{}, BaseURL: "https://erp.example.com"}
}

func run(t *testing.T, reports *fakeReports, args ...string) (string, error) {
	t.Helper()
	return runWith(t, newBackend(reports), reports, args...)
}

func runWith(t *testing.T, backend *cli.Backend, reports *fakeReports, args ...string) (string, error) {
	t.Helper()
	closed := false
	open := func(context.Context) (*cli.Backend, func(), error) {
		return backend, func() { closed = true }, nil
	}
	cmd := cli.NewRootCommand(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	if reports.last.CompanyID != "" {
		assert.True(t, closed, "el backend debe cerrarse")
	}
	return out.String(), err
}

func TestReport_JSONToStdout(t *testing.T) {
	reports := &fakeReports{}
	out, err := run(t, reports, "report", "--company", companyID, "--product", productID, "--direction", "forward", "--from", "2026-01-01")
	require.NoError(t, err)

	var body dto.TraceabilityReportDTO
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.True(t, body.Empty)
	assert.Equal(t, "Forward", body.Parameters.DirectionLabel)

	assert.Equal(t, companyID, reports.last.CompanyID)
	assert.Equal(t, "forward", reports.last.Direction)
	assert.Equal(t, "https://erp.example.com", reports.last.BaseURL)
	require.NotNil(t, reports.last.FromDate)
	assert.Nil(t, reports.last.ToDate)
}

func TestReport_WritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traza.html")

	_, err := run(t, &fakeReports{}, "report", "--company", companyID, "--product", productID, "--format", "html", "--out", path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "No data")
}

func TestReport_PDF(t *testing.T) {
	out, err := run(t, &fakeReports{}, "report", "--company", companyID, "--product", productID, "--format", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", out)

	out, err = run(t, &fakeReports{}, "report", "--company", companyID, "--product", productID, "--format", "XLSX")
	require.NoError(t, err)
	assert.Equal(t, "PK-fake", out)
}

func TestReport_InvalidFlags(t *testing.T) {
	reports := &fakeReports{}

	_, err := run(t, reports, "report", "--company", companyID, "--format", "xml")
	assert.Error(t, err)

	_, err = run(t, reports, "report", "--company", companyID, "--from", "01-01-2026")
	assert.Error(t, err)

	_, err = run(t, reports, "report", "--product", productID)
	assert.Error(t, err, "--company es obligatorio")

	assert.Empty(t, reports.last.CompanyID, "no debe generarse el reporte")
}

func TestReport_IDsMustBeUUIDs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"company", []string{"--company", "c1", "--product", productID}},
		{"product", []string{"--company", companyID, "--product", "p1"}},
		{"lot", []string{"--company", companyID, "--lot", "lote-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := &fakeReports{}
			_, err := run(t, reports, append([]string{"report"}, tt.args...)...)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), "--"+tt.name)
			assert.Empty(t, reports.last.CompanyID, "no debe generarse el reporte")
		})
	}
}

func TestReport_RenderErrorLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traza.pdf")
	reports := &fakeReports{}
	backend := newBackend(reports)
	backend.PDF = failingPDF{}

	_, err := runWith(t, backend, reports, "report", "--company", companyID, "--product", productID, "--format", "pdf", "--out", path)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no debe quedar un archivo a medias")
}

func TestReport_OutputPathErrorIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-existe", "traza.json")
	_, err := run(t, &fakeReports{}, "report", "--company", companyID, "--product", productID, "--out", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crear")
}

func TestReport_UseCaseErrorPropagates(t *testing.T) {
	reports := &fakeReports{err: fmt.Errorf("%w: producto", domain.ErrNotFound)}
	_, err := run(t, reports, "report", "--company", companyID, "--product", productID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
