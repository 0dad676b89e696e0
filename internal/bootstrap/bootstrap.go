// Package bootstrap arma las dependencias compartidas por la API y la CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/trazabilidad-api/internal/application/module"
	apptrace "github.com/jhoicas/trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/domain/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/domain/uom"
	"github.com/jhoicas/trazabilidad-api/internal/infrastructure/metrics"
	"github.com/jhoicas/trazabilidad-api/internal/infrastructure/pdf"
	"github.com/jhoicas/trazabilidad-api/internal/infrastructure/postgres"
	"github.com/jhoicas/trazabilidad-api/internal/infrastructure/report"
	"github.com/jhoicas/trazabilidad-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/trazabilidad-api/pkg/config"
	"github.com/jhoicas/trazabilidad-api/pkg/logger"
)

const moduleCacheTTL = time.Minute

// Services dependencias listas para usar.
type Services struct {
	Pool     *pgxpool.Pool
	Modules  *module.Service
	ReportUC *apptrace.ReportUseCase
	HTML     *report.HTMLRenderer
	PDF      *pdf.TraceabilityPDFGenerator
	XLSX     *xlsx.TraceabilityXLSXGenerator
	Metrics  *metrics.Metrics
}

// Close libera el pool.
func (s *Services) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// Build conecta a PostgreSQL y construye repositorios, motor, caso de uso y presentadores.
// m puede ser nil (CLI sin métricas).
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (*Services, error) {
	formatter, err := report.NewFormatter(cfg.Report.Locale)
	if err != nil {
		return nil, err
	}
	htmlRenderer, err := report.NewHTMLRenderer(formatter)
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	snapshot := postgres.NewSnapshotRunner(pool, postgres.ProductionOptions{
		LotTracking:  cfg.Report.LotTracking,
		QueryTimeout: cfg.Report.QueryTimeout,
	})

	opts := apptrace.Options{Workers: cfg.Report.Workers, LotTracking: cfg.Report.LotTracking}
	if m != nil {
		opts.Metrics = m
	}
	reportUC := apptrace.NewReportUseCase(
		snapshot,
		postgres.NewProductRepository(pool),
		postgres.NewLotRepository(pool),
		companyRepo,
		traceability.NewEngine(uom.NewConverter()),
		opts,
		log,
	)

	return &Services{
		Pool:     pool,
		Modules:  module.NewService(companyRepo, moduleCacheTTL),
		ReportUC: reportUC,
		HTML:     htmlRenderer,
		PDF:      pdf.NewTraceabilityPDFGenerator(formatter),
		XLSX:     xlsx.NewTraceabilityXLSXGenerator(formatter),
		Metrics:  m,
	}, nil
}
