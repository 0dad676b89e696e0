package traceability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/trazabilidad-api/internal/domain"
	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/trazabilidad-api/internal/domain/repository"
	"github.com/jhoicas/trazabilidad-api/internal/domain/traceability"
	"github.com/jhoicas/trazabilidad-api/pkg/logger"
)

// Rango por defecto cuando no se indican fechas.
var (
	MinDate = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	MaxDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

// Query consulta del reporte. CompanyID sale del token; BaseURL lo fija el llamador.
type Query struct {
	CompanyID string
	ProductID string
	LotID     string
	Direction string
	FromDate  *time.Time
	ToDate    *time.Time
	BaseURL   string
}

// Parameters eco de la consulta resuelta; lo usa la presentación, el motor no lo interpreta.
type Parameters struct {
	Direction traceability.Direction
	FromDate  time.Time
	ToDate    time.Time
	ShowDate  bool
	Product   entity.Product
	Lot       *entity.Lot
	Company   entity.Company
	BaseURL   string
}

// Report salida del caso de uso: registros por producto/lote, totales por producto y parámetros.
type Report struct {
	Parameters  Parameters
	Records     *traceability.Records
	Totals      map[string]traceability.Totals
	Productions int
	GeneratedAt time.Time
}

// IsEmpty informa si ninguna orden aportó registros.
func (r *Report) IsEmpty() bool {
	return r.Records == nil || r.Records.IsEmpty()
}

// Options ajustes del caso de uso (resueltos una sola vez al arrancar).
type Options struct {
	Workers     int
	LotTracking bool
	Metrics     MetricsRecorder
}

// ReportUseCase genera el reporte de trazabilidad de producción.
type ReportUseCase struct {
	snapshot    SnapshotRunner
	productRepo repository.ProductRepository
	lotRepo     repository.LotRepository
	companyRepo repository.CompanyRepository
	engine      *traceability.Engine
	opts        Options
	log         *logger.Logger
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(
	snapshot SnapshotRunner,
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	companyRepo repository.CompanyRepository,
	engine *traceability.Engine,
	opts Options,
	log *logger.Logger,
) *ReportUseCase {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Metrics == nil {
		opts.Metrics = nopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{
		snapshot:    snapshot,
		productRepo: productRepo,
		lotRepo:     lotRepo,
		companyRepo: companyRepo,
		engine:      engine,
		opts:        opts,
		log:         log.Component("traceability"),
	}
}

// LotTracking informa si la instalación maneja lotes.
func (uc *ReportUseCase) LotTracking() bool { return uc.opts.LotTracking }

// Generate valida la consulta, busca las órdenes finalizadas, calcula cada orden en paralelo y
// pliega los resultados en el orden devuelto por el almacén.
//
// Retorna:
//   - domain.ErrInvalidInput  consulta inválida (sin producto, dirección desconocida, from > to, lote ajeno).
//   - domain.ErrNotFound      producto, lote o empresa inexistente.
//   - domain.ErrForbidden     el producto pertenece a otra empresa.
//   - domain.ErrUnitMismatch  defecto de normalización al acumular totales.
//
// Sin órdenes no es error: el reporte vuelve vacío.
func (uc *ReportUseCase) Generate(ctx context.Context, q Query) (*Report, error) {
	start := time.Now()
	params, err := uc.resolve(ctx, q)
	if err != nil {
		uc.opts.Metrics.ObserveReport(directionLabel(q.Direction), outcomeOf(err), 0, time.Since(start))
		return nil, err
	}

	report, err := uc.build(ctx, params)
	productions := 0
	if report != nil {
		productions = report.Productions
	}
	uc.opts.Metrics.ObserveReport(string(params.Direction), outcomeOf(err), productions, time.Since(start))
	if err != nil {
		uc.log.Error().Err(err).
			Str("company_id", params.Company.ID).
			Str("product_id", params.Product.ID).
			Str("direction", string(params.Direction)).
			Msg("reporte de trazabilidad abortado")
		return nil, err
	}

	uc.log.Info().
		Str("company_id", params.Company.ID).
		Str("product_id", params.Product.ID).
		Str("direction", string(params.Direction)).
		Int("productions", report.Productions).
		Int("products", report.Records.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("reporte de trazabilidad generado")
	return report, nil
}

// resolve valida la consulta y carga producto, lote y empresa.
func (uc *ReportUseCase) resolve(ctx context.Context, q Query) (Parameters, error) {
	var params Parameters

	dir, err := traceability.ParseDirection(q.Direction)
	if err != nil {
		return params, err
	}
	if q.LotID != "" && !uc.opts.LotTracking {
		return params, fmt.Errorf("%w: la instalación no maneja lotes", domain.ErrInvalidInput)
	}
	if q.CompanyID == "" {
		return params, fmt.Errorf("%w: empresa obligatoria", domain.ErrInvalidInput)
	}

	from, to := MinDate, MaxDate
	if q.FromDate != nil {
		from = *q.FromDate
	}
	if q.ToDate != nil {
		to = *q.ToDate
	}
	if from.After(to) {
		return params, fmt.Errorf("%w: from_date posterior a to_date", domain.ErrInvalidInput)
	}

	var lot *entity.Lot
	if q.LotID != "" {
		lot, err = uc.lotRepo.GetByID(ctx, q.LotID)
		if err != nil {
			return params, err
		}
		if lot == nil {
			return params, fmt.Errorf("%w: lote %s", domain.ErrNotFound, q.LotID)
		}
	}

	productID := q.ProductID
	if productID == "" && lot != nil {
		productID = lot.ProductID
	}
	if productID == "" {
		return params, fmt.Errorf("%w: producto obligatorio", domain.ErrInvalidInput)
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return params, err
	}
	if product == nil {
		return params, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	if product.CompanyID != q.CompanyID {
		return params, domain.ErrForbidden
	}
	if lot != nil && lot.ProductID != product.ID {
		return params, fmt.Errorf("%w: el lote %s no pertenece al producto", domain.ErrInvalidInput, lot.Number)
	}

	company, err := uc.companyRepo.GetByID(ctx, q.CompanyID)
	if err != nil {
		return params, err
	}
	if company == nil {
		return params, fmt.Errorf("%w: empresa %s", domain.ErrNotFound, q.CompanyID)
	}

	return Parameters{
		Direction: dir,
		FromDate:  from,
		ToDate:    to,
		ShowDate:  q.FromDate != nil,
		Product:   *product,
		Lot:       lot,
		Company:   *company,
		BaseURL:   q.BaseURL,
	}, nil
}

func (uc *ReportUseCase) build(ctx context.Context, params Parameters) (*Report, error) {
	filter := repository.TraceabilityFilter{
		CompanyID: params.Company.ID,
		ProductID: params.Product.ID,
		Direction: params.Direction,
		From:      params.FromDate,
		To:        params.ToDate,
	}
	if params.Lot != nil {
		filter.LotID = params.Lot.ID
	}

	var productions []*entity.Production
	err := uc.snapshot.ReadOnly(ctx, func(repo repository.ProductionRepository) error {
		var err error
		productions, err = repo.SearchForTraceability(ctx, filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("buscar órdenes de producción: %w", err)
	}
	uc.log.Debug().Int("productions", len(productions)).Msg("órdenes candidatas")

	results, err := uc.computeAll(ctx, productions, &params.Product, params.Direction)
	if err != nil {
		return nil, err
	}
	records, totals, err := traceability.Fold(results)
	if err != nil {
		return nil, err
	}
	folded := 0
	for _, r := range results {
		if r != nil {
			folded++
		}
	}
	return &Report{
		Parameters:  params,
		Records:     records,
		Totals:      totals,
		Productions: folded,
		GeneratedAt: time.Now(),
	}, nil
}

// computeAll calcula cada orden en paralelo; cada goroutine escribe solo su posición de results,
// por lo que el pliegue posterior conserva el orden del almacén.
func (uc *ReportUseCase) computeAll(
	ctx context.Context,
	productions []*entity.Production,
	requested *entity.Product,
	dir traceability.Direction,
) ([]*traceability.Result, error) {
	results := make([]*traceability.Result, len(productions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.opts.Workers)
	for i, p := range productions {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if !p.IsDone() {
				return nil
			}
			res, err := uc.engine.Compute(p, requested, dir)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DirectionInvalid etiqueta de métricas para direcciones que no se pudieron interpretar.
const DirectionInvalid = "invalid"

// directionLabel acota la etiqueta de métricas a backward, forward o invalid.
func directionLabel(raw string) string {
	d, err := traceability.ParseDirection(raw)
	if err != nil {
		return DirectionInvalid
	}
	return string(d)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrForbidden):
		return "rejected"
	case errors.Is(err, domain.ErrUnitMismatch):
		return "unit_mismatch"
	default:
		return "error"
	}
}
