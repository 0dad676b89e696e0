package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/trazabilidad-api/internal/application/dto"
	apptrace "github.com/jhoicas/trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/trazabilidad-api/internal/domain"
	"github.com/jhoicas/trazabilidad-api/pkg/logger"
)

const (
	FormatJSON = "json"
	FormatHTML = "html"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type reportGenerator interface {
	Generate(ctx context.Context, q apptrace.Query) (*apptrace.Report, error)
}

type htmlRenderer interface {
	Render(w io.Writer, rep *apptrace.Report) error
}

type pdfGenerator interface {
	Generate(rep *apptrace.Report) ([]byte, error)
}

type xlsxGenerator interface {
	Generate(rep *apptrace.Report) ([]byte, error)
}

// TraceabilityHandler expone el reporte de trazabilidad en JSON, HTML, PDF o XLSX.
type TraceabilityHandler struct {
	uc      reportGenerator
	html    htmlRenderer
	pdf     pdfGenerator
	xlsx    xlsxGenerator
	baseURL string
	log     *logger.Logger
}

// NewTraceabilityHandler construye el handler. baseURL vacío = se toma del request.
func NewTraceabilityHandler(uc reportGenerator, html htmlRenderer, pdf pdfGenerator, xlsx xlsxGenerator, baseURL string, log *logger.Logger) *TraceabilityHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &TraceabilityHandler{uc: uc, html: html, pdf: pdf, xlsx: xlsx, baseURL: baseURL, log: log}
}

// GetReport godoc
// @Summary      Reporte de trazabilidad de producción
// @Description  Hacia atrás (backward): materias primas y lotes consumidos para fabricar el producto.
//               Hacia adelante (forward): productos terminados en los que participó el producto.
//               Solo órdenes finalizadas. Requiere módulo 'traceability' activo.
// @Tags         traceability
// @Security     Bearer
// @Produce      json,html,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        product_id  query  string  false  "UUID del producto (obligatorio salvo que se envíe lot_id)"
// @Param        direction   query  string  false  "backward (default) | forward"
// @Param        from_date   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to_date     query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        lot_id      query  string  false  "UUID del lote"
// @Param        format      query  string  false  "json (default) | html | pdf | xlsx"
// @Success      200  {object}  dto.TraceabilityReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/traceability/report [get]
func (h *TraceabilityHandler) GetReport(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
	}

	var req dto.TraceabilityReportRequest
	if err := c.QueryParser(&req); err != nil {
		return validationError(c, "parámetros de consulta inválidos")
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = FormatJSON
	}
	switch format {
	case FormatJSON, FormatHTML, FormatPDF, FormatXLSX:
	default:
		return validationError(c, "format debe ser json, html, pdf o xlsx")
	}

	q := apptrace.Query{
		CompanyID: companyID,
		ProductID: strings.TrimSpace(req.ProductID),
		LotID:     strings.TrimSpace(req.LotID),
		Direction: req.Direction,
		BaseURL:   h.baseURL,
	}
	if q.BaseURL == "" {
		q.BaseURL = c.BaseURL()
	}
	for name, id := range map[string]string{"product_id": q.ProductID, "lot_id": q.LotID} {
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			return validationError(c, name+" debe ser un UUID")
		}
	}
	var err error
	if q.FromDate, err = parseDate(req.FromDate); err != nil {
		return validationError(c, "from_date debe tener formato YYYY-MM-DD")
	}
	if q.ToDate, err = parseDate(req.ToDate); err != nil {
		return validationError(c, "to_date debe tener formato YYYY-MM-DD")
	}

	report, err := h.uc.Generate(c.UserContext(), q)
	if err != nil {
		return h.writeError(c, err)
	}

	switch format {
	case FormatHTML:
		var buf bytes.Buffer
		if err := h.html.Render(&buf, report); err != nil {
			return h.writeError(c, err)
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	case FormatPDF:
		b, err := h.pdf.Generate(report)
		if err != nil {
			return h.writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="traceability.pdf"`)
		return c.Send(b)
	case FormatXLSX:
		b, err := h.xlsx.Generate(report)
		if err != nil {
			return h.writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="traceability.xlsx"`)
		return c.Send(b)
	default:
		return c.JSON(apptrace.ToDTO(report))
	}
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func validationError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}

// writeError traduce errores de dominio a respuestas HTTP.
func (h *TraceabilityHandler) writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	msg := err.Error()
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrUnitMismatch):
		code = "UNIT_MISMATCH"
	case errors.Is(err, domain.ErrIncompatibleUnits):
		code = "INCOMPATIBLE_UNITS"
	case errors.Is(err, context.DeadlineExceeded):
		status, code, msg = fiber.StatusGatewayTimeout, "TIMEOUT", "la consulta excedió el tiempo máximo"
	default:
		msg = "error interno generando el reporte"
	}
	if status >= fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("company_id", GetCompanyID(c)).Str("code", code).Msg("reporte de trazabilidad")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
