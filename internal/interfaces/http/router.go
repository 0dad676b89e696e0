package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/trazabilidad-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName        string
	TraceabilityUC reportGenerator
	HTMLRenderer   htmlRenderer
	PDFGenerator   pdfGenerator
	XLSXGenerator  xlsxGenerator
	ModuleChecker  moduleChecker
	Metrics        nethttp.Handler // nil = sin /metrics
	JWTSecret      string
	BaseURL        string // vacío = scheme://host del request
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Rutas protegidas: JWT + módulo SaaS + RBAC
	traceability := api.Group("/traceability",
		AuthMiddleware(deps.JWTSecret),
		RequireModule(entity.ModuleTraceability, deps.ModuleChecker, log),
		RequireRole(entity.TraceabilityRoles...),
	)
	handler := NewTraceabilityHandler(deps.TraceabilityUC, deps.HTMLRenderer, deps.PDFGenerator, deps.XLSXGenerator, deps.BaseURL, log.Component("http"))
	traceability.Get("/report", handler.GetReport)
}
