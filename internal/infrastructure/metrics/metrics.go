// Package metrics expone las métricas Prometheus del servicio de trazabilidad.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics colectores del reporte de trazabilidad, registrados en un registro propio.
type Metrics struct {
	registry *prometheus.Registry

	reportsTotal   *prometheus.CounterVec
	reportDuration *prometheus.HistogramVec
	productions    prometheus.Histogram
}

// New crea el registro con los colectores del proceso y de Go más los del reporte.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		// reportsTotal cuenta reportes por dirección y resultado (ok|invalid|rejected|unit_mismatch|error)
		reportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "traceability_reports_total",
			Help: "Total traceability reports by direction and outcome",
		}, []string{"direction", "outcome"}),
		reportDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "traceability_report_duration_seconds",
			Help:    "Traceability report generation time in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms a ~10s
		}, []string{"direction"}),
		productions: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "traceability_report_productions",
			Help:    "Number of finished production orders folded per report",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
		}),
	}
}

// ObserveReport registra un reporte generado (o rechazado).
func (m *Metrics) ObserveReport(direction, outcome string, productions int, elapsed time.Duration) {
	switch direction {
	case "":
		direction = "backward"
	case "backward", "forward":
	default:
		direction = "invalid"
	}
	m.reportsTotal.WithLabelValues(direction, outcome).Inc()
	m.reportDuration.WithLabelValues(direction).Observe(elapsed.Seconds())
	if outcome == "ok" {
		m.productions.Observe(float64(productions))
	}
}

// Handler expone el registro en formato de texto de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry registro subyacente (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
