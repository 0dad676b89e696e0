package metrics_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/trazabilidad-api/internal/infrastructure/metrics"
)

func TestObserveReport_CountsByOutcome(t *testing.T) {
	m := metrics.New()

	m.ObserveReport("forward", "ok", 3, 20*time.Millisecond)
	m.ObserveReport("forward", "ok", 1, 10*time.Millisecond)
	m.ObserveReport("", "invalid", 0, time.Millisecond)

	expected := `
# HELP traceability_reports_total Total traceability reports by direction and outcome
# TYPE traceability_reports_total counter
traceability_reports_total{direction="backward",outcome="invalid"} 1
traceability_reports_total{direction="forward",outcome="ok"} 2
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "traceability_reports_total")
	require.NoError(t, err)
}

func TestObserveReport_UnknownDirectionsShareOneSeries(t *testing.T) {
	m := metrics.New()

	for i := 0; i < 50; i++ {
		m.ObserveReport(fmt.Sprintf("junk-%d", i), "invalid", 0, time.Millisecond)
	}
	m.ObserveReport("backward", "ok", 1, time.Millisecond)

	n, err := testutil.GatherAndCount(m.Registry(), "traceability_reports_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	expected := `
# HELP traceability_reports_total Total traceability reports by direction and outcome
# TYPE traceability_reports_total counter
traceability_reports_total{direction="backward",outcome="ok"} 1
traceability_reports_total{direction="invalid",outcome="invalid"} 50
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "traceability_reports_total"))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := metrics.New()
	m.ObserveReport("backward", "ok", 0, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "traceability_report_duration_seconds")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
