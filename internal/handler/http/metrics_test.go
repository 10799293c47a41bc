package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outfitmatch/internal/observability/metrics"
)

func serveMetered(t *testing.T, method, path string, status int) {
	t.Helper()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	require.Equal(t, status, rec.Code)
}

func TestMetricsMiddleware_NormalizesItemPaths(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	// Four distinct outfit IDs must collapse into one label set.
	for _, id := range []string{
		"550e8400-e29b-41d4-a716-446655440001",
		"550e8400-e29b-41d4-a716-446655440002",
		"550e8400-e29b-41d4-a716-446655440003",
		"550e8400-e29b-41d4-a716-446655440004",
	} {
		serveMetered(t, http.MethodGet, "/outfits/"+id, http.StatusOK)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.HTTPRequestsTotal))
	counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/outfits/:id", "200")
	assert.InDelta(t, 4.0, testutil.ToFloat64(counter), 1e-9)
}

func TestMetricsMiddleware_RecordsStatusPerRequest(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	serveMetered(t, http.MethodGet, "/health", http.StatusOK)
	serveMetered(t, http.MethodGet, "/health", http.StatusServiceUnavailable)

	ok := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/health", "200")
	down := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/health", "503")
	assert.InDelta(t, 1.0, testutil.ToFloat64(ok), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(down), 1e-9)
}

func TestMetricsHandler_ServesPrometheusText(t *testing.T) {
	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "go_goroutines"),
		"runtime metrics should be exposed")
}
