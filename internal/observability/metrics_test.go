package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsNilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveAPI("GET", "/api/axes", "200", time.Millisecond)
	m.ObserveCacheFill(3, time.Millisecond, nil)
	m.ObserveAnalysis("global", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsRecordAndExpose(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveAPI("GET", "/api/stats/global", "200", 20*time.Millisecond)
	m.ObserveAPI("GET", "/api/stats/global", "200", 30*time.Millisecond)
	m.ObserveCacheFill(12, time.Second, nil)
	m.ObserveCacheFill(0, time.Second, errors.New("down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("GET", "/api/stats/global", "200")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.cachedRows))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheFills.WithLabelValues("error")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "maturity_api_requests_total"))
}

func TestEnabled(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "")
	assert.False(t, Enabled())
	t.Setenv("METRICS_ENABLED", "true")
	assert.True(t, Enabled())
}
