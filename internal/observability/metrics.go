package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/maturity-backend/internal/platform/envutil"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

// Metrics methods are safe on a nil receiver so callers need not check
// whether metrics are enabled.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	cacheFills      *prometheus.CounterVec
	cacheFillDur    prometheus.Histogram
	cachedRows      prometheus.Gauge
	analysisLatency *prometheus.HistogramVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

// Init builds the process-wide metrics once; nil when METRICS_ENABLED is off.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics(prometheus.NewRegistry())
		if log != nil {
			log.Info("metrics enabled")
		}
	})
	return instance
}

// NewMetrics registers every collector on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maturity_api_requests_total",
			Help: "API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "maturity_api_request_duration_seconds",
			Help:    "API request latency by method/route/status.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "maturity_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		cacheFills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maturity_response_cache_fills_total",
			Help: "Response cache fills by outcome.",
		}, []string{"outcome"}),
		cacheFillDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "maturity_response_cache_fill_duration_seconds",
			Help:    "Time spent loading responses from the document store.",
			Buckets: prometheus.DefBuckets,
		}),
		cachedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "maturity_response_cache_rows",
			Help: "Survey responses held by the cache.",
		}),
		analysisLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "maturity_analysis_duration_seconds",
			Help:    "Analysis computation time by kind.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"kind"}),
	}
	reg.MustRegister(
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.cacheFills,
		m.cacheFillDur,
		m.cachedRows,
		m.analysisLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) ObserveCacheFill(rows int, dur time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	} else {
		m.cachedRows.Set(float64(rows))
	}
	m.cacheFills.WithLabelValues(outcome).Inc()
	m.cacheFillDur.Observe(dur.Seconds())
}

func (m *Metrics) ObserveAnalysis(kind string, dur time.Duration) {
	if m == nil {
		return
	}
	m.analysisLatency.WithLabelValues(kind).Observe(dur.Seconds())
}
