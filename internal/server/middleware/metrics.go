package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// responseWriter wraps http.ResponseWriter to capture status code and response size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

// endpointPattern extracts the chi route pattern to avoid high-cardinality paths
func endpointPattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}

	switch r.URL.Path {
	case "/translate", "/health", "/config", "/version", "/metrics", "/":
		return r.URL.Path
	default:
		// Unknown paths collapse to one label value.
		return "/unknown"
	}
}

// HTTPMetrics records per-request Prometheus metrics.
type HTTPMetrics struct {
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	errors    *prometheus.CounterVec
	panics    prometheus.Counter
}

// NewHTTPMetrics registers the HTTP request metrics on reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)
	return &HTTPMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lingogate",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by method, endpoint and status.",
		}, []string{"method", "endpoint", "status"}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lingogate",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lingogate",
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "HTTP responses with a 4xx or 5xx status.",
		}, []string{"method", "endpoint", "status", "error_type"}),
		panics: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lingogate",
			Subsystem: "http",
			Name:      "panics_recovered_total",
			Help:      "Handler panics recovered by the middleware chain.",
		}),
	}
}

// Middleware instruments each request. Safe to use on a nil receiver,
// in which case it is a pass-through.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		endpoint := endpointPattern(r)
		status := strconv.Itoa(wrapped.statusCode)

		m.requests.WithLabelValues(r.Method, endpoint, status).Inc()
		m.durations.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())

		if wrapped.statusCode >= 400 {
			errorType := "client_error"
			if wrapped.statusCode >= 500 {
				errorType = "server_error"
			}
			m.errors.WithLabelValues(r.Method, endpoint, status, errorType).Inc()
		}
	})
}

func (m *HTTPMetrics) recordPanic() {
	if m != nil {
		m.panics.Inc()
	}
}
