// Package metrics exposes Prometheus collectors for model calls, fan-out
// slices, verifications and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "freight"

// operations maps API route patterns to the caller-facing operation they
// serve. Routes outside this table (health, metrics) are not operations.
var operations = map[string]string{
	"/v1/facilities":        "extract_facilities",
	"/v1/facilities/verify": "verify_facility",
	"/v1/sea-rates":         "fetch_sea_rates",
	"/v1/air-rates":         "fetch_air_rates",
	"/v1/air-rates/verify":  "verify_air_rate",
	"/v1/local-charges":     "analyze_local_charges",
}

var (
	// Fan-out calls pace and retry, so buckets reach into minutes.
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"method", "route", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	apiOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_operations_total",
			Help:      "Caller-facing operations served over HTTP by outcome and output format",
		},
		[]string{"operation", "outcome", "format"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration, httpRequestsTotal, apiOperationsTotal)
}

// Middleware records request duration and count per route pattern, and an
// outcome per freight operation.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			route := "unknown"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			status := strconv.Itoa(sw.status)

			httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
			httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()

			if op, ok := operations[route]; ok {
				apiOperationsTotal.WithLabelValues(op, outcome(sw.status), format(r)).Inc()
			}
		})
	}
}

// outcome names the status codes the API maps its error taxonomy to.
func outcome(status int) string {
	switch {
	case status < 400:
		return "ok"
	case status == http.StatusBadGateway:
		return "no_data"
	case status == http.StatusServiceUnavailable:
		return "canceled"
	case status < 500:
		return "rejected"
	default:
		return "error"
	}
}

func format(r *http.Request) string {
	switch f := r.URL.Query().Get("format"); f {
	case "", "json":
		return "json"
	case "xlsx", "geojson":
		return f
	default:
		return "other"
	}
}

// statusWriter remembers the first status written.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}
