package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metrics are registered on the server's own registry so servers can coexist in tests
type metrics struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	estimatesTotal  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tco",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
		}, []string{"code", "method"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tco",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method and status code.",
		}, []string{"code", "method"}),
		estimatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tco",
			Name:      "estimates_total",
			Help:      "Estimates produced by target.",
		}, []string{"target"}),
	}
	reg.MustRegister(m.requestDuration, m.requestsTotal, m.estimatesTotal)
	return m
}

// instrument wraps next with request duration and count metrics
func (m *metrics) instrument(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerDuration(
		m.requestDuration,
		promhttp.InstrumentHandlerCounter(m.requestsTotal, next),
	)
}

// logRequests logs every request; health and metrics scrapes only at debug
func logRequests(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log := logger.Info
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			log = logger.Debug
		}
		log("HTTP request",
			zap.String("method", r.Method),
			zap.String("route", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client", r.RemoteAddr),
		)
	})
}
