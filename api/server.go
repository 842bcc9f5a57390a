// Package api is the HTTP JSON API over the estimation engines.
// Handlers decode requests, call the engines and render output views. They
// never compute costs themselves.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"infra-tco/core/alternatives"
	"infra-tco/core/engine"
	"infra-tco/core/pricing"
	"infra-tco/internal/errors"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Server is the API server
type Server struct {
	estimator      *engine.Estimator
	matcher        *alternatives.Matcher
	includePricing bool
	livePricing    bool
	version        string

	mux      *http.ServeMux
	handler  http.Handler
	registry *prometheus.Registry
	metrics  *metrics
	logger   *zap.Logger
}

// Option configures a Server
type Option func(*Server)

// WithEstimator sets the estimator; its registry and low-code engines serve the other routes
func WithEstimator(e *engine.Estimator) Option {
	return func(s *Server) { s.estimator = e }
}

// WithMatcher sets the alternatives matcher
func WithMatcher(m *alternatives.Matcher) Option {
	return func(s *Server) { s.matcher = m }
}

// WithIncludePricing false renders every amount as "N/A"
func WithIncludePricing(include bool) Option {
	return func(s *Server) { s.includePricing = include }
}

// WithLivePricing reports live rate refresh in /health
func WithLivePricing(enabled bool) Option {
	return func(s *Server) { s.livePricing = enabled }
}

// WithLogger sets the server logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an API server
func NewServer(version string, opts ...Option) (*Server, error) {
	s := &Server{
		includePricing: true,
		version:        version,
		mux:            http.NewServeMux(),
		registry:       prometheus.NewRegistry(),
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("api")

	if s.estimator == nil {
		e, err := engine.NewEstimator(engine.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		s.estimator = e
	}
	if s.matcher == nil {
		s.matcher = alternatives.NewMatcher(s.logger)
	}

	s.metrics = newMetrics(s.registry)
	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	s.registry.MustRegister(pricing.Collectors()...)

	s.registerRoutes()
	s.handler = logRequests(s.logger, s.metrics.instrument(s.mux))
	return s, nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /estimate", s.handleEstimate)
	s.mux.HandleFunc("GET /pricing/{provider}", s.handlePricing)
	s.mux.HandleFunc("POST /licensing/{distribution}", s.handleLicensing)
	s.mux.HandleFunc("GET /alternatives/{distribution}", s.handleAlternatives)
	s.mux.HandleFunc("POST /mendix", s.handleMendix)
	s.mux.HandleFunc("POST /outsystems", s.handleOutSystems)

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Network("server failed", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.InvalidArgument("invalid JSON body: %v", err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

// writeError maps domain error types to HTTP status codes
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.TypeOf(err) {
	case errors.TypeInvalidArgument, errors.TypeParsing:
		status = http.StatusBadRequest
	case errors.TypeNotFound:
		status = http.StatusNotFound
	default:
		s.logger.Error("request failed", zap.Error(err))
	}

	detail := ErrorDetail{Code: string(errors.TypeOf(err)), Message: err.Error()}
	var de *errors.Error
	if errors.As(err, &de) {
		detail.Message = de.Message
		detail.Context = de.Context
	}
	s.writeJSON(w, ErrorBody{Error: detail}, status)
}
