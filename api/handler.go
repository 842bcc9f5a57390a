package api

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"infra-tco/core/catalog"
	"infra-tco/core/engine"
	"infra-tco/core/lowcode/mendix"
	"infra-tco/core/lowcode/outsystems"
	"infra-tco/core/output"
	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

// include reports whether amounts are shown. A request may hide pricing
// with ?include_pricing=false but never reveal what the server hides.
func (s *Server) include(r *http.Request) bool {
	if !s.includePricing {
		return false
	}
	if v := r.URL.Query().Get("include_pricing"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return true
}

// handleEstimate handles POST /estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var cfg engine.DeploymentConfig
	if err := s.decode(w, r, &cfg); err != nil {
		s.writeError(w, err)
		return
	}

	est, err := s.estimator.Estimate(cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}

	target := string(cfg.Target)
	if target == "" {
		target = "auto"
	}
	s.metrics.estimatesTotal.WithLabelValues(target).Inc()

	s.writeJSON(w, output.NewEstimateView(est, s.include(r)), http.StatusOK)
}

// handlePricing handles GET /pricing/{provider}
func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	provider := types.CloudProvider(r.PathValue("provider"))
	q := r.URL.Query()

	model, err := s.estimator.Registry().GetPricingForType(provider, q.Get("region"), types.PricingType(q.Get("pricing_type")))
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := PricingResponse{
		Provider:        model.Provider,
		Region:          model.Region,
		PricingType:     model.PricingType,
		Currency:        model.Currency,
		Source:          model.Source,
		PricingIncluded: s.include(r),
	}
	if resp.PricingIncluded {
		resp.Rates = model
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleLicensing handles POST /licensing/{distribution}
func (s *Server) handleLicensing(w http.ResponseWriter, r *http.Request) {
	dist := types.Distribution(r.PathValue("distribution"))

	var in types.LicensingInput
	if err := s.decode(w, r, &in); err != nil {
		s.writeError(w, err)
		return
	}
	if in.NodeCount < 0 {
		s.writeError(w, errors.InvalidArgument("node_count must not be negative, got %d", in.NodeCount))
		return
	}

	_, known := catalog.LookupDistribution(dist)
	lc := s.estimator.Registry().GetLicensing(dist, in)
	s.writeJSON(w, LicensingResponse{
		LicensingView: output.NewLicensingView(lc, s.include(r)),
		Known:         known,
	}, http.StatusOK)
}

// handleAlternatives handles GET /alternatives/{distribution}
func (s *Server) handleAlternatives(w http.ResponseWriter, r *http.Request) {
	dist := types.Distribution(r.PathValue("distribution"))
	s.writeJSON(w, AlternativesResponse{
		Distribution: dist,
		Alternatives: s.matcher.Alternatives(dist),
	}, http.StatusOK)
}

// handleMendix handles POST /mendix
func (s *Server) handleMendix(w http.ResponseWriter, r *http.Request) {
	var cfg mendix.Config
	if err := s.decode(w, r, &cfg); err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.estimator.Mendix().Calculate(cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.estimatesTotal.WithLabelValues(string(engine.TargetMendix)).Inc()
	s.writeJSON(w, output.NewMendixView(res, s.include(r)), http.StatusOK)
}

// handleOutSystems handles POST /outsystems
func (s *Server) handleOutSystems(w http.ResponseWriter, r *http.Request) {
	var cfg outsystems.Config
	if err := s.decode(w, r, &cfg); err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.estimator.OutSystems().Calculate(cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.estimatesTotal.WithLabelValues(string(engine.TargetOutSystems)).Inc()
	s.writeJSON(w, output.NewOutSystemsView(res, s.include(r)), http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{
		Status:      "healthy",
		Version:     s.version,
		Time:        time.Now().UTC(),
		LivePricing: s.livePricing,
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("version requested", zap.String("version", s.version))
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "infra-tco",
		"api_version": "v1",
	}, http.StatusOK)
}
