// Package app wires settings into the estimation components shared by the
// CLI and the HTTP server.
package app

import (
	"context"

	"go.uber.org/zap"

	"infra-tco/core/alternatives"
	"infra-tco/core/engine"
	"infra-tco/core/lowcode/mendix"
	"infra-tco/core/lowcode/outsystems"
	"infra-tco/core/onprem"
	"infra-tco/core/pricing"
	"infra-tco/core/types"
	"infra-tco/internal/config"
)

// App holds the components built from one Settings
type App struct {
	Settings  *config.Settings
	Registry  *pricing.Registry
	Estimator *engine.Estimator
	Matcher   *alternatives.Matcher

	// Refresher is nil when no cloud API is enabled
	Refresher *pricing.Refresher

	logger *zap.Logger
}

// New builds the components. Nothing is fetched until Refresh or RunRefresh.
func New(s *config.Settings, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	a := &App{Settings: s, logger: logger}

	regOpts := []pricing.Option{pricing.WithLogger(logger)}
	if s.LiveRefreshEnabled() {
		a.Refresher = pricing.NewRefresher(s.RateSources(), s.RefresherConfig(), logger)
		regOpts = append(regOpts, pricing.WithRateOverrides(a.Refresher))
	}
	a.Registry = pricing.NewRegistry(regOpts...)

	calc, err := onprem.NewCalculator(s.OnPremPricing(), logger)
	if err != nil {
		return nil, err
	}

	mendixOpts, err := s.MendixOptions()
	if err != nil {
		return nil, err
	}
	mx, err := mendix.NewEngine(append(mendixOpts, mendix.WithLogger(logger))...)
	if err != nil {
		return nil, err
	}

	a.Estimator, err = engine.NewEstimator(
		engine.WithRegistry(a.Registry),
		engine.WithOnPremCalculator(calc),
		engine.WithMendixEngine(mx),
		engine.WithOutSystemsEngine(outsystems.NewEngine(logger)),
		engine.WithDefaults(
			types.PricingType(s.CloudPricing.DefaultPricingType),
			types.SupportTier(s.CloudPricing.DefaultSupportTier),
		),
		engine.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	a.Matcher = alternatives.NewMatcher(logger)
	return a, nil
}

// Targets lists the provider regions kept fresh
func (a *App) Targets() []pricing.Target {
	return a.Settings.RefreshTargets(a.Registry.DefaultRegion)
}

// Refresh fetches every target once and returns how many succeeded
func (a *App) Refresh(ctx context.Context) int {
	if a.Refresher == nil {
		return 0
	}
	return a.Refresher.RefreshAll(ctx, a.Targets())
}

// RunRefresh refreshes on the configured interval until ctx is done
func (a *App) RunRefresh(ctx context.Context) {
	if a.Refresher == nil {
		return
	}
	a.Refresher.Run(ctx, a.Targets(), a.Settings.CloudPricing.RefreshInterval)
}
