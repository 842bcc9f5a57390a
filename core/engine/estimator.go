// Package engine turns a DeploymentConfig into an itemized CostEstimate.
// It picks the cloud, on-prem or low-code pricing path, prices each category,
// and hands the amounts to the cost aggregator. Estimators are read-only after
// construction and safe for concurrent use.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"infra-tco/core/cost"
	"infra-tco/core/lowcode/mendix"
	"infra-tco/core/lowcode/outsystems"
	"infra-tco/core/onprem"
	"infra-tco/core/pricing"
	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

// Estimator is the single entry point for estimates
type Estimator struct {
	registry   *pricing.Registry
	onprem     *onprem.Calculator
	mendix     *mendix.Engine
	outsystems *outsystems.Engine

	defaultPricingType types.PricingType
	defaultSupportTier types.SupportTier

	logger *zap.Logger
}

// Option configures an Estimator
type Option func(*Estimator)

// WithRegistry sets the pricing registry
func WithRegistry(r *pricing.Registry) Option {
	return func(e *Estimator) { e.registry = r }
}

// WithOnPremCalculator sets the on-prem calculator
func WithOnPremCalculator(c *onprem.Calculator) Option {
	return func(e *Estimator) { e.onprem = c }
}

// WithMendixEngine sets the Mendix engine
func WithMendixEngine(m *mendix.Engine) Option {
	return func(e *Estimator) { e.mendix = m }
}

// WithOutSystemsEngine sets the OutSystems engine
func WithOutSystemsEngine(o *outsystems.Engine) Option {
	return func(e *Estimator) { e.outsystems = o }
}

// WithDefaults sets the pricing type and support tier used when a config leaves them empty
func WithDefaults(pricingType types.PricingType, supportTier types.SupportTier) Option {
	return func(e *Estimator) {
		if pricingType != "" {
			e.defaultPricingType = pricingType
		}
		if supportTier != "" {
			e.defaultSupportTier = supportTier
		}
	}
}

// WithLogger sets the estimator logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Estimator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEstimator creates an estimator. Components not supplied through options
// are built from the offline defaults.
func NewEstimator(opts ...Option) (*Estimator, error) {
	e := &Estimator{
		defaultPricingType: types.PricingOnDemand,
		defaultSupportTier: types.SupportNone,
		logger:             zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.defaultPricingType.IsValid() {
		return nil, errors.Config(fmt.Sprintf("invalid default pricing type %q", e.defaultPricingType), nil)
	}

	if e.registry == nil {
		e.registry = pricing.NewRegistry(pricing.WithLogger(e.logger))
	}
	if e.onprem == nil {
		c, err := onprem.NewCalculator(onprem.DefaultPricing(), e.logger)
		if err != nil {
			return nil, err
		}
		e.onprem = c
	}
	if e.mendix == nil {
		m, err := mendix.NewEngine(mendix.WithLogger(e.logger))
		if err != nil {
			return nil, err
		}
		e.mendix = m
	}
	if e.outsystems == nil {
		e.outsystems = outsystems.NewEngine(e.logger)
	}
	e.logger = e.logger.Named("estimator")
	return e, nil
}

// Registry returns the pricing registry the estimator reads
func (e *Estimator) Registry() *pricing.Registry {
	return e.registry
}

// Mendix returns the Mendix engine
func (e *Estimator) Mendix() *mendix.Engine {
	return e.mendix
}

// OutSystems returns the OutSystems engine
func (e *Estimator) OutSystems() *outsystems.Engine {
	return e.outsystems
}

// Estimate prices cfg
func (e *Estimator) Estimate(cfg DeploymentConfig) (*types.CostEstimate, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	target, err := e.resolveTarget(&cfg)
	if err != nil {
		return nil, err
	}

	var notes []string
	if cfg.DR {
		notes = append(notes, addDREnvironment(&cfg)...)
	}

	var est *types.CostEstimate
	switch target {
	case TargetCloud:
		est, err = e.estimateCloud(cfg)
	case TargetOnPrem:
		est, err = e.estimateOnPrem(cfg)
	case TargetMendix:
		est, err = e.estimateMendix(cfg)
	case TargetOutSystems:
		est, err = e.estimateOutSystems(cfg)
	}
	if err != nil {
		return nil, err
	}
	est.Notes = append(notes, est.Notes...)

	e.logger.Debug("estimate complete",
		zap.String("target", string(target)),
		zap.String("provider", est.Provider.String()),
		zap.String("region", est.Region),
		zap.String("distribution", est.Distribution.String()),
		zap.String("monthly_total", est.MonthlyTotal.StringFixed(2)),
	)
	return est, nil
}

// resolveTarget fills in the target and provider a config implies
func (e *Estimator) resolveTarget(cfg *DeploymentConfig) (Target, error) {
	switch {
	case cfg.Target == TargetMendix || (cfg.Target == "" && cfg.Mendix != nil):
		if cfg.Mendix == nil {
			return "", errors.InvalidArgument("mendix target requires a mendix configuration")
		}
		return TargetMendix, nil
	case cfg.Target == TargetOutSystems || (cfg.Target == "" && cfg.OutSystems != nil):
		if cfg.OutSystems == nil {
			return "", errors.InvalidArgument("outsystems target requires an outsystems configuration")
		}
		return TargetOutSystems, nil
	}

	if cfg.Provider == "" && cfg.Distribution != "" {
		if p, ok := e.registry.ProviderFor(cfg.Distribution); ok {
			cfg.Provider = p
		}
	}
	if cfg.Provider == "" && cfg.Target == TargetOnPrem {
		cfg.Provider = types.ProviderOnPrem
	}
	if cfg.Provider == "" {
		return "", errors.InvalidArgument("a provider or a known distribution is required")
	}

	if cfg.Provider == types.ProviderOnPrem {
		if cfg.Target == TargetCloud {
			return "", errors.InvalidArgument("distribution %q runs on-prem, not on a cloud", cfg.Distribution)
		}
		return TargetOnPrem, nil
	}
	if cfg.Target == TargetOnPrem {
		return "", errors.InvalidArgument("provider %q is not an on-prem provider", cfg.Provider)
	}
	return TargetCloud, nil
}

// addDREnvironment mirrors the production environment as dr when none is given
func addDREnvironment(cfg *DeploymentConfig) []string {
	var prod *EnvironmentSpec
	for i := range cfg.Environments {
		switch cfg.Environments[i].Environment {
		case types.EnvDR:
			return nil
		case types.EnvProd:
			prod = &cfg.Environments[i]
		}
	}
	if prod == nil {
		return []string{"disaster recovery requested without a production environment; no dr capacity added"}
	}
	dr := *prod
	dr.Environment = types.EnvDR
	cfg.Environments = append(cfg.Environments, dr)
	return []string{fmt.Sprintf("dr environment mirrors production (%d nodes)", dr.Nodes)}
}

// ledger collects line items per category
type ledger struct {
	amounts map[types.CostCategory]decimal.Decimal
	items   map[types.CostCategory][]types.CostLineItem
}

func newLedger() *ledger {
	return &ledger{
		amounts: make(map[types.CostCategory]decimal.Decimal),
		items:   make(map[types.CostCategory][]types.CostLineItem),
	}
}

// add records item under category and returns its total
func (l *ledger) add(category types.CostCategory, item types.CostLineItem) decimal.Decimal {
	l.amounts[category] = l.amounts[category].Add(item.Total)
	l.items[category] = append(l.items[category], item)
	return item.Total
}

func (l *ledger) addAll(category types.CostCategory, items []types.CostLineItem) {
	for _, item := range items {
		l.add(category, item)
	}
}

// merge records amount under category together with the lines that explain it
func (l *ledger) merge(category types.CostCategory, amount decimal.Decimal, items []types.CostLineItem) {
	l.amounts[category] = l.amounts[category].Add(amount)
	l.items[category] = append(l.items[category], items...)
}

func (l *ledger) total(categories ...types.CostCategory) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range categories {
		sum = sum.Add(l.amounts[c])
	}
	return sum
}

func qty(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func environmentInputs(envs []EnvironmentSpec) []cost.EnvironmentInput {
	out := make([]cost.EnvironmentInput, 0, len(envs))
	for _, env := range envs {
		out = append(out, cost.EnvironmentInput{
			Environment: env.Environment,
			Nodes:       env.Nodes,
			CPU:         env.TotalCPU(),
			RAMGB:       env.TotalRAMGB(),
			DiskGB:      env.TotalDiskGB(),
		})
	}
	return out
}

func totalCPU(envs []EnvironmentSpec) int {
	n := 0
	for _, env := range envs {
		n += env.TotalCPU()
	}
	return n
}
