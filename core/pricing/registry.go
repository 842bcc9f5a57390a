// Package pricing provides the pricing provider registry.
// The registry dispatches cloud pricing and distribution licensing lookups
// by key, resolving managed OpenShift offerings and cloud variants.
package pricing

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"infra-tco/clouds"
	"infra-tco/core/catalog"
	"infra-tco/core/licensing"
	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

// OverrideSource supplies live rate cards that replace the default tables
type OverrideSource interface {
	// Lookup returns a cached override for provider and region
	Lookup(provider types.CloudProvider, region string) (*RateCardOverride, bool)
}

// Registry is the pricing provider factory.
// Strategies are built once on first use and are read-only afterwards.
type Registry struct {
	catalog   *catalog.Catalog
	logger    *zap.Logger
	overrides OverrideSource

	once      sync.Once
	providers *clouds.Set
	licensing map[types.Distribution]licensing.Strategy
	managed   map[types.Distribution]licensing.Strategy
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the registry logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCatalog replaces the default rate card catalog
func WithCatalog(c *catalog.Catalog) Option {
	return func(r *Registry) {
		if c != nil {
			r.catalog = c
		}
	}
}

// WithRateOverrides makes the registry consult live rate cards
func WithRateOverrides(src OverrideSource) Option {
	return func(r *Registry) {
		r.overrides = src
	}
}

// NewRegistry creates a registry. Strategies are built lazily.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.catalog == nil {
		r.catalog = catalog.Default()
	}
	r.logger = r.logger.Named("pricing")
	return r
}

func (r *Registry) init() {
	r.once.Do(func() {
		r.providers = clouds.FromCatalog(r.catalog, r.logger)
		r.licensing = licensing.Defaults()

		r.managed = make(map[types.Distribution]licensing.Strategy)
		for _, d := range catalog.Distributions() {
			info, _ := catalog.LookupDistribution(d)
			offering, ok := catalog.LookupManagedOpenShift(info.Provider)
			if !ok {
				continue
			}
			r.managed[d] = licensing.NewManagedService(d, offering.Name, decimal.NewFromFloat(offering.FeePerWorkerHour))
		}

		r.logger.Debug("registry built",
			zap.Int("providers", len(r.providers.Providers())),
			zap.Int("licensing_strategies", len(r.licensing)+len(r.managed)),
		)
	})
}

// GetPricing returns the on-demand PricingModel for provider and region.
// An empty region selects the provider's default region.
func (r *Registry) GetPricing(provider types.CloudProvider, region string) (*types.PricingModel, error) {
	r.init()

	if st, ok := r.providers.Get(provider); ok {
		return r.applyOverride(st.GetPricing(region)), nil
	}

	if offering, ok := catalog.LookupManagedOpenShift(provider); ok {
		base, ok := r.providers.Get(offering.BaseProvider)
		if !ok {
			return nil, errors.Pricing("no rate card for managed OpenShift base provider", nil).
				WithContext("provider", provider.String()).
				WithContext("base_provider", offering.BaseProvider.String())
		}
		m := r.applyOverride(base.GetPricing(region))
		m.Provider = provider
		m.Licenses = types.LicensePricing{PerDistribution: map[types.Distribution]decimal.Decimal{}}
		m.Compute.OpenShiftServiceFeePerWorkerHour = decimal.NewFromFloat(offering.FeePerWorkerHour)
		return m, nil
	}

	return nil, errors.InvalidArgument("unknown cloud provider: %q", provider).
		WithContext("provider", provider.String())
}

// GetPricingForType returns the PricingModel with compute rates adjusted for a
// purchasing model. Providers without reservations keep on-demand rates.
func (r *Registry) GetPricingForType(provider types.CloudProvider, region string, pricingType types.PricingType) (*types.PricingModel, error) {
	if pricingType == "" {
		pricingType = types.PricingOnDemand
	}
	if !pricingType.IsValid() {
		return nil, errors.InvalidArgument("unknown pricing type: %q", pricingType)
	}

	m, err := r.GetPricing(provider, region)
	if err != nil {
		return nil, err
	}
	if pricingType == types.PricingOnDemand {
		return m, nil
	}

	if !r.supportsReservations(provider) {
		r.logger.Debug("provider has no reserved or spot pricing, keeping on-demand rates",
			zap.String("provider", provider.String()),
			zap.String("pricing_type", string(pricingType)),
		)
		return m, nil
	}

	factor, ok := catalog.PricingTypeFactor(pricingType)
	if !ok {
		return nil, errors.Pricing("no discount factor for pricing type "+string(pricingType), nil)
	}
	return m.WithComputeFactor(pricingType, decimal.NewFromFloat(factor)), nil
}

func (r *Registry) supportsReservations(provider types.CloudProvider) bool {
	if offering, ok := catalog.LookupManagedOpenShift(provider); ok {
		provider = offering.BaseProvider
	}
	card, ok := r.catalog.Get(provider)
	return ok && card.Reservations
}

func (r *Registry) applyOverride(m *types.PricingModel) *types.PricingModel {
	if r.overrides == nil {
		return m
	}
	o, ok := r.overrides.Lookup(m.Provider, m.Region)
	if !ok {
		return m
	}

	fee := m.Compute.OpenShiftServiceFeePerWorkerHour
	m.Compute = cloneCompute(o.Compute)
	m.Compute.OpenShiftServiceFeePerWorkerHour = fee
	m.Storage = o.Storage
	m.Network = o.Network
	if o.Currency != "" {
		m.Currency = o.Currency
	}
	m.Source = "live"
	m.RetrievedAt = o.RetrievedAt
	return m
}

func cloneCompute(c types.ComputePricing) types.ComputePricing {
	out := c
	if c.InstanceTypes != nil {
		out.InstanceTypes = make(map[string]decimal.Decimal, len(c.InstanceTypes))
		for k, v := range c.InstanceTypes {
			out.InstanceTypes[k] = v
		}
	}
	return out
}

// GetLicensing returns the licensing cost of a distribution. It never fails:
// unknown distributions are priced as managed Kubernetes with no license.
func (r *Registry) GetLicensing(dist types.Distribution, input types.LicensingInput) types.LicensingCost {
	cost := r.licensingStrategy(dist).Calculate(input)
	cost.Distribution = dist
	return cost
}

// HasLicenseCost reports whether a distribution carries a separate license fee
func (r *Registry) HasLicenseCost(dist types.Distribution) bool {
	return r.licensingStrategy(dist).HasLicenseCost()
}

func (r *Registry) licensingStrategy(dist types.Distribution) licensing.Strategy {
	r.init()

	if s, ok := r.licensing[dist]; ok {
		return s
	}
	if s, ok := r.managed[dist]; ok {
		return s
	}

	info, known := catalog.LookupDistribution(dist)
	if known && info.IsVariant() {
		if s, ok := r.licensing[info.Base]; ok {
			return s
		}
	}
	if !known {
		r.logger.Warn("unknown distribution, no license cost applied",
			zap.String("distribution", dist.String()),
		)
	}
	return licensing.NewGenericManaged(dist)
}

// ProviderFor returns the provider a distribution runs on
func (r *Registry) ProviderFor(dist types.Distribution) (types.CloudProvider, bool) {
	info, ok := catalog.LookupDistribution(dist)
	if !ok {
		return "", false
	}
	return info.Provider, true
}

// DefaultRegion returns the reference region of a provider
func (r *Registry) DefaultRegion(provider types.CloudProvider) (string, bool) {
	r.init()
	if offering, ok := catalog.LookupManagedOpenShift(provider); ok {
		provider = offering.BaseProvider
	}
	st, ok := r.providers.Get(provider)
	if !ok {
		return "", false
	}
	return st.DefaultRegion(), true
}

// Providers returns every provider GetPricing accepts, sorted
func (r *Registry) Providers() []types.CloudProvider {
	r.init()
	out := r.providers.Providers()
	for _, p := range []types.CloudProvider{types.ProviderROSA, types.ProviderARO, types.ProviderOSD, types.ProviderROKS} {
		if _, ok := catalog.LookupManagedOpenShift(p); ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Distributions returns every known distribution, sorted
func (r *Registry) Distributions() []types.Distribution {
	return catalog.Distributions()
}
