// Package clouds provides the per-provider pricing strategies.
// Each strategy turns a catalog rate card into a PricingModel for a region.
package clouds

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"infra-tco/core/catalog"
	"infra-tco/core/types"
)

// Strategy produces rate cards for one cloud provider
type Strategy interface {
	// Provider returns the cloud provider identifier
	Provider() types.CloudProvider

	// Name returns a human-readable name
	Name() string

	// DefaultRegion is used when GetPricing receives an empty region
	DefaultRegion() string

	// Regions returns all regions with known multipliers
	Regions() []string

	// GetPricing returns the on-demand PricingModel for region
	GetPricing(region string) *types.PricingModel
}

// RateCardStrategy prices a provider from its catalog rate card
type RateCardStrategy struct {
	card   catalog.RateCard
	logger *zap.Logger
}

// NewRateCardStrategy creates a strategy for a rate card
func NewRateCardStrategy(card catalog.RateCard, logger *zap.Logger) *RateCardStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateCardStrategy{
		card:   card,
		logger: logger.With(zap.String("provider", card.Provider.String())),
	}
}

// Provider returns the cloud provider identifier
func (s *RateCardStrategy) Provider() types.CloudProvider {
	return s.card.Provider
}

// Name returns a human-readable name
func (s *RateCardStrategy) Name() string {
	return s.card.DisplayName
}

// DefaultRegion returns the provider's reference region
func (s *RateCardStrategy) DefaultRegion() string {
	return s.card.DefaultRegion
}

// Regions returns all regions with known multipliers
func (s *RateCardStrategy) Regions() []string {
	return s.card.RegionCodes()
}

// SupportsReservations reports whether reserved and spot discounts apply
func (s *RateCardStrategy) SupportsReservations() bool {
	return s.card.Reservations
}

// GetPricing returns the on-demand PricingModel for region.
// Unknown regions are priced at the reference rates.
func (s *RateCardStrategy) GetPricing(region string) *types.PricingModel {
	if region == "" {
		region = s.card.DefaultRegion
	}

	mult, known := s.card.RegionMultiplier(region)
	if !known {
		s.logger.Warn("unknown region, using reference rates", zap.String("region", region))
	}
	m := decimal.NewFromFloat(mult)
	scaled := func(v float64) decimal.Decimal {
		return decimal.NewFromFloat(v).Mul(m)
	}

	instances := make(map[string]decimal.Decimal, len(s.card.InstanceTypes))
	for name, price := range s.card.InstanceTypes {
		instances[name] = scaled(price)
	}

	currency := s.card.Currency
	if currency == "" {
		currency = types.CurrencyUSD
	}

	return &types.PricingModel{
		Provider:    s.card.Provider,
		Region:      region,
		Currency:    currency,
		PricingType: types.PricingOnDemand,
		Compute: types.ComputePricing{
			PerVCPUHour:             scaled(s.card.VCPUHour),
			PerGBRAMHour:            scaled(s.card.GBRAMHour),
			InstanceTypes:           instances,
			ManagedControlPlaneHour: decimal.NewFromFloat(s.card.ControlPlaneHour),
		},
		Storage: types.StoragePricing{
			SSDPerGBMonth:      scaled(s.card.SSDGBMonth),
			HDDPerGBMonth:      scaled(s.card.HDDGBMonth),
			ObjectPerGBMonth:   scaled(s.card.ObjectGBMonth),
			BackupPerGBMonth:   scaled(s.card.BackupGBMonth),
			RegistryPerGBMonth: scaled(s.card.RegistryGBMonth),
		},
		Network: types.NetworkPricing{
			EgressPerGB:          scaled(s.card.EgressGB),
			LoadBalancerPerHour:  scaled(s.card.LBHour),
			NATGatewayPerHour:    scaled(s.card.NATHour),
			VPNConnectionPerHour: scaled(s.card.VPNHour),
			PublicIPPerHour:      scaled(s.card.PublicIPHour),
		},
		Licenses: defaultLicensePricing(),
		Support:  supportPricing(s.card.Support),
		Source:   "default",
	}
}

func defaultLicensePricing() types.LicensePricing {
	out := types.LicensePricing{PerDistribution: make(map[types.Distribution]decimal.Decimal)}
	for _, d := range catalog.LicensedDistributions() {
		rate, _ := catalog.LookupLicenseRate(d)
		if rate.Basis == catalog.BasisNone {
			continue
		}
		out.PerDistribution[d] = decimal.NewFromFloat(rate.AnnualRate)
	}
	return out
}

func supportPricing(percents map[types.SupportTier]float64) types.SupportPricing {
	out := types.SupportPricing{PercentByTier: make(map[types.SupportTier]decimal.Decimal, len(percents))}
	for tier, p := range percents {
		out.PercentByTier[tier] = decimal.NewFromFloat(p)
	}
	return out
}
