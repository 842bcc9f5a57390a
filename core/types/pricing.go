// Package types - Pricing types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingModel is the rate card for one provider in one region
type PricingModel struct {
	// Provider is the cloud provider the rates belong to
	Provider CloudProvider `json:"provider"`

	// Region is the pricing region
	Region string `json:"region"`

	// Currency is the price currency
	Currency Currency `json:"currency"`

	// PricingType is the purchasing model the compute rates reflect
	PricingType PricingType `json:"pricing_type"`

	// Compute holds compute rates
	Compute ComputePricing `json:"compute"`

	// Storage holds storage rates
	Storage StoragePricing `json:"storage"`

	// Network holds network rates
	Network NetworkPricing `json:"network"`

	// Licenses holds per-distribution annual license rates
	Licenses LicensePricing `json:"licenses"`

	// Support holds support surcharges
	Support SupportPricing `json:"support"`

	// Source indicates where the rates came from (default, live)
	Source string `json:"source"`

	// RetrievedAt is when a live rate card was fetched (zero for defaults)
	RetrievedAt time.Time `json:"retrieved_at,omitempty"`
}

// ComputePricing holds compute rates
type ComputePricing struct {
	// PerVCPUHour is the price of one vCPU for one hour
	PerVCPUHour decimal.Decimal `json:"per_vcpu_hour"`

	// PerGBRAMHour is the price of one GB of memory for one hour
	PerGBRAMHour decimal.Decimal `json:"per_gb_ram_hour"`

	// InstanceTypes maps named instance types to hourly prices
	InstanceTypes map[string]decimal.Decimal `json:"instance_types,omitempty"`

	// ManagedControlPlaneHour is the hourly fee per managed cluster
	ManagedControlPlaneHour decimal.Decimal `json:"managed_control_plane_hour"`

	// OpenShiftServiceFeePerWorkerHour applies to managed OpenShift workers
	OpenShiftServiceFeePerWorkerHour decimal.Decimal `json:"openshift_service_fee_per_worker_hour"`
}

// StoragePricing holds per GB-month storage rates
type StoragePricing struct {
	SSDPerGBMonth      decimal.Decimal `json:"ssd_per_gb_month"`
	HDDPerGBMonth      decimal.Decimal `json:"hdd_per_gb_month"`
	ObjectPerGBMonth   decimal.Decimal `json:"object_per_gb_month"`
	BackupPerGBMonth   decimal.Decimal `json:"backup_per_gb_month"`
	RegistryPerGBMonth decimal.Decimal `json:"registry_per_gb_month"`
}

// NetworkPricing holds network rates
type NetworkPricing struct {
	EgressPerGB          decimal.Decimal `json:"egress_per_gb"`
	LoadBalancerPerHour  decimal.Decimal `json:"load_balancer_per_hour"`
	NATGatewayPerHour    decimal.Decimal `json:"nat_gateway_per_hour"`
	VPNConnectionPerHour decimal.Decimal `json:"vpn_connection_per_hour"`
	PublicIPPerHour      decimal.Decimal `json:"public_ip_per_hour"`
}

// LicensePricing maps distributions to annual license rates
type LicensePricing struct {
	// PerDistribution is the annual rate per licensing unit (node or core)
	PerDistribution map[Distribution]decimal.Decimal `json:"per_distribution,omitempty"`
}

// SupportPricing maps support tiers to a percentage of the pre-support total
type SupportPricing struct {
	PercentByTier map[SupportTier]decimal.Decimal `json:"percent_by_tier,omitempty"`
}

// SupportPercent returns the surcharge percent for tier (0 when unknown)
func (s SupportPricing) SupportPercent(tier SupportTier) decimal.Decimal {
	if p, ok := s.PercentByTier[tier]; ok {
		return p
	}
	return decimal.Zero
}

// InstancePrice returns the hourly price of a named instance type
func (c ComputePricing) InstancePrice(name string) (decimal.Decimal, bool) {
	p, ok := c.InstanceTypes[name]
	return p, ok
}

// NodeHourly returns the hourly price of a node with the given shape
func (c ComputePricing) NodeHourly(vcpu int, ramGB int) decimal.Decimal {
	return c.PerVCPUHour.Mul(decimal.NewFromInt(int64(vcpu))).
		Add(c.PerGBRAMHour.Mul(decimal.NewFromInt(int64(ramGB))))
}

// Monthly converts an hourly rate to a monthly figure
func Monthly(hourly decimal.Decimal) decimal.Decimal {
	return hourly.Mul(decimal.NewFromInt(HoursPerMonth))
}

// Clone returns a deep copy of the model
func (m *PricingModel) Clone() *PricingModel {
	if m == nil {
		return nil
	}
	c := *m
	if m.Compute.InstanceTypes != nil {
		c.Compute.InstanceTypes = make(map[string]decimal.Decimal, len(m.Compute.InstanceTypes))
		for k, v := range m.Compute.InstanceTypes {
			c.Compute.InstanceTypes[k] = v
		}
	}
	if m.Licenses.PerDistribution != nil {
		c.Licenses.PerDistribution = make(map[Distribution]decimal.Decimal, len(m.Licenses.PerDistribution))
		for k, v := range m.Licenses.PerDistribution {
			c.Licenses.PerDistribution[k] = v
		}
	}
	if m.Support.PercentByTier != nil {
		c.Support.PercentByTier = make(map[SupportTier]decimal.Decimal, len(m.Support.PercentByTier))
		for k, v := range m.Support.PercentByTier {
			c.Support.PercentByTier[k] = v
		}
	}
	return &c
}

// WithComputeFactor returns a clone whose per-resource and instance compute
// rates are multiplied by factor. Control plane and service fees are untouched.
func (m *PricingModel) WithComputeFactor(pricingType PricingType, factor decimal.Decimal) *PricingModel {
	c := m.Clone()
	c.PricingType = pricingType
	c.Compute.PerVCPUHour = c.Compute.PerVCPUHour.Mul(factor)
	c.Compute.PerGBRAMHour = c.Compute.PerGBRAMHour.Mul(factor)
	for k, v := range c.Compute.InstanceTypes {
		c.Compute.InstanceTypes[k] = v.Mul(factor)
	}
	return c
}
