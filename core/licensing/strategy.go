// Package licensing computes the license component of Kubernetes distributions.
package licensing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"infra-tco/core/catalog"
	"infra-tco/core/types"
)

// Strategy computes license cost for one distribution
type Strategy interface {
	// Distribution returns the distribution this strategy prices
	Distribution() types.Distribution

	// AnnualCost returns the yearly license cost
	AnnualCost(nodeCount int, coreCount types.Optional[int]) decimal.Decimal

	// Calculate returns the full licensing cost for input
	Calculate(input types.LicensingInput) types.LicensingCost

	// HasLicenseCost reports whether the distribution is ever billed
	HasLicenseCost() bool
}

// PerNode bills a flat annual rate per node
type PerNode struct {
	dist   types.Distribution
	rate   decimal.Decimal
	vendor string
}

// NewPerNode creates a per-node-year strategy
func NewPerNode(d types.Distribution, annualPerNode decimal.Decimal, vendor string) *PerNode {
	return &PerNode{dist: d, rate: annualPerNode, vendor: vendor}
}

func (s *PerNode) Distribution() types.Distribution { return s.dist }
func (s *PerNode) HasLicenseCost() bool             { return true }

// AnnualCost is nodes * rate
func (s *PerNode) AnnualCost(nodeCount int, _ types.Optional[int]) decimal.Decimal {
	return decimal.NewFromInt(int64(nonNegative(nodeCount))).Mul(s.rate)
}

// Calculate returns the licensing cost for input
func (s *PerNode) Calculate(input types.LicensingInput) types.LicensingCost {
	nodes := nonNegative(input.NodeCount)
	basis := fmt.Sprintf("%d nodes x $%s/node-year (%s subscription)", nodes, s.rate.StringFixed(0), s.vendor)
	return types.NewLicensingCost(s.dist, s.AnnualCost(nodes, input.CoreCount), basis, true)
}

// PerCore bills a flat annual rate per physical core
type PerCore struct {
	dist   types.Distribution
	rate   decimal.Decimal
	vendor string
}

// NewPerCore creates a per-core-year strategy
func NewPerCore(d types.Distribution, annualPerCore decimal.Decimal, vendor string) *PerCore {
	return &PerCore{dist: d, rate: annualPerCore, vendor: vendor}
}

func (s *PerCore) Distribution() types.Distribution { return s.dist }
func (s *PerCore) HasLicenseCost() bool             { return true }

// AnnualCost is cores * rate, assuming DefaultCoresPerNode when cores are unknown
func (s *PerCore) AnnualCost(nodeCount int, coreCount types.Optional[int]) decimal.Decimal {
	return decimal.NewFromInt(int64(s.cores(nodeCount, coreCount))).Mul(s.rate)
}

// Calculate returns the licensing cost for input
func (s *PerCore) Calculate(input types.LicensingInput) types.LicensingCost {
	cores := s.cores(input.NodeCount, input.CoreCount)
	basis := fmt.Sprintf("%d cores x $%s/core-year (%s subscription)", cores, s.rate.StringFixed(0), s.vendor)
	if !input.CoreCount.IsPresent() {
		basis += fmt.Sprintf(", assuming %d cores/node", types.DefaultCoresPerNode)
	}
	return types.NewLicensingCost(s.dist, s.AnnualCost(input.NodeCount, input.CoreCount), basis, true)
}

func (s *PerCore) cores(nodeCount int, coreCount types.Optional[int]) int {
	if c, ok := coreCount.Get(); ok {
		return nonNegative(c)
	}
	return nonNegative(nodeCount) * types.DefaultCoresPerNode
}

// OpenSource is a distribution with no license fee
type OpenSource struct {
	dist types.Distribution
}

// NewOpenSource creates a zero-cost strategy for an open source distribution
func NewOpenSource(d types.Distribution) *OpenSource {
	return &OpenSource{dist: d}
}

func (s *OpenSource) Distribution() types.Distribution { return s.dist }
func (s *OpenSource) HasLicenseCost() bool             { return false }

// AnnualCost is always zero
func (s *OpenSource) AnnualCost(int, types.Optional[int]) decimal.Decimal {
	return decimal.Zero
}

// Calculate returns a zero licensing cost
func (s *OpenSource) Calculate(types.LicensingInput) types.LicensingCost {
	return types.NewLicensingCost(s.dist, decimal.Zero, "open source, no license fee", false)
}

// ManagedService is a vendor-run offering whose license is folded into an hourly service fee
type ManagedService struct {
	dist types.Distribution
	name string
	fee  decimal.Decimal
}

// NewManagedService creates a strategy for a managed OpenShift offering
func NewManagedService(d types.Distribution, name string, feePerWorkerHour decimal.Decimal) *ManagedService {
	return &ManagedService{dist: d, name: name, fee: feePerWorkerHour}
}

func (s *ManagedService) Distribution() types.Distribution { return s.dist }
func (s *ManagedService) HasLicenseCost() bool             { return false }

// AnnualCost is zero: the subscription is billed through the compute service fee
func (s *ManagedService) AnnualCost(int, types.Optional[int]) decimal.Decimal {
	return decimal.Zero
}

// Calculate returns a zero licensing cost naming the service fee
func (s *ManagedService) Calculate(types.LicensingInput) types.LicensingCost {
	basis := fmt.Sprintf("included in %s service fee ($%s/worker-hour)", s.name, s.fee.String())
	return types.NewLicensingCost(s.dist, decimal.Zero, basis, false)
}

// GenericManaged is the fallback for managed Kubernetes with no extra license
type GenericManaged struct {
	dist types.Distribution
}

// NewGenericManaged creates the fallback strategy for d
func NewGenericManaged(d types.Distribution) *GenericManaged {
	return &GenericManaged{dist: d}
}

func (s *GenericManaged) Distribution() types.Distribution { return s.dist }
func (s *GenericManaged) HasLicenseCost() bool             { return false }

// AnnualCost is always zero
func (s *GenericManaged) AnnualCost(int, types.Optional[int]) decimal.Decimal {
	return decimal.Zero
}

// Calculate returns a zero licensing cost
func (s *GenericManaged) Calculate(types.LicensingInput) types.LicensingCost {
	return types.NewLicensingCost(s.dist, decimal.Zero, "managed Kubernetes, no additional license", false)
}

// FromRate builds the strategy for a base distribution's catalog license terms
func FromRate(d types.Distribution, rate catalog.LicenseRate) Strategy {
	switch rate.Basis {
	case catalog.BasisPerNode:
		return NewPerNode(d, decimal.NewFromFloat(rate.AnnualRate), rate.Vendor)
	case catalog.BasisPerCore:
		return NewPerCore(d, decimal.NewFromFloat(rate.AnnualRate), rate.Vendor)
	default:
		return NewOpenSource(d)
	}
}

// Defaults builds one strategy per licensed base distribution in the catalog
func Defaults() map[types.Distribution]Strategy {
	out := make(map[types.Distribution]Strategy)
	for _, d := range catalog.LicensedDistributions() {
		rate, _ := catalog.LookupLicenseRate(d)
		out[d] = FromRate(d, rate)
	}
	return out
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
