package types

import "github.com/shopspring/decimal"

// DefaultCoresPerNode is assumed when a per-core license has no core count
const DefaultCoresPerNode = 8

// LicensingInput describes what a distribution license is counted against
type LicensingInput struct {
	// NodeCount is the number of licensed nodes
	NodeCount int `json:"node_count"`

	// CoreCount is the total number of licensed cores, when known
	CoreCount Optional[int] `json:"core_count"`

	// EnvironmentCount is the number of environments, when known
	EnvironmentCount Optional[int] `json:"environment_count"`
}

// LicensingCost is the license component of an estimate
type LicensingCost struct {
	// Distribution is the distribution the cost was computed for
	Distribution Distribution `json:"distribution"`

	// AnnualCost is the yearly license cost
	AnnualCost decimal.Decimal `json:"annual_cost"`

	// MonthlyCost is AnnualCost / 12
	MonthlyCost decimal.Decimal `json:"monthly_cost"`

	// Basis explains how the cost was derived
	Basis string `json:"basis"`

	// HasLicense reports whether the distribution carries a license fee at all
	HasLicense bool `json:"has_license"`
}

// NewLicensingCost derives the monthly figure from an annual cost
func NewLicensingCost(d Distribution, annual decimal.Decimal, basis string, hasLicense bool) LicensingCost {
	return LicensingCost{
		Distribution: d,
		AnnualCost:   annual,
		MonthlyCost:  annual.Div(decimal.NewFromInt(12)),
		Basis:        basis,
		HasLicense:   hasLicense,
	}
}
