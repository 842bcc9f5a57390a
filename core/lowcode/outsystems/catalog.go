// Package outsystems prices OutSystems low-code platform subscriptions.
// Application objects and users beyond an edition's allowance are sold in whole packs.
package outsystems

import (
	"github.com/shopspring/decimal"

	"infra-tco/internal/errors"
)

// Edition is an OutSystems platform edition
type Edition string

const (
	EditionStandard   Edition = "standard"
	EditionEnterprise Edition = "enterprise"
)

// DeploymentType is where the platform runs
type DeploymentType string

const (
	DeploymentCloud       DeploymentType = "cloud"
	DeploymentSelfManaged DeploymentType = "self-managed"
)

// SupportLevel is the OutSystems support plan
type SupportLevel string

const (
	SupportStandard SupportLevel = "standard"
	SupportPremium  SupportLevel = "premium"
	SupportElite    SupportLevel = "elite"
)

// EditionSettings are the allowances and base price of an edition
type EditionSettings struct {
	Edition       Edition
	IncludedAOs   int
	IncludedUsers int
	AnnualPrice   decimal.Decimal

	// IncludedEnvironments applies to Cloud deployments
	IncludedEnvironments int
}

// PackSettings are the fixed-size pack prices
type PackSettings struct {
	AOPackSize       int
	AOPackPrice      decimal.Decimal
	UserPackSize     int
	UserPackPrice    decimal.Decimal
	SessionPackSize  int
	SessionPackPrice decimal.Decimal
}

// CloudSettings are the Cloud add-on prices
type CloudSettings struct {
	ExtraEnvironment decimal.Decimal
	HighAvailability decimal.Decimal
	DisasterRecovery decimal.Decimal
}

// SelfManagedSettings are the Self-Managed infrastructure license prices
type SelfManagedSettings struct {
	Base              decimal.Decimal
	PerEnvironment    decimal.Decimal
	PerFrontEndServer decimal.Decimal
}

var editions = map[Edition]EditionSettings{
	EditionStandard: {
		Edition:              EditionStandard,
		IncludedAOs:          150,
		IncludedUsers:        100,
		AnnualPrice:          decimal.NewFromInt(36300),
		IncludedEnvironments: 3,
	},
	EditionEnterprise: {
		Edition:              EditionEnterprise,
		IncludedAOs:          450,
		IncludedUsers:        500,
		AnnualPrice:          decimal.NewFromInt(108900),
		IncludedEnvironments: 4,
	},
}

var packs = PackSettings{
	AOPackSize:       150,
	AOPackPrice:      decimal.NewFromInt(18000),
	UserPackSize:     100,
	UserPackPrice:    decimal.NewFromInt(6000),
	SessionPackSize:  10000,
	SessionPackPrice: decimal.NewFromInt(4800),
}

var cloudAddOns = CloudSettings{
	ExtraEnvironment: decimal.NewFromInt(9000),
	HighAvailability: decimal.NewFromInt(12000),
	DisasterRecovery: decimal.NewFromInt(18000),
}

var selfManaged = SelfManagedSettings{
	Base:              decimal.NewFromInt(6000),
	PerEnvironment:    decimal.NewFromInt(4000),
	PerFrontEndServer: decimal.NewFromInt(3000),
}

// supportPercent is the surcharge over the pre-support license total
var supportPercent = map[SupportLevel]decimal.Decimal{
	SupportStandard: decimal.Zero,
	SupportPremium:  decimal.NewFromInt(15),
	SupportElite:    decimal.NewFromInt(25),
}

// LookupEdition returns the settings of an edition
func LookupEdition(e Edition) (EditionSettings, error) {
	s, ok := editions[e]
	if !ok {
		return EditionSettings{}, errors.InvalidArgument("unknown OutSystems edition %q", e)
	}
	return s, nil
}

// Packs returns the pack prices
func Packs() PackSettings {
	return packs
}

// SupportPercent returns the surcharge percent of a support level
func SupportPercent(level SupportLevel) (decimal.Decimal, error) {
	if level == "" {
		level = SupportStandard
	}
	p, ok := supportPercent[level]
	if !ok {
		return decimal.Zero, errors.InvalidArgument("unknown OutSystems support level %q", level)
	}
	return p, nil
}
