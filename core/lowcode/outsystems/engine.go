package outsystems

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"infra-tco/core/pricing/primitives"
	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// Config is one OutSystems pricing session
type Config struct {
	Edition        Edition        `json:"edition"`
	DeploymentType DeploymentType `json:"deployment_type"`
	SupportLevel   SupportLevel   `json:"support_level,omitempty"`

	// TotalAOs is the application object count across all apps
	TotalAOs int `json:"total_aos"`

	InternalUsers int `json:"internal_users"`

	// ExternalSessions is the monthly external user session volume
	ExternalSessions int `json:"external_sessions,omitempty"`

	// Environments is the total environment count
	Environments int `json:"environments"`

	// Cloud add-ons
	HighAvailability bool `json:"high_availability,omitempty"`
	DisasterRecovery bool `json:"disaster_recovery,omitempty"`

	// FrontEndServers applies to Self-Managed deployments
	FrontEndServers int `json:"front_end_servers,omitempty"`

	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// Result is the annual OutSystems cost
type Result struct {
	EditionCost        decimal.Decimal `json:"edition_cost"`
	AdditionalAOCost   decimal.Decimal `json:"additional_ao_cost"`
	AdditionalUserCost decimal.Decimal `json:"additional_user_cost"`
	ExternalUserCost   decimal.Decimal `json:"external_user_cost"`
	DeploymentCost     decimal.Decimal `json:"deployment_cost"`

	// LicenseTotal is everything support is charged on
	LicenseTotal decimal.Decimal `json:"license_total"`
	SupportCost  decimal.Decimal `json:"support_cost"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalPerYear   decimal.Decimal `json:"total_per_year"`
	TotalPerMonth  decimal.Decimal `json:"total_per_month"`
	ThreeYearTotal decimal.Decimal `json:"three_year_total"`

	AdditionalAOs   int `json:"additional_aos"`
	AOPacks         int `json:"ao_packs"`
	AdditionalUsers int `json:"additional_users"`
	UserPacks       int `json:"user_packs"`
	SessionPacks    int `json:"session_packs"`

	LineItems []types.CostLineItem `json:"line_items"`
	Notes     []string             `json:"notes,omitempty"`
}

// Engine prices OutSystems configurations
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an engine
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger.Named("outsystems")}
}

// Calculate prices cfg for one year
func (e *Engine) Calculate(cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	ed, err := LookupEdition(cfg.Edition)
	if err != nil {
		return nil, err
	}
	support, err := SupportPercent(cfg.SupportLevel)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	line := func(desc string, qty int, unit string, price decimal.Decimal) decimal.Decimal {
		item := types.NewLineItem(desc, decimal.NewFromInt(int64(qty)), unit, price)
		res.LineItems = append(res.LineItems, item)
		return item.Total
	}

	res.EditionCost = line(fmt.Sprintf("%s edition (%d AOs, %d users)", ed.Edition, ed.IncludedAOs, ed.IncludedUsers),
		1, "year", ed.AnnualPrice)

	res.AdditionalAOs = primitives.Additional(cfg.TotalAOs, ed.IncludedAOs)
	res.AOPacks = primitives.PacksNeeded(res.AdditionalAOs, packs.AOPackSize)
	if res.AOPacks > 0 {
		res.AdditionalAOCost = line(fmt.Sprintf("Application object packs (%d AOs each)", packs.AOPackSize),
			res.AOPacks, "pack-year", packs.AOPackPrice)
	}

	res.AdditionalUsers = primitives.Additional(cfg.InternalUsers, ed.IncludedUsers)
	res.UserPacks = primitives.PacksNeeded(res.AdditionalUsers, packs.UserPackSize)
	if res.UserPacks > 0 {
		res.AdditionalUserCost = line(fmt.Sprintf("Internal user packs (%d users each)", packs.UserPackSize),
			res.UserPacks, "pack-year", packs.UserPackPrice)
	}

	res.SessionPacks = primitives.PacksNeeded(cfg.ExternalSessions, packs.SessionPackSize)
	if res.SessionPacks > 0 {
		res.ExternalUserCost = line(fmt.Sprintf("External user session packs (%d sessions each)", packs.SessionPackSize),
			res.SessionPacks, "pack-year", packs.SessionPackPrice)
	}

	switch cfg.DeploymentType {
	case DeploymentCloud:
		extra := primitives.Additional(cfg.Environments, ed.IncludedEnvironments)
		if extra > 0 {
			res.DeploymentCost = res.DeploymentCost.Add(line("Additional cloud environments", extra, "environment-year", cloudAddOns.ExtraEnvironment))
		}
		if cfg.HighAvailability {
			res.DeploymentCost = res.DeploymentCost.Add(line("High availability", 1, "year", cloudAddOns.HighAvailability))
		}
		if cfg.DisasterRecovery {
			res.DeploymentCost = res.DeploymentCost.Add(line("Disaster recovery", 1, "year", cloudAddOns.DisasterRecovery))
		}
	case DeploymentSelfManaged:
		res.DeploymentCost = line("Self-managed infrastructure license", 1, "year", selfManaged.Base)
		if cfg.Environments > 0 {
			res.DeploymentCost = res.DeploymentCost.Add(line("Self-managed environments", cfg.Environments, "environment-year", selfManaged.PerEnvironment))
		}
		if cfg.FrontEndServers > 0 {
			res.DeploymentCost = res.DeploymentCost.Add(line("Front-end servers", cfg.FrontEndServers, "server-year", selfManaged.PerFrontEndServer))
		}
		if cfg.HighAvailability || cfg.DisasterRecovery {
			res.Notes = append(res.Notes, "HA and DR are provisioned by the operator on self-managed deployments")
		}
	default:
		return nil, errors.InvalidArgument("unknown OutSystems deployment type %q", cfg.DeploymentType)
	}

	res.LicenseTotal = res.EditionCost.
		Add(res.AdditionalAOCost).
		Add(res.AdditionalUserCost).
		Add(res.ExternalUserCost).
		Add(res.DeploymentCost)

	if support.IsPositive() {
		res.SupportCost = res.LicenseTotal.Mul(support).Div(hundred)
		res.LineItems = append(res.LineItems, types.NewLineItem(
			fmt.Sprintf("%s support (%s%%)", cfg.SupportLevel, support), decimal.NewFromInt(1), "year", res.SupportCost))
	}
	res.Subtotal = res.LicenseTotal.Add(res.SupportCost)

	if cfg.DiscountPercent.IsPositive() {
		res.DiscountAmount = res.Subtotal.Mul(cfg.DiscountPercent).Div(hundred)
		res.Notes = append(res.Notes, fmt.Sprintf("%s%% discount applied after support", cfg.DiscountPercent))
	}
	res.TotalPerYear = res.Subtotal.Sub(res.DiscountAmount)
	res.TotalPerMonth = res.TotalPerYear.Div(decimal.NewFromInt(12))
	res.ThreeYearTotal = res.TotalPerYear.Mul(decimal.NewFromInt(3))

	e.logger.Debug("outsystems priced",
		zap.String("edition", string(cfg.Edition)),
		zap.Int("ao_packs", res.AOPacks),
		zap.String("total_per_year", res.TotalPerYear.StringFixed(2)),
	)
	return res, nil
}

func validate(cfg Config) error {
	counts := map[string]int{
		"total_aos":         cfg.TotalAOs,
		"internal_users":    cfg.InternalUsers,
		"external_sessions": cfg.ExternalSessions,
		"environments":      cfg.Environments,
		"front_end_servers": cfg.FrontEndServers,
	}
	for name, v := range counts {
		if v < 0 {
			return errors.InvalidArgument("%s must not be negative, got %d", name, v)
		}
	}
	if cfg.DiscountPercent.IsNegative() || cfg.DiscountPercent.GreaterThan(hundred) {
		return errors.InvalidArgument("discount percent must be between 0 and 100, got %s", cfg.DiscountPercent)
	}
	return nil
}

// LicenseLines returns the line items that make up LicenseTotal
func (r *Result) LicenseLines() []types.CostLineItem {
	if r.SupportCost.IsPositive() && len(r.LineItems) > 0 {
		return r.LineItems[:len(r.LineItems)-1]
	}
	return r.LineItems
}

// SupportLines returns the support surcharge line, if any
func (r *Result) SupportLines() []types.CostLineItem {
	if r.SupportCost.IsPositive() && len(r.LineItems) > 0 {
		return r.LineItems[len(r.LineItems)-1:]
	}
	return nil
}
