package mendix

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"infra-tco/core/pricing/primitives"
	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	three   = decimal.NewFromInt(3)
)

// Engine prices Mendix configurations. It is immutable after construction.
type Engine struct {
	envTiers             []types.Tier
	includedEnvironments int
	internalUserTiers    []types.Tier
	externalUserTiers    []types.Tier
	defaultDiscount      decimal.Decimal
	logger               *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithEnvironmentTiers overrides the Private Cloud environment tiers and allowance
func WithEnvironmentTiers(tiers []types.Tier, included int) Option {
	return func(e *Engine) {
		if len(tiers) > 0 {
			e.envTiers = types.SortedTiers(tiers)
		}
		if included >= 0 {
			e.includedEnvironments = included
		}
	}
}

// WithDefaultDiscount sets the discount used when a Config has none
func WithDefaultDiscount(percent decimal.Decimal) Option {
	return func(e *Engine) {
		e.defaultDiscount = percent
	}
}

// WithLogger sets the engine logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine with the default catalog
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		envTiers:             DefaultK8sEnvironmentTiers(),
		includedEnvironments: DefaultIncludedEnvironments,
		internalUserTiers:    DefaultInternalUserTiers(),
		externalUserTiers:    DefaultExternalUserTiers(),
		logger:               zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := types.ValidateTiers(e.envTiers); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "invalid Mendix environment tiers", err)
	}
	if err := validatePercent(e.defaultDiscount); err != nil {
		return nil, err
	}
	e.logger = e.logger.Named("mendix")
	return e, nil
}

// EnvironmentTiers returns a copy of the Private Cloud environment tiers
func (e *Engine) EnvironmentTiers() []types.Tier {
	return types.SortedTiers(e.envTiers)
}

// IncludedEnvironments is the environment allowance of the Private Cloud base package
func (e *Engine) IncludedEnvironments() int {
	return e.includedEnvironments
}

// Calculate prices cfg for one year
func (e *Engine) Calculate(cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	res := &Result{}
	line := func(desc string, qty decimal.Decimal, unit string, price decimal.Decimal) decimal.Decimal {
		item := types.NewLineItem(desc, qty, unit, price)
		res.LineItems = append(res.LineItems, item)
		return item.Total
	}

	switch cfg.Category {
	case CategoryCloud:
		if err := e.priceCloud(cfg, res, line); err != nil {
			return nil, err
		}
	case CategoryPrivateCloud:
		if err := e.pricePrivateCloud(cfg, res, line); err != nil {
			return nil, err
		}
	case CategoryOther:
		if err := e.priceOther(cfg, res, line); err != nil {
			return nil, err
		}
	default:
		return nil, errors.InvalidArgument("unknown Mendix deployment category %q", cfg.Category)
	}

	res.UserLicenseCost = e.priceUsers("Internal users", cfg.InternalUsers, e.internalUserTiers, line).
		Add(e.priceUsers("External users", cfg.ExternalUsers, e.externalUserTiers, line))

	if cfg.ExtraFileStorageGB > 0 {
		res.StorageCost = res.StorageCost.Add(line("Additional file storage",
			decimal.NewFromInt(int64(cfg.ExtraFileStorageGB)), "GB-year", extraFileStoragePerGB))
	}
	if cfg.ExtraDatabaseStorageGB > 0 {
		res.StorageCost = res.StorageCost.Add(line("Additional database storage",
			decimal.NewFromInt(int64(cfg.ExtraDatabaseStorageGB)), "GB-year", extraDatabaseStoragePerGB))
	}

	for _, sel := range cfg.GenAIPacks {
		pack, err := LookupGenAIPack(sel.Size)
		if err != nil {
			return nil, err
		}
		res.GenAICost = res.GenAICost.Add(line(fmt.Sprintf("GenAI model pack %s", pack.Size),
			decimal.NewFromInt(int64(sel.Quantity)), "pack-year", pack.AnnualPrice))
	}
	if cfg.GenAIKnowledgeBase {
		res.GenAICost = res.GenAICost.Add(line("GenAI knowledge base", decimal.NewFromInt(1), "year", genAIKnowledgeBasePrice))
	}

	if cfg.CustomerEnablement {
		res.ServicesCost = line("Customer enablement", decimal.NewFromInt(1), "engagement", customerEnablementPrice)
	}

	res.Subtotal = res.PlatformLicenseCost.
		Add(res.UserLicenseCost).
		Add(res.DeploymentFeeCost).
		Add(res.EnvironmentCost).
		Add(res.StorageCost).
		Add(res.GenAICost).
		Add(res.ServicesCost)

	discount := e.defaultDiscount
	if cfg.DiscountPercent != nil {
		discount = *cfg.DiscountPercent
	}
	if discount.IsPositive() {
		res.DiscountAmount = res.Subtotal.Mul(discount).Div(hundred)
		res.Notes = append(res.Notes, fmt.Sprintf("%s%% discount applied to subtotal", discount.String()))
	}

	res.TotalPerYear = res.Subtotal.Sub(res.DiscountAmount)
	res.TotalPerMonth = res.TotalPerYear.Div(twelve)
	res.ThreeYearTotal = res.TotalPerYear.Mul(three)

	e.logger.Debug("mendix priced",
		zap.String("category", string(cfg.Category)),
		zap.String("total_per_year", res.TotalPerYear.StringFixed(2)),
	)
	return res, nil
}

type lineFunc func(desc string, qty decimal.Decimal, unit string, price decimal.Decimal) decimal.Decimal

func (e *Engine) priceCloud(cfg Config, res *Result, line lineFunc) error {
	if len(cfg.ResourcePacks) == 0 {
		res.Notes = append(res.Notes, "no resource packs selected")
	}
	for _, sel := range cfg.ResourcePacks {
		spec, err := LookupResourcePack(sel.Pack)
		if err != nil {
			return err
		}
		res.PlatformLicenseCost = res.PlatformLicenseCost.Add(line(
			fmt.Sprintf("Resource pack %s (%d GB runtime, %d GB database)", spec.Key, spec.RuntimeMemGB, spec.DBStorageGB),
			decimal.NewFromInt(int64(sel.Quantity)), "pack-year", spec.AnnualPrice))
	}
	return nil
}

func (e *Engine) pricePrivateCloud(cfg Config, res *Result, line lineFunc) error {
	fee, err := lookupDeploymentFee(cfg.PrivateCloudTarget)
	if err != nil {
		return err
	}

	res.PlatformLicenseCost = line(
		fmt.Sprintf("Private Cloud base package (%d environments included)", e.includedEnvironments),
		decimal.NewFromInt(1), "year", privateCloudBasePackage)
	if fee.IsPositive() {
		res.DeploymentFeeCost = line(fmt.Sprintf("Deployment fee (%s)", cfg.PrivateCloudTarget),
			decimal.NewFromInt(1), "year", fee)
	}

	res.BillableEnvironments = primitives.Additional(cfg.Environments, e.includedEnvironments)
	for _, band := range primitives.TieredCostBreakdown(cfg.Environments, e.includedEnvironments, e.envTiers) {
		res.EnvironmentCost = res.EnvironmentCost.Add(line(
			fmt.Sprintf("Kubernetes environments %s", bandLabel(band.Tier)),
			decimal.NewFromInt(int64(band.Units)), "environment-year", band.Tier.UnitPrice))
	}
	return nil
}

func (e *Engine) priceOther(cfg Config, res *Result, line lineFunc) error {
	fees, err := lookupOtherFees(cfg.OtherTarget)
	if err != nil {
		return err
	}
	if cfg.UnlimitedApps {
		res.PlatformLicenseCost = line(fmt.Sprintf("Unlimited apps (%s)", cfg.OtherTarget),
			decimal.NewFromInt(1), "year", fees.UnlimitedApps)
		return nil
	}
	if cfg.Apps == 0 {
		res.Notes = append(res.Notes, "no applications selected")
	}
	res.PlatformLicenseCost = line(fmt.Sprintf("Per-app license (%s)", cfg.OtherTarget),
		decimal.NewFromInt(int64(cfg.Apps)), "app-year", fees.PerApp)
	return nil
}

func (e *Engine) priceUsers(desc string, users int, tiers []types.Tier, line lineFunc) decimal.Decimal {
	total := decimal.Zero
	for _, band := range primitives.TieredCostBreakdown(users, 0, tiers) {
		total = total.Add(line(fmt.Sprintf("%s %s", desc, bandLabel(band.Tier)),
			decimal.NewFromInt(int64(band.Units)), "user-year", band.Tier.UnitPrice))
	}
	return total
}

func bandLabel(t types.Tier) string {
	if t.IsUnlimited() {
		return fmt.Sprintf("%d+", t.Min)
	}
	return fmt.Sprintf("%d-%d", t.Min, t.Max)
}

func validate(cfg Config) error {
	counts := map[string]int{
		"internal_users":            cfg.InternalUsers,
		"external_users":            cfg.ExternalUsers,
		"environments":              cfg.Environments,
		"apps":                      cfg.Apps,
		"extra_file_storage_gb":     cfg.ExtraFileStorageGB,
		"extra_database_storage_gb": cfg.ExtraDatabaseStorageGB,
	}
	for name, v := range counts {
		if v < 0 {
			return errors.InvalidArgument("%s must not be negative, got %d", name, v)
		}
	}
	for _, sel := range cfg.ResourcePacks {
		if sel.Quantity < 0 {
			return errors.InvalidArgument("resource pack %s quantity must not be negative", sel.Pack)
		}
	}
	for _, sel := range cfg.GenAIPacks {
		if sel.Quantity < 0 {
			return errors.InvalidArgument("GenAI pack %s quantity must not be negative", sel.Size)
		}
	}
	if cfg.DiscountPercent != nil {
		return validatePercent(*cfg.DiscountPercent)
	}
	return nil
}

func validatePercent(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return errors.InvalidArgument("discount percent must be between 0 and 100, got %s", p)
	}
	return nil
}
