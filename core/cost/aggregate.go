// Package cost merges category-level amounts into an itemized CostEstimate.
// No pricing logic lives here; callers price, the aggregator only sums and splits.
package cost

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"infra-tco/core/types"
)

var hundred = decimal.NewFromInt(100)

// EnvironmentInput is the resource footprint of one environment
type EnvironmentInput struct {
	Environment types.EnvironmentType
	Nodes       int
	CPU         int
	RAMGB       int
	DiskGB      int

	// Direct is cost attributable to this environment alone.
	// It must already be counted in one of the Input categories.
	Direct decimal.Decimal
}

// Input is everything the aggregator merges
type Input struct {
	Provider     types.CloudProvider
	Distribution types.Distribution
	Region       string
	PricingType  types.PricingType
	Currency     types.Currency

	// Categories holds the monthly amount per category
	Categories map[types.CostCategory]decimal.Decimal

	// LineItems holds the lines behind each category amount
	LineItems map[types.CostCategory][]types.CostLineItem

	Environments []EnvironmentInput
	Notes        []string

	// Timestamp defaults to now
	Timestamp time.Time
}

// Aggregate builds a CostEstimate from in.
// MonthlyTotal is the sum of the category amounts; environment shares always sum to it.
func Aggregate(in Input) *types.CostEstimate {
	est := &types.CostEstimate{
		ID:               uuid.NewString(),
		Provider:         in.Provider,
		Distribution:     in.Distribution,
		Region:           in.Region,
		PricingType:      in.PricingType,
		Currency:         in.Currency,
		Breakdown:        make(map[types.CostCategory]*types.CostBreakdown),
		EnvironmentCosts: make(map[types.EnvironmentType]*types.EnvironmentCost),
		Notes:            append([]string(nil), in.Notes...),
		Timestamp:        in.Timestamp,
	}
	if est.Currency == "" {
		est.Currency = types.CurrencyUSD
	}
	if est.Timestamp.IsZero() {
		est.Timestamp = time.Now().UTC()
	}

	total := decimal.Zero
	for _, amount := range in.Categories {
		total = total.Add(amount)
	}
	est.MonthlyTotal = total

	for category, amount := range in.Categories {
		items := in.LineItems[category]
		if amount.IsZero() && len(items) == 0 {
			continue
		}
		est.Breakdown[category] = &types.CostBreakdown{
			Category:   category,
			Monthly:    amount,
			Percentage: Percentage(amount, total),
			LineItems:  append([]types.CostLineItem(nil), items...),
		}
	}

	allocateEnvironments(est, mergeEnvironments(in.Environments))
	return est
}

// Percentage returns part / total * 100, or zero when total is zero
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}

// allocateEnvironments gives each environment its direct cost plus a node share
// of the remaining total. The last environment absorbs the division remainder.
func allocateEnvironments(est *types.CostEstimate, envs []EnvironmentInput) {
	if len(envs) == 0 {
		return
	}

	direct := decimal.Zero
	nodes := 0
	for _, env := range envs {
		direct = direct.Add(env.Direct)
		nodes += env.Nodes
	}
	shared := est.MonthlyTotal.Sub(direct)
	if shared.IsNegative() {
		est.AddNote("direct environment costs exceed the estimate total; shared cost set to zero")
		shared = decimal.Zero
	}

	allocated := decimal.Zero
	for i, env := range envs {
		var monthly decimal.Decimal
		if i == len(envs)-1 && !direct.GreaterThan(est.MonthlyTotal) {
			monthly = est.MonthlyTotal.Sub(allocated)
		} else {
			monthly = env.Direct.Add(shareOf(shared, env.Nodes, nodes, len(envs)))
		}
		allocated = allocated.Add(monthly)

		est.EnvironmentCosts[env.Environment] = &types.EnvironmentCost{
			Environment: env.Environment,
			Monthly:     monthly,
			Percentage:  Percentage(monthly, est.MonthlyTotal),
			Nodes:       env.Nodes,
			CPU:         env.CPU,
			RAMGB:       env.RAMGB,
			DiskGB:      env.DiskGB,
		}
	}
}

// shareOf splits shared by node count, evenly when no environment has nodes
func shareOf(shared decimal.Decimal, envNodes, totalNodes, envCount int) decimal.Decimal {
	if totalNodes == 0 {
		return shared.Div(decimal.NewFromInt(int64(envCount)))
	}
	return shared.Mul(decimal.NewFromInt(int64(envNodes))).Div(decimal.NewFromInt(int64(totalNodes)))
}

// mergeEnvironments folds duplicate environments together and orders the result
func mergeEnvironments(envs []EnvironmentInput) []EnvironmentInput {
	byEnv := make(map[types.EnvironmentType]*EnvironmentInput, len(envs))
	var order []types.EnvironmentType
	for _, env := range envs {
		if env.Nodes < 0 {
			env.Nodes = 0
		}
		existing, ok := byEnv[env.Environment]
		if !ok {
			e := env
			byEnv[env.Environment] = &e
			order = append(order, env.Environment)
			continue
		}
		existing.Nodes += env.Nodes
		existing.CPU += env.CPU
		existing.RAMGB += env.RAMGB
		existing.DiskGB += env.DiskGB
		existing.Direct = existing.Direct.Add(env.Direct)
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]EnvironmentInput, 0, len(order))
	for _, e := range order {
		out = append(out, *byEnv[e])
	}
	return out
}
