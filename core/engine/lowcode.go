package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"infra-tco/core/cost"
	"infra-tco/core/types"
)

var twelve = decimal.NewFromInt(12)

// annualPart is one category of a yearly low-code subscription
type annualPart struct {
	category types.CostCategory
	annual   decimal.Decimal
	lines    []types.CostLineItem
}

func (e *Estimator) estimateMendix(cfg DeploymentConfig) (*types.CostEstimate, error) {
	res, err := e.mendix.Calculate(*cfg.Mendix)
	if err != nil {
		return nil, err
	}
	services := res.ServicesCost
	parts := []annualPart{
		{types.CategoryLicense, res.Subtotal.Sub(services), res.LicenseLines()},
		{types.CategorySupport, services, res.ServiceLines()},
	}
	notes := append([]string{"Mendix subscription shown as a monthly share of the annual price"}, res.Notes...)
	return e.lowCodeEstimate(cfg, parts, res.Subtotal, res.DiscountAmount, notes), nil
}

func (e *Estimator) estimateOutSystems(cfg DeploymentConfig) (*types.CostEstimate, error) {
	res, err := e.outsystems.Calculate(*cfg.OutSystems)
	if err != nil {
		return nil, err
	}
	parts := []annualPart{
		{types.CategoryLicense, res.LicenseTotal, res.LicenseLines()},
		{types.CategorySupport, res.SupportCost, res.SupportLines()},
	}
	notes := append([]string{"OutSystems subscription shown as a monthly share of the annual price"}, res.Notes...)
	return e.lowCodeEstimate(cfg, parts, res.Subtotal, res.DiscountAmount, notes), nil
}

// lowCodeEstimate spreads an annual subscription over twelve months. The
// discount is shared across categories in proportion to their annual amount.
func (e *Estimator) lowCodeEstimate(cfg DeploymentConfig, parts []annualPart, subtotal, discount decimal.Decimal, notes []string) *types.CostEstimate {
	l := newLedger()
	remaining := discount
	for i, p := range parts {
		if p.annual.IsZero() && len(p.lines) == 0 {
			continue
		}
		for _, li := range p.lines {
			l.add(p.category, monthlyShare(li))
		}

		share := decimal.Zero
		switch {
		case i == len(parts)-1:
			share = remaining
		case subtotal.IsPositive():
			share = discount.Mul(p.annual).Div(subtotal)
		}
		remaining = remaining.Sub(share)
		if share.IsPositive() {
			l.add(p.category, types.NewLineItem(fmt.Sprintf("Discount on %s", p.category),
				decimal.NewFromInt(1), "month", share.Neg().Div(twelve)))
		}
	}

	return cost.Aggregate(cost.Input{
		Provider:     cfg.Provider,
		Distribution: cfg.Distribution,
		Region:       cfg.Region,
		PricingType:  types.PricingOnDemand,
		Currency:     types.CurrencyUSD,
		Categories:   l.amounts,
		LineItems:    l.items,
		Environments: environmentInputs(cfg.Environments),
		Notes:        notes,
	})
}

// monthlyShare converts an annual line into its monthly equivalent
func monthlyShare(li types.CostLineItem) types.CostLineItem {
	unit := li.Unit
	if strings.Contains(unit, "year") {
		unit = strings.Replace(unit, "year", "month", 1)
	} else {
		unit += " (monthly share)"
	}
	return types.NewLineItem(li.Description, li.Quantity, unit, li.UnitPrice.Div(twelve))
}
