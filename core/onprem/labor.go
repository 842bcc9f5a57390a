package onprem

import (
	"github.com/shopspring/decimal"

	"infra-tco/core/types"
)

// LaborInput describes the estate operations staff must run
type LaborInput struct {
	Nodes                    int
	HasProductionEnvironment bool
}

// LaborResult is the monthly staffing cost
type LaborResult struct {
	// Engineers is the fractional DevOps headcount
	Engineers    decimal.Decimal
	DevOpsCost   decimal.Decimal
	SysAdmins    decimal.Decimal
	SysAdminCost decimal.Decimal
	DBACost      decimal.Decimal
	Monthly      decimal.Decimal
}

// LineItems returns the labor line items
func (r *LaborResult) LineItems(p OnPremPricing) []types.CostLineItem {
	items := []types.CostLineItem{
		types.NewLineItem("DevOps engineers", r.Engineers, "FTE-month", p.DevOpsMonthly),
		types.NewLineItem("System administrators", r.SysAdmins, "FTE-month", p.SysAdminMonthly),
	}
	if r.DBACost.IsPositive() {
		items = append(items, types.NewLineItem("Database administrator", decimal.NewFromInt(1), "FTE-month", p.DBAMonthly))
	}
	return items
}

// CalculateLabor prices DevOps, sysadmin and DBA staffing
func (c *Calculator) CalculateLabor(input LaborInput) *LaborResult {
	p := c.pricing
	one := decimal.NewFromInt(1)

	engineers := decimal.NewFromInt(int64(max(0, input.Nodes))).
		Div(decimal.NewFromInt(int64(p.NodesPerEngineer)))
	engineers = decimal.Max(one, engineers)

	sysAdmins := decimal.Max(one, engineers.Mul(decimal.NewFromFloat(0.5)))

	res := &LaborResult{
		Engineers:    engineers,
		DevOpsCost:   engineers.Mul(p.DevOpsMonthly),
		SysAdmins:    sysAdmins,
		SysAdminCost: sysAdmins.Mul(p.SysAdminMonthly),
	}
	if p.IncludeDBA && input.HasProductionEnvironment {
		res.DBACost = p.DBAMonthly
	}
	res.Monthly = res.DevOpsCost.Add(res.SysAdminCost).Add(res.DBACost)
	return res
}
