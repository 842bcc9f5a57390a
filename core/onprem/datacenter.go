package onprem

import (
	"github.com/shopspring/decimal"

	"infra-tco/core/types"
)

// DatacenterResult is the monthly facility cost of running servers
type DatacenterResult struct {
	RackUnits   int
	RackCost    decimal.Decimal
	MonthlyKWh  decimal.Decimal
	PowerCost   decimal.Decimal
	CoolingCost decimal.Decimal
	Monthly     decimal.Decimal
}

// LineItems returns the datacenter line items
func (r *DatacenterResult) LineItems(p OnPremPricing) []types.CostLineItem {
	if r.RackUnits == 0 {
		return nil
	}
	return []types.CostLineItem{
		types.NewLineItem("Rack space", decimal.NewFromInt(int64(r.RackUnits)), "RU-month", p.RackUnitMonthly),
		types.NewLineItem("Power (incl. PUE)", r.MonthlyKWh.Mul(p.PUE), "kWh", p.PowerPerKWh),
		types.NewLineItem("Cooling", decimal.NewFromInt(1), "month", r.CoolingCost),
	}
}

// CalculateDatacenter prices rack space, power and cooling for servers
func (c *Calculator) CalculateDatacenter(servers int) *DatacenterResult {
	p := c.pricing
	servers = max(0, servers)

	res := &DatacenterResult{RackUnits: servers * RackUnitsPerNode}
	res.RackCost = decimal.NewFromInt(int64(res.RackUnits)).Mul(p.RackUnitMonthly)

	res.MonthlyKWh = decimal.NewFromInt(int64(servers * p.WattsPerServer * types.HoursPerMonth)).
		Div(decimal.NewFromInt(1000))
	res.PowerCost = res.MonthlyKWh.Mul(p.PowerPerKWh).Mul(p.PUE)
	res.CoolingCost = res.PowerCost.Mul(p.CoolingPercent).Div(decimal.NewFromInt(100))

	res.Monthly = res.RackCost.Add(res.PowerCost).Add(res.CoolingCost)
	return res
}
