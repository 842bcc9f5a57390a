package onprem

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"infra-tco/core/pricing/primitives"
	"infra-tco/core/types"
)

// HardwareInput is the physical capacity to be purchased
type HardwareInput struct {
	CPUCores      int
	RAMGB         int
	SSDGB         int
	HDDGB         int
	LoadBalancers int

	// VMCount sizes servers by VM density when it needs more servers than the core count
	VMCount int
}

// HardwareItem is one purchased component
type HardwareItem struct {
	Category    types.CostCategory
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitCost    decimal.Decimal
	Capex       decimal.Decimal

	// UnitMonthly is the amortization plus maintenance of one unit
	UnitMonthly decimal.Decimal

	// Monthly is Quantity * UnitMonthly
	Monthly decimal.Decimal
}

// HardwareResult is the purchase and monthly ownership cost of hardware
type HardwareResult struct {
	Servers  int
	Switches int

	Items []HardwareItem

	// TotalCapex is the one-off purchase price of all items
	TotalCapex decimal.Decimal

	// MonthlyAmortized is TotalCapex spread over the refresh cycle
	MonthlyAmortized decimal.Decimal

	// MonthlyMaintenance is the yearly maintenance contract per month
	MonthlyMaintenance decimal.Decimal

	// Monthly is MonthlyAmortized + MonthlyMaintenance
	Monthly decimal.Decimal
}

// CategoryMonthly returns the monthly ownership cost filed under each category
func (r *HardwareResult) CategoryMonthly() map[types.CostCategory]decimal.Decimal {
	out := make(map[types.CostCategory]decimal.Decimal)
	for _, it := range r.Items {
		out[it.Category] = out[it.Category].Add(it.Monthly)
	}
	return out
}

// LineItems returns monthly line items grouped by category
func (r *HardwareResult) LineItems() map[types.CostCategory][]types.CostLineItem {
	out := make(map[types.CostCategory][]types.CostLineItem)
	for _, it := range r.Items {
		if it.Quantity.IsZero() {
			continue
		}
		out[it.Category] = append(out[it.Category],
			types.NewLineItem(it.Description, it.Quantity, it.Unit+"-month", it.UnitMonthly))
	}
	return out
}

// ServersFor returns the server count needed for cores and VMs
func ServersFor(cpuCores, vmCount, vmsPerServer int) int {
	servers := primitives.PacksNeeded(cpuCores, CoresPerServer)
	if vmCount > 0 && vmsPerServer > 0 {
		if byVM := primitives.PacksNeeded(vmCount, vmsPerServer); byVM > servers {
			servers = byVM
		}
	}
	return servers
}

// SwitchesFor returns one switch per ServersPerSwitch servers, at least one
func SwitchesFor(servers int) int {
	return max(1, primitives.PacksNeeded(servers, ServersPerSwitch))
}

// CalculateHardware prices the servers, components and network gear for input
func (c *Calculator) CalculateHardware(input HardwareInput) *HardwareResult {
	p := c.pricing
	servers := ServersFor(input.CPUCores, input.VMCount, p.VMsPerServer)
	switches := SwitchesFor(servers)

	res := &HardwareResult{Servers: servers, Switches: switches}

	add := func(cat types.CostCategory, desc string, qty decimal.Decimal, unit string, unitCost decimal.Decimal) {
		amortized, maintenance := p.monthlyOwnership(unitCost)
		res.Items = append(res.Items, HardwareItem{
			Category:    cat,
			Description: desc,
			Quantity:    qty,
			Unit:        unit,
			UnitCost:    unitCost,
			Capex:       qty.Mul(unitCost),
			UnitMonthly: amortized.Add(maintenance),
			Monthly:     qty.Mul(amortized.Add(maintenance)),
		})
		res.MonthlyAmortized = res.MonthlyAmortized.Add(qty.Mul(amortized))
		res.MonthlyMaintenance = res.MonthlyMaintenance.Add(qty.Mul(maintenance))
	}

	tb := decimal.NewFromInt(GBPerTB)
	ssdTB := decimal.NewFromInt(int64(max(0, input.SSDGB))).Div(tb)
	hddTB := decimal.NewFromInt(int64(max(0, input.HDDGB))).Div(tb)

	add(types.CategoryCompute, "Servers", decimal.NewFromInt(int64(servers)), "server", p.ServerCost)
	add(types.CategoryCompute, "CPU cores", decimal.NewFromInt(int64(max(0, input.CPUCores))), "core", p.PerCoreCost)
	add(types.CategoryCompute, "Memory", decimal.NewFromInt(int64(max(0, input.RAMGB))), "GB", p.PerGBRAMCost)
	add(types.CategoryStorage, "SSD storage", ssdTB, "TB", p.SSDPerTB)
	add(types.CategoryStorage, "HDD storage", hddTB, "TB", p.HDDPerTB)
	add(types.CategoryNetwork, "Network switches", decimal.NewFromInt(int64(switches)), "switch", p.NetworkSwitchCost)
	add(types.CategoryNetwork, "Load balancer appliances", decimal.NewFromInt(int64(max(0, input.LoadBalancers))), "appliance", p.LoadBalancerCost)

	for _, it := range res.Items {
		res.TotalCapex = res.TotalCapex.Add(it.Capex)
		res.Monthly = res.Monthly.Add(it.Monthly)
	}

	c.logger.Debug("hardware sized",
		zap.Int("servers", servers),
		zap.Int("switches", switches),
		zap.String("capex", res.TotalCapex.StringFixed(2)),
	)
	return res
}
