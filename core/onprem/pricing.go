// Package onprem computes the monthly cost of running a deployment on owned hardware.
// Hardware is amortized over its refresh cycle, datacenter cost follows from
// power draw and PUE, and labor scales with node count.
package onprem

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Sizing constants
const (
	CoresPerServer   = 64
	ServersPerSwitch = 40
	RackUnitsPerNode = 2
	GBPerTB          = 1000
)

// OnPremPricing holds the unit costs of an on-prem deployment
type OnPremPricing struct {
	// Hardware, one-off purchase prices
	ServerCost        decimal.Decimal `json:"server_cost"`
	PerCoreCost       decimal.Decimal `json:"per_core_cost"`
	PerGBRAMCost      decimal.Decimal `json:"per_gb_ram_cost"`
	SSDPerTB          decimal.Decimal `json:"ssd_per_tb"`
	HDDPerTB          decimal.Decimal `json:"hdd_per_tb"`
	NetworkSwitchCost decimal.Decimal `json:"network_switch_cost"`
	LoadBalancerCost  decimal.Decimal `json:"load_balancer_cost"`
	VMsPerServer      int             `json:"vms_per_server"`

	// Datacenter, monthly
	RackUnitMonthly decimal.Decimal `json:"rack_unit_monthly"`
	PowerPerKWh     decimal.Decimal `json:"power_per_kwh"`
	WattsPerServer  int             `json:"watts_per_server"`
	PUE             decimal.Decimal `json:"pue"`
	CoolingPercent  decimal.Decimal `json:"cooling_percent"`

	// Labor, monthly fully loaded
	DevOpsMonthly    decimal.Decimal `json:"devops_monthly"`
	NodesPerEngineer int             `json:"nodes_per_engineer"`
	SysAdminMonthly  decimal.Decimal `json:"sysadmin_monthly"`
	DBAMonthly       decimal.Decimal `json:"dba_monthly"`
	IncludeDBA       bool            `json:"include_dba"`

	// Lifecycle
	HardwareRefreshYears       int             `json:"hardware_refresh_years"`
	HardwareMaintenancePercent decimal.Decimal `json:"hardware_maintenance_percent"`
}

// DefaultPricing returns list-price defaults for a mid-size enterprise datacenter
func DefaultPricing() OnPremPricing {
	return OnPremPricing{
		ServerCost:        decimal.NewFromInt(8000),
		PerCoreCost:       decimal.NewFromInt(120),
		PerGBRAMCost:      decimal.NewFromInt(8),
		SSDPerTB:          decimal.NewFromInt(150),
		HDDPerTB:          decimal.NewFromInt(40),
		NetworkSwitchCost: decimal.NewFromInt(12000),
		LoadBalancerCost:  decimal.NewFromInt(25000),
		VMsPerServer:      10,

		RackUnitMonthly: decimal.NewFromInt(50),
		PowerPerKWh:     decimal.NewFromFloat(0.12),
		WattsPerServer:  500,
		PUE:             decimal.NewFromFloat(1.6),
		CoolingPercent:  decimal.NewFromInt(20),

		DevOpsMonthly:    decimal.NewFromInt(12500),
		NodesPerEngineer: 50,
		SysAdminMonthly:  decimal.NewFromInt(9000),
		DBAMonthly:       decimal.NewFromInt(11000),
		IncludeDBA:       true,

		HardwareRefreshYears:       4,
		HardwareMaintenancePercent: decimal.NewFromInt(10),
	}
}

// Validate checks that divisors are positive and rates are non-negative
func (p OnPremPricing) Validate() error {
	if p.HardwareRefreshYears <= 0 {
		return fmt.Errorf("hardware_refresh_years must be positive, got %d", p.HardwareRefreshYears)
	}
	if p.NodesPerEngineer <= 0 {
		return fmt.Errorf("nodes_per_engineer must be positive, got %d", p.NodesPerEngineer)
	}
	if p.VMsPerServer <= 0 {
		return fmt.Errorf("vms_per_server must be positive, got %d", p.VMsPerServer)
	}
	if p.WattsPerServer < 0 {
		return fmt.Errorf("watts_per_server must not be negative, got %d", p.WattsPerServer)
	}

	rates := map[string]decimal.Decimal{
		"server_cost":                  p.ServerCost,
		"per_core_cost":                p.PerCoreCost,
		"per_gb_ram_cost":              p.PerGBRAMCost,
		"ssd_per_tb":                   p.SSDPerTB,
		"hdd_per_tb":                   p.HDDPerTB,
		"network_switch_cost":          p.NetworkSwitchCost,
		"load_balancer_cost":           p.LoadBalancerCost,
		"rack_unit_monthly":            p.RackUnitMonthly,
		"power_per_kwh":                p.PowerPerKWh,
		"pue":                          p.PUE,
		"cooling_percent":              p.CoolingPercent,
		"devops_monthly":               p.DevOpsMonthly,
		"sysadmin_monthly":             p.SysAdminMonthly,
		"dba_monthly":                  p.DBAMonthly,
		"hardware_maintenance_percent": p.HardwareMaintenancePercent,
	}
	for name, v := range rates {
		if v.IsNegative() {
			return fmt.Errorf("%s must not be negative, got %s", name, v)
		}
	}
	return nil
}

func (p OnPremPricing) refreshMonths() decimal.Decimal {
	return decimal.NewFromInt(int64(p.HardwareRefreshYears * 12))
}

// monthlyOwnership converts a purchase price to its monthly amortization and maintenance
func (p OnPremPricing) monthlyOwnership(capex decimal.Decimal) (amortized, maintenance decimal.Decimal) {
	amortized = capex.Div(p.refreshMonths())
	maintenance = capex.Mul(p.HardwareMaintenancePercent).Div(decimal.NewFromInt(1200))
	return amortized, maintenance
}
