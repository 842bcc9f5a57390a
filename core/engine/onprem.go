package engine

import (
	"fmt"

	"infra-tco/core/cost"
	"infra-tco/core/onprem"
	"infra-tco/core/types"
)

// estimateOnPrem prices owned hardware, datacenter and staff plus the distribution license.
// In VM mode nodes are virtual machines and also bound the server count.
func (e *Estimator) estimateOnPrem(cfg DeploymentConfig) (*types.CostEstimate, error) {
	lbs := cfg.LoadBalancers
	if cfg.HA {
		lbs += cfg.Clusters()
	}

	ramGB, diskGB := 0, 0
	for _, env := range cfg.Environments {
		ramGB += env.TotalRAMGB()
		diskGB += env.TotalDiskGB()
	}
	nodes := cfg.TotalNodes()
	vms := 0
	if cfg.VMMode {
		vms = nodes
	}

	res := e.onprem.Calculate(onprem.Input{
		Hardware: onprem.HardwareInput{
			CPUCores:      totalCPU(cfg.Environments),
			RAMGB:         ramGB,
			SSDGB:         diskGB + cfg.RegistryGB,
			HDDGB:         cfg.BackupGB + cfg.ObjectStorageGB,
			LoadBalancers: lbs,
			VMCount:       vms,
		},
		Nodes:                    nodes,
		HasProductionEnvironment: cfg.HasProduction(),
	})

	l := newLedger()
	for category, amount := range res.Categories {
		l.merge(category, amount, res.LineItems[category])
	}

	var notes []string
	if cfg.Distribution != "" {
		notes = e.addLicense(l, cfg.Distribution, cfg)
	}
	notes = append(notes, fmt.Sprintf("%d servers amortized over %d years", res.Hardware.Servers, e.onprem.Pricing().HardwareRefreshYears))
	if cfg.EgressGBPerMonth > 0 || cfg.NATGateways > 0 || cfg.VPNConnections > 0 || cfg.PublicIPs > 0 {
		notes = append(notes, "egress, NAT, VPN and public IP usage are not priced on-prem")
	}

	return cost.Aggregate(cost.Input{
		Provider:     types.ProviderOnPrem,
		Distribution: cfg.Distribution,
		Region:       cfg.Region,
		PricingType:  types.PricingOnDemand,
		Currency:     types.CurrencyUSD,
		Categories:   l.amounts,
		LineItems:    l.items,
		Environments: environmentInputs(cfg.Environments),
		Notes:        notes,
	}), nil
}
