package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"infra-tco/core/cost"
	"infra-tco/core/types"
)

func (e *Estimator) estimateCloud(cfg DeploymentConfig) (*types.CostEstimate, error) {
	requested := cfg.PricingType
	if requested == "" {
		requested = e.defaultPricingType
	}
	pm, err := e.registry.GetPricingForType(cfg.Provider, cfg.Region, requested)
	if err != nil {
		return nil, err
	}

	dist := cfg.Distribution
	if dist == "" && cfg.Provider.IsManagedOpenShift() {
		dist = types.Distribution(cfg.Provider)
	}

	var notes []string
	if pm.PricingType != requested {
		notes = append(notes, fmt.Sprintf("%s has no %s pricing; on-demand rates used", cfg.Provider, requested))
	}
	if pm.Source != "" && pm.Source != "default" {
		notes = append(notes, fmt.Sprintf("rates from %s source retrieved %s", pm.Source, pm.RetrievedAt.Format("2006-01-02 15:04")))
	}

	l := newLedger()
	envs := environmentInputs(cfg.Environments)
	for i, env := range cfg.Environments {
		if env.Nodes == 0 {
			continue
		}
		direct := l.add(types.CategoryCompute, types.NewLineItem(
			fmt.Sprintf("%s nodes (%d vCPU, %d GB RAM)", env.Environment, env.CPU, env.RAMGB),
			qty(env.Nodes), "node-month", types.Monthly(pm.Compute.NodeHourly(env.CPU, env.RAMGB))))
		if env.DiskGB > 0 {
			direct = direct.Add(l.add(types.CategoryStorage, types.NewLineItem(
				fmt.Sprintf("%s node volumes (SSD)", env.Environment),
				qty(env.TotalDiskGB()), "GB-month", pm.Storage.SSDPerGBMonth)))
		}
		envs[i].Direct = direct
	}

	nodes := cfg.TotalNodes()
	clusters := cfg.Clusters()
	if cp := pm.Compute.ManagedControlPlaneHour; cp.IsPositive() && clusters > 0 {
		l.add(types.CategoryCompute, types.NewLineItem("Managed control plane",
			qty(clusters), "cluster-month", types.Monthly(cp)))
	}

	e.addSharedStorage(l, cfg, pm)
	e.addNetwork(l, cfg, pm, clusters)

	if fee := pm.Compute.OpenShiftServiceFeePerWorkerHour; fee.IsPositive() && nodes > 0 {
		l.add(types.CategoryLicense, types.NewLineItem(
			fmt.Sprintf("%s OpenShift service fee", cfg.Provider),
			qty(nodes), "worker-month", types.Monthly(fee)))
	}
	if dist != "" {
		notes = append(notes, e.addLicense(l, dist, cfg)...)
	}

	tier := cfg.SupportTier
	if tier == "" {
		tier = e.defaultSupportTier
	}
	if pct := pm.Support.SupportPercent(tier); pct.IsPositive() {
		base := l.total(types.CategoryCompute, types.CategoryStorage, types.CategoryNetwork)
		l.add(types.CategorySupport, types.NewLineItem(
			fmt.Sprintf("%s support (%s%% of infrastructure)", tier, pct),
			decimal.NewFromInt(1), "month", base.Mul(pct).Div(decimal.NewFromInt(100))))
	}

	return cost.Aggregate(cost.Input{
		Provider:     cfg.Provider,
		Distribution: dist,
		Region:       pm.Region,
		PricingType:  pm.PricingType,
		Currency:     pm.Currency,
		Categories:   l.amounts,
		LineItems:    l.items,
		Environments: envs,
		Notes:        notes,
	}), nil
}

func (e *Estimator) addSharedStorage(l *ledger, cfg DeploymentConfig, pm *types.PricingModel) {
	lines := []struct {
		desc string
		gb   int
		rate decimal.Decimal
	}{
		{"Object storage", cfg.ObjectStorageGB, pm.Storage.ObjectPerGBMonth},
		{"Backup storage", cfg.BackupGB, pm.Storage.BackupPerGBMonth},
		{"Container registry storage", cfg.RegistryGB, pm.Storage.RegistryPerGBMonth},
	}
	for _, s := range lines {
		if s.gb > 0 {
			l.add(types.CategoryStorage, types.NewLineItem(s.desc, qty(s.gb), "GB-month", s.rate))
		}
	}
}

func (e *Estimator) addNetwork(l *ledger, cfg DeploymentConfig, pm *types.PricingModel, clusters int) {
	lbs := cfg.LoadBalancers
	if cfg.HA {
		lbs += clusters
	}
	hourly := []struct {
		desc  string
		count int
		rate  decimal.Decimal
	}{
		{"Load balancers", lbs, pm.Network.LoadBalancerPerHour},
		{"NAT gateways", cfg.NATGateways, pm.Network.NATGatewayPerHour},
		{"VPN connections", cfg.VPNConnections, pm.Network.VPNConnectionPerHour},
		{"Public IPs", cfg.PublicIPs, pm.Network.PublicIPPerHour},
	}
	for _, n := range hourly {
		if n.count > 0 {
			l.add(types.CategoryNetwork, types.NewLineItem(n.desc, qty(n.count), "month", types.Monthly(n.rate)))
		}
	}
	if cfg.EgressGBPerMonth > 0 {
		l.add(types.CategoryNetwork, types.NewLineItem("Internet egress",
			qty(cfg.EgressGBPerMonth), "GB", pm.Network.EgressPerGB))
	}
}

// addLicense prices the distribution license and returns any notes about it
func (e *Estimator) addLicense(l *ledger, dist types.Distribution, cfg DeploymentConfig) []string {
	input := types.LicensingInput{
		NodeCount:        cfg.TotalNodes(),
		EnvironmentCount: types.Some(len(cfg.Environments)),
	}
	if cores := totalCPU(cfg.Environments); cores > 0 {
		input.CoreCount = types.Some(cores)
	}

	lc := e.registry.GetLicensing(dist, input)
	if lc.MonthlyCost.IsPositive() {
		l.add(types.CategoryLicense, types.NewLineItem(
			fmt.Sprintf("%s license: %s", dist, lc.Basis),
			decimal.NewFromInt(1), "month", lc.MonthlyCost))
	}

	if _, known := e.registry.ProviderFor(dist); !known {
		e.logger.Warn("estimate uses unknown distribution", zap.String("distribution", dist.String()))
		return []string{fmt.Sprintf("unknown distribution %q: no license cost applied", dist)}
	}
	return nil
}
