package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"infra-tco/core/types"
)

// RenderSubscriptionTable writes a low-code quote as a boxed table
func RenderSubscriptionTable(w io.Writer, v *SubscriptionView, showDetails bool) error {
	tw := &tableWriter{w: w}

	tw.line("┌" + tableRule + "┐")
	tw.row(strings.ToUpper(v.Platform)+" · annual subscription", "")
	tw.line("├" + tableRule + "┤")
	if showDetails {
		for _, li := range v.LineItems {
			tw.row(fmt.Sprintf("%s (%s %s)", li.Description, li.Quantity, li.Unit), li.Total)
		}
		tw.line("├" + tableRule + "┤")
	}
	tw.row("SUBTOTAL", v.Subtotal)
	tw.row("DISCOUNT", v.DiscountAmount)
	tw.row("TOTAL YEARLY", v.TotalPerYear)
	tw.row("TOTAL MONTHLY", v.TotalPerMonth)
	tw.row("3-YEAR TOTAL", v.ThreeYearTotal)
	tw.line("└" + tableRule + "┘")

	for _, n := range v.Notes {
		tw.line("Note: " + n)
	}
	return tw.err
}

// RenderLicensingTable writes a licensing view as a boxed table
func RenderLicensingTable(w io.Writer, v *LicensingView) error {
	tw := &tableWriter{w: w}

	tw.line("┌" + tableRule + "┐")
	tw.row("LICENSE · "+v.Distribution, "")
	tw.line("├" + tableRule + "┤")
	tw.row(v.Basis, "")
	tw.row("ANNUAL", v.AnnualCost)
	tw.row("MONTHLY", v.MonthlyCost)
	tw.line("└" + tableRule + "┘")
	return tw.err
}

// RenderPricingTable writes a provider rate card. With includePricing false
// every rate reads "N/A".
func RenderPricingTable(w io.Writer, m *types.PricingModel, includePricing bool) error {
	r := renderer{currency: m.Currency, include: includePricing}
	rate := func(d decimal.Decimal) string {
		if !r.include {
			return NotAvailable
		}
		return d.String()
	}

	tw := &tableWriter{w: w}
	tw.line("┌" + tableRule + "┐")
	tw.row(fmt.Sprintf("%s · %s · %s (%s)", strings.ToUpper(m.Provider.String()), m.Region, m.PricingType, m.Source), "")
	tw.line("├" + tableRule + "┤")

	tw.row("vCPU per hour", rate(m.Compute.PerVCPUHour))
	tw.row("GB RAM per hour", rate(m.Compute.PerGBRAMHour))
	tw.row("Managed control plane per hour", rate(m.Compute.ManagedControlPlaneHour))
	if m.Compute.OpenShiftServiceFeePerWorkerHour.IsPositive() {
		tw.row("OpenShift service fee per worker-hour", rate(m.Compute.OpenShiftServiceFeePerWorkerHour))
	}
	names := make([]string, 0, len(m.Compute.InstanceTypes))
	for name := range m.Compute.InstanceTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tw.row("  └─ "+name+" per hour", rate(m.Compute.InstanceTypes[name]))
	}

	tw.line("├" + tableRule + "┤")
	tw.row("SSD per GB-month", rate(m.Storage.SSDPerGBMonth))
	tw.row("HDD per GB-month", rate(m.Storage.HDDPerGBMonth))
	tw.row("Object storage per GB-month", rate(m.Storage.ObjectPerGBMonth))
	tw.row("Backup per GB-month", rate(m.Storage.BackupPerGBMonth))
	tw.row("Registry per GB-month", rate(m.Storage.RegistryPerGBMonth))

	tw.line("├" + tableRule + "┤")
	tw.row("Egress per GB", rate(m.Network.EgressPerGB))
	tw.row("Load balancer per hour", rate(m.Network.LoadBalancerPerHour))
	tw.row("NAT gateway per hour", rate(m.Network.NATGatewayPerHour))
	tw.row("VPN connection per hour", rate(m.Network.VPNConnectionPerHour))
	tw.row("Public IP per hour", rate(m.Network.PublicIPPerHour))
	tw.line("└" + tableRule + "┘")
	return tw.err
}

// RenderAlternatives writes a numbered list of alternatives
func RenderAlternatives(w io.Writer, source types.Distribution, alts []types.CloudAlternative) error {
	tw := &tableWriter{w: w}
	tw.line(fmt.Sprintf("Alternatives to %s:", source))
	for i, alt := range alts {
		mark := ""
		if alt.Recommended {
			mark = " (recommended)"
		}
		tw.line(fmt.Sprintf("%2d. %s · %s [%s]%s", i+1, alt.ServiceName, alt.Name, alt.Provider, mark))
		for _, f := range alt.Features {
			tw.line("      + " + f)
		}
		for _, c := range alt.Considerations {
			tw.line("      - " + c)
		}
	}
	return tw.err
}
