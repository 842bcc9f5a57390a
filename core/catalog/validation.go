// Package catalog - Catalog validation
// Ensures table integrity and enforces invariants.
package catalog

import (
	"fmt"

	"infra-tco/core/types"
)

// ValidationRule is a rate card validation rule
type ValidationRule func(RateCard) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateDefaultRegion,
		validateNonNegativeRates,
		validateRegionMultipliers,
	}
}

// Validate checks the catalog against rules and the distribution tables
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errors []error

	for _, p := range c.Providers() {
		card, _ := c.Get(p)
		for _, rule := range rules {
			if err := rule(card); err != nil {
				errors = append(errors, fmt.Errorf("%s: %w", p, err))
			}
		}
	}

	for _, d := range Distributions() {
		info, _ := LookupDistribution(d)
		if err := c.validateDistribution(info); err != nil {
			errors = append(errors, fmt.Errorf("%s: %w", d, err))
		}
	}

	return errors
}

func (c *Catalog) validateDistribution(info DistributionInfo) error {
	switch {
	case info.Provider == types.ProviderOnPrem:
	case info.Provider.IsManagedOpenShift():
		offering, ok := LookupManagedOpenShift(info.Provider)
		if !ok {
			return fmt.Errorf("no managed OpenShift offering for %s", info.Provider)
		}
		if _, ok := c.Get(offering.BaseProvider); !ok {
			return fmt.Errorf("managed OpenShift base provider %s has no rate card", offering.BaseProvider)
		}
	default:
		if _, ok := c.Get(info.Provider); !ok {
			return fmt.Errorf("provider %s has no rate card", info.Provider)
		}
	}

	if info.IsVariant() {
		base, ok := LookupDistribution(info.Base)
		if !ok {
			return fmt.Errorf("variant base %s is not a known distribution", info.Base)
		}
		if base.IsVariant() {
			return fmt.Errorf("variant base %s is itself a variant", info.Base)
		}
		if _, ok := LookupLicenseRate(info.Base); !ok {
			return fmt.Errorf("variant base %s has no license terms", info.Base)
		}
	}
	return nil
}

func validateDefaultRegion(card RateCard) error {
	if card.DefaultRegion == "" {
		return fmt.Errorf("missing default region")
	}
	if _, ok := card.Regions[card.DefaultRegion]; !ok {
		return fmt.Errorf("default region %s not in region table", card.DefaultRegion)
	}
	return nil
}

func validateNonNegativeRates(card RateCard) error {
	rates := map[string]float64{
		"vcpu_hour":          card.VCPUHour,
		"gb_ram_hour":        card.GBRAMHour,
		"control_plane_hour": card.ControlPlaneHour,
		"ssd_gb_month":       card.SSDGBMonth,
		"hdd_gb_month":       card.HDDGBMonth,
		"object_gb_month":    card.ObjectGBMonth,
		"backup_gb_month":    card.BackupGBMonth,
		"registry_gb_month":  card.RegistryGBMonth,
		"egress_gb":          card.EgressGB,
		"lb_hour":            card.LBHour,
		"nat_hour":           card.NATHour,
		"vpn_hour":           card.VPNHour,
		"public_ip_hour":     card.PublicIPHour,
	}
	for name, v := range rates {
		if v < 0 {
			return fmt.Errorf("negative rate %s", name)
		}
	}
	if card.VCPUHour == 0 || card.GBRAMHour == 0 {
		return fmt.Errorf("compute rates must be positive")
	}
	for name, v := range card.InstanceTypes {
		if v <= 0 {
			return fmt.Errorf("instance type %s has no price", name)
		}
	}
	return nil
}

func validateRegionMultipliers(card RateCard) error {
	for region, m := range card.Regions {
		if m <= 0 {
			return fmt.Errorf("region %s has non-positive multiplier", region)
		}
	}
	return nil
}
