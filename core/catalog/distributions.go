// Package catalog - Distribution tables
// Every distribution maps to exactly one provider; cloud variants map to a base distribution.
package catalog

import (
	"sort"

	"infra-tco/core/types"
)

// LicenseBasis is how a distribution's license is counted
type LicenseBasis string

const (
	BasisNone    LicenseBasis = "none"
	BasisPerNode LicenseBasis = "per-node-year"
	BasisPerCore LicenseBasis = "per-core-year"
	BasisManaged LicenseBasis = "managed-service"
)

// DistributionInfo describes one distribution
type DistributionInfo struct {
	Distribution types.Distribution
	DisplayName  string
	Provider     types.CloudProvider

	// Base is the distribution whose license terms apply (itself for base distributions)
	Base types.Distribution
}

// IsVariant reports whether the distribution is a cloud-specific variant of another
func (d DistributionInfo) IsVariant() bool {
	return d.Base != d.Distribution
}

// LicenseRate is the annual list price of a licensed distribution
type LicenseRate struct {
	Basis      LicenseBasis
	AnnualRate float64
	Vendor     string
}

// ManagedOpenShiftOffering is a vendor-run OpenShift service on a host cloud
type ManagedOpenShiftOffering struct {
	Provider         types.CloudProvider
	Name             string
	BaseProvider     types.CloudProvider
	FeePerWorkerHour float64
}

var distributions = func() map[types.Distribution]DistributionInfo {
	entries := []DistributionInfo{
		{types.DistOpenShift, "Red Hat OpenShift", types.ProviderOnPrem, types.DistOpenShift},
		{types.DistRancher, "SUSE Rancher Prime", types.ProviderOnPrem, types.DistRancher},
		{types.DistTanzu, "VMware Tanzu", types.ProviderOnPrem, types.DistTanzu},
		{types.DistCharmed, "Canonical Charmed Kubernetes", types.ProviderOnPrem, types.DistCharmed},
		{types.DistRKE2, "RKE2", types.ProviderOnPrem, types.DistRKE2},
		{types.DistK3s, "K3s", types.ProviderOnPrem, types.DistK3s},
		{types.DistMicroK8s, "MicroK8s", types.ProviderOnPrem, types.DistMicroK8s},
		{types.DistKubernetes, "Vanilla Kubernetes", types.ProviderOnPrem, types.DistKubernetes},

		{types.DistEKS, "Amazon EKS", types.ProviderAWS, types.DistEKS},
		{types.DistAKS, "Azure Kubernetes Service", types.ProviderAzure, types.DistAKS},
		{types.DistGKE, "Google Kubernetes Engine", types.ProviderGCP, types.DistGKE},
		{types.DistOKE, "Oracle Container Engine", types.ProviderOCI, types.DistOKE},
		{types.DistIKS, "IBM Cloud Kubernetes Service", types.ProviderIBM, types.DistIKS},
		{types.DistACK, "Alibaba Container Service", types.ProviderAlibaba, types.DistACK},
		{types.DistDOKS, "DigitalOcean Kubernetes", types.ProviderDigitalOcean, types.DistDOKS},
		{types.DistLKE, "Linode Kubernetes Engine", types.ProviderLinode, types.DistLKE},
		{types.DistVKE, "Vultr Kubernetes Engine", types.ProviderVultr, types.DistVKE},
		{types.DistHetznerK8s, "Kubernetes on Hetzner", types.ProviderHetzner, types.DistHetznerK8s},
		{types.DistOVHMKS, "OVHcloud Managed Kubernetes", types.ProviderOVH, types.DistOVHMKS},
		{types.DistKapsule, "Scaleway Kapsule", types.ProviderScaleway, types.DistKapsule},
		{types.DistCivoK8s, "Civo Kubernetes", types.ProviderCivo, types.DistCivoK8s},
		{types.DistExoscaleSKS, "Exoscale SKS", types.ProviderExoscale, types.DistExoscaleSKS},

		{types.DistROSA, "Red Hat OpenShift Service on AWS", types.ProviderROSA, types.DistROSA},
		{types.DistARO, "Azure Red Hat OpenShift", types.ProviderARO, types.DistARO},
		{types.DistOSD, "OpenShift Dedicated", types.ProviderOSD, types.DistOSD},
		{types.DistROKS, "Red Hat OpenShift on IBM Cloud", types.ProviderROKS, types.DistROKS},

		{types.DistRancherEKS, "Rancher on EKS", types.ProviderAWS, types.DistRancher},
		{types.DistRancherAKS, "Rancher on AKS", types.ProviderAzure, types.DistRancher},
		{types.DistRancherGKE, "Rancher on GKE", types.ProviderGCP, types.DistRancher},
		{types.DistTanzuAWS, "Tanzu on AWS", types.ProviderAWS, types.DistTanzu},
		{types.DistTanzuAzure, "Tanzu on Azure", types.ProviderAzure, types.DistTanzu},
		{types.DistTanzuGCP, "Tanzu on Google Cloud", types.ProviderGCP, types.DistTanzu},
		{types.DistK3sAWS, "K3s on AWS", types.ProviderAWS, types.DistK3s},
		{types.DistK3sAzure, "K3s on Azure", types.ProviderAzure, types.DistK3s},
		{types.DistK3sGCP, "K3s on Google Cloud", types.ProviderGCP, types.DistK3s},
		{types.DistRKE2AWS, "RKE2 on AWS", types.ProviderAWS, types.DistRKE2},
		{types.DistRKE2Azure, "RKE2 on Azure", types.ProviderAzure, types.DistRKE2},
		{types.DistCharmedAWS, "Charmed Kubernetes on AWS", types.ProviderAWS, types.DistCharmed},
		{types.DistCharmedAzure, "Charmed Kubernetes on Azure", types.ProviderAzure, types.DistCharmed},
		{types.DistOpenShiftAWS, "Self-managed OpenShift on AWS", types.ProviderAWS, types.DistOpenShift},
		{types.DistOpenShiftAzure, "Self-managed OpenShift on Azure", types.ProviderAzure, types.DistOpenShift},
	}
	m := make(map[types.Distribution]DistributionInfo, len(entries))
	for _, e := range entries {
		m[e.Distribution] = e
	}
	return m
}()

var licenseRates = map[types.Distribution]LicenseRate{
	types.DistOpenShift:  {Basis: BasisPerNode, AnnualRate: 2500, Vendor: "Red Hat"},
	types.DistRancher:    {Basis: BasisPerNode, AnnualRate: 1000, Vendor: "SUSE"},
	types.DistCharmed:    {Basis: BasisPerNode, AnnualRate: 500, Vendor: "Canonical"},
	types.DistTanzu:      {Basis: BasisPerCore, AnnualRate: 1500, Vendor: "Broadcom"},
	types.DistRKE2:       {Basis: BasisNone},
	types.DistK3s:        {Basis: BasisNone},
	types.DistMicroK8s:   {Basis: BasisNone},
	types.DistKubernetes: {Basis: BasisNone},
}

var managedOpenShift = map[types.CloudProvider]ManagedOpenShiftOffering{
	types.ProviderROSA: {types.ProviderROSA, "ROSA", types.ProviderAWS, 0.171},
	types.ProviderARO:  {types.ProviderARO, "ARO", types.ProviderAzure, 0.21},
	types.ProviderOSD:  {types.ProviderOSD, "OpenShift Dedicated", types.ProviderAWS, 0.166},
	types.ProviderROKS: {types.ProviderROKS, "ROKS", types.ProviderIBM, 0.20},
}

// pricingTypeFactors scale compute rates for the purchasing model
var pricingTypeFactors = map[types.PricingType]float64{
	types.PricingOnDemand:   1.0,
	types.PricingReserved1Y: 0.63,
	types.PricingReserved3Y: 0.43,
	types.PricingSpot:       0.30,
}

// LookupDistribution returns metadata for a distribution
func LookupDistribution(d types.Distribution) (DistributionInfo, bool) {
	info, ok := distributions[d]
	return info, ok
}

// Distributions returns all known distributions, sorted
func Distributions() []types.Distribution {
	out := make([]types.Distribution, 0, len(distributions))
	for d := range distributions {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LookupLicenseRate returns the license terms of a base distribution
func LookupLicenseRate(d types.Distribution) (LicenseRate, bool) {
	r, ok := licenseRates[d]
	return r, ok
}

// LicensedDistributions returns the base distributions with license terms, sorted
func LicensedDistributions() []types.Distribution {
	out := make([]types.Distribution, 0, len(licenseRates))
	for d := range licenseRates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LookupManagedOpenShift returns the managed OpenShift offering for a pseudo-provider
func LookupManagedOpenShift(p types.CloudProvider) (ManagedOpenShiftOffering, bool) {
	o, ok := managedOpenShift[p]
	return o, ok
}

// PricingTypeFactor returns the compute multiplier for a purchasing model
func PricingTypeFactor(t types.PricingType) (float64, bool) {
	f, ok := pricingTypeFactors[t]
	return f, ok
}
