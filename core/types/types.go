// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

// HoursPerMonth converts hourly rates into monthly figures everywhere
const HoursPerMonth = 730

// CloudProvider identifies where a deployment runs
type CloudProvider string

const (
	ProviderOnPrem       CloudProvider = "onprem"
	ProviderAWS          CloudProvider = "aws"
	ProviderAzure        CloudProvider = "azure"
	ProviderGCP          CloudProvider = "gcp"
	ProviderOCI          CloudProvider = "oci"
	ProviderIBM          CloudProvider = "ibm"
	ProviderAlibaba      CloudProvider = "alibaba"
	ProviderDigitalOcean CloudProvider = "digitalocean"
	ProviderLinode       CloudProvider = "linode"
	ProviderVultr        CloudProvider = "vultr"
	ProviderHetzner      CloudProvider = "hetzner"
	ProviderOVH          CloudProvider = "ovh"
	ProviderScaleway     CloudProvider = "scaleway"
	ProviderCivo         CloudProvider = "civo"
	ProviderExoscale     CloudProvider = "exoscale"

	// Managed OpenShift pseudo-providers
	ProviderROSA CloudProvider = "rosa"
	ProviderARO  CloudProvider = "aro"
	ProviderOSD  CloudProvider = "osd"
	ProviderROKS CloudProvider = "roks"
)

// String returns the string representation of the provider
func (p CloudProvider) String() string {
	return string(p)
}

// IsManagedOpenShift reports whether p is a vendor-managed OpenShift offering
func (p CloudProvider) IsManagedOpenShift() bool {
	switch p {
	case ProviderROSA, ProviderARO, ProviderOSD, ProviderROKS:
		return true
	default:
		return false
	}
}

// Distribution identifies a Kubernetes distribution or managed offering
type Distribution string

const (
	// Self-managed, on-prem capable
	DistOpenShift  Distribution = "openshift"
	DistRancher    Distribution = "rancher"
	DistTanzu      Distribution = "tanzu"
	DistCharmed    Distribution = "charmed"
	DistRKE2       Distribution = "rke2"
	DistK3s        Distribution = "k3s"
	DistMicroK8s   Distribution = "microk8s"
	DistKubernetes Distribution = "kubernetes"

	// Managed cloud Kubernetes
	DistEKS         Distribution = "eks"
	DistAKS         Distribution = "aks"
	DistGKE         Distribution = "gke"
	DistOKE         Distribution = "oke"
	DistIKS         Distribution = "iks"
	DistACK         Distribution = "ack"
	DistDOKS        Distribution = "doks"
	DistLKE         Distribution = "lke"
	DistVKE         Distribution = "vke"
	DistHetznerK8s  Distribution = "hetzner-k8s"
	DistOVHMKS      Distribution = "ovh-mks"
	DistKapsule     Distribution = "kapsule"
	DistCivoK8s     Distribution = "civo-k8s"
	DistExoscaleSKS Distribution = "sks"

	// Managed OpenShift
	DistROSA Distribution = "rosa"
	DistARO  Distribution = "aro"
	DistOSD  Distribution = "osd"
	DistROKS Distribution = "roks"

	// Self-managed distributions running on a specific cloud
	DistRancherEKS     Distribution = "rancher-eks"
	DistRancherAKS     Distribution = "rancher-aks"
	DistRancherGKE     Distribution = "rancher-gke"
	DistTanzuAWS       Distribution = "tanzu-aws"
	DistTanzuAzure     Distribution = "tanzu-azure"
	DistTanzuGCP       Distribution = "tanzu-gcp"
	DistK3sAWS         Distribution = "k3s-aws"
	DistK3sAzure       Distribution = "k3s-azure"
	DistK3sGCP         Distribution = "k3s-gcp"
	DistRKE2AWS        Distribution = "rke2-aws"
	DistRKE2Azure      Distribution = "rke2-azure"
	DistCharmedAWS     Distribution = "charmed-aws"
	DistCharmedAzure   Distribution = "charmed-azure"
	DistOpenShiftAWS   Distribution = "openshift-aws"
	DistOpenShiftAzure Distribution = "openshift-azure"
)

// String returns the string representation of the distribution
func (d Distribution) String() string {
	return string(d)
}

// IsManagedOpenShift reports whether d is a vendor-managed OpenShift offering
func (d Distribution) IsManagedOpenShift() bool {
	return CloudProvider(d).IsManagedOpenShift()
}

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// PricingType is the purchasing model applied to compute rates
type PricingType string

const (
	PricingOnDemand   PricingType = "on-demand"
	PricingReserved1Y PricingType = "reserved-1yr"
	PricingReserved3Y PricingType = "reserved-3yr"
	PricingSpot       PricingType = "spot"
)

// IsValid checks if the pricing type is known
func (p PricingType) IsValid() bool {
	switch p {
	case PricingOnDemand, PricingReserved1Y, PricingReserved3Y, PricingSpot:
		return true
	default:
		return false
	}
}

// SupportTier selects a cloud support plan
type SupportTier string

const (
	SupportNone       SupportTier = "none"
	SupportBasic      SupportTier = "basic"
	SupportDeveloper  SupportTier = "developer"
	SupportBusiness   SupportTier = "business"
	SupportEnterprise SupportTier = "enterprise"
)

// CostCategory classifies a slice of the estimate
type CostCategory string

const (
	CategoryCompute    CostCategory = "compute"
	CategoryStorage    CostCategory = "storage"
	CategoryNetwork    CostCategory = "network"
	CategoryLicense    CostCategory = "license"
	CategorySupport    CostCategory = "support"
	CategoryDatacenter CostCategory = "datacenter"
	CategoryLabor      CostCategory = "labor"
)

// Categories lists all categories in display order
var Categories = []CostCategory{
	CategoryCompute,
	CategoryStorage,
	CategoryNetwork,
	CategoryLicense,
	CategorySupport,
	CategoryDatacenter,
	CategoryLabor,
}

// EnvironmentType names a deployment stage
type EnvironmentType string

const (
	EnvDev   EnvironmentType = "dev"
	EnvTest  EnvironmentType = "test"
	EnvStage EnvironmentType = "stage"
	EnvProd  EnvironmentType = "prod"
	EnvDR    EnvironmentType = "dr"
)

// IsProduction reports whether the environment serves production traffic
func (e EnvironmentType) IsProduction() bool {
	return e == EnvProd || e == EnvDR
}
