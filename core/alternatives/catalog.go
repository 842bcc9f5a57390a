// Package alternatives lists managed cloud offerings that can replace a self-managed
// Kubernetes distribution. Catalog entries are built per call and never shared.
package alternatives

import (
	"infra-tco/core/types"
)

func openShiftAlternatives() []types.CloudAlternative {
	return []types.CloudAlternative{
		{
			Provider:             types.ProviderROSA,
			Name:                 "Red Hat OpenShift Service on AWS",
			ServiceName:          "ROSA",
			DistributionSpecific: true,
			Recommended:          true,
			Features:             []string{"Jointly supported by Red Hat and AWS", "Billed through AWS", "Hosted control plane option"},
			Considerations:       []string{"Per worker-hour service fee on top of EC2"},
		},
		{
			Provider:             types.ProviderARO,
			Name:                 "Azure Red Hat OpenShift",
			ServiceName:          "ARO",
			DistributionSpecific: true,
			Recommended:          true,
			Features:             []string{"Jointly engineered by Red Hat and Microsoft", "Billed through Azure", "Azure AD integration"},
			Considerations:       []string{"Minimum cluster size of three workers"},
		},
		{
			Provider:             types.ProviderOSD,
			Name:                 "OpenShift Dedicated",
			ServiceName:          "OSD",
			DistributionSpecific: true,
			Features:             []string{"Managed by Red Hat SRE", "Runs on AWS or GCP"},
			Considerations:       []string{"Contracted through Red Hat rather than the cloud marketplace"},
		},
		{
			Provider:             types.ProviderROKS,
			Name:                 "Red Hat OpenShift on IBM Cloud",
			ServiceName:          "ROKS",
			DistributionSpecific: true,
			Features:             []string{"Managed by IBM", "Integrated with IBM Cloud Paks"},
			Considerations:       []string{"Smaller regional footprint than the hyperscalers"},
		},
	}
}

func rancherAlternatives() []types.CloudAlternative {
	return []types.CloudAlternative{
		{
			Provider:             types.ProviderAWS,
			Name:                 "Rancher Prime on Amazon EKS",
			ServiceName:          "EKS + Rancher",
			DistributionSpecific: true,
			Recommended:          true,
			Features:             []string{"Rancher manages EKS clusters natively", "AWS Marketplace billing"},
			Considerations:       []string{"Rancher subscription still applies per node"},
		},
		{
			Provider:             types.ProviderAzure,
			Name:                 "Rancher Prime on Azure AKS",
			ServiceName:          "AKS + Rancher",
			DistributionSpecific: true,
			Features:             []string{"Azure Marketplace billing"},
			Considerations:       []string{"Rancher subscription still applies per node"},
		},
		{
			Provider:             types.ProviderGCP,
			Name:                 "Rancher Prime on Google GKE",
			ServiceName:          "GKE + Rancher",
			DistributionSpecific: true,
			Considerations:       []string{"Rancher subscription still applies per node"},
		},
	}
}

func tanzuAlternatives() []types.CloudAlternative {
	return []types.CloudAlternative{
		{
			Provider:             types.ProviderAWS,
			Name:                 "VMware Cloud on AWS with Tanzu",
			ServiceName:          "VMC + Tanzu",
			DistributionSpecific: true,
			Recommended:          true,
			Features:             []string{"Same vSphere tooling as on-prem", "Workload migration without refactoring"},
			Considerations:       []string{"Bare-metal host minimums make small clusters expensive"},
		},
		{
			Provider:             types.ProviderAzure,
			Name:                 "Azure VMware Solution with Tanzu",
			ServiceName:          "AVS + Tanzu",
			DistributionSpecific: true,
			Features:             []string{"Same vSphere tooling as on-prem"},
			Considerations:       []string{"Per-core Tanzu licensing continues"},
		},
		{
			Provider:             types.ProviderGCP,
			Name:                 "Google Cloud VMware Engine with Tanzu",
			ServiceName:          "GCVE + Tanzu",
			DistributionSpecific: true,
			Considerations:       []string{"Per-core Tanzu licensing continues"},
		},
	}
}

func charmedAlternatives() []types.CloudAlternative {
	return []types.CloudAlternative{
		{
			Provider:             types.ProviderAWS,
			Name:                 "Charmed Kubernetes on AWS",
			ServiceName:          "Charmed K8s (AWS)",
			DistributionSpecific: true,
			Recommended:          true,
			Features:             []string{"Juju operators work unchanged", "Ubuntu Pro support"},
			Considerations:       []string{"Control plane is self-managed"},
		},
		{
			Provider:             types.ProviderAzure,
			Name:                 "Charmed Kubernetes on Azure",
			ServiceName:          "Charmed K8s (Azure)",
			DistributionSpecific: true,
			Considerations:       []string{"Control plane is self-managed"},
		},
	}
}

func rke2Alternatives() []types.CloudAlternative {
	return []types.CloudAlternative{
		{
			Provider:             types.ProviderAWS,
			Name:                 "RKE2 on Amazon EC2",
			ServiceName:          "RKE2 (AWS)",
			DistributionSpecific: true,
			Recommended:          true,
			Features:             []string{"FIPS 140-2 and CIS hardened defaults", "No license cost"},
			Considerations:       []string{"Control plane runs on your own instances"},
		},
		{
			Provider:             types.ProviderAzure,
			Name:                 "RKE2 on Azure VMs",
			ServiceName:          "RKE2 (Azure)",
			DistributionSpecific: true,
			Features:             []string{"No license cost"},
			Considerations:       []string{"Control plane runs on your own instances"},
		},
	}
}

func lightweightAlternatives() []types.CloudAlternative {
	return []types.CloudAlternative{
		{
			Provider:       types.ProviderDigitalOcean,
			Name:           "DigitalOcean Kubernetes",
			ServiceName:    "DOKS",
			Recommended:    true,
			Features:       []string{"Free control plane", "Simple flat pricing"},
			Considerations: []string{"Fewer regions and managed services"},
		},
		{
			Provider:       types.ProviderLinode,
			Name:           "Linode Kubernetes Engine",
			ServiceName:    "LKE",
			Features:       []string{"Free control plane", "Generous included transfer"},
			Considerations: []string{"Limited enterprise compliance options"},
		},
		{
			Provider:       types.ProviderHetzner,
			Name:           "Hetzner Cloud Kubernetes",
			ServiceName:    "Hetzner K8s",
			Features:       []string{"Lowest per-node price"},
			Considerations: []string{"EU and US regions only", "No reserved pricing"},
		},
	}
}

// generic is the shared default list. It is only ever cloned.
var generic = []types.CloudAlternative{
	{
		Provider:       types.ProviderAWS,
		Name:           "Amazon Elastic Kubernetes Service",
		ServiceName:    "EKS",
		Recommended:    true,
		Features:       []string{"Largest managed Kubernetes ecosystem", "Fargate serverless nodes"},
		Considerations: []string{"Hourly control plane fee"},
	},
	{
		Provider:       types.ProviderAzure,
		Name:           "Azure Kubernetes Service",
		ServiceName:    "AKS",
		Recommended:    true,
		Features:       []string{"Free control plane tier", "Azure AD integration"},
		Considerations: []string{"Uptime SLA requires the paid tier"},
	},
	{
		Provider:       types.ProviderGCP,
		Name:           "Google Kubernetes Engine",
		ServiceName:    "GKE",
		Features:       []string{"Autopilot mode", "Fast Kubernetes version adoption"},
		Considerations: []string{"Hourly cluster management fee"},
	},
	{
		Provider:       types.ProviderOCI,
		Name:           "Oracle Container Engine for Kubernetes",
		ServiceName:    "OKE",
		Features:       []string{"Free basic clusters", "Low egress pricing"},
		Considerations: []string{"Smaller third-party ecosystem"},
	},
}
