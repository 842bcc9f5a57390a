// Package catalog - Boutique cloud rate cards
// Flat-priced developer clouds: free control planes, cheap egress, no reservations.
package catalog

import "infra-tco/core/types"

type boutiqueRates struct {
	provider      types.CloudProvider
	name          string
	defaultRegion string
	vcpu, ram     float64
	instances     map[string]float64
	controlPlane  float64
	ssd, object   float64
	egress, lb    float64
	publicIP      float64
	regions       []string
}

// RegisterBoutiqueClouds populates the catalog with the boutique providers
func RegisterBoutiqueClouds(c *Builder) {
	for _, b := range boutiqueTable {
		regions := make(map[string]float64, len(b.regions))
		for _, r := range b.regions {
			regions[r] = 1.0
		}
		c.Register(RateCard{
			Provider:         b.provider,
			DisplayName:      b.name,
			DefaultRegion:    b.defaultRegion,
			Currency:         types.CurrencyUSD,
			VCPUHour:         b.vcpu,
			GBRAMHour:        b.ram,
			InstanceTypes:    cloneMap(b.instances),
			ControlPlaneHour: b.controlPlane,
			SSDGBMonth:       b.ssd,
			// Block storage is SSD-only on these clouds
			HDDGBMonth:      b.ssd,
			ObjectGBMonth:   b.object,
			BackupGBMonth:   b.object,
			RegistryGBMonth: b.object,
			EgressGB:        b.egress,
			LBHour:          b.lb,
			PublicIPHour:    b.publicIP,
			Support:         communitySupport(),
			Regions:         regions,
		})
	}
}

var boutiqueTable = []boutiqueRates{
	{
		provider:  types.ProviderDigitalOcean, name: "DigitalOcean", defaultRegion: "nyc1",
		vcpu:      0.0125, ram: 0.0045,
		instances: map[string]float64{"s-4vcpu-8gb": 0.0714, "s-8vcpu-16gb": 0.1429, "g-4vcpu-16gb": 0.1875},
		ssd:       0.10, object: 0.02, egress: 0.01, lb: 0.01644, publicIP: 0.006,
		regions:   []string{"nyc1", "nyc3", "sfo3", "tor1", "ams3", "fra1", "lon1", "sgp1", "blr1", "syd1"},
	},
	{
		provider:  types.ProviderLinode, name: "Akamai Linode", defaultRegion: "us-east",
		vcpu:      0.012, ram: 0.0044,
		instances: map[string]float64{"g6-standard-4": 0.072, "g6-standard-6": 0.144, "g6-dedicated-4": 0.108},
		ssd:       0.10, object: 0.02, egress: 0.005, lb: 0.0137, publicIP: 0.003,
		regions:   []string{"us-east", "us-central", "us-west", "eu-west", "eu-central", "ap-south", "ap-northeast"},
	},
	{
		provider:  types.ProviderVultr, name: "Vultr", defaultRegion: "ewr",
		vcpu:      0.012, ram: 0.0045,
		instances: map[string]float64{"vc2-4c-8gb": 0.06, "vc2-6c-16gb": 0.119, "voc-g-4c-16gb": 0.179},
		ssd:       0.10, object: 0.02, egress: 0.01, lb: 0.0137, publicIP: 0.004,
		regions:   []string{"ewr", "ord", "dfw", "lax", "ams", "fra", "lhr", "nrt", "sgp"},
	},
	{
		provider:  types.ProviderHetzner, name: "Hetzner Cloud", defaultRegion: "fsn1",
		vcpu:      0.0025, ram: 0.001,
		instances: map[string]float64{"cpx31": 0.0216, "cpx41": 0.0411, "ccx33": 0.0777},
		ssd:       0.0476, object: 0.0059, egress: 0.0012, lb: 0.0082, publicIP: 0.00082,
		regions:   []string{"fsn1", "nbg1", "hel1", "ash", "hil", "sin"},
	},
	{
		provider:  types.ProviderOVH, name: "OVHcloud", defaultRegion: "GRA",
		vcpu:      0.010, ram: 0.0035,
		instances: map[string]float64{"b3-8": 0.0547, "b3-16": 0.1094, "c3-8": 0.0821},
		ssd:       0.088, object: 0.011, egress: 0, lb: 0.0137, publicIP: 0.0027,
		regions:   []string{"GRA", "SBG", "RBX", "BHS", "WAW", "UK", "DE"},
	},
	{
		provider:  types.ProviderScaleway, name: "Scaleway", defaultRegion: "fr-par",
		vcpu:      0.013, ram: 0.0035,
		instances: map[string]float64{"PRO2-XS": 0.0547, "PRO2-S": 0.1095, "POP2-4C-16G": 0.1126},
		ssd:       0.088, object: 0.0146, egress: 0.01, lb: 0.0137, publicIP: 0.004,
		regions:   []string{"fr-par", "nl-ams", "pl-waw"},
	},
	{
		provider:  types.ProviderCivo, name: "Civo", defaultRegion: "NYC1",
		vcpu:      0.011, ram: 0.0048,
		instances: map[string]float64{"g4s.kube.medium": 0.0548, "g4s.kube.large": 0.1096, "g4p.kube.medium": 0.1178},
		ssd:       0.10, object: 0.02, egress: 0, lb: 0.0137, publicIP: 0,
		regions:   []string{"NYC1", "PHX1", "LON1", "FRA1"},
	},
	{
		provider:  types.ProviderExoscale, name: "Exoscale", defaultRegion: "ch-gva-2",
		vcpu:      0.015, ram: 0.006,
		instances: map[string]float64{"standard.medium": 0.0452, "standard.large": 0.0904, "standard.extra-large": 0.1808},
		ssd:       0.11, object: 0.02, egress: 0.02, lb: 0.027, publicIP: 0.0055,
		regions:   []string{"ch-gva-2", "ch-dk-2", "de-fra-1", "de-muc-1", "at-vie-1", "at-vie-2", "bg-sof-1"},
	},
}
