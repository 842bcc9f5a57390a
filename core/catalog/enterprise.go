// Package catalog - OCI, IBM Cloud and Alibaba Cloud rate cards
package catalog

import "infra-tco/core/types"

// RegisterEnterpriseClouds populates the catalog with the second-tier hyperscalers
func RegisterEnterpriseClouds(c *Builder) {
	// OCI prices per OCPU (2 vCPU) and is uniform across commercial regions
	c.Register(RateCard{
		Provider:      types.ProviderOCI,
		DisplayName:   "Oracle Cloud Infrastructure",
		DefaultRegion: "us-ashburn-1",
		Currency:      types.CurrencyUSD,

		VCPUHour:  0.0125,
		GBRAMHour: 0.0015,
		InstanceTypes: map[string]float64{
			"VM.Standard.E4.Flex.4": 0.124,
			"VM.Standard.E4.Flex.8": 0.248,
			"VM.Standard3.Flex.4":   0.152,
		},
		// OKE basic clusters carry no control plane fee
		ControlPlaneHour: 0,
		Reservations:     false,

		SSDGBMonth:      0.0425,
		HDDGBMonth:      0.0255,
		ObjectGBMonth:   0.0255,
		BackupGBMonth:   0.0255,
		RegistryGBMonth: 0.0255,

		EgressGB:     0.0085,
		LBHour:       0.0113,
		NATHour:      0,
		VPNHour:      0,
		PublicIPHour: 0,

		Support: communitySupport(),
		Regions: map[string]float64{
			"us-ashburn-1":   1.0,
			"us-phoenix-1":   1.0,
			"ca-toronto-1":   1.0,
			"eu-frankfurt-1": 1.0,
			"uk-london-1":    1.0,
			"ap-tokyo-1":     1.0,
			"ap-sydney-1":    1.0,
		},
	})

	c.Register(RateCard{
		Provider:      types.ProviderIBM,
		DisplayName:   "IBM Cloud",
		DefaultRegion: "us-south",
		Currency:      types.CurrencyUSD,

		VCPUHour:  0.04,
		GBRAMHour: 0.005,
		InstanceTypes: map[string]float64{
			"bx2.4x16":  0.19,
			"bx2.8x32":  0.38,
			"bx2.16x64": 0.76,
			"mx2.4x32":  0.25,
		},
		ControlPlaneHour: 0,
		Reservations:     true,

		SSDGBMonth:      0.10,
		HDDGBMonth:      0.05,
		ObjectGBMonth:   0.022,
		BackupGBMonth:   0.05,
		RegistryGBMonth: 0.01,

		EgressGB:     0.09,
		LBHour:       0.025,
		NATHour:      0.045,
		VPNHour:      0.05,
		PublicIPHour: 0.005,

		Support: standardSupport(),
		Regions: map[string]float64{
			"us-south": 1.0,
			"us-east":  1.0,
			"ca-tor":   1.05,
			"eu-de":    1.1,
			"eu-gb":    1.1,
			"jp-tok":   1.15,
			"au-syd":   1.18,
		},
	})

	c.Register(RateCard{
		Provider:      types.ProviderAlibaba,
		DisplayName:   "Alibaba Cloud",
		DefaultRegion: "ap-southeast-1",
		Currency:      types.CurrencyUSD,

		VCPUHour:  0.028,
		GBRAMHour: 0.004,
		InstanceTypes: map[string]float64{
			"ecs.g7.xlarge":  0.166,
			"ecs.g7.2xlarge": 0.332,
			"ecs.c7.2xlarge": 0.28,
		},
		// ACK Pro cluster management fee
		ControlPlaneHour: 0.09,
		Reservations:     true,

		SSDGBMonth:      0.07,
		HDDGBMonth:      0.03,
		ObjectGBMonth:   0.017,
		BackupGBMonth:   0.03,
		RegistryGBMonth: 0.017,

		EgressGB:     0.074,
		LBHour:       0.02,
		NATHour:      0.045,
		VPNHour:      0.04,
		PublicIPHour: 0.004,

		Support: standardSupport(),
		Regions: map[string]float64{
			"ap-southeast-1": 1.0,
			"cn-hangzhou":    0.92,
			"cn-shanghai":    0.92,
			"us-west-1":      1.05,
			"eu-central-1":   1.12,
			"ap-northeast-1": 1.15,
		},
	})
}
