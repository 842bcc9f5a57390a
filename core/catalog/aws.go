// Package catalog - AWS rate card
package catalog

import "infra-tco/core/types"

// RegisterAWS populates the catalog with AWS on-demand rates (us-east-1)
func RegisterAWS(c *Builder) {
	c.Register(RateCard{
		Provider:      types.ProviderAWS,
		DisplayName:   "Amazon Web Services",
		DefaultRegion: "us-east-1",
		Currency:      types.CurrencyUSD,

		VCPUHour:  0.0336,
		GBRAMHour: 0.0045,
		InstanceTypes: map[string]float64{
			"m5.large":   0.096,
			"m5.xlarge":  0.192,
			"m5.2xlarge": 0.384,
			"m5.4xlarge": 0.768,
			"c5.xlarge":  0.17,
			"c5.2xlarge": 0.34,
			"r5.xlarge":  0.252,
			"r5.2xlarge": 0.504,
		},
		// EKS standard support
		ControlPlaneHour: 0.10,
		Reservations:     true,

		SSDGBMonth:      0.08,
		HDDGBMonth:      0.045,
		ObjectGBMonth:   0.023,
		BackupGBMonth:   0.05,
		RegistryGBMonth: 0.10,

		EgressGB:     0.09,
		LBHour:       0.0225,
		NATHour:      0.045,
		VPNHour:      0.05,
		PublicIPHour: 0.005,

		Support: standardSupport(),
		Regions: map[string]float64{
			"us-east-1":      1.0,
			"us-east-2":      1.0,
			"us-west-2":      1.0,
			"us-west-1":      1.12,
			"ca-central-1":   1.06,
			"eu-west-1":      1.08,
			"eu-west-2":      1.12,
			"eu-central-1":   1.12,
			"eu-north-1":     1.04,
			"ap-southeast-1": 1.15,
			"ap-southeast-2": 1.18,
			"ap-northeast-1": 1.2,
			"ap-south-1":     1.05,
			"sa-east-1":      1.38,
		},
	})
}
