// Package catalog - GCP rate card
package catalog

import "infra-tco/core/types"

// RegisterGCP populates the catalog with GCP on-demand rates (us-central1)
func RegisterGCP(c *Builder) {
	c.Register(RateCard{
		Provider:      types.ProviderGCP,
		DisplayName:   "Google Cloud",
		DefaultRegion: "us-central1",
		Currency:      types.CurrencyUSD,

		// N2 custom machine rates
		VCPUHour:  0.031611,
		GBRAMHour: 0.004237,
		InstanceTypes: map[string]float64{
			"e2-standard-4":  0.134,
			"e2-standard-8":  0.268,
			"n2-standard-4":  0.194,
			"n2-standard-8":  0.388,
			"n2-standard-16": 0.777,
			"n2-highmem-4":   0.262,
		},
		ControlPlaneHour: 0.10,
		Reservations:     true,

		SSDGBMonth:      0.17,
		HDDGBMonth:      0.04,
		ObjectGBMonth:   0.02,
		BackupGBMonth:   0.05,
		RegistryGBMonth: 0.026,

		EgressGB:     0.12,
		LBHour:       0.025,
		NATHour:      0.045,
		VPNHour:      0.05,
		PublicIPHour: 0.005,

		Support: standardSupport(),
		Regions: map[string]float64{
			"us-central1":          1.0,
			"us-east1":             1.0,
			"us-west1":             1.0,
			"us-east4":             1.13,
			"europe-west1":         1.1,
			"europe-west2":         1.2,
			"europe-west3":         1.2,
			"europe-west4":         1.1,
			"asia-southeast1":      1.17,
			"asia-northeast1":      1.22,
			"australia-southeast1": 1.25,
			"southamerica-east1":   1.42,
		},
	})
}
