// Package catalog - Azure rate card
package catalog

import "infra-tco/core/types"

// RegisterAzure populates the catalog with Azure pay-as-you-go rates (eastus)
func RegisterAzure(c *Builder) {
	c.Register(RateCard{
		Provider:      types.ProviderAzure,
		DisplayName:   "Microsoft Azure",
		DefaultRegion: "eastus",
		Currency:      types.CurrencyUSD,

		VCPUHour:  0.035,
		GBRAMHour: 0.0047,
		InstanceTypes: map[string]float64{
			"Standard_D2s_v5":  0.096,
			"Standard_D4s_v5":  0.192,
			"Standard_D8s_v5":  0.384,
			"Standard_D16s_v5": 0.768,
			"Standard_F8s_v2":  0.338,
			"Standard_E4s_v5":  0.252,
			"Standard_E8s_v5":  0.504,
		},
		// AKS standard tier
		ControlPlaneHour: 0.10,
		Reservations:     true,

		SSDGBMonth:      0.12,
		HDDGBMonth:      0.045,
		ObjectGBMonth:   0.018,
		BackupGBMonth:   0.05,
		RegistryGBMonth: 0.10,

		EgressGB:     0.087,
		LBHour:       0.025,
		NATHour:      0.045,
		VPNHour:      0.04,
		PublicIPHour: 0.005,

		Support: standardSupport(),
		Regions: map[string]float64{
			"eastus":        1.0,
			"eastus2":       1.0,
			"westus2":       1.0,
			"centralus":     1.04,
			"canadacentral": 1.08,
			"northeurope":   1.06,
			"westeurope":    1.1,
			"uksouth":       1.1,
			"southeastasia": 1.14,
			"japaneast":     1.18,
			"australiaeast": 1.2,
			"brazilsouth":   1.4,
		},
	})
}
