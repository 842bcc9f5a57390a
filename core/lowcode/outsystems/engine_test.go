package outsystems

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infra-tco/internal/errors"
)

func TestAdditionalAOPacks(t *testing.T) {
	res, err := NewEngine(nil).Calculate(Config{
		Edition:        EditionStandard,
		DeploymentType: DeploymentCloud,
		TotalAOs:       320,
	})
	require.NoError(t, err)

	assert.Equal(t, 170, res.AdditionalAOs)
	assert.Equal(t, 2, res.AOPacks)
	assert.Equal(t, "36000", res.AdditionalAOCost.String())
}

func TestAllowancesAreFree(t *testing.T) {
	tests := []struct {
		edition Edition
		aos     int
		users   int
	}{
		{EditionStandard, 150, 100},
		{EditionEnterprise, 450, 500},
	}

	for _, tt := range tests {
		res, err := NewEngine(nil).Calculate(Config{
			Edition:        tt.edition,
			DeploymentType: DeploymentCloud,
			TotalAOs:       tt.aos,
			InternalUsers:  tt.users,
		})
		require.NoError(t, err)
		assert.Zero(t, res.AOPacks, tt.edition)
		assert.Zero(t, res.UserPacks, tt.edition)
		assert.True(t, res.TotalPerYear.Equal(res.EditionCost), tt.edition)
	}
}

func TestUserAndSessionPacks(t *testing.T) {
	res, err := NewEngine(nil).Calculate(Config{
		Edition:          EditionStandard,
		DeploymentType:   DeploymentCloud,
		InternalUsers:    101,
		ExternalSessions: 25000,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.UserPacks)
	assert.Equal(t, "6000", res.AdditionalUserCost.String())
	assert.Equal(t, 3, res.SessionPacks)
	assert.Equal(t, "14400", res.ExternalUserCost.String())
}

func TestSupportAndDiscount(t *testing.T) {
	res, err := NewEngine(nil).Calculate(Config{
		Edition:         EditionStandard,
		DeploymentType:  DeploymentCloud,
		SupportLevel:    SupportPremium,
		TotalAOs:        320,
		DiscountPercent: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	// 36300 + 36000
	assert.Equal(t, "72300", res.LicenseTotal.String())
	assert.Equal(t, "10845", res.SupportCost.String())
	assert.Equal(t, "83145", res.Subtotal.String())
	assert.Equal(t, "8314.5", res.DiscountAmount.String())
	assert.Equal(t, "74830.5", res.TotalPerYear.String())
}

func TestSupportPercents(t *testing.T) {
	for level, want := range map[SupportLevel]string{
		SupportStandard: "0",
		SupportPremium:  "15",
		SupportElite:    "25",
		"":              "0",
	} {
		p, err := SupportPercent(level)
		require.NoError(t, err)
		assert.Equal(t, want, p.String(), level)
	}
}

func TestDeploymentTypes(t *testing.T) {
	cloud, err := NewEngine(nil).Calculate(Config{
		Edition:          EditionStandard,
		DeploymentType:   DeploymentCloud,
		Environments:     5,
		HighAvailability: true,
		DisasterRecovery: true,
	})
	require.NoError(t, err)
	// 2 extra environments + HA + DR
	assert.Equal(t, "48000", cloud.DeploymentCost.String())

	self, err := NewEngine(nil).Calculate(Config{
		Edition:         EditionEnterprise,
		DeploymentType:  DeploymentSelfManaged,
		Environments:    4,
		FrontEndServers: 6,
	})
	require.NoError(t, err)
	// 6000 + 4 x 4000 + 6 x 3000
	assert.Equal(t, "40000", self.DeploymentCost.String())
}

func TestInvalidConfig(t *testing.T) {
	e := NewEngine(nil)
	tests := []Config{
		{Edition: "community", DeploymentType: DeploymentCloud},
		{Edition: EditionStandard, DeploymentType: "edge"},
		{Edition: EditionStandard, DeploymentType: DeploymentCloud, SupportLevel: "gold"},
		{Edition: EditionStandard, DeploymentType: DeploymentCloud, TotalAOs: -1},
		{Edition: EditionStandard, DeploymentType: DeploymentCloud, DiscountPercent: decimal.NewFromInt(120)},
	}
	for _, cfg := range tests {
		_, err := e.Calculate(cfg)
		assert.True(t, errors.IsType(err, errors.TypeInvalidArgument), "%+v", cfg)
	}
}
