package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infra-tco/core/engine"
	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

func onPremEstimate(t *testing.T) *types.CostEstimate {
	t.Helper()
	e, err := engine.NewEstimator()
	require.NoError(t, err)
	est, err := e.Estimate(engine.DeploymentConfig{
		Distribution: types.DistRancher,
		Environments: []engine.EnvironmentSpec{
			{Environment: types.EnvProd, Nodes: 6, CPU: 8, RAMGB: 32, DiskGB: 100},
			{Environment: types.EnvDev, Nodes: 3, CPU: 4, RAMGB: 16},
		},
	})
	require.NoError(t, err)
	return est
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		amount   *decimal.Decimal
		currency types.Currency
		want     string
	}{
		{nil, types.CurrencyUSD, "N/A"},
		{ptr(decimal.Zero), types.CurrencyUSD, "$0"},
		{ptr(decimal.NewFromFloat(4166.67)), types.CurrencyUSD, "$4,167"},
		{ptr(decimal.NewFromFloat(1234567.4)), types.CurrencyUSD, "$1,234,567"},
		{ptr(decimal.NewFromFloat(-950.5)), types.CurrencyUSD, "-$951"},
		{ptr(decimal.NewFromInt(30024)), types.CurrencyGBP, "£30,024"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCost(tt.amount, tt.currency))
	}

	eur := FormatCost(ptr(decimal.NewFromInt(1500)), types.CurrencyEUR)
	assert.True(t, strings.HasSuffix(eur, " €"), eur)
}

func TestHiddenPricingRendersNotAvailable(t *testing.T) {
	est := onPremEstimate(t)
	require.True(t, est.MonthlyTotal.IsPositive())

	v := NewEstimateView(est, false)
	assert.False(t, v.PricingIncluded)
	for _, s := range []string{v.MonthlyTotal, v.YearlyTotal, v.ThreeYearTCO, v.FiveYearTCO} {
		assert.Equal(t, NotAvailable, s)
	}
	require.NotEmpty(t, v.Categories)
	for _, c := range v.Categories {
		assert.Equal(t, NotAvailable, c.Monthly)
		assert.Equal(t, NotAvailable, c.Percentage)
		for _, li := range c.LineItems {
			assert.Equal(t, NotAvailable, li.Total)
			assert.Equal(t, NotAvailable, li.UnitPrice)
		}
	}
	for _, e := range v.Environments {
		assert.Equal(t, NotAvailable, e.Monthly)
		assert.Equal(t, NotAvailable, e.CostPerNode)
	}

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, v, true))
	assert.Contains(t, buf.String(), "TOTAL MONTHLY")
	assert.Contains(t, buf.String(), NotAvailable)
}

func TestEstimateViewOrdering(t *testing.T) {
	est := onPremEstimate(t)
	v := NewEstimateView(est, true)

	assert.Equal(t, types.CategoryCompute, v.Categories[0].Category)
	require.Len(t, v.Environments, 2)
	assert.Equal(t, types.EnvDev, v.Environments[0].Environment)
	assert.Equal(t, types.EnvProd, v.Environments[1].Environment)
	assert.True(t, strings.HasPrefix(v.MonthlyTotal, "$"))
}

func TestRenderers(t *testing.T) {
	v := NewEstimateView(onPremEstimate(t), true)

	var table bytes.Buffer
	f, err := ForFormat(FormatCLI, true)
	require.NoError(t, err)
	require.NoError(t, f.Render(&table, v))
	out := table.String()
	assert.Contains(t, out, "TOTAL MONTHLY")
	assert.Contains(t, out, "Compute (")
	assert.Contains(t, out, "ONPREM · rancher")

	var js bytes.Buffer
	f, err = ForFormat(FormatJSON, false)
	require.NoError(t, err)
	require.NoError(t, f.Render(&js, v))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, v.MonthlyTotal, decoded["monthly_total"])

	_, err = ForFormat("pdf", false)
	assert.True(t, errors.IsType(err, errors.TypeInvalidArgument))
}

func TestLicensingView(t *testing.T) {
	lc := types.NewLicensingCost(types.DistOpenShift, decimal.NewFromInt(50000), "20 nodes", true)

	shown := NewLicensingView(lc, true)
	assert.Equal(t, "$50,000", shown.AnnualCost)
	assert.Equal(t, "4166.67", shown.MonthlyCost)

	hidden := NewLicensingView(lc, false)
	assert.Equal(t, NotAvailable, hidden.AnnualCost)
	assert.Equal(t, NotAvailable, hidden.MonthlyCost)
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestRenderSubscriptionAndLicensingTables(t *testing.T) {
	v := &SubscriptionView{
		Platform:       "mendix",
		Subtotal:       "$10,000",
		DiscountAmount: "$1,000",
		TotalPerYear:   "$9,000",
		TotalPerMonth:  "$750",
		ThreeYearTotal: "$27,000",
		LineItems:      []LineItemView{{Description: "Internal users", Quantity: "100", Unit: "user-year", Total: "$10,000"}},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderSubscriptionTable(&buf, v, true))
	assert.Contains(t, buf.String(), "MENDIX · annual subscription")
	assert.Contains(t, buf.String(), "Internal users (100 user-year)")
	assert.Contains(t, buf.String(), "$27,000")

	buf.Reset()
	lc := types.NewLicensingCost(types.DistRancher, decimal.NewFromInt(12000), "12 nodes x $1000", true)
	require.NoError(t, RenderLicensingTable(&buf, NewLicensingView(lc, false)))
	assert.Contains(t, buf.String(), "LICENSE · rancher")
	assert.Contains(t, buf.String(), NotAvailable)
}

func TestRenderPricingTable(t *testing.T) {
	m := &types.PricingModel{
		Provider:    types.ProviderAWS,
		Region:      "us-east-1",
		Currency:    types.CurrencyUSD,
		PricingType: types.PricingOnDemand,
		Source:      "default",
		Compute: types.ComputePricing{
			PerVCPUHour:   decimal.NewFromFloat(0.0336),
			InstanceTypes: map[string]decimal.Decimal{"m5.large": decimal.NewFromFloat(0.096)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderPricingTable(&buf, m, true))
	assert.Contains(t, buf.String(), "0.0336")
	assert.Contains(t, buf.String(), "m5.large per hour")

	buf.Reset()
	require.NoError(t, RenderPricingTable(&buf, m, false))
	assert.NotContains(t, buf.String(), "0.0336")
}

func TestRenderAlternatives(t *testing.T) {
	alts := []types.CloudAlternative{
		{Provider: types.ProviderAWS, Name: "Amazon EKS", ServiceName: "EKS", Recommended: true, Features: []string{"Managed control plane"}},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderAlternatives(&buf, types.DistK3s, alts))
	assert.Contains(t, buf.String(), " 1. EKS · Amazon EKS [aws] (recommended)")
	assert.Contains(t, buf.String(), "+ Managed control plane")
}
