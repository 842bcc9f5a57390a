package cost

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infra-tco/core/types"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func sampleInput() Input {
	return Input{
		Provider:    types.ProviderAWS,
		Region:      "us-east-1",
		PricingType: types.PricingOnDemand,
		Categories: map[types.CostCategory]decimal.Decimal{
			types.CategoryCompute: d(700),
			types.CategoryStorage: d(200),
			types.CategoryNetwork: d(33.33),
			types.CategoryLicense: d(66.67),
		},
		LineItems: map[types.CostCategory][]types.CostLineItem{
			types.CategoryCompute: {types.NewLineItem("Worker nodes", d(7), "node-month", d(100))},
		},
		Environments: []EnvironmentInput{
			{Environment: types.EnvProd, Nodes: 4, CPU: 32, RAMGB: 128},
			{Environment: types.EnvDev, Nodes: 2, CPU: 8, RAMGB: 32},
			{Environment: types.EnvTest, Nodes: 1, CPU: 4, RAMGB: 16},
		},
	}
}

func TestAggregatePercentageClosure(t *testing.T) {
	est := Aggregate(sampleInput())

	assert.Equal(t, "1000", est.MonthlyTotal.String())
	require.Len(t, est.Breakdown, 4)

	sumMonthly := decimal.Zero
	sumPct := decimal.Zero
	for _, b := range est.Breakdown {
		sumMonthly = sumMonthly.Add(b.Monthly)
		sumPct = sumPct.Add(b.Percentage)
	}
	assert.True(t, sumMonthly.Equal(est.MonthlyTotal))
	assert.InDelta(t, 100.0, sumPct.InexactFloat64(), 0.0001)
	assert.Equal(t, "70", est.Breakdown[types.CategoryCompute].Percentage.String())
	assert.Len(t, est.Breakdown[types.CategoryCompute].LineItems, 1)
}

func TestAggregateDerivedFields(t *testing.T) {
	est := Aggregate(sampleInput())

	assert.True(t, est.YearlyTotal().Equal(est.MonthlyTotal.Mul(d(12))))
	assert.True(t, est.ThreeYearTCO().Equal(est.YearlyTotal().Mul(d(3))))
	assert.Equal(t, "60000", est.FiveYearTCO().String())
	assert.NotEmpty(t, est.ID)
	assert.False(t, est.Timestamp.IsZero())
	assert.Equal(t, types.CurrencyUSD, est.Currency)
}

func TestAggregateEnvironmentSplitSumsToTotal(t *testing.T) {
	in := sampleInput()
	in.Environments[0].Direct = d(100)
	est := Aggregate(in)

	require.Len(t, est.EnvironmentCosts, 3)
	sum := decimal.Zero
	for _, e := range est.EnvironmentCosts {
		sum = sum.Add(e.Monthly)
	}
	assert.True(t, sum.Equal(est.MonthlyTotal), sum.String())

	// prod: 100 direct + 900 x 4/7
	prod := est.EnvironmentCosts[types.EnvProd]
	assert.InDelta(t, 614.2857, prod.Monthly.InexactFloat64(), 0.001)
	assert.InDelta(t, 153.5714, prod.CostPerNode().InexactFloat64(), 0.001)
	assert.Equal(t, 32, prod.CPU)
}

func TestAggregateZeroTotal(t *testing.T) {
	est := Aggregate(Input{
		Provider: types.ProviderOnPrem,
		Categories: map[types.CostCategory]decimal.Decimal{
			types.CategoryLicense: decimal.Zero,
		},
		Environments: []EnvironmentInput{{Environment: types.EnvDev}},
	})

	assert.True(t, est.MonthlyTotal.IsZero())
	assert.Empty(t, est.Breakdown)
	dev := est.EnvironmentCosts[types.EnvDev]
	require.NotNil(t, dev)
	assert.True(t, dev.Percentage.IsZero())
	assert.True(t, dev.CostPerNode().IsZero())
}

func TestAggregateMergesDuplicateEnvironments(t *testing.T) {
	in := sampleInput()
	in.Environments = append(in.Environments, EnvironmentInput{Environment: types.EnvProd, Nodes: 3, CPU: 24})
	est := Aggregate(in)

	prod := est.EnvironmentCosts[types.EnvProd]
	assert.Equal(t, 7, prod.Nodes)
	assert.Equal(t, 56, prod.CPU)
	assert.Equal(t, "70", prod.Percentage.Round(4).String())
}

func TestPercentage(t *testing.T) {
	assert.True(t, Percentage(d(5), decimal.Zero).IsZero())
	assert.Equal(t, "25", Percentage(d(1), d(4)).String())
}
