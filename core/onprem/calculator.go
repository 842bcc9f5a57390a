package onprem

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

// Calculator computes on-prem costs from an OnPremPricing.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	pricing OnPremPricing
	logger  *zap.Logger
}

// NewCalculator creates a calculator, rejecting invalid pricing
func NewCalculator(p OnPremPricing, logger *zap.Logger) (*Calculator, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "invalid on-prem pricing", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{pricing: p, logger: logger.Named("onprem")}, nil
}

// Pricing returns the calculator's unit costs
func (c *Calculator) Pricing() OnPremPricing {
	return c.pricing
}

// Input is a complete on-prem deployment
type Input struct {
	Hardware HardwareInput

	// Nodes is the Kubernetes node or VM count operations staff manage
	Nodes int

	HasProductionEnvironment bool
}

// Result is the monthly on-prem cost split into its parts
type Result struct {
	Hardware   *HardwareResult
	Datacenter *DatacenterResult
	Labor      *LaborResult

	// Categories holds the monthly amount per cost category
	Categories map[types.CostCategory]decimal.Decimal

	// LineItems holds the monthly line items per cost category
	LineItems map[types.CostCategory][]types.CostLineItem

	// Monthly is hardware + datacenter + labor
	Monthly decimal.Decimal
}

// Calculate composes hardware, datacenter and labor costs
func (c *Calculator) Calculate(input Input) *Result {
	hw := c.CalculateHardware(input.Hardware)
	dc := c.CalculateDatacenter(hw.Servers)
	labor := c.CalculateLabor(LaborInput{
		Nodes:                    input.Nodes,
		HasProductionEnvironment: input.HasProductionEnvironment,
	})

	res := &Result{
		Hardware:   hw,
		Datacenter: dc,
		Labor:      labor,
		Categories: hw.CategoryMonthly(),
		LineItems:  hw.LineItems(),
	}
	res.Categories[types.CategoryDatacenter] = dc.Monthly
	res.LineItems[types.CategoryDatacenter] = dc.LineItems(c.pricing)
	res.Categories[types.CategoryLabor] = labor.Monthly
	res.LineItems[types.CategoryLabor] = labor.LineItems(c.pricing)

	res.Monthly = hw.Monthly.Add(dc.Monthly).Add(labor.Monthly)

	c.logger.Debug("on-prem cost calculated",
		zap.Int("servers", hw.Servers),
		zap.String("monthly_total", res.Monthly.StringFixed(2)),
	)
	return res
}
