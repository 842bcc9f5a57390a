// Package types - Cost estimate types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostLineItem is a single billable line
type CostLineItem struct {
	// Description is a human-readable label
	Description string `json:"description"`

	// Quantity is the billed quantity
	Quantity decimal.Decimal `json:"quantity"`

	// Unit is the billing unit (e.g. "node-month", "GB-month")
	Unit string `json:"unit"`

	// UnitPrice is the price of one unit
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Total is Quantity * UnitPrice
	Total decimal.Decimal `json:"total"`
}

// NewLineItem builds a line item with Total = quantity * unitPrice
func NewLineItem(description string, quantity decimal.Decimal, unit string, unitPrice decimal.Decimal) CostLineItem {
	return CostLineItem{
		Description: description,
		Quantity:    quantity,
		Unit:        unit,
		UnitPrice:   unitPrice,
		Total:       quantity.Mul(unitPrice),
	}
}

// CostBreakdown is one category of an estimate
type CostBreakdown struct {
	// Category is the cost category
	Category CostCategory `json:"category"`

	// Monthly is the monthly amount for the category
	Monthly decimal.Decimal `json:"monthly"`

	// Percentage is Monthly as a percentage of the estimate total
	Percentage decimal.Decimal `json:"percentage"`

	// LineItems are the lines that make up Monthly
	LineItems []CostLineItem `json:"line_items,omitempty"`
}

// EnvironmentCost is the share of an estimate attributed to one environment
type EnvironmentCost struct {
	Environment EnvironmentType `json:"environment"`
	Monthly     decimal.Decimal `json:"monthly"`
	Percentage  decimal.Decimal `json:"percentage"`
	Nodes       int             `json:"nodes"`
	CPU         int             `json:"cpu"`
	RAMGB       int             `json:"ram_gb"`
	DiskGB      int             `json:"disk_gb"`
}

// CostPerNode returns Monthly / Nodes, or zero when there are no nodes
func (e *EnvironmentCost) CostPerNode() decimal.Decimal {
	if e.Nodes <= 0 {
		return decimal.Zero
	}
	return e.Monthly.Div(decimal.NewFromInt(int64(e.Nodes)))
}

// CostEstimate is the itemized result of an estimation.
// MonthlyTotal is the source of truth; yearly and TCO figures are derived.
type CostEstimate struct {
	// ID uniquely identifies this estimate
	ID string `json:"id"`

	// Provider is where the deployment runs
	Provider CloudProvider `json:"provider"`

	// Distribution is the Kubernetes distribution, when applicable
	Distribution Distribution `json:"distribution,omitempty"`

	// Region is the pricing region
	Region string `json:"region"`

	// PricingType is the purchasing model
	PricingType PricingType `json:"pricing_type"`

	// Currency is the estimate currency
	Currency Currency `json:"currency"`

	// MonthlyTotal is the total monthly cost
	MonthlyTotal decimal.Decimal `json:"monthly_total"`

	// Breakdown maps categories to their costs
	Breakdown map[CostCategory]*CostBreakdown `json:"breakdown"`

	// EnvironmentCosts maps environments to their share of the total
	EnvironmentCosts map[EnvironmentType]*EnvironmentCost `json:"environment_costs,omitempty"`

	// Notes carries assumptions and warnings
	Notes []string `json:"notes,omitempty"`

	// Timestamp is when the estimate was produced
	Timestamp time.Time `json:"timestamp"`
}

// YearlyTotal is MonthlyTotal * 12
func (e *CostEstimate) YearlyTotal() decimal.Decimal {
	return e.MonthlyTotal.Mul(decimal.NewFromInt(12))
}

// TCO is the total cost of ownership over years
func (e *CostEstimate) TCO(years int) decimal.Decimal {
	return e.YearlyTotal().Mul(decimal.NewFromInt(int64(years)))
}

// ThreeYearTCO is MonthlyTotal * 36
func (e *CostEstimate) ThreeYearTCO() decimal.Decimal {
	return e.TCO(3)
}

// FiveYearTCO is MonthlyTotal * 60
func (e *CostEstimate) FiveYearTCO() decimal.Decimal {
	return e.TCO(5)
}

// CategoryMonthly returns the monthly amount for category (zero when absent)
func (e *CostEstimate) CategoryMonthly(category CostCategory) decimal.Decimal {
	if b, ok := e.Breakdown[category]; ok && b != nil {
		return b.Monthly
	}
	return decimal.Zero
}

// AddNote appends a note to the estimate
func (e *CostEstimate) AddNote(note string) {
	e.Notes = append(e.Notes, note)
}
