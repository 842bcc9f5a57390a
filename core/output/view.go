package output

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"infra-tco/core/lowcode/mendix"
	"infra-tco/core/lowcode/outsystems"
	"infra-tco/core/types"
)

// LineItemView is a rendered line item
type LineItemView struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

// CategoryView is a rendered cost category
type CategoryView struct {
	Category   types.CostCategory `json:"category"`
	Monthly    string             `json:"monthly"`
	Percentage string             `json:"percentage"`
	LineItems  []LineItemView     `json:"line_items,omitempty"`
}

// EnvironmentView is a rendered environment share
type EnvironmentView struct {
	Environment types.EnvironmentType `json:"environment"`
	Monthly     string                `json:"monthly"`
	Percentage  string                `json:"percentage"`
	CostPerNode string                `json:"cost_per_node"`
	Nodes       int                   `json:"nodes"`
	CPU         int                   `json:"cpu"`
	RAMGB       int                   `json:"ram_gb"`
	DiskGB      int                   `json:"disk_gb"`
}

// EstimateView is a CostEstimate with every amount rendered as text
type EstimateView struct {
	ID           string `json:"id"`
	Provider     string `json:"provider"`
	Distribution string `json:"distribution,omitempty"`
	Region       string `json:"region,omitempty"`
	PricingType  string `json:"pricing_type"`
	Currency     string `json:"currency"`

	MonthlyTotal string `json:"monthly_total"`
	YearlyTotal  string `json:"yearly_total"`
	ThreeYearTCO string `json:"three_year_tco"`
	FiveYearTCO  string `json:"five_year_tco"`

	Categories   []CategoryView    `json:"categories"`
	Environments []EnvironmentView `json:"environments,omitempty"`

	Notes           []string `json:"notes,omitempty"`
	Timestamp       string   `json:"timestamp"`
	PricingIncluded bool     `json:"pricing_included"`
}

// renderer formats amounts, hiding them all when pricing is excluded
type renderer struct {
	currency types.Currency
	include  bool
}

func (r renderer) money(d decimal.Decimal) string {
	if !r.include {
		return FormatCost(nil, r.currency)
	}
	return FormatCost(&d, r.currency)
}

// price keeps cents so sub-dollar rates stay readable
func (r renderer) price(d decimal.Decimal) string {
	if !r.include {
		return NotAvailable
	}
	return d.StringFixed(2)
}

func (r renderer) percent(d decimal.Decimal) string {
	if !r.include {
		return FormatPercent(nil)
	}
	return FormatPercent(&d)
}

func (r renderer) lines(items []types.CostLineItem) []LineItemView {
	out := make([]LineItemView, 0, len(items))
	for _, li := range items {
		out = append(out, LineItemView{
			Description: li.Description,
			Quantity:    li.Quantity.String(),
			Unit:        li.Unit,
			UnitPrice:   r.price(li.UnitPrice),
			Total:       r.money(li.Total),
		})
	}
	return out
}

var environmentOrder = map[types.EnvironmentType]int{
	types.EnvDev:   0,
	types.EnvTest:  1,
	types.EnvStage: 2,
	types.EnvProd:  3,
	types.EnvDR:    4,
}

// NewEstimateView renders est. With includePricing false every amount reads "N/A".
func NewEstimateView(est *types.CostEstimate, includePricing bool) *EstimateView {
	r := renderer{currency: est.Currency, include: includePricing}

	v := &EstimateView{
		ID:              est.ID,
		Provider:        est.Provider.String(),
		Distribution:    est.Distribution.String(),
		Region:          est.Region,
		PricingType:     string(est.PricingType),
		Currency:        est.Currency.String(),
		MonthlyTotal:    r.money(est.MonthlyTotal),
		YearlyTotal:     r.money(est.YearlyTotal()),
		ThreeYearTCO:    r.money(est.ThreeYearTCO()),
		FiveYearTCO:     r.money(est.FiveYearTCO()),
		Notes:           est.Notes,
		Timestamp:       est.Timestamp.Format(time.RFC3339),
		PricingIncluded: includePricing,
	}

	for _, c := range types.Categories {
		b, ok := est.Breakdown[c]
		if !ok {
			continue
		}
		v.Categories = append(v.Categories, CategoryView{
			Category:   c,
			Monthly:    r.money(b.Monthly),
			Percentage: r.percent(b.Percentage),
			LineItems:  r.lines(b.LineItems),
		})
	}

	envs := make([]*types.EnvironmentCost, 0, len(est.EnvironmentCosts))
	for _, e := range est.EnvironmentCosts {
		envs = append(envs, e)
	}
	sort.Slice(envs, func(i, j int) bool {
		oi, iok := environmentOrder[envs[i].Environment]
		oj, jok := environmentOrder[envs[j].Environment]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return envs[i].Environment < envs[j].Environment
	})
	for _, e := range envs {
		v.Environments = append(v.Environments, EnvironmentView{
			Environment: e.Environment,
			Monthly:     r.money(e.Monthly),
			Percentage:  r.percent(e.Percentage),
			CostPerNode: r.money(e.CostPerNode()),
			Nodes:       e.Nodes,
			CPU:         e.CPU,
			RAMGB:       e.RAMGB,
			DiskGB:      e.DiskGB,
		})
	}
	return v
}

// LicensingView is a rendered LicensingCost
type LicensingView struct {
	Distribution string `json:"distribution"`
	AnnualCost   string `json:"annual_cost"`
	MonthlyCost  string `json:"monthly_cost"`
	Basis        string `json:"basis"`
	HasLicense   bool   `json:"has_license"`
}

// NewLicensingView renders lc; the monthly figure is shown to the cent
func NewLicensingView(lc types.LicensingCost, includePricing bool) *LicensingView {
	r := renderer{currency: types.CurrencyUSD, include: includePricing}
	return &LicensingView{
		Distribution: lc.Distribution.String(),
		AnnualCost:   r.money(lc.AnnualCost),
		MonthlyCost:  r.price(lc.MonthlyCost),
		Basis:        lc.Basis,
		HasLicense:   lc.HasLicense,
	}
}

// SubscriptionView is a rendered low-code platform quote
type SubscriptionView struct {
	Platform       string         `json:"platform"`
	Subtotal       string         `json:"subtotal"`
	DiscountAmount string         `json:"discount_amount"`
	TotalPerYear   string         `json:"total_per_year"`
	TotalPerMonth  string         `json:"total_per_month"`
	ThreeYearTotal string         `json:"three_year_total"`
	LineItems      []LineItemView `json:"line_items"`
	Notes          []string       `json:"notes,omitempty"`
}

// NewMendixView renders a Mendix quote
func NewMendixView(res *mendix.Result, includePricing bool) *SubscriptionView {
	r := renderer{currency: types.CurrencyUSD, include: includePricing}
	return &SubscriptionView{
		Platform:       "mendix",
		Subtotal:       r.money(res.Subtotal),
		DiscountAmount: r.money(res.DiscountAmount),
		TotalPerYear:   r.money(res.TotalPerYear),
		TotalPerMonth:  r.money(res.TotalPerMonth),
		ThreeYearTotal: r.money(res.ThreeYearTotal),
		LineItems:      r.lines(res.LineItems),
		Notes:          res.Notes,
	}
}

// NewOutSystemsView renders an OutSystems quote
func NewOutSystemsView(res *outsystems.Result, includePricing bool) *SubscriptionView {
	r := renderer{currency: types.CurrencyUSD, include: includePricing}
	return &SubscriptionView{
		Platform:       "outsystems",
		Subtotal:       r.money(res.Subtotal),
		DiscountAmount: r.money(res.DiscountAmount),
		TotalPerYear:   r.money(res.TotalPerYear),
		TotalPerMonth:  r.money(res.TotalPerMonth),
		ThreeYearTotal: r.money(res.ThreeYearTotal),
		LineItems:      r.lines(res.LineItems),
		Notes:          res.Notes,
	}
}
