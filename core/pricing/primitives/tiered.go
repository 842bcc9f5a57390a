// Package primitives - Tiered pricing primitives
// Range tiering (sum across inclusive bands) and pack tiering (buy whole packs).
package primitives

import (
	"github.com/shopspring/decimal"

	"infra-tco/core/types"
)

// TieredCost maps totalQuantity through ordered inclusive bands.
// The first includedFree units cost nothing; each billable unit is charged
// at the price of the band it falls in.
func TieredCost(totalQuantity, includedFree int, tiers []types.Tier) decimal.Decimal {
	total := decimal.Zero
	for _, band := range TieredCostBreakdown(totalQuantity, includedFree, tiers) {
		total = total.Add(band.Cost)
	}
	return total
}

// TierBreakdown is the per-band split of a tiered cost
type TierBreakdown struct {
	Tier  types.Tier
	Units int
	Cost  decimal.Decimal
}

// TieredCostBreakdown returns the billed units and cost per band.
// Bands with no billable units are omitted.
func TieredCostBreakdown(totalQuantity, includedFree int, tiers []types.Tier) []TierBreakdown {
	if includedFree < 0 {
		includedFree = 0
	}
	if totalQuantity <= includedFree {
		return nil
	}

	firstBillable := includedFree + 1
	var out []TierBreakdown
	for _, tier := range types.SortedTiers(tiers) {
		if tier.Min > totalQuantity {
			break
		}
		if !tier.IsUnlimited() && tier.Max < firstBillable {
			continue
		}
		tierStart := max(tier.Min, firstBillable)
		tierEnd := totalQuantity
		if !tier.IsUnlimited() {
			tierEnd = min(tier.Max, totalQuantity)
		}
		if units := tierEnd - tierStart + 1; units > 0 {
			out = append(out, TierBreakdown{
				Tier:  tier,
				Units: units,
				Cost:  decimal.NewFromInt(int64(units)).Mul(tier.UnitPrice),
			})
		}
	}
	return out
}

// PacksNeeded returns how many fixed-size packs cover units
func PacksNeeded(units, packSize int) int {
	if units <= 0 || packSize <= 0 {
		return 0
	}
	return (units + packSize - 1) / packSize
}

// PackCost prices units sold only in whole packs
func PackCost(units, packSize int, packPrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(PacksNeeded(units, packSize))).Mul(packPrice)
}

// Additional returns the units above an included allowance (never negative)
func Additional(total, included int) int {
	if total <= included {
		return 0
	}
	return total - included
}
