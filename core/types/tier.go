package types

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Unlimited marks an open-ended tier maximum
const Unlimited = -1

// Tier is an inclusive quantity band with a per-unit price.
// Max == Unlimited means the band has no upper bound.
type Tier struct {
	// Min is the first unit in the band (inclusive)
	Min int `json:"min"`

	// Max is the last unit in the band (inclusive), or Unlimited
	Max int `json:"max"`

	// UnitPrice is charged for every unit inside the band
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewTier builds a tier from a float price
func NewTier(min, max int, unitPrice float64) Tier {
	return Tier{Min: min, Max: max, UnitPrice: decimal.NewFromFloat(unitPrice)}
}

// IsUnlimited reports whether the band is open-ended
func (t Tier) IsUnlimited() bool {
	return t.Max == Unlimited
}

// Contains reports whether q falls inside the band
func (t Tier) Contains(q int) bool {
	return q >= t.Min && (t.IsUnlimited() || q <= t.Max)
}

// SortedTiers returns a copy of tiers ordered ascending by Min
func SortedTiers(tiers []Tier) []Tier {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Min < sorted[j].Min
	})
	return sorted
}

// ValidateTiers checks that bands are well-formed and do not overlap
func ValidateTiers(tiers []Tier) error {
	sorted := SortedTiers(tiers)
	for i, t := range sorted {
		if !t.IsUnlimited() && t.Max < t.Min {
			return fmt.Errorf("tier %d: max %d below min %d", i, t.Max, t.Min)
		}
		if t.UnitPrice.IsNegative() {
			return fmt.Errorf("tier %d: negative unit price", i)
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if prev.IsUnlimited() {
			return fmt.Errorf("tier %d: follows an unlimited tier", i)
		}
		if t.Min <= prev.Max {
			return fmt.Errorf("tier %d: min %d overlaps previous max %d", i, t.Min, prev.Max)
		}
	}
	return nil
}
