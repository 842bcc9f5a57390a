// Package catalog - Authoritative rate and tier tables
// Provider rate cards, region multipliers, distribution metadata and license rates.
// Tables are built once at package init and only handed out as copies.
package catalog

import (
	"sort"

	"infra-tco/core/types"
)

// RateCard is the offline default pricing of one cloud provider.
// Hourly and GB-month prices are USD in the provider's default region.
type RateCard struct {
	Provider      types.CloudProvider
	DisplayName   string
	DefaultRegion string
	Currency      types.Currency

	// Compute
	VCPUHour         float64
	GBRAMHour        float64
	InstanceTypes    map[string]float64
	ControlPlaneHour float64

	// Reservations reports whether reserved/spot purchasing discounts exist
	Reservations bool

	// Storage, per GB-month
	SSDGBMonth      float64
	HDDGBMonth      float64
	ObjectGBMonth   float64
	BackupGBMonth   float64
	RegistryGBMonth float64

	// Network
	EgressGB     float64
	LBHour       float64
	NATHour      float64
	VPNHour      float64
	PublicIPHour float64

	// Support surcharge percent by tier
	Support map[types.SupportTier]float64

	// Regions maps region codes to a price multiplier
	Regions map[string]float64
}

// Catalog is the authoritative rate card table. It has no mutators;
// catalogs are assembled with a Builder.
type Catalog struct {
	cards map[types.CloudProvider]*RateCard
}

// Builder collects rate cards for a Catalog
type Builder struct {
	cards map[types.CloudProvider]*RateCard
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{cards: make(map[types.CloudProvider]*RateCard)}
}

// Register adds a rate card, replacing any earlier card of the same provider
func (b *Builder) Register(card RateCard) {
	c := card.clone()
	b.cards[card.Provider] = &c
}

// Build freezes the registered cards into a Catalog. Later Register calls
// do not affect catalogs already built.
func (b *Builder) Build() *Catalog {
	cards := make(map[types.CloudProvider]*RateCard, len(b.cards))
	for p, card := range b.cards {
		c := card.clone()
		cards[p] = &c
	}
	return &Catalog{cards: cards}
}

// Get returns a copy of a provider's rate card
func (c *Catalog) Get(provider types.CloudProvider) (RateCard, bool) {
	card, ok := c.cards[provider]
	if !ok {
		return RateCard{}, false
	}
	return card.clone(), true
}

// Providers returns all providers with a rate card, sorted
func (c *Catalog) Providers() []types.CloudProvider {
	out := make([]types.CloudProvider, 0, len(c.cards))
	for p := range c.cards {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RegionMultiplier returns the multiplier for region and whether it is known
func (r RateCard) RegionMultiplier(region string) (float64, bool) {
	m, ok := r.Regions[region]
	if !ok {
		return 1, false
	}
	return m, true
}

// RegionCodes returns the card's regions, sorted
func (r RateCard) RegionCodes() []string {
	out := make([]string, 0, len(r.Regions))
	for code := range r.Regions {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func (r *RateCard) clone() RateCard {
	c := *r
	c.InstanceTypes = cloneMap(r.InstanceTypes)
	c.Support = cloneMap(r.Support)
	c.Regions = cloneMap(r.Regions)
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// standardSupport is the support ladder shared by the hyperscalers
func standardSupport() map[types.SupportTier]float64 {
	return map[types.SupportTier]float64{
		types.SupportNone:       0,
		types.SupportBasic:      0,
		types.SupportDeveloper:  3,
		types.SupportBusiness:   10,
		types.SupportEnterprise: 15,
	}
}

// communitySupport is used by providers without paid support plans
func communitySupport() map[types.SupportTier]float64 {
	return map[types.SupportTier]float64{
		types.SupportNone:  0,
		types.SupportBasic: 0,
	}
}

var defaultCatalog = buildDefault()

func buildDefault() *Catalog {
	b := NewBuilder()
	RegisterAWS(b)
	RegisterAzure(b)
	RegisterGCP(b)
	RegisterEnterpriseClouds(b)
	RegisterBoutiqueClouds(b)
	return b.Build()
}

// Default returns the built-in offline catalog
func Default() *Catalog {
	return defaultCatalog
}
