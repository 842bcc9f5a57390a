package alternatives

import (
	"go.uber.org/zap"

	"infra-tco/core/catalog"
	"infra-tco/core/types"
)

type generator func() []types.CloudAlternative

// Matcher maps a distribution to its managed cloud alternatives
type Matcher struct {
	generators map[types.Distribution]generator
	logger     *zap.Logger
}

// NewMatcher creates a matcher with the built-in generators
func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		generators: map[types.Distribution]generator{
			types.DistOpenShift: openShiftAlternatives,
			types.DistRancher:   rancherAlternatives,
			types.DistTanzu:     tanzuAlternatives,
			types.DistCharmed:   charmedAlternatives,
			types.DistRKE2:      rke2Alternatives,
			types.DistK3s:       withLightweight(types.DistK3s),
			types.DistMicroK8s:  withLightweight(types.DistMicroK8s),
		},
		logger: logger.Named("alternatives"),
	}
}

// Alternatives returns the offerings that can replace d in curated order.
// Cloud variants resolve to their base distribution. Distributions without a
// dedicated generator get the generic list tagged with d.
func (m *Matcher) Alternatives(d types.Distribution) []types.CloudAlternative {
	base := d
	if info, ok := catalog.LookupDistribution(d); ok {
		base = info.Base
	}
	if gen, ok := m.generators[base]; ok {
		return gen()
	}

	m.logger.Debug("no dedicated alternatives, using generic list", zap.String("distribution", string(d)))
	return Generic(d)
}

// Generic returns a fresh copy of the generic list tagged with source
func Generic(source types.Distribution) []types.CloudAlternative {
	out := make([]types.CloudAlternative, 0, len(generic))
	for _, alt := range generic {
		out = append(out, alt.WithSource(source))
	}
	return out
}

// withLightweight prepends small-cluster clouds to the generic list
func withLightweight(source types.Distribution) generator {
	return func() []types.CloudAlternative {
		var out []types.CloudAlternative
		for _, alt := range lightweightAlternatives() {
			out = append(out, alt.WithSource(source))
		}
		return append(out, Generic(source)...)
	}
}
