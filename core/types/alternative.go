package types

// CloudAlternative is a managed cloud offering that can replace a self-managed distribution
type CloudAlternative struct {
	Provider    CloudProvider `json:"provider"`
	Name        string        `json:"name"`
	ServiceName string        `json:"service_name"`

	// DistributionSpecific is true when the offering runs the same distribution
	DistributionSpecific bool `json:"distribution_specific"`

	// SourceDistribution is set when a generic alternative was tagged for a distribution
	SourceDistribution Optional[Distribution] `json:"source_distribution"`

	Recommended    bool     `json:"recommended"`
	Features       []string `json:"features,omitempty"`
	Considerations []string `json:"considerations,omitempty"`
}

// Clone returns a deep copy
func (a CloudAlternative) Clone() CloudAlternative {
	a.Features = append([]string(nil), a.Features...)
	a.Considerations = append([]string(nil), a.Considerations...)
	return a
}

// WithSource returns a copy tagged with the distribution it replaces
func (a CloudAlternative) WithSource(d Distribution) CloudAlternative {
	c := a.Clone()
	c.SourceDistribution = Some(d)
	return c
}
