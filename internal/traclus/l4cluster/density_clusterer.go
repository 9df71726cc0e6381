package l4cluster

import "github.com/banshee-data/traclus/internal/traclus/l2segments"

// DensityClusterer implements SegmentClusterer with the density expansion in
// Cluster.
type DensityClusterer struct {
	params Params
}

// NewDensityClusterer creates a clusterer with the specified parameters.
// A non-positive minTrajectories falls back to DefaultMinTrajectories.
func NewDensityClusterer(eps float64, minLines, minTrajectories int) *DensityClusterer {
	return &DensityClusterer{
		params: normalize(Params{
			Eps:             eps,
			MinLines:        minLines,
			MinTrajectories: minTrajectories,
		}),
	}
}

func normalize(params Params) Params {
	if params.MinTrajectories <= 0 {
		params.MinTrajectories = DefaultMinTrajectories
	}
	return params
}

// NewDefaultDensityClusterer creates a clusterer with default parameters.
func NewDefaultDensityClusterer() *DensityClusterer {
	params := DefaultParams()
	return NewDensityClusterer(params.Eps, params.MinLines, params.MinTrajectories)
}

// Cluster groups segments with the current parameters.
func (c *DensityClusterer) Cluster(segments []l2segments.Segment) Result {
	return Cluster(segments, c.params)
}

// GetParams returns the current clustering parameters.
func (c *DensityClusterer) GetParams() Params {
	return c.params
}

// SetParams updates the clustering parameters. A non-positive
// MinTrajectories falls back to DefaultMinTrajectories.
func (c *DensityClusterer) SetParams(params Params) {
	c.params = normalize(params)
}

// Verify at compile time that *DensityClusterer implements SegmentClusterer.
var _ SegmentClusterer = (*DensityClusterer)(nil)
