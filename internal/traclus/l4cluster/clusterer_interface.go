package l4cluster

import "github.com/banshee-data/traclus/internal/traclus/l2segments"

// SegmentClusterer abstracts the segment clustering implementation so the
// pipeline can be exercised with alternative strategies in tests.
type SegmentClusterer interface {
	// Cluster groups segments. Labels in the result are indexed like the
	// input; the output is deterministic for a fixed input order.
	Cluster(segments []l2segments.Segment) Result

	// GetParams returns the current clustering parameters.
	GetParams() Params

	// SetParams updates the clustering parameters.
	SetParams(params Params)
}

// Params holds the density clustering parameters.
type Params struct {
	Eps             float64 // Neighbourhood radius under the combined segment distance
	MinLines        int     // Minimum neighbourhood size (self included) for a core segment
	MinTrajectories int     // Minimum distinct trajectories for a cluster to be kept
}
