// Package pipeline runs the full trajectory clustering flow.
//
// It partitions every input trajectory (L3), pools the segments, clusters
// them (L4) and synthesises one representative path per kept cluster (L5).
// This package is the composition root: it imports the layer packages and
// internal/config, but none of those packages import pipeline/.
package pipeline
