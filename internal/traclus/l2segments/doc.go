// Package l2segments owns Layer 2 (Segments) of the trajectory clustering
// model.
//
// Responsibilities: the directed line segment, the perpendicular, parallel
// and angle distances between segments, and the combined distance used for
// density queries. Distances are asymmetric: the reference segment projects
// the measured segment onto itself, so symmetric comparisons must go through
// Compare, which returns an OrderedPair.
// Key types: Segment, OrderedPair.
//
// Dependency rule: L2 may depend on L1 only.
package l2segments
