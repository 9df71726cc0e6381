// Package l3partition owns Layer 3 (Partitioning) of the trajectory
// clustering model.
//
// Responsibilities: cutting one trajectory into an ordered, gap-free list of
// segments at its characteristic points, either greedily by minimum
// description length (MDL) or by Ramer-Douglas-Peucker simplification.
// Key types: Algorithm, CostMode.
//
// Dependency rule: L3 may depend on L1-L2, but never on L4+.
package l3partition
