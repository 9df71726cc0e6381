// Package l4cluster owns Layer 4 (Clustering) of the trajectory clustering
// model.
//
// Responsibilities: density-based grouping of segments pooled from many
// trajectories, using the combined segment distance as the neighbourhood
// predicate, and rejection of clusters not supported by enough distinct
// trajectories.
// Key types: Params, Result, Clusters, DensityClusterer.
//
// Dependency rule: L4 may depend on L1-L2, but never on L3 or L5.
// Cluster membership lives in Result.Labels; segments are never mutated.
package l4cluster
