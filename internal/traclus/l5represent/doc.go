// Package l5represent owns Layer 5 (Representatives) of the trajectory
// clustering model.
//
// Responsibilities: synthesising one representative path per cluster by
// rotating member segments onto the cluster's average direction, sweeping
// across their sorted endpoints and averaging the crossings.
// Key types: Params.
//
// Dependency rule: L5 may depend on L1-L4.
package l5represent
