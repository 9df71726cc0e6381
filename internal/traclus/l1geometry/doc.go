// Package l1geometry owns Layer 1 (Geometry) of the trajectory clustering
// model.
//
// Responsibilities: the planar Point value, vector arithmetic, Euclidean
// distance, dot product, and point-to-line distance.
// Key types: Point.
//
// Dependency rule: L1 depends on nothing else in internal/traclus.
package l1geometry
