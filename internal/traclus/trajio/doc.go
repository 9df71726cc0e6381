// Package trajio loads trajectories and writes clustering results.
//
// Inputs are CSV rows of traj_id,x,y or GeoJSON LineString features.
// Results are written as a JSON summary (with an encoded polyline per
// representative path) or as a GeoJSON FeatureCollection.
package trajio
