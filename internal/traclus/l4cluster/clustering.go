package l4cluster

import (
	"sort"

	"github.com/banshee-data/traclus/internal/monitoring"
	"github.com/banshee-data/traclus/internal/traclus/l2segments"
)

// Constants for clustering configuration
const (
	// Unassigned labels a segment that belongs to no cluster (noise).
	Unassigned = -1
	// DefaultEps is the default neighbourhood radius
	DefaultEps = 2.0
	// DefaultMinLines is the default minimum neighbourhood size
	DefaultMinLines = 5
	// DefaultMinTrajectories is the default minimum number of distinct
	// trajectories a kept cluster must span
	DefaultMinTrajectories = 2
)

// DefaultParams returns the default clustering parameters.
func DefaultParams() Params {
	return Params{
		Eps:             DefaultEps,
		MinLines:        DefaultMinLines,
		MinTrajectories: DefaultMinTrajectories,
	}
}

// Clusters maps a cluster id to its member segments in input order.
type Clusters map[int][]l2segments.Segment

// IDs returns the cluster ids in ascending order.
func (c Clusters) IDs() []int {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Size returns the total number of segments across all clusters.
func (c Clusters) Size() int {
	n := 0
	for _, segs := range c {
		n += len(segs)
	}
	return n
}

// Result is the outcome of clustering a pooled segment list.
type Result struct {
	Labels  []int    // Cluster id per input segment, Unassigned for noise
	Kept    Clusters // Clusters spanning at least MinTrajectories trajectories
	Removed Clusters // Clusters rejected for insufficient trajectory diversity
}

// Noise returns the indices of segments left unassigned.
func (r Result) Noise() []int {
	var idx []int
	for i, label := range r.Labels {
		if label == Unassigned {
			idx = append(idx, i)
		}
	}
	return idx
}

// Neighborhood returns the indices of all segments in segs within eps of seg
// under the combined distance, seg itself included when it is in segs.
// This is a linear scan.
func Neighborhood(seg l2segments.Segment, segs []l2segments.Segment, eps float64) []int {
	var neighbors []int
	for i, candidate := range segs {
		if l2segments.Compare(seg, candidate).Distance() <= eps {
			neighbors = append(neighbors, i)
		}
	}
	return neighbors
}

// Cluster groups segments by density expansion.
//
// Segments are visited in input order. An unassigned segment whose
// neighbourhood holds at least MinLines segments seeds a new cluster: the seed
// and every neighbour take the new id and the neighbours are queued. Each
// queued segment that is itself a core segment labels its still-unassigned
// neighbours and queues them. Seeds below the threshold stay noise unless a
// later expansion claims them.
//
// Once every segment is labelled, clusters spanning fewer than
// MinTrajectories distinct trajectory ids are moved to Result.Removed.
func Cluster(segments []l2segments.Segment, params Params) Result {
	n := len(segments)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = Unassigned
	}

	clusterID := 0
	for i := 0; i < n; i++ {
		if labels[i] != Unassigned {
			continue
		}

		neighbors := Neighborhood(segments[i], segments, params.Eps)
		if len(neighbors) < params.MinLines {
			continue
		}

		labels[i] = clusterID
		for _, idx := range neighbors {
			labels[idx] = clusterID
		}
		expandCluster(segments, labels, neighbors, clusterID, params)
		clusterID++
	}

	kept, removed := splitByTrajectories(segments, labels, clusterID, params.MinTrajectories)

	monitoring.Logf("[traclus] clustered %d segments: %d clusters kept (%d segments), %d removed (%d segments)",
		n, len(kept), kept.Size(), len(removed), removed.Size())

	return Result{Labels: labels, Kept: kept, Removed: removed}
}

// expandCluster runs the breadth-first core expansion. Each segment enters
// the queue at most once per cluster because it is labelled before being
// queued.
func expandCluster(segments []l2segments.Segment, labels []int, queue []int, clusterID int, params Params) {
	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		neighbors := Neighborhood(segments[idx], segments, params.Eps)
		if len(neighbors) < params.MinLines {
			continue // Border segment
		}
		for _, m := range neighbors {
			if labels[m] == Unassigned {
				labels[m] = clusterID
				queue = append(queue, m)
			}
		}
	}
}

// splitByTrajectories groups segments by label and separates clusters that
// span fewer than minTrajectories distinct trajectory ids.
func splitByTrajectories(segments []l2segments.Segment, labels []int, maxClusterID, minTrajectories int) (Clusters, Clusters) {
	grouped := make(Clusters, maxClusterID)
	for i, label := range labels {
		if label != Unassigned {
			grouped[label] = append(grouped[label], segments[i])
		}
	}

	kept := make(Clusters, len(grouped))
	removed := make(Clusters)
	for _, cid := range grouped.IDs() {
		members := grouped[cid]
		trajectories := distinctTrajectories(members)
		monitoring.Debugf("[traclus] cluster %d: %d segments from %d trajectories", cid, len(members), trajectories)

		if trajectories < minTrajectories {
			removed[cid] = members
			continue
		}
		kept[cid] = members
	}
	return kept, removed
}

func distinctTrajectories(segments []l2segments.Segment) int {
	seen := make(map[int]struct{}, len(segments))
	for _, s := range segments {
		seen[s.TrajectoryID] = struct{}{}
	}
	return len(seen)
}
