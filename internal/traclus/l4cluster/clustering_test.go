package l4cluster

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/traclus/internal/testutil"
	"github.com/banshee-data/traclus/internal/traclus/l1geometry"
	"github.com/banshee-data/traclus/internal/traclus/l2segments"
	"github.com/banshee-data/traclus/internal/traclus/l3partition"
)

func seg(x1, y1, x2, y2 float64, trajID int) l2segments.Segment {
	return l2segments.New(l1geometry.NewPoint(x1, y1), l1geometry.NewPoint(x2, y2), trajID)
}

// twoGroups returns three near-identical horizontal segments from three
// trajectories, three from a single trajectory far above them, and one
// isolated vertical segment.
func twoGroups() []l2segments.Segment {
	return []l2segments.Segment{
		seg(0, 0, 10, 0, 1),
		seg(0, 0.2, 10, 0.2, 2),
		seg(0, 0.4, 10, 0.4, 3),
		seg(0, 100, 10, 100, 4),
		seg(0, 100.2, 10, 100.2, 4),
		seg(0, 100.4, 10, 100.4, 4),
		seg(50, 50, 50, 60, 5),
	}
}

// =============================================================================
// Tests: Neighborhood
// =============================================================================

func TestNeighborhood_IncludesSelf(t *testing.T) {
	segs := twoGroups()
	for i, s := range segs {
		assert.Contains(t, Neighborhood(s, segs, 0), i)
	}
}

func TestNeighborhood_Radius(t *testing.T) {
	segs := twoGroups()
	assert.Equal(t, []int{0, 1, 2}, Neighborhood(segs[0], segs, 1.0))
	assert.Equal(t, []int{0, 1}, Neighborhood(segs[0], segs, 0.25))
	assert.Equal(t, []int{6}, Neighborhood(segs[6], segs, 1.0))
}

// =============================================================================
// Tests: Cluster
// =============================================================================

func TestCluster_ParallelSegmentsFromDifferentTrajectories(t *testing.T) {
	segs := []l2segments.Segment{
		seg(0, 0, 1, 0, 1),
		seg(0, 0.1, 1, 0.1, 2),
	}
	result := Cluster(segs, Params{Eps: 1.0, MinLines: 1, MinTrajectories: 2})

	assert.Equal(t, []int{0, 0}, result.Labels)
	require.Len(t, result.Kept, 1)
	assert.Equal(t, segs, result.Kept[0])
	assert.Empty(t, result.Removed)
}

func TestCluster_KeepsRemovesAndLeavesNoise(t *testing.T) {
	segs := twoGroups()
	result := Cluster(segs, Params{Eps: 1.0, MinLines: 3, MinTrajectories: 2})

	assert.Equal(t, []int{0, 0, 0, 1, 1, 1, Unassigned}, result.Labels)
	assert.Equal(t, []int{0}, result.Kept.IDs())
	assert.Equal(t, []int{1}, result.Removed.IDs())
	assert.Equal(t, segs[:3], result.Kept[0])
	assert.Equal(t, segs[3:6], result.Removed[1])
	assert.Equal(t, []int{6}, result.Noise())
}

func TestCluster_SingleTrajectoryClusterIsRemoved(t *testing.T) {
	segs := []l2segments.Segment{
		seg(0, 0, 10, 0, 9),
		seg(1, 0.5, 9, 0.5, 9),
		seg(0, 1, 10, 1, 9),
	}
	result := Cluster(segs, Params{Eps: 5, MinLines: 2, MinTrajectories: 2})

	assert.Empty(t, result.Kept)
	require.Len(t, result.Removed, 1)
	assert.Len(t, result.Removed[0], 3)
}

func TestCluster_MinTrajectoriesOneKeepsEverything(t *testing.T) {
	segs := twoGroups()
	result := Cluster(segs, Params{Eps: 1.0, MinLines: 3, MinTrajectories: 1})
	assert.Len(t, result.Kept, 2)
	assert.Empty(t, result.Removed)
}

func TestCluster_BelowMinLinesIsNoise(t *testing.T) {
	segs := twoGroups()
	result := Cluster(segs, Params{Eps: 1.0, MinLines: 4, MinTrajectories: 2})
	for i, label := range result.Labels {
		assert.Equal(t, Unassigned, label, "segment %d", i)
	}
	assert.Empty(t, result.Kept)
	assert.Empty(t, result.Removed)
}

func TestCluster_ExpansionChainsThroughCoreSegments(t *testing.T) {
	// A ladder of parallel segments 0.5 apart: each only reaches its direct
	// neighbours, so the cluster grows through expansion rather than the seed.
	var segs []l2segments.Segment
	for i := 0; i < 6; i++ {
		y := 0.5 * float64(i)
		segs = append(segs, seg(0, y, 10, y, i))
	}
	result := Cluster(segs, Params{Eps: 0.6, MinLines: 2, MinTrajectories: 2})

	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, result.Labels)
	assert.Len(t, result.Kept[0], 6)
}

func TestCluster_LaterSeedRelabelsBorderSegments(t *testing.T) {
	// Parallel segments from distinct trajectories, so the distance between
	// two of them is their vertical gap. Segment 3 at y=0.9 is a border
	// segment (three neighbours) reached by both seed 0 and seed 4.
	ys := []float64{0, -0.3, -0.6, 0.9, 1.8, 2.1, 2.4}
	var segs []l2segments.Segment
	for i, y := range ys {
		segs = append(segs, seg(0, y, 10, y, i+1))
	}
	params := Params{Eps: 1.0, MinLines: 4, MinTrajectories: 2}

	require.Len(t, Neighborhood(segs[0], segs, params.Eps), 4)
	require.Len(t, Neighborhood(segs[3], segs, params.Eps), 3)
	require.Len(t, Neighborhood(segs[4], segs, params.Eps), 4)

	result := Cluster(segs, params)

	assert.Equal(t, []int{0, 0, 0, 1, 1, 1, 1}, result.Labels)
	assert.Equal(t, segs[:3], result.Kept[0])
	assert.Equal(t, segs[3:], result.Kept[1])
	for cid, members := range result.Kept {
		assert.NotEmpty(t, members, "kept cluster %d", cid)
	}
	for cid, members := range result.Removed {
		assert.NotEmpty(t, members, "removed cluster %d", cid)
	}
}

func TestCluster_Empty(t *testing.T) {
	result := Cluster(nil, DefaultParams())
	assert.Empty(t, result.Labels)
	assert.Empty(t, result.Kept)
	assert.Empty(t, result.Removed)
}

func TestCluster_DoesNotMutateInput(t *testing.T) {
	segs := twoGroups()
	before := append([]l2segments.Segment(nil), segs...)
	_ = Cluster(segs, Params{Eps: 1.0, MinLines: 3, MinTrajectories: 2})
	if diff := cmp.Diff(before, segs); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestCluster_DeterministicOnRoutes(t *testing.T) {
	var segs []l2segments.Segment
	for i, traj := range testutil.RouteTrajectories() {
		part, err := l3partition.ApproximatePartition(traj, i+1, 6.0)
		require.NoError(t, err)
		segs = append(segs, part...)
	}

	params := Params{Eps: 15.0, MinLines: 3, MinTrajectories: 2}
	first := Cluster(segs, params)
	for run := 0; run < 3; run++ {
		again := Cluster(segs, params)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", run, diff)
		}
	}

	require.Len(t, first.Labels, len(segs))
	assert.Equal(t, len(segs), first.Kept.Size()+first.Removed.Size()+len(first.Noise()))
	for cid, members := range first.Kept {
		assert.GreaterOrEqual(t, distinctTrajectories(members), 2, "cluster %d", cid)
	}
	for cid, members := range first.Removed {
		assert.Less(t, distinctTrajectories(members), 2, "cluster %d", cid)
	}
}

// =============================================================================
// Tests: DensityClusterer
// =============================================================================

func TestDensityClusterer_Params(t *testing.T) {
	c := NewDefaultDensityClusterer()
	assert.Equal(t, DefaultParams(), c.GetParams())

	c.SetParams(Params{Eps: 1.0, MinLines: 3, MinTrajectories: 2})
	assert.Equal(t, 1.0, c.GetParams().Eps)

	result := c.Cluster(twoGroups())
	assert.Len(t, result.Kept, 1)
}

func TestNewDensityClusterer_DefaultsMinTrajectories(t *testing.T) {
	c := NewDensityClusterer(1.0, 3, 0)
	assert.Equal(t, DefaultMinTrajectories, c.GetParams().MinTrajectories)
}

func TestDensityClusterer_SetParamsDefaultsMinTrajectories(t *testing.T) {
	c := NewDefaultDensityClusterer()
	c.SetParams(Params{Eps: 5, MinLines: 2, MinTrajectories: 0})
	assert.Equal(t, DefaultMinTrajectories, c.GetParams().MinTrajectories)

	// Three segments from one trajectory must still be rejected.
	result := c.Cluster([]l2segments.Segment{
		seg(0, 0, 10, 0, 9),
		seg(1, 0.5, 9, 0.5, 9),
		seg(0, 1, 10, 1, 9),
	})
	assert.Empty(t, result.Kept)
	assert.Len(t, result.Removed, 1)
}
