// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the sample trajectories and the segment-chain
// checks used across the traclus layer tests.
package testutil

import (
	"testing"

	"github.com/banshee-data/traclus/internal/traclus/l1geometry"
	"github.com/banshee-data/traclus/internal/traclus/l2segments"
)

// Points builds a trajectory from flat [x0, y0, x1, y1, ...] coordinates,
// tagging every point with trajID. A trailing odd value is ignored.
func Points(trajID int, coords ...float64) []l1geometry.Point {
	points := make([]l1geometry.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, l1geometry.NewTrajectoryPoint(coords[i], coords[i+1], trajID))
	}
	return points
}

// Offset returns a copy of coords with delta added to every value.
func Offset(coords []float64, delta float64) []float64 {
	out := make([]float64, len(coords))
	for i, c := range coords {
		out[i] = c + delta
	}
	return out
}

// AssertContiguous checks that segments chain end-to-start, begin at the
// first trajectory point, end at the last one, and only use trajectory points
// in non-decreasing index order.
func AssertContiguous(t testing.TB, traj []l1geometry.Point, segments []l2segments.Segment) {
	t.Helper()
	if len(segments) == 0 {
		t.Fatal("no segments")
	}
	if !segments[0].Start.Equal(traj[0]) {
		t.Errorf("first segment starts at %v, want %v", segments[0].Start, traj[0])
	}
	if last := segments[len(segments)-1]; !last.End.Equal(traj[len(traj)-1]) {
		t.Errorf("last segment ends at %v, want %v", last.End, traj[len(traj)-1])
	}

	idx := 0
	for i, s := range segments {
		if i > 0 && !segments[i-1].End.Equal(s.Start) {
			t.Errorf("gap between segment %d end %v and segment %d start %v", i-1, segments[i-1].End, i, s.Start)
		}
		next := indexFrom(traj, idx, s.End)
		if next < 0 {
			t.Errorf("segment %d end %v is not a trajectory point at or after index %d", i, s.End, idx)
			return
		}
		idx = next
	}
}

func indexFrom(traj []l1geometry.Point, from int, p l1geometry.Point) int {
	for i := from; i < len(traj); i++ {
		if traj[i].Equal(p) {
			return i
		}
	}
	return -1
}
