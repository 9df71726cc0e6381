package l3partition

import (
	"errors"
	"fmt"

	"github.com/banshee-data/traclus/internal/traclus/l1geometry"
	"github.com/banshee-data/traclus/internal/traclus/l2segments"
)

// DefaultRDPEpsilon is the default maximum perpendicular deviation, in input
// units, tolerated before RDP splits a span.
const DefaultRDPEpsilon = 1.0

// ErrNegativeEpsilon is returned for an RDP tolerance below zero.
var ErrNegativeEpsilon = errors.New("rdp epsilon must be non-negative")

// RDPPartition splits traj with the Ramer-Douglas-Peucker rule: a span is
// split at its point farthest from the chord whenever that distance exceeds
// epsilon. Spans of two points or fewer are never split.
//
// Spans are processed from an explicit stack, left half first, so the output
// is in trajectory order and deep inputs cannot exhaust the goroutine stack.
func RDPPartition(traj []l1geometry.Point, trajID int, epsilon float64) ([]l2segments.Segment, error) {
	size := len(traj)
	if size == 0 {
		return nil, ErrEmptyTrajectory
	}
	if epsilon < 0 {
		return nil, fmt.Errorf("rdp epsilon %v: %w", epsilon, ErrNegativeEpsilon)
	}

	var segments []l2segments.Segment
	stack := [][2]int{{0, size - 1}}
	for len(stack) > 0 {
		span := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		left, right := span[0], span[1]

		var maxDist float64
		farthest := left
		for i := left + 1; i < right; i++ {
			d := l1geometry.PointToLineDistance(traj[i], traj[left], traj[right])
			if d > maxDist {
				maxDist = d
				farthest = i
			}
		}

		if maxDist > epsilon {
			// Right half first so the left half is popped next.
			stack = append(stack, [2]int{farthest, right}, [2]int{left, farthest})
			continue
		}
		segments = append(segments, l2segments.New(traj[left], traj[right], trajID))
	}
	return segments, nil
}
