package l3partition

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/traclus/internal/traclus/l1geometry"
	"github.com/banshee-data/traclus/internal/traclus/l2segments"
)

// DefaultTheta is the default MDL compression penalty.
const DefaultTheta = 5.0

var (
	// ErrUnknownCostMode is returned for a description-length mode other than
	// Parameterized or NonParameterized.
	ErrUnknownCostMode = errors.New("unknown MDL cost mode")
	// ErrEmptyTrajectory is returned when a trajectory has no points.
	ErrEmptyTrajectory = errors.New("trajectory has no points")
)

// CostMode selects which description-length hypothesis MDLCost evaluates.
type CostMode int

const (
	// Parameterized encodes the window as one segment plus its deviations.
	Parameterized CostMode = iota
	// NonParameterized encodes the window point by point.
	NonParameterized
)

func (m CostMode) String() string {
	switch m {
	case Parameterized:
		return "par"
	case NonParameterized:
		return "nopar"
	default:
		return fmt.Sprintf("CostMode(%d)", int(m))
	}
}

// ParseCostMode accepts "par", "PAR", "nopar" and "NOPAR".
func ParseCostMode(s string) (CostMode, error) {
	switch s {
	case "par", "PAR":
		return Parameterized, nil
	case "nopar", "NOPAR":
		return NonParameterized, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownCostMode)
}

func log2Above(v float64) float64 {
	if v > l2segments.Eps {
		return math.Log2(v)
	}
	return 0
}

// MDLCost returns the description length of traj[start..current].
//
// Parameterized: L(H) = log2(|p_start p_current|) and L(D|H) = log2 of the
// summed perpendicular distances plus log2 of the summed angle distances
// between the hypothesis segment and each raw sub-segment.
// NonParameterized: log2 of the summed raw sub-segment lengths; L(D|H) is 0.
func MDLCost(traj []l1geometry.Point, start, current int, mode CostMode) (float64, error) {
	var s costScratch
	return s.cost(traj, start, current, mode)
}

// costScratch holds the per-window term buffers so a partition scan reuses
// them across windows.
type costScratch struct {
	perpendicular, angle, lengths []float64
}

func (s *costScratch) cost(traj []l1geometry.Point, start, current int, mode CostMode) (float64, error) {
	hypothesis := l2segments.New(traj[start], traj[current], l1geometry.NoTrajectory)

	switch mode {
	case Parameterized:
		s.perpendicular = s.perpendicular[:0]
		s.angle = s.angle[:0]
		for i := start; i < current; i++ {
			sub := l2segments.New(traj[i], traj[i+1], l1geometry.NoTrajectory)
			s.perpendicular = append(s.perpendicular, hypothesis.PerpendicularDistance(sub))
			s.angle = append(s.angle, hypothesis.AngleDistance(sub))
		}
		cost := 0.0
		if length := hypothesis.Length(); length >= l2segments.Eps {
			cost = math.Log2(length)
		}
		cost += log2Above(floats.Sum(s.perpendicular))
		cost += log2Above(floats.Sum(s.angle))
		return cost, nil

	case NonParameterized:
		s.lengths = s.lengths[:0]
		for i := start; i < current; i++ {
			s.lengths = append(s.lengths, traj[i].Distance(traj[i+1]))
		}
		total := floats.Sum(s.lengths)
		if total < l2segments.Eps {
			return 0, nil
		}
		return math.Log2(total), nil
	}

	return 0, fmt.Errorf("mdl cost %v: %w", mode, ErrUnknownCostMode)
}

// ApproximatePartition cuts traj at the characteristic points found by the
// greedy MDL scan. A window keeps growing while encoding it as one segment
// costs no more than encoding it raw plus theta; larger theta gives fewer,
// longer segments.
func ApproximatePartition(traj []l1geometry.Point, trajID int, theta float64) ([]l2segments.Segment, error) {
	size := len(traj)
	if size == 0 {
		return nil, ErrEmptyTrajectory
	}

	var (
		segments []l2segments.Segment
		scratch  costScratch
	)
	start, length := 0, 1
	for start+length < size {
		current := start + length
		costPar, err := scratch.cost(traj, start, current, Parameterized)
		if err != nil {
			return nil, err
		}
		costNoPar, err := scratch.cost(traj, start, current, NonParameterized)
		if err != nil {
			return nil, err
		}

		// A cut at length 1 would emit traj[start]->traj[start] and never
		// advance, which a negative theta can otherwise trigger.
		if length > 1 && costPar > costNoPar+theta {
			segments = append(segments, l2segments.New(traj[start], traj[current-1], trajID))
			start = current - 1
			length = 1
		} else {
			length++
		}
	}
	segments = append(segments, l2segments.New(traj[start], traj[size-1], trajID))
	return segments, nil
}
