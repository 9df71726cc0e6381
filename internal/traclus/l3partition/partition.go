package l3partition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/banshee-data/traclus/internal/monitoring"
	"github.com/banshee-data/traclus/internal/traclus/l1geometry"
	"github.com/banshee-data/traclus/internal/traclus/l2segments"
)

// ErrUnknownAlgorithm is returned for a partitioning algorithm other than MDL
// or RDP.
var ErrUnknownAlgorithm = errors.New("unknown partition algorithm")

// Algorithm selects the partitioning strategy.
type Algorithm int

const (
	// MDL is the greedy minimum-description-length partitioning.
	MDL Algorithm = iota
	// RDP is Ramer-Douglas-Peucker partitioning.
	RDP
)

func (a Algorithm) String() string {
	switch a {
	case MDL:
		return "mdl"
	case RDP:
		return "rdp"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm accepts "mdl" or "rdp", case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mdl":
		return MDL, nil
	case "rdp":
		return RDP, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownAlgorithm)
}

// Partition cuts traj into segments tagged with trajID. param is theta for
// MDL and epsilon for RDP.
func Partition(traj []l1geometry.Point, trajID int, algo Algorithm, param float64) ([]l2segments.Segment, error) {
	var (
		segments []l2segments.Segment
		err      error
	)
	switch algo {
	case MDL:
		segments, err = ApproximatePartition(traj, trajID, param)
	case RDP:
		segments, err = RDPPartition(traj, trajID, param)
	default:
		return nil, fmt.Errorf("partition trajectory %d: %w", trajID, ErrUnknownAlgorithm)
	}
	if err != nil {
		return nil, fmt.Errorf("partition trajectory %d with %v: %w", trajID, algo, err)
	}

	monitoring.Debugf("[traclus] trajectory %d: %d points -> %d segments (%v, param=%g)",
		trajID, len(traj), len(segments), algo, param)
	return segments, nil
}
