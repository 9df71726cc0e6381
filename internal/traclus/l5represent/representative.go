package l5represent

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/banshee-data/traclus/internal/monitoring"
	"github.com/banshee-data/traclus/internal/traclus/l1geometry"
	"github.com/banshee-data/traclus/internal/traclus/l2segments"
	"github.com/banshee-data/traclus/internal/traclus/l4cluster"
)

const (
	// DefaultMinLines is the default minimum number of crossing segments for
	// a sweep position to yield a representative point.
	DefaultMinLines = 3
	// DefaultMinDist is the default minimum spacing between consecutive
	// representative points.
	DefaultMinDist = 2.0
)

// ErrInvalidMinLines is returned when MinLines is below 1.
var ErrInvalidMinLines = errors.New("representative min lines must be at least 1")

// Params controls representative generation.
type Params struct {
	MinLines int     // Minimum crossing segments at a sweep position
	MinDist  float64 // Points closer than this to the previous point are dropped

	// SignedRotation derives the rotation from atan2 of the average
	// direction. When false the sine is always taken non-negative, which
	// mirrors clusters heading into the lower half-plane about the x axis.
	SignedRotation bool
}

// DefaultParams returns the default representative parameters.
func DefaultParams() Params {
	return Params{
		MinLines: DefaultMinLines,
		MinDist:  DefaultMinDist,
	}
}

// rotation is a 2-D rotation by angle theta given as (cos, sin).
type rotation struct {
	cos, sin float64
}

// forward maps into the frame whose x axis is the cluster direction.
func (r rotation) forward(p l1geometry.Point) l1geometry.Point {
	return l1geometry.NewPoint(p.X*r.cos+p.Y*r.sin, p.Y*r.cos-p.X*r.sin)
}

// inverse maps back to the original frame.
func (r rotation) inverse(p l1geometry.Point) l1geometry.Point {
	return l1geometry.NewPoint(p.X*r.cos-r.sin*p.Y, r.sin*p.X+r.cos*p.Y)
}

// AverageDirection returns the mean of End - Start over segments.
func AverageDirection(segments []l2segments.Segment) l1geometry.Point {
	sum := l1geometry.NewPoint(0, 0)
	for _, s := range segments {
		sum = sum.Add(s.Vector())
	}
	if len(segments) == 0 {
		return sum
	}
	return sum.Div(float64(len(segments)))
}

func clusterRotation(avg l1geometry.Point, signed bool) rotation {
	norm := avg.Norm()
	if norm < l2segments.Eps {
		return rotation{cos: 1}
	}
	if signed {
		theta := math.Atan2(avg.Y, avg.X)
		return rotation{cos: math.Cos(theta), sin: math.Sin(theta)}
	}
	cosTheta := avg.Dot(l1geometry.NewPoint(1, 0)) / norm
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	return rotation{cos: cosTheta, sin: math.Sqrt(1 - cosTheta*cosTheta)}
}

// Representative synthesises the representative path of one cluster.
func Representative(segments []l2segments.Segment, params Params) ([]l1geometry.Point, error) {
	if params.MinLines < 1 {
		return nil, fmt.Errorf("min lines %d: %w", params.MinLines, ErrInvalidMinLines)
	}
	if len(segments) == 0 {
		return nil, nil
	}

	rot := clusterRotation(AverageDirection(segments), params.SignedRotation)

	// Work on rotated copies; the caller's segments stay untouched.
	rotated := make([]l2segments.Segment, len(segments))
	sweep := make([]float64, 0, 2*len(segments))
	for i, s := range segments {
		r := l2segments.New(rot.forward(s.Start), rot.forward(s.End), s.TrajectoryID)
		rotated[i] = r
		sweep = append(sweep, r.Start.X, r.End.X)
	}
	sort.Float64s(sweep)

	var points []l1geometry.Point
	for _, x := range sweep {
		var sumY float64
		crossings := 0
		for _, s := range rotated {
			start, end := s.Start, s.End
			if x < start.X || x > end.X || start.X == end.X {
				continue
			}
			if start.Y == end.Y {
				sumY += start.Y
			} else {
				sumY += (end.Y-start.Y)/(end.X-start.X)*(x-start.X) + start.Y
			}
			crossings++
		}
		if crossings < params.MinLines {
			continue
		}

		candidate := rot.inverse(l1geometry.NewPoint(x, sumY/float64(crossings)))
		if n := len(points); n == 0 || candidate.Distance(points[n-1]) > params.MinDist {
			points = append(points, candidate)
		}
	}
	return points, nil
}

// Generate synthesises a representative path for every cluster, in ascending
// cluster id order. Clusters whose sweep never reaches MinLines crossings map
// to an empty path.
func Generate(clusters l4cluster.Clusters, params Params) (map[int][]l1geometry.Point, error) {
	out := make(map[int][]l1geometry.Point, len(clusters))
	for _, cid := range clusters.IDs() {
		points, err := Representative(clusters[cid], params)
		if err != nil {
			return nil, fmt.Errorf("cluster %d: %w", cid, err)
		}
		monitoring.Debugf("[traclus] cluster %d: %d segments -> %d representative points",
			cid, len(clusters[cid]), len(points))
		out[cid] = points
	}
	return out, nil
}
