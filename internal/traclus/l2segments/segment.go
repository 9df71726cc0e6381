package l2segments

import (
	"fmt"
	"math"

	"github.com/banshee-data/traclus/internal/traclus/l1geometry"
)

// Eps is the tolerance below which a length counts as zero.
const Eps = 1e-12

// Segment is a directed line segment from Start to End.
// Segments are values; cluster membership is tracked outside the segment.
type Segment struct {
	Start, End   l1geometry.Point
	TrajectoryID int
}

// New returns a segment tagged with trajID.
func New(start, end l1geometry.Point, trajID int) Segment {
	return Segment{Start: start, End: end, TrajectoryID: trajID}
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.End.Distance(s.Start)
}

// Vector returns End - Start.
func (s Segment) Vector() l1geometry.Point {
	return s.End.Sub(s.Start)
}

// Degenerate reports whether the segment is shorter than Eps.
func (s Segment) Degenerate() bool {
	return s.Length() < Eps
}

func (s Segment) String() string {
	return fmt.Sprintf("(%v)-(%v)", s.Start, s.End)
}

// project returns the projection of p onto the infinite line through s.
// A degenerate s projects everything onto its start point.
func (s Segment) project(p l1geometry.Point) l1geometry.Point {
	dir := s.Vector()
	norm2 := dir.Dot(dir)
	if norm2 < Eps*Eps {
		return s.Start
	}
	u := p.Sub(s.Start).Dot(dir) / norm2
	return s.Start.Add(dir.Scale(u))
}

// PerpendicularDistance measures how far other lies off the line of s:
// (l1² + l2²) / (l1 + l2) where l1, l2 are the offsets of other's endpoints
// from their projections onto s.
func (s Segment) PerpendicularDistance(other Segment) float64 {
	l1 := other.Start.Distance(s.project(other.Start))
	l2 := other.End.Distance(s.project(other.End))
	if l1 < Eps && l2 < Eps {
		return 0
	}
	return (l1*l1 + l2*l2) / (l1 + l2)
}

// ParallelDistance is the shorter of the two overhangs between the ends of s
// and the projections of other's ends.
func (s Segment) ParallelDistance(other Segment) float64 {
	l1 := s.Start.Distance(s.project(other.Start))
	l2 := s.End.Distance(s.project(other.End))
	return math.Min(l1, l2)
}

// AngleDistance is the length of the component of other perpendicular to the
// direction of s, or the full length of other when the two point away from
// each other by 90° or more.
func (s Segment) AngleDistance(other Segment) float64 {
	selfLen, otherLen := s.Length(), other.Length()

	if selfLen < Eps {
		return l1geometry.PointToLineDistance(s.Start, other.Start, other.End)
	}
	if otherLen < Eps {
		return l1geometry.PointToLineDistance(other.Start, s.Start, s.End)
	}

	cosTheta := s.Vector().Dot(other.Vector()) / (selfLen * otherLen)
	if cosTheta > Eps {
		if cosTheta >= 1 {
			cosTheta = 1
		}
		return otherLen * math.Sqrt(1-cosTheta*cosTheta)
	}
	return otherLen
}

// OrderedPair holds two segments ordered by length. Longer is the reference
// segment for every distance computed on the pair.
type OrderedPair struct {
	Longer, Shorter Segment
}

// Compare orders a and b into (longer, shorter). Ties go to b as the longer.
func Compare(a, b Segment) OrderedPair {
	if a.Length() > b.Length() {
		return OrderedPair{Longer: a, Shorter: b}
	}
	return OrderedPair{Longer: b, Shorter: a}
}

// PerpendicularDistance of the pair.
func (p OrderedPair) PerpendicularDistance() float64 {
	return p.Longer.PerpendicularDistance(p.Shorter)
}

// ParallelDistance of the pair.
func (p OrderedPair) ParallelDistance() float64 {
	return p.Longer.ParallelDistance(p.Shorter)
}

// AngleDistance of the pair.
func (p OrderedPair) AngleDistance() float64 {
	return p.Longer.AngleDistance(p.Shorter)
}

// Distance is the combined neighbourhood distance: angle distance, plus the
// parallel distance unless the longer segment collapses to a point, plus the
// perpendicular distance only when the segments come from different
// trajectories.
func (p OrderedPair) Distance() float64 {
	d := p.AngleDistance()
	if !p.Longer.Start.Equal(p.Longer.End) {
		d += p.ParallelDistance()
	}
	if p.Longer.TrajectoryID != p.Shorter.TrajectoryID {
		d += p.PerpendicularDistance()
	}
	return d
}

// Distance returns the combined distance between a and b after ordering them
// with Compare.
func Distance(a, b Segment) float64 {
	return Compare(a, b).Distance()
}
