package l1geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// NoTrajectory marks a point or segment that is not tagged with a source
// trajectory.
const NoTrajectory = -1

// ErrDivideByZero is returned by DivChecked when the divisor is zero.
var ErrDivideByZero = errors.New("point divided by zero")

// Point is a 2-D trajectory sample.
// Arithmetic returns new values; the TrajectoryID of the receiver (the left
// operand) is carried through, the right operand's id is ignored.
type Point struct {
	X, Y         float64
	TrajectoryID int
}

// NewPoint returns an untagged point.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y, TrajectoryID: NoTrajectory}
}

// NewTrajectoryPoint returns a point tagged with trajID.
func NewTrajectoryPoint(x, y float64, trajID int) Point {
	return Point{X: x, Y: y, TrajectoryID: trajID}
}

// Vec returns the point as a gonum vector.
func (p Point) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func (p Point) withVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y, TrajectoryID: p.TrajectoryID}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return p.withVec(r2.Add(p.Vec(), q.Vec()))
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return p.withVec(r2.Sub(p.Vec(), q.Vec()))
}

// Scale returns p * f.
func (p Point) Scale(f float64) Point {
	return p.withVec(r2.Scale(f, p.Vec()))
}

// Div returns p / f. Callers must ensure f != 0; see DivChecked.
func (p Point) Div(f float64) Point {
	return p.withVec(r2.Scale(1/f, p.Vec()))
}

// DivChecked returns p / f, or ErrDivideByZero when f is zero.
func (p Point) DivChecked(f float64) (Point, error) {
	if f == 0 {
		return Point{}, fmt.Errorf("divide %v: %w", p, ErrDivideByZero)
	}
	return p.Div(f), nil
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return Distance(p, q)
}

// Dot returns the dot product of p and q treated as vectors.
func (p Point) Dot(q Point) float64 {
	return Dot(p, q)
}

// Equal reports whether p and q share the same coordinates.
// TrajectoryID is not compared.
func (p Point) Equal(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// Norm returns the length of p treated as a vector from the origin.
func (p Point) Norm() float64 {
	return r2.Norm(p.Vec())
}

// String formats the coordinates with eight decimals.
func (p Point) String() string {
	return fmt.Sprintf("%.8f,%.8f", p.X, p.Y)
}

// Distance returns sqrt((p.x-q.x)^2 + (p.y-q.y)^2).
func Distance(p, q Point) float64 {
	return r2.Norm(r2.Sub(p.Vec(), q.Vec()))
}

// Dot returns p.x*q.x + p.y*q.y.
func Dot(p, q Point) float64 {
	return r2.Dot(p.Vec(), q.Vec())
}

// PointToLineDistance returns the perpendicular distance from point to the
// infinite line through lineStart and lineEnd. A degenerate line (both ends
// equal) is treated as a point.
func PointToLineDistance(point, lineStart, lineEnd Point) float64 {
	if lineStart.Equal(lineEnd) {
		return Distance(point, lineStart)
	}
	dir := r2.Sub(lineEnd.Vec(), lineStart.Vec())
	toStart := r2.Sub(lineStart.Vec(), point.Vec())
	return math.Abs(r2.Cross(dir, toStart)) / r2.Norm(dir)
}
