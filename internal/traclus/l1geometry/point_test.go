package l1geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_SelfIsZero(t *testing.T) {
	points := []Point{
		NewPoint(0, 0),
		NewPoint(-3.5, 12.25),
		NewPoint(1e9, -1e9),
		NewTrajectoryPoint(582, 517, 7),
	}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p, p), "distance(%v, %v)", p, p)
	}
}

func TestDistance_Pythagorean(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(NewPoint(0, 0), NewPoint(3, 4)), 1e-12)
	assert.InDelta(t, 5.0, NewPoint(3, 4).Distance(NewPoint(0, 0)), 1e-12)
}

func TestDot(t *testing.T) {
	assert.Equal(t, 11.0, Dot(NewPoint(1, 2), NewPoint(3, 4)))
	assert.Equal(t, 0.0, NewPoint(1, 0).Dot(NewPoint(0, 5)))
}

func TestArithmetic_CarriesLeftTrajectoryID(t *testing.T) {
	a := NewTrajectoryPoint(1, 2, 3)
	b := NewTrajectoryPoint(10, 20, 9)

	sum := a.Add(b)
	assert.Equal(t, NewTrajectoryPoint(11, 22, 3), sum)

	diff := b.Sub(a)
	assert.Equal(t, NewTrajectoryPoint(9, 18, 9), diff)

	assert.Equal(t, NewTrajectoryPoint(2, 4, 3), a.Scale(2))
	assert.Equal(t, NewTrajectoryPoint(0.5, 1, 3), a.Div(2))
}

func TestArithmetic_DoesNotMutate(t *testing.T) {
	a := NewPoint(1, 1)
	_ = a.Add(NewPoint(5, 5))
	_ = a.Scale(10)
	assert.Equal(t, NewPoint(1, 1), a)
}

func TestDivChecked(t *testing.T) {
	p, err := NewPoint(4, 8).DivChecked(4)
	require.NoError(t, err)
	assert.Equal(t, NewPoint(1, 2), p)

	_, err = NewPoint(4, 8).DivChecked(0)
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestPointString(t *testing.T) {
	assert.Equal(t, "2.56557800,1.00000000", NewPoint(2.565578, 1).String())
}

func TestPointToLineDistance(t *testing.T) {
	tests := []struct {
		name       string
		point      Point
		start, end Point
		want       float64
	}{
		{"off axis", NewPoint(0, 4), NewPoint(0, 0), NewPoint(3, 4), 2.4},
		{"above horizontal", NewPoint(5, 3), NewPoint(0, 0), NewPoint(10, 0), 3},
		{"beyond segment end", NewPoint(20, -2), NewPoint(0, 0), NewPoint(10, 0), 2},
		{"on segment", NewPoint(5, 0), NewPoint(0, 0), NewPoint(10, 0), 0},
		{"on diagonal segment", NewPoint(1.5, 2), NewPoint(0, 0), NewPoint(3, 4), 0},
		{"degenerate line", NewPoint(3, 4), NewPoint(0, 0), NewPoint(0, 0), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointToLineDistance(tt.point, tt.start, tt.end)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPointToLineDistance_DegenerateMatchesDistance(t *testing.T) {
	p, line := NewPoint(-7, 2), NewPoint(1.5, -3)
	assert.Equal(t, Distance(p, line), PointToLineDistance(p, line, line))
}

func TestNorm(t *testing.T) {
	assert.InDelta(t, math.Sqrt2, NewPoint(1, 1).Norm(), 1e-12)
}
