package geometry3D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplineCircleArc(t *testing.T) {
	// Quarter circle from (1,0) to (0,1) with the control point at the
	// tangent intersection (1,1) reproduces the unit circle exactly
	sc := NewSplineCurve2d()
	sc.AddPoint(1, 0)
	sc.AddPoint(1, 1)
	sc.AddPoint(0, 1)
	sc.AddSegment(0, 1, 2)

	for _, tt := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		u, v := sc.EvalSegment(0, tt)
		assert.InDelta(t, 1, math.Hypot(u, v), 1.e-12)
	}
	// Endpoints are interpolated
	u, v := sc.EvalSegment(0, 0)
	assert.InDelta(t, 1, u, 1.e-14)
	assert.InDelta(t, 0, v, 1.e-14)
	u, v = sc.EvalSegment(0, 1)
	assert.InDelta(t, 0, u, 1.e-14)
	assert.InDelta(t, 1, v, 1.e-14)
}

func TestSplineDiscretize(t *testing.T) {
	// Full circle of radius 1 from four quarter arcs
	sc := NewSplineCurve2d()
	pnts := [][2]float64{
		{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	}
	for _, p := range pnts {
		sc.AddPoint(p[0], p[1])
	}
	for _, seg := range [][3]int{{0, 1, 2}, {2, 3, 4}, {4, 5, 6}, {6, 7, 0}} {
		sc.AddSegment(seg[0], seg[1], seg[2])
	}
	assert.Equal(t, 4, sc.NumSegments())

	maxh := 0.2
	poly, err := sc.Discretize(maxh)
	assert.NoError(t, err)
	assert.True(t, len(poly) >= 3)

	// All sample points on the circle, chords within the requested spacing
	for i, p := range poly {
		assert.InDelta(t, 1, math.Hypot(p[0], p[1]), 1.e-12)
		q := poly[(i+1)%len(poly)]
		chord := math.Hypot(q[0]-p[0], q[1]-p[1])
		assert.True(t, chord <= 1.25*maxh)
	}

	// Empty curve
	_, err = NewSplineCurve2d().Discretize(maxh)
	assert.Error(t, err)
}
