package geometry3D

import (
	"fmt"
	"math"
)

// SplineCurve2d is a closed piecewise curve in the (u,v) plane built from
// rational quadratic segments over shared control points. With the middle
// control point at the intersection of the end tangents, each segment
// reproduces a circular arc exactly.
type SplineCurve2d struct {
	points   [][2]float64
	segments [][3]int
}

func NewSplineCurve2d() *SplineCurve2d {
	return &SplineCurve2d{}
}

func (sc *SplineCurve2d) AddPoint(u, v float64) {
	sc.points = append(sc.points, [2]float64{u, v})
}

// AddSegment adds a rational quadratic segment from point p0 through control
// point p1 to point p2
func (sc *SplineCurve2d) AddSegment(p0, p1, p2 int) {
	sc.segments = append(sc.segments, [3]int{p0, p1, p2})
}

func (sc *SplineCurve2d) NumSegments() int { return len(sc.segments) }

// segmentWeight computes the middle control point weight from the turning
// angle of the segment, cos(alpha/2), which makes circular arcs exact
func (sc *SplineCurve2d) segmentWeight(seg [3]int) float64 {
	var (
		p0 = sc.points[seg[0]]
		p1 = sc.points[seg[1]]
		p2 = sc.points[seg[2]]
	)
	t0 := [2]float64{p1[0] - p0[0], p1[1] - p0[1]}
	t1 := [2]float64{p2[0] - p1[0], p2[1] - p1[1]}
	n0 := math.Hypot(t0[0], t0[1])
	n1 := math.Hypot(t1[0], t1[1])
	if n0 < 1.e-14 || n1 < 1.e-14 {
		return 1
	}
	cosA := (t0[0]*t1[0] + t0[1]*t1[1]) / (n0 * n1)
	if cosA > 1 {
		cosA = 1
	} else if cosA < -1 {
		cosA = -1
	}
	return math.Cos(math.Acos(cosA) / 2.)
}

// EvalSegment evaluates segment i at parameter t in [0,1]
func (sc *SplineCurve2d) EvalSegment(i int, t float64) (u, v float64) {
	var (
		seg = sc.segments[i]
		p0  = sc.points[seg[0]]
		p1  = sc.points[seg[1]]
		p2  = sc.points[seg[2]]
		w   = sc.segmentWeight(seg)
	)
	b0 := (1. - t) * (1. - t)
	b1 := 2. * w * t * (1. - t)
	b2 := t * t
	den := b0 + b1 + b2
	u = (b0*p0[0] + b1*p1[0] + b2*p2[0]) / den
	v = (b0*p0[1] + b1*p1[1] + b2*p2[1]) / den
	return
}

// Discretize samples the whole curve with spacing at most maxh, returning a
// polyline. The final point of each segment coincides with the first point of
// the next and is emitted once. A closed curve therefore yields a polyline
// whose last point differs from its first - the caller closes the loop.
func (sc *SplineCurve2d) Discretize(maxh float64) (poly [][2]float64, err error) {
	if len(sc.segments) == 0 {
		return nil, fmt.Errorf("spline curve has no segments")
	}
	for i := range sc.segments {
		n := sc.segmentSamples(i, maxh)
		for k := 0; k < n; k++ {
			t := float64(k) / float64(n)
			u, v := sc.EvalSegment(i, t)
			poly = append(poly, [2]float64{u, v})
		}
	}
	return poly, nil
}

// segmentSamples picks the number of subdivisions of segment i so the chord
// spacing stays below maxh, based on a refined arc length estimate
func (sc *SplineCurve2d) segmentSamples(i int, maxh float64) int {
	const probe = 16
	var (
		arcLen float64
		pu, pv float64
		haveU  bool
	)
	for k := 0; k <= probe; k++ {
		u, v := sc.EvalSegment(i, float64(k)/probe)
		if haveU {
			arcLen += math.Hypot(u-pu, v-pv)
		}
		pu, pv = u, v
		haveU = true
	}
	n := int(math.Ceil(arcLen / maxh))
	if n < 1 {
		n = 1
	}
	return n
}
