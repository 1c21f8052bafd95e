package geometry3D

import (
	"fmt"
	"math"

	"github.com/notargets/geomesh/mesh"
)

// Revolution is a solid of revolution: a closed 2D spline profile revolved
// about the axis from P1 to P2. The profile's first coordinate is measured
// along the axis from the segment midpoint, the second is the distance from
// the axis.
type Revolution struct {
	P1, P2 [3]float64
	Curve  *SplineCurve2d

	origin  [3]float64 // axis midpoint
	axis    [3]float64 // unit axis direction
	e1, e2  [3]float64 // orthonormal frame normal to the axis
	profile [][2]float64
}

const profileSamples = 512

func NewRevolution(p1, p2 [3]float64, curve *SplineCurve2d) *Revolution {
	r := &Revolution{P1: p1, P2: p2, Curve: curve}
	r.origin = [3]float64{
		0.5 * (p1[0] + p2[0]),
		0.5 * (p1[1] + p2[1]),
		0.5 * (p1[2] + p2[2]),
	}
	d := [3]float64{p2[0] - p1[0], p2[1] - p1[1], p2[2] - p1[2]}
	nrm := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
	r.axis = [3]float64{d[0] / nrm, d[1] / nrm, d[2] / nrm}
	r.e1, r.e2 = normalFrame(r.axis)
	return r
}

// normalFrame builds an orthonormal pair spanning the plane normal to a
func normalFrame(a [3]float64) (e1, e2 [3]float64) {
	// Pick the coordinate axis least aligned with a
	var ref [3]float64
	switch {
	case math.Abs(a[0]) <= math.Abs(a[1]) && math.Abs(a[0]) <= math.Abs(a[2]):
		ref = [3]float64{1, 0, 0}
	case math.Abs(a[1]) <= math.Abs(a[2]):
		ref = [3]float64{0, 1, 0}
	default:
		ref = [3]float64{0, 0, 1}
	}
	e1 = cross(a, ref)
	n := math.Sqrt(e1[0]*e1[0] + e1[1]*e1[1] + e1[2]*e1[2])
	e1 = [3]float64{e1[0] / n, e1[1] / n, e1[2] / n}
	e2 = cross(a, e1)
	return
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// cylindrical returns the axial and radial coordinates of p plus its azimuth
func (r *Revolution) cylindrical(p [3]float64) (u, rho, phi float64) {
	d := [3]float64{p[0] - r.origin[0], p[1] - r.origin[1], p[2] - r.origin[2]}
	u = d[0]*r.axis[0] + d[1]*r.axis[1] + d[2]*r.axis[2]
	x := d[0]*r.e1[0] + d[1]*r.e1[1] + d[2]*r.e1[2]
	y := d[0]*r.e2[0] + d[1]*r.e2[1] + d[2]*r.e2[2]
	rho = math.Hypot(x, y)
	phi = math.Atan2(y, x)
	return
}

// fromCylindrical maps axial/radial/azimuth coordinates back to 3D
func (r *Revolution) fromCylindrical(u, rho, phi float64) [3]float64 {
	c, s := math.Cos(phi), math.Sin(phi)
	return [3]float64{
		r.origin[0] + u*r.axis[0] + rho*(c*r.e1[0]+s*r.e2[0]),
		r.origin[1] + u*r.axis[1] + rho*(c*r.e1[1]+s*r.e2[1]),
		r.origin[2] + u*r.axis[2] + rho*(c*r.e1[2]+s*r.e2[2]),
	}
}

// denseProfile caches a fine sampling of the profile curve for projection
func (r *Revolution) denseProfile() [][2]float64 {
	if r.profile == nil {
		var totalLen float64
		poly, err := r.Curve.Discretize(math.Inf(1))
		if err == nil {
			for i := range poly {
				j := (i + 1) % len(poly)
				totalLen += math.Hypot(poly[j][0]-poly[i][0], poly[j][1]-poly[i][1])
			}
		}
		if totalLen <= 0 {
			totalLen = 1
		}
		r.profile, _ = r.Curve.Discretize(totalLen / profileSamples)
	}
	return r.profile
}

// Project returns the closest point on the surface of revolution, computed by
// projecting onto the closest profile polyline segment in the (u,rho) plane
func (r *Revolution) Project(p [3]float64) [3]float64 {
	u, rho, phi := r.cylindrical(p)
	pu, prho := closestOnPolyline(r.denseProfile(), u, rho)
	return r.fromCylindrical(pu, prho, phi)
}

func (r *Revolution) Distance(p [3]float64) float64 {
	u, rho, _ := r.cylindrical(p)
	pu, prho := closestOnPolyline(r.denseProfile(), u, rho)
	return math.Hypot(pu-u, prho-rho)
}

func closestOnPolyline(poly [][2]float64, u, v float64) (cu, cv float64) {
	best := math.MaxFloat64
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		qu, qv := closestOnSegment(a, b, u, v)
		d := (qu-u)*(qu-u) + (qv-v)*(qv-v)
		if d < best {
			best = d
			cu, cv = qu, qv
		}
	}
	return
}

func closestOnSegment(a, b [2]float64, u, v float64) (cu, cv float64) {
	var (
		du = b[0] - a[0]
		dv = b[1] - a[1]
	)
	den := du*du + dv*dv
	if den < 1.e-28 {
		return a[0], a[1]
	}
	t := ((u-a[0])*du + (v-a[1])*dv) / den
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a[0] + t*du, a[1] + t*dv
}

// MeshBoundary triangulates the surface of revolution: the profile is sampled
// at spacing maxh and swept through azimuthal steps sized to maxh at the
// profile's largest radius. Each quad of the sweep grid is split in two.
func (r *Revolution) MeshBoundary(maxh float64, tag int, msh *mesh.Mesh) error {
	poly, err := r.Curve.Discretize(maxh)
	if err != nil {
		return err
	}
	if len(poly) < 3 {
		return fmt.Errorf("profile discretization yields %d points, need at least 3", len(poly))
	}

	maxRho := 0.
	for _, p := range poly {
		if p[1] > maxRho {
			maxRho = p[1]
		}
	}
	if maxRho <= 0 {
		return fmt.Errorf("profile lies on the axis, nothing to revolve")
	}
	nPhi := int(math.Ceil(2. * math.Pi * maxRho / maxh))
	if nPhi < 8 {
		nPhi = 8
	}

	var (
		nProf = len(poly)
		base  = msh.NumVertices
	)
	for j := 0; j < nPhi; j++ {
		phi := 2. * math.Pi * float64(j) / float64(nPhi)
		for i := 0; i < nProf; i++ {
			p := r.fromCylindrical(poly[i][0], poly[i][1], phi)
			msh.AddVertex(p[0], p[1], p[2])
		}
	}
	vid := func(i, j int) int {
		return base + (j%nPhi)*nProf + i%nProf
	}
	for j := 0; j < nPhi; j++ {
		for i := 0; i < nProf; i++ {
			msh.AddTriangle(vid(i, j), vid(i, j+1), vid(i+1, j), tag)
			msh.AddTriangle(vid(i+1, j), vid(i, j+1), vid(i+1, j+1), tag)
		}
	}
	return nil
}
