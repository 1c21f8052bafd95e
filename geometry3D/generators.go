package geometry3D

import (
	"github.com/notargets/geomesh/mesh"
)

// OptSteps2D is the number of surface smoothing passes run by the generators
const OptSteps2D = 3

// GenerateSphereMesh builds a solid sphere, meshes its boundary surface at
// target element size maxh stopping after the surface stage, then applies
// curved-geometry correction at polynomial order orderG.
func GenerateSphereMesh(maxh float64, orderG int, center [3]float64, r float64) (*mesh.Mesh, error) {
	geo := NewCSGeometry()
	geo.Add(NewSphere(center, r))
	msh, err := geo.GenerateMesh(maxh, OptSteps2D, MeshSurface)
	if err != nil {
		return nil, err
	}
	if err = msh.Curve(orderG); err != nil {
		return nil, err
	}
	return msh, nil
}

// GenerateTorusMesh builds a torus by revolving a spline cross-section about
// the z axis, meshes the boundary surface and curves it to orderG.
//
// TODO: honor center, R and r - the revolved profile is still hardcoded to
// R=1, r=0.4 about the axis from (0,0,-1) to (0,0,1).
func GenerateTorusMesh(maxh float64, orderG int, center [3]float64, R, r float64) (*mesh.Mesh, error) {
	spline := NewSplineCurve2d()
	R = 1
	r = 0.4
	eps := r * 1e-8

	// Control points trace the circular cross-section of radius r about (0,R)
	pnts := [][2]float64{
		{0, R - r}, {-r + eps, R - r + eps}, {-r, R},
		{-r + eps, R + r - eps}, {0, R + r}, {r - eps, R + r - eps},
		{r, R}, {r - eps, R - r + eps},
	}
	segs := [][3]int{{0, 1, 2}, {2, 3, 4}, {4, 5, 6}, {6, 7, 0}}

	for _, pnt := range pnts {
		spline.AddPoint(pnt[0], pnt[1])
	}
	for _, seg := range segs {
		spline.AddSegment(seg[0], seg[1], seg[2])
	}

	rev := NewRevolution([3]float64{0, 0, -1}, [3]float64{0, 0, 1}, spline)
	geo := NewCSGeometry()
	geo.Add(rev)

	msh, err := geo.GenerateMesh(maxh, OptSteps2D, MeshSurface)
	if err != nil {
		return nil, err
	}
	if err = msh.Curve(orderG); err != nil {
		return nil, err
	}
	return msh, nil
}
