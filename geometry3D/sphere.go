package geometry3D

import (
	"fmt"
	"math"

	"github.com/notargets/geomesh/mesh"
)

// Sphere is a solid sphere primitive, meshed on its boundary by geodesic
// subdivision of an icosahedron
type Sphere struct {
	Center [3]float64
	R      float64
}

func NewSphere(center [3]float64, r float64) *Sphere {
	return &Sphere{Center: center, R: r}
}

func (s *Sphere) Project(p [3]float64) [3]float64 {
	var (
		dx = p[0] - s.Center[0]
		dy = p[1] - s.Center[1]
		dz = p[2] - s.Center[2]
	)
	norm := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if norm < 1.e-14 {
		// Degenerate query at the center, pick the north pole
		return [3]float64{s.Center[0], s.Center[1], s.Center[2] + s.R}
	}
	scale := s.R / norm
	return [3]float64{
		s.Center[0] + dx*scale,
		s.Center[1] + dy*scale,
		s.Center[2] + dz*scale,
	}
}

func (s *Sphere) Distance(p [3]float64) float64 {
	var (
		dx = p[0] - s.Center[0]
		dy = p[1] - s.Center[1]
		dz = p[2] - s.Center[2]
	)
	return math.Abs(math.Sqrt(dx*dx+dy*dy+dz*dz) - s.R)
}

// icosahedron edge length for circumradius 1
var icoEdge = 4. / math.Sqrt(10.+2.*math.Sqrt(5.))

const maxSubdivisions = 8

// MeshBoundary triangulates the sphere surface: the icosahedron inscribed in
// the sphere is subdivided 4-way until the edge length drops below maxh, with
// every new vertex projected back onto the sphere.
func (s *Sphere) MeshBoundary(maxh float64, tag int, msh *mesh.Mesh) error {
	if s.R <= 0 {
		return fmt.Errorf("invalid sphere radius %v", s.R)
	}
	levels := 0
	edge := icoEdge * s.R
	for edge > maxh {
		levels++
		edge *= 0.5
	}
	if levels > maxSubdivisions {
		return fmt.Errorf("maxh = %v needs %d subdivisions of the icosahedron, limit is %d",
			maxh, levels, maxSubdivisions)
	}

	verts, tris := icosahedron()
	for l := 0; l < levels; l++ {
		verts, tris = subdivide(verts, tris)
	}

	base := msh.NumVertices
	for _, v := range verts {
		p := s.Project([3]float64{
			s.Center[0] + v[0]*s.R,
			s.Center[1] + v[1]*s.R,
			s.Center[2] + v[2]*s.R,
		})
		msh.AddVertex(p[0], p[1], p[2])
	}
	for _, t := range tris {
		msh.AddTriangle(base+t[0], base+t[1], base+t[2], tag)
	}
	return nil
}

// icosahedron returns the unit icosahedron, vertices on the unit sphere
func icosahedron() (verts [][3]float64, tris [][3]int) {
	var (
		phi = (1. + math.Sqrt(5.)) / 2.
		nrm = math.Sqrt(1. + phi*phi)
		a   = 1. / nrm
		b   = phi / nrm
	)
	verts = [][3]float64{
		{-a, b, 0}, {a, b, 0}, {-a, -b, 0}, {a, -b, 0},
		{0, -a, b}, {0, a, b}, {0, -a, -b}, {0, a, -b},
		{b, 0, -a}, {b, 0, a}, {-b, 0, -a}, {-b, 0, a},
	}
	tris = [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return
}

// subdivide splits every triangle into four, normalizing the new midpoint
// vertices back onto the unit sphere. Shared edge midpoints are deduplicated.
func subdivide(verts [][3]float64, tris [][3]int) (oVerts [][3]float64, oTris [][3]int) {
	oVerts = verts
	midCache := make(map[[2]int]int)
	midpoint := func(i, j int) int {
		key := [2]int{i, j}
		if j < i {
			key = [2]int{j, i}
		}
		if idx, ok := midCache[key]; ok {
			return idx
		}
		a, b := oVerts[i], oVerts[j]
		m := [3]float64{
			0.5 * (a[0] + b[0]),
			0.5 * (a[1] + b[1]),
			0.5 * (a[2] + b[2]),
		}
		nrm := math.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2])
		m[0] /= nrm
		m[1] /= nrm
		m[2] /= nrm
		oVerts = append(oVerts, m)
		midCache[key] = len(oVerts) - 1
		return len(oVerts) - 1
	}
	oTris = make([][3]int, 0, 4*len(tris))
	for _, t := range tris {
		m01 := midpoint(t[0], t[1])
		m12 := midpoint(t[1], t[2])
		m20 := midpoint(t[2], t[0])
		oTris = append(oTris,
			[3]int{t[0], m01, m20},
			[3]int{t[1], m12, m01},
			[3]int{t[2], m20, m12},
			[3]int{m01, m12, m20},
		)
	}
	return
}
