package mesh

import (
	"fmt"
)

// Surface is the geometric query interface a generator attaches to its mesh.
// Project returns the closest point on the exact surface.
type Surface interface {
	Project(p [3]float64) [3]float64
}

// MaxCurvedOrder is the highest geometry approximation order Curve accepts
const MaxCurvedOrder = 4

// Curve applies curved-geometry correction at the requested polynomial order.
// For each triangle the full Lagrange lattice of (p+1)(p+2)/2 nodes is placed
// by linear interpolation of the vertices, then projected onto the exact
// surface. Order 1 resets the mesh to its piecewise-linear state.
func (m *Mesh) Curve(order int) error {
	if order < 1 || order > MaxCurvedOrder {
		return fmt.Errorf("unsupported geometry order %d, must be in [1,%d]", order, MaxCurvedOrder)
	}
	if order == 1 {
		m.CurvedOrder = 1
		m.CurvedNodes = nil
		return nil
	}
	if m.geom == nil {
		return fmt.Errorf("mesh has no geometry attached, cannot curve")
	}
	m.CurvedNodes = make([][][]float64, m.NumElements)
	for elemID := 0; elemID < m.NumElements; elemID++ {
		if m.ElementTypes[elemID] != Triangle {
			return fmt.Errorf("curving of %v elements is not supported", m.ElementTypes[elemID])
		}
		verts := m.Elements[elemID]
		v0 := m.Vertices[verts[0]]
		v1 := m.Vertices[verts[1]]
		v2 := m.Vertices[verts[2]]
		lattice := make([][]float64, 0, (order+1)*(order+2)/2)
		for i := 0; i <= order; i++ {
			for j := 0; j <= order-i; j++ {
				// Barycentric lattice point (i,j) at order p
				l1 := float64(i) / float64(order)
				l2 := float64(j) / float64(order)
				l0 := 1. - l1 - l2
				p := [3]float64{
					l0*v0[0] + l1*v1[0] + l2*v2[0],
					l0*v0[1] + l1*v1[1] + l2*v2[1],
					l0*v0[2] + l1*v1[2] + l2*v2[2],
				}
				pp := m.geom.Project(p)
				lattice = append(lattice, []float64{pp[0], pp[1], pp[2]})
			}
		}
		m.CurvedNodes[elemID] = lattice
	}
	m.CurvedOrder = order
	return nil
}

// EdgeMidpoint returns the curved midside node of edge faceID, projected onto
// the generating surface when one is attached.
func (m *Mesh) EdgeMidpoint(faceID int) [3]float64 {
	face := m.Faces[faceID]
	a := m.Vertices[face.Vertices[0]]
	b := m.Vertices[face.Vertices[1]]
	p := [3]float64{
		0.5 * (a[0] + b[0]),
		0.5 * (a[1] + b[1]),
		0.5 * (a[2] + b[2]),
	}
	if m.geom != nil && m.CurvedOrder > 1 {
		p = m.geom.Project(p)
	}
	return p
}
