package fem

import (
	"fmt"
	"math"

	"github.com/notargets/geomesh/mesh"
	"github.com/notargets/geomesh/utils"
)

// AssembleP1 assembles the P1 stiffness (cotangent Laplacian) and mass
// matrices over a surface triangle mesh. One degree of freedom per vertex.
func AssembleP1(msh *mesh.Mesh) (K, M utils.CSR, err error) {
	var (
		nv   = msh.NumVertices
		kDOK = utils.NewDOK(nv, nv)
		mDOK = utils.NewDOK(nv, nv)
	)
	for elemID := 0; elemID < msh.NumElements; elemID++ {
		if msh.ElementTypes[elemID] != mesh.Triangle {
			err = fmt.Errorf("element %d is a %v, P1 assembly needs triangles",
				elemID, msh.ElementTypes[elemID])
			return
		}
		verts := msh.Elements[elemID]
		p0 := msh.Vertices[verts[0]]
		p1 := msh.Vertices[verts[1]]
		p2 := msh.Vertices[verts[2]]

		area := triangleArea(p0, p1, p2)
		if area < utils.NODETOL {
			err = fmt.Errorf("element %d is degenerate, area = %v", elemID, area)
			return
		}

		// Mass: A/12 * [[2,1,1],[1,2,1],[1,1,2]]
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				val := area / 12.
				if i == j {
					val *= 2.
				}
				mDOK.Add(verts[i], verts[j], val)
			}
		}

		// Stiffness: K(i,j) = -cot(angle opposite edge ij)/2 for i != j,
		// diagonal balances the row to zero
		pts := [3][]float64{p0, p1, p2}
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			k := (i + 2) % 3
			cot := cotangentAt(pts[k], pts[i], pts[j])
			kDOK.Add(verts[i], verts[j], -cot/2.)
			kDOK.Add(verts[j], verts[i], -cot/2.)
			kDOK.Add(verts[i], verts[i], cot/2.)
			kDOK.Add(verts[j], verts[j], cot/2.)
		}
	}
	K = kDOK.ToCSR()
	M = mDOK.ToCSR()
	return
}

// SurfaceArea sums the triangle areas of the mesh
func SurfaceArea(msh *mesh.Mesh) (area float64) {
	for elemID := 0; elemID < msh.NumElements; elemID++ {
		verts := msh.Elements[elemID]
		area += triangleArea(
			msh.Vertices[verts[0]],
			msh.Vertices[verts[1]],
			msh.Vertices[verts[2]])
	}
	return
}

func triangleArea(p0, p1, p2 []float64) float64 {
	var (
		u = [3]float64{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		v = [3]float64{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
	)
	cx := u[1]*v[2] - u[2]*v[1]
	cy := u[2]*v[0] - u[0]*v[2]
	cz := u[0]*v[1] - u[1]*v[0]
	return 0.5 * math.Sqrt(cx*cx+cy*cy+cz*cz)
}

// cotangentAt returns cot of the angle at apex formed by rays to a and b
func cotangentAt(apex, a, b []float64) float64 {
	var (
		u = [3]float64{a[0] - apex[0], a[1] - apex[1], a[2] - apex[2]}
		v = [3]float64{b[0] - apex[0], b[1] - apex[1], b[2] - apex[2]}
	)
	dot := u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
	cx := u[1]*v[2] - u[2]*v[1]
	cy := u[2]*v[0] - u[0]*v[2]
	cz := u[0]*v[1] - u[1]*v[0]
	crossNorm := math.Sqrt(cx*cx + cy*cy + cz*cz)
	if crossNorm < 1.e-14 {
		return 0
	}
	return dot / crossNorm
}
