package geometry3D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/geomesh/mesh"
)

func sphereRadiusError(msh *mesh.Mesh, center [3]float64, r float64) (maxErr float64) {
	for _, v := range msh.Vertices {
		d := math.Sqrt(
			(v[0]-center[0])*(v[0]-center[0]) +
				(v[1]-center[1])*(v[1]-center[1]) +
				(v[2]-center[2])*(v[2]-center[2]))
		if e := math.Abs(d - r); e > maxErr {
			maxErr = e
		}
	}
	return
}

func maxEdgeLength(msh *mesh.Mesh) (maxLen float64) {
	for _, f := range msh.Faces {
		a := msh.Vertices[f.Vertices[0]]
		b := msh.Vertices[f.Vertices[1]]
		l := math.Sqrt(
			(a[0]-b[0])*(a[0]-b[0]) +
				(a[1]-b[1])*(a[1]-b[1]) +
				(a[2]-b[2])*(a[2]-b[2]))
		if l > maxLen {
			maxLen = l
		}
	}
	return
}

func TestGenerateSphereMesh(t *testing.T) {
	var (
		maxh   = 0.3
		center = [3]float64{1, 2, 3}
		r      = 2.0
	)
	msh, err := GenerateSphereMesh(maxh, 1, center, r)
	assert.NoError(t, err)
	assert.True(t, msh.NumElements > 0)

	// Every vertex lies on the sphere
	assert.InDelta(t, 0, sphereRadiusError(msh, center, r), 1.e-10)

	// Edge lengths respect the requested density
	assert.True(t, maxEdgeLength(msh) <= 1.5*maxh)

	// Closed orientable surface of genus 0: V - E + F = 2
	assert.Equal(t, 2, msh.NumVertices-msh.NumFaces+msh.NumElements)

	// Every edge is shared by exactly two triangles
	for elemID := 0; elemID < msh.NumElements; elemID++ {
		for _, nbr := range msh.EToE[elemID] {
			assert.True(t, nbr >= 0)
		}
	}
}

func TestSphereMeshCurving(t *testing.T) {
	var (
		center = [3]float64{0, 0, 0}
		r      = 1.0
	)
	for _, order := range []int{1, 2, 3, 4} {
		msh, err := GenerateSphereMesh(0.5, order, center, r)
		assert.NoError(t, err)
		assert.Equal(t, order, msh.CurvedOrder)
		if order == 1 {
			assert.Nil(t, msh.CurvedNodes)
			continue
		}
		// Every high order lattice node is projected onto the sphere
		nLattice := (order + 1) * (order + 2) / 2
		for _, lattice := range msh.CurvedNodes {
			assert.Equal(t, nLattice, len(lattice))
			for _, p := range lattice {
				d := math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
				assert.InDelta(t, r, d, 1.e-10)
			}
		}
	}
}

func TestGenerateSphereMeshErrors(t *testing.T) {
	// Invalid mesh size
	_, err := GenerateSphereMesh(0, 1, [3]float64{}, 1)
	assert.Error(t, err)
	// Unsupported curving order
	_, err = GenerateSphereMesh(0.5, 5, [3]float64{}, 1)
	assert.Error(t, err)
	// Too fine a mesh overflows the subdivision limit
	_, err = GenerateSphereMesh(1.e-5, 1, [3]float64{}, 1)
	assert.Error(t, err)
}

func TestGenerateMeshSteps(t *testing.T) {
	geo := NewCSGeometry()
	geo.Add(NewSphere([3]float64{}, 1))
	// Volume meshing is not available
	_, err := geo.GenerateMesh(0.5, 3, MeshVolume)
	assert.Error(t, err)
	// Stopping before the surface stage yields an empty mesh
	msh, err := geo.GenerateMesh(0.5, 3, MeshEdges)
	assert.NoError(t, err)
	assert.Equal(t, 0, msh.NumElements)
	// Empty geometry
	_, err = NewCSGeometry().GenerateMesh(0.5, 3, MeshSurface)
	assert.Error(t, err)
}
