package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// twoTriangleMesh builds two triangles sharing the edge 1-2
func twoTriangleMesh() *Mesh {
	m := NewMesh()
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(0, 1, 0)
	m.AddVertex(1, 1, 0)
	m.AddTriangle(0, 1, 2, 1)
	m.AddTriangle(1, 3, 2, 1)
	m.BuildConnectivity()
	return m
}

func TestBuildConnectivity(t *testing.T) {
	m := twoTriangleMesh()

	assert.Equal(t, 4, m.NumVertices)
	assert.Equal(t, 2, m.NumElements)
	// 5 unique edges: 4 boundary + 1 shared
	assert.Equal(t, 5, m.NumFaces)

	// The shared edge connects the two elements
	interior := 0
	for elemID := 0; elemID < m.NumElements; elemID++ {
		for _, nbr := range m.EToE[elemID] {
			if nbr >= 0 {
				interior++
			}
		}
	}
	assert.Equal(t, 2, interior)
	// Element 0's neighbor across edge 1-2 is element 1
	found := false
	for _, nbr := range m.EToE[0] {
		if nbr == 1 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGetElementFaces(t *testing.T) {
	faces := GetElementFaces(Triangle, []int{7, 8, 9})
	assert.Equal(t, [][]int{{7, 8}, {8, 9}, {9, 7}}, faces)
	faces = GetElementFaces(Quad, []int{0, 1, 2, 3})
	assert.Equal(t, 4, len(faces))
}

type flatPlane struct{}

func (flatPlane) Project(p [3]float64) [3]float64 {
	return [3]float64{p[0], p[1], 0}
}

func TestCurve(t *testing.T) {
	m := twoTriangleMesh()

	// No geometry attached
	assert.Error(t, m.Curve(2))

	m.SetGeometry(flatPlane{})
	assert.NoError(t, m.Curve(3))
	assert.Equal(t, 3, m.CurvedOrder)
	assert.Equal(t, 2, len(m.CurvedNodes))
	// Order 3 lattice has 10 nodes per triangle
	assert.Equal(t, 10, len(m.CurvedNodes[0]))
	for _, lattice := range m.CurvedNodes {
		for _, p := range lattice {
			assert.Equal(t, 0., p[2])
		}
	}

	// Order bounds
	assert.Error(t, m.Curve(0))
	assert.Error(t, m.Curve(MaxCurvedOrder+1))

	// Order 1 resets the curved state
	assert.NoError(t, m.Curve(1))
	assert.Equal(t, 1, m.CurvedOrder)
	assert.Nil(t, m.CurvedNodes)
}

func TestEdgeMidpoint(t *testing.T) {
	m := twoTriangleMesh()
	m.SetGeometry(flatPlane{})
	assert.NoError(t, m.Curve(2))
	// Midpoint of the shared edge 1-2
	for f, face := range m.Faces {
		if face.Vertices[0] == 1 && face.Vertices[1] == 2 {
			p := m.EdgeMidpoint(f)
			assert.Equal(t, [3]float64{0.5, 0.5, 0}, p)
		}
	}
}
