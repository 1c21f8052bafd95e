package mesh

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGmshRoundTripLinear(t *testing.T) {
	m := twoTriangleMesh()
	m.ElementTags[1] = 7

	fName := filepath.Join(t.TempDir(), "plane.msh")
	assert.NoError(t, m.WriteGmsh22(fName))

	m2, err := ReadGmsh22(fName)
	assert.NoError(t, err)
	assert.Equal(t, m.NumVertices, m2.NumVertices)
	assert.Equal(t, m.NumElements, m2.NumElements)
	assert.Equal(t, m.NumFaces, m2.NumFaces)
	assert.Equal(t, 1, m2.CurvedOrder)
	assert.Equal(t, m.Elements, m2.Elements)
	assert.Equal(t, []int{1, 7}, m2.ElementTags)
	for i := range m.Vertices {
		for d := 0; d < 3; d++ {
			assert.InDelta(t, m.Vertices[i][d], m2.Vertices[i][d], 1.e-14)
		}
	}
}

func TestGmshRoundTripQuadratic(t *testing.T) {
	m := twoTriangleMesh()
	m.SetGeometry(flatPlane{})
	assert.NoError(t, m.Curve(2))

	fName := filepath.Join(t.TempDir(), "curved.msh")
	assert.NoError(t, m.WriteGmsh22(fName))

	m2, err := ReadGmsh22(fName)
	assert.NoError(t, err)
	// Midside nodes are dropped on read, corner vertices survive
	assert.Equal(t, m.NumVertices, m2.NumVertices)
	assert.Equal(t, m.NumElements, m2.NumElements)
	assert.Equal(t, 2, m2.CurvedOrder)
	assert.Equal(t, m.Elements, m2.Elements)

	// Re-attaching the surface recovers the full curved lattice
	m2.SetGeometry(flatPlane{})
	assert.NoError(t, m2.Curve(2))
	assert.Equal(t, m.CurvedNodes, m2.CurvedNodes)
}

func TestGmshPartitionTags(t *testing.T) {
	m := twoTriangleMesh()
	m.EToP = []int{0, 1}

	fName := filepath.Join(t.TempDir(), "parts.msh")
	assert.NoError(t, m.WriteGmsh22(fName))

	// Partition tags must not disturb the element connectivity on read
	m2, err := ReadGmsh22(fName)
	assert.NoError(t, err)
	assert.Equal(t, m.Elements, m2.Elements)
	assert.Equal(t, m.ElementTags, m2.ElementTags)
}

func TestGmshReadErrors(t *testing.T) {
	_, err := ReadGmsh22(filepath.Join(t.TempDir(), "missing.msh"))
	assert.Error(t, err)
}
