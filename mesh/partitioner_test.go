package mesh

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stripMesh builds a strip of 2*n triangles on an (n+1)x2 vertex grid
func stripMesh(n int) *Mesh {
	m := NewMesh()
	for i := 0; i <= n; i++ {
		m.AddVertex(float64(i), 0, 0)
		m.AddVertex(float64(i), 1, 0)
	}
	for i := 0; i < n; i++ {
		bl, tl := 2*i, 2*i+1
		br, tr := 2*(i+1), 2*(i+1)+1
		m.AddTriangle(bl, br, tl, 1)
		m.AddTriangle(br, tr, tl, 1)
	}
	m.BuildConnectivity()
	return m
}

func TestPartitionRequiresConnectivity(t *testing.T) {
	m := NewMesh()
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(0, 1, 0)
	m.AddTriangle(0, 1, 2, 1)

	mp := NewMeshPartitioner(m, DefaultPartitionConfig(2))
	assert.Error(t, mp.Partition())
}

func TestPartitionStrip(t *testing.T) {
	m := stripMesh(16)
	nparts := int32(4)

	mp := NewMeshPartitioner(m, DefaultPartitionConfig(nparts))
	assert.NoError(t, mp.Partition())
	assert.Equal(t, m.NumElements, len(m.EToP))

	total := 0
	for p := 0; p < int(nparts); p++ {
		elems := mp.GetPartitionElements(p)
		assert.NotEmpty(t, elems)
		total += len(elems)
	}
	assert.Equal(t, m.NumElements, total)

	for _, p := range m.EToP {
		assert.True(t, p >= 0 && p < int(nparts))
	}
}

func TestExportPartitionedMesh(t *testing.T) {
	m := stripMesh(8)
	mp := NewMeshPartitioner(m, DefaultPartitionConfig(2))

	// Export before partitioning must fail
	fName := filepath.Join(t.TempDir(), "parts.msh")
	assert.Error(t, mp.ExportPartitionedMesh(fName))

	assert.NoError(t, mp.Partition())
	assert.NoError(t, mp.ExportPartitionedMesh(fName))

	m2, err := ReadGmsh22(fName)
	assert.NoError(t, err)
	assert.Equal(t, m.NumElements, m2.NumElements)
}
