package fem

import (
	"math"
	"testing"

	"github.com/notargets/geomesh/geometry3D"
	"github.com/notargets/geomesh/mesh"
	"github.com/stretchr/testify/assert"
)

func unitSquareMesh() *mesh.Mesh {
	m := mesh.NewMesh()
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(0, 1, 0)
	m.AddVertex(1, 1, 0)
	m.AddTriangle(0, 1, 2, 1)
	m.AddTriangle(1, 3, 2, 1)
	m.BuildConnectivity()
	return m
}

func TestAssembleP1Square(t *testing.T) {
	m := unitSquareMesh()
	K, M, err := AssembleP1(m)
	assert.NoError(t, err)

	nr, nc := K.Dims()
	assert.Equal(t, 4, nr)
	assert.Equal(t, 4, nc)

	// Constant functions lie in the Laplacian kernel, rows sum to zero
	rows, _, vals := K.COO()
	rowSum := make([]float64, nr)
	for n := range vals {
		rowSum[rows[n]] += vals[n]
	}
	for i := 0; i < nr; i++ {
		assert.InDelta(t, 0., rowSum[i], 1.e-13)
	}

	// Symmetry
	kd := K.ToDense()
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			assert.InDelta(t, kd.At(i, j), kd.At(j, i), 1.e-13)
		}
	}

	// Mass matrix entries sum to the total surface area
	_, _, mVals := M.COO()
	var mSum float64
	for _, v := range mVals {
		mSum += v
	}
	assert.InDelta(t, 1., mSum, 1.e-13)
	assert.InDelta(t, SurfaceArea(m), mSum, 1.e-13)
}

func TestAssembleP1Sphere(t *testing.T) {
	m, err := geometry3D.GenerateSphereMesh(0.4, 1, [3]float64{0, 0, 0}, 1)
	assert.NoError(t, err)

	K, M, err := AssembleP1(m)
	assert.NoError(t, err)

	rows, _, vals := K.COO()
	rowSum := make([]float64, m.NumVertices)
	for n := range vals {
		rowSum[rows[n]] += vals[n]
	}
	for i := range rowSum {
		assert.InDelta(t, 0., rowSum[i], 1.e-12)
	}

	// Mass total approaches 4*pi from below for an inscribed mesh
	_, _, mVals := M.COO()
	var mSum float64
	for _, v := range mVals {
		mSum += v
	}
	assert.True(t, mSum < 4.*math.Pi)
	assert.InDelta(t, 4.*math.Pi, mSum, 0.5)
}

func TestAssembleP1Degenerate(t *testing.T) {
	m := mesh.NewMesh()
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(2, 0, 0)
	m.AddTriangle(0, 1, 2, 1)
	m.BuildConnectivity()

	_, _, err := AssembleP1(m)
	assert.Error(t, err)
}
