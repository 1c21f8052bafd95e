package sparsity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/geomesh/utils"
)

func TestTransform(t *testing.T) {
	// Absolute value is applied to every entry
	{
		vals := []float64{-2, 3, -0.5, 0}
		out := Transform(vals, -1, false)
		assert.Equal(t, []float64{2, 3, 0.5, 0}, out)
		// Input untouched
		assert.Equal(t, []float64{-2, 3, -0.5, 0}, vals)
	}
	// Binarize: strictly greater than the threshold becomes exactly 1.0,
	// entries at or below are left as their absolute value
	{
		vals := []float64{-2, 0.5, 1e-13, -1e-13, 0}
		out := Transform(vals, 1e-12, true)
		assert.Equal(t, 1.0, out[0])
		assert.Equal(t, 1.0, out[1])
		assert.Equal(t, 1e-13, out[2])
		assert.Equal(t, 1e-13, out[3])
		assert.Equal(t, 0., out[4])
	}
	// Threshold equality is not binarized
	{
		out := Transform([]float64{-1}, 1, true)
		assert.Equal(t, 1., out[0])
		out = Transform([]float64{2}, 2, true)
		assert.Equal(t, 2., out[0])
	}
}

func TestPatternField(t *testing.T) {
	A := utils.NewDOK(3, 4)
	A.Set(0, 0, -5)
	A.Set(2, 3, 0.25)
	rows, cols, vals := PatternField(A, -1, false)
	assert.Equal(t, 2, len(rows))
	found := make(map[[2]int]float64)
	for k := range rows {
		found[[2]int{rows[k], cols[k]}] = vals[k]
	}
	assert.Equal(t, 5., found[[2]int{0, 0}])
	assert.Equal(t, 0.25, found[[2]int{2, 3}])
}

func TestToDense(t *testing.T) {
	A := utils.NewDOK(2, 2)
	A.Set(0, 1, -4)
	D := ToDense(A, -1, false)
	nr, nc := D.Dims()
	assert.Equal(t, 2, nr)
	assert.Equal(t, 2, nc)
	assert.Equal(t, 4., D.At(0, 1))
	assert.Equal(t, 0., D.At(0, 0))
	assert.Equal(t, 0., D.At(1, 0))
	assert.Equal(t, 0., D.At(1, 1))
}

func TestPatternCells(t *testing.T) {
	// One nonzero cell becomes a quad of two triangles with a constant field
	rows, cols, vals := []int{1}, []int{2}, []float64{0.75}
	tm, field := patternCells(rows, cols, vals, 3)
	assert.Equal(t, 8, len(tm.XY))
	assert.Equal(t, 2, len(tm.TriVerts))
	assert.Equal(t, 4, len(field))
	for _, f := range field {
		assert.Equal(t, float32(0.75), f)
	}
	// Row 1 of a 3-row matrix renders with its cell bottom at y = 1
	assert.Equal(t, float32(2), tm.XY[0]) // x = col
	assert.Equal(t, float32(1), tm.XY[1]) // y = nr - row - 1
}
