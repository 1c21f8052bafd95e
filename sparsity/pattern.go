package sparsity

import (
	"math"
	"time"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/geomesh/utils"
)

// Transform applies the sparsity pattern value transform: every value is
// replaced by its absolute value, and when binarize is set, absolute values
// strictly greater than precision become exactly 1.0 while the rest are left
// unchanged. The input slice is not modified.
func Transform(vals []float64, precision float64, binarize bool) (out []float64) {
	out = make([]float64, len(vals))
	for i, v := range vals {
		out[i] = math.Abs(v)
		if binarize && out[i] > precision {
			out[i] = 1.0
		}
	}
	return
}

// PatternField extracts the coordinate triplets of A and transforms the values
func PatternField(A utils.Sparse, precision float64, binarize bool) (rows, cols []int, vals []float64) {
	rows, cols, vals = A.COO()
	vals = Transform(vals, precision, binarize)
	return
}

// ToDense produces the dense transformed pattern, explicit zeros included
func ToDense(A utils.Sparse, precision float64, binarize bool) (R utils.Matrix) {
	var (
		nr, nc           = A.Dims()
		rows, cols, vals = PatternField(A, precision, binarize)
	)
	R = utils.NewMatrix(nr, nc)
	for k, v := range vals {
		R.M.Set(rows[k], cols[k], v)
	}
	return
}

// ShowPattern renders the sparsity pattern of A as a square heat map, one
// shaded cell per nonzero entry, color scaled from 0 to the maximum
// transformed value. Row 0 renders at the top, matching the conventional
// matrix layout. The call blocks for wait, or forever when wait <= 0.
func ShowPattern(A utils.Sparse, precision float64, binarize bool, wait time.Duration) {
	var (
		nr, nc           = A.Dims()
		rows, cols, vals = PatternField(A, precision, binarize)
	)
	tm, field := patternCells(rows, cols, vals, nr)
	_, maxval := utils.GetFieldMinMax32(field)

	xMin, xMax, yMin, yMax := utils.GetSquareBoundingBox(0, float32(nc), 0, float32(nr))
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	vs := geometry.VertexScalar{
		TMesh:       &tm,
		FieldValues: field,
	}
	ch.AddShadedVertexScalar(&vs, 0, maxval)

	if wait > 0 {
		time.Sleep(wait)
		return
	}
	for {
	}
}

// patternCells builds a flat-shaded cell grid: each nonzero entry becomes a
// quad of two triangles over four dedicated vertices that all carry the
// entry's value, so shading stays constant across the cell
func patternCells(rows, cols []int, vals []float64, nr int) (tm geometry.TriMesh, field []float32) {
	var (
		nnz = len(vals)
	)
	tm = geometry.TriMesh{
		XY:       make([]float32, 8*nnz),
		TriVerts: make([][3]int64, 2*nnz),
	}
	field = make([]float32, 4*nnz)
	for k := 0; k < nnz; k++ {
		var (
			x0 = float32(cols[k])
			y0 = float32(nr - rows[k] - 1)
			v0 = int64(4 * k)
		)
		corners := [4][2]float32{
			{x0, y0}, {x0 + 1, y0}, {x0 + 1, y0 + 1}, {x0, y0 + 1},
		}
		for c, xy := range corners {
			tm.XY[8*k+2*c] = xy[0]
			tm.XY[8*k+2*c+1] = xy[1]
			field[4*k+c] = float32(vals[k])
		}
		tm.TriVerts[2*k] = [3]int64{v0, v0 + 1, v0 + 2}
		tm.TriVerts[2*k+1] = [3]int64{v0, v0 + 2, v0 + 3}
	}
	return
}
