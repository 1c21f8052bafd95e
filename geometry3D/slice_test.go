package geometry3D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceSphere(t *testing.T) {
	msh, err := GenerateSphereMesh(0.3, 1, [3]float64{0, 0, 0}, 1.0)
	assert.NoError(t, err)

	tm, loops, err := SliceZ(msh, 0)
	assert.NoError(t, err)

	// The equatorial section of the unit sphere is a single unit circle
	assert.Equal(t, 1, len(loops))
	for _, p := range loops[0] {
		assert.InDelta(t, 1, math.Hypot(p[0], p[1]), 0.05)
	}
	assert.True(t, len(tm.TriVerts) > 0)

	// Triangulated section area approximates the disc area
	area := triMeshArea(tm.XY, tm.TriVerts)
	assert.InDelta(t, math.Pi, area, 0.15)
}

func TestSliceTorus(t *testing.T) {
	msh, err := GenerateTorusMesh(0.15, 1, [3]float64{0, 0, 0}, 1.0, 0.4)
	assert.NoError(t, err)

	// The z=0 section of the torus is an annulus: two loops, and the
	// triangulated area excludes the hole
	tm, loops, err := SliceZ(msh, 0)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(loops))

	area := triMeshArea(tm.XY, tm.TriVerts)
	annulus := math.Pi * (1.4*1.4 - 0.6*0.6)
	assert.InDelta(t, annulus, area, 0.3)
}

func TestSliceMiss(t *testing.T) {
	msh, err := GenerateSphereMesh(0.3, 1, [3]float64{0, 0, 0}, 1.0)
	assert.NoError(t, err)
	_, _, err = SliceZ(msh, 5)
	assert.Error(t, err)
}

func triMeshArea(xy []float32, tris [][3]int64) (area float64) {
	for _, f := range tris {
		var (
			ax, ay = float64(xy[2*f[0]]), float64(xy[2*f[0]+1])
			bx, by = float64(xy[2*f[1]]), float64(xy[2*f[1]+1])
			cx, cy = float64(xy[2*f[2]]), float64(xy[2*f[2]+1])
		)
		area += 0.5 * math.Abs((bx-ax)*(cy-ay)-(cx-ax)*(by-ay))
	}
	return
}
