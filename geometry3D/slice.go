package geometry3D

import (
	"fmt"
	"math"

	"github.com/notargets/avs/geometry"
	"github.com/pradeep-pyro/triangle"

	"github.com/notargets/geomesh/mesh"
)

// SliceZ cuts a surface mesh with the plane z = zCut and triangulates the
// cross-section for display. The intersection segments are chained into
// closed loops, Delaunay triangulated in the cutting plane, and triangles
// falling outside the section (even-odd rule over all loops) are discarded,
// which handles annular sections such as a torus cut through its hole.
func SliceZ(msh *mesh.Mesh, zCut float64) (geometry.TriMesh, [][][2]float64, error) {
	zCut = nudgeOffVertices(msh, zCut)
	segs := intersectSegments(msh, zCut)
	if len(segs) == 0 {
		return geometry.TriMesh{}, nil, fmt.Errorf("plane z = %v does not intersect the mesh", zCut)
	}
	loops := chainLoops(segs)
	if len(loops) == 0 {
		return geometry.TriMesh{}, nil, fmt.Errorf("intersection segments do not form closed loops")
	}

	var pts [][2]float64
	for _, loop := range loops {
		pts = append(pts, loop...)
	}
	faces := triangle.Delaunay(pts)

	var kept [][3]int64
	for _, f := range faces {
		cx := (pts[f[0]][0] + pts[f[1]][0] + pts[f[2]][0]) / 3.
		cy := (pts[f[0]][1] + pts[f[1]][1] + pts[f[2]][1]) / 3.
		if insideSection(loops, cx, cy) {
			kept = append(kept, [3]int64{int64(f[0]), int64(f[1]), int64(f[2])})
		}
	}

	tm := geometry.TriMesh{
		XY:       make([]float32, 2*len(pts)),
		TriVerts: kept,
	}
	for i, p := range pts {
		tm.XY[2*i] = float32(p[0])
		tm.XY[2*i+1] = float32(p[1])
	}
	return tm, loops, nil
}

// nudgeOffVertices shifts the cutting plane by a tiny amount when it passes
// exactly through mesh vertices, which would otherwise produce degenerate
// intersection segments that break loop chaining
func nudgeOffVertices(msh *mesh.Mesh, zCut float64) float64 {
	var zMin, zMax float64
	for i, v := range msh.Vertices {
		if i == 0 || v[2] < zMin {
			zMin = v[2]
		}
		if i == 0 || v[2] > zMax {
			zMax = v[2]
		}
	}
	eps := 1.e-7 * (zMax - zMin)
	if eps == 0 {
		return zCut
	}
	for tries := 0; tries < 64; tries++ {
		hit := false
		for _, v := range msh.Vertices {
			if math.Abs(v[2]-zCut) < eps {
				hit = true
				break
			}
		}
		if !hit {
			break
		}
		zCut += 3.17 * eps
	}
	return zCut
}

type sectionSegment struct {
	a, b [2]float64
}

// intersectSegments collects the intersection segment of every triangle the
// plane properly crosses
func intersectSegments(msh *mesh.Mesh, zCut float64) (segs []sectionSegment) {
	for _, elem := range msh.Elements {
		var pts [][2]float64
		n := len(elem)
		for i := 0; i < n; i++ {
			a := msh.Vertices[elem[i]]
			b := msh.Vertices[elem[(i+1)%n]]
			da, db := a[2]-zCut, b[2]-zCut
			if da == 0 && db == 0 {
				continue
			}
			if (da > 0 && db > 0) || (da < 0 && db < 0) {
				continue
			}
			t := da / (da - db)
			pts = append(pts, [2]float64{
				a[0] + t*(b[0]-a[0]),
				a[1] + t*(b[1]-a[1]),
			})
		}
		if len(pts) >= 2 {
			segs = append(segs, sectionSegment{pts[0], pts[1]})
		}
	}
	return
}

// chainLoops connects segments end to end into closed loops. Endpoints are
// matched on a quantized grid to absorb floating point noise.
func chainLoops(segs []sectionSegment) (loops [][][2]float64) {
	const quantum = 1.e-9
	key := func(p [2]float64) [2]int64 {
		return [2]int64{
			int64(math.Round(p[0] / quantum)),
			int64(math.Round(p[1] / quantum)),
		}
	}
	// Adjacency of quantized endpoints to segment indices
	adj := make(map[[2]int64][]int)
	for i, s := range segs {
		adj[key(s.a)] = append(adj[key(s.a)], i)
		adj[key(s.b)] = append(adj[key(s.b)], i)
	}
	used := make([]bool, len(segs))
	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		loop := [][2]float64{segs[start].a}
		cur := segs[start].b
		startKey := key(segs[start].a)
		for key(cur) != startKey {
			loop = append(loop, cur)
			found := -1
			for _, i := range adj[key(cur)] {
				if !used[i] {
					found = i
					break
				}
			}
			if found < 0 {
				break
			}
			used[found] = true
			if key(segs[found].a) == key(cur) {
				cur = segs[found].b
			} else {
				cur = segs[found].a
			}
		}
		if key(cur) == startKey && len(loop) >= 3 {
			loops = append(loops, loop)
		}
	}
	return
}

// insideSection applies the even-odd rule across all loops
func insideSection(loops [][][2]float64, x, y float64) bool {
	inside := false
	for _, loop := range loops {
		n := len(loop)
		for i := 0; i < n; i++ {
			a, b := loop[i], loop[(i+1)%n]
			if (a[1] > y) != (b[1] > y) {
				xCross := a[0] + (y-a[1])/(b[1]-a[1])*(b[0]-a[0])
				if x < xCross {
					inside = !inside
				}
			}
		}
	}
	return inside
}
