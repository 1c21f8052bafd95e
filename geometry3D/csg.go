package geometry3D

import (
	"fmt"
	"math"

	"github.com/notargets/geomesh/mesh"
)

// MeshingStep enumerates the stages of mesh generation. GenerateMesh stops
// after the requested stage.
type MeshingStep int

const (
	AnalyzeGeometry MeshingStep = iota + 1
	MeshEdges
	MeshSurface
	OptimizeSurface
	MeshVolume
	OptimizeVolume
)

func (s MeshingStep) String() string {
	return [...]string{"", "AnalyzeGeometry", "MeshEdges", "MeshSurface",
		"OptimizeSurface", "MeshVolume", "OptimizeVolume"}[s]
}

// Solid is a geometric primitive that can discretize its own boundary
type Solid interface {
	mesh.Surface
	// Distance returns the unsigned distance from p to the solid's boundary
	Distance(p [3]float64) float64
	// MeshBoundary appends a surface triangulation at target edge length maxh,
	// tagging the new elements with tag
	MeshBoundary(maxh float64, tag int, msh *mesh.Mesh) error
}

// CSGeometry collects solids whose boundaries are meshed together
type CSGeometry struct {
	solids []Solid
}

func NewCSGeometry() *CSGeometry {
	return &CSGeometry{}
}

func (g *CSGeometry) Add(s Solid) {
	g.solids = append(g.solids, s)
}

// GenerateMesh discretizes the boundary surfaces of all added solids at
// target element size maxh, then runs optSteps2D smoothing passes over the
// surface. perfStepsEnd selects where meshing stops: only stages up to and
// including OptimizeSurface are available, volume meshing is not supported.
func (g *CSGeometry) GenerateMesh(maxh float64, optSteps2D int, perfStepsEnd MeshingStep) (*mesh.Mesh, error) {
	if len(g.solids) == 0 {
		return nil, fmt.Errorf("geometry contains no solids")
	}
	if maxh <= 0 {
		return nil, fmt.Errorf("invalid mesh size maxh = %v, must be positive", maxh)
	}
	if perfStepsEnd >= MeshVolume {
		return nil, fmt.Errorf("meshing step %v is not supported, surface meshing only", perfStepsEnd)
	}

	msh := mesh.NewMesh()
	if perfStepsEnd < MeshSurface {
		// Nothing to discretize before the surface stage
		return msh, nil
	}

	for i, s := range g.solids {
		if err := s.MeshBoundary(maxh, i+1, msh); err != nil {
			return nil, fmt.Errorf("meshing solid %d failed: %w", i+1, err)
		}
	}
	msh.BuildConnectivity()

	var surf mesh.Surface
	if len(g.solids) == 1 {
		surf = g.solids[0]
	} else {
		surf = compositeSurface(g.solids)
	}
	msh.SetGeometry(surf)

	for pass := 0; pass < optSteps2D; pass++ {
		smoothSurface(msh, surf)
	}
	return msh, nil
}

// compositeSurface projects onto whichever solid's boundary is closest
type compositeSurface []Solid

func (cs compositeSurface) Project(p [3]float64) [3]float64 {
	var (
		best    = math.MaxFloat64
		nearest Solid
	)
	for _, s := range cs {
		if d := s.Distance(p); d < best {
			best = d
			nearest = s
		}
	}
	return nearest.Project(p)
}

// smoothSurface runs one Laplacian smoothing pass, re-projecting every vertex
// onto the exact surface afterwards so smoothing never pulls the mesh off it
func smoothSurface(msh *mesh.Mesh, surf mesh.Surface) {
	adj := vertexAdjacency(msh)
	newVerts := make([][]float64, msh.NumVertices)
	for v := 0; v < msh.NumVertices; v++ {
		nbrs := adj[v]
		if len(nbrs) == 0 {
			newVerts[v] = msh.Vertices[v]
			continue
		}
		var c [3]float64
		for _, n := range nbrs {
			c[0] += msh.Vertices[n][0]
			c[1] += msh.Vertices[n][1]
			c[2] += msh.Vertices[n][2]
		}
		inv := 1. / float64(len(nbrs))
		p := surf.Project([3]float64{c[0] * inv, c[1] * inv, c[2] * inv})
		newVerts[v] = []float64{p[0], p[1], p[2]}
	}
	msh.Vertices = newVerts
}

func vertexAdjacency(msh *mesh.Mesh) [][]int {
	adj := make([][]int, msh.NumVertices)
	seen := make(map[[2]int]bool)
	addPair := func(a, b int) {
		if a == b {
			return
		}
		key := [2]int{a, b}
		if !seen[key] {
			seen[key] = true
			adj[a] = append(adj[a], b)
		}
	}
	for _, elem := range msh.Elements {
		n := len(elem)
		for i := 0; i < n; i++ {
			addPair(elem[i], elem[(i+1)%n])
			addPair(elem[(i+1)%n], elem[i])
		}
	}
	return adj
}
