package mesh

import (
	"fmt"
	"sort"
)

// ElementType represents the element types carried by a surface mesh
type ElementType int

const (
	Line ElementType = iota
	Triangle
	Quad
)

func (e ElementType) String() string {
	return [...]string{"Line", "Triangle", "Quad"}[e]
}

// Face represents an edge of a surface element
type Face struct {
	Vertices []int // Sorted vertex indices
	Element  int   // Parent element
	LocalID  int   // Local edge ID within element
}

// Mesh represents a triangulated surface with all connectivity
type Mesh struct {
	// Geometry
	Vertices [][]float64 // Vertex coordinates [nvertices][3]

	// Element data
	Elements     [][]int       // Element to vertex connectivity [nelems][nverts_per_elem]
	ElementTypes []ElementType // Element type for each element
	ElementTags  []int         // Physical group/tag for each element

	// Connectivity (built during initialization)
	EToE [][]int // Element to element connectivity [nelems][nedges_per_elem]
	EToF [][]int // Element to edge connectivity [nelems][nedges_per_elem]
	EToP []int   // Element to partition mapping (set after partitioning)

	// Edge data
	Faces        []Face         // All unique edges in mesh
	FaceMap      map[string]int // Map from sorted vertex string to edge ID
	BoundaryTags map[int]string // Boundary condition tags

	// Curved geometry, populated by Curve()
	CurvedOrder int           // Polynomial order of the geometry approximation
	CurvedNodes [][][]float64 // Per element lattice nodes [nelems][nlattice][3], orders > 1 only

	// Mesh statistics
	NumElements int
	NumVertices int
	NumFaces    int

	geom Surface // Generating surface, used for curving and node projection
}

// NewMesh creates a new mesh and initializes its lookup tables
func NewMesh() *Mesh {
	return &Mesh{
		FaceMap:      make(map[string]int),
		BoundaryTags: make(map[int]string),
		CurvedOrder:  1,
	}
}

// SetGeometry attaches the generating surface used by Curve
func (m *Mesh) SetGeometry(s Surface) { m.geom = s }

// Geometry returns the attached generating surface, nil if none
func (m *Mesh) Geometry() Surface { return m.geom }

// AddVertex appends a vertex and returns its index
func (m *Mesh) AddVertex(x, y, z float64) int {
	m.Vertices = append(m.Vertices, []float64{x, y, z})
	m.NumVertices++
	return m.NumVertices - 1
}

// AddTriangle appends a triangle element with the given physical tag
func (m *Mesh) AddTriangle(v0, v1, v2, tag int) int {
	m.Elements = append(m.Elements, []int{v0, v1, v2})
	m.ElementTypes = append(m.ElementTypes, Triangle)
	m.ElementTags = append(m.ElementTags, tag)
	m.NumElements++
	return m.NumElements - 1
}

// GetElementFaces returns the edge vertex lists for an element type
func GetElementFaces(elemType ElementType, vertices []int) [][]int {
	switch elemType {
	case Triangle:
		return [][]int{
			{vertices[0], vertices[1]},
			{vertices[1], vertices[2]},
			{vertices[2], vertices[0]},
		}
	case Quad:
		return [][]int{
			{vertices[0], vertices[1]},
			{vertices[1], vertices[2]},
			{vertices[2], vertices[3]},
			{vertices[3], vertices[0]},
		}
	case Line:
		return [][]int{
			{vertices[0]},
			{vertices[1]},
		}
	}
	return nil
}

// BuildConnectivity builds element-to-element and edge connectivity
func (m *Mesh) BuildConnectivity() {
	m.EToE = make([][]int, m.NumElements)
	m.EToF = make([][]int, m.NumElements)
	m.Faces = m.Faces[:0]
	m.FaceMap = make(map[string]int)

	for elemID := 0; elemID < m.NumElements; elemID++ {
		elemType := m.ElementTypes[elemID]
		vertices := m.Elements[elemID]

		faceVertices := GetElementFaces(elemType, vertices)

		m.EToE[elemID] = make([]int, len(faceVertices))
		m.EToF[elemID] = make([]int, len(faceVertices))

		// Initialize to -1 (boundary)
		for i := range m.EToE[elemID] {
			m.EToE[elemID][i] = -1
			m.EToF[elemID][i] = -1
		}

		for localFaceID, faceVerts := range faceVertices {
			sorted := make([]int, len(faceVerts))
			copy(sorted, faceVerts)
			sort.Ints(sorted)

			key := fmt.Sprintf("%v", sorted)

			if faceID, exists := m.FaceMap[key]; exists {
				// Edge already exists - this is an interior edge
				face := &m.Faces[faceID]
				neighborElem := face.Element
				neighborLocalID := face.LocalID

				m.EToE[elemID][localFaceID] = neighborElem
				m.EToF[elemID][localFaceID] = faceID
				m.EToE[neighborElem][neighborLocalID] = elemID
				m.EToF[neighborElem][neighborLocalID] = faceID
			} else {
				faceID = len(m.Faces)
				m.Faces = append(m.Faces, Face{
					Vertices: sorted,
					Element:  elemID,
					LocalID:  localFaceID,
				})
				m.FaceMap[key] = faceID
				m.EToF[elemID][localFaceID] = faceID
			}
		}
	}
	m.NumFaces = len(m.Faces)
}

// PrintStatistics reports mesh counts and the curved order
func (m *Mesh) PrintStatistics() {
	fmt.Printf("Mesh statistics:\n")
	fmt.Printf("  Vertices: %d\n", m.NumVertices)
	fmt.Printf("  Elements: %d\n", m.NumElements)
	fmt.Printf("  Edges:    %d\n", m.NumFaces)
	fmt.Printf("  Geometry order: %d\n", m.CurvedOrder)
}
