package mesh

import (
	"bufio"
	"fmt"
	"os"
)

// Gmsh 2.2 element type codes for the element types we emit
const (
	gmshTri3 = 2
	gmshTri6 = 9
)

// WriteGmsh22 writes the mesh in Gmsh MSH 2.2 ASCII format. Meshes curved to
// order 2 are written as 6-node triangles with one midside node per unique
// edge. Higher curved orders fall back to the quadratic representation.
// When the mesh has been partitioned, the partition id is written in the
// element tag list following the Gmsh partitioned-mesh convention.
func (m *Mesh) WriteGmsh22(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	defer w.Flush()

	quadratic := m.CurvedOrder > 1

	fmt.Fprintf(w, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n")

	numNodes := m.NumVertices
	if quadratic {
		numNodes += m.NumFaces
	}
	fmt.Fprintf(w, "$Nodes\n%d\n", numNodes)
	for i, v := range m.Vertices {
		fmt.Fprintf(w, "%d %.16g %.16g %.16g\n", i+1, v[0], v[1], v[2])
	}
	if quadratic {
		// Midside nodes, one per unique edge, numbered after the vertices
		for f := 0; f < m.NumFaces; f++ {
			p := m.EdgeMidpoint(f)
			fmt.Fprintf(w, "%d %.16g %.16g %.16g\n", m.NumVertices+f+1, p[0], p[1], p[2])
		}
	}
	fmt.Fprintf(w, "$EndNodes\n")

	fmt.Fprintf(w, "$Elements\n%d\n", m.NumElements)
	for elemID := 0; elemID < m.NumElements; elemID++ {
		if m.ElementTypes[elemID] != Triangle {
			return fmt.Errorf("cannot write %v elements in Gmsh surface output", m.ElementTypes[elemID])
		}
		verts := m.Elements[elemID]
		tag := m.ElementTags[elemID]

		var tags []int
		if m.EToP != nil {
			tags = []int{tag, tag, 1, m.EToP[elemID] + 1}
		} else {
			tags = []int{tag, tag}
		}

		elemType := gmshTri3
		if quadratic {
			elemType = gmshTri6
		}
		fmt.Fprintf(w, "%d %d %d", elemID+1, elemType, len(tags))
		for _, t := range tags {
			fmt.Fprintf(w, " %d", t)
		}
		fmt.Fprintf(w, " %d %d %d", verts[0]+1, verts[1]+1, verts[2]+1)
		if quadratic {
			// Midside node order follows the local edges (0-1), (1-2), (2-0)
			for localEdge := 0; localEdge < 3; localEdge++ {
				faceID := m.EToF[elemID][localEdge]
				fmt.Fprintf(w, " %d", m.NumVertices+faceID+1)
			}
		}
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "$EndElements\n")
	return nil
}
