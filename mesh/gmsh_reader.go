package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadGmsh22 reads a surface mesh from a Gmsh MSH file, format version 2.2.
// Linear (type 2) and quadratic (type 9) triangles are accepted; quadratic
// midside nodes are not retained as mesh vertices - re-attach the generating
// surface and Curve to recover the curved representation. Line elements and
// volume elements are skipped.
func ReadGmsh22(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	msh := NewMesh()

	// Gmsh node ids need not be dense, map file id to vertex index
	nodeIndex := make(map[int]int)
	var midsideIDs map[int]bool
	sawQuadratic := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if err := readMeshFormat22(scanner); err != nil {
				return nil, err
			}

		case "$Nodes":
			if err := readNodes22(scanner, msh, nodeIndex); err != nil {
				return nil, err
			}

		case "$Elements":
			var err error
			if midsideIDs, sawQuadratic, err = readElements22(scanner, msh, nodeIndex); err != nil {
				return nil, err
			}

		case "$PhysicalNames", "$NodeData", "$ElementData", "$ElementNodeData", "$Periodic":
			endMarker := "$End" + line[1:]
			for scanner.Scan() {
				if strings.TrimSpace(scanner.Text()) == endMarker {
					break
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}

	if sawQuadratic {
		msh.CurvedOrder = 2
		// Drop the midside nodes read into the vertex list
		msh.compactVertices(midsideIDs, nodeIndex)
	}

	msh.BuildConnectivity()
	return msh, nil
}

func readMeshFormat22(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}
	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2.") {
		return fmt.Errorf("unsupported Gmsh format version: %s", parts[0])
	}
	if fileType, _ := strconv.Atoi(parts[1]); fileType == 1 {
		return fmt.Errorf("binary Gmsh files are not supported")
	}
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndMeshFormat" {
			break
		}
	}
	return nil
}

func readNodes22(scanner *bufio.Scanner, msh *Mesh, nodeIndex map[int]int) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}
	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid node count: %v", err)
	}
	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}
		id, _ := strconv.Atoi(parts[0])
		x, _ := strconv.ParseFloat(parts[1], 64)
		y, _ := strconv.ParseFloat(parts[2], 64)
		z, _ := strconv.ParseFloat(parts[3], 64)
		nodeIndex[id] = msh.AddVertex(x, y, z)
	}
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndNodes" {
			break
		}
	}
	return nil
}

func readElements22(scanner *bufio.Scanner, msh *Mesh, nodeIndex map[int]int) (
	midsideIDs map[int]bool, sawQuadratic bool, err error) {
	if !scanner.Scan() {
		return nil, false, fmt.Errorf("unexpected EOF in Elements")
	}
	numElems, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, false, fmt.Errorf("invalid element count: %v", err)
	}
	midsideIDs = make(map[int]bool)
	for i := 0; i < numElems; i++ {
		if !scanner.Scan() {
			return nil, false, fmt.Errorf("unexpected EOF reading elements")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return nil, false, fmt.Errorf("invalid element line: %s", scanner.Text())
		}
		elemType, _ := strconv.Atoi(parts[1])
		numTags, _ := strconv.Atoi(parts[2])
		nodeStart := 3 + numTags
		tag := 0
		if numTags > 0 && len(parts) > 3 {
			tag, _ = strconv.Atoi(parts[3])
		}

		switch elemType {
		case gmshTri3, gmshTri6:
			if len(parts) < nodeStart+3 {
				return nil, false, fmt.Errorf("truncated triangle element: %s", scanner.Text())
			}
			var v [3]int
			for n := 0; n < 3; n++ {
				id, _ := strconv.Atoi(parts[nodeStart+n])
				idx, ok := nodeIndex[id]
				if !ok {
					return nil, false, fmt.Errorf("element references unknown node %d", id)
				}
				v[n] = idx
			}
			msh.AddTriangle(v[0], v[1], v[2], tag)
			if elemType == gmshTri6 {
				sawQuadratic = true
				for n := 3; n < 6 && nodeStart+n < len(parts); n++ {
					id, _ := strconv.Atoi(parts[nodeStart+n])
					midsideIDs[id] = true
				}
			}
		default:
			// Lines, points and volume elements are not part of the surface
		}
	}
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndElements" {
			break
		}
	}
	return midsideIDs, sawQuadratic, nil
}

// compactVertices removes nodes that only carried midside coordinates and
// renumbers the element connectivity accordingly.
func (m *Mesh) compactVertices(midsideIDs map[int]bool, nodeIndex map[int]int) {
	drop := make(map[int]bool)
	for id := range midsideIDs {
		if idx, ok := nodeIndex[id]; ok {
			drop[idx] = true
		}
	}
	if len(drop) == 0 {
		return
	}
	remap := make([]int, m.NumVertices)
	kept := make([][]float64, 0, m.NumVertices-len(drop))
	for i, v := range m.Vertices {
		if drop[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, v)
	}
	m.Vertices = kept
	m.NumVertices = len(kept)
	for _, elem := range m.Elements {
		for n := range elem {
			elem[n] = remap[elem[n]]
		}
	}
}
