/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"github.com/spf13/cobra"

	"github.com/notargets/geomesh/InputParameters"
	"github.com/notargets/geomesh/geometry3D"
	"github.com/notargets/geomesh/mesh"
	"github.com/notargets/geomesh/utils"
)

type ModelMesh struct {
	ParamsFile string
	MeshFile   string
	Graph      bool
	SliceZ     float64
	Delay      time.Duration
}

// MeshCmd represents the mesh command
var MeshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Generate a curved surface mesh of a sphere or torus",
	Long: `Generate a curved surface mesh of a sphere or torus, write it out in Gmsh
2.2 format, optionally partition it and display a planar cross-section`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mesh called")
		mm := &ModelMesh{}
		mm.ParamsFile, _ = cmd.Flags().GetString("inputParametersFile")
		mm.MeshFile, _ = cmd.Flags().GetString("meshFile")
		mm.Graph, _ = cmd.Flags().GetBool("graph")
		mm.SliceZ, _ = cmd.Flags().GetFloat64("sliceZ")
		dr, _ := cmd.Flags().GetInt("delay")
		mm.Delay = time.Duration(dr) * time.Millisecond
		mp := processMeshInput(cmd, mm)
		RunMesh(mm, mp)
	},
}

func processMeshInput(cmd *cobra.Command, mm *ModelMesh) (mp *InputParameters.MeshParameters) {
	mp = &InputParameters.MeshParameters{}
	if len(mm.ParamsFile) != 0 {
		data, err := os.ReadFile(mm.ParamsFile)
		if err != nil {
			panic(err)
		}
		if err = mp.Parse(data); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			exampleFile := `
########################################
Title: "Coarse sphere"
Geometry: sphere
MaxH: 0.25
GeometryOrder: 2
Center: [0, 0, 0]
Radius: 1.0
########################################
`
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
		mp.Print()
		return
	}
	mp.Geometry, _ = cmd.Flags().GetString("geometry")
	mp.MaxH, _ = cmd.Flags().GetFloat64("maxh")
	mp.GeometryOrder, _ = cmd.Flags().GetInt("order")
	mp.Radius, _ = cmd.Flags().GetFloat64("radius")
	mp.MajorRadius, _ = cmd.Flags().GetFloat64("majorRadius")
	mp.MinorRadius, _ = cmd.Flags().GetFloat64("minorRadius")
	parts, _ := cmd.Flags().GetInt("partitions")
	mp.Partitions = parts
	if err := mp.Validate(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	mp.Print()
	return
}

func init() {
	rootCmd.AddCommand(MeshCmd)
	MeshCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file with mesh generation parameters")
	MeshCmd.Flags().StringP("meshFile", "F", "surface.msh", "output mesh file in Gmsh 2.2 format")
	MeshCmd.Flags().StringP("geometry", "g", "sphere", "geometry to mesh: sphere or torus")
	MeshCmd.Flags().Float64P("maxh", "m", 0.25, "target surface element size")
	MeshCmd.Flags().Int("order", 1, "geometry approximation order for mesh curving")
	MeshCmd.Flags().Float64P("radius", "r", 1.0, "sphere radius")
	MeshCmd.Flags().Float64("majorRadius", 1.0, "torus major radius")
	MeshCmd.Flags().Float64("minorRadius", 0.4, "torus minor radius")
	MeshCmd.Flags().IntP("partitions", "p", 0, "partition the mesh into this many parts with METIS")
	MeshCmd.Flags().Bool("graph", false, "display a planar cross-section of the mesh")
	MeshCmd.Flags().Float64("sliceZ", 0., "z coordinate of the cross-section plane used with --graph")
	MeshCmd.Flags().IntP("delay", "d", 0, "milliseconds to keep the plot up, 0 blocks forever")
}

func RunMesh(mm *ModelMesh, mp *InputParameters.MeshParameters) {
	var (
		msh *mesh.Mesh
		err error
	)
	switch mp.Geometry {
	case "sphere":
		msh, err = geometry3D.GenerateSphereMesh(mp.MaxH, mp.GeometryOrder, mp.Center, mp.Radius)
	case "torus":
		msh, err = geometry3D.GenerateTorusMesh(mp.MaxH, mp.GeometryOrder, mp.Center,
			mp.MajorRadius, mp.MinorRadius)
	}
	if err != nil {
		fmt.Printf("mesh generation failed: %s\n", err.Error())
		os.Exit(1)
	}
	msh.PrintStatistics()

	if mp.Partitions > 1 {
		partitioner := mesh.NewMeshPartitioner(msh,
			mesh.DefaultPartitionConfig(int32(mp.Partitions)))
		if err = partitioner.Partition(); err != nil {
			fmt.Printf("partitioning failed: %s\n", err.Error())
			os.Exit(1)
		}
	}

	if err = msh.WriteGmsh22(mm.MeshFile); err != nil {
		fmt.Printf("unable to write mesh file: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", mm.MeshFile)

	if mm.Graph {
		plotSlice(msh, mm.SliceZ, mm.Delay)
	}
}

func plotSlice(msh *mesh.Mesh, zCut float64, delay time.Duration) {
	tm, _, err := geometry3D.SliceZ(msh, zCut)
	if err != nil {
		fmt.Printf("unable to slice mesh: %s\n", err.Error())
		return
	}
	var xMin, xMax, yMin, yMax float32
	for i := 0; i < len(tm.XY)/2; i++ {
		x, y := tm.XY[2*i], tm.XY[2*i+1]
		if i == 0 {
			xMin, xMax, yMin, yMax = x, x, y, y
		}
		if x < xMin {
			xMin = x
		}
		if x > xMax {
			xMax = x
		}
		if y < yMin {
			yMin = y
		}
		if y > yMax {
			yMax = y
		}
	}
	xMin, xMax, yMin, yMax = utils.GetSquareBoundingBox(xMin, xMax, yMin, yMax)
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	ch.AddTriMesh(tm)
	if delay > 0 {
		utils.SleepFor(int(delay.Milliseconds()))
		return
	}
	for {
	}
}
