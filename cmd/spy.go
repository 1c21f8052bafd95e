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

	"github.com/spf13/cobra"

	"github.com/notargets/geomesh/fem"
	"github.com/notargets/geomesh/mesh"
	"github.com/notargets/geomesh/sparsity"
	"github.com/notargets/geomesh/utils"
)

type ModelSpy struct {
	MatrixFile string
	GridFile   string
	Operator   string
	Precision  float64
	Binarize   bool
	Delay      time.Duration
}

// SpyCmd represents the spy command
var SpyCmd = &cobra.Command{
	Use:   "spy",
	Short: "Show the sparsity pattern of a sparse matrix",
	Long: `Show the sparsity pattern of a sparse matrix as a heat map. The matrix is
read from a MatrixMarket file, or assembled as a P1 operator on a surface
mesh read from a Gmsh file`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("spy called")
		ms := &ModelSpy{}
		ms.MatrixFile, _ = cmd.Flags().GetString("matrixFile")
		ms.GridFile, _ = cmd.Flags().GetString("gridFile")
		ms.Operator, _ = cmd.Flags().GetString("operator")
		ms.Precision, _ = cmd.Flags().GetFloat64("precision")
		ms.Binarize, _ = cmd.Flags().GetBool("binarize")
		dr, _ := cmd.Flags().GetInt("delay")
		ms.Delay = time.Duration(dr) * time.Millisecond
		RunSpy(ms)
	},
}

func init() {
	rootCmd.AddCommand(SpyCmd)
	SpyCmd.Flags().StringP("matrixFile", "F", "", "sparse matrix in MatrixMarket coordinate format")
	SpyCmd.Flags().StringP("gridFile", "G", "", "surface mesh in Gmsh 2.2 format to assemble an operator on")
	SpyCmd.Flags().String("operator", "stiffness", "operator to assemble on the grid: stiffness or mass")
	SpyCmd.Flags().Float64("precision", -1, "binarization threshold on the absolute value")
	SpyCmd.Flags().Bool("binarize", false, "set entries with absolute value above the threshold to 1.0")
	SpyCmd.Flags().IntP("delay", "d", 0, "milliseconds to keep the plot up, 0 blocks forever")
}

func RunSpy(ms *ModelSpy) {
	var A utils.Sparse
	switch {
	case len(ms.MatrixFile) != 0:
		dok, err := sparsity.ReadMatrixMarket(ms.MatrixFile)
		if err != nil {
			fmt.Printf("unable to read matrix: %s\n", err.Error())
			os.Exit(1)
		}
		A = dok
	case len(ms.GridFile) != 0:
		msh, err := mesh.ReadGmsh22(ms.GridFile)
		if err != nil {
			fmt.Printf("unable to read mesh: %s\n", err.Error())
			os.Exit(1)
		}
		K, M, err := fem.AssembleP1(msh)
		if err != nil {
			fmt.Printf("assembly failed: %s\n", err.Error())
			os.Exit(1)
		}
		switch ms.Operator {
		case "stiffness":
			A = K
		case "mass":
			A = M
		default:
			fmt.Printf("error: unknown operator %q, must be \"stiffness\" or \"mass\"\n", ms.Operator)
			os.Exit(1)
		}
	default:
		fmt.Printf("error: must supply a matrix file (-F, --matrixFile) or a grid file (-G, --gridFile)\n")
		os.Exit(1)
	}

	nr, nc := A.Dims()
	fmt.Printf("Matrix is %d x %d\n", nr, nc)
	sparsity.ShowPattern(A, ms.Precision, ms.Binarize, ms.Delay)
}
