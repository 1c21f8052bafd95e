package sparsity

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/geomesh/utils"
)

// ReadMatrixMarket reads a sparse matrix in Matrix Market coordinate format.
// Real general and symmetric matrices are supported; pattern files read each
// entry as 1. Symmetric entries below the diagonal are mirrored.
func ReadMatrixMarket(filename string) (utils.DOK, error) {
	var R utils.DOK

	file, err := os.Open(filename)
	if err != nil {
		return R, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	if !scanner.Scan() {
		return R, fmt.Errorf("empty MatrixMarket file")
	}
	header := strings.Fields(strings.ToLower(scanner.Text()))
	if len(header) < 5 || header[0] != "%%matrixmarket" {
		return R, fmt.Errorf("not a MatrixMarket file: %s", scanner.Text())
	}
	if header[1] != "matrix" || header[2] != "coordinate" {
		return R, fmt.Errorf("unsupported MatrixMarket object/format: %s %s", header[1], header[2])
	}
	var (
		isPattern   = header[3] == "pattern"
		isSymmetric = header[4] == "symmetric"
	)
	if header[3] != "real" && header[3] != "integer" && !isPattern {
		return R, fmt.Errorf("unsupported MatrixMarket field type: %s", header[3])
	}
	if header[4] != "general" && !isSymmetric {
		return R, fmt.Errorf("unsupported MatrixMarket symmetry: %s", header[4])
	}

	// Skip comments, then read the size line
	var sizeLine string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		sizeLine = line
		break
	}
	parts := strings.Fields(sizeLine)
	if len(parts) < 3 {
		return R, fmt.Errorf("invalid MatrixMarket size line: %s", sizeLine)
	}
	nr, _ := strconv.Atoi(parts[0])
	nc, _ := strconv.Atoi(parts[1])
	nnz, _ := strconv.Atoi(parts[2])
	if nr <= 0 || nc <= 0 {
		return R, fmt.Errorf("invalid MatrixMarket dimensions %d x %d", nr, nc)
	}

	R = utils.NewDOK(nr, nc)
	count := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return R, fmt.Errorf("invalid MatrixMarket entry: %s", line)
		}
		i, err := strconv.Atoi(fields[0])
		if err != nil {
			return R, fmt.Errorf("invalid row index: %s", fields[0])
		}
		j, err := strconv.Atoi(fields[1])
		if err != nil {
			return R, fmt.Errorf("invalid column index: %s", fields[1])
		}
		val := 1.0
		if !isPattern {
			if len(fields) < 3 {
				return R, fmt.Errorf("missing value in entry: %s", line)
			}
			if val, err = strconv.ParseFloat(fields[2], 64); err != nil {
				return R, fmt.Errorf("invalid value: %s", fields[2])
			}
		}
		// MatrixMarket indices are 1-based
		R.Set(i-1, j-1, val)
		if isSymmetric && i != j {
			R.Set(j-1, i-1, val)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return R, fmt.Errorf("scanner error: %v", err)
	}
	if count != nnz {
		return R, fmt.Errorf("MatrixMarket entry count mismatch: header says %d, read %d", nnz, count)
	}
	return R, nil
}
