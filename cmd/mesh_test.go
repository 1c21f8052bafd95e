package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/notargets/geomesh/InputParameters"
)

func TestMeshInput(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
Geometry: torus # Can be sphere or torus
MaxH: 0.25
GeometryOrder: 2
MajorRadius: 1.
MinorRadius: 0.4
Partitions: 4
`)
	var input InputParameters.MeshParameters
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, input.Geometry, "torus")
	assert.Equal(t, input.MaxH, 0.25)
	assert.Equal(t, input.GeometryOrder, 2)
	assert.Equal(t, input.Partitions, 4)
	input.Print()
	// Radius defaults when absent
	assert.Equal(t, input.Radius, 1.)
}
