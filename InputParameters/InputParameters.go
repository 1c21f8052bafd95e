package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type MeshParameters struct {
	Title         string     `yaml:"Title"`
	Geometry      string     `yaml:"Geometry"` // "sphere" or "torus"
	MaxH          float64    `yaml:"MaxH"`
	GeometryOrder int        `yaml:"GeometryOrder"`
	Center        [3]float64 `yaml:"Center"`
	Radius        float64    `yaml:"Radius"`
	MajorRadius   float64    `yaml:"MajorRadius"`
	MinorRadius   float64    `yaml:"MinorRadius"`
	Partitions    int        `yaml:"Partitions"`
}

func (mp *MeshParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, mp); err != nil {
		return err
	}
	return mp.Validate()
}

func (mp *MeshParameters) Validate() error {
	switch mp.Geometry {
	case "sphere", "torus":
	default:
		return fmt.Errorf("unknown geometry %q, must be \"sphere\" or \"torus\"", mp.Geometry)
	}
	if mp.MaxH <= 0 {
		return fmt.Errorf("MaxH must be positive, got %v", mp.MaxH)
	}
	if mp.GeometryOrder == 0 {
		mp.GeometryOrder = 1
	}
	if mp.Radius == 0 {
		mp.Radius = 1.0
	}
	if mp.MajorRadius == 0 {
		mp.MajorRadius = 1.0
	}
	if mp.MinorRadius == 0 {
		mp.MinorRadius = 0.4
	}
	return nil
}

func (mp *MeshParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", mp.Title)
	fmt.Printf("[%s]\t\t= Geometry\n", mp.Geometry)
	fmt.Printf("%8.5f\t\t= MaxH\n", mp.MaxH)
	fmt.Printf("[%d]\t\t\t= Geometry Order\n", mp.GeometryOrder)
	fmt.Printf("%8.5f\t\t= Center\n", mp.Center)
	switch mp.Geometry {
	case "sphere":
		fmt.Printf("%8.5f\t\t= Radius\n", mp.Radius)
	case "torus":
		fmt.Printf("%8.5f\t\t= Major Radius\n", mp.MajorRadius)
		fmt.Printf("%8.5f\t\t= Minor Radius\n", mp.MinorRadius)
	}
	if mp.Partitions > 1 {
		fmt.Printf("[%d]\t\t\t= Partitions\n", mp.Partitions)
	}
}
