package iotamodel

import (
	"fmt"
	"math"
)

// Vector is a 3-component Number vector.
type Vector struct {
	X, Y, Z float64
}

func NewVector(x, y, z float64) Vector { return Vector{X: x, Y: y, Z: z} }

func (v Vector) Kind() Kind       { return KindVector }
func (v Vector) TypeName() string { return KindVector.String() }

func (v Vector) Display() string {
	return fmt.Sprintf("(%s, %s, %s)", Number{v.X}.Display(), Number{v.Y}.Display(), Number{v.Z}.Display())
}

func (v Vector) norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Tolerates compares vectors by norm only, per spec.md's design choice:
// this collapses every vector of a given length into one equivalence
// class regardless of direction.
func (v Vector) Tolerates(other Iota) bool {
	o, ok := other.(Vector)
	if !ok {
		return false
	}
	return math.Abs(v.norm()-o.norm()) < tolerance
}

// SerializeNBT encodes each component as the bit pattern of its float64
// representation, packed into a long array, matching the game's vector
// NBT shape.
func (v Vector) SerializeNBT() string {
	bits := func(f float64) int64 { return int64(math.Float64bits(f)) }
	return fmt.Sprintf(
		`{"hexcasting:type": "hexcasting:vector", "hexcasting:data": [L; %dL, %dL, %dL]}`,
		bits(v.X), bits(v.Y), bits(v.Z),
	)
}

func (v Vector) SerializeJSON() any {
	return map[string]any{"iotaType": "vector", "value": map[string]float64{"x": v.X, "y": v.Y, "z": v.Z}}
}
