package types

import (
	"fmt"

	"golang.org/x/image/math/f64"
)

// A 3 component vector. Parsers use it for positions, normals, texture
// coordinates and RGB colors.
type Vec3 f64.Vec3

// Get the x component.
func (v Vec3) X() float64 {
	return v[0]
}

// Get the y component.
func (v Vec3) Y() float64 {
	return v[1]
}

// Get the z component.
func (v Vec3) Z() float64 {
	return v[2]
}

// Format vector as [x, y, z] using up to 6 significant digits.
func (v Vec3) String() string {
	return fmt.Sprintf("[%.6g, %.6g, %.6g]", v.X(), v.Y(), v.Z())
}
