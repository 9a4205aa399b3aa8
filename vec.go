package render

import (
	"fmt"
	"math"
)

// Vec3 is a 3-component vector in world space. The camera's forward-facing
// ray is a Vec3; it is serialized to single precision when uploaded to the
// device.
type Vec3 struct {
	X, Y, Z float64
}

// String returns a human-readable representation of the vector.
func (v Vec3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

// Length returns the Euclidean length of the vector.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns the unit-length vector pointing in the same direction.
// The zero vector is returned unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec3{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
}

// Scaled returns the vector multiplied component-wise by s.
func (v Vec3) Scaled(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// RotatedY returns the vector rotated by the given angle (radians) around
// the world Y axis. Used to pan the camera in the horizontal plane.
func (v Vec3) RotatedY(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}
