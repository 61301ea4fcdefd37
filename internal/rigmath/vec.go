// Package rigmath holds the numeric building blocks shared by the character
// and camera rigs: cylindrical offsets, smooth damping, clamped stepping,
// angle wrapping and quaternion helpers.
//
// Everything here is pure and allocation free. Vectors are gonum r3/r2
// values and rotations are unit quat.Number values.
package rigmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Axis vectors.
var (
	Zero     = r3.Vec{}
	UnitX    = r3.Vec{X: 1}
	UnitY    = r3.Vec{Y: 1}
	UnitZ    = r3.Vec{Z: 1}
	NegUnitY = r3.Vec{Y: -1}
)

// Epsilon below which a vector length is treated as zero.
const Epsilon = 1e-9

// NormalizeOrZero returns v scaled to unit length, or the zero vector when
// v is too short to normalize.
func NormalizeOrZero(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n <= Epsilon || math.IsNaN(n) || math.IsInf(n, 0) {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

// NormalizeOrZero2 is NormalizeOrZero for 2D vectors.
func NormalizeOrZero2(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n <= Epsilon || math.IsNaN(n) || math.IsInf(n, 0) {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// IsZero reports whether v is exactly the zero vector.
func IsZero(v r3.Vec) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// XZ drops the Y component.
func XZ(v r3.Vec) r2.Vec {
	return r2.Vec{X: v.X, Y: v.Z}
}

// FromXZ lifts a horizontal vector into 3D with y on the Y axis.
func FromXZ(h r2.Vec, y float64) r3.Vec {
	return r3.Vec{X: h.X, Y: y, Z: h.Y}
}

// ProjectOnPlane removes the component of v along the unit normal n.
func ProjectOnPlane(v, n r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Scale(r3.Dot(v, n), n))
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
