package rigmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cylindrical is a point on a vertical cylinder around an origin.
// Rotation is in radians, measured from +X towards +Z.
type Cylindrical struct {
	Distance float64 `yaml:"distance"`
	Rotation float64 `yaml:"rotation"`
	Height   float64 `yaml:"height"`
}

// Vec converts c to a Cartesian offset.
func (c Cylindrical) Vec() r3.Vec {
	sin, cos := math.Sincos(c.Rotation)
	return r3.Vec{
		X: c.Distance * cos,
		Y: c.Height,
		Z: c.Distance * sin,
	}
}

// CylindricalFromVec is the inverse of Cylindrical.Vec. The returned
// rotation lies in (-π, π].
func CylindricalFromVec(v r3.Vec) Cylindrical {
	return Cylindrical{
		Distance: math.Hypot(v.X, v.Z),
		Rotation: math.Atan2(v.Z, v.X),
		Height:   v.Y,
	}
}
