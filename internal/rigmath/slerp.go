package rigmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Slerp rotates the unit direction a towards the unit direction b by the
// fraction s of the angle between them.
//
// When a and b are parallel or antiparallel the orthogonal component
// vanishes and the result degrades to a scaled copy of a instead of NaN.
func Slerp(a, b r3.Vec, s float64) r3.Vec {
	dot := Clamp(r3.Dot(a, b), -1, 1)
	theta := math.Acos(dot) * s
	rel := NormalizeOrZero(r3.Sub(b, r3.Scale(dot, a)))
	sin, cos := math.Sincos(theta)
	return r3.Add(r3.Scale(cos, a), r3.Scale(sin, rel))
}
