package rigmath

import "math"

// WrapAngle maps a to (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// DeltaAngle returns the shortest signed rotation from a to b, in (-π, π].
func DeltaAngle(a, b float64) float64 {
	return WrapAngle(b - a)
}

// LerpAngle interpolates from a towards b along the shorter arc. The result
// is not wrapped, so a continuously tracked angle never jumps by 2π.
func LerpAngle(a, b, t float64) float64 {
	return a + DeltaAngle(a, b)*t
}

// BlendFactor converts a smoothing time into a per-step interpolation
// factor that is independent of the step length.
func BlendFactor(smoothTime, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	smoothTime = math.Max(MinSmoothTime, smoothTime)
	return 1 - math.Exp(-dt/smoothTime)
}
