package rigmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// MoveTowards steps current towards target by at most maxDelta. It returns
// target exactly once the remaining distance is within maxDelta.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// MoveTowardsVec2 is MoveTowards for horizontal velocities.
func MoveTowardsVec2(current, target r2.Vec, maxDelta float64) r2.Vec {
	to := r2.Sub(target, current)
	sq := r2.Norm2(to)
	if sq == 0 || (maxDelta >= 0 && sq <= maxDelta*maxDelta) {
		return target
	}
	return r2.Add(current, r2.Scale(maxDelta/math.Sqrt(sq), to))
}

// MoveTowardsVec is MoveTowards for 3D points.
func MoveTowardsVec(current, target r3.Vec, maxDelta float64) r3.Vec {
	to := r3.Sub(target, current)
	sq := r3.Norm2(to)
	if sq == 0 || (maxDelta >= 0 && sq <= maxDelta*maxDelta) {
		return target
	}
	return r3.Add(current, r3.Scale(maxDelta/math.Sqrt(sq), to))
}
