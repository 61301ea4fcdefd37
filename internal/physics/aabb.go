package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// AABB is an axis-aligned box used as the broad phase for ray and sphere
// queries.
type AABB struct {
	Min r3.Vec
	Max r3.Vec
}

// NewAABBFromCenter creates an AABB from a center point and half extents.
func NewAABBFromCenter(center, half r3.Vec) AABB {
	return AABB{
		Min: r3.Sub(center, half),
		Max: r3.Add(center, half),
	}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Expand grows the box by margin on every side.
func (a AABB) Expand(margin float64) AABB {
	m := r3.Vec{X: margin, Y: margin, Z: margin}
	return AABB{Min: r3.Sub(a.Min, m), Max: r3.Add(a.Max, m)}
}

// RayBounds returns the box swept by a ray segment.
func RayBounds(origin, dir r3.Vec, length float64) AABB {
	end := r3.Add(origin, r3.Scale(length, dir))
	return AABB{
		Min: r3.Vec{X: math.Min(origin.X, end.X), Y: math.Min(origin.Y, end.Y), Z: math.Min(origin.Z, end.Z)},
		Max: r3.Vec{X: math.Max(origin.X, end.X), Y: math.Max(origin.Y, end.Y), Z: math.Max(origin.Z, end.Z)},
	}
}
