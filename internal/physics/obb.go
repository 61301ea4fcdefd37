package physics

import (
	"math"

	"charrig/internal/rigmath"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// faceEpsilon is the tolerance used to pick the face a ray hit.
const faceEpsilon = 1e-3

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   r3.Vec    // World-space center
	HalfSize r3.Vec    // Half-extents along local axes
	Axes     [3]r3.Vec // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, half extents and a rotation.
func NewOBB(center, halfSize r3.Vec, rotation quat.Number) OBB {
	return OBB{
		Center:   center,
		HalfSize: r3.Vec{X: math.Abs(halfSize.X), Y: math.Abs(halfSize.Y), Z: math.Abs(halfSize.Z)},
		Axes: [3]r3.Vec{
			rigmath.Right(rotation),
			rigmath.Up(rotation),
			rigmath.Rotate(rotation, rigmath.UnitZ),
		},
	}
}

// toLocal expresses a world point in box coordinates.
func (o OBB) toLocal(p r3.Vec) r3.Vec {
	d := r3.Sub(p, o.Center)
	return r3.Vec{X: r3.Dot(d, o.Axes[0]), Y: r3.Dot(d, o.Axes[1]), Z: r3.Dot(d, o.Axes[2])}
}

// toWorldDir maps a box-space direction back to world space.
func (o OBB) toWorldDir(v r3.Vec) r3.Vec {
	return r3.Add(r3.Add(r3.Scale(v.X, o.Axes[0]), r3.Scale(v.Y, o.Axes[1])), r3.Scale(v.Z, o.Axes[2]))
}

// Bounds returns the world-space AABB enclosing the box.
func (o OBB) Bounds() AABB {
	var ext r3.Vec
	for i, h := range [3]float64{o.HalfSize.X, o.HalfSize.Y, o.HalfSize.Z} {
		a := o.Axes[i]
		ext.X += math.Abs(a.X) * h
		ext.Y += math.Abs(a.Y) * h
		ext.Z += math.Abs(a.Z) * h
	}
	return AABB{Min: r3.Sub(o.Center, ext), Max: r3.Add(o.Center, ext)}
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(center r3.Vec, radius float64) bool {
	closest := ClosestPointOnOBB(o, center)
	return r3.Norm2(r3.Sub(center, closest)) <= radius*radius
}

// ClosestPointOnOBB returns the closest point on or inside the OBB to the
// given point
func ClosestPointOnOBB(o OBB, point r3.Vec) r3.Vec {
	local := o.toLocal(point)
	clamped := r3.Vec{
		X: rigmath.Clamp(local.X, -o.HalfSize.X, o.HalfSize.X),
		Y: rigmath.Clamp(local.Y, -o.HalfSize.Y, o.HalfSize.Y),
		Z: rigmath.Clamp(local.Z, -o.HalfSize.Z, o.HalfSize.Z),
	}
	return r3.Add(o.Center, o.toWorldDir(clamped))
}

// Raycast intersects a ray with the box using the slab test in box space.
// dir must be unit length. A ray starting inside the box reports the exit
// face when solid is false and a zero-distance hit when it is true.
func (o OBB) Raycast(origin, dir r3.Vec, maxDistance float64, solid bool) (point, normal r3.Vec, distance float64, ok bool) {
	lo := o.toLocal(origin)
	ld := r3.Vec{X: r3.Dot(dir, o.Axes[0]), Y: r3.Dot(dir, o.Axes[1]), Z: r3.Dot(dir, o.Axes[2])}
	h := o.HalfSize

	tmin, tmax := math.Inf(-1), math.Inf(1)
	slab := func(origin, dir, half float64) bool {
		if dir == 0 {
			return origin >= -half && origin <= half
		}
		t1 := (-half - origin) / dir
		t2 := (half - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		return tmin <= tmax
	}
	if !slab(lo.X, ld.X, h.X) || !slab(lo.Y, ld.Y, h.Y) || !slab(lo.Z, ld.Z, h.Z) {
		return r3.Vec{}, r3.Vec{}, 0, false
	}
	if tmax < 0 {
		return r3.Vec{}, r3.Vec{}, 0, false
	}

	t := tmin
	if t < 0 {
		if solid {
			return origin, r3.Scale(-1, dir), 0, true
		}
		t = tmax
	}
	if t > maxDistance {
		return r3.Vec{}, r3.Vec{}, 0, false
	}

	// Calculate normal based on which face was hit
	lp := r3.Add(lo, r3.Scale(t, ld))
	var ln r3.Vec
	switch {
	case math.Abs(lp.X+h.X) < faceEpsilon:
		ln = r3.Vec{X: -1}
	case math.Abs(lp.X-h.X) < faceEpsilon:
		ln = r3.Vec{X: 1}
	case math.Abs(lp.Y+h.Y) < faceEpsilon:
		ln = r3.Vec{Y: -1}
	case math.Abs(lp.Y-h.Y) < faceEpsilon:
		ln = r3.Vec{Y: 1}
	case math.Abs(lp.Z+h.Z) < faceEpsilon:
		ln = r3.Vec{Z: -1}
	default:
		ln = r3.Vec{Z: 1}
	}
	return r3.Add(origin, r3.Scale(t, dir)), o.toWorldDir(ln), t, true
}
