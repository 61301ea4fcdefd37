package world

import (
	"math"

	"charrig/internal/rigmath"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane is the set of points p with Dot(Normal, p) + Distance == 0.
// Normals point into the frustum.
type Plane struct {
	Normal   r3.Vec
	Distance float64
}

func planeThrough(normal, point r3.Vec) Plane {
	n := rigmath.NormalizeOrZero(normal)
	return Plane{Normal: n, Distance: -r3.Dot(n, point)}
}

// NewFrustum builds the perspective frustum of a camera at position looking
// along the forward axis of orientation. fovY is the vertical field of view
// in radians.
func NewFrustum(position r3.Vec, orientation quat.Number, fovY, aspect, near, far float64) Frustum {
	forward := rigmath.Forward(orientation)
	up := rigmath.Up(orientation)
	right := rigmath.Right(orientation)

	tanV := math.Tan(fovY / 2)
	tanH := tanV * aspect

	var f Frustum
	f.planes[0] = planeThrough(r3.Add(right, r3.Scale(tanH, forward)), position)
	f.planes[1] = planeThrough(r3.Sub(r3.Scale(tanH, forward), right), position)
	f.planes[2] = planeThrough(r3.Add(up, r3.Scale(tanV, forward)), position)
	f.planes[3] = planeThrough(r3.Sub(r3.Scale(tanV, forward), up), position)
	f.planes[4] = planeThrough(forward, r3.Add(position, r3.Scale(near, forward)))
	f.planes[5] = planeThrough(r3.Scale(-1, forward), r3.Add(position, r3.Scale(far, forward)))
	return f
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center r3.Vec, radius float64) bool {
	for i := range f.planes {
		if r3.Dot(f.planes[i].Normal, center)+f.planes[i].Distance < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum
func (f *Frustum) ContainsPoint(point r3.Vec) bool {
	return f.ContainsSphere(point, 0)
}

// BoundingSphere returns a sphere enclosing the collider of e in world
// space.
func (w *World) BoundingSphere(e ecs.Entity) (r3.Vec, float64, bool) {
	c, err := w.Physics.Collider(e)
	if err != nil {
		return r3.Vec{}, 0, false
	}
	t, err := w.Physics.Scene.WorldTransform(e)
	if err != nil {
		return r3.Vec{}, 0, false
	}
	center := t.Apply(c.Offset)
	if c.Radius > 0 {
		return center, c.Radius, true
	}
	return center, r3.Norm(c.HalfExtents), true
}

// Visible returns the zone objects whose bounds intersect f.
func (w *World) Visible(f Frustum) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range w.Objects {
		center, radius, ok := w.BoundingSphere(e)
		if ok && f.ContainsSphere(center, radius) {
			out = append(out, e)
		}
	}
	return out
}
