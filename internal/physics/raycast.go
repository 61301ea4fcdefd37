package physics

import (
	"math"

	"charrig/internal/rigmath"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"
)

// Hit is the nearest intersection found by CastRay.
type Hit struct {
	Entity   ecs.Entity
	Point    r3.Vec
	Normal   r3.Vec
	Distance float64
}

// QueryFilter restricts which colliders a query sees. A zero Groups value
// accepts every collider.
type QueryFilter struct {
	Groups  CollisionGroups
	Exclude []ecs.Entity
}

// FilterGroups returns a filter that only accepts colliders interacting
// with groups.
func FilterGroups(groups CollisionGroups) QueryFilter {
	return QueryFilter{Groups: groups}
}

func (f QueryFilter) accepts(c *worldCollider) bool {
	if f.Groups != (CollisionGroups{}) && !Interacts(f.Groups, c.collider.Groups) {
		return false
	}
	for _, e := range f.Exclude {
		if e == c.entity || (c.hasOwner && e == c.owner) {
			return false
		}
	}
	return true
}

// CastRay returns the nearest collider hit by the ray within maxDistance.
// With solid set, a ray starting inside a shape hits it at distance zero;
// otherwise it reports where the ray leaves the shape.
func (w *World) CastRay(origin, direction r3.Vec, maxDistance float64, solid bool, filter QueryFilter) (Hit, bool) {
	dir := rigmath.NormalizeOrZero(direction)
	if rigmath.IsZero(dir) || maxDistance < 0 {
		return Hit{}, false
	}
	colliders, err := w.snapshot()
	if err != nil {
		w.Logger.Warn("raycast skipped", "err", err)
		return Hit{}, false
	}

	sweep := RayBounds(origin, dir, maxDistance)
	closest := Hit{Distance: math.Inf(1)}
	hit := false
	for i := range colliders {
		c := &colliders[i]
		if !filter.accepts(c) || !sweep.Intersects(c.bounds) {
			continue
		}
		var (
			point, normal r3.Vec
			dist          float64
			ok            bool
		)
		switch c.collider.Shape {
		case BoxShape:
			point, normal, dist, ok = c.obb.Raycast(origin, dir, maxDistance, solid)
		case SphereShape:
			point, normal, dist, ok = raycastSphere(origin, dir, c.center, c.collider.Radius, maxDistance, solid)
		}
		if ok && dist < closest.Distance {
			closest = Hit{Entity: c.entity, Point: point, Normal: normal, Distance: dist}
			hit = true
		}
	}
	return closest, hit
}

func raycastSphere(origin, dir, center r3.Vec, radius, maxDistance float64, solid bool) (r3.Vec, r3.Vec, float64, bool) {
	oc := r3.Sub(origin, center)
	b := 2 * r3.Dot(oc, dir)
	c := r3.Dot(oc, oc) - radius*radius

	if c <= 0 && solid {
		return origin, r3.Scale(-1, dir), 0, true
	}

	discriminant := b*b - 4*c
	if discriminant < 0 {
		return r3.Vec{}, r3.Vec{}, 0, false
	}
	sq := math.Sqrt(discriminant)
	t := (-b - sq) / 2
	if t < 0 {
		t = (-b + sq) / 2
	}
	if t < 0 || t > maxDistance {
		return r3.Vec{}, r3.Vec{}, 0, false
	}

	point := r3.Add(origin, r3.Scale(t, dir))
	normal := rigmath.NormalizeOrZero(r3.Sub(point, center))
	return point, normal, t, true
}
