package physics

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// BodyKind selects how the world moves a body.
type BodyKind int

const (
	// Dynamic bodies integrate velocity and gravity and are pushed out of
	// static geometry.
	Dynamic BodyKind = iota
	// Kinematic bodies integrate velocity only and are never pushed.
	Kinematic
)

func (k BodyKind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// Body is a moving physics body. Entities with a Collider and no Body in
// their parent chain are static.
type Body struct {
	Kind           BodyKind
	LinearVelocity r3.Vec
	// GravityScale multiplies world gravity; characters use 0 and drive
	// their own vertical velocity.
	GravityScale float64
}

// ShapeKind is the geometry of a collider.
type ShapeKind int

const (
	BoxShape ShapeKind = iota
	SphereShape
)

// Collider attaches query and contact geometry to an entity. Boxes are
// oriented by the entity's world rotation.
type Collider struct {
	Shape       ShapeKind
	HalfExtents r3.Vec
	Radius      float64
	Offset      r3.Vec
	Groups      CollisionGroups
}

// NewBoxCollider returns a box collider with the given full size.
func NewBoxCollider(size r3.Vec, groups CollisionGroups) Collider {
	return Collider{Shape: BoxShape, HalfExtents: r3.Scale(0.5, size), Groups: groups}
}

// NewSphereCollider returns a sphere collider.
func NewSphereCollider(radius float64, groups CollisionGroups) Collider {
	return Collider{Shape: SphereShape, Radius: radius, Groups: groups}
}
