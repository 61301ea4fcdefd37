package engine

import (
	"charrig/internal/rigmath"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is an entity's pose. For children it is relative to the parent.
type Transform struct {
	Position r3.Vec
	Rotation quat.Number
}

// NewTransform returns a transform at position with identity rotation.
func NewTransform(position r3.Vec) Transform {
	return Transform{Position: position, Rotation: rigmath.Identity()}
}

// Apply maps a point from this transform's local space into its parent's.
func (t Transform) Apply(local r3.Vec) r3.Vec {
	return r3.Add(t.Position, rigmath.Rotate(t.Rotation, local))
}

// Compose returns child expressed in the space this transform lives in.
func (t Transform) Compose(child Transform) Transform {
	return Transform{
		Position: t.Apply(child.Position),
		Rotation: rigmath.Normalize(rigmath.Mul(t.Rotation, child.Rotation)),
	}
}

// Up returns the local +Y axis in parent space.
func (t Transform) Up() r3.Vec { return rigmath.Up(t.Rotation) }

// Down returns the local -Y axis in parent space.
func (t Transform) Down() r3.Vec { return rigmath.Down(t.Rotation) }

// Forward returns the local -Z axis in parent space.
func (t Transform) Forward() r3.Vec { return rigmath.Forward(t.Rotation) }

// Right returns the local +X axis in parent space.
func (t Transform) Right() r3.Vec { return rigmath.Right(t.Rotation) }

// Name labels an entity for lookup.
type Name struct {
	Value string
}

// Tags is a set of labels used by FindByTag.
type Tags struct {
	Values []string
}

// Has reports whether tag is present.
func (t *Tags) Has(tag string) bool {
	for _, v := range t.Values {
		if v == tag {
			return true
		}
	}
	return false
}

// Parent links a child entity to the entity its Transform is relative to.
type Parent struct {
	Entity ecs.Entity
}
