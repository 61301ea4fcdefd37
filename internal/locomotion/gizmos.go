package locomotion

import (
	"charrig/internal/engine"
	"charrig/internal/gizmo"
	"charrig/internal/rigmath"

	"gonum.org/v1/gonum/spatial/r3"
)

// Gizmos draws the character's intent and velocities from its root.
func (c *Character) Gizmos(buf *gizmo.Buffer, root engine.Transform, bodyVelocity r3.Vec) {
	at := root.Position
	up := root.Up()
	buf.Arrow(at, r3.Add(at, up), gizmo.Green)
	buf.Arrow(at, r3.Add(at, c.Input.Movement), gizmo.White)
	buf.Arrow(at, r3.Add(at, rigmath.FromXZ(c.Velocity.Horizontal, 0)), gizmo.Gray)
	buf.Arrow(at, r3.Add(at, r3.Scale(c.Velocity.Vertical, up)), gizmo.Magenta)
	buf.Arrow(at, r3.Add(at, bodyVelocity), gizmo.Yellow)

	chest := r3.Add(at, r3.Scale(1.5, up))
	buf.Line(chest, r3.Add(chest, rigmath.Right(c.Reference)), gizmo.Red)
	buf.Line(chest, r3.Add(chest, rigmath.Forward(c.Reference)), gizmo.Blue)
}
