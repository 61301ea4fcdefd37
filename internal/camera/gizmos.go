package camera

import (
	"charrig/internal/gizmo"
	"charrig/internal/rigmath"

	"gonum.org/v1/gonum/spatial/r3"
)

const focusRadius = 0.5

// Gizmos draws the current (white) and desired (yellow) focus points and
// the current orbit cylinder slice.
func (r *Rig) Gizmos(buf *gizmo.Buffer) {
	frame := rigmath.RotationArc(rigmath.UnitY, r.Up)
	origin := r.Origin.Current
	cur := r.Current()

	buf.Sphere(r3.Add(origin, rigmath.Rotate(frame, cur.Focus)), focusRadius, gizmo.White)
	buf.Sphere(r3.Add(origin, rigmath.Rotate(frame, r.Focus.Desired)), focusRadius, gizmo.Yellow)

	ring := r3.Add(origin, r3.Scale(cur.Orbit.Height, r.Up))
	buf.Circle(ring, r.Up, cur.Orbit.Distance, gizmo.Gray)
	buf.Line(origin, ring, gizmo.Green)
	buf.Line(ring, r3.Add(origin, rigmath.Rotate(frame, cur.Orbit.Vec())), gizmo.Cyan)
}
