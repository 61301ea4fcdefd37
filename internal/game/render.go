package game

import (
	"math"

	"charrig/internal/assets"
	"charrig/internal/gizmo"
	"charrig/internal/physics"
	"charrig/internal/rigmath"
	"charrig/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	fovY      = 45.0
	nearPlane = 0.1
	farPlane  = 1000.0
)

func vec(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// axisAngle converts q to the axis and degree angle raylib draws with.
func axisAngle(q quat.Number) (rl.Vector3, float32) {
	axis, angle := rigmath.ToAxisAngle(q)
	return vec(axis), float32(angle * 180 / math.Pi)
}

// raylibCamera converts the rig camera pose.
func raylibCamera(pos r3.Vec, rot quat.Number) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec(pos),
		Target:     vec(r3.Add(pos, rigmath.Forward(rot))),
		Up:         vec(rigmath.Up(rot)),
		Fovy:       fovY,
		Projection: rl.CameraPerspective,
	}
}

// drawZone draws every zone object inside the view frustum and returns
// how many were drawn.
func (g *Game) drawZone(pos r3.Vec, rot quat.Number) int {
	aspect := float64(rl.GetScreenWidth()) / float64(rl.GetScreenHeight())
	frustum := world.NewFrustum(pos, rot, fovY*math.Pi/180, aspect, nearPlane, farPlane)

	zone := g.Sim.Zone
	visible := zone.Visible(frustum)
	for _, e := range visible {
		col, err := zone.Physics.Collider(e)
		if err != nil {
			continue
		}
		t, err := zone.Physics.Scene.WorldTransform(e)
		if err != nil {
			continue
		}
		look, _ := zone.Appearance(e)
		tint := assets.LookupColor(look.Color)
		axis, angle := axisAngle(t.Rotation)
		center := vec(t.Apply(col.Offset))

		switch col.Shape {
		case physics.BoxShape:
			size := vec(r3.Scale(2, col.HalfExtents))
			rl.DrawModelEx(assets.Model(assets.Box), center, axis, angle, size, tint)
		case physics.SphereShape:
			r := float32(col.Radius)
			rl.DrawModelEx(assets.Model(assets.Sphere), center, axis, angle, rl.Vector3{X: r, Y: r, Z: r}, tint)
		}
	}
	return len(visible)
}

// drawCharacter draws the character as a body cylinder along its up axis
// with the hips sphere on top.
func (g *Game) drawCharacter() {
	ch, err := g.Sim.Rig.FetchCharacter()
	if err != nil {
		return
	}
	up := ch.Root.Up()
	hips, err := g.Sim.Scene.WorldTransform(ch.Hips)
	if err != nil {
		return
	}
	radius := float32(g.Sim.Config.Character.HipRadius)
	color := rl.SkyBlue
	if !ch.Character.Phase.IsOnStage() {
		color = rl.Orange
	}
	rl.DrawCylinderEx(vec(ch.Root.Position), vec(hips.Position), radius*0.6, radius*0.8, 12, color)
	rl.DrawSphere(vec(hips.Position), radius, color)
	rl.DrawSphere(vec(r3.Add(hips.Position, r3.Scale(0.6, up))), radius*0.7, color)
}

// drawGizmos draws the debug shapes collected this frame.
func drawGizmos(buf *gizmo.Buffer) {
	for _, s := range buf.Shapes {
		switch s.Kind {
		case gizmo.Line:
			rl.DrawLine3D(vec(s.From), vec(s.To), s.Color)
		case gizmo.Arrow:
			rl.DrawLine3D(vec(s.From), vec(s.To), s.Color)
			rl.DrawSphere(vec(s.To), 0.05, s.Color)
		case gizmo.Sphere:
			rl.DrawSphereWires(vec(s.Center), float32(s.Radius), 8, 8, s.Color)
		case gizmo.Circle:
			pts := gizmo.CirclePoints(s, 32)
			for i := 1; i < len(pts); i++ {
				rl.DrawLine3D(vec(pts[i-1]), vec(pts[i]), s.Color)
			}
		}
	}
}
