package locomotion

import (
	"charrig/internal/engine"
	"charrig/internal/physics"
	"charrig/internal/rigmath"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Input is the per-tick intent, already in global coordinates.
type Input struct {
	Movement r3.Vec
	Jump     bool
}

// Velocity is the character's own velocity bookkeeping. Horizontal lives
// in the world XZ plane; Vertical is along the character's up while on
// stage and along world Y while airborne.
type Velocity struct {
	Horizontal r2.Vec
	Vertical   float64
}

// Character is the locomotion component stored on the character root.
type Character struct {
	Params   Parameters
	Input    Input
	Velocity Velocity
	Phase    Phase
	// Reference maps camera-local directions into the character's frame.
	Reference quat.Number
}

// NewCharacter returns an airborne character at rest.
func NewCharacter(params Parameters) Character {
	return Character{
		Params:    params,
		Phase:     Airborne(),
		Reference: rigmath.Identity(),
	}
}

// Prober answers the ground ray queries. *physics.World satisfies it.
type Prober interface {
	CastRay(origin, direction r3.Vec, maxDistance float64, solid bool, filter physics.QueryFilter) (physics.Hit, bool)
}

// Probe is the world-space hips geometry sampled after integration.
type Probe struct {
	Hips      r3.Vec
	Down      r3.Vec
	HipHeight float64
	Filter    physics.QueryFilter
}

// Feet is the point one hip height below the hips along their down axis.
func (p Probe) Feet() r3.Vec {
	return r3.Add(p.Hips, r3.Scale(p.HipHeight, p.Down))
}

// TryJump converts a pending upward on-stage velocity into airborne motion.
// The upward vector is split into the world frame so the next tick does
// not re-snap the character to the ground it just left.
func (c *Character) TryJump(root *engine.Transform) (Transition, bool) {
	if !c.Phase.IsOnStage() || c.Velocity.Vertical <= 0 {
		return Transition{}, false
	}
	jump := r3.Scale(c.Velocity.Vertical, root.Up())
	c.Velocity.Horizontal = r2.Add(c.Velocity.Horizontal, rigmath.XZ(jump))
	c.Velocity.Vertical = jump.Y
	root.Rotation = rigmath.Identity()

	from := c.Phase
	c.Phase = Airborne()
	return Transition{Kind: Jumped, From: from, To: c.Phase, Point: root.Position}, true
}

// UpdateHorizontal steers the horizontal velocity toward the input. up is
// the character's current up axis.
func (c *Character) UpdateHorizontal(up r3.Vec) {
	p := c.Params
	desired := r3.Scale(p.SpeedScale, c.Input.Movement)
	flat := rigmath.XZ(rigmath.Rotate(rigmath.RotationArc(up, rigmath.UnitY), desired))

	rate := p.HorizontalDrag
	if !rigmath.IsZero(c.Input.Movement) {
		rate = p.HorizontalAcceleration
	}
	c.Velocity.Horizontal = rigmath.MoveTowardsVec2(c.Velocity.Horizontal, flat, rate)
}

// UpdateVertical applies the jump impulse on stage or gravity in the air.
func (c *Character) UpdateVertical() {
	p := c.Params
	if c.Phase.IsOnStage() {
		if c.Input.Jump {
			c.Velocity.Vertical += p.JumpImpulse
		}
		return
	}
	c.Velocity.Vertical = rigmath.Clamp(c.Velocity.Vertical-p.DownAcceleration, -p.MaxDownSpeed, p.MaxUpSpeed)
}

// BodyVelocity composes the world velocity handed to the physics body.
func (c *Character) BodyVelocity(up r3.Vec) r3.Vec {
	h := c.Velocity.Horizontal
	if !c.Phase.IsOnStage() {
		return rigmath.FromXZ(h, c.Velocity.Vertical)
	}
	along := rigmath.Rotate(rigmath.RotationArc(rigmath.UnitY, up), rigmath.FromXZ(h, 0))
	return r3.Add(along, r3.Scale(c.Velocity.Vertical, up))
}

// SnapToGround keeps an on-stage character bound to the surface under its
// hips. When the hips probe misses and the body moves upward a short probe
// from the feet along world down is tried. When both miss the character
// becomes airborne with an upright orientation.
func (c *Character) SnapToGround(root *engine.Transform, probe Probe, bodyVelocity r3.Vec, world Prober) (Transition, bool) {
	if !c.Phase.IsOnStage() {
		return Transition{}, false
	}
	p := c.Params
	hit, ok := world.CastRay(probe.Hips, probe.Down, probe.HipHeight+p.HipSkin, true, probe.Filter)
	if !ok && bodyVelocity.Y > 0 {
		hit, ok = world.CastRay(probe.Feet(), rigmath.NegUnitY, p.FeetSnapDistance, true, probe.Filter)
	}

	from := c.Phase
	if !ok {
		root.Rotation = rigmath.Identity()
		c.Phase = Airborne()
		return Transition{Kind: Left, From: from, To: c.Phase, Point: root.Position}, true
	}

	snap(root, hit)
	c.Phase = OnStage(hit.Entity)
	if g, _ := from.Ground(); g != hit.Entity {
		return Transition{Kind: Rebound, From: from, To: c.Phase, Point: hit.Point, Normal: hit.Normal}, true
	}
	return Transition{}, false
}

// TryLand binds a falling character to the surface under its hips. It
// zeroes the vertical component of bodyVelocity on landing.
func (c *Character) TryLand(root *engine.Transform, probe Probe, bodyVelocity *r3.Vec, world Prober) (Transition, bool) {
	if c.Phase.IsOnStage() || c.Velocity.Vertical > 0 {
		return Transition{}, false
	}
	hit, ok := world.CastRay(probe.Hips, probe.Down, probe.HipHeight+c.Params.HipSkin, true, probe.Filter)
	if !ok {
		return Transition{}, false
	}

	snap(root, hit)
	bodyVelocity.Y = 0
	c.Velocity.Vertical = 0

	from := c.Phase
	c.Phase = OnStage(hit.Entity)
	return Transition{Kind: Landed, From: from, To: c.Phase, Point: hit.Point, Normal: hit.Normal}, true
}

// snap aligns the root's up with the hit normal and moves it onto the hit.
func snap(root *engine.Transform, hit physics.Hit) {
	arc := rigmath.RotationArc(root.Up(), hit.Normal)
	root.Rotation = rigmath.Normalize(rigmath.Mul(arc, root.Rotation))
	root.Position = hit.Point
}
