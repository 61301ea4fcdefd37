// Package camera implements the orbital camera rig: a desired state written
// by input, a current state that chases it through damped cells, and the
// world transform derived from the current state.
package camera

import (
	"fmt"
	"math"

	"charrig/internal/rigmath"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// State is one full set of camera parameters. Orbit is relative to the
// followed origin in its up-aligned frame; Focus is the look-at offset in
// the same frame.
type State struct {
	Orbit rigmath.Cylindrical `yaml:"orbit"`
	Focus r3.Vec              `yaml:"focus"`
	Roll  float64             `yaml:"roll"`
}

// Anchor selects the up axis of the orbit frame.
type Anchor string

const (
	// AnchorCharacter tilts the orbit with the followed character's up.
	AnchorCharacter Anchor = "character"
	// AnchorWorld keeps the orbit on world +Y.
	AnchorWorld Anchor = "world"
)

// Settings tune the rig.
type Settings struct {
	SmoothTime       float64 `yaml:"smooth_time"`
	FollowSmoothTime float64 `yaml:"follow_smooth_time"`
	// UpRate is the fraction per second by which the frame up turns
	// toward its target.
	UpRate      float64 `yaml:"up_rate"`
	MinDistance float64 `yaml:"min_distance"`
	Anchor      Anchor  `yaml:"anchor"`
	Initial     State   `yaml:"initial"`
}

// DefaultSettings returns the tuning of the test zone camera.
func DefaultSettings() Settings {
	return Settings{
		SmoothTime:       0.1,
		FollowSmoothTime: 0.05,
		UpRate:           3.33,
		MinDistance:      1,
		Anchor:           AnchorCharacter,
		Initial: State{
			Orbit: rigmath.Cylindrical{Distance: 15, Rotation: 0, Height: 5},
			Focus: r3.Vec{Y: 4},
		},
	}
}

// Validate checks the tuning.
func (s Settings) Validate() error {
	if s.SmoothTime <= 0 {
		return fmt.Errorf("camera.smooth_time must be positive, got %v", s.SmoothTime)
	}
	if s.FollowSmoothTime < 0 || s.UpRate < 0 || s.MinDistance < 0 {
		return fmt.Errorf("camera.follow_smooth_time, up_rate and min_distance must not be negative")
	}
	switch s.Anchor {
	case AnchorCharacter, AnchorWorld:
	default:
		return fmt.Errorf("camera.anchor must be %q or %q, got %q", AnchorCharacter, AnchorWorld, s.Anchor)
	}
	if s.Initial.Orbit.Distance < s.MinDistance {
		return fmt.Errorf("camera.initial.orbit.distance %v is below min_distance %v", s.Initial.Orbit.Distance, s.MinDistance)
	}
	return nil
}

// Intent is one frame of camera input, expressed as deltas on the desired
// state.
type Intent struct {
	Distance  float64
	Rotation  float64
	Height    float64
	FocusY    float64
	Roll      float64
	ResetRoll bool
}

// Rig is the camera component. Each quantity is an independent damped
// cell; Rotation uses the angle-aware cell.
type Rig struct {
	Settings Settings

	Distance rigmath.Damped[float64]
	Rotation rigmath.Damped[float64]
	Height   rigmath.Damped[float64]
	Focus    rigmath.Damped[r3.Vec]
	Roll     rigmath.Damped[float64]

	// Origin follows the character position.
	Origin rigmath.Damped[r3.Vec]
	// Up is the current orbit frame up; it turns toward upTarget.
	Up       r3.Vec
	upTarget r3.Vec
}

// NewRig returns a rig at rest around origin.
func NewRig(s Settings, origin r3.Vec) Rig {
	st := s.SmoothTime
	in := s.Initial
	return Rig{
		Settings: s,
		Distance: rigmath.NewDampedScalar(in.Orbit.Distance, st),
		Rotation: rigmath.NewDampedAngle(in.Orbit.Rotation, st),
		Height:   rigmath.NewDampedScalar(in.Orbit.Height, st),
		Focus:    rigmath.NewDampedVec(in.Focus, st),
		Roll:     rigmath.NewDampedScalar(in.Roll, st),
		Origin:   rigmath.NewDampedVec(origin, s.FollowSmoothTime),
		Up:       rigmath.UnitY,
		upTarget: rigmath.UnitY,
	}
}

// Retune applies new settings without disturbing the current motion.
func (r *Rig) Retune(s Settings) {
	r.Settings = s
	for _, c := range []*rigmath.Damped[float64]{&r.Distance, &r.Rotation, &r.Height, &r.Roll} {
		c.SmoothTime = s.SmoothTime
	}
	r.Focus.SmoothTime = s.SmoothTime
	r.Origin.SmoothTime = s.FollowSmoothTime
}

// Desired returns the state input has asked for.
func (r *Rig) Desired() State {
	return State{
		Orbit: rigmath.Cylindrical{Distance: r.Distance.Desired, Rotation: r.Rotation.Desired, Height: r.Height.Desired},
		Focus: r.Focus.Desired,
		Roll:  r.Roll.Desired,
	}
}

// Current returns the filtered state.
func (r *Rig) Current() State {
	return State{
		Orbit: rigmath.Cylindrical{Distance: r.Distance.Current, Rotation: r.Rotation.Current, Height: r.Height.Current},
		Focus: r.Focus.Current,
		Roll:  r.Roll.Current,
	}
}

// ApplyIntent adds one frame of input to the desired state.
func (r *Rig) ApplyIntent(in Intent) {
	r.Distance.Desired = math.Max(r.Distance.Desired+in.Distance, r.Settings.MinDistance)
	r.Rotation.Desired += in.Rotation
	r.Height.Desired += in.Height
	r.Focus.Desired.Y += in.FocusY
	r.Roll.Desired += in.Roll
	if in.ResetRoll {
		r.ResetRoll()
	}
}

// ResetRoll zeroes the desired roll. The current roll and its velocity are
// left to the filter.
func (r *Rig) ResetRoll() {
	r.Roll.Desired = 0
}

// Follow sets the origin and up the orbit frame should move to.
func (r *Rig) Follow(origin, up r3.Vec) {
	r.Origin.Desired = origin
	if r.Settings.Anchor == AnchorWorld {
		up = rigmath.UnitY
	}
	if u := rigmath.NormalizeOrZero(up); !rigmath.IsZero(u) {
		r.upTarget = u
	}
}

// Advance moves every current quantity one step of dt toward its target.
func (r *Rig) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	r.Distance.Advance(dt)
	r.Rotation.Advance(dt)
	r.Height.Advance(dt)
	r.Focus.Advance(dt)
	r.Roll.Advance(dt)
	r.Origin.Advance(dt)

	r.Up = turnUp(r.Up, r.upTarget, math.Min(1, r.Settings.UpRate*dt))
}

// turnUp turns up toward target by the fraction s of the angle between
// them. Opposite vectors share no plane, so they turn about an axis
// orthogonal to up.
func turnUp(up, target r3.Vec, s float64) r3.Vec {
	if r3.Dot(up, target) <= -1+1e-6 {
		axis, angle := rigmath.ToAxisAngle(rigmath.RotationArc(up, target))
		return rigmath.NormalizeOrZero(rigmath.Rotate(rigmath.AxisAngle(axis, angle*s), up))
	}
	next := rigmath.NormalizeOrZero(rigmath.Slerp(up, target, s))
	if rigmath.IsZero(next) {
		return target
	}
	return next
}

// Transform returns the camera pose for the current state.
func (r *Rig) Transform() (r3.Vec, quat.Number) {
	return Transform(r.Current(), r.Origin.Current, r.Up)
}

// Transform derives a camera pose from state around origin in the frame
// whose up axis is up. The camera looks at the focus point with up as its
// reference and is then rolled about its own forward axis.
func Transform(state State, origin, up r3.Vec) (r3.Vec, quat.Number) {
	frame := rigmath.RotationArc(rigmath.UnitY, up)
	position := r3.Add(origin, rigmath.Rotate(frame, state.Orbit.Vec()))
	focus := r3.Add(origin, rigmath.Rotate(frame, state.Focus))
	look := rigmath.LookRotation(r3.Sub(focus, position), up)
	roll := rigmath.AxisAngle(rigmath.UnitZ, state.Roll)
	return position, rigmath.Normalize(rigmath.Mul(look, roll))
}
