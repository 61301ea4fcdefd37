package input

import (
	"fmt"

	"charrig/internal/camera"
	"charrig/internal/rigmath"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Bindings maps actions to keys and buttons.
type Bindings struct {
	Forward, Back, Left, Right Key
	Jump                       Key
	RollLeft, RollRight        Button
	ResetRoll                  Button
}

// DefaultBindings returns WASD, Space and the three mouse buttons.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:   KeyW,
		Back:      KeyS,
		Left:      KeyA,
		Right:     KeyD,
		Jump:      KeySpace,
		RollLeft:  ButtonLeft,
		RollRight: ButtonRight,
		ResetRoll: ButtonMiddle,
	}
}

// Sensitivity scales raw deltas into camera intent.
type Sensitivity struct {
	Look     float64 `yaml:"look"`
	Zoom     float64 `yaml:"zoom"`
	Height   float64 `yaml:"height"`
	Focus    float64 `yaml:"focus"`
	RollRate float64 `yaml:"roll_rate"`
}

// DefaultSensitivity returns the stock mouse tuning.
func DefaultSensitivity() Sensitivity {
	return Sensitivity{Look: 0.001, Zoom: 0.1, Height: 0.5, Focus: 1, RollRate: 0.01}
}

func (s Sensitivity) Validate() error {
	if s.Look < 0 || s.Zoom < 0 || s.Height < 0 || s.Focus < 0 || s.RollRate < 0 {
		return fmt.Errorf("input sensitivities must not be negative: %+v", s)
	}
	return nil
}

// Mapper turns frames into intent.
type Mapper struct {
	Bindings    Bindings
	Sensitivity Sensitivity
}

// NewMapper returns a mapper with the default bindings.
func NewMapper(s Sensitivity) Mapper {
	return Mapper{Bindings: DefaultBindings(), Sensitivity: s}
}

// CameraIntent maps mouse motion, wheel and buttons to desired-state
// deltas. Dragging up raises the orbit and lowers the focus point.
func (m Mapper) CameraIntent(f Frame) camera.Intent {
	s := m.Sensitivity
	look := f.MouseDelta.Y * s.Look
	in := camera.Intent{
		Distance:  -f.Wheel * s.Zoom,
		Rotation:  f.MouseDelta.X * s.Look,
		Height:    -look * s.Height,
		FocusY:    -look * s.Focus,
		ResetRoll: f.ButtonJustPressed(m.Bindings.ResetRoll),
	}
	if f.ButtonHeld(m.Bindings.RollLeft) {
		in.Roll -= s.RollRate
	}
	if f.ButtonHeld(m.Bindings.RollRight) {
		in.Roll += s.RollRate
	}
	return in
}

// MovementIntent returns the held direction keys as a camera-local vector:
// forward is -Z and right is +X. Diagonals are normalized.
func (m Mapper) MovementIntent(f Frame) r3.Vec {
	var v r3.Vec
	if f.Held(m.Bindings.Forward) {
		v.Z--
	}
	if f.Held(m.Bindings.Back) {
		v.Z++
	}
	if f.Held(m.Bindings.Right) {
		v.X++
	}
	if f.Held(m.Bindings.Left) {
		v.X--
	}
	return rigmath.NormalizeOrZero(v)
}

// JumpPressed reports a jump edge in f.
func (m Mapper) JumpPressed(f Frame) bool {
	return f.JustPressed(m.Bindings.Jump)
}

// ReferenceRotation maps camera-local directions into the character's
// frame: the camera orientation followed by the arc that carries the
// camera up onto the character up.
func ReferenceRotation(cameraOrientation quat.Number, cameraUp, characterUp r3.Vec) quat.Number {
	arc := rigmath.RotationArc(rigmath.NormalizeOrZero(cameraUp), rigmath.NormalizeOrZero(characterUp))
	return rigmath.Normalize(rigmath.Mul(arc, cameraOrientation))
}

// ToCharacter rotates a camera-local intent by reference and lays it on
// the character's horizontal plane with its original length, so camera
// pitch never shortens the stride.
func ToCharacter(local r3.Vec, reference quat.Number, characterUp r3.Vec) r3.Vec {
	length := r3.Norm(local)
	if length == 0 {
		return r3.Vec{}
	}
	global := rigmath.Rotate(reference, local)
	planar := rigmath.NormalizeOrZero(rigmath.ProjectOnPlane(global, characterUp))
	return r3.Scale(length, planar)
}

// JumpLatch carries a jump edge from the frame it was seen in to the next
// fixed tick.
type JumpLatch struct {
	pending bool
}

// Set latches a jump.
func (l *JumpLatch) Set() { l.pending = true }

// Consume returns the latched jump once.
func (l *JumpLatch) Consume() bool {
	p := l.pending
	l.pending = false
	return p
}

// Pending reports a latched jump without consuming it.
func (l *JumpLatch) Pending() bool { return l.pending }
