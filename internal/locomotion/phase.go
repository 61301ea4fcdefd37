// Package locomotion implements the character's on-stage/airborne state
// machine: input to velocity, velocity to body velocity, and the raycast
// ground snap that binds the character to a surface.
package locomotion

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"
)

// Phase is either OnStage, bound to the ground entity the character stands
// on, or Airborne. The zero value is Airborne.
type Phase struct {
	ground  ecs.Entity
	onStage bool
}

// OnStage returns the phase bound to ground.
func OnStage(ground ecs.Entity) Phase {
	return Phase{ground: ground, onStage: true}
}

// Airborne returns the unbound phase.
func Airborne() Phase {
	return Phase{}
}

// Ground returns the bound surface, if any.
func (p Phase) Ground() (ecs.Entity, bool) {
	return p.ground, p.onStage
}

// IsOnStage reports whether the character is bound to a surface.
func (p Phase) IsOnStage() bool {
	return p.onStage
}

func (p Phase) String() string {
	if p.onStage {
		return "on-stage"
	}
	return "airborne"
}

// TransitionKind names a phase change.
type TransitionKind int

const (
	// Jumped: OnStage to Airborne through a jump.
	Jumped TransitionKind = iota
	// Left: OnStage to Airborne because both probes missed.
	Left
	// Landed: Airborne to OnStage.
	Landed
	// Rebound: OnStage on one surface to OnStage on another.
	Rebound
)

var transitionNames = [...]string{"jumped", "left", "landed", "rebound"}

func (k TransitionKind) String() string {
	if int(k) < len(transitionNames) {
		return transitionNames[k]
	}
	return fmt.Sprintf("TransitionKind(%d)", int(k))
}

// Transition is the effect of a phase change.
type Transition struct {
	Kind   TransitionKind
	From   Phase
	To     Phase
	Point  r3.Vec
	Normal r3.Vec
}

// LogValue implements slog.LogValuer.
func (t Transition) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", t.Kind.String()),
		slog.String("from", t.From.String()),
		slog.String("to", t.To.String()),
	}
	if g, ok := t.To.Ground(); ok {
		attrs = append(attrs, slog.Any("ground", g))
	}
	if t.Kind == Landed || t.Kind == Rebound {
		attrs = append(attrs, slog.Float64("y", t.Point.Y))
	}
	return slog.GroupValue(attrs...)
}
