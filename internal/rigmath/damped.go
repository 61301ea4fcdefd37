package rigmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// StepFunc advances current towards target, carrying velocity between
// calls. SmoothDamp and SmoothDampVec have this shape.
type StepFunc[T any] func(current, target, velocity T, smoothTime, maxSpeed, dt float64) (T, T)

// Damped is a filtered quantity: Desired is written by input, Current chases
// it through step, and Velocity is the filter memory.
type Damped[T any] struct {
	Current    T
	Desired    T
	Velocity   T
	SmoothTime float64
	MaxSpeed   float64

	step StepFunc[T]
}

// NewDamped returns a cell resting at initial.
func NewDamped[T any](initial T, smoothTime, maxSpeed float64, step StepFunc[T]) Damped[T] {
	return Damped[T]{
		Current:    initial,
		Desired:    initial,
		SmoothTime: smoothTime,
		MaxSpeed:   maxSpeed,
		step:       step,
	}
}

// NewDampedScalar returns a scalar cell with unbounded speed.
func NewDampedScalar(initial, smoothTime float64) Damped[float64] {
	return NewDamped(initial, smoothTime, math.Inf(1), SmoothDamp)
}

// NewDampedVec returns a vector cell with unbounded speed.
func NewDampedVec(initial r3.Vec, smoothTime float64) Damped[r3.Vec] {
	return NewDamped(initial, smoothTime, math.Inf(1), SmoothDampVec)
}

// NewDampedAngle returns an angle cell. It follows the shorter arc with a
// frame-rate independent exponential blend; Velocity holds the last
// observed angular speed and MaxSpeed is ignored.
func NewDampedAngle(initial, smoothTime float64) Damped[float64] {
	return NewDamped(initial, smoothTime, math.Inf(1), angleStep)
}

func angleStep(current, target, _ float64, smoothTime, _ float64, dt float64) (float64, float64) {
	if dt <= 0 {
		return current, 0
	}
	next := LerpAngle(current, target, BlendFactor(smoothTime, dt))
	return next, (next - current) / dt
}

// Advance moves Current one step of dt towards Desired.
func (d *Damped[T]) Advance(dt float64) {
	if d.step == nil {
		d.Current = d.Desired
		return
	}
	d.Current, d.Velocity = d.step(d.Current, d.Desired, d.Velocity, d.SmoothTime, d.MaxSpeed, dt)
}

// Snap places both Current and Desired at v and clears the velocity.
func (d *Damped[T]) Snap(v T) {
	var zero T
	d.Current = v
	d.Desired = v
	d.Velocity = zero
}
