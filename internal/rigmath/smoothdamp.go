package rigmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MinSmoothTime is the lower bound applied to every smoothing time.
const MinSmoothTime = 1e-4

// dampCoefficients returns omega and the polynomial approximation of
// exp(-omega*dt) from Game Programming Gems 4, chapter 1.10.
func dampCoefficients(smoothTime, dt float64) (omega, exp float64) {
	omega = 2 / smoothTime
	x := omega * dt
	exp = 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	return omega, exp
}

// SmoothDamp moves current towards target with a critically damped spring.
// velocity is the memory cell carried between calls; the updated value and
// velocity are returned. maxSpeed may be math.Inf(1).
//
// The result never passes target: when a step would cross it the output
// lands exactly on target with zero velocity. A zero dt returns the inputs
// unchanged.
func SmoothDamp(current, target, velocity, smoothTime, maxSpeed, dt float64) (float64, float64) {
	if dt <= 0 {
		return current, velocity
	}
	smoothTime = math.Max(MinSmoothTime, smoothTime)
	omega, exp := dampCoefficients(smoothTime, dt)

	change := current - target
	originalTo := target

	maxChange := maxSpeed * smoothTime
	change = Clamp(change, -maxChange, maxChange)
	target = current - change

	temp := (velocity + omega*change) * dt
	velocity = (velocity - omega*temp) * exp
	output := target + (change+temp)*exp

	// Overshoot: snap onto the original target.
	if (originalTo-current > 0) == (output > originalTo) {
		output = originalTo
		velocity = (output - originalTo) / dt
	}
	return output, velocity
}

// SmoothDampVec is SmoothDamp for vectors. The speed clamp applies to the
// combined magnitude of the change, not per component.
func SmoothDampVec(current, target, velocity r3.Vec, smoothTime, maxSpeed, dt float64) (r3.Vec, r3.Vec) {
	if dt <= 0 {
		return current, velocity
	}
	smoothTime = math.Max(MinSmoothTime, smoothTime)
	omega, exp := dampCoefficients(smoothTime, dt)

	change := r3.Sub(current, target)
	originalTo := target

	maxChange := maxSpeed * smoothTime
	if sq := r3.Norm2(change); sq > maxChange*maxChange {
		change = r3.Scale(maxChange/math.Sqrt(sq), change)
	}
	target = r3.Sub(current, change)

	temp := r3.Scale(dt, r3.Add(velocity, r3.Scale(omega, change)))
	velocity = r3.Scale(exp, r3.Sub(velocity, r3.Scale(omega, temp)))
	output := r3.Add(target, r3.Scale(exp, r3.Add(change, temp)))

	if r3.Dot(r3.Sub(originalTo, current), r3.Sub(output, originalTo)) > 0 {
		output = originalTo
		velocity = r3.Scale(1/dt, r3.Sub(output, originalTo))
	}
	return output, velocity
}
