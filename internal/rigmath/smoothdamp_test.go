package rigmath

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const tickDT = 0.015625

func TestSmoothDampFixedPoint(t *testing.T) {
	tests := []struct {
		name       string
		x          float64
		smoothTime float64
		dt         float64
	}{
		{"zero", 0, 0.1, tickDT},
		{"positive", 12.5, 0.3, 1.0 / 60},
		{"negative", -4, 1e-6, 0.5},
		{"zero dt", 3, 0.1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, vel := SmoothDamp(tt.x, tt.x, 0, tt.smoothTime, math.Inf(1), tt.dt)
			if got != tt.x || vel != 0 {
				t.Errorf("Expected (%v, 0), got (%v, %v)", tt.x, got, vel)
			}
		})
	}
}

func TestSmoothDampConvergesWithoutOvershoot(t *testing.T) {
	tests := []struct {
		name            string
		current, target float64
	}{
		{"rising", 15, 30},
		{"falling", 30, -2},
		{"tiny", 0, 1e-3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur, vel := tt.current, 0.0
			initial := math.Abs(tt.target - tt.current)
			prev := initial
			for i := 0; i < 640; i++ {
				cur, vel = SmoothDamp(cur, tt.target, vel, 0.1, math.Inf(1), tickDT)
				gap := math.Abs(tt.target - cur)
				if gap > initial {
					t.Fatalf("Expected gap <= %v, got %v at tick %d", initial, gap, i)
				}
				if gap > prev+1e-12 {
					t.Fatalf("Expected non-increasing gap, got %v after %v at tick %d", gap, prev, i)
				}
				if tt.target > tt.current && cur > tt.target {
					t.Fatalf("Expected no overshoot past %v, got %v", tt.target, cur)
				}
				if tt.target < tt.current && cur < tt.target {
					t.Fatalf("Expected no overshoot past %v, got %v", tt.target, cur)
				}
				prev = gap
			}
			if !scalar.EqualWithinAbs(cur, tt.target, 1e-6) {
				t.Errorf("Expected convergence to %v, got %v", tt.target, cur)
			}
		})
	}
}

func TestSmoothDampMaxSpeed(t *testing.T) {
	cur, vel := 0.0, 0.0
	for i := 0; i < 10; i++ {
		next, v := SmoothDamp(cur, 100, vel, 0.5, 2, tickDT)
		if speed := (next - cur) / tickDT; speed > 2+1e-9 {
			t.Fatalf("Expected speed <= 2, got %v", speed)
		}
		cur, vel = next, v
	}
}

func TestSmoothDampOvershootSnaps(t *testing.T) {
	// A large incoming velocity would carry the value past the target.
	got, vel := SmoothDamp(9.9, 10, 50, 0.1, math.Inf(1), tickDT)
	if got != 10 {
		t.Errorf("Expected snap to 10, got %v", got)
	}
	if vel != 0 {
		t.Errorf("Expected zero velocity after snap, got %v", vel)
	}
}

func TestSmoothDampVec(t *testing.T) {
	target := r3.Vec{X: 3, Y: -1, Z: 4}
	cur, vel := r3.Vec{}, r3.Vec{}
	initial := r3.Norm(target)
	for i := 0; i < 640; i++ {
		cur, vel = SmoothDampVec(cur, target, vel, 0.1, math.Inf(1), tickDT)
		if d := r3.Norm(r3.Sub(target, cur)); d > initial {
			t.Fatalf("Expected distance <= %v, got %v", initial, d)
		}
	}
	if d := r3.Norm(r3.Sub(target, cur)); d > 1e-6 {
		t.Errorf("Expected convergence, got distance %v", d)
	}

	same, v := SmoothDampVec(target, target, r3.Vec{}, 0.1, math.Inf(1), tickDT)
	if same != target || v != (r3.Vec{}) {
		t.Errorf("Expected fixed point at target, got %v %v", same, v)
	}
}

func TestSmoothDampVecMagnitudeClamp(t *testing.T) {
	// The clamp is on the combined magnitude: the step stays on the line
	// to the target.
	target := r3.Vec{X: 100, Z: 100}
	next, _ := SmoothDampVec(r3.Vec{}, target, r3.Vec{}, 0.5, 1, tickDT)
	if !scalar.EqualWithinAbs(next.X, next.Z, 1e-12) {
		t.Errorf("Expected equal X and Z, got %v", next)
	}
	if speed := r3.Norm(next) / tickDT; speed > 1+1e-9 {
		t.Errorf("Expected speed <= 1, got %v", speed)
	}
}
