package engine

import "time"

// DefaultStep is the fixed simulation step, 64 ticks per second.
const DefaultStep = 15625 * time.Microsecond

// DefaultMaxTicks caps catch-up ticks per frame so a long stall does not
// spiral.
const DefaultMaxTicks = 8

// Clock accumulates frame time and hands it out in fixed steps.
type Clock struct {
	Step     time.Duration
	MaxTicks int
	Ticks    uint64

	accumulator time.Duration
}

func NewClock(step time.Duration, maxTicks int) *Clock {
	if step <= 0 {
		step = DefaultStep
	}
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	return &Clock{Step: step, MaxTicks: maxTicks}
}

// StepSeconds returns the fixed step in seconds.
func (c *Clock) StepSeconds() float64 {
	return c.Step.Seconds()
}

// Advance adds frame to the accumulator and returns how many fixed steps
// are due. Time beyond MaxTicks steps is dropped.
func (c *Clock) Advance(frame time.Duration) int {
	if frame > 0 {
		c.accumulator += frame
	}
	n := int(c.accumulator / c.Step)
	if n > c.MaxTicks {
		n = c.MaxTicks
		c.accumulator = 0
		return n
	}
	c.accumulator -= time.Duration(n) * c.Step
	return n
}

// Alpha is the fraction of a step left in the accumulator, for render
// interpolation.
func (c *Clock) Alpha() float64 {
	return float64(c.accumulator) / float64(c.Step)
}
