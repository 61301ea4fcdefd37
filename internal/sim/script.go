package sim

import (
	"time"

	"charrig/internal/input"
)

// Cue is a batch of input events delivered before a frame.
type Cue struct {
	Frame  int
	Events []input.Event
}

// Script is an input timeline for headless runs, ordered by frame.
type Script []Cue

// DefaultScript exercises every phase transition: the character falls
// onto the floor, walks, turns the camera, jumps, walks again and plays
// with zoom and roll.
func DefaultScript() Script {
	return Script{
		{Frame: 100, Events: []input.Event{input.Press(input.KeyW)}},
		{Frame: 140, Events: []input.Event{input.Release(input.KeyW)}},
		{Frame: 170, Events: []input.Event{input.Motion(1571, 0)}},
		{Frame: 200, Events: []input.Event{input.Press(input.KeySpace)}},
		{Frame: 201, Events: []input.Event{input.Release(input.KeySpace)}},
		{Frame: 300, Events: []input.Event{input.Press(input.KeyW), input.Press(input.KeyD)}},
		{Frame: 340, Events: []input.Event{input.Release(input.KeyW), input.Release(input.KeyD)}},
		{Frame: 360, Events: []input.Event{input.Wheel(-50)}},
		{Frame: 380, Events: []input.Event{input.Click(input.ButtonLeft)}},
		{Frame: 420, Events: []input.Event{input.Unclick(input.ButtonLeft)}},
		{Frame: 430, Events: []input.Event{input.Click(input.ButtonMiddle)}},
		{Frame: 431, Events: []input.Event{input.Unclick(input.ButtonMiddle)}},
	}
}

// Run plays script for frames frames of length frame each.
func (s *Sim) Run(script Script, frames int, frame time.Duration) error {
	next := 0
	for f := 0; f < frames; f++ {
		for next < len(script) && script[next].Frame <= f {
			s.Push(script[next].Events...)
			next++
		}
		if _, err := s.Frame(frame); err != nil {
			return err
		}
	}
	s.Logger.Info("script finished", "frames", frames, "ticks", s.Schedule.Clock.Ticks)
	return nil
}
