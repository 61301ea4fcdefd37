package engine

import (
	"fmt"
	"log/slog"
	"time"
)

// Stage groups systems that run together. Fixed stages run zero or more
// times per frame at the clock's step; the others run once per frame.
type Stage int

const (
	// PreUpdate runs once per frame before any fixed tick.
	PreUpdate Stage = iota
	FixedPreUpdate
	FixedUpdate
	FixedPostUpdate
	// Update runs once per frame after the fixed ticks.
	Update
	PostUpdate
	stageCount
)

var stageNames = [stageCount]string{
	"PreUpdate", "FixedPreUpdate", "FixedUpdate", "FixedPostUpdate", "Update", "PostUpdate",
}

func (s Stage) String() string {
	if s < 0 || s >= stageCount {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Fixed reports whether the stage runs on the fixed clock.
func (s Stage) Fixed() bool {
	return s >= FixedPreUpdate && s <= FixedPostUpdate
}

// System is one unit of per-stage work. dt is in seconds.
type System interface {
	Name() string
	Update(dt float64) error
}

type funcSystem struct {
	name string
	fn   func(dt float64) error
}

func (f funcSystem) Name() string            { return f.name }
func (f funcSystem) Update(dt float64) error { return f.fn(dt) }

// SystemFunc adapts a function to System.
func SystemFunc(name string, fn func(dt float64) error) System {
	return funcSystem{name: name, fn: fn}
}

type entry struct {
	system   System
	notReady bool
}

// Schedule runs systems in registration order within each stage and drives
// the fixed stages from a Clock.
type Schedule struct {
	Clock  *Clock
	Logger *slog.Logger

	stages [stageCount][]*entry
	names  map[string]Stage
}

func NewSchedule(clock *Clock, logger *slog.Logger) *Schedule {
	if logger == nil {
		logger = slog.Default()
	}
	return &Schedule{
		Clock:  clock,
		Logger: logger,
		names:  make(map[string]Stage),
	}
}

// Add appends sys to stage. Registering two systems with the same name
// panics.
func (s *Schedule) Add(stage Stage, sys System) {
	if stage < 0 || stage >= stageCount {
		panic(fmt.Sprintf("unknown stage %d", int(stage)))
	}
	if prev, exists := s.names[sys.Name()]; exists {
		panic(fmt.Sprintf("system %q already registered in %s", sys.Name(), prev))
	}
	s.names[sys.Name()] = stage
	s.stages[stage] = append(s.stages[stage], &entry{system: sys})
}

// Systems lists the system names of stage in run order.
func (s *Schedule) Systems(stage Stage) []string {
	out := make([]string, 0, len(s.stages[stage]))
	for _, e := range s.stages[stage] {
		out = append(out, e.system.Name())
	}
	return out
}

// RunStage runs every system of stage once. A system reporting
// ErrNotReady is skipped for this run; any other error aborts the stage.
func (s *Schedule) RunStage(stage Stage, dt float64) error {
	for _, e := range s.stages[stage] {
		err := e.system.Update(dt)
		switch {
		case err == nil:
			if e.notReady {
				s.Logger.Debug("system ready", "system", e.system.Name())
				e.notReady = false
			}
		case IsNotReady(err):
			if !e.notReady {
				s.Logger.Debug("system skipped", "system", e.system.Name(), "reason", err.Error())
				e.notReady = true
			}
		default:
			return fmt.Errorf("%s/%s: %w", stage, e.system.Name(), err)
		}
	}
	return nil
}

// Tick runs the fixed stages exactly once.
func (s *Schedule) Tick() error {
	dt := s.Clock.StepSeconds()
	for stage := FixedPreUpdate; stage <= FixedPostUpdate; stage++ {
		if err := s.RunStage(stage, dt); err != nil {
			return err
		}
	}
	s.Clock.Ticks++
	return nil
}

// Frame advances the schedule by one rendered frame of length frame: the
// per-frame pre stage, as many fixed ticks as the clock allows, then the
// variable stages. It returns the number of fixed ticks run.
func (s *Schedule) Frame(frame time.Duration) (int, error) {
	dt := frame.Seconds()
	if err := s.RunStage(PreUpdate, dt); err != nil {
		return 0, err
	}
	n := s.Clock.Advance(frame)
	for i := 0; i < n; i++ {
		if err := s.Tick(); err != nil {
			return i, err
		}
	}
	for _, stage := range []Stage{Update, PostUpdate} {
		if err := s.RunStage(stage, dt); err != nil {
			return n, err
		}
	}
	return n, nil
}
