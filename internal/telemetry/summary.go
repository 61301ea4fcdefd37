package telemetry

import (
	"log/slog"
	"math"

	"charrig/internal/locomotion"
)

// Summary aggregates a run.
type Summary struct {
	Ticks         int
	AirborneTicks int
	Jumps         int
	Landings      int
	Leaves        int
	Rebinds       int
	MaxFallSpeed  float64
	MaxSpeed      float64
	LastPhase     string
}

// Observe folds one sample into the summary.
func (s *Summary) Observe(sample Sample) {
	s.Ticks++
	if sample.Phase == locomotion.Airborne().String() {
		s.AirborneTicks++
	}
	s.MaxFallSpeed = math.Max(s.MaxFallSpeed, -sample.Vertical)
	s.MaxSpeed = math.Max(s.MaxSpeed, sample.HorizontalSpeed)
	s.LastPhase = sample.Phase
}

// Record counts a phase transition.
func (s *Summary) Record(t locomotion.Transition) {
	switch t.Kind {
	case locomotion.Jumped:
		s.Jumps++
	case locomotion.Landed:
		s.Landings++
	case locomotion.Left:
		s.Leaves++
	case locomotion.Rebound:
		s.Rebinds++
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("ticks", s.Ticks),
		slog.Int("airborne_ticks", s.AirborneTicks),
		slog.Int("jumps", s.Jumps),
		slog.Int("landings", s.Landings),
		slog.Int("leaves", s.Leaves),
		slog.Int("rebinds", s.Rebinds),
		slog.Float64("max_fall_speed", s.MaxFallSpeed),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.String("phase", s.LastPhase),
	)
}
