package locomotion

import "fmt"

// Parameters tune the state machine. Accelerations and drag are per tick,
// speeds are units per second.
type Parameters struct {
	HorizontalAcceleration float64 `yaml:"horizontal_acceleration"`
	HorizontalDrag         float64 `yaml:"horizontal_drag"`
	SpeedScale             float64 `yaml:"speed_scale"`
	MaxDownSpeed           float64 `yaml:"max_down_speed"`
	MaxUpSpeed             float64 `yaml:"max_up_speed"`
	// DownAcceleration is the per-tick fall acceleration ("gravity").
	DownAcceleration float64 `yaml:"down_acceleration"`
	JumpImpulse      float64 `yaml:"jump_impulse"`
	// HipSkin extends the hips probe past the feet.
	HipSkin float64 `yaml:"hip_skin"`
	// FeetSnapDistance is the length of the world-down feet probe.
	FeetSnapDistance float64 `yaml:"feet_snap_distance"`
}

// DefaultParameters returns the tuning of the test zone character.
func DefaultParameters() Parameters {
	return Parameters{
		HorizontalAcceleration: 0.4,
		HorizontalDrag:         0.2,
		SpeedScale:             8,
		MaxDownSpeed:           20,
		MaxUpSpeed:             25,
		DownAcceleration:       0.4,
		JumpImpulse:            12,
		HipSkin:                0.16,
		FeetSnapDistance:       0.32,
	}
}

// Validate rejects tunings that would stall or invert the state machine.
func (p Parameters) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"horizontal_acceleration", p.HorizontalAcceleration},
		{"horizontal_drag", p.HorizontalDrag},
		{"speed_scale", p.SpeedScale},
		{"max_down_speed", p.MaxDownSpeed},
		{"max_up_speed", p.MaxUpSpeed},
		{"down_acceleration", p.DownAcceleration},
		{"jump_impulse", p.JumpImpulse},
		{"hip_skin", p.HipSkin},
		{"feet_snap_distance", p.FeetSnapDistance},
	}
	for _, c := range checks {
		if c.value < 0 {
			return fmt.Errorf("character.%s must not be negative, got %v", c.name, c.value)
		}
	}
	if p.HorizontalAcceleration == 0 {
		return fmt.Errorf("character.horizontal_acceleration must be positive")
	}
	return nil
}
