// Package config loads the rig configuration: embedded defaults overlaid
// with an optional user YAML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"charrig/internal/camera"
	"charrig/internal/input"
	"charrig/internal/locomotion"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the rig.
type Config struct {
	Window    WindowConfig      `yaml:"window"`
	Timestep  TimestepConfig    `yaml:"timestep"`
	Character CharacterConfig   `yaml:"character"`
	Camera    camera.Settings   `yaml:"camera"`
	Input     input.Sensitivity `yaml:"input"`
	Physics   PhysicsConfig     `yaml:"physics"`
	Zone      ZoneConfig        `yaml:"zone"`
	Trace     TraceConfig       `yaml:"trace"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Gizmos    bool   `yaml:"gizmos"`
}

// TimestepConfig holds the fixed tick settings.
type TimestepConfig struct {
	Step     time.Duration `yaml:"step"`
	MaxTicks int           `yaml:"max_ticks"`
}

// CharacterConfig holds the spawn geometry and the locomotion tuning.
type CharacterConfig struct {
	Spawn     r3.Vec  `yaml:"spawn"`
	HipHeight float64 `yaml:"hip_height"`
	HipRadius float64 `yaml:"hip_radius"`

	locomotion.Parameters `yaml:",inline"`
}

// PhysicsConfig holds world settings. Gravity only pulls props; the
// character integrates its own fall.
type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"`
}

// ZoneConfig selects the zone file.
type ZoneConfig struct {
	Path string `yaml:"path"` // empty uses the built-in test zone
}

// TraceConfig controls the per-tick CSV trace.
type TraceConfig struct {
	Path  string `yaml:"path"` // empty disables the trace
	Every int    `yaml:"every"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}
	return cfg
}

// Load reads the embedded defaults and overlays the file at path, if any.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid section at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Timestep.Step <= 0 {
		errs = append(errs, fmt.Errorf("timestep.step must be positive, got %v", c.Timestep.Step))
	}
	if c.Timestep.MaxTicks < 1 {
		errs = append(errs, fmt.Errorf("timestep.max_ticks must be at least 1, got %d", c.Timestep.MaxTicks))
	}
	if c.Character.HipHeight <= 0 || c.Character.HipRadius <= 0 {
		errs = append(errs, fmt.Errorf("character.hip_height and hip_radius must be positive"))
	}
	if err := c.Character.Parameters.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Camera.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Input.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Trace.Every < 1 {
		errs = append(errs, fmt.Errorf("trace.every must be at least 1, got %d", c.Trace.Every))
	}
	return errors.Join(errs...)
}

// StepSeconds returns the fixed tick length in seconds.
func (c *Config) StepSeconds() float64 {
	return c.Timestep.Step.Seconds()
}

// Marshal encodes the config as YAML that Load reads back.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteYAML writes the config to path.
func (c *Config) WriteYAML(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
