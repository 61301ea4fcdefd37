package systems

import (
	"charrig/internal/telemetry"

	"gonum.org/v1/gonum/spatial/r2"
)

// Trace samples the rig once per fixed tick into the summary and the CSV
// trace.
type Trace struct {
	rig  *Rig
	tick int
}

func (s *Trace) Name() string { return "Trace" }

func (s *Trace) Update(float64) error {
	r := s.rig
	ch, err := r.FetchCharacter()
	if err != nil {
		return err
	}
	c := ch.Character
	up := ch.Root.Up()
	sample := telemetry.Sample{
		Tick:            s.tick,
		Phase:           c.Phase.String(),
		X:               ch.Root.Position.X,
		Y:               ch.Root.Position.Y,
		Z:               ch.Root.Position.Z,
		UpX:             up.X,
		UpY:             up.Y,
		UpZ:             up.Z,
		HorizontalSpeed: r2.Norm(c.Velocity.Horizontal),
		Vertical:        c.Velocity.Vertical,
	}
	if ground, ok := c.Phase.Ground(); ok {
		sample.Ground = r.Scene.NameOf(ground)
	}
	if cam, err := r.FetchCamera(); err == nil {
		cur := cam.Rig.Current()
		sample.CameraDistance = cur.Orbit.Distance
		sample.CameraRotation = cur.Orbit.Rotation
		sample.CameraHeight = cur.Orbit.Height
		sample.CameraRoll = cur.Roll
	}
	s.tick++

	r.Summary.Observe(sample)
	return r.Trace.Write(sample)
}

// Gizmos rebuilds the debug shape buffer from the rig state.
type Gizmos struct {
	rig *Rig
}

func (s *Gizmos) Name() string { return "Gizmos" }

func (s *Gizmos) Update(float64) error {
	r := s.rig
	if r.Gizmos == nil {
		return nil
	}
	r.Gizmos.Reset()
	if ch, err := r.FetchCharacter(); err == nil {
		body, err := r.Physics.LinearVelocity(ch.Entity)
		if err != nil {
			return err
		}
		ch.Character.Gizmos(r.Gizmos, *ch.Root, body)
	}
	if cam, err := r.FetchCamera(); err == nil {
		cam.Rig.Gizmos(r.Gizmos)
	}
	return nil
}
