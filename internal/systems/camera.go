package systems

import "charrig/internal/engine"

// CameraTransition points the orbit at the character and advances every
// damped camera quantity by the frame time.
type CameraTransition struct {
	rig *Rig
}

func (s *CameraTransition) Name() string { return "CameraTransition" }

func (s *CameraTransition) Update(dt float64) error {
	cam, err := s.rig.FetchCamera()
	if err != nil {
		return err
	}
	ch, err := s.rig.FetchCharacter()
	if err != nil {
		return err
	}
	cam.Rig.Follow(ch.Root.Position, ch.Root.Up())
	cam.Rig.Advance(dt)
	return nil
}

// CameraTransform writes the camera pose derived from the current state.
type CameraTransform struct {
	rig *Rig
}

func (s *CameraTransform) Name() string { return "CameraTransform" }

func (s *CameraTransform) Update(float64) error {
	cam, err := s.rig.FetchCamera()
	if err != nil {
		return err
	}
	pos, rot := cam.Rig.Transform()
	*cam.Transform = engine.Transform{Position: pos, Rotation: rot}
	return nil
}
