package systems

// InputDrain snapshots the queued input events once per frame and latches
// a jump edge for the next fixed tick.
type InputDrain struct {
	rig *Rig
}

func (s *InputDrain) Name() string { return "InputDrain" }

func (s *InputDrain) Update(float64) error {
	r := s.rig
	r.Frame = r.Input.Drain()
	r.Movement = r.Mapper.MovementIntent(r.Frame)
	if r.Mapper.JumpPressed(r.Frame) {
		r.Jump.Set()
	}
	return nil
}

// CameraIntent writes the frame's mouse input into the camera's desired
// state.
type CameraIntent struct {
	rig *Rig
}

func (s *CameraIntent) Name() string { return "CameraIntent" }

func (s *CameraIntent) Update(float64) error {
	cam, err := s.rig.FetchCamera()
	if err != nil {
		return err
	}
	cam.Rig.ApplyIntent(s.rig.Mapper.CameraIntent(s.rig.Frame))
	return nil
}
