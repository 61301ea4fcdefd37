package systems

import (
	"charrig/internal/input"
	"charrig/internal/locomotion"
)

func (r *Rig) transition(t locomotion.Transition) {
	r.Logger.Debug("phase change", "transition", t)
	r.Summary.Record(t)
	r.OnTransition.Invoke(t)
}

// ReferenceFrame refreshes the rotation that carries camera-local input
// into the character's frame. It runs before CharacterIntent in the same
// tick.
type ReferenceFrame struct {
	rig *Rig
}

func (s *ReferenceFrame) Name() string { return "ReferenceFrame" }

func (s *ReferenceFrame) Update(float64) error {
	ch, err := s.rig.FetchCharacter()
	if err != nil {
		return err
	}
	cam, err := s.rig.FetchCamera()
	if err != nil {
		return err
	}
	ch.Character.Reference = input.ReferenceRotation(cam.Transform.Rotation, cam.Transform.Up(), ch.Root.Up())
	return nil
}

// CharacterIntent hands the frame's movement and any latched jump to the
// character.
type CharacterIntent struct {
	rig *Rig
}

func (s *CharacterIntent) Name() string { return "CharacterIntent" }

func (s *CharacterIntent) Update(float64) error {
	ch, err := s.rig.FetchCharacter()
	if err != nil {
		return err
	}
	c := ch.Character
	c.Input.Movement = input.ToCharacter(s.rig.Movement, c.Reference, ch.Root.Up())
	c.Input.Jump = s.rig.Jump.Consume()
	return nil
}

// Locomotion runs the jump check and the velocity updates, then hands the
// composed velocity to the character's body.
type Locomotion struct {
	rig *Rig
}

func (s *Locomotion) Name() string { return "Locomotion" }

func (s *Locomotion) Update(float64) error {
	r := s.rig
	ch, err := r.FetchCharacter()
	if err != nil {
		return err
	}
	c := ch.Character
	if t, ok := c.TryJump(ch.Root); ok {
		r.transition(t)
	}
	up := ch.Root.Up()
	c.UpdateHorizontal(up)
	c.UpdateVertical()
	return r.Physics.SetLinearVelocity(ch.Entity, c.BodyVelocity(up))
}

// GroundSnap binds the character to the ground between integration and
// contact resolution: on-stage characters follow the surface under their
// hips, falling ones land on it.
type GroundSnap struct {
	rig *Rig
}

func (s *GroundSnap) Name() string { return "GroundSnap" }

func (s *GroundSnap) Update(float64) error {
	r := s.rig
	ch, err := r.FetchCharacter()
	if err != nil {
		return err
	}
	probe, err := ch.Probe(r.Scene)
	if err != nil {
		return err
	}
	body, err := r.Physics.LinearVelocity(ch.Entity)
	if err != nil {
		return err
	}

	c := ch.Character
	if c.Phase.IsOnStage() {
		if t, ok := c.SnapToGround(ch.Root, probe, body, r.Physics); ok {
			r.transition(t)
		}
		return nil
	}
	if t, ok := c.TryLand(ch.Root, probe, &body, r.Physics); ok {
		r.transition(t)
		return r.Physics.SetLinearVelocity(ch.Entity, body)
	}
	return nil
}
