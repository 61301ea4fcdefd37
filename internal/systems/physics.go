package systems

// PhysicsIntegrate moves every body by its velocity. Ground snapping runs
// on the integrated pose before contacts are resolved.
type PhysicsIntegrate struct {
	rig *Rig
}

func (s *PhysicsIntegrate) Name() string { return "PhysicsIntegrate" }

func (s *PhysicsIntegrate) Update(dt float64) error {
	return s.rig.Physics.Integrate(dt)
}

// PhysicsResolve pushes dynamic bodies out of static geometry and
// publishes contact events.
type PhysicsResolve struct {
	rig *Rig
}

func (s *PhysicsResolve) Name() string { return "PhysicsResolve" }

func (s *PhysicsResolve) Update(float64) error {
	return s.rig.Physics.Resolve()
}
