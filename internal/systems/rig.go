// Package systems binds the character and camera rigs to the scene and
// registers their per-frame and per-tick work on an engine.Schedule.
package systems

import (
	"log/slog"

	"charrig/internal/camera"
	"charrig/internal/engine"
	"charrig/internal/gizmo"
	"charrig/internal/input"
	"charrig/internal/locomotion"
	"charrig/internal/physics"
	"charrig/internal/telemetry"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"
)

// Entities are the handles the systems act on.
type Entities struct {
	Character ecs.Entity
	Hips      ecs.Entity
	Camera    ecs.Entity
}

// Rig is the state shared by the rig systems.
type Rig struct {
	Scene      *engine.Scene
	Physics    *physics.World
	Characters *ecs.Map[locomotion.Character]
	Cameras    *ecs.Map[camera.Rig]
	Entities   Entities

	Input  input.Queue
	Mapper input.Mapper
	Jump   input.JumpLatch
	// Frame is the input snapshot drained at the start of the frame.
	Frame input.Frame
	// Movement is the camera-local movement intent of Frame.
	Movement r3.Vec

	// Gizmos receives debug shapes when non-nil.
	Gizmos  *gizmo.Buffer
	Trace   *telemetry.Trace
	Summary telemetry.Summary

	OnTransition engine.EventWithArg[locomotion.Transition]

	Logger *slog.Logger
}

// NewRig registers the rig components on scene's world.
func NewRig(scene *engine.Scene, phys *physics.World, mapper input.Mapper, logger *slog.Logger) *Rig {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rig{
		Scene:      scene,
		Physics:    phys,
		Characters: ecs.NewMap[locomotion.Character](scene.World),
		Cameras:    ecs.NewMap[camera.Rig](scene.World),
		Mapper:     mapper,
		Logger:     logger.With("system", "rig"),
	}
}

// CharacterView is the fetched character.
type CharacterView struct {
	Entity    ecs.Entity
	Root      *engine.Transform
	Character *locomotion.Character
	Hips      ecs.Entity
	HipHeight float64
}

// Probe returns the world-space hips geometry of the character.
func (v CharacterView) Probe(scene *engine.Scene) (locomotion.Probe, error) {
	hips, err := scene.WorldTransform(v.Hips)
	if err != nil {
		return locomotion.Probe{}, err
	}
	return locomotion.Probe{
		Hips:      hips.Position,
		Down:      hips.Down(),
		HipHeight: v.HipHeight,
		Filter:    physics.QueryFilter{Groups: physics.GroundProbe, Exclude: []ecs.Entity{v.Entity}},
	}, nil
}

func (r *Rig) alive(e ecs.Entity) bool {
	return !e.IsZero() && r.Scene.Alive(e)
}

// FetchCharacter resolves the character root, its locomotion component and
// its hips probe. It returns a NotReady error naming the missing part.
func (r *Rig) FetchCharacter() (CharacterView, error) {
	e := r.Entities.Character
	if !r.alive(e) || !r.Characters.Has(e) {
		return CharacterView{}, engine.NotReady("character")
	}
	if !r.alive(r.Entities.Hips) {
		return CharacterView{}, engine.NotReady("character hips")
	}
	root, err := r.Scene.Transform(e)
	if err != nil {
		return CharacterView{}, err
	}
	local, err := r.Scene.Transform(r.Entities.Hips)
	if err != nil {
		return CharacterView{}, err
	}
	return CharacterView{
		Entity:    e,
		Root:      root,
		Character: r.Characters.Get(e),
		Hips:      r.Entities.Hips,
		HipHeight: local.Position.Y,
	}, nil
}

// CameraView is the fetched camera.
type CameraView struct {
	Entity    ecs.Entity
	Transform *engine.Transform
	Rig       *camera.Rig
}

// FetchCamera resolves the camera entity and its rig.
func (r *Rig) FetchCamera() (CameraView, error) {
	e := r.Entities.Camera
	if !r.alive(e) || !r.Cameras.Has(e) {
		return CameraView{}, engine.NotReady("camera")
	}
	t, err := r.Scene.Transform(e)
	if err != nil {
		return CameraView{}, err
	}
	return CameraView{Entity: e, Transform: t, Rig: r.Cameras.Get(e)}, nil
}

// Register adds every rig system to s in the order the tick requires.
func Register(s *engine.Schedule, r *Rig) {
	s.Add(engine.PreUpdate, &InputDrain{rig: r})
	s.Add(engine.PreUpdate, &CameraIntent{rig: r})

	s.Add(engine.FixedPreUpdate, &ReferenceFrame{rig: r})
	s.Add(engine.FixedPreUpdate, &CharacterIntent{rig: r})

	s.Add(engine.FixedUpdate, &Locomotion{rig: r})
	s.Add(engine.FixedUpdate, &PhysicsIntegrate{rig: r})
	s.Add(engine.FixedUpdate, &GroundSnap{rig: r})
	s.Add(engine.FixedUpdate, &PhysicsResolve{rig: r})

	s.Add(engine.FixedPostUpdate, &Trace{rig: r})

	s.Add(engine.Update, &CameraTransition{rig: r})

	s.Add(engine.PostUpdate, &CameraTransform{rig: r})
	s.Add(engine.PostUpdate, &Gizmos{rig: r})
}
