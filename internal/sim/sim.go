// Package sim assembles the scene, the test zone, the character and the
// camera from a Config and drives them with the rig schedule.
package sim

import (
	"fmt"
	"log/slog"
	"time"

	"charrig/internal/camera"
	"charrig/internal/config"
	"charrig/internal/engine"
	"charrig/internal/gizmo"
	"charrig/internal/input"
	"charrig/internal/locomotion"
	"charrig/internal/physics"
	"charrig/internal/rigmath"
	"charrig/internal/systems"
	"charrig/internal/telemetry"
	"charrig/internal/world"

	"gonum.org/v1/gonum/spatial/r3"
)

// KillPlane is the height below which Frame respawns the character.
const KillPlane = -50.0

// Sim is a running rig.
type Sim struct {
	Config   *config.Config
	Scene    *engine.Scene
	Physics  *physics.World
	Zone     *world.World
	Rig      *systems.Rig
	Schedule *engine.Schedule
	Logger   *slog.Logger

	OnRespawn engine.Event
}

// New builds the zone and spawns the character and camera.
func New(cfg *config.Config, zone world.Zone, logger *slog.Logger) (*Sim, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scene := engine.NewScene("charrig")
	phys := physics.NewWorld(scene, logger)
	phys.Gravity = r3.Vec{Y: -cfg.Physics.Gravity}

	zw, err := world.Build(phys, zone)
	if err != nil {
		return nil, fmt.Errorf("building zone: %w", err)
	}

	s := &Sim{
		Config:   cfg,
		Scene:    scene,
		Physics:  phys,
		Zone:     zw,
		Rig:      systems.NewRig(scene, phys, input.NewMapper(cfg.Input), logger),
		Schedule: engine.NewSchedule(engine.NewClock(cfg.Timestep.Step, cfg.Timestep.MaxTicks), logger),
		Logger:   logger,
	}
	if err := s.spawnCharacter(); err != nil {
		return nil, err
	}
	s.spawnCamera()

	if cfg.Window.Gizmos {
		s.Rig.Gizmos = &gizmo.Buffer{}
	}
	trace, err := telemetry.CreateTrace(cfg.Trace.Path, cfg.Trace.Every)
	if err != nil {
		return nil, err
	}
	s.Rig.Trace = trace

	systems.Register(s.Schedule, s.Rig)
	logger.Info("rig ready",
		"character", s.Rig.Entities.Character,
		"camera", s.Rig.Entities.Camera,
		"step", cfg.Timestep.Step,
	)
	return s, nil
}

// LoadZone returns the zone named by cfg, or the built-in one.
func LoadZone(cfg *config.Config) (world.Zone, error) {
	if cfg.Zone.Path == "" {
		return world.DefaultZone()
	}
	return world.LoadZone(cfg.Zone.Path)
}

func (s *Sim) spawnCharacter() error {
	cc := s.Config.Character
	root := s.Scene.Spawn("Character", engine.NewTransform(cc.Spawn), "character")
	s.Physics.AddBody(root, physics.Body{Kind: physics.Dynamic})
	c := locomotion.NewCharacter(cc.Parameters)
	s.Rig.Characters.Add(root, &c)

	hips, err := s.Scene.SpawnChild(root, "Hips", engine.NewTransform(r3.Vec{Y: cc.HipHeight}), "probe")
	if err != nil {
		return fmt.Errorf("spawning hips: %w", err)
	}
	s.Physics.AddCollider(hips, physics.NewSphereCollider(cc.HipRadius, physics.GroupsFor(physics.Character)))

	s.Rig.Entities.Character = root
	s.Rig.Entities.Hips = hips
	return nil
}

func (s *Sim) spawnCamera() {
	rig := camera.NewRig(s.Config.Camera, s.Config.Character.Spawn)
	pos, rot := rig.Transform()
	e := s.Scene.Spawn("Camera", engine.Transform{Position: pos, Rotation: rot}, "camera")
	s.Rig.Cameras.Add(e, &rig)
	s.Rig.Entities.Camera = e
}

// Push queues input events for the next frame.
func (s *Sim) Push(events ...input.Event) {
	s.Rig.Input.Push(events...)
}

// Frame advances the rig by one rendered frame and returns the number of
// fixed ticks run. A character that fell below KillPlane is respawned.
func (s *Sim) Frame(d time.Duration) (int, error) {
	n, err := s.Schedule.Frame(d)
	if err != nil {
		return n, err
	}
	if ch, err := s.Rig.FetchCharacter(); err == nil && ch.Root.Position.Y < KillPlane {
		return n, s.Respawn()
	}
	return n, nil
}

// Respawn puts the character back at the spawn point, upright, airborne
// and at rest.
func (s *Sim) Respawn() error {
	ch, err := s.Rig.FetchCharacter()
	if err != nil {
		return err
	}
	spawn := s.Config.Character.Spawn
	if err := s.Physics.SetPose(ch.Entity, spawn, rigmath.Identity()); err != nil {
		return err
	}
	if err := s.Physics.SetLinearVelocity(ch.Entity, r3.Vec{}); err != nil {
		return err
	}
	ch.Character.Velocity = locomotion.Velocity{}
	ch.Character.Phase = locomotion.Airborne()

	s.Logger.Info("character respawned", "position", spawn)
	s.OnRespawn.Invoke()
	return nil
}

// Apply retunes the running rig from cfg. Spawn and zone settings only
// take effect on the next run.
func (s *Sim) Apply(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ch, err := s.Rig.FetchCharacter()
	if err != nil {
		return err
	}
	ch.Character.Params = cfg.Character.Parameters
	if hips, err := s.Scene.Transform(ch.Hips); err == nil {
		hips.Position = r3.Vec{Y: cfg.Character.HipHeight}
	}
	if col, err := s.Physics.Collider(ch.Hips); err == nil {
		col.Radius = cfg.Character.HipRadius
	}

	if cam, err := s.Rig.FetchCamera(); err == nil {
		cam.Rig.Retune(cfg.Camera)
	}
	s.Rig.Mapper = input.NewMapper(cfg.Input)
	s.Physics.Gravity = r3.Vec{Y: -cfg.Physics.Gravity}
	s.Schedule.Clock.Step = cfg.Timestep.Step
	s.Schedule.Clock.MaxTicks = cfg.Timestep.MaxTicks

	s.Config = cfg
	s.Logger.Info("config applied",
		"jump_impulse", cfg.Character.JumpImpulse,
		"smooth_time", cfg.Camera.SmoothTime,
	)
	return nil
}

// Close flushes the trace and logs the run summary.
func (s *Sim) Close() error {
	s.Logger.Info("run summary", "summary", s.Rig.Summary)
	return s.Rig.Trace.Close()
}
