package sim

import (
	"io"
	"math"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"charrig/internal/config"
	"charrig/internal/engine"
	"charrig/internal/input"
	"charrig/internal/locomotion"
	"charrig/internal/physics"
	"charrig/internal/telemetry"
	"charrig/internal/world"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func newSim(t *testing.T, cfg *config.Config) *Sim {
	t.Helper()
	zone, err := world.DefaultZone()
	if err != nil {
		t.Fatalf("DefaultZone failed: %v", err)
	}
	s, err := New(cfg, zone, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// frames runs n frames of exactly one fixed step each.
func frames(t *testing.T, s *Sim, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := s.Frame(s.Config.Timestep.Step); err != nil {
			t.Fatalf("Frame %d failed: %v", i, err)
		}
	}
}

func character(t *testing.T, s *Sim) (*engine.Transform, *locomotion.Character) {
	t.Helper()
	ch, err := s.Rig.FetchCharacter()
	if err != nil {
		t.Fatalf("FetchCharacter failed: %v", err)
	}
	return ch.Root, ch.Character
}

func landed(t *testing.T) *Sim {
	t.Helper()
	s := newSim(t, config.Default())
	frames(t, s, 150)
	if _, c := character(t, s); !c.Phase.IsOnStage() {
		t.Fatalf("Expected the character on stage after falling, got %v", c.Phase)
	}
	return s
}

func TestFallAndLand(t *testing.T) {
	s := newSim(t, config.Default())
	var transitions []locomotion.Transition
	s.Rig.OnTransition.AddListener(func(tr locomotion.Transition) {
		transitions = append(transitions, tr)
	})

	frames(t, s, 150)

	root, c := character(t, s)
	floor, _ := s.Scene.FindByName("Floor")
	if g, ok := c.Phase.Ground(); !ok || g != floor {
		t.Fatalf("Expected the character bound to the floor, got %v", c.Phase)
	}
	if !scalar.EqualWithinAbs(root.Position.Y, 0, 1e-9) {
		t.Errorf("Expected feet on y=0, got %v", root.Position.Y)
	}
	if c.Velocity.Vertical != 0 {
		t.Errorf("Expected vertical velocity zeroed on landing, got %v", c.Velocity.Vertical)
	}
	if len(transitions) != 1 || transitions[0].Kind != locomotion.Landed {
		t.Errorf("Expected exactly one landing, got %v", transitions)
	}
	if s.Rig.Summary.Landings != 1 || s.Rig.Summary.Ticks != 150 {
		t.Errorf("Expected 1 landing over 150 ticks, got %+v", s.Rig.Summary)
	}
}

func TestWalkForward(t *testing.T) {
	s := landed(t)
	root, _ := character(t, s)
	start := root.Position

	s.Push(input.Press(input.KeyW))
	frames(t, s, 60)

	root, c := character(t, s)
	if speed := r2.Norm(c.Velocity.Horizontal); !scalar.EqualWithinAbs(speed, 8, 1e-9) {
		t.Errorf("Expected top speed 8, got %v", speed)
	}
	// The default camera sits on +X looking back at the character, so
	// forward walks toward -X.
	moved := r3.Sub(root.Position, start)
	if moved.X > -3 || !scalar.EqualWithinAbs(moved.Z, 0, 1e-6) {
		t.Errorf("Expected a walk along -X, moved %v", moved)
	}
	if !c.Phase.IsOnStage() {
		t.Errorf("Expected to stay on stage while walking, got %v", c.Phase)
	}

	s.Push(input.Release(input.KeyW))
	frames(t, s, 60)
	if speed := r2.Norm(c.Velocity.Horizontal); speed != 0 {
		t.Errorf("Expected drag to stop the character, got speed %v", speed)
	}
}

func TestJumpAndLand(t *testing.T) {
	s := landed(t)
	var kinds []locomotion.TransitionKind
	s.Rig.OnTransition.AddListener(func(tr locomotion.Transition) {
		kinds = append(kinds, tr.Kind)
	})

	s.Push(input.Press(input.KeySpace))
	frames(t, s, 1)
	s.Push(input.Release(input.KeySpace))

	peak := 0.0
	for i := 0; i < 120; i++ {
		frames(t, s, 1)
		root, _ := character(t, s)
		peak = max(peak, root.Position.Y)
	}

	if len(kinds) != 2 || kinds[0] != locomotion.Jumped || kinds[1] != locomotion.Landed {
		t.Fatalf("Expected jump then land, got %v", kinds)
	}
	if peak < 2 {
		t.Errorf("Expected the jump to clear 2 units, peaked at %v", peak)
	}
	if _, c := character(t, s); !c.Phase.IsOnStage() {
		t.Errorf("Expected the character back on stage, got %v", c.Phase)
	}
	if s.Rig.Jump.Pending() {
		t.Error("Expected the jump latch consumed")
	}
}

func TestCameraFollows(t *testing.T) {
	s := landed(t)
	cam, err := s.Rig.FetchCamera()
	if err != nil {
		t.Fatalf("FetchCamera failed: %v", err)
	}
	root, _ := character(t, s)

	want := r3.Add(root.Position, r3.Vec{X: 15, Y: 5})
	if r3.Norm(r3.Sub(cam.Transform.Position, want)) > 1e-3 {
		t.Errorf("Expected camera at %v, got %v", want, cam.Transform.Position)
	}

	s.Push(input.Wheel(-150))
	frames(t, s, 128)
	if d := cam.Rig.Current().Orbit.Distance; !scalar.EqualWithinAbs(d, 30, 0.01) {
		t.Errorf("Expected zoom out to 30, got %v", d)
	}
}

func TestMissingCameraSkips(t *testing.T) {
	s := newSim(t, config.Default())
	s.Scene.Despawn(s.Rig.Entities.Camera)

	frames(t, s, 10)

	root, c := character(t, s)
	if root.Position.Y >= 10 {
		t.Errorf("Expected the character to keep falling without a camera, got y=%v", root.Position.Y)
	}
	if c.Velocity.Vertical >= 0 {
		t.Errorf("Expected downward velocity, got %v", c.Velocity.Vertical)
	}
	if _, err := s.Rig.FetchCamera(); !engine.IsNotReady(err) {
		t.Errorf("Expected NotReady for the camera, got %v", err)
	}
}

func TestApplyRetunes(t *testing.T) {
	s := newSim(t, config.Default())
	cfg := config.Default()
	cfg.Character.JumpImpulse = 15
	cfg.Camera.SmoothTime = 0.3
	cfg.Character.HipHeight = 1.2

	if err := s.Apply(cfg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	_, c := character(t, s)
	if c.Params.JumpImpulse != 15 {
		t.Errorf("Expected jump impulse 15, got %v", c.Params.JumpImpulse)
	}
	cam, _ := s.Rig.FetchCamera()
	if cam.Rig.Distance.SmoothTime != 0.3 {
		t.Errorf("Expected camera smooth time 0.3, got %v", cam.Rig.Distance.SmoothTime)
	}
	ch, _ := s.Rig.FetchCharacter()
	if ch.HipHeight != 1.2 {
		t.Errorf("Expected hip height 1.2, got %v", ch.HipHeight)
	}

	bad := config.Default()
	bad.Character.HorizontalAcceleration = 0
	if err := s.Apply(bad); err == nil {
		t.Error("Expected invalid tuning to be rejected")
	}
}

func TestRunDefaultScript(t *testing.T) {
	cfg := config.Default()
	cfg.Trace.Path = filepath.Join(t.TempDir(), "trace.csv")
	s := newSim(t, cfg)

	if err := s.Run(DefaultScript(), 600, cfg.Timestep.Step); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	sum := s.Rig.Summary
	if sum.Ticks != 600 {
		t.Errorf("Expected 600 ticks, got %d", sum.Ticks)
	}
	if sum.Jumps != 1 || sum.Landings != 2 {
		t.Errorf("Expected one jump and two landings, got %+v", sum)
	}
	if sum.LastPhase != "on-stage" {
		t.Errorf("Expected the run to end on stage, got %q", sum.LastPhase)
	}
	cam, _ := s.Rig.FetchCamera()
	if d := cam.Rig.Desired(); d.Roll != 0 || !scalar.EqualWithinAbs(d.Orbit.Distance, 20, 1e-9) {
		t.Errorf("Expected roll reset and distance 20, got %+v", d)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	samples, err := readTrace(cfg.Trace.Path)
	if err != nil {
		t.Fatalf("reading trace: %v", err)
	}
	if len(samples) != 600 {
		t.Fatalf("Expected 600 trace rows, got %d", len(samples))
	}
	if samples[0].Ground != "" {
		t.Errorf("Expected no ground while falling, got %q", samples[0].Ground)
	}
	for _, sample := range samples {
		if sample.Phase == "on-stage" && sample.Ground == "" {
			t.Fatalf("tick %d: Expected the ground named while on stage", sample.Tick)
		}
	}
	if samples[599].Ground == "" {
		t.Errorf("Expected the last row to name the ground, got %+v", samples[599])
	}
}

func readTrace(path string) ([]telemetry.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return telemetry.ReadSamples(f)
}

func TestRespawnBelowKillPlane(t *testing.T) {
	s := landed(t)
	respawns := 0
	s.OnRespawn.AddListener(func() { respawns++ })

	ch, _ := s.Rig.FetchCharacter()
	ch.Root.Position = r3.Vec{X: 100, Y: KillPlane - 1, Z: 100}
	ch.Character.Phase = locomotion.Airborne()
	frames(t, s, 1)

	root, c := character(t, s)
	if root.Position != s.Config.Character.Spawn {
		t.Errorf("Expected respawn at %v, got %v", s.Config.Character.Spawn, root.Position)
	}
	if c.Phase.IsOnStage() || c.Velocity.Vertical != 0 || r2.Norm(c.Velocity.Horizontal) != 0 {
		t.Errorf("Expected an airborne character at rest, got %v %+v", c.Phase, c.Velocity)
	}
	if respawns != 1 {
		t.Errorf("Expected one respawn event, got %d", respawns)
	}

	frames(t, s, 150)
	if _, c := character(t, s); !c.Phase.IsOnStage() {
		t.Errorf("Expected the character to land again after respawning, got %v", c.Phase)
	}
}

func TestSnapRunsBeforeContactResolution(t *testing.T) {
	s := landed(t)

	// The curb clips the hips sphere only once the hips sit at hip height
	// above the floor, and never crosses the downward hips ray.
	curb := s.Scene.Spawn("Curb", engine.NewTransform(r3.Vec{X: 0.3, Y: 0.4}))
	s.Physics.AddCollider(curb, physics.NewBoxCollider(r3.Vec{X: 0.4, Y: 0.8, Z: 0.4}, physics.GroupsFor(physics.Ground)))
	ch, _ := s.Rig.FetchCharacter()

	contacts := 0
	s.Physics.OnContactEnter.AddListener(func(c physics.Contact) {
		if c.Body == ch.Entity && c.Other == curb {
			contacts++
		}
	})

	// Hovering above the floor: integration leaves the hips clear of the
	// curb, the snap pulls them into it.
	ch.Root.Position = r3.Vec{Y: 0.1}
	frames(t, s, 1)

	if contacts != 1 {
		t.Fatalf("Expected the curb contact on the snapping tick, got %d", contacts)
	}
	// Hips at (0,1,0) against the curb corner (0.1,0.8,0): pushed out along
	// (-0.1,0.2,0) from the snapped pose at the floor.
	d := math.Sqrt(0.05)
	depth := 0.3 - d
	want := r3.Vec{X: -depth * 0.1 / d, Y: depth * 0.2 / d}
	root, c := character(t, s)
	if r3.Norm(r3.Sub(root.Position, want)) > 1e-9 {
		t.Errorf("Expected the push applied to the snapped pose, %v, got %v", want, root.Position)
	}
	if g, ok := c.Phase.Ground(); !ok || s.Scene.NameOf(g) != "Floor" {
		t.Errorf("Expected the character to stay on the floor, got %v", c.Phase)
	}
}
