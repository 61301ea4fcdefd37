package systems

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"charrig/internal/camera"
	"charrig/internal/engine"
	"charrig/internal/input"
	"charrig/internal/locomotion"
	"charrig/internal/physics"

	"gonum.org/v1/gonum/spatial/r3"
)

func newTestRig() *Rig {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scene := engine.NewScene("Test")
	phys := physics.NewWorld(scene, logger)
	return NewRig(scene, phys, input.NewMapper(input.DefaultSensitivity()), logger)
}

func spawnCharacter(r *Rig) {
	root := r.Scene.Spawn("Character", engine.NewTransform(r3.Vec{Y: 3}))
	r.Physics.AddBody(root, physics.Body{Kind: physics.Dynamic})
	c := locomotion.NewCharacter(locomotion.DefaultParameters())
	r.Characters.Add(root, &c)
	hips, err := r.Scene.SpawnChild(root, "Hips", engine.NewTransform(r3.Vec{Y: 1}))
	if err != nil {
		panic(err)
	}
	r.Entities.Character = root
	r.Entities.Hips = hips
}

func TestFetchNotReady(t *testing.T) {
	r := newTestRig()

	if _, err := r.FetchCharacter(); !engine.IsNotReady(err) {
		t.Errorf("Expected NotReady without a character, got %v", err)
	}
	if _, err := r.FetchCamera(); !engine.IsNotReady(err) {
		t.Errorf("Expected NotReady without a camera, got %v", err)
	}

	spawnCharacter(r)
	ch, err := r.FetchCharacter()
	if err != nil {
		t.Fatalf("FetchCharacter failed: %v", err)
	}
	if ch.HipHeight != 1 {
		t.Errorf("Expected hip height 1, got %v", ch.HipHeight)
	}
	probe, err := ch.Probe(r.Scene)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if probe.Hips != (r3.Vec{Y: 4}) || probe.Down != (r3.Vec{Y: -1}) {
		t.Errorf("Expected hips at (0,4,0) looking down, got %v %v", probe.Hips, probe.Down)
	}

	r.Scene.Despawn(r.Entities.Hips)
	_, err = r.FetchCharacter()
	var nr *engine.NotReadyError
	if !errors.As(err, &nr) || nr.Role != "character hips" {
		t.Errorf("Expected NotReady naming the hips, got %v", err)
	}
}

func TestRegisterOrder(t *testing.T) {
	r := newTestRig()
	s := engine.NewSchedule(engine.NewClock(0, 0), r.Logger)
	Register(s, r)

	tests := []struct {
		stage engine.Stage
		want  []string
	}{
		{engine.PreUpdate, []string{"InputDrain", "CameraIntent"}},
		{engine.FixedPreUpdate, []string{"ReferenceFrame", "CharacterIntent"}},
		{engine.FixedUpdate, []string{"Locomotion", "PhysicsIntegrate", "GroundSnap", "PhysicsResolve"}},
		{engine.FixedPostUpdate, []string{"Trace"}},
		{engine.Update, []string{"CameraTransition"}},
		{engine.PostUpdate, []string{"CameraTransform", "Gizmos"}},
	}
	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			if got := s.Systems(tt.stage); !slices.Equal(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFrameWithoutEntities(t *testing.T) {
	r := newTestRig()
	s := engine.NewSchedule(engine.NewClock(0, 0), r.Logger)
	Register(s, r)

	r.Input.Push(input.Press(input.KeySpace))
	if _, err := s.Frame(engine.DefaultStep); err != nil {
		t.Fatalf("Expected missing entities to be skipped, got %v", err)
	}
	if !r.Jump.Pending() {
		t.Error("Expected the jump to stay latched until a character consumes it")
	}
}

func TestCameraSystems(t *testing.T) {
	r := newTestRig()
	spawnCharacter(r)
	rig := camera.NewRig(camera.DefaultSettings(), r3.Vec{Y: 3})
	e := r.Scene.Spawn("Camera", engine.NewTransform(r3.Vec{}))
	r.Cameras.Add(e, &rig)
	r.Entities.Camera = e
	r.Gizmos = nil

	s := engine.NewSchedule(engine.NewClock(0, 0), r.Logger)
	Register(s, r)

	r.Input.Push(input.Click(input.ButtonRight))
	if _, err := s.Frame(engine.DefaultStep); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	cam, _ := r.FetchCamera()
	if cam.Rig.Desired().Roll != 0.01 {
		t.Errorf("Expected right button to roll by 0.01, got %v", cam.Rig.Desired().Roll)
	}
	pos, _ := cam.Rig.Transform()
	if cam.Transform.Position != pos {
		t.Errorf("Expected the camera entity at the rig pose %v, got %v", pos, cam.Transform.Position)
	}
}
