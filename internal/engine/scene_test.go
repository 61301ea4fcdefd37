package engine

import (
	"errors"
	"math"
	"testing"

	"charrig/internal/rigmath"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSceneSpawnAndFind(t *testing.T) {
	scene := NewScene("Test")
	player := scene.Spawn("Player", NewTransform(r3.Vec{Y: 1}), "character")
	scene.Spawn("Floor", NewTransform(r3.Vec{}), "ground")
	scene.Spawn("Ramp", NewTransform(r3.Vec{X: 4}), "ground")

	found, ok := scene.FindByName("Player")
	if !ok || found != player {
		t.Errorf("Expected to find Player, got %v %v", found, ok)
	}
	if _, ok := scene.FindByName("Enemy"); ok {
		t.Error("Expected no entity named Enemy")
	}
	if got := len(scene.FindByTag("ground")); got != 2 {
		t.Errorf("Expected 2 ground entities, got %d", got)
	}
	if got := scene.NameOf(player); got != "Player" {
		t.Errorf("Expected name Player, got %q", got)
	}
}

func TestSceneWorldTransform(t *testing.T) {
	scene := NewScene("Test")
	root := scene.Spawn("Character", Transform{
		Position: r3.Vec{X: 2, Y: 3},
		Rotation: rigmath.AxisAngle(rigmath.UnitZ, math.Pi/2),
	})
	hips, err := scene.SpawnChild(root, "Hips", NewTransform(r3.Vec{Y: 1}))
	if err != nil {
		t.Fatalf("SpawnChild failed: %v", err)
	}

	world, err := scene.WorldTransform(hips)
	if err != nil {
		t.Fatalf("WorldTransform failed: %v", err)
	}
	// +Y rotated a quarter turn about Z points along -X.
	want := r3.Vec{X: 1, Y: 3}
	if !scalar.EqualWithinAbs(world.Position.X, want.X, 1e-9) ||
		!scalar.EqualWithinAbs(world.Position.Y, want.Y, 1e-9) {
		t.Errorf("Expected %v, got %v", want, world.Position)
	}
	down := world.Down()
	if !scalar.EqualWithinAbs(down.X, 1, 1e-9) {
		t.Errorf("Expected hips down along +X, got %v", down)
	}
}

func TestSceneDespawnRemovesChildren(t *testing.T) {
	scene := NewScene("Test")
	root := scene.Spawn("Character", NewTransform(r3.Vec{}))
	child, _ := scene.SpawnChild(root, "Hips", NewTransform(r3.Vec{Y: 1}))

	scene.Despawn(root)
	if scene.Alive(root) || scene.Alive(child) {
		t.Error("Expected root and child to be removed")
	}
	if _, err := scene.Transform(child); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady, got %v", err)
	}
	if _, err := scene.SpawnChild(root, "Orphan", NewTransform(r3.Vec{})); !IsNotReady(err) {
		t.Errorf("Expected not-ready parent, got %v", err)
	}
}

func TestNotReadyError(t *testing.T) {
	err := NotReady("character")
	if !errors.Is(err, ErrNotReady) {
		t.Error("Expected NotReadyError to match ErrNotReady")
	}
	var typed *NotReadyError
	if !errors.As(err, &typed) || typed.Role != "character" {
		t.Errorf("Expected role character, got %v", typed)
	}
	if err.Error() != "character not ready" {
		t.Errorf("Expected message, got %q", err.Error())
	}
}

func TestEventWithArg(t *testing.T) {
	var ev EventWithArg[int]
	sum := 0
	ev.AddListener(func(v int) { sum += v })
	ev.AddListener(func(v int) { sum += 10 * v })
	ev.AddListener(nil)
	ev.Invoke(2)
	if sum != 22 {
		t.Errorf("Expected 22, got %d", sum)
	}
	if ev.ListenerCount() != 2 {
		t.Errorf("Expected 2 listeners, got %d", ev.ListenerCount())
	}
	ev.RemoveAllListeners()
	ev.Invoke(1)
	if sum != 22 {
		t.Errorf("Expected no calls after RemoveAllListeners, got %d", sum)
	}
}
