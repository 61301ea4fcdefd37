package physics

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"charrig/internal/engine"
	"charrig/internal/rigmath"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func newTestWorld() *World {
	scene := engine.NewScene("Test")
	return NewWorld(scene, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func addStaticBox(w *World, name string, t engine.Transform, size r3.Vec, layer Layer) ecs.Entity {
	e := w.Scene.Spawn(name, t)
	w.AddCollider(e, NewBoxCollider(size, GroupsFor(layer)))
	return e
}

func near(a, b r3.Vec, tol float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) &&
		scalar.EqualWithinAbs(a.Y, b.Y, tol) &&
		scalar.EqualWithinAbs(a.Z, b.Z, tol)
}

func TestLayerTable(t *testing.T) {
	tests := []struct {
		a, b Layer
		want bool
	}{
		{Ground, Character, true},
		{Character, Ground, true},
		{Character, Character, false},
		{Ground, Ground, false},
		{Prop, Ground, true},
		{Prop, Character, false},
	}
	for _, tt := range tests {
		if got := Compatible(tt.a, tt.b); got != tt.want {
			t.Errorf("Compatible(%v, %v): Expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
	if Of(Ground) != 0b0010 || Of(Character) != 0b0100 {
		t.Errorf("Expected ground 0b0010 and character 0b0100, got %b %b", Of(Ground), Of(Character))
	}
	if !Interacts(GroundProbe, GroupsFor(Ground)) {
		t.Error("Expected ground probe to see ground")
	}
	if Interacts(GroundProbe, GroupsFor(Character)) {
		t.Error("Expected ground probe to ignore characters")
	}
}

func TestCastRayFloor(t *testing.T) {
	w := newTestWorld()
	floor := addStaticBox(w, "Floor", engine.NewTransform(r3.Vec{Y: -0.5}), r3.Vec{X: 20, Y: 1, Z: 20}, Ground)

	hit, ok := w.CastRay(r3.Vec{Y: 1}, rigmath.NegUnitY, 1.16, true, FilterGroups(GroundProbe))
	if !ok {
		t.Fatal("Expected a hit on the floor")
	}
	if hit.Entity != floor {
		t.Errorf("Expected floor entity, got %v", hit.Entity)
	}
	if !near(hit.Point, r3.Vec{}, 1e-9) || !near(hit.Normal, rigmath.UnitY, 1e-9) {
		t.Errorf("Expected point origin with +Y normal, got %v %v", hit.Point, hit.Normal)
	}
	if !scalar.EqualWithinAbs(hit.Distance, 1, 1e-9) {
		t.Errorf("Expected distance 1, got %v", hit.Distance)
	}

	if _, ok := w.CastRay(r3.Vec{Y: 1.2}, rigmath.NegUnitY, 1.16, true, FilterGroups(GroundProbe)); ok {
		t.Error("Expected no hit beyond max distance")
	}
}

func TestCastRayTiltedBox(t *testing.T) {
	w := newTestWorld()
	tilt := rigmath.AxisAngle(rigmath.UnitZ, math.Pi/6)
	addStaticBox(w, "Slope", engine.Transform{Position: r3.Vec{}, Rotation: tilt}, r3.Vec{X: 10, Y: 1, Z: 10}, Ground)

	hit, ok := w.CastRay(r3.Vec{Y: 3}, rigmath.NegUnitY, 10, true, FilterGroups(GroundProbe))
	if !ok {
		t.Fatal("Expected a hit on the slope")
	}
	want := rigmath.Up(tilt)
	if !near(hit.Normal, want, 1e-9) {
		t.Errorf("Expected slope normal %v, got %v", want, hit.Normal)
	}
}

func TestCastRaySphereAndNearest(t *testing.T) {
	w := newTestWorld()
	addStaticBox(w, "Floor", engine.NewTransform(r3.Vec{Y: -0.5}), r3.Vec{X: 20, Y: 1, Z: 20}, Ground)
	dome := w.Scene.Spawn("Dome", engine.NewTransform(r3.Vec{Y: 0}))
	w.AddCollider(dome, NewSphereCollider(2, GroupsFor(Ground)))

	hit, ok := w.CastRay(r3.Vec{X: 0.5, Y: 5}, rigmath.NegUnitY, 10, true, QueryFilter{})
	if !ok || hit.Entity != dome {
		t.Fatalf("Expected dome hit first, got %v %v", hit, ok)
	}
	if !scalar.EqualWithinAbs(r3.Norm(hit.Normal), 1, 1e-9) || hit.Normal.Y <= 0 {
		t.Errorf("Expected unit upward normal, got %v", hit.Normal)
	}

	hit, ok = w.CastRay(r3.Vec{X: 0.5, Y: 5}, rigmath.NegUnitY, 10, true, QueryFilter{Exclude: []ecs.Entity{dome}})
	if !ok || hit.Entity == dome {
		t.Errorf("Expected excluded dome to be skipped, got %v", hit.Entity)
	}
}

func TestCastRayIgnoresCharacterLayer(t *testing.T) {
	w := newTestWorld()
	body := w.Scene.Spawn("Character", engine.NewTransform(r3.Vec{}))
	w.AddBody(body, Body{Kind: Dynamic})
	hips, _ := w.Scene.SpawnChild(body, "Hips", engine.NewTransform(r3.Vec{Y: 1}))
	w.AddCollider(hips, NewSphereCollider(0.3, GroupsFor(Character)))

	if _, ok := w.CastRay(r3.Vec{Y: 1}, rigmath.NegUnitY, 1.16, true, FilterGroups(GroundProbe)); ok {
		t.Error("Expected the ground probe not to hit the character itself")
	}
}

func TestIntegrateAndResolve(t *testing.T) {
	w := newTestWorld()
	addStaticBox(w, "Wall", engine.NewTransform(r3.Vec{X: 1.5, Y: 1}), r3.Vec{X: 1, Y: 2, Z: 4}, Ground)
	body := w.Scene.Spawn("Character", engine.NewTransform(r3.Vec{}))
	w.AddBody(body, Body{Kind: Dynamic, LinearVelocity: r3.Vec{X: 8}})
	hips, _ := w.Scene.SpawnChild(body, "Hips", engine.NewTransform(r3.Vec{Y: 1}))
	w.AddCollider(hips, NewSphereCollider(0.3, GroupsFor(Character)))

	entered := 0
	w.OnContactEnter.AddListener(func(Contact) { entered++ })

	// A 0.1 s step carries the hips to x=0.8, 0.1 past the wall face at x=1.
	if err := w.Step(0.1); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	root, _ := w.Scene.Transform(body)
	if !scalar.EqualWithinAbs(root.Position.X, 0.7, 1e-9) {
		t.Errorf("Expected body pushed back to x=0.7, got %v", root.Position.X)
	}
	v, _ := w.LinearVelocity(body)
	if !scalar.EqualWithinAbs(v.X, 0, 1e-9) {
		t.Errorf("Expected velocity into the wall removed, got %v", v)
	}
	if entered != 1 {
		t.Errorf("Expected 1 contact enter event, got %d", entered)
	}
}

func TestIntegrateGravity(t *testing.T) {
	w := newTestWorld()
	ball := w.Scene.Spawn("Ball", engine.NewTransform(r3.Vec{Y: 10}))
	w.AddBody(ball, Body{Kind: Dynamic, GravityScale: 1})
	character := w.Scene.Spawn("Character", engine.NewTransform(r3.Vec{Y: 10}))
	w.AddBody(character, Body{Kind: Dynamic})

	if err := w.Integrate(0.5); err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}
	bt, _ := w.Scene.Transform(ball)
	if !scalar.EqualWithinAbs(bt.Position.Y, 5, 1e-9) {
		t.Errorf("Expected ball at y=5, got %v", bt.Position.Y)
	}
	ct, _ := w.Scene.Transform(character)
	if ct.Position.Y != 10 {
		t.Errorf("Expected character unaffected by gravity, got %v", ct.Position.Y)
	}
}

func TestBodyNotReady(t *testing.T) {
	w := newTestWorld()
	e := w.Scene.Spawn("Static", engine.NewTransform(r3.Vec{}))
	if _, err := w.LinearVelocity(e); !engine.IsNotReady(err) {
		t.Errorf("Expected not-ready for entity without body, got %v", err)
	}
}

func TestOBBClosestPoint(t *testing.T) {
	o := NewOBB(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, rigmath.Identity())
	got := ClosestPointOnOBB(o, r3.Vec{X: 3, Y: 0.5, Z: -4})
	if !near(got, r3.Vec{X: 1, Y: 0.5, Z: -1}, 1e-12) {
		t.Errorf("Expected (1, 0.5, -1), got %v", got)
	}
	if !o.IntersectsSphere(r3.Vec{X: 1.2}, 0.25) || o.IntersectsSphere(r3.Vec{X: 1.3}, 0.25) {
		t.Error("Expected sphere overlap only within radius")
	}
}
