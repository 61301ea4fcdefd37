package physics

import (
	"fmt"
	"log/slog"

	"charrig/internal/engine"
	"charrig/internal/rigmath"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Contact reports a dynamic collider touching or leaving static geometry.
type Contact struct {
	Body   ecs.Entity
	Other  ecs.Entity
	Normal r3.Vec
}

// LogValue implements slog.LogValuer.
func (c Contact) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("body", c.Body),
		slog.Any("other", c.Other),
	)
}

type contactPair struct {
	body, other ecs.Entity
}

// worldCollider is a collider resolved into world space for one query.
type worldCollider struct {
	entity   ecs.Entity
	owner    ecs.Entity
	hasOwner bool
	collider Collider
	obb      OBB
	center   r3.Vec
	bounds   AABB
}

// World is the rigid-body collaborator of the rigs: it stores bodies and
// colliders on the scene's entities, integrates velocities, answers ray
// queries and keeps dynamic spheres out of static geometry.
type World struct {
	Scene   *engine.Scene
	Gravity r3.Vec
	Logger  *slog.Logger

	bodies    *ecs.Map[Body]
	colliders *ecs.Map[Collider]

	// Collision tracking for contact events
	activeContacts  map[contactPair]Contact
	currentContacts map[contactPair]Contact

	OnContactEnter engine.EventWithArg[Contact]
	OnContactExit  engine.EventWithArg[Contact]
}

func NewWorld(scene *engine.Scene, logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.Default()
	}
	return &World{
		Scene:           scene,
		Gravity:         r3.Vec{Y: -20},
		Logger:          logger.With("system", "physics"),
		bodies:          ecs.NewMap[Body](scene.World),
		colliders:       ecs.NewMap[Collider](scene.World),
		activeContacts:  make(map[contactPair]Contact),
		currentContacts: make(map[contactPair]Contact),
	}
}

// AddBody makes e a moving body.
func (w *World) AddBody(e ecs.Entity, b Body) {
	w.bodies.Add(e, &b)
}

// AddCollider attaches geometry to e.
func (w *World) AddCollider(e ecs.Entity, c Collider) {
	w.colliders.Add(e, &c)
}

// Body returns the body of e for in-place mutation.
func (w *World) Body(e ecs.Entity) (*Body, error) {
	if !w.Scene.Alive(e) || !w.bodies.Has(e) {
		return nil, engine.NotReady("body")
	}
	return w.bodies.Get(e), nil
}

// Collider returns the collider of e.
func (w *World) Collider(e ecs.Entity) (*Collider, error) {
	if !w.Scene.Alive(e) || !w.colliders.Has(e) {
		return nil, engine.NotReady("collider")
	}
	return w.colliders.Get(e), nil
}

// LinearVelocity reads the velocity of body e.
func (w *World) LinearVelocity(e ecs.Entity) (r3.Vec, error) {
	b, err := w.Body(e)
	if err != nil {
		return r3.Vec{}, err
	}
	return b.LinearVelocity, nil
}

// SetLinearVelocity writes the velocity of body e.
func (w *World) SetLinearVelocity(e ecs.Entity, v r3.Vec) error {
	b, err := w.Body(e)
	if err != nil {
		return err
	}
	b.LinearVelocity = v
	return nil
}

// SetPose overrides the pose of e, bypassing integration.
func (w *World) SetPose(e ecs.Entity, position r3.Vec, rotation quat.Number) error {
	return w.Scene.SetTransform(e, engine.Transform{Position: position, Rotation: rigmath.Normalize(rotation)})
}

// Step integrates and then resolves contacts.
func (w *World) Step(dt float64) error {
	if err := w.Integrate(dt); err != nil {
		return err
	}
	return w.Resolve()
}

// Integrate moves every root body by its velocity. Dynamic bodies first
// accumulate gravity.
func (w *World) Integrate(dt float64) error {
	if dt <= 0 {
		return nil
	}
	type move struct {
		entity ecs.Entity
		delta  r3.Vec
	}
	var moves []move

	filter := ecs.NewFilter2[engine.Transform, Body](w.Scene.World)
	query := filter.Query()
	for query.Next() {
		_, body := query.Get()
		if body.Kind == Dynamic && body.GravityScale != 0 {
			body.LinearVelocity = r3.Add(body.LinearVelocity, r3.Scale(body.GravityScale*dt, w.Gravity))
		}
		moves = append(moves, move{entity: query.Entity(), delta: r3.Scale(dt, body.LinearVelocity)})
	}

	for _, m := range moves {
		if _, isChild := w.Scene.ParentOf(m.entity); isChild {
			continue
		}
		t, err := w.Scene.Transform(m.entity)
		if err != nil {
			return fmt.Errorf("integrating body: %w", err)
		}
		t.Position = r3.Add(t.Position, m.delta)
	}
	return nil
}

// ownerBody returns the nearest entity in e's parent chain, e included,
// that carries a Body.
func (w *World) ownerBody(e ecs.Entity) (ecs.Entity, bool) {
	cur := e
	for depth := 0; depth < 32; depth++ {
		if w.bodies.Has(cur) {
			return cur, true
		}
		p, ok := w.Scene.ParentOf(cur)
		if !ok {
			return ecs.Entity{}, false
		}
		cur = p
	}
	return ecs.Entity{}, false
}

// snapshot resolves every collider into world space.
func (w *World) snapshot() ([]worldCollider, error) {
	var entities []ecs.Entity
	filter := ecs.NewFilter1[Collider](w.Scene.World)
	query := filter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}

	out := make([]worldCollider, 0, len(entities))
	for _, e := range entities {
		c := *w.colliders.Get(e)
		pose, err := w.Scene.WorldTransform(e)
		if err != nil {
			return nil, fmt.Errorf("resolving collider %s: %w", w.Scene.NameOf(e), err)
		}
		wc := worldCollider{entity: e, collider: c, center: pose.Apply(c.Offset)}
		wc.owner, wc.hasOwner = w.ownerBody(e)
		switch c.Shape {
		case BoxShape:
			wc.obb = NewOBB(wc.center, c.HalfExtents, pose.Rotation)
			wc.bounds = wc.obb.Bounds()
		case SphereShape:
			wc.bounds = sphereBounds(wc.center, c.Radius)
		}
		out = append(out, wc)
	}
	return out, nil
}

// Resolve pushes dynamic sphere colliders out of compatible static
// colliders, removes the velocity component driving into the contact and
// publishes contact enter and exit events.
func (w *World) Resolve() error {
	colliders, err := w.snapshot()
	if err != nil {
		return err
	}
	w.currentContacts = make(map[contactPair]Contact)

	for i := range colliders {
		dyn := &colliders[i]
		if dyn.collider.Shape != SphereShape || !dyn.hasOwner {
			continue
		}
		body := w.bodies.Get(dyn.owner)
		if body.Kind != Dynamic {
			continue
		}
		for j := range colliders {
			static := &colliders[j]
			if static.hasOwner || !Interacts(dyn.collider.Groups, static.collider.Groups) {
				continue
			}
			if !dyn.bounds.Intersects(static.bounds) {
				continue
			}
			normal, depth, ok := sphereContact(dyn.center, dyn.collider.Radius, static)
			if !ok {
				continue
			}
			root, err := w.Scene.Transform(dyn.owner)
			if err != nil {
				return err
			}
			push := r3.Scale(depth, normal)
			root.Position = r3.Add(root.Position, push)
			dyn.center = r3.Add(dyn.center, push)
			dyn.bounds = sphereBounds(dyn.center, dyn.collider.Radius)
			if into := r3.Dot(body.LinearVelocity, normal); into < 0 {
				body.LinearVelocity = r3.Sub(body.LinearVelocity, r3.Scale(into, normal))
			}
			w.recordContact(Contact{Body: dyn.owner, Other: static.entity, Normal: normal})
		}
	}
	w.dispatchContacts()
	return nil
}

func sphereBounds(center r3.Vec, radius float64) AABB {
	return AABB{Min: center, Max: center}.Expand(radius)
}

// sphereContact returns the push-out normal and depth for a sphere against
// a static collider.
func sphereContact(center r3.Vec, radius float64, static *worldCollider) (r3.Vec, float64, bool) {
	switch static.collider.Shape {
	case BoxShape:
		if !static.obb.IntersectsSphere(center, radius) {
			return r3.Vec{}, 0, false
		}
		closest := ClosestPointOnOBB(static.obb, center)
		diff := r3.Sub(center, closest)
		dist := r3.Norm(diff)
		if dist >= radius || dist < 1e-4 {
			return r3.Vec{}, 0, false
		}
		return r3.Scale(1/dist, diff), radius - dist, true
	case SphereShape:
		diff := r3.Sub(center, static.center)
		dist := r3.Norm(diff)
		limit := radius + static.collider.Radius
		if dist >= limit || dist < 1e-4 {
			return r3.Vec{}, 0, false
		}
		return r3.Scale(1/dist, diff), limit - dist, true
	}
	return r3.Vec{}, 0, false
}

func (w *World) recordContact(c Contact) {
	w.currentContacts[contactPair{body: c.Body, other: c.Other}] = c
}

// dispatchContacts sends enter events for new pairs and exit events for
// pairs that stopped touching.
func (w *World) dispatchContacts() {
	for pair, c := range w.currentContacts {
		if _, ok := w.activeContacts[pair]; !ok {
			w.Logger.Debug("contact enter", "contact", c)
			w.OnContactEnter.Invoke(c)
		}
	}
	for pair, c := range w.activeContacts {
		if _, ok := w.currentContacts[pair]; !ok {
			w.Logger.Debug("contact exit", "contact", c)
			w.OnContactExit.Invoke(c)
		}
	}
	w.activeContacts = w.currentContacts
}
