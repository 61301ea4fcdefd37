package engine

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
)

// maxParentDepth bounds parent chains so a cycle cannot hang WorldTransform.
const maxParentDepth = 32

// Scene owns the entity world and the components every entity may carry.
// Domain packages register their own component maps against World.
type Scene struct {
	Name  string
	World *ecs.World

	transforms *ecs.Map[Transform]
	names      *ecs.Map[Name]
	tags       *ecs.Map[Tags]
	parents    *ecs.Map[Parent]
}

func NewScene(name string) *Scene {
	w := ecs.NewWorld()
	return &Scene{
		Name:       name,
		World:      w,
		transforms: ecs.NewMap[Transform](w),
		names:      ecs.NewMap[Name](w),
		tags:       ecs.NewMap[Tags](w),
		parents:    ecs.NewMap[Parent](w),
	}
}

// Spawn creates a named root entity.
func (s *Scene) Spawn(name string, t Transform, tags ...string) ecs.Entity {
	e := s.transforms.NewEntity(&t)
	s.names.Add(e, &Name{Value: name})
	if len(tags) > 0 {
		s.tags.Add(e, &Tags{Values: append([]string(nil), tags...)})
	}
	return e
}

// SpawnChild creates an entity whose transform is relative to parent.
func (s *Scene) SpawnChild(parent ecs.Entity, name string, local Transform, tags ...string) (ecs.Entity, error) {
	if !s.World.Alive(parent) {
		return ecs.Entity{}, fmt.Errorf("spawning %q: %w", name, NotReady("parent"))
	}
	e := s.Spawn(name, local, tags...)
	s.parents.Add(e, &Parent{Entity: parent})
	return e, nil
}

// Despawn removes e and every entity parented to it.
func (s *Scene) Despawn(e ecs.Entity) {
	if !s.World.Alive(e) {
		return
	}
	for _, child := range s.Children(e) {
		s.Despawn(child)
	}
	s.World.RemoveEntity(e)
}

// Alive reports whether e still exists.
func (s *Scene) Alive(e ecs.Entity) bool {
	return s.World.Alive(e)
}

// Transform returns the local transform of e for in-place mutation.
func (s *Scene) Transform(e ecs.Entity) (*Transform, error) {
	if !s.World.Alive(e) || !s.transforms.Has(e) {
		return nil, NotReady("transform")
	}
	return s.transforms.Get(e), nil
}

// SetTransform overwrites the local transform of e.
func (s *Scene) SetTransform(e ecs.Entity, t Transform) error {
	cur, err := s.Transform(e)
	if err != nil {
		return err
	}
	*cur = t
	return nil
}

// ParentOf returns the parent of e, if any.
func (s *Scene) ParentOf(e ecs.Entity) (ecs.Entity, bool) {
	if !s.World.Alive(e) || !s.parents.Has(e) {
		return ecs.Entity{}, false
	}
	p := s.parents.Get(e).Entity
	if !s.World.Alive(p) {
		return ecs.Entity{}, false
	}
	return p, true
}

// Children returns the direct children of e.
func (s *Scene) Children(e ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	filter := ecs.NewFilter1[Parent](s.World)
	query := filter.Query()
	for query.Next() {
		if query.Get().Entity == e {
			out = append(out, query.Entity())
		}
	}
	return out
}

// WorldTransform resolves e's pose in world space by walking its parents.
func (s *Scene) WorldTransform(e ecs.Entity) (Transform, error) {
	local, err := s.Transform(e)
	if err != nil {
		return Transform{}, err
	}
	out := *local
	cur := e
	for depth := 0; depth < maxParentDepth; depth++ {
		p, ok := s.ParentOf(cur)
		if !ok {
			return out, nil
		}
		pt, err := s.Transform(p)
		if err != nil {
			return Transform{}, err
		}
		out = pt.Compose(out)
		cur = p
	}
	return Transform{}, fmt.Errorf("resolving world transform: parent chain deeper than %d", maxParentDepth)
}

// NameOf returns the name of e, or "" when it has none.
func (s *Scene) NameOf(e ecs.Entity) string {
	if !s.World.Alive(e) || !s.names.Has(e) {
		return ""
	}
	return s.names.Get(e).Value
}

// FindByName returns the first entity named name.
func (s *Scene) FindByName(name string) (ecs.Entity, bool) {
	filter := ecs.NewFilter1[Name](s.World)
	query := filter.Query()
	for query.Next() {
		if query.Get().Value == name {
			e := query.Entity()
			query.Close()
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// FindByTag returns every entity carrying tag.
func (s *Scene) FindByTag(tag string) []ecs.Entity {
	var result []ecs.Entity
	filter := ecs.NewFilter1[Tags](s.World)
	query := filter.Query()
	for query.Next() {
		if query.Get().Has(tag) {
			result = append(result, query.Entity())
		}
	}
	return result
}
