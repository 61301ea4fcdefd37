// Package world builds the test zone: static ground geometry and props
// described by a YAML zone file.
package world

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"charrig/internal/engine"
	"charrig/internal/physics"
	"charrig/internal/rigmath"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

//go:embed zone.yaml
var defaultZoneYAML []byte

// Zone is a zone file.
type Zone struct {
	Objects []ObjectDef `yaml:"objects"`
}

// ObjectDef describes one static or dynamic object.
type ObjectDef struct {
	Name     string     `yaml:"name"`
	Tags     []string   `yaml:"tags,omitempty"`
	Shape    string     `yaml:"shape"`
	Position [3]float64 `yaml:"position"`
	// Rotation is Euler degrees applied X, then Y, then Z.
	Rotation [3]float64 `yaml:"rotation,omitempty"`
	Size     [3]float64 `yaml:"size,omitempty"`
	Radius   float64    `yaml:"radius,omitempty"`
	Layer    string     `yaml:"layer"`
	Color    string     `yaml:"color"`
	Dynamic  bool       `yaml:"dynamic,omitempty"`
}

var layerByName = map[string]physics.Layer{
	"ground": physics.Ground,
	"prop":   physics.Prop,
}

// Appearance is how the renderer should draw an object.
type Appearance struct {
	Color string
}

// DefaultZone returns the embedded test zone.
func DefaultZone() (Zone, error) {
	return parseZone(defaultZoneYAML)
}

// LoadZone reads a zone file.
func LoadZone(path string) (Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Zone{}, fmt.Errorf("read zone: %w", err)
	}
	return parseZone(data)
}

func parseZone(data []byte) (Zone, error) {
	var z Zone
	if err := yaml.Unmarshal(data, &z); err != nil {
		return Zone{}, fmt.Errorf("parse zone: %w", err)
	}
	if err := z.Validate(); err != nil {
		return Zone{}, err
	}
	return z, nil
}

// Validate checks shapes, sizes and layers of every object.
func (z Zone) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(z.Objects))
	for i, o := range z.Objects {
		if o.Name == "" {
			errs = append(errs, fmt.Errorf("object %d: missing name", i))
		} else if seen[o.Name] {
			errs = append(errs, fmt.Errorf("object %q: duplicate name", o.Name))
		}
		seen[o.Name] = true

		switch o.Shape {
		case "box":
			if o.Size[0] <= 0 || o.Size[1] <= 0 || o.Size[2] <= 0 {
				errs = append(errs, fmt.Errorf("object %q: box size must be positive, got %v", o.Name, o.Size))
			}
		case "sphere":
			if o.Radius <= 0 {
				errs = append(errs, fmt.Errorf("object %q: sphere radius must be positive, got %v", o.Name, o.Radius))
			}
		default:
			errs = append(errs, fmt.Errorf("object %q: unknown shape %q", o.Name, o.Shape))
		}
		if _, ok := layerByName[o.Layer]; !ok {
			errs = append(errs, fmt.Errorf("object %q: unknown layer %q", o.Name, o.Layer))
		}
		if o.Dynamic && o.Shape != "sphere" {
			errs = append(errs, fmt.Errorf("object %q: only spheres can be dynamic", o.Name))
		}
	}
	return errors.Join(errs...)
}

// World is the built zone.
type World struct {
	Physics *physics.World
	Objects []ecs.Entity

	appearance *ecs.Map[Appearance]
}

// Build spawns every object of zone into phys.
func Build(phys *physics.World, zone Zone) (*World, error) {
	if err := zone.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		Physics:    phys,
		appearance: ecs.NewMap[Appearance](phys.Scene.World),
	}
	for _, o := range zone.Objects {
		w.Objects = append(w.Objects, w.spawn(o))
	}
	phys.Logger.Info("zone built", "objects", len(w.Objects))
	return w, nil
}

func (w *World) spawn(o ObjectDef) ecs.Entity {
	t := engine.Transform{
		Position: r3.Vec{X: o.Position[0], Y: o.Position[1], Z: o.Position[2]},
		Rotation: eulerDegrees(o.Rotation),
	}
	e := w.Physics.Scene.Spawn(o.Name, t, o.Tags...)

	groups := physics.GroupsFor(layerByName[o.Layer])
	switch o.Shape {
	case "box":
		w.Physics.AddCollider(e, physics.NewBoxCollider(r3.Vec{X: o.Size[0], Y: o.Size[1], Z: o.Size[2]}, groups))
	case "sphere":
		w.Physics.AddCollider(e, physics.NewSphereCollider(o.Radius, groups))
	}
	if o.Dynamic {
		w.Physics.AddBody(e, physics.Body{Kind: physics.Dynamic, GravityScale: 1})
	}
	w.appearance.Add(e, &Appearance{Color: o.Color})
	return e
}

// Appearance returns how e should be drawn.
func (w *World) Appearance(e ecs.Entity) (Appearance, bool) {
	if !w.Physics.Scene.Alive(e) || !w.appearance.Has(e) {
		return Appearance{}, false
	}
	return *w.appearance.Get(e), true
}

func eulerDegrees(deg [3]float64) quat.Number {
	const rad = math.Pi / 180
	qx := rigmath.AxisAngle(rigmath.UnitX, deg[0]*rad)
	qy := rigmath.AxisAngle(rigmath.UnitY, deg[1]*rad)
	qz := rigmath.AxisAngle(rigmath.UnitZ, deg[2]*rad)
	return rigmath.Normalize(rigmath.Mul(qz, rigmath.Mul(qy, qx)))
}
