// Package assets caches the raylib models the renderer draws zone objects
// with and maps zone color names to raylib colors.
package assets

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape selects a unit model.
type Shape string

const (
	Box    Shape = "box"
	Sphere Shape = "sphere"
)

var manager *Manager

type Manager struct {
	models map[Shape]rl.Model
}

// Color name mapping for zone objects
var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Gold":      rl.Gold,
	"White":     rl.White,
	"Gray":      rl.Gray,
	"LightGray": rl.LightGray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Pink":      rl.Pink,
	"Maroon":    rl.Maroon,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"SkyBlue":   rl.SkyBlue,
	"DarkBlue":  rl.DarkBlue,
	"Lime":      rl.Lime,
	"DarkGreen": rl.DarkGreen,
}

// LookupColor returns a raylib color from a name string
func LookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

func Init() {
	manager = &Manager{
		models: make(map[Shape]rl.Model),
	}
}

// Model returns the unit model of shape: a cube of side 1 or a sphere of
// radius 1. It needs an open window.
func Model(shape Shape) rl.Model {
	if manager == nil {
		Init()
	}

	if model, exists := manager.models[shape]; exists {
		return model
	}

	var mesh rl.Mesh
	switch shape {
	case Sphere:
		mesh = rl.GenMeshSphere(1, 24, 24)
	default:
		mesh = rl.GenMeshCube(1, 1, 1)
	}
	model := rl.LoadModelFromMesh(mesh)
	manager.models[shape] = model
	return model
}

func Unload() {
	if manager == nil {
		return
	}

	for _, model := range manager.models {
		rl.UnloadModel(model)
	}

	manager.models = make(map[Shape]rl.Model)
}
