package game

import (
	"fmt"

	"charrig/internal/camera"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colors - indigo dark theme
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 230)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)

	colorAccent        = rl.NewColor(108, 99, 255, 255)
	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
)

// initRayguiStyle sets up the dark theme
func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

const (
	panelWidth  = 300
	panelRow    = 26
	panelMargin = 10
)

// slider is one tunable row of the panel.
type slider struct {
	label    string
	min, max float64
	value    func(*tuning) *float64
}

// tuning is the subset of the config the panel edits.
type tuning struct {
	acceleration, drag, jump, speed float64
	smooth, follow, upRate          float64
	worldAnchor                     bool
}

var sliders = []slider{
	{"Acceleration", 0.05, 2, func(t *tuning) *float64 { return &t.acceleration }},
	{"Drag", 0.05, 2, func(t *tuning) *float64 { return &t.drag }},
	{"Speed", 1, 20, func(t *tuning) *float64 { return &t.speed }},
	{"Jump impulse", 4, 25, func(t *tuning) *float64 { return &t.jump }},
	{"Camera smooth", 0.02, 1, func(t *tuning) *float64 { return &t.smooth }},
	{"Follow smooth", 0.01, 1, func(t *tuning) *float64 { return &t.follow }},
	{"Up rate", 0.5, 10, func(t *tuning) *float64 { return &t.upRate }},
}

func (g *Game) currentTuning() tuning {
	cfg := g.Sim.Config
	return tuning{
		acceleration: cfg.Character.HorizontalAcceleration,
		drag:         cfg.Character.HorizontalDrag,
		speed:        cfg.Character.SpeedScale,
		jump:         cfg.Character.JumpImpulse,
		smooth:       cfg.Camera.SmoothTime,
		follow:       cfg.Camera.FollowSmoothTime,
		upRate:       cfg.Camera.UpRate,
		worldAnchor:  cfg.Camera.Anchor == camera.AnchorWorld,
	}
}

// drawPanel draws the tuning panel and applies any edit to the running
// rig.
func (g *Game) drawPanel() {
	height := int32(panelMargin*2 + panelRow*(len(sliders)+3))
	x := int32(rl.GetScreenWidth()) - panelWidth - panelMargin
	y := int32(panelMargin)
	rl.DrawRectangle(x, y, panelWidth, height, colorBgPanel)
	rl.DrawRectangleLines(x, y, panelWidth, height, colorAccent)
	rl.DrawText("Tuning (Tab to close)", x+panelMargin, y+panelMargin, 16, colorTextPrimary)

	before := g.currentTuning()
	edited := before
	row := y + panelMargin + panelRow
	for _, s := range sliders {
		v := s.value(&edited)
		rl.DrawText(s.label, x+panelMargin, row+4, 14, colorTextSecondary)
		bounds := rl.Rectangle{X: float32(x + 120), Y: float32(row), Width: 120, Height: 18}
		// Only a moved slider counts; float32 rounding alone must not re-apply.
		if nv := gui.Slider(bounds, "", fmt.Sprintf("%.2f", *v), float32(*v), float32(s.min), float32(s.max)); nv != float32(*v) {
			*v = float64(nv)
		}
		row += panelRow
	}
	anchorBounds := rl.Rectangle{X: float32(x + panelMargin), Y: float32(row), Width: 18, Height: 18}
	edited.worldAnchor = gui.CheckBox(anchorBounds, "World-up camera", edited.worldAnchor)
	row += panelRow

	gizmoBounds := rl.Rectangle{X: float32(x + panelMargin), Y: float32(row), Width: 18, Height: 18}
	g.showGizmos = gui.CheckBox(gizmoBounds, "Gizmos", g.showGizmos)

	if edited != before {
		g.applyTuning(edited)
	}
}

func (g *Game) applyTuning(t tuning) {
	cfg := *g.Sim.Config
	cfg.Character.HorizontalAcceleration = t.acceleration
	cfg.Character.HorizontalDrag = t.drag
	cfg.Character.SpeedScale = t.speed
	cfg.Character.JumpImpulse = t.jump
	cfg.Camera.SmoothTime = t.smooth
	cfg.Camera.FollowSmoothTime = t.follow
	cfg.Camera.UpRate = t.upRate
	cfg.Camera.Anchor = camera.AnchorCharacter
	if t.worldAnchor {
		cfg.Camera.Anchor = camera.AnchorWorld
	}
	if err := g.Sim.Apply(&cfg); err != nil {
		g.Logger.Warn("tuning rejected", "error", err)
	}
}
