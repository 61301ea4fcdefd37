// Package game opens a raylib window around a running rig: it feeds
// mouse and keyboard input to the rig, draws the zone, the character and
// the debug gizmos, and hosts the tuning panel.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"charrig/internal/assets"
	"charrig/internal/config"
	"charrig/internal/gizmo"
	"charrig/internal/sim"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

type Game struct {
	Sim     *sim.Sim
	Watcher *config.Watcher
	Logger  *slog.Logger

	DebugMode  bool
	showGizmos bool
	panelOpen  bool

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
	ticks    int
	drawn    int
}

// New wraps s. watcher may be nil.
func New(s *sim.Sim, watcher *config.Watcher, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		Sim:        s,
		Watcher:    watcher,
		Logger:     logger.With("system", "game"),
		showGizmos: s.Config.Window.Gizmos,
	}
}

func (g *Game) Run() error {
	w := g.Sim.Config.Window
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(w.TargetFPS))
	rl.DisableCursor()
	initRayguiStyle()
	defer assets.Unload()

	for !rl.WindowShouldClose() {
		if err := g.Update(); err != nil {
			return err
		}
		g.Draw()
	}
	return nil
}

// Update applies pending config reloads, feeds input and advances the rig
// by the frame time.
func (g *Game) Update() error {
	updateStart := time.Now()
	g.applyReloads()

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.panelOpen = !g.panelOpen
		if g.panelOpen {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}

	if rl.IsKeyPressed(rl.KeyR) {
		if err := g.Sim.Respawn(); err != nil {
			g.Logger.Warn("respawn failed", "error", err)
		}
	}

	g.Sim.Push(g.pollInput()...)
	if g.showGizmos && g.Sim.Rig.Gizmos == nil {
		g.Sim.Rig.Gizmos = &gizmo.Buffer{}
	}
	if !g.showGizmos {
		g.Sim.Rig.Gizmos = nil
	}

	frame := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	n, err := g.Sim.Frame(frame)
	if err != nil {
		return fmt.Errorf("advancing rig: %w", err)
	}
	g.ticks = n

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
	return nil
}

// applyReloads retunes the rig with the newest watched config, if any.
func (g *Game) applyReloads() {
	if g.Watcher == nil {
		return
	}
	select {
	case cfg := <-g.Watcher.Updates:
		if err := g.Sim.Apply(cfg); err != nil {
			g.Logger.Warn("config reload rejected", "error", err)
		}
	case err := <-g.Watcher.Errors:
		g.Logger.Warn("config reload failed", "error", err)
	default:
	}
}

func (g *Game) Draw() {
	cam, err := g.Sim.Rig.FetchCamera()
	if err != nil {
		return
	}
	pos, rot := cam.Transform.Position, cam.Transform.Rotation

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(raylibCamera(pos, rot))
	g.drawn = g.drawZone(pos, rot)
	g.drawCharacter()
	if g.showGizmos && g.Sim.Rig.Gizmos != nil {
		drawGizmos(g.Sim.Rig.Gizmos)
	}
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	rl.DrawText("WASD to move, Space to jump, Mouse to orbit, Wheel to zoom", 10, 10, 20, rl.LightGray)
	rl.DrawText("Left/Right to roll, Middle to reset roll, R to respawn, Tab for tuning, F1 for stats", 10, 35, 20, rl.LightGray)
	rl.DrawFPS(10, 60)

	if ch, err := g.Sim.Rig.FetchCharacter(); err == nil {
		c := ch.Character
		label := c.Phase.String()
		if ground, ok := c.Phase.Ground(); ok {
			label += " on " + g.groundName(ground)
		}
		rl.DrawText(fmt.Sprintf("Phase: %s", label), 10, 85, 18, rl.Yellow)
		rl.DrawText(fmt.Sprintf("Speed: %.2f  Vertical: %.2f", r2.Norm(c.Velocity.Horizontal), c.Velocity.Vertical), 10, 107, 16, rl.Yellow)
	}

	if g.DebugMode {
		sum := g.Sim.Rig.Summary
		rl.DrawText(fmt.Sprintf("Update: %.2f ms (%d ticks)", g.updateMs, g.ticks), 10, 135, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:   %.2f ms (%d objects)", g.drawMs, g.drawn), 10, 155, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Jumps: %d  Landings: %d  Leaves: %d  Rebinds: %d", sum.Jumps, sum.Landings, sum.Leaves, sum.Rebinds), 10, 175, 16, rl.Lime)
		if cam, err := g.Sim.Rig.FetchCamera(); err == nil {
			cur := cam.Rig.Current()
			rl.DrawText(fmt.Sprintf("Camera: d=%.2f r=%.2f h=%.2f roll=%.2f", cur.Orbit.Distance, cur.Orbit.Rotation, cur.Orbit.Height, cur.Roll), 10, 195, 16, rl.Lime)
		}
	}

	if g.panelOpen {
		g.drawPanel()
	}
}

func (g *Game) groundName(e ecs.Entity) string {
	if name := g.Sim.Scene.NameOf(e); name != "" {
		return name
	}
	return "ground"
}
