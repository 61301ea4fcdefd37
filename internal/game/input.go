package game

import (
	"charrig/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var keyCodes = map[input.Key]int32{
	input.KeyW:     rl.KeyW,
	input.KeyA:     rl.KeyA,
	input.KeyS:     rl.KeyS,
	input.KeyD:     rl.KeyD,
	input.KeySpace: rl.KeySpace,
}

var buttonCodes = map[input.Button]rl.MouseButton{
	input.ButtonLeft:   rl.MouseButtonLeft,
	input.ButtonRight:  rl.MouseButtonRight,
	input.ButtonMiddle: rl.MouseButtonMiddle,
}

// pollInput turns this frame's raylib input state into events. Mouse
// motion, wheel and presses are withheld while the cursor belongs to the
// panel; releases always pass.
func (g *Game) pollInput() []input.Event {
	var events []input.Event
	for key, code := range keyCodes {
		if rl.IsKeyPressed(code) {
			events = append(events, input.Press(key))
		}
		if rl.IsKeyReleased(code) {
			events = append(events, input.Release(key))
		}
	}
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		events = append(events, input.Motion(float64(d.X), float64(d.Y)))
	}
	if w := rl.GetMouseWheelMove(); w != 0 {
		events = append(events, input.Wheel(float64(w)))
	}
	for button, code := range buttonCodes {
		if rl.IsMouseButtonPressed(code) {
			events = append(events, input.Click(button))
		}
		if rl.IsMouseButtonReleased(code) {
			events = append(events, input.Unclick(button))
		}
	}
	if g.panelOpen {
		return input.WithoutPointer(events)
	}
	return events
}
