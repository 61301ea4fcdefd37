// Package input turns raw device events into per-frame snapshots and maps
// them to character and camera intent.
package input

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Key is a keyboard key the rig listens to.
type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeySpace
	keyCount
)

var keyNames = [...]string{"W", "A", "S", "D", "Space"}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// Button is a mouse button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	buttonCount
)

// EventKind tags an Event.
type EventKind uint8

const (
	MouseMotion EventKind = iota
	MouseWheel
	ButtonDown
	ButtonUp
	KeyDown
	KeyUp
)

// Event is one raw device event.
type Event struct {
	Kind   EventKind
	Delta  r2.Vec
	Wheel  float64
	Button Button
	Key    Key
}

// Motion returns a mouse motion event.
func Motion(dx, dy float64) Event { return Event{Kind: MouseMotion, Delta: r2.Vec{X: dx, Y: dy}} }

// Wheel returns a mouse wheel event.
func Wheel(dy float64) Event { return Event{Kind: MouseWheel, Wheel: dy} }

// Press returns a key down event.
func Press(k Key) Event { return Event{Kind: KeyDown, Key: k} }

// Release returns a key up event.
func Release(k Key) Event { return Event{Kind: KeyUp, Key: k} }

// Click returns a button down event.
func Click(b Button) Event { return Event{Kind: ButtonDown, Button: b} }

// Unclick returns a button up event.
func Unclick(b Button) Event { return Event{Kind: ButtonUp, Button: b} }

// WithoutPointer drops the mouse events an overlay captures: motion,
// wheel and button presses. Releases are kept so a button held when the
// overlay opened is not stuck down after it closes.
func WithoutPointer(events []Event) []Event {
	out := events[:0]
	for _, e := range events {
		switch e.Kind {
		case MouseMotion, MouseWheel, ButtonDown:
			continue
		}
		out = append(out, e)
	}
	return out
}

type keySet uint16

func (s keySet) has(k Key) bool { return s&(1<<k) != 0 }

type buttonSet uint8

func (s buttonSet) has(b Button) bool { return s&(1<<b) != 0 }

// Frame is the input of one rendered frame: accumulated deltas plus held
// and just-pressed state.
type Frame struct {
	MouseDelta r2.Vec
	Wheel      float64

	keysHeld       keySet
	keysPressed    keySet
	buttonsHeld    buttonSet
	buttonsPressed buttonSet
}

// Held reports whether k is down at the end of the frame.
func (f Frame) Held(k Key) bool { return f.keysHeld.has(k) }

// JustPressed reports whether k went down during the frame.
func (f Frame) JustPressed(k Key) bool { return f.keysPressed.has(k) }

// ButtonHeld reports whether b is down at the end of the frame.
func (f Frame) ButtonHeld(b Button) bool { return f.buttonsHeld.has(b) }

// ButtonJustPressed reports whether b went down during the frame.
func (f Frame) ButtonJustPressed(b Button) bool { return f.buttonsPressed.has(b) }

// Queue buffers events between frames. Drain hands every queued event to
// exactly one Frame.
type Queue struct {
	events  []Event
	keys    keySet
	buttons buttonSet
}

// Push queues e.
func (q *Queue) Push(events ...Event) {
	q.events = append(q.events, events...)
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain folds all queued events into a Frame and empties the queue. Held
// state carries over between frames.
func (q *Queue) Drain() Frame {
	var f Frame
	for _, e := range q.events {
		switch e.Kind {
		case MouseMotion:
			f.MouseDelta = r2.Add(f.MouseDelta, e.Delta)
		case MouseWheel:
			f.Wheel += e.Wheel
		case KeyDown:
			if e.Key >= keyCount {
				continue
			}
			if !q.keys.has(e.Key) {
				f.keysPressed |= 1 << e.Key
			}
			q.keys |= 1 << e.Key
		case KeyUp:
			if e.Key < keyCount {
				q.keys &^= 1 << e.Key
			}
		case ButtonDown:
			if e.Button >= buttonCount {
				continue
			}
			if !q.buttons.has(e.Button) {
				f.buttonsPressed |= 1 << e.Button
			}
			q.buttons |= 1 << e.Button
		case ButtonUp:
			if e.Button < buttonCount {
				q.buttons &^= 1 << e.Button
			}
		}
	}
	q.events = q.events[:0]
	f.keysHeld = q.keys
	f.buttonsHeld = q.buttons
	return f
}
