// Package gizmo collects debug shapes as plain data so rigs can describe
// what to draw without depending on a renderer.
package gizmo

import (
	"image/color"
	"math"

	"charrig/internal/rigmath"

	"gonum.org/v1/gonum/spatial/r3"
)

// Kind is the shape of a gizmo.
type Kind int

const (
	Line Kind = iota
	Arrow
	Sphere
	Circle
)

// Shape is one debug primitive. From/To are used by lines and arrows;
// Center, Radius and Normal by spheres and circles.
type Shape struct {
	Kind   Kind
	From   r3.Vec
	To     r3.Vec
	Center r3.Vec
	Normal r3.Vec
	Radius float64
	Color  color.RGBA
}

// Common colors.
var (
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow  = color.RGBA{R: 253, G: 249, B: 0, A: 255}
	Red     = color.RGBA{R: 230, G: 41, B: 55, A: 128}
	Blue    = color.RGBA{R: 0, G: 121, B: 241, A: 128}
	Green   = color.RGBA{R: 0, G: 228, B: 48, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Gray    = color.RGBA{R: 130, G: 130, B: 130, A: 255}
)

// Buffer accumulates shapes for one frame.
type Buffer struct {
	Shapes []Shape
}

// Reset drops all shapes but keeps the backing storage.
func (b *Buffer) Reset() {
	b.Shapes = b.Shapes[:0]
}

func (b *Buffer) Line(from, to r3.Vec, c color.RGBA) {
	b.Shapes = append(b.Shapes, Shape{Kind: Line, From: from, To: to, Color: c})
}

func (b *Buffer) Arrow(from, to r3.Vec, c color.RGBA) {
	b.Shapes = append(b.Shapes, Shape{Kind: Arrow, From: from, To: to, Color: c})
}

func (b *Buffer) Sphere(center r3.Vec, radius float64, c color.RGBA) {
	b.Shapes = append(b.Shapes, Shape{Kind: Sphere, Center: center, Radius: radius, Color: c})
}

// Circle adds a circle of radius around center in the plane orthogonal to
// normal.
func (b *Buffer) Circle(center, normal r3.Vec, radius float64, c color.RGBA) {
	b.Shapes = append(b.Shapes, Shape{Kind: Circle, Center: center, Normal: normal, Radius: radius, Color: c})
}

// Count returns how many shapes of kind k are buffered.
func (b *Buffer) Count(k Kind) int {
	n := 0
	for _, s := range b.Shapes {
		if s.Kind == k {
			n++
		}
	}
	return n
}

// CirclePoints returns segments+1 points around a circle shape, the last
// one repeating the first. A zero normal is treated as +Y.
func CirclePoints(s Shape, segments int) []r3.Vec {
	n := rigmath.NormalizeOrZero(s.Normal)
	if rigmath.IsZero(n) {
		n = rigmath.UnitY
	}
	u := rigmath.NormalizeOrZero(r3.Cross(n, rigmath.UnitX))
	if rigmath.IsZero(u) {
		u = rigmath.NormalizeOrZero(r3.Cross(n, rigmath.UnitZ))
	}
	v := r3.Cross(n, u)

	pts := make([]r3.Vec, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i%segments) / float64(segments)
		offset := r3.Add(r3.Scale(s.Radius*math.Cos(a), u), r3.Scale(s.Radius*math.Sin(a), v))
		pts = append(pts, r3.Add(s.Center, offset))
	}
	return pts
}
