package panzoom

import "image/color"

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s on both axes.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Bounds limits how far the camera may pan, in world units. A nil edge is
// unbounded.
type Bounds struct {
	Left, Right, Top, Bottom *float64
}

// Edge returns a pointer to v for use in Bounds literals.
//
//	ctrl.SetViewportBounds(panzoom.Bounds{Left: panzoom.Edge(0), Right: panzoom.Edge(8192)})
func Edge(v float64) *float64 {
	return &v
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := Clamp(c.A, 0, 1)
	return color.RGBA{
		R: uint8(Clamp(c.R, 0, 1) * a * 255),
		G: uint8(Clamp(c.G, 0, 1) * a * 255),
		B: uint8(Clamp(c.B, 0, 1) * a * 255),
		A: uint8(a * 255),
	}
}
