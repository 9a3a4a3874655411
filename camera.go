package panzoom

// Camera is the viewport transform: Position is the world point drawn at the
// top-left screen corner, Zoom is screen pixels per world unit.
type Camera struct {
	Position Vec2
	Zoom     float64
}

// ToScreen projects a world point to screen space for a camera whose
// top-left corner sits at origin.
func ToScreen(world, origin Vec2, zoom float64) Vec2 {
	return Vec2{
		X: (world.X - origin.X) * zoom,
		Y: (world.Y - origin.Y) * zoom,
	}
}

// ToWorld is the inverse of ToScreen.
func ToWorld(screen, origin Vec2, zoom float64) Vec2 {
	return Vec2{
		X: screen.X/zoom + origin.X,
		Y: screen.Y/zoom + origin.Y,
	}
}

// WorldToScreen converts world coordinates using the camera's own position.
func (c Camera) WorldToScreen(world Vec2) Vec2 {
	return ToScreen(world, c.Position, c.Zoom)
}

// ScreenToWorld converts screen coordinates using the camera's own position.
func (c Camera) ScreenToWorld(screen Vec2) Vec2 {
	return ToWorld(screen, c.Position, c.Zoom)
}

// VisibleBounds returns the world-space rectangle covered by a viewport of
// the given pixel size.
func (c Camera) VisibleBounds(viewW, viewH float64) Rect {
	return Rect{
		X:      c.Position.X,
		Y:      c.Position.Y,
		Width:  viewW / c.Zoom,
		Height: viewH / c.Zoom,
	}
}

// clampAxis applies one axis of the bounded-pan rule: the far edge wins over
// the near edge, so a view wider than the bounds sticks to the far edge.
func clampAxis(v, extent float64, near, far *float64) float64 {
	if far != nil && v+extent >= *far {
		return *far - extent
	}
	if near != nil && v <= *near {
		return *near
	}
	return v
}

// clampPosition returns (x, y) restricted by bounds for a viewport that
// spans viewW×viewH world units.
func clampPosition(x, y, viewW, viewH float64, b Bounds) Vec2 {
	return Vec2{
		X: clampAxis(x, viewW, b.Left, b.Right),
		Y: clampAxis(y, viewH, b.Top, b.Bottom),
	}
}
