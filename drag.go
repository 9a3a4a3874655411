package panzoom

// DragState holds the pan gesture and its easing target.
type DragState struct {
	// Start is the world point under the pointer at pointer-down.
	Start Vec2
	// Target is the camera position the drag animation converges to.
	Target Vec2
	// CameraStart is the camera position at pointer-down.
	CameraStart Vec2

	active    bool // pointer is down
	animating bool // easing toward Target
}

// Active reports whether a drag gesture is in progress.
func (d DragState) Active() bool {
	return d.active
}

// Animating reports whether the drag animation is running. It keeps running
// after release until the camera reaches Target.
func (d DragState) Animating() bool {
	return d.animating
}

func (c *Controller) pointerDown(sx, sy float64) {
	c.scroll = nil
	c.drag.Start = ToWorld(Vec2{sx, sy}, c.camera.Position, c.camera.Zoom)
	c.drag.CameraStart = c.camera.Position
	c.drag.active = true
}

func (c *Controller) pointerMove(sx, sy float64) {
	d := &c.drag
	if !d.active {
		return
	}
	under := ToWorld(Vec2{sx, sy}, d.CameraStart, c.camera.Zoom)
	d.Target = d.CameraStart.Sub(under.Sub(d.Start))
	if d.animating {
		return
	}
	d.animating = true
}

func (c *Controller) pointerUp() {
	c.drag.active = false
}

// stepDrag eases the camera toward the drag target. The animation ends when
// both axes land on the target, or when bounds stop the camera from moving.
func (c *Controller) stepDrag(dt float64) {
	d := &c.drag
	if !d.animating {
		return
	}
	prev := c.camera.Position
	nx := SmoothDamp(prev.X, d.Target.X, c.cfg.DragAnimationTime, dt)
	ny := SmoothDamp(prev.Y, d.Target.Y, c.cfg.DragAnimationTime, dt)
	c.setPosition(nx, ny)

	if nx == d.Target.X && ny == d.Target.Y {
		d.animating = false
		return
	}
	if c.camera.Position == prev {
		d.animating = false
		if c.debug {
			debugf("drag animation stopped by bounds at (%.2f, %.2f)", prev.X, prev.Y)
		}
	}
}
