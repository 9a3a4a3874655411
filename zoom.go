package panzoom

import (
	"math"
	"time"
)

// ZoomState tracks the wheel acceleration model and the zoom animation.
type ZoomState struct {
	// Target is the zoom the animation converges to. Always within
	// [MinZoom, MaxZoom].
	Target float64
	// Anchor is the world point kept under the cursor while zooming.
	Anchor Vec2
	// Velocity counts consecutive same-direction wheel events.
	Velocity int
	// LastTime is when the previous wheel event arrived.
	LastTime time.Time
	// LastDirection is +1 (zoom in) or -1 (zoom out).
	LastDirection int

	animating bool
}

// Animating reports whether the zoom animation is running.
func (z ZoomState) Animating() bool {
	return z.animating
}

// wheelDirection is the zoom direction for a wheel delta: scrolling up
// (negative delta) zooms in.
func wheelDirection(deltaY float64) int {
	switch {
	case deltaY < 0:
		return 1
	case deltaY > 0:
		return -1
	}
	return 0
}

// handleWheel applies one wheel event at screen point (sx, sy).
func (c *Controller) handleWheel(sx, sy, deltaY float64, at time.Time) {
	dir := wheelDirection(deltaY)
	if dir == 0 {
		return
	}
	z := &c.zoom
	if at.Sub(z.LastTime) > c.cfg.ZoomVelocityWindow || dir != z.LastDirection {
		z.Velocity = 0
	}
	z.Velocity = min(z.Velocity+1, c.cfg.ZoomMaxVelocity)
	z.LastDirection = dir
	z.LastTime = at

	factor := math.Exp(float64(dir) * c.cfg.ZoomSensitivity * math.Log(float64(z.Velocity)+1) * 0.1)
	anchor := ToWorld(Vec2{sx, sy}, c.camera.Position, c.camera.Zoom)
	c.smoothZoomTo(z.Target*factor, anchor)
}

// smoothZoomTo retargets the zoom animation, starting it if idle. Calls
// while it runs only move the target and anchor.
func (c *Controller) smoothZoomTo(target float64, anchor Vec2) {
	z := &c.zoom
	z.Target = Clamp(target, c.cfg.MinZoom, c.cfg.MaxZoom)
	z.Anchor = anchor
	if z.animating || c.camera.Zoom == z.Target {
		return
	}
	z.animating = true
	if c.debug {
		debugf("zoom animation start: %.4f -> %.4f", c.camera.Zoom, z.Target)
	}
}

// stepZoom advances the zoom animation by one frame, keeping the anchor
// pinned to the same screen point.
func (c *Controller) stepZoom(dt float64) {
	z := &c.zoom
	if !z.animating {
		return
	}
	anchorScreen := ToScreen(z.Anchor, c.camera.Position, c.camera.Zoom)

	c.camera.Zoom = SmoothDamp(c.camera.Zoom, z.Target, c.cfg.ZoomAnimationTime, dt)

	landed := ToWorld(anchorScreen, c.camera.Position, c.camera.Zoom)
	c.setPosition(
		c.camera.Position.X-(landed.X-z.Anchor.X),
		c.camera.Position.Y-(landed.Y-z.Anchor.Y),
	)

	if c.camera.Zoom == z.Target {
		z.animating = false
		if c.debug {
			debugf("zoom animation done at %.4f", c.camera.Zoom)
		}
	}
}
