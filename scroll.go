package panzoom

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// ScrollTo animates the camera position to world (x, y) over duration
// seconds. A drag gesture or PanTo cancels the scroll. A nil easeFn uses
// ease.OutCubic.
func (c *Controller) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	c.drag.animating = false
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.camera.Position.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.camera.Position.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Controller) Scrolling() bool {
	return c.scroll != nil
}

func (c *Controller) stepScroll(dt float64) {
	s := c.scroll
	if s == nil {
		return
	}
	x, y := c.camera.Position.X, c.camera.Position.Y
	if !s.doneX {
		val, done := s.tweenX.Update(float32(dt))
		x = float64(val)
		s.doneX = done
	}
	if !s.doneY {
		val, done := s.tweenY.Update(float32(dt))
		y = float64(val)
		s.doneY = done
	}
	c.setPosition(x, y)
	if s.doneX && s.doneY {
		c.scroll = nil
	}
}
