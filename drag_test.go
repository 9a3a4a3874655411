package panzoom

import "testing"

func press(c *Controller, x, y float64) {
	c.HandleEvent(InputEvent{Kind: InputPointerDown, X: x, Y: y})
}

func move(c *Controller, x, y float64) {
	c.HandleEvent(InputEvent{Kind: InputPointerMove, X: x, Y: y})
}

func release(c *Controller, x, y float64) {
	c.HandleEvent(InputEvent{Kind: InputPointerUp, X: x, Y: y})
}

func TestDrag_TargetFollowsPointer(t *testing.T) {
	c, _ := newTestController(t, Config{})
	press(c, 100, 100)
	d := c.DragState()
	if !d.Active() || d.Animating() {
		t.Fatalf("after press: active=%v animating=%v", d.Active(), d.Animating())
	}
	if d.Start != (Vec2{100, 100}) || d.CameraStart != (Vec2{}) {
		t.Errorf("drag state = %+v", d)
	}

	move(c, 50, 80)
	d = c.DragState()
	if d.Target != (Vec2{50, 20}) {
		t.Errorf("target = %v, want (50, 20)", d.Target)
	}
	if !d.Animating() {
		t.Error("move should start the drag animation")
	}

	settle(t, c)
	if got := c.Camera().Position; got != (Vec2{50, 20}) {
		t.Errorf("position = %v, want (50, 20)", got)
	}
}

func TestDrag_ScaledByZoom(t *testing.T) {
	c, _ := newTestController(t, Config{})
	c.SetZoom(2, 0, 0)
	press(c, 100, 100)
	if got := c.DragState().Start; got != (Vec2{50, 50}) {
		t.Fatalf("start = %v, want (50, 50)", got)
	}
	move(c, 0, 0)
	if got := c.DragState().Target; got != (Vec2{50, 50}) {
		t.Errorf("target = %v, want (50, 50): 100px at zoom 2 is 50 world units", got)
	}
}

func TestDrag_MoveWithoutPressIgnored(t *testing.T) {
	c, _ := newTestController(t, Config{})
	move(c, 300, 300)
	if c.DragState().Animating() {
		t.Error("move without press should not animate")
	}
}

func TestDrag_SingleFlightRetarget(t *testing.T) {
	c, _ := newTestController(t, Config{})
	press(c, 400, 300)
	move(c, 300, 300)
	c.Update(frame)
	first := c.Camera().Position

	move(c, 200, 250)
	if got := c.DragState().Target; got != (Vec2{200, 50}) {
		t.Fatalf("target = %v, want (200, 50)", got)
	}
	c.Update(frame)
	tau := c.Config().DragAnimationTime
	want := Vec2{SmoothDamp(first.X, 200, tau, frame), SmoothDamp(first.Y, 50, tau, frame)}
	if got := c.Camera().Position; got != want {
		t.Errorf("position = %v, want one step %v", got, want)
	}
}

func TestDrag_ContinuesAfterRelease(t *testing.T) {
	c, _ := newTestController(t, Config{})
	press(c, 0, 0)
	move(c, -300, -100)
	release(c, -300, -100)

	d := c.DragState()
	if d.Active() {
		t.Error("release should end the gesture")
	}
	if !d.Animating() {
		t.Error("animation should continue after release")
	}
	settle(t, c)
	if got := c.Camera().Position; got != (Vec2{300, 100}) {
		t.Errorf("position = %v, want (300, 100)", got)
	}
}

func TestDrag_StopsWhenBoundsStall(t *testing.T) {
	c, _ := newTestController(t, Config{})
	c.SetViewportBounds(Bounds{Left: Edge(0)})
	press(c, 100, 100)
	move(c, 300, 100)
	if got := c.DragState().Target; got != (Vec2{-200, 0}) {
		t.Fatalf("target = %v, want (-200, 0)", got)
	}
	c.Update(frame)
	if c.DragState().Animating() {
		t.Error("drag animation should stop when the bounds pin the camera")
	}
	if got := c.Camera().Position; got != (Vec2{}) {
		t.Errorf("position = %v, want origin", got)
	}
}

func TestDrag_ClampedButStillMoving(t *testing.T) {
	c, _ := newTestController(t, Config{})
	c.SetViewportBounds(Bounds{Left: Edge(0)})
	press(c, 100, 100)
	move(c, 300, 0)
	// x is pinned but y can still travel to 100.
	settle(t, c)
	if got := c.Camera().Position; got.X != 0 || got.Y != 100 {
		t.Errorf("position = %v, want (0, 100)", got)
	}
}
