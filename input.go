package panzoom

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// InputKind identifies a kind of input event.
type InputKind uint8

const (
	InputWheel       InputKind = iota // wheel scrolled; DeltaY is set
	InputPointerDown                  // primary button pressed
	InputPointerMove                  // pointer moved
	InputPointerUp                    // primary button released
)

func (k InputKind) String() string {
	switch k {
	case InputWheel:
		return "wheel"
	case InputPointerDown:
		return "pointerdown"
	case InputPointerMove:
		return "pointermove"
	case InputPointerUp:
		return "pointerup"
	}
	return "unknown"
}

// InputEvent is a device-independent input event in screen coordinates.
type InputEvent struct {
	Kind InputKind
	X, Y float64
	// DeltaY is the vertical wheel delta. Negative scrolls up (zoom in),
	// matching DOM wheel events.
	DeltaY float64
	// Time stamps the event. Zero means "now" by the controller's clock.
	Time time.Time
}

// HandleEvent applies one input event immediately. Hosts that own their
// event loop feed events here; Run does it through PollInput.
func (c *Controller) HandleEvent(e InputEvent) {
	at := e.Time
	if at.IsZero() {
		at = c.now()
	}
	c.cursor = Vec2{e.X, e.Y}
	switch e.Kind {
	case InputWheel:
		c.handleWheel(e.X, e.Y, e.DeltaY, at)
	case InputPointerDown:
		c.pointerDown(e.X, e.Y)
	case InputPointerMove:
		c.pointerMove(e.X, e.Y)
	case InputPointerUp:
		c.pointerUp()
	}
}

// --- Synthetic input ---

// InjectWheel queues a wheel event at screen (x, y). Queued events are
// consumed one per Update, like real frames.
func (c *Controller) InjectWheel(x, y, deltaY float64) {
	c.injectQueue = append(c.injectQueue, InputEvent{Kind: InputWheel, X: x, Y: y, DeltaY: deltaY})
}

// InjectPress queues a pointer press at screen (x, y).
func (c *Controller) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, InputEvent{Kind: InputPointerDown, X: x, Y: y})
}

// InjectMove queues a pointer move to screen (x, y).
func (c *Controller) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, InputEvent{Kind: InputPointerMove, X: x, Y: y})
}

// InjectRelease queues a pointer release at screen (x, y).
func (c *Controller) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, InputEvent{Kind: InputPointerUp, X: x, Y: y})
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves, a final move onto (toX, toY), and a release there.
// The sequence consumes `frames` frames; the minimum is 3.
func (c *Controller) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// processInjectedInput pops one queued event and applies it. Returns true if
// an event was consumed.
func (c *Controller) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]
	c.HandleEvent(evt)
	return true
}

// --- Device polling ---

// mouseState remembers the previous frame's device state so PollInput can
// emit edges.
type mouseState struct {
	down   bool
	x, y   int
	primed bool
}

// PollInput reads the Ebitengine mouse and wheel state and feeds the
// resulting events to HandleEvent. Call it once per tick from ebiten.Game
// Update, before Controller.Update. The device is ignored while injected
// events are queued.
func (c *Controller) PollInput() {
	if len(c.injectQueue) > 0 {
		return
	}

	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	now := c.now()

	// Ebitengine reports positive yoff for scrolling up.
	if _, yoff := ebiten.Wheel(); yoff != 0 {
		c.HandleEvent(InputEvent{Kind: InputWheel, X: sx, Y: sy, DeltaY: -yoff, Time: now})
	}

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	m := &c.mouse
	switch {
	case pressed && !m.down:
		c.HandleEvent(InputEvent{Kind: InputPointerDown, X: sx, Y: sy, Time: now})
	case !pressed && m.down:
		c.HandleEvent(InputEvent{Kind: InputPointerUp, X: sx, Y: sy, Time: now})
	case m.primed && (mx != m.x || my != m.y):
		c.HandleEvent(InputEvent{Kind: InputPointerMove, X: sx, Y: sy, Time: now})
	}
	m.down = pressed
	m.x, m.y = mx, my
	m.primed = true
}
