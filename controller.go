package panzoom

import (
	"io/fs"
	"time"
)

// Controller owns the camera, the layers, and the asset atlas, turns input
// events into camera motion, and renders the visible layers.
//
// A Controller is single-threaded: HandleEvent, Update, and Render must be
// called from the same goroutine (Ebitengine's game loop does this).
type Controller struct {
	cfg    Config
	camera Camera
	bounds Bounds
	viewW  float64
	viewH  float64

	layers []*Layer
	assets *Assets

	zoom   ZoomState
	drag   DragState
	scroll *scrollAnim

	cursor      Vec2
	mouse       mouseState
	injectQueue []InputEvent
	testRunner  *TestRunner

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	debug      bool
	lastStats  RenderStats
	warnedMiss map[string]bool

	now func() time.Time
}

// NewController creates a controller with a viewW×viewH pixel viewport, a
// default layer, and an empty atlas resolving URLs in fsys. Config zero
// fields take their defaults; an invalid config falls back to DefaultConfig.
func NewController(viewW, viewH float64, fsys fs.FS, cfg Config) *Controller {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		debugf("invalid config, using defaults: %v", err)
		cfg = DefaultConfig()
	}
	c := &Controller{
		cfg:           cfg,
		camera:        Camera{Zoom: 1},
		viewW:         viewW,
		viewH:         viewH,
		layers:        []*Layer{newLayer(DefaultLayerID, "Default")},
		assets:        NewAssets(fsys),
		ScreenshotDir: "screenshots",
		now:           time.Now,
	}
	c.assets.SetPageSize(cfg.PageSize)
	c.zoom.Target = c.camera.Zoom
	c.zoom.LastDirection = 1
	c.SetDebugMode(cfg.Debug)
	c.setPosition(0, 0)
	return c
}

// Config returns the active configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Camera returns a snapshot of the camera.
func (c *Controller) Camera() Camera {
	return c.camera
}

// Assets returns the controller's asset manager.
func (c *Controller) Assets() *Assets {
	return c.assets
}

// LoadAssets loads refs into the controller's atlas. See Assets.LoadAssets.
func (c *Controller) LoadAssets(refs []AssetRef) error {
	return c.assets.LoadAssets(refs)
}

// ZoomState returns a snapshot of the zoom model.
func (c *Controller) ZoomState() ZoomState {
	return c.zoom
}

// DragState returns a snapshot of the drag model.
func (c *Controller) DragState() DragState {
	return c.drag
}

// Cursor returns the screen position of the last input event.
func (c *Controller) Cursor() Vec2 {
	return c.cursor
}

// Animating reports whether any camera animation is running.
func (c *Controller) Animating() bool {
	return c.zoom.animating || c.drag.animating || c.scroll != nil
}

// --- Viewport ---

// SetViewportSize sets the viewport size in screen pixels and re-applies
// the pan bounds.
func (c *Controller) SetViewportSize(w, h float64) {
	if w == c.viewW && h == c.viewH {
		return
	}
	c.viewW, c.viewH = w, h
	c.setPosition(c.camera.Position.X, c.camera.Position.Y)
}

// ViewportSize returns the viewport size in screen pixels.
func (c *Controller) ViewportSize() (w, h float64) {
	return c.viewW, c.viewH
}

// SetViewportBounds limits panning to the given world-space edges and
// re-applies them to the current position.
func (c *Controller) SetViewportBounds(b Bounds) {
	c.bounds = b
	c.setPosition(c.camera.Position.X, c.camera.Position.Y)
}

// ViewportBounds returns the pan bounds.
func (c *Controller) ViewportBounds() Bounds {
	return c.bounds
}

// setPosition moves the camera to (x, y), clamped by the pan bounds.
func (c *Controller) setPosition(x, y float64) {
	c.camera.Position = clampPosition(x, y, c.viewW/c.camera.Zoom, c.viewH/c.camera.Zoom, c.bounds)
}

// ScreenToWorld converts a screen point through the current camera.
func (c *Controller) ScreenToWorld(sx, sy float64) Vec2 {
	return c.camera.ScreenToWorld(Vec2{sx, sy})
}

// WorldToScreen converts a world point through the current camera.
func (c *Controller) WorldToScreen(wx, wy float64) Vec2 {
	return c.camera.WorldToScreen(Vec2{wx, wy})
}

// --- Programmatic camera control ---

// PanTo moves the camera's top-left corner to world (x, y) immediately,
// cancelling any drag or scroll animation.
func (c *Controller) PanTo(x, y float64) {
	c.drag.animating = false
	c.scroll = nil
	c.setPosition(x, y)
}

// ZoomTo animates the zoom to the given level, keeping the world point under
// screen (sx, sy) fixed. The level is clamped to [MinZoom, MaxZoom].
func (c *Controller) ZoomTo(zoom, sx, sy float64) {
	c.smoothZoomTo(zoom, ToWorld(Vec2{sx, sy}, c.camera.Position, c.camera.Zoom))
}

// ZoomBy multiplies the current zoom target by factor around screen (sx, sy).
func (c *Controller) ZoomBy(factor, sx, sy float64) {
	c.ZoomTo(c.zoom.Target*factor, sx, sy)
}

// SetZoom sets the zoom immediately around screen (sx, sy), stopping the
// zoom animation.
func (c *Controller) SetZoom(zoom, sx, sy float64) {
	anchor := ToWorld(Vec2{sx, sy}, c.camera.Position, c.camera.Zoom)
	zoom = Clamp(zoom, c.cfg.MinZoom, c.cfg.MaxZoom)
	c.zoom.Target = zoom
	c.zoom.animating = false
	c.camera.Zoom = zoom
	landed := ToWorld(Vec2{sx, sy}, c.camera.Position, zoom)
	c.setPosition(
		c.camera.Position.X-(landed.X-anchor.X),
		c.camera.Position.Y-(landed.Y-anchor.Y),
	)
}

// --- Layers ---

// AddLayer appends a layer drawn above the existing ones. If a layer with id
// already exists it is returned unchanged.
func (c *Controller) AddLayer(id, name string) *Layer {
	if l := c.Layer(id); l != nil {
		return l
	}
	l := newLayer(id, name)
	c.layers = append(c.layers, l)
	return l
}

// Layer returns the layer with the given id, or nil.
func (c *Controller) Layer(id string) *Layer {
	for _, l := range c.layers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// DefaultLayer returns the layer every controller starts with.
func (c *Controller) DefaultLayer() *Layer {
	return c.Layer(DefaultLayerID)
}

// Layers returns the layers in draw order. The returned slice MUST NOT be
// mutated.
func (c *Controller) Layers() []*Layer {
	return c.layers
}

// --- Frame loop ---

// Update advances the scripted test runner, applies one injected event, and
// steps the camera animations by dt seconds. Drag runs before zoom, so when
// both move the camera in one frame the zoom's anchor correction wins.
func (c *Controller) Update(dt float64) {
	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	c.processInjectedInput()

	dt = max(dt, c.cfg.MinFrameDelta)
	c.stepScroll(dt)
	c.stepDrag(dt)
	c.stepZoom(dt)
}

// SetDebugMode enables or disables debug logging of animation events and
// per-frame render stats to stderr.
func (c *Controller) SetDebugMode(enabled bool) {
	c.debug = enabled
	c.assets.SetDebug(enabled)
}

// LastRenderStats returns the stats of the most recent Render call.
func (c *Controller) LastRenderStats() RenderStats {
	return c.lastStats
}
