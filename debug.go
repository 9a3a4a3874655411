package panzoom

import (
	"fmt"
	"os"
)

// debugf prints a diagnostic line to stderr.
func debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[panzoom] "+format+"\n", args...)
}

// debugLog prints render stats to stderr.
func (c *Controller) debugLog(stats RenderStats) {
	if !c.debug {
		return
	}
	cam := c.camera
	_, _ = fmt.Fprintf(os.Stderr,
		"[panzoom] render: %v | layers: %d | objects: %d | culled: %d | missing: %d\n",
		stats.Elapsed, stats.Layers, stats.Objects, stats.Culled, stats.Missing)
	_, _ = fmt.Fprintf(os.Stderr,
		"[panzoom] camera: (%.2f, %.2f) zoom %.4f | zooming: %v | dragging: %v\n",
		cam.Position.X, cam.Position.Y, cam.Zoom, c.zoom.animating, c.drag.animating)
}

// warnMissing logs an unknown asset id once per id in debug mode.
func (c *Controller) warnMissing(id string) {
	if !c.debug {
		return
	}
	if c.warnedMiss == nil {
		c.warnedMiss = make(map[string]bool)
	}
	if c.warnedMiss[id] {
		return
	}
	c.warnedMiss[id] = true
	debugf("warning: asset %q not loaded, drawing magenta placeholder", id)
}
