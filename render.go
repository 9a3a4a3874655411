package panzoom

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is the drawing capability Render needs. dst is in screen pixels.
type Surface interface {
	Clear()
	DrawImage(src *ebiten.Image, srcRect image.Rectangle, dst Rect)
}

// ImageSurface draws onto an *ebiten.Image, typically the screen passed to
// ebiten.Game Draw.
type ImageSurface struct {
	image *ebiten.Image
	// ClearColor fills the image on Clear. A zero color clears to
	// transparent black.
	ClearColor Color
	// Filter selects the sampling filter for scaled draws.
	Filter ebiten.Filter
}

// NewImageSurface wraps img.
func NewImageSurface(img *ebiten.Image) *ImageSurface {
	return &ImageSurface{image: img, Filter: ebiten.FilterLinear}
}

// Image returns the wrapped image.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.image
}

// Clear fills the surface with ClearColor.
func (s *ImageSurface) Clear() {
	if s.ClearColor.A == 0 {
		s.image.Clear()
		return
	}
	s.image.Fill(s.ClearColor.toRGBA())
}

// DrawImage draws the srcRect part of src stretched over dst.
func (s *ImageSurface) DrawImage(src *ebiten.Image, srcRect image.Rectangle, dst Rect) {
	if srcRect.Empty() {
		return
	}
	sub := src.SubImage(srcRect).(*ebiten.Image)

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(dst.Width/float64(srcRect.Dx()), dst.Height/float64(srcRect.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	op.Filter = s.Filter
	s.image.DrawImage(sub, &op)
}

// RenderStats describes one Render call.
type RenderStats struct {
	Layers  int // visible layers drawn
	Objects int // objects drawn, placeholders included
	Culled  int // objects skipped by viewport culling
	Missing int // objects whose asset id is unknown
	Elapsed time.Duration
}

// Render clears dst and draws every visible layer through the camera.
// Objects whose asset is not loaded draw as magenta placeholders.
func (c *Controller) Render(dst Surface) RenderStats {
	var stats RenderStats
	t0 := time.Now()

	dst.Clear()

	cam := c.camera
	var view Rect
	if c.cfg.CullEnabled {
		view = cam.VisibleBounds(c.viewW, c.viewH)
	}

	for _, layer := range c.layers {
		if layer.Hidden {
			continue
		}
		stats.Layers++
		for _, obj := range layer.objects {
			asset, ok := c.assets.Get(obj.AssetID)
			if !ok {
				stats.Missing++
				c.warnMissing(obj.AssetID)
				asset = Asset{ID: obj.AssetID, Width: 1, Height: 1}
			}
			w := float64(asset.Width) * obj.Scale
			h := float64(asset.Height) * obj.Scale
			if c.cfg.CullEnabled && !view.Intersects(Rect{X: obj.X, Y: obj.Y, Width: w, Height: h}) {
				stats.Culled++
				continue
			}

			pos := ToScreen(Vec2{obj.X, obj.Y}, cam.Position, cam.Zoom)
			rect := Rect{X: pos.X, Y: pos.Y, Width: w * cam.Zoom, Height: h * cam.Zoom}
			if ok {
				dst.DrawImage(c.assets.Page(asset.Page).Image(), asset.SourceRect(), rect)
			} else {
				dst.DrawImage(ensureMagentaImage(), image.Rect(0, 0, 1, 1), rect)
			}
			stats.Objects++
		}
	}

	stats.Elapsed = time.Since(t0)
	c.lastStats = stats
	if c.debug {
		c.debugLog(stats)
	}
	return stats
}
