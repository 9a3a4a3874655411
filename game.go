package panzoom

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/colornames"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ClearColor fills the screen before each frame. Zero is transparent
	// black.
	ClearColor Color
	// ShowHUD draws the camera position, zoom percentage, and FPS/TPS in
	// the top-left corner.
	ShowHUD bool
	// OnUpdate, when set, runs at the start of every tick. A non-nil error
	// stops the game loop and is returned by Run.
	OnUpdate func(c *Controller) error
}

// game adapts a Controller to ebiten.Game.
type game struct {
	ctrl    *Controller
	cfg     RunConfig
	surface *ImageSurface
	hud     *ebiten.Image
}

// Run opens a window and drives the controller from Ebitengine's game loop.
// It blocks until the window closes or OnUpdate returns an error.
func Run(c *Controller, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	c.SetViewportSize(float64(cfg.Width), float64(cfg.Height))
	return ebiten.RunGame(&game{ctrl: c, cfg: cfg})
}

func (g *game) Update() error {
	if g.cfg.OnUpdate != nil {
		if err := g.cfg.OnUpdate(g.ctrl); err != nil {
			return err
		}
	}
	g.ctrl.PollInput()
	g.ctrl.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.surface == nil || g.surface.Image() != screen {
		g.surface = NewImageSurface(screen)
		g.surface.ClearColor = g.cfg.ClearColor
	}
	g.ctrl.Render(g.surface)
	if g.cfg.ShowHUD {
		g.drawHUD(screen)
	}
	g.ctrl.flushScreenshots(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ctrl.SetViewportSize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// drawHUD prints the camera readout on a translucent panel.
func (g *game) drawHUD(screen *ebiten.Image) {
	if g.hud == nil {
		g.hud = ebiten.NewImage(180, 48)
	}
	g.hud.Fill(colornames.Black)
	ebitenutil.DebugPrint(g.hud, hudText(g.ctrl.Camera(), ebiten.ActualFPS(), ebiten.ActualTPS()))

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(4, 4)
	op.ColorScale.ScaleAlpha(0.6)
	screen.DrawImage(g.hud, &op)
}

// hudText formats the camera position, zoom as a percentage, and timing.
func hudText(cam Camera, fps, tps float64) string {
	return fmt.Sprintf("(%.0f, %.0f)  %.0f%%\nFPS: %.1f\nTPS: %.1f",
		cam.Position.X, cam.Position.Y, cam.Zoom*100, fps, tps)
}
