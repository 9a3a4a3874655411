// Package panzoom is a pannable, zoomable 2D canvas for [Ebitengine] backed
// by a shelf-packed texture atlas.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	ctrl := panzoom.NewController(1280, 720, os.DirFS("assets"), panzoom.DefaultConfig())
//	if err := ctrl.LoadAssets([]panzoom.AssetRef{{ID: "map", URL: "map.png"}}); err != nil {
//		log.Fatal(err)
//	}
//	ctrl.DefaultLayer().AddObject("map", 0, 0, 1)
//	panzoom.Run(ctrl, panzoom.RunConfig{Title: "Map", Width: 1280, Height: 720})
//
// For full control, implement [ebiten.Game] yourself and call
// [Controller.PollInput], [Controller.Update], and [Controller.Render]:
//
//	func (g *Game) Update() error {
//		g.ctrl.PollInput()
//		g.ctrl.Update(1.0 / float64(ebiten.TPS()))
//		return nil
//	}
//	func (g *Game) Draw(s *ebiten.Image) { g.ctrl.Render(panzoom.NewImageSurface(s)) }
//
// # Camera
//
// The camera position is the world point at the top-left corner of the
// viewport and the zoom is screen pixels per world unit, so
// [ToScreen] and [ToWorld] are plain affine maps. Wheel input zooms toward
// the cursor with acceleration on sustained scrolling; dragging pans with
// eased inertia. Both animations use [SmoothDamp] and run one instance each:
// new input only moves their targets.
//
// Input arrives either from the device through [Controller.PollInput] or as
// [InputEvent] values passed to [Controller.HandleEvent], which is how hosts
// without Ebitengine input and tests drive the camera.
//
// # Atlas
//
// [Assets] decodes images one at a time and packs them into
// [DefaultPageSize] square pages with a first-fit shelf packer ([Page]).
// An image larger than a page gets a page of its own size.
// PNG, JPEG, GIF, BMP, TIFF, WebP, and SVG sources are supported.
//
// [Ebitengine]: https://ebitengine.org
package panzoom
