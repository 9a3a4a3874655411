package panzoom

import (
	"encoding/json"
	"fmt"
	"image"
	"io/fs"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

// Asset records where a loaded image lives inside the atlas.
type Asset struct {
	ID     string
	Page   int // index into Assets.Pages
	X, Y   int // top-left corner of the image within the page
	Width  int
	Height int
}

// SourceRect returns the asset's rectangle within its page.
func (a Asset) SourceRect() image.Rectangle {
	return image.Rect(a.X, a.Y, a.X+a.Width, a.Y+a.Height)
}

// Assets owns the id→Asset index and the ordered pool of atlas pages.
// Pages are created lazily as earlier pages fill up.
type Assets struct {
	fsys     fs.FS
	pageSize int
	assets   map[string]Asset
	pages    []*Page
	debug    bool
}

// NewAssets creates an empty asset manager that resolves URLs inside fsys.
// fsys may be nil when images are only added with Add.
func NewAssets(fsys fs.FS) *Assets {
	return &Assets{
		fsys:     fsys,
		pageSize: DefaultPageSize,
		assets:   make(map[string]Asset),
	}
}

// SetPageSize changes the size of pages allocated from now on.
// Non-positive values restore DefaultPageSize.
func (m *Assets) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	m.pageSize = size
}

// SetDebug enables logging of every packed asset.
func (m *Assets) SetDebug(enabled bool) {
	m.debug = enabled
}

// LoadAssets reads, decodes, and packs each ref in order. Loads are
// sequential so packing is deterministic. The first failure aborts the rest
// of the batch and is returned as a *LoadError; assets packed before it stay
// loaded.
func (m *Assets) LoadAssets(refs []AssetRef) error {
	if m.fsys == nil {
		return fmt.Errorf("panzoom: asset manager has no file system")
	}
	for _, ref := range refs {
		img, err := readImage(m.fsys, ref.URL)
		if err != nil {
			return &LoadError{ID: ref.ID, URL: ref.URL, Err: err}
		}
		if _, err := m.Add(ref.ID, img); err != nil {
			return err
		}
	}
	return nil
}

// Add packs an already decoded image under id, replacing any previous asset
// with that id. The space of a replaced asset is not reclaimed.
func (m *Assets) Add(id string, img image.Image) (Asset, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return Asset{}, fmt.Errorf("panzoom: pack asset %q: %w: image is %dx%d", id, ErrDecode, w, h)
	}

	page, x, y, err := m.place(w, h)
	if err != nil {
		return Asset{}, fmt.Errorf("panzoom: pack asset %q: %w", id, err)
	}

	src := ebiten.NewImageFromImage(img)
	page.drawAt(src, x, y)
	src.Deallocate()

	a := Asset{ID: id, Page: page.ID, X: x, Y: y, Width: w, Height: h}
	m.assets[id] = a
	if m.debug {
		log.Printf("panzoom: packed %q %dx%d at (%d,%d) on %v", id, w, h, x, y, page)
	}
	return a, nil
}

// place tries every page in creation order, then a new page sized to fit.
func (m *Assets) place(w, h int) (*Page, int, int, error) {
	for _, p := range m.pages {
		x, y, err := p.Place(w, h)
		if err == nil {
			return p, x, y, nil
		}
	}

	p := NewPage(len(m.pages), max(w, m.pageSize), max(h, m.pageSize))
	x, y, err := p.Place(w, h)
	if err != nil {
		// A fresh page is sized for the image, so this is a bug.
		return nil, 0, 0, fmt.Errorf("fresh %v cannot hold %dx%d: %w", p, w, h, err)
	}
	m.pages = append(m.pages, p)
	return p, x, y, nil
}

// Get returns the asset stored under id.
func (m *Assets) Get(id string) (Asset, bool) {
	a, ok := m.assets[id]
	return a, ok
}

// Len returns the number of loaded assets.
func (m *Assets) Len() int {
	return len(m.assets)
}

// IDs returns the loaded asset ids in sorted order.
func (m *Assets) IDs() []string {
	ids := make([]string, 0, len(m.assets))
	for id := range m.assets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Pages returns the atlas pages in creation order. The returned slice MUST NOT
// be mutated.
func (m *Assets) Pages() []*Page {
	return m.pages
}

// Page returns page i, or nil if it does not exist.
func (m *Assets) Page(i int) *Page {
	if i < 0 || i >= len(m.pages) {
		return nil
	}
	return m.pages[i]
}

// Dispose releases every page image and forgets all assets.
func (m *Assets) Dispose() {
	for _, p := range m.pages {
		p.Dispose()
	}
	m.pages = nil
	m.assets = make(map[string]Asset)
}

// magentaImage is the 1x1 placeholder drawn for unknown asset ids.
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(colornames.Magenta)
	}
	return magentaImage
}

// --- TexturePacker JSON ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Size   jsonSize             `json:"size"`
	Frames map[string]jsonFrame `json:"frames"`
}

// MarshalAtlas describes the packed pages in TexturePacker's multi-page
// array format. Page images are named "page-<n>.png".
func (m *Assets) MarshalAtlas() ([]byte, error) {
	textures := make([]jsonTexturePage, len(m.pages))
	for i, p := range m.pages {
		textures[i] = jsonTexturePage{
			Image:  fmt.Sprintf("page-%d.png", i),
			Size:   jsonSize{W: p.Width, H: p.Height},
			Frames: make(map[string]jsonFrame),
		}
	}
	for id, a := range m.assets {
		textures[a.Page].Frames[id] = jsonFrame{
			Frame:            jsonRect{X: a.X, Y: a.Y, W: a.Width, H: a.Height},
			SpriteSourceSize: jsonRect{W: a.Width, H: a.Height},
			SourceSize:       jsonSize{W: a.Width, H: a.Height},
		}
	}
	data, err := json.MarshalIndent(struct {
		Textures []jsonTexturePage `json:"textures"`
	}{textures}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("panzoom: marshal atlas: %w", err)
	}
	return data, nil
}

// ParseAtlas reads TexturePacker JSON in either the single-page hash format
// ("frames") or the multi-page array format ("textures") and returns the
// regions keyed by frame name.
func ParseAtlas(jsonData []byte) (map[string]Asset, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("panzoom: failed to parse atlas JSON: %w", err)
	}

	regions := make(map[string]Asset)
	switch {
	case probe.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("panzoom: failed to parse atlas textures array: %w", err)
		}
		for i, tex := range textures {
			for name, f := range tex.Frames {
				regions[name] = frameToAsset(name, f, i)
			}
		}
	case probe.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("panzoom: failed to parse atlas frames: %w", err)
		}
		for name, f := range frames {
			regions[name] = frameToAsset(name, f, 0)
		}
	default:
		return nil, fmt.Errorf("panzoom: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return regions, nil
}

func frameToAsset(name string, f jsonFrame, page int) Asset {
	return Asset{
		ID:     name,
		Page:   page,
		X:      f.Frame.X,
		Y:      f.Frame.Y,
		Width:  f.Frame.W,
		Height: f.Frame.H,
	}
}
