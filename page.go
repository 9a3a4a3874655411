package panzoom

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultPageSize is the width and height of a regular atlas page. Pages grow
// past it only to hold a single oversized image.
const DefaultPageSize = 4096

// shelf is one horizontal strip of a page. Images on a shelf are placed
// left to right starting at x = 0.
type shelf struct {
	Y      int // top of the shelf
	Used   int // summed width of images placed on the shelf
	Height int // tallest image placed on the shelf
}

// Page is one atlas page: a fixed-size image that packs many assets using
// shelves (levels). Pages only ever gain shelves and occupants.
type Page struct {
	ID     int
	Width  int
	Height int

	shelves []shelf
	image   *ebiten.Image
}

// NewPage creates an empty page with a single shelf at y = 0. The backing
// image is allocated on first draw.
func NewPage(id, width, height int) *Page {
	return &Page{
		ID:      id,
		Width:   width,
		Height:  height,
		shelves: []shelf{{Y: 0}},
	}
}

// Levels returns the ascending shelf start offsets.
func (p *Page) Levels() []int {
	ys := make([]int, len(p.shelves))
	for i, s := range p.shelves {
		ys[i] = s.Y
	}
	return ys
}

// FindSpace returns the first-fit position for a w×h image, opening a new
// shelf below the last one when needed. It returns ErrNoSpace when the page
// cannot hold the image. A new shelf opened during the search stays even
// if the search then fails.
func (p *Page) FindSpace(w, h int) (x, y int, err error) {
	for i := 0; i < len(p.shelves); i++ {
		s := p.shelves[i]
		residualW := p.Width - s.Used
		next := p.Height
		if i+1 < len(p.shelves) {
			next = p.shelves[i+1].Y
		}
		residualH := next - s.Y

		if w <= residualW && h <= residualH {
			return p.Width - residualW, s.Y, nil
		}
		if i+1 < len(p.shelves) {
			continue
		}

		// Last shelf: open another below it if the image could fit there.
		if h > residualH || s.Height == 0 {
			return 0, 0, ErrNoSpace
		}
		newY := s.Y + s.Height
		if newY > p.Height {
			return 0, 0, ErrNoSpace
		}
		p.shelves = append(p.shelves, shelf{Y: newY})
	}
	return 0, 0, ErrNoSpace
}

// Place finds space for a w×h image and records it as occupied.
func (p *Page) Place(w, h int) (x, y int, err error) {
	x, y, err = p.FindSpace(w, h)
	if err != nil {
		return 0, 0, err
	}
	for i := range p.shelves {
		if p.shelves[i].Y == y {
			p.shelves[i].Used += w
			p.shelves[i].Height = max(p.shelves[i].Height, h)
			break
		}
	}
	return x, y, nil
}

// Image returns the page's backing image, allocating it on first use.
func (p *Page) Image() *ebiten.Image {
	if p.image == nil {
		p.image = ebiten.NewImage(p.Width, p.Height)
	}
	return p.image
}

// drawAt copies src into the page with its top-left corner at (x, y).
func (p *Page) drawAt(src *ebiten.Image, x, y int) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(x), float64(y))
	op.Blend = ebiten.BlendCopy
	p.Image().DrawImage(src, &op)
}

// Dispose releases the backing image.
func (p *Page) Dispose() {
	if p.image != nil {
		p.image.Deallocate()
		p.image = nil
	}
}

func (p *Page) String() string {
	return fmt.Sprintf("page %d (%dx%d, %d shelves)", p.ID, p.Width, p.Height, len(p.shelves))
}
