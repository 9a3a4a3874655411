package panzoom

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io/fs"
	"math"
	"path"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// AssetRef names an image to load: ID is the lookup key, URL is a
// slash-separated path resolved inside the manager's file system.
type AssetRef struct {
	ID  string `yaml:"id" json:"id"`
	URL string `yaml:"url" json:"url"`
}

// resolveURL turns a URL into an fs.FS path. Leading slashes and "./" are
// dropped; file:// prefixes are accepted.
func resolveURL(url string) string {
	url = strings.TrimPrefix(url, "file://")
	url = strings.TrimLeft(url, "/")
	return path.Clean(url)
}

// readImage loads and decodes url from fsys. A missing file yields an error
// wrapping fs.ErrNotExist; anything else that goes wrong wraps ErrDecode.
func readImage(fsys fs.FS, url string) (image.Image, error) {
	data, err := fs.ReadFile(fsys, resolveURL(url))
	if err != nil {
		return nil, err
	}
	if isSVG(url, data) {
		img, err := rasterizeSVG(data)
		if err != nil {
			return nil, fmt.Errorf("%w: svg: %v", ErrDecode, err)
		}
		return img, nil
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: %s image has no pixels", ErrDecode, format)
	}
	return img, nil
}

// isSVG sniffs for SVG by extension or by an XML/svg prefix.
func isSVG(url string, data []byte) bool {
	if strings.EqualFold(path.Ext(url), ".svg") {
		return true
	}
	head := bytes.TrimSpace(data)
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}

// rasterizeSVG renders an SVG document at its viewBox size.
func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	w := int(math.Ceil(icon.ViewBox.W))
	h := int(math.Ceil(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty viewBox %gx%g", icon.ViewBox.W, icon.ViewBox.H)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), image.Transparent, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return rgba, nil
}
