package panzoom

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"slices"
	"testing"
	"testing/fstest"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	return img
}

func TestLoadAssets_PacksInOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png": {Data: pngBytes(t, 100, 100)},
		"b.png": {Data: pngBytes(t, 200, 50)},
	}
	m := NewAssets(fsys)
	err := m.LoadAssets([]AssetRef{{ID: "a", URL: "a.png"}, {ID: "b", URL: "/b.png"}})
	if err != nil {
		t.Fatalf("LoadAssets: %v", err)
	}

	a, ok := m.Get("a")
	if !ok {
		t.Fatal("asset a not loaded")
	}
	if a.Page != 0 || a.X != 0 || a.Y != 0 || a.Width != 100 || a.Height != 100 {
		t.Errorf("a = %+v, want page 0 at (0,0) 100x100", a)
	}
	b, _ := m.Get("b")
	if b.Page != 0 || b.X != 100 || b.Y != 0 || b.Width != 200 || b.Height != 50 {
		t.Errorf("b = %+v, want page 0 at (100,0) 200x50", b)
	}
	if len(m.Pages()) != 1 {
		t.Errorf("pages = %d, want 1", len(m.Pages()))
	}
	if got := m.IDs(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("IDs = %v, want [a b]", got)
	}
}

func TestLoadAssets_NotFound(t *testing.T) {
	m := NewAssets(fstest.MapFS{})
	err := m.LoadAssets([]AssetRef{{ID: "ghost", URL: "ghost.png"}})

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *LoadError", err)
	}
	if le.ID != "ghost" || le.URL != "ghost.png" {
		t.Errorf("LoadError = %+v", le)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want it to wrap fs.ErrNotExist", err)
	}
	if errors.Is(err, ErrDecode) {
		t.Error("missing file must not be reported as a decode error")
	}
}

func TestLoadAssets_DecodeError(t *testing.T) {
	m := NewAssets(fstest.MapFS{"bad.png": {Data: []byte("definitely not a png")}})
	err := m.LoadAssets([]AssetRef{{ID: "bad", URL: "bad.png"}})

	var le *LoadError
	if !errors.As(err, &le) || le.ID != "bad" {
		t.Fatalf("err = %v, want *LoadError for bad", err)
	}
	if !errors.Is(err, ErrDecode) {
		t.Errorf("err = %v, want it to wrap ErrDecode", err)
	}
}

func TestLoadAssets_FailFast(t *testing.T) {
	fsys := fstest.MapFS{
		"one.png":   {Data: pngBytes(t, 10, 10)},
		"three.png": {Data: pngBytes(t, 10, 10)},
	}
	m := NewAssets(fsys)
	err := m.LoadAssets([]AssetRef{
		{ID: "one", URL: "one.png"},
		{ID: "two", URL: "two.png"},
		{ID: "three", URL: "three.png"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := m.Get("one"); !ok {
		t.Error("asset packed before the failure should stay loaded")
	}
	if _, ok := m.Get("three"); ok {
		t.Error("asset after the failure should not be loaded")
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestLoadAssets_NoFS(t *testing.T) {
	m := NewAssets(nil)
	if err := m.LoadAssets([]AssetRef{{ID: "a", URL: "a.png"}}); err == nil {
		t.Error("expected error without a file system")
	}
}

func TestAssetsAdd_EmptyImage(t *testing.T) {
	m := NewAssets(nil)
	for _, r := range []image.Rectangle{image.Rect(0, 0, 0, 5), image.Rect(0, 0, 5, 0)} {
		_, err := m.Add("empty", image.NewRGBA(r))
		if !errors.Is(err, ErrDecode) {
			t.Errorf("Add %v err = %v, want ErrDecode", r, err)
		}
	}
	if m.Len() != 0 || len(m.Pages()) != 0 {
		t.Errorf("Len = %d, pages = %d, want nothing committed", m.Len(), len(m.Pages()))
	}
}

func TestAssetsAdd_OverflowsToNewPage(t *testing.T) {
	m := NewAssets(nil)
	m.SetPageSize(128)

	if _, err := m.Add("a", solidImage(100, 100)); err != nil {
		t.Fatal(err)
	}
	b, err := m.Add("b", solidImage(100, 100))
	if err != nil {
		t.Fatal(err)
	}
	if b.Page != 1 || b.X != 0 || b.Y != 0 {
		t.Errorf("b = %+v, want page 1 at (0,0)", b)
	}
	if p := m.Page(1); p == nil || p.ID != 1 || p.Width != 128 || p.Height != 128 {
		t.Errorf("page 1 = %v, want 128x128 with ID 1", p)
	}
	if m.Page(2) != nil || m.Page(-1) != nil {
		t.Error("Page out of range should be nil")
	}
}

func TestAssetsAdd_EarlierPageFirst(t *testing.T) {
	m := NewAssets(nil)
	m.SetPageSize(128)

	mustAdd(t, m, "big", 100, 100)
	mustAdd(t, m, "big2", 100, 100) // forces page 1
	small := mustAdd(t, m, "small", 20, 20)
	if small.Page != 0 || small.X != 100 || small.Y != 0 {
		t.Errorf("small = %+v, want page 0 at (100,0)", small)
	}
}

func TestAssetsPlace_OversizedImageGetsOwnPage(t *testing.T) {
	m := NewAssets(nil)
	m.SetPageSize(128)
	mustAdd(t, m, "a", 10, 10)

	p, x, y, err := m.place(300, 20)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != 1 || x != 0 || y != 0 {
		t.Errorf("placed on page %d at (%d,%d), want page 1 at (0,0)", p.ID, x, y)
	}
	if p.Width != 300 || p.Height != 128 {
		t.Errorf("oversized page = %dx%d, want 300x128", p.Width, p.Height)
	}

	p, _, _, err = m.place(50, 5000)
	if err != nil {
		t.Fatal(err)
	}
	if p.Width != 128 || p.Height != 5000 {
		t.Errorf("tall page = %dx%d, want 128x5000", p.Width, p.Height)
	}
}

func TestAssetsAdd_OverwriteDoesNotReclaim(t *testing.T) {
	m := NewAssets(nil)
	mustAdd(t, m, "a", 100, 100)
	again := mustAdd(t, m, "a", 100, 100)

	if again.X != 100 || again.Y != 0 {
		t.Errorf("overwritten a = %+v, want (100,0)", again)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
	if got, _ := m.Get("a"); got != again {
		t.Errorf("Get(a) = %+v, want %+v", got, again)
	}
}

func TestAssetsDispose(t *testing.T) {
	m := NewAssets(nil)
	mustAdd(t, m, "a", 10, 10)
	m.Dispose()
	if m.Len() != 0 || len(m.Pages()) != 0 {
		t.Errorf("after Dispose: Len = %d, pages = %d", m.Len(), len(m.Pages()))
	}
	if _, ok := m.Get("a"); ok {
		t.Error("Get after Dispose should miss")
	}
}

func TestAssetSourceRect(t *testing.T) {
	a := Asset{X: 10, Y: 20, Width: 30, Height: 40}
	if got := a.SourceRect(); got != image.Rect(10, 20, 40, 60) {
		t.Errorf("SourceRect = %v", got)
	}
}

func TestMarshalAtlas_ParsesBack(t *testing.T) {
	m := NewAssets(nil)
	m.SetPageSize(128)
	mustAdd(t, m, "a", 100, 100)
	mustAdd(t, m, "b", 100, 100)
	mustAdd(t, m, "c", 20, 10)

	data, err := m.MarshalAtlas()
	if err != nil {
		t.Fatal(err)
	}
	regions, err := ParseAtlas(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 3 {
		t.Fatalf("regions = %d, want 3", len(regions))
	}
	for _, id := range m.IDs() {
		want, _ := m.Get(id)
		if got := regions[id]; got != want {
			t.Errorf("region %q = %+v, want %+v", id, got, want)
		}
	}
}

func TestParseAtlas_HashFormat(t *testing.T) {
	data := []byte(`{
		"frames": {
			"hero": {
				"frame": {"x": 10, "y": 20, "w": 32, "h": 48},
				"rotated": false,
				"trimmed": false,
				"spriteSourceSize": {"x": 0, "y": 0, "w": 32, "h": 48},
				"sourceSize": {"w": 32, "h": 48}
			}
		},
		"meta": {"image": "atlas.png"}
	}`)
	regions, err := ParseAtlas(data)
	if err != nil {
		t.Fatal(err)
	}
	hero, ok := regions["hero"]
	if !ok {
		t.Fatal("missing hero")
	}
	want := Asset{ID: "hero", Page: 0, X: 10, Y: 20, Width: 32, Height: 48}
	if hero != want {
		t.Errorf("hero = %+v, want %+v", hero, want)
	}
}

func TestParseAtlas_Errors(t *testing.T) {
	if _, err := ParseAtlas([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := ParseAtlas([]byte(`{"meta": {}}`)); err == nil {
		t.Error("expected error for missing frames/textures")
	}
}

func mustAdd(t *testing.T, m *Assets, id string, w, h int) Asset {
	t.Helper()
	a, err := m.Add(id, solidImage(w, h))
	if err != nil {
		t.Fatalf("Add(%q): %v", id, err)
	}
	return a
}
